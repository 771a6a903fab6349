package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/voicelog/backend/internal/model"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection. It is the local-development backend;
// production uses MongoStore.
type DB struct {
	conn *sql.DB
}

// Ensure DB implements Store interface.
var _ Store = (*DB)(nil)

// New opens or creates an SQLite database at the given path.
func New(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Enable WAL mode for better concurrency.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}
	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// DatabaseType returns the database backend name.
func (db *DB) DatabaseType() string {
	return "SQLite"
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS folders (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		emoji TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		folder TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		recurrence TEXT NOT NULL DEFAULT 'once',
		time TEXT NOT NULL DEFAULT '',
		duration TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_folder ON tasks(folder);
	CREATE INDEX IF NOT EXISTS idx_tasks_name ON tasks(name);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// --- Folder Methods ---

// FolderExists reports whether a folder document with the id is present.
func (db *DB) FolderExists(ctx context.Context, id string) (bool, error) {
	var n int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM folders WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetFolder fetches a folder by id, returning (nil, nil) when absent.
func (db *DB) GetFolder(ctx context.Context, id string) (*model.Folder, error) {
	var f model.Folder
	err := db.conn.QueryRowContext(ctx, "SELECT id, name, emoji, created_at FROM folders WHERE id = ?", id).
		Scan(&f.ID, &f.Name, &f.Emoji, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// PutFolder inserts or fully overwrites the folder document keyed on f.ID.
func (db *DB) PutFolder(ctx context.Context, f *model.Folder) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO folders (id, name, emoji, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, emoji = excluded.emoji, created_at = excluded.created_at`,
		f.ID, f.Name, f.Emoji, f.CreatedAt)
	return err
}

// DeleteFolder deletes a folder document. Tasks are not cascaded here;
// the operation layer deletes them explicitly.
func (db *DB) DeleteFolder(ctx context.Context, id string) error {
	_, err := db.conn.ExecContext(ctx, "DELETE FROM folders WHERE id = ?", id)
	return err
}

// ListFolders returns all folders ordered by name.
func (db *DB) ListFolders(ctx context.Context) ([]model.Folder, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT id, name, emoji, created_at FROM folders ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var folders []model.Folder
	for rows.Next() {
		var f model.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.Emoji, &f.CreatedAt); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// --- Task Methods ---

// InsertTask inserts a new task and returns the assigned id.
func (db *DB) InsertTask(ctx context.Context, t *model.Task) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO tasks (id, name, folder, completed, recurrence, time, duration, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, t.Name, t.Folder, t.Completed, t.Recurrence, t.Time, t.Duration, t.CreatedAt)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetTasksByFolder returns all tasks whose folder field equals folderID.
func (db *DB) GetTasksByFolder(ctx context.Context, folderID string) ([]model.Task, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, folder, completed, recurrence, time, duration, created_at
		FROM tasks WHERE folder = ? ORDER BY created_at, id`, folderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// GetTasksByName returns all tasks with the given name, earliest-created first.
func (db *DB) GetTasksByName(ctx context.Context, name string) ([]model.Task, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, folder, completed, recurrence, time, duration, created_at
		FROM tasks WHERE name = ? ORDER BY created_at, id`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// GetAllTasks returns every task.
func (db *DB) GetAllTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, folder, completed, recurrence, time, duration, created_at
		FROM tasks ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// taskColumns whitelists the fields UpdateTask may merge.
var taskColumns = map[string]bool{
	"name":       true,
	"folder":     true,
	"completed":  true,
	"recurrence": true,
	"time":       true,
	"duration":   true,
}

// UpdateTask merges the given fields into an existing task document.
func (db *DB) UpdateTask(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if !taskColumns[k] {
			return fmt.Errorf("update task: unknown field %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sets := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)+1)
	for _, k := range keys {
		sets = append(sets, fmt.Sprintf("%s = ?", k))
		args = append(args, fields[k])
	}
	args = append(args, id)

	query := "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	_, err := db.conn.ExecContext(ctx, query, args...)
	return err
}

// DeleteTask deletes a task by id.
func (db *DB) DeleteTask(ctx context.Context, id string) error {
	_, err := db.conn.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	return err
}

// CountTasks returns the number of tasks referencing the folder.
func (db *DB) CountTasks(ctx context.Context, folderID string) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks WHERE folder = ?", folderID).Scan(&n)
	return n, err
}

func scanTasks(rows *sql.Rows) ([]model.Task, error) {
	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Folder, &t.Completed, &t.Recurrence, &t.Time, &t.Duration, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
