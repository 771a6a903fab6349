// Package todo implements the folder and task operations.
//
// Every operation returns an Outcome carrying a machine-readable Code and
// the user-visible message. Conflicts and missing folders/tasks are
// Outcomes, not errors; the error return is reserved for store failures.
package todo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/voicelog/backend/internal/database"
	"github.com/voicelog/backend/internal/model"
)

// Code classifies an operation outcome.
type Code int

const (
	CodeOK Code = iota
	CodeNotFound
	CodeConflict
)

// Outcome is the result of a folder/task operation. Message is the text
// shown to the agent and the user; Code tells callers what happened
// without parsing it.
type Outcome struct {
	Code    Code
	Message string
}

// OK reports whether the operation succeeded.
func (o Outcome) OK() bool { return o.Code == CodeOK }

func ok(format string, args ...any) Outcome {
	return Outcome{Code: CodeOK, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) Outcome {
	return Outcome{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) Outcome {
	return Outcome{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

// Service runs the operations against a document store.
type Service struct {
	db database.Store

	// now is swappable for tests.
	now func() time.Time
}

// NewService creates a Service backed by the given store.
func NewService(db database.Store) *Service {
	return &Service{db: db, now: time.Now}
}

// CreateFolder inserts a new folder unless its derived id already exists.
func (s *Service) CreateFolder(ctx context.Context, name, emoji string) (Outcome, error) {
	id := model.FolderID(name)

	exists, err := s.db.FolderExists(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	if exists {
		return conflict("Folder '%s' already exists", name), nil
	}

	f := &model.Folder{ID: id, Name: name, Emoji: emoji, CreatedAt: s.now().UTC()}
	if err := s.db.PutFolder(ctx, f); err != nil {
		return Outcome{}, err
	}
	return ok("%s", strings.TrimSpace(fmt.Sprintf("Created folder %s %s", emoji, name))), nil
}

// CreateTask inserts a task into an existing folder. Recurrence defaults
// to "once"; time and duration may be empty.
func (s *Service) CreateTask(ctx context.Context, name, folderName, recurrence, timeOfDay, duration string) (Outcome, error) {
	folderID := model.FolderID(folderName)

	exists, err := s.db.FolderExists(ctx, folderID)
	if err != nil {
		return Outcome{}, err
	}
	if !exists {
		return notFound("Folder '%s' doesn't exist", folderName), nil
	}

	if recurrence == "" {
		recurrence = model.DefaultRecurrence
	}
	t := &model.Task{
		Name:       name,
		Folder:     folderID,
		Completed:  false,
		Recurrence: recurrence,
		Time:       timeOfDay,
		Duration:   duration,
		CreatedAt:  s.now().UTC(),
	}
	if _, err := s.db.InsertTask(ctx, t); err != nil {
		return Outcome{}, err
	}
	return ok("Created task '%s' in %s", name, folderName), nil
}

// FolderContents lists the tasks in a folder, each prefixed with a
// completion marker.
func (s *Service) FolderContents(ctx context.Context, folderName string) (Outcome, error) {
	folder, err := s.db.GetFolder(ctx, model.FolderID(folderName))
	if err != nil {
		return Outcome{}, err
	}
	if folder == nil {
		return notFound("Folder '%s' doesn't exist", folderName), nil
	}

	tasks, err := s.db.GetTasksByFolder(ctx, folder.ID)
	if err != nil {
		return Outcome{}, err
	}
	if len(tasks) == 0 {
		return ok("%s %s is empty", folder.Emoji, folderName), nil
	}

	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		status := "○"
		if t.Completed {
			status = "✓"
		}
		lines = append(lines, fmt.Sprintf("%s %s", status, t.Name))
	}
	return ok("%s %s:\n%s", folder.Emoji, folderName, strings.Join(lines, "\n")), nil
}

// ListFolders lists every folder with a live count of its tasks.
func (s *Service) ListFolders(ctx context.Context) (Outcome, error) {
	folders, err := s.db.ListFolders(ctx)
	if err != nil {
		return Outcome{}, err
	}
	if len(folders) == 0 {
		return ok("You don't have any folders yet"), nil
	}

	lines := make([]string, 0, len(folders))
	for _, f := range folders {
		count, err := s.db.CountTasks(ctx, f.ID)
		if err != nil {
			return Outcome{}, err
		}
		lines = append(lines, fmt.Sprintf("%s %s (%d tasks)", f.Emoji, f.Name, count))
	}
	return ok("Your folders:\n%s", strings.Join(lines, "\n")), nil
}

// DeleteTask deletes the earliest-created task with the given name.
func (s *Service) DeleteTask(ctx context.Context, name string) (Outcome, error) {
	tasks, err := s.db.GetTasksByName(ctx, name)
	if err != nil {
		return Outcome{}, err
	}
	if len(tasks) == 0 {
		return notFound("Task '%s' not found", name), nil
	}
	if err := s.db.DeleteTask(ctx, tasks[0].ID); err != nil {
		return Outcome{}, err
	}
	return ok("Deleted task '%s'", name), nil
}

// DeleteFolder deletes a folder and all its tasks. The cascade is not
// transactional: a store failure mid-sequence can leave orphans.
func (s *Service) DeleteFolder(ctx context.Context, name string) (Outcome, error) {
	id := model.FolderID(name)

	exists, err := s.db.FolderExists(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	if !exists {
		return notFound("Folder '%s' doesn't exist", name), nil
	}

	tasks, err := s.db.GetTasksByFolder(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	for _, t := range tasks {
		if err := s.db.DeleteTask(ctx, t.ID); err != nil {
			return Outcome{}, err
		}
	}
	if err := s.db.DeleteFolder(ctx, id); err != nil {
		return Outcome{}, err
	}
	return ok("Deleted folder '%s'", name), nil
}

// MoveTask re-points the earliest-created task with the given name at
// the destination folder. The destination is checked first.
func (s *Service) MoveTask(ctx context.Context, name, destFolder string) (Outcome, error) {
	destID := model.FolderID(destFolder)

	exists, err := s.db.FolderExists(ctx, destID)
	if err != nil {
		return Outcome{}, err
	}
	if !exists {
		return notFound("Folder '%s' doesn't exist", destFolder), nil
	}

	tasks, err := s.db.GetTasksByName(ctx, name)
	if err != nil {
		return Outcome{}, err
	}
	if len(tasks) == 0 {
		return notFound("Task '%s' not found", name), nil
	}
	if err := s.db.UpdateTask(ctx, tasks[0].ID, map[string]any{"folder": destID}); err != nil {
		return Outcome{}, err
	}
	return ok("Moved '%s' to %s", name, destFolder), nil
}

// RenameFolder renames a folder: a new document is created under the new
// id, every task is re-pointed, and the old document is deleted. The
// creation timestamp carries over. Not transactional.
func (s *Service) RenameFolder(ctx context.Context, oldName, newName, newEmoji string) (Outcome, error) {
	oldID := model.FolderID(oldName)
	newID := model.FolderID(newName)

	oldFolder, err := s.db.GetFolder(ctx, oldID)
	if err != nil {
		return Outcome{}, err
	}
	if oldFolder == nil {
		return notFound("Folder '%s' doesn't exist", oldName), nil
	}

	if newID != oldID {
		exists, err := s.db.FolderExists(ctx, newID)
		if err != nil {
			return Outcome{}, err
		}
		if exists {
			return conflict("A folder named '%s' already exists", newName), nil
		}
	}

	emoji := newEmoji
	if emoji == "" {
		emoji = oldFolder.Emoji
	}
	if err := s.db.PutFolder(ctx, &model.Folder{
		ID:        newID,
		Name:      newName,
		Emoji:     emoji,
		CreatedAt: oldFolder.CreatedAt,
	}); err != nil {
		return Outcome{}, err
	}

	tasks, err := s.db.GetTasksByFolder(ctx, oldID)
	if err != nil {
		return Outcome{}, err
	}
	for _, t := range tasks {
		if err := s.db.UpdateTask(ctx, t.ID, map[string]any{"folder": newID}); err != nil {
			return Outcome{}, err
		}
	}

	// A case-only rename reuses the same id; deleting would drop the
	// folder we just wrote.
	if newID != oldID {
		if err := s.db.DeleteFolder(ctx, oldID); err != nil {
			return Outcome{}, err
		}
	}
	return ok("Renamed folder to '%s'", newName), nil
}

// EditTaskParams holds the optional new values for EditTask. Empty
// fields are left unchanged.
type EditTaskParams struct {
	Name       string
	Folder     string
	Recurrence string
	Time       string
	Duration   string
}

// EditTask partial-updates the earliest-created task with the old name.
// An empty parameter set is a no-op success.
func (s *Service) EditTask(ctx context.Context, oldName string, p EditTaskParams) (Outcome, error) {
	tasks, err := s.db.GetTasksByName(ctx, oldName)
	if err != nil {
		return Outcome{}, err
	}
	if len(tasks) == 0 {
		return notFound("Task '%s' not found", oldName), nil
	}

	updates := map[string]any{}
	if p.Name != "" {
		updates["name"] = p.Name
	}
	if p.Folder != "" {
		newID := model.FolderID(p.Folder)
		exists, err := s.db.FolderExists(ctx, newID)
		if err != nil {
			return Outcome{}, err
		}
		if !exists {
			return notFound("Folder '%s' doesn't exist", p.Folder), nil
		}
		updates["folder"] = newID
	}
	if p.Recurrence != "" {
		updates["recurrence"] = p.Recurrence
	}
	if p.Time != "" {
		updates["time"] = p.Time
	}
	if p.Duration != "" {
		updates["duration"] = p.Duration
	}

	if len(updates) > 0 {
		if err := s.db.UpdateTask(ctx, tasks[0].ID, updates); err != nil {
			return Outcome{}, err
		}
	}

	finalName := oldName
	if p.Name != "" {
		finalName = p.Name
	}
	return ok("Updated '%s'", finalName), nil
}
