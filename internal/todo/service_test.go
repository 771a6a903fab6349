package todo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/voicelog/backend/internal/database"
)

// newTestService backs a Service with a throwaway SQLite store and a
// deterministic clock that advances one second per call.
func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := NewService(db)
	tick := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return svc
}

func mustOK(t *testing.T) func(out Outcome, err error) Outcome {
	return func(out Outcome, err error) Outcome {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.OK() {
			t.Fatalf("expected success, got code %d: %s", out.Code, out.Message)
		}
		return out
	}
}

func TestCreateFolder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	out := mustOK(t)(svc.CreateFolder(ctx, "Groceries", "🛒"))
	if out.Message != "Created folder 🛒 Groceries" {
		t.Errorf("message = %q", out.Message)
	}

	// No emoji: the inner gap stays, only the edges are trimmed.
	out = mustOK(t)(svc.CreateFolder(ctx, "Work", ""))
	if out.Message != "Created folder  Work" {
		t.Errorf("message = %q", out.Message)
	}
}

func TestCreateFolderDuplicate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustOK(t)(svc.CreateFolder(ctx, "Groceries", "🛒"))

	// Same derived id, different display name.
	out, err := svc.CreateFolder(ctx, "groceries", "🥕")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if out.Code != CodeConflict {
		t.Errorf("code = %d, want conflict", out.Code)
	}
	if out.Message != "Folder 'groceries' already exists" {
		t.Errorf("message = %q", out.Message)
	}
}

func TestCreateTask(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustOK(t)(svc.CreateFolder(ctx, "Groceries", "🛒"))
	out := mustOK(t)(svc.CreateTask(ctx, "Buy milk", "Groceries", "", "", ""))
	if out.Message != "Created task 'Buy milk' in Groceries" {
		t.Errorf("message = %q", out.Message)
	}
}

func TestCreateTaskMissingFolder(t *testing.T) {
	svc := newTestService(t)

	out, err := svc.CreateTask(context.Background(), "Buy milk", "Nowhere", "", "", "")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if out.Code != CodeNotFound {
		t.Errorf("code = %d, want not-found", out.Code)
	}
	if out.Message != "Folder 'Nowhere' doesn't exist" {
		t.Errorf("message = %q", out.Message)
	}
}

func TestFolderContents(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustOK(t)(svc.CreateFolder(ctx, "Groceries", "🛒"))

	out := mustOK(t)(svc.FolderContents(ctx, "Groceries"))
	if out.Message != "🛒 Groceries is empty" {
		t.Errorf("empty message = %q", out.Message)
	}

	mustOK(t)(svc.CreateTask(ctx, "Buy milk", "Groceries", "", "", ""))
	mustOK(t)(svc.CreateTask(ctx, "Buy eggs", "Groceries", "", "", ""))

	out = mustOK(t)(svc.FolderContents(ctx, "Groceries"))
	want := "🛒 Groceries:\n○ Buy milk\n○ Buy eggs"
	if out.Message != want {
		t.Errorf("message = %q, want %q", out.Message, want)
	}
}

func TestFolderContentsMissingFolder(t *testing.T) {
	svc := newTestService(t)

	out, err := svc.FolderContents(context.Background(), "Nope")
	if err != nil {
		t.Fatalf("FolderContents: %v", err)
	}
	if out.Code != CodeNotFound || out.Message != "Folder 'Nope' doesn't exist" {
		t.Errorf("got %d %q", out.Code, out.Message)
	}
}

func TestListFolders(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	out := mustOK(t)(svc.ListFolders(ctx))
	if out.Message != "You don't have any folders yet" {
		t.Errorf("empty message = %q", out.Message)
	}

	mustOK(t)(svc.CreateFolder(ctx, "Groceries", "🛒"))
	mustOK(t)(svc.CreateFolder(ctx, "Work", "💼"))
	mustOK(t)(svc.CreateTask(ctx, "Buy milk", "Groceries", "", "", ""))

	out = mustOK(t)(svc.ListFolders(ctx))
	want := "Your folders:\n🛒 Groceries (1 tasks)\n💼 Work (0 tasks)"
	if out.Message != want {
		t.Errorf("message = %q, want %q", out.Message, want)
	}
}

func TestDeleteTask(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustOK(t)(svc.CreateFolder(ctx, "Groceries", "🛒"))
	mustOK(t)(svc.CreateTask(ctx, "Buy milk", "Groceries", "", "", ""))

	out := mustOK(t)(svc.DeleteTask(ctx, "Buy milk"))
	if out.Message != "Deleted task 'Buy milk'" {
		t.Errorf("message = %q", out.Message)
	}

	// Second delete: the task is gone.
	out, err := svc.DeleteTask(ctx, "Buy milk")
	if err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if out.Code != CodeNotFound || out.Message != "Task 'Buy milk' not found" {
		t.Errorf("got %d %q", out.Code, out.Message)
	}
}

func TestDeleteTaskEarliestWins(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustOK(t)(svc.CreateFolder(ctx, "Home", ""))
	mustOK(t)(svc.CreateFolder(ctx, "Work", ""))
	mustOK(t)(svc.CreateTask(ctx, "Call mom", "Home", "", "", ""))
	mustOK(t)(svc.CreateTask(ctx, "Call mom", "Work", "", "", ""))

	mustOK(t)(svc.DeleteTask(ctx, "Call mom"))

	// The older duplicate (in Home) went first.
	out := mustOK(t)(svc.FolderContents(ctx, "Home"))
	if out.Message != " Home is empty" {
		t.Errorf("Home contents = %q", out.Message)
	}
	out = mustOK(t)(svc.FolderContents(ctx, "Work"))
	if out.Message != " Work:\n○ Call mom" {
		t.Errorf("Work contents = %q", out.Message)
	}
}

func TestDeleteFolderCascades(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustOK(t)(svc.CreateFolder(ctx, "Groceries", "🛒"))
	mustOK(t)(svc.CreateTask(ctx, "Buy milk", "Groceries", "", "", ""))
	mustOK(t)(svc.CreateTask(ctx, "Buy eggs", "Groceries", "", "", ""))

	out := mustOK(t)(svc.DeleteFolder(ctx, "Groceries"))
	if out.Message != "Deleted folder 'Groceries'" {
		t.Errorf("message = %q", out.Message)
	}

	// The tasks went with the folder.
	for _, name := range []string{"Buy milk", "Buy eggs"} {
		out, err := svc.DeleteTask(ctx, name)
		if err != nil {
			t.Fatalf("DeleteTask: %v", err)
		}
		if out.Code != CodeNotFound {
			t.Errorf("task %q survived folder deletion", name)
		}
	}
}

func TestDeleteFolderMissing(t *testing.T) {
	svc := newTestService(t)

	out, err := svc.DeleteFolder(context.Background(), "Nope")
	if err != nil {
		t.Fatalf("DeleteFolder: %v", err)
	}
	if out.Code != CodeNotFound || out.Message != "Folder 'Nope' doesn't exist" {
		t.Errorf("got %d %q", out.Code, out.Message)
	}
}

func TestMoveTask(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustOK(t)(svc.CreateFolder(ctx, "Groceries", "🛒"))
	mustOK(t)(svc.CreateFolder(ctx, "Errands", "🚗"))
	mustOK(t)(svc.CreateTask(ctx, "Buy milk", "Groceries", "", "", ""))

	out := mustOK(t)(svc.MoveTask(ctx, "Buy milk", "Errands"))
	if out.Message != "Moved 'Buy milk' to Errands" {
		t.Errorf("message = %q", out.Message)
	}

	out = mustOK(t)(svc.FolderContents(ctx, "Errands"))
	if out.Message != "🚗 Errands:\n○ Buy milk" {
		t.Errorf("Errands contents = %q", out.Message)
	}
	out = mustOK(t)(svc.FolderContents(ctx, "Groceries"))
	if out.Message != "🛒 Groceries is empty" {
		t.Errorf("Groceries contents = %q", out.Message)
	}
}

func TestMoveTaskDestinationCheckedFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Neither the task nor the folder exists; the folder message wins.
	out, err := svc.MoveTask(ctx, "Ghost task", "Ghost folder")
	if err != nil {
		t.Fatalf("MoveTask: %v", err)
	}
	if out.Message != "Folder 'Ghost folder' doesn't exist" {
		t.Errorf("message = %q", out.Message)
	}

	mustOK(t)(svc.CreateFolder(ctx, "Errands", ""))
	out, err = svc.MoveTask(ctx, "Ghost task", "Errands")
	if err != nil {
		t.Fatalf("MoveTask: %v", err)
	}
	if out.Code != CodeNotFound || out.Message != "Task 'Ghost task' not found" {
		t.Errorf("got %d %q", out.Code, out.Message)
	}
}

func TestRenameFolder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustOK(t)(svc.CreateFolder(ctx, "Groceries", "🛒"))
	mustOK(t)(svc.CreateTask(ctx, "Buy milk", "Groceries", "", "", ""))

	out := mustOK(t)(svc.RenameFolder(ctx, "Groceries", "Food Shopping", ""))
	if out.Message != "Renamed folder to 'Food Shopping'" {
		t.Errorf("message = %q", out.Message)
	}

	// The old id is gone, the task moved, the emoji carried over.
	out, err := svc.FolderContents(ctx, "Groceries")
	if err != nil {
		t.Fatalf("FolderContents: %v", err)
	}
	if out.Code != CodeNotFound {
		t.Error("old folder name should be gone")
	}
	out = mustOK(t)(svc.FolderContents(ctx, "Food Shopping"))
	if out.Message != "🛒 Food Shopping:\n○ Buy milk" {
		t.Errorf("contents = %q", out.Message)
	}
}

func TestRenameFolderConflict(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustOK(t)(svc.CreateFolder(ctx, "Groceries", "🛒"))
	mustOK(t)(svc.CreateFolder(ctx, "Errands", "🚗"))

	out, err := svc.RenameFolder(ctx, "Groceries", "Errands", "")
	if err != nil {
		t.Fatalf("RenameFolder: %v", err)
	}
	if out.Code != CodeConflict || out.Message != "A folder named 'Errands' already exists" {
		t.Errorf("got %d %q", out.Code, out.Message)
	}
}

func TestRenameFolderCaseOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustOK(t)(svc.CreateFolder(ctx, "groceries", "🛒"))
	mustOK(t)(svc.CreateTask(ctx, "Buy milk", "groceries", "", "", ""))

	// Old and new name derive the same id; the folder must survive.
	out := mustOK(t)(svc.RenameFolder(ctx, "groceries", "Groceries", ""))
	if out.Message != "Renamed folder to 'Groceries'" {
		t.Errorf("message = %q", out.Message)
	}
	out = mustOK(t)(svc.FolderContents(ctx, "Groceries"))
	if out.Message != "🛒 Groceries:\n○ Buy milk" {
		t.Errorf("contents = %q", out.Message)
	}
}

func TestRenameFolderMissing(t *testing.T) {
	svc := newTestService(t)

	out, err := svc.RenameFolder(context.Background(), "Nope", "Whatever", "")
	if err != nil {
		t.Fatalf("RenameFolder: %v", err)
	}
	if out.Code != CodeNotFound || out.Message != "Folder 'Nope' doesn't exist" {
		t.Errorf("got %d %q", out.Code, out.Message)
	}
}

func TestEditTask(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustOK(t)(svc.CreateFolder(ctx, "Groceries", "🛒"))
	mustOK(t)(svc.CreateFolder(ctx, "Errands", "🚗"))
	mustOK(t)(svc.CreateTask(ctx, "Buy milk", "Groceries", "", "", ""))

	out := mustOK(t)(svc.EditTask(ctx, "Buy milk", EditTaskParams{
		Name:   "Buy oat milk",
		Folder: "Errands",
		Time:   "18:00",
	}))
	if out.Message != "Updated 'Buy oat milk'" {
		t.Errorf("message = %q", out.Message)
	}

	out = mustOK(t)(svc.FolderContents(ctx, "Errands"))
	if out.Message != "🚗 Errands:\n○ Buy oat milk" {
		t.Errorf("contents = %q", out.Message)
	}
}

func TestEditTaskNoChanges(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustOK(t)(svc.CreateFolder(ctx, "Groceries", "🛒"))
	mustOK(t)(svc.CreateTask(ctx, "Buy milk", "Groceries", "", "", ""))

	// All parameters empty: a successful no-op reporting the old name.
	out := mustOK(t)(svc.EditTask(ctx, "Buy milk", EditTaskParams{}))
	if out.Message != "Updated 'Buy milk'" {
		t.Errorf("message = %q", out.Message)
	}
}

func TestEditTaskMissingTask(t *testing.T) {
	svc := newTestService(t)

	// The task lookup comes before any folder check.
	out, err := svc.EditTask(context.Background(), "Ghost", EditTaskParams{Folder: "Nowhere"})
	if err != nil {
		t.Fatalf("EditTask: %v", err)
	}
	if out.Code != CodeNotFound || out.Message != "Task 'Ghost' not found" {
		t.Errorf("got %d %q", out.Code, out.Message)
	}
}

func TestEditTaskMissingTargetFolder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustOK(t)(svc.CreateFolder(ctx, "Groceries", "🛒"))
	mustOK(t)(svc.CreateTask(ctx, "Buy milk", "Groceries", "", "", ""))

	out, err := svc.EditTask(ctx, "Buy milk", EditTaskParams{Name: "Renamed", Folder: "Nowhere"})
	if err != nil {
		t.Fatalf("EditTask: %v", err)
	}
	if out.Code != CodeNotFound || out.Message != "Folder 'Nowhere' doesn't exist" {
		t.Errorf("got %d %q", out.Code, out.Message)
	}

	// The rename must not have been applied.
	out = mustOK(t)(svc.FolderContents(ctx, "Groceries"))
	if out.Message != "🛒 Groceries:\n○ Buy milk" {
		t.Errorf("contents = %q", out.Message)
	}
}
