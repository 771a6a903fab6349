// Package database provides storage backends for folders and tasks.
package database

import (
	"context"

	"github.com/voicelog/backend/internal/model"
)

// Store defines the interface for document storage operations.
// Both the SQLite and MongoDB implementations satisfy this interface.
// Every call is one independent round trip; there are no transactions.
type Store interface {
	Close() error

	// DatabaseType returns the name of the backend ("SQLite" or "MongoDB").
	DatabaseType() string

	// Folder operations. GetFolder returns (nil, nil) when the folder
	// does not exist. PutFolder is a full overwrite keyed on f.ID.
	FolderExists(ctx context.Context, id string) (bool, error)
	GetFolder(ctx context.Context, id string) (*model.Folder, error)
	PutFolder(ctx context.Context, f *model.Folder) error
	DeleteFolder(ctx context.Context, id string) error
	ListFolders(ctx context.Context) ([]model.Folder, error)

	// Task operations. InsertTask assigns and returns the task id.
	// Name-filtered scans are ordered by created_at then id, so the
	// first element is the earliest-created match.
	// UpdateTask merges the given fields into the existing document;
	// allowed keys: name, folder, completed, recurrence, time, duration.
	InsertTask(ctx context.Context, t *model.Task) (string, error)
	GetTasksByFolder(ctx context.Context, folderID string) ([]model.Task, error)
	GetTasksByName(ctx context.Context, name string) ([]model.Task, error)
	GetAllTasks(ctx context.Context) ([]model.Task, error)
	UpdateTask(ctx context.Context, id string, fields map[string]any) error
	DeleteTask(ctx context.Context, id string) error
	CountTasks(ctx context.Context, folderID string) (int, error)
}
