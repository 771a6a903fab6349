// Package model defines shared data structures.
package model

import (
	"strings"
	"time"
)

// DefaultRecurrence is used when a task is created without one.
const DefaultRecurrence = "once"

// Folder is a named grouping of tasks. Its ID is derived from the name,
// so two names that normalize to the same id cannot coexist.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

// Task is a single to-do item belonging to exactly one folder.
// ID is assigned by the store. Time and Duration are free-form strings;
// empty means unset.
type Task struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Folder     string    `json:"folder"` // folder ID, not display name
	Completed  bool      `json:"completed"`
	Recurrence string    `json:"recurrence"`
	Time       string    `json:"time"`
	Duration   string    `json:"duration"`
	CreatedAt  time.Time `json:"created_at"`
}

// FolderID derives the document id from a display name: lower-cased,
// spaces replaced with underscores.
func FolderID(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
