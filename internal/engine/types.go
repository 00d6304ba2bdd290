package engine

import (
	"github.com/bianoble/canvas-sync/internal/canvas"
	"github.com/bianoble/canvas-sync/internal/match"
	"github.com/bianoble/canvas-sync/internal/vault"
)

// FileAction represents an action taken on a single generated document.
type FileAction struct {
	Path   string
	Action vault.Action
}

// FolderError represents an error associated with a specific course folder.
type FolderError struct {
	Folder string
	Err    error
}

func (e FolderError) Error() string {
	return e.Folder + ": " + e.Err.Error()
}

func (e FolderError) Unwrap() error {
	return e.Err
}

// SyncResult holds the outcome of a sync operation.
type SyncResult struct {
	// Synced is the count reported to the user: matched folders for a full
	// sync, folders whose fetch succeeded for the partial ones.
	Synced    int
	Written   []FileAction
	Unmatched []string
	Errors    []FolderError
}

// ConnectionResult holds the outcome of a connection test.
type ConnectionResult struct {
	Courses int
	Folders int
	Root    string
}

// MatchReport describes how folders pair with remote courses, without
// fetching any per-course data.
type MatchReport struct {
	Root      string
	Courses   []canvas.Course
	Pairs     []match.Pair
	Unmatched []vault.CourseFolder
}
