package canvassync

// FileAction represents an action taken on a single generated document.
type FileAction struct {
	Path   string
	Action string // "created", "updated", "would-create", "would-update"
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

// CoursePair names a folder and the remote course synced into it.
type CoursePair struct {
	Folder     string
	CourseID   int64
	CourseName string
	CourseCode string
}

// StatusResult describes which folders would be synced.
type StatusResult struct {
	Root      string
	Courses   int
	Pairs     []CoursePair
	Unmatched []string
}
