package engine

import (
	"context"
)

// CheckConnection fetches the active courses to prove the settings work,
// then counts the local course folders.
func (e *SyncEngine) CheckConnection(ctx context.Context) (*ConnectionResult, error) {
	result := &ConnectionResult{Root: e.Settings.SyncRootPath}

	courses, err := e.activeCourses(ctx)
	if err != nil {
		return result, err
	}
	result.Courses = len(courses)
	e.notify(LevelSuccess, "✓ Connected! Found %d active courses on Canvas", result.Courses)

	result.Folders = len(e.courseFolders())
	e.notify(LevelInfo, "Found %d course folders in %s", result.Folders, result.Root)
	return result, nil
}
