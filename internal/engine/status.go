package engine

import (
	"context"

	"github.com/bianoble/canvas-sync/internal/match"
)

// Pairs reports which folder would receive which course, without fetching
// per-course data or writing anything.
func (e *SyncEngine) Pairs(ctx context.Context) (*MatchReport, error) {
	report := &MatchReport{Root: e.Settings.SyncRootPath}

	folders := e.courseFolders()
	courses, err := e.activeCourses(ctx)
	if err != nil {
		return report, err
	}

	report.Courses = courses
	report.Pairs, report.Unmatched = match.PairAll(folders, courses)
	return report, nil
}
