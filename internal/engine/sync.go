package engine

import (
	"context"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bianoble/canvas-sync/internal/match"
	"github.com/bianoble/canvas-sync/internal/render"
	"github.com/bianoble/canvas-sync/internal/vault"
)

type step uint8

const (
	stepOverview step = 1 << iota
	stepAssignments
	stepGrades

	stepAll = stepOverview | stepAssignments | stepGrades
)

// folderOutcome collects what happened to one matched folder.
type folderOutcome struct {
	written []FileAction
	errors  []FolderError
	// assignments and grades record whether that step produced a document.
	assignments bool
	grades      bool
}

// SyncAll regenerates the overview, assignments and grades documents of
// every course folder that matches an active course.
func (e *SyncEngine) SyncAll(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	e.notify(LevelInfo, "Syncing current Canvas courses...")

	result := &SyncResult{}
	folders := e.courseFolders()
	if len(folders) == 0 {
		e.notify(LevelWarn, "No course folders found in %s", e.Settings.SyncRootPath)
		return result, nil
	}

	outcomes, pairs, err := e.run(ctx, folders, stepAll, opts, result)
	if err != nil {
		return result, err
	}
	result.Synced = len(pairs)
	e.collect(result, outcomes)

	if result.Synced > 0 {
		e.notify(LevelSuccess, "✓ Synced %d course(s) successfully!", result.Synced)
	} else {
		e.notify(LevelWarn, "No matching Canvas courses found for your current folders")
	}
	return result, nil
}

// SyncAssignments regenerates only the assignments documents. Synced counts
// the folders whose assignment list was fetched.
func (e *SyncEngine) SyncAssignments(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	e.notify(LevelInfo, "Fetching assignments for current courses...")

	result := &SyncResult{}
	outcomes, _, err := e.run(ctx, e.courseFolders(), stepAssignments, opts, result)
	if err != nil {
		return result, err
	}
	for _, o := range outcomes {
		if o.assignments {
			result.Synced++
		}
	}
	e.collect(result, outcomes)

	e.notify(LevelSuccess, "✓ Updated assignments for %d course(s)", result.Synced)
	return result, nil
}

// SyncGrades regenerates only the grades documents. Synced counts the
// folders whose course returned at least one enrollment.
func (e *SyncEngine) SyncGrades(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	e.notify(LevelInfo, "Fetching grades for current courses...")

	result := &SyncResult{}
	outcomes, _, err := e.run(ctx, e.courseFolders(), stepGrades, opts, result)
	if err != nil {
		return result, err
	}
	for _, o := range outcomes {
		if o.grades {
			result.Synced++
		}
	}
	e.collect(result, outcomes)

	e.notify(LevelSuccess, "✓ Updated grades for %d course(s)", result.Synced)
	return result, nil
}

// run fetches the course list, pairs it with folders and processes every
// pair. Outcomes are indexed like the returned pairs, which follow folder
// order regardless of how many folders run at once.
func (e *SyncEngine) run(ctx context.Context, folders []vault.CourseFolder, steps step, opts SyncOptions, result *SyncResult) ([]folderOutcome, []match.Pair, error) {
	courses, err := e.activeCourses(ctx)
	if err != nil {
		return nil, nil, err
	}

	pairs, unmatched := match.PairAll(folders, courses)
	for _, f := range unmatched {
		e.logger().Info("no Canvas course found for folder", zap.String("folder", f.Name))
		result.Unmatched = append(result.Unmatched, f.Name)
	}

	r := e.renderer()
	now := e.now()
	outcomes := make([]folderOutcome, len(pairs))

	var g errgroup.Group
	g.SetLimit(e.concurrency())
	for i, p := range pairs {
		i, p := i, p
		g.Go(func() error {
			outcomes[i] = e.syncFolder(ctx, r, p, steps, now, opts)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes, pairs, nil
}

func (e *SyncEngine) collect(result *SyncResult, outcomes []folderOutcome) {
	for _, o := range outcomes {
		result.Written = append(result.Written, o.written...)
		result.Errors = append(result.Errors, o.errors...)
	}
}

// syncFolder runs the requested steps for one pair, in order. A failed step
// is recorded and the remaining steps still run.
func (e *SyncEngine) syncFolder(ctx context.Context, r *render.Renderer, p match.Pair, steps step, now time.Time, opts SyncOptions) folderOutcome {
	var out folderOutcome
	log := e.logger().With(zap.String("folder", p.Folder.Name), zap.Int64("course_id", p.Course.ID))
	fail := func(err error) {
		out.errors = append(out.errors, FolderError{Folder: p.Folder.Name, Err: err})
	}

	if steps&stepOverview != 0 {
		doc, err := r.Overview(p.Course, p.Folder.Name)
		if err == nil {
			err = e.write(log, &out, filepath.Join(p.Folder.Path, render.OverviewFile), doc, opts)
		}
		if err != nil {
			fail(err)
		}
	}

	if steps&stepAssignments != 0 {
		assignments, err := e.Client.ListAssignments(ctx, p.Course.ID)
		if err != nil {
			e.notify(LevelError, "Error fetching assignments: %s", err.Error())
			log.Error("canvas API error", zap.Error(err))
			fail(err)
		} else {
			out.assignments = true
			doc, err := r.Assignments(p.Course, assignments, now)
			if err == nil {
				err = e.write(log, &out, filepath.Join(p.Folder.Path, render.AssignmentsFile(p.Folder.Name)), doc, opts)
			}
			if err != nil {
				fail(err)
			}
		}
	}

	if steps&stepGrades != 0 {
		enrollments, err := e.Client.ListEnrollments(ctx, p.Course.ID)
		switch {
		case err != nil:
			e.notify(LevelError, "Error fetching grades: %s", err.Error())
			log.Error("canvas API error", zap.Error(err))
			fail(err)
		case len(enrollments) == 0:
			log.Debug("no enrollment returned, grades left untouched")
		default:
			out.grades = true
			doc, err := r.Grades(p.Course, enrollments[0].Grades, now)
			if err == nil {
				err = e.write(log, &out, filepath.Join(p.Folder.Path, render.GradesFile(p.Folder.Name)), doc, opts)
			}
			if err != nil {
				fail(err)
			}
		}
	}

	return out
}

// write persists doc, or only plans the write on a dry run. Failures are
// logged here and not shown as notices.
func (e *SyncEngine) write(log *zap.Logger, out *folderOutcome, path, doc string, opts SyncOptions) error {
	var (
		action vault.Action
		err    error
	)
	if opts.DryRun {
		action, err = e.Vault.Plan(path)
	} else {
		action, err = e.Vault.Write(path, []byte(doc))
	}
	if err != nil {
		log.Error("writing document", zap.String("path", path), zap.Error(err))
		return err
	}
	log.Debug("document written", zap.String("path", path), zap.String("action", string(action)))
	out.written = append(out.written, FileAction{Path: path, Action: action})
	return nil
}
