// Package engine runs the sync operations: it pairs course folders in the
// vault with remote courses and regenerates each folder's documents.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bianoble/canvas-sync/internal/canvas"
	"github.com/bianoble/canvas-sync/internal/config"
	"github.com/bianoble/canvas-sync/internal/render"
	"github.com/bianoble/canvas-sync/internal/vault"
)

// Client is the subset of the remote API the engine reads from.
type Client interface {
	ListActiveCourses(ctx context.Context) ([]canvas.Course, error)
	ListAssignments(ctx context.Context, courseID int64) ([]canvas.Assignment, error)
	ListEnrollments(ctx context.Context, courseID int64) ([]canvas.Enrollment, error)
}

var _ Client = (*canvas.Client)(nil)

// Level is the severity of a notice.
type Level int

const (
	// LevelInfo is progress and counts.
	LevelInfo Level = iota
	LevelSuccess
	// LevelWarn is an empty or unmatched vault. Nothing failed.
	LevelWarn
	// LevelError is a configuration or remote failure.
	LevelError
)

// Notifier shows short user-facing messages. It is separate from logging:
// notices are what a user sees after running a command.
type Notifier interface {
	Notify(level Level, msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(level Level, msg string)

// Notify calls f(level, msg).
func (f NotifierFunc) Notify(level Level, msg string) { f(level, msg) }

// SyncEngine orchestrates course discovery, matching and document writes.
type SyncEngine struct {
	Client   Client
	Vault    *vault.Vault
	Settings *config.Settings
	// Renderer defaults to one built from Settings.
	Renderer *render.Renderer
	Logger   *zap.Logger
	Notifier Notifier
	// Now defaults to time.Now.
	Now func() time.Time

	mu sync.Mutex
}

// SyncOptions configures a sync operation.
type SyncOptions struct {
	DryRun bool
}

func (e *SyncEngine) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func (e *SyncEngine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *SyncEngine) concurrency() int {
	if e.Settings.Concurrency < 1 {
		return 1
	}
	return e.Settings.Concurrency
}

func (e *SyncEngine) renderer() *render.Renderer {
	if e.Renderer != nil {
		return e.Renderer
	}
	loc, err := e.Settings.Location()
	if err != nil {
		e.logger().Warn("falling back to local time", zap.Error(err))
		loc = time.Local
	}
	return &render.Renderer{BaseURL: e.Settings.RemoteBaseURL, Location: loc}
}

// notify is safe to call from concurrent folder workers.
func (e *SyncEngine) notify(level Level, format string, args ...any) {
	if e.Notifier == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Notifier.Notify(level, fmt.Sprintf(format, args...))
}

// courseFolders lists the folders under the sync root. A missing root is
// reported to the user and treated as empty, as is any other scan failure.
func (e *SyncEngine) courseFolders() []vault.CourseFolder {
	root := e.Settings.SyncRootPath
	folders, err := e.Vault.ListCourseFolders(root)
	switch {
	case errors.Is(err, vault.ErrRootNotFound):
		e.notify(LevelWarn, "Sync folder %q does not exist", root)
		return nil
	case err != nil:
		e.logger().Error("listing course folders", zap.String("root", root), zap.Error(err))
		return nil
	}
	return folders
}

// activeCourses checks the settings and fetches the course list, telling
// the user when either fails.
func (e *SyncEngine) activeCourses(ctx context.Context) ([]canvas.Course, error) {
	if err := e.Settings.RequireRemote(); err != nil {
		e.notify(LevelError, "%s", err.Error())
		return nil, err
	}
	courses, err := e.Client.ListActiveCourses(ctx)
	if err != nil {
		e.notify(LevelError, "Error fetching courses from Canvas: %s", err.Error())
		e.logger().Error("canvas API error", zap.Error(err))
		return nil, err
	}
	e.logger().Debug("fetched active courses", zap.Int("count", len(courses)))
	return courses, nil
}
