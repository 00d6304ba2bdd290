// Package canvassync provides the public Go library API for canvas-sync.
//
// canvas-sync pulls active courses, assignments and grades from a Canvas LMS
// instance into Markdown documents inside the matching folders of a note
// vault. This package exposes the sync operations for embedding in other Go
// programs.
//
// # Basic Usage
//
//	client, err := canvassync.New(canvassync.Options{
//	    VaultRoot: "/path/to/vault",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Regenerate every document
//	result, err := client.Sync(ctx, canvassync.SyncOptions{})
//
//	// Only refresh grades
//	result, err = client.FetchGrades(ctx, canvassync.SyncOptions{})
package canvassync

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/bianoble/canvas-sync/internal/canvas"
	"github.com/bianoble/canvas-sync/internal/config"
	"github.com/bianoble/canvas-sync/internal/engine"
	"github.com/bianoble/canvas-sync/internal/vault"
)

// SyncOptions configures a sync operation.
type SyncOptions struct {
	DryRun bool
}

// Syncer regenerates course documents.
type Syncer interface {
	Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error)
	FetchAssignments(ctx context.Context, opts SyncOptions) (*SyncResult, error)
	FetchGrades(ctx context.Context, opts SyncOptions) (*SyncResult, error)
}

// Options configures a canvas-sync client.
type Options struct {
	// VaultRoot is the note vault directory. Default: current directory.
	VaultRoot string

	// ConfigPath is an extra settings file layered above the vault's own.
	ConfigPath string

	// UserConfigPath overrides the user-level settings file. Set it to a
	// nonexistent path to ignore user settings.
	UserConfigPath string

	// NoEnv disables CANVAS_SYNC_* environment overrides and the vault's
	// .env file.
	NoEnv bool

	// HTTPClient replaces the default HTTP client.
	HTTPClient *http.Client

	// Logger receives diagnostic logs. Nil discards them.
	Logger *zap.Logger

	// Notify receives the short messages the CLI would print.
	Notify func(msg string)
}

// Client is the main entry point for the canvas-sync library.
// It implements Syncer.
type Client struct {
	settings *config.Settings
	vault    *vault.Vault
	remote   *canvas.Client
	logger   *zap.Logger
	notify   func(string)
}

var _ Syncer = (*Client)(nil)

// New loads the vault's settings and creates a Client.
func New(opts Options) (*Client, error) {
	root := opts.VaultRoot
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving vault root: %w", err)
	}

	layers := config.DiscoverPaths(config.DiscoverOptions{
		VaultRoot:      abs,
		UserConfigPath: opts.UserConfigPath,
	})
	paths := config.LayerPaths(layers)
	if opts.ConfigPath != "" {
		paths = append(paths, opts.ConfigPath)
	}

	var loadOpts []config.Option
	if opts.NoEnv {
		loadOpts = append(loadOpts, config.WithoutEnv())
	} else {
		loadOpts = append(loadOpts, config.WithEnvFile(config.EnvFilePath(abs)))
	}
	settings, err := config.Load(paths, loadOpts...)
	if err != nil {
		return nil, err
	}

	remoteOpts := []canvas.Option{
		canvas.WithTimeout(settings.Timeout),
		canvas.WithRateLimit(settings.RequestsPerSecond),
	}
	if opts.HTTPClient != nil {
		remoteOpts = append(remoteOpts, canvas.WithHTTPClient(opts.HTTPClient))
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		settings: settings,
		vault:    vault.NewOS(abs),
		remote:   canvas.NewClient(settings.RemoteBaseURL, settings.APIToken, remoteOpts...),
		logger:   logger,
		notify:   opts.Notify,
	}, nil
}

func (c *Client) engine() *engine.SyncEngine {
	e := &engine.SyncEngine{
		Client:   c.remote,
		Vault:    c.vault,
		Settings: c.settings,
		Logger:   c.logger,
	}
	if c.notify != nil {
		e.Notifier = engine.NotifierFunc(func(_ engine.Level, msg string) { c.notify(msg) })
	}
	return e
}

// Sync regenerates the overview, assignments and grades documents of every
// matched course folder.
func (c *Client) Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	res, err := c.engine().SyncAll(ctx, engine.SyncOptions{DryRun: opts.DryRun})
	return convertResult(res), err
}

// FetchAssignments regenerates only the assignments documents.
func (c *Client) FetchAssignments(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	res, err := c.engine().SyncAssignments(ctx, engine.SyncOptions{DryRun: opts.DryRun})
	return convertResult(res), err
}

// FetchGrades regenerates only the grades documents.
func (c *Client) FetchGrades(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	res, err := c.engine().SyncGrades(ctx, engine.SyncOptions{DryRun: opts.DryRun})
	return convertResult(res), err
}

// TestConnection checks the settings against the remote API and counts the
// local course folders.
func (c *Client) TestConnection(ctx context.Context) (*ConnectionResult, error) {
	res, err := c.engine().CheckConnection(ctx)
	if res == nil {
		return nil, err
	}
	return &ConnectionResult{Courses: res.Courses, Folders: res.Folders, Root: res.Root}, err
}

// Status reports which folders match which remote course.
func (c *Client) Status(ctx context.Context) (*StatusResult, error) {
	report, err := c.engine().Pairs(ctx)
	if report == nil {
		return nil, err
	}

	out := &StatusResult{Root: report.Root, Courses: len(report.Courses)}
	for _, p := range report.Pairs {
		out.Pairs = append(out.Pairs, CoursePair{
			Folder:     p.Folder.Name,
			CourseID:   p.Course.ID,
			CourseName: p.Course.Name,
			CourseCode: p.Course.CourseCode,
		})
	}
	for _, f := range report.Unmatched {
		out.Unmatched = append(out.Unmatched, f.Name)
	}
	return out, err
}

func convertResult(res *engine.SyncResult) *SyncResult {
	if res == nil {
		return nil
	}
	out := &SyncResult{Synced: res.Synced, Unmatched: res.Unmatched}
	for _, w := range res.Written {
		out.Written = append(out.Written, FileAction{Path: w.Path, Action: string(w.Action)})
	}
	for _, e := range res.Errors {
		out.Errors = append(out.Errors, FolderError{Folder: e.Folder, Err: e.Err})
	}
	return out
}
