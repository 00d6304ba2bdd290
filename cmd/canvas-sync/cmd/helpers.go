package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bianoble/canvas-sync/internal/canvas"
	"github.com/bianoble/canvas-sync/internal/config"
	"github.com/bianoble/canvas-sync/internal/engine"
	apperrors "github.com/bianoble/canvas-sync/internal/errors"
	"github.com/bianoble/canvas-sync/internal/vault"
)

// stderr receives error output. Tests swap it for a buffer.
var stderr io.Writer = os.Stderr

// notifiedError is a failure the engine has already shown as a notice.
// Execute keeps the exit status but does not print it again.
type notifiedError struct {
	err error
}

func (e notifiedError) Error() string { return e.err.Error() }

func (e notifiedError) Unwrap() error { return e.err }

// notified marks err as already reported to the user.
func notified(err error) error {
	if err == nil {
		return nil
	}
	return notifiedError{err: err}
}

// reportError prints a command failure unless a notice already covered it.
func reportError(err error) {
	var n notifiedError
	if errors.As(err, &n) {
		return
	}
	errorf("%s", err)
}

// vaultRoot returns the absolute vault directory.
func vaultRoot() (string, error) {
	abs, err := filepath.Abs(vaultPath)
	if err != nil {
		return "", fmt.Errorf("resolving vault path: %w", err)
	}
	return abs, nil
}

// settingsPath is the file init and config set write to.
func settingsPath() (string, error) {
	if configPath != "" {
		return filepath.Abs(configPath)
	}
	root, err := vaultRoot()
	if err != nil {
		return "", err
	}
	return config.VaultSettingsPath(root), nil
}

// settingsLayers returns the files read by loadSettings, lowest precedence
// first. An explicit --config file sits on top of the discovered layers.
func settingsLayers() ([]config.ConfigLayerInfo, error) {
	root, err := vaultRoot()
	if err != nil {
		return nil, err
	}
	layers := config.DiscoverPaths(config.DiscoverOptions{VaultRoot: root})
	if configPath != "" {
		_, statErr := os.Stat(configPath)
		layers = append(layers, config.ConfigLayerInfo{
			Path:   configPath,
			Level:  config.LevelVault,
			Exists: statErr == nil,
		})
	}
	return layers, nil
}

// loadSettings reads every settings layer plus the environment and the
// vault's .env file.
func loadSettings() (*config.Settings, error) {
	root, err := vaultRoot()
	if err != nil {
		return nil, err
	}
	layers, err := settingsLayers()
	if err != nil {
		return nil, err
	}
	for _, l := range layers {
		if l.Exists {
			detail("settings layer (%s): %s", l.Level, l.Path)
		}
	}

	s, err := config.Load(config.LayerPaths(layers), config.WithEnvFile(config.EnvFilePath(root)))
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return s, nil
}

// newEngine wires the remote client, vault and notices for one run.
func newEngine(s *config.Settings) (*engine.SyncEngine, error) {
	root, err := vaultRoot()
	if err != nil {
		return nil, err
	}

	client := canvas.NewClient(s.RemoteBaseURL, s.APIToken,
		canvas.WithTimeout(s.Timeout),
		canvas.WithRateLimit(s.RequestsPerSecond),
	)

	return &engine.SyncEngine{
		Client:   client,
		Vault:    vault.NewOS(root),
		Settings: s,
		Logger:   logger,
		Notifier: engine.NotifierFunc(notice),
	}, nil
}

// notice prints an engine notice. Failures go to stderr and are shown even
// in quiet mode.
func notice(level engine.Level, msg string) {
	style, isErr := noticeStyle(level)
	if isErr {
		fmt.Fprintln(stderr, styled(style, msg))
		return
	}
	if !quiet {
		fmt.Println(styled(style, msg))
	}
}

// printResult lists what a sync run did and turns recorded failures into
// an error so the process exits non-zero. Failed fetches were already
// shown as notices. Failed vault writes are logged and only listed with
// --verbose.
func printResult(result *engine.SyncResult, dryRun bool) error {
	if dryRun {
		info("Dry run — no files written.")
	}

	for _, f := range result.Written {
		info("  %s  %s", styled(styleMuted, string(f.Action)), f.Path)
	}
	for _, name := range result.Unmatched {
		detail("no match  %s", name)
	}
	for _, e := range result.Errors {
		if apperrors.IsCode(e.Err, apperrors.CodeFileSystem) {
			detail("skipped   %s: %s", e.Folder, e.Err)
		}
	}

	info("")
	info("Sync complete: %d written, %d unmatched, %d errors.",
		len(result.Written), len(result.Unmatched), len(result.Errors))

	if len(result.Errors) > 0 {
		return fmt.Errorf("%d step(s) failed", len(result.Errors))
	}
	return nil
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		fmt.Printf("  "+format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(stderr, styled(styleError, "error: ")+format+"\n", args...)
}
