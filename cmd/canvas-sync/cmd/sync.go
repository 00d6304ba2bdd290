package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bianoble/canvas-sync/internal/engine"
)

var syncDryRun bool

// syncFunc is one of the engine's sync operations.
type syncFunc func(e *engine.SyncEngine, ctx context.Context, opts engine.SyncOptions) (*engine.SyncResult, error)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync every current course folder with Canvas",
	Long: `Lists the folders under the sync root, matches each one to an active Canvas
course and writes Course-Overview.md, Assignments-<folder>.md and
Grades-<folder>.md into it. Existing documents are overwritten, including any
notes added to the overview.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd.Context(), (*engine.SyncEngine).SyncAll)
	},
}

// runSync loads settings, runs op and prints its result.
func runSync(ctx context.Context, op syncFunc) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	eng, err := newEngine(s)
	if err != nil {
		return err
	}

	result, err := op(eng, ctx, engine.SyncOptions{DryRun: syncDryRun})
	if err != nil {
		return notified(err)
	}
	return printResult(result, syncDryRun)
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "show what would change without writing files")
	rootCmd.AddCommand(syncCmd)
}
