package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bianoble/canvas-sync/internal/engine"
)

var assignmentsCmd = &cobra.Command{
	Use:   "assignments",
	Short: "Refresh only the assignments documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd.Context(), (*engine.SyncEngine).SyncAssignments)
	},
}

func init() {
	assignmentsCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "show what would change without writing files")
	rootCmd.AddCommand(assignmentsCmd)
}
