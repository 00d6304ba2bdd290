package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bianoble/canvas-sync/internal/engine"
)

var gradesCmd = &cobra.Command{
	Use:   "grades",
	Short: "Refresh only the grades documents",
	Long: `Fetches your enrollment in each matched course and rewrites
Grades-<folder>.md from its scores. Courses that return no enrollment are
left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd.Context(), (*engine.SyncEngine).SyncGrades)
	},
}

func init() {
	gradesCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "show what would change without writing files")
	rootCmd.AddCommand(gradesCmd)
}
