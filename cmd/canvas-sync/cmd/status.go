package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which folder matches which Canvas course",
	Long: `Lists every course folder under the sync root next to the active Canvas
course it would be synced with. Only the course list is fetched; no
documents are written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		eng, err := newEngine(s)
		if err != nil {
			return err
		}

		report, err := eng.Pairs(cmd.Context())
		if err != nil {
			return notified(err)
		}

		if len(report.Pairs) == 0 && len(report.Unmatched) == 0 {
			info("No course folders found in %s", report.Root)
			return nil
		}

		fmt.Println(styled(styleHeader, fmt.Sprintf("%-30s %-12s %-8s %s", "FOLDER", "CODE", "ID", "COURSE")))
		for _, p := range report.Pairs {
			fmt.Printf("%-30s %-12s %-8s %s\n", p.Folder.Name, p.Course.CourseCode, strconv.FormatInt(p.Course.ID, 10), p.Course.Name)
		}
		for _, f := range report.Unmatched {
			fmt.Printf("%-30s %s\n", f.Name, styled(styleWarn, "(no match)"))
		}

		info("")
		info("%d of %d folder(s) matched; %d active course(s) on Canvas.",
			len(report.Pairs), len(report.Pairs)+len(report.Unmatched), len(report.Courses))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
