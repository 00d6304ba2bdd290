package cmd

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Test the Canvas connection and count course folders",
	Long: `Fetches your active Canvas courses with the configured URL and token, then
counts the course folders under the sync root. Nothing is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		eng, err := newEngine(s)
		if err != nil {
			return err
		}

		_, err = eng.CheckConnection(cmd.Context())
		return notified(err)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
