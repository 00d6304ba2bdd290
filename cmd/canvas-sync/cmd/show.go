package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bianoble/canvas-sync/internal/render"
	"github.com/bianoble/canvas-sync/internal/vault"
)

var (
	showRaw   bool
	showWidth int
)

// documentFile maps a document kind to its file name inside folder.
func documentFile(kind, folder string) (string, error) {
	switch kind {
	case "overview":
		return render.OverviewFile, nil
	case "assignments":
		return render.AssignmentsFile(folder), nil
	case "grades":
		return render.GradesFile(folder), nil
	}
	return "", fmt.Errorf("unknown document %q — must be overview, assignments or grades", kind)
}

var showCmd = &cobra.Command{
	Use:   "show <folder> [overview|assignments|grades]",
	Short: "Print a generated document in the terminal",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := "overview"
		if len(args) == 2 {
			kind = args[1]
		}
		folder := args[0]
		name, err := documentFile(kind, folder)
		if err != nil {
			return err
		}

		s, err := loadSettings()
		if err != nil {
			return err
		}
		root, err := vaultRoot()
		if err != nil {
			return err
		}

		path := filepath.Join(s.SyncRootPath, folder, name)
		data, err := vault.NewOS(root).Read(path)
		if err != nil {
			if vault.IsNotExist(err) {
				return fmt.Errorf("%s has not been generated yet (run 'canvas-sync sync')", path)
			}
			return err
		}

		if showRaw {
			fmt.Print(string(data))
			return nil
		}
		fmt.Print(renderMarkdown(string(data), showWidth))
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "print the Markdown source")
	showCmd.Flags().IntVar(&showWidth, "width", 80, "word wrap width")
	rootCmd.AddCommand(showCmd)
}
