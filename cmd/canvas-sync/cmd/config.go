package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bianoble/canvas-sync/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and change settings",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the effective settings",
	Long: `Shows every setting after merging the user settings file, the vault settings
file and CANVAS_SYNC_* environment overrides. The API token is masked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		keys := append(config.Keys(), s.MappingKeys()...)
		for _, key := range keys {
			v, err := s.Get(key)
			if err != nil {
				return err
			}
			if key == config.KeyAPIToken {
				v = maskToken(v)
			}
			fmt.Fprintf(out, "%-22s %s\n", key, v)
		}

		layers, err := settingsLayers()
		if err != nil {
			return err
		}
		for _, l := range layers {
			state := "missing"
			if l.Exists {
				state = "loaded"
			}
			detail("%s settings: %s (%s)", l.Level, l.Path, state)
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one effective setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		v, err := s.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting in the settings file",
	Long: `Writes one setting to the vault settings file (or the --config path).
Environment overrides are never copied into the file. Set a
course_mapping.<folder> entry to an empty value to remove it.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := settingsPath()
		if err != nil {
			return err
		}

		s, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		if err := s.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(path, s); err != nil {
			return err
		}

		v := args[1]
		if args[0] == config.KeyAPIToken {
			v = maskToken(v)
		}
		info("Set %s = %s in %s", args[0], v, path)
		return nil
	},
}

// maskToken hides all but the last four characters of a token.
func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", 8) + token[len(token)-4:]
}

func init() {
	configCmd.AddCommand(configListCmd, configGetCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
