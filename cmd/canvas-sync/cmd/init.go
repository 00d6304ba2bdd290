package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bianoble/canvas-sync/internal/config"
)

var initForce bool

// initTemplate is the default .canvas-sync.yaml scaffold.
const initTemplate = `# canvas-sync settings
# Any key can also be set with a CANVAS_SYNC_<KEY> environment variable or in
# a .env file in the vault root, e.g. CANVAS_SYNC_API_TOKEN=...

# Your Canvas instance, e.g. https://school.instructure.com
remote_base_url: ""

# Personal access token (Canvas: Account > Settings > New Access Token).
# Prefer CANVAS_SYNC_API_TOKEN in .env to keep it out of this file.
api_token: ""

# Vault folder whose subfolders are your current courses.
sync_root_path: 01-Active

# Reserved for explicit folder-to-course mappings. Not used for matching.
course_mapping: {}

# Course folders synced at the same time (1-16).
concurrency: 1

# Maximum Canvas requests per second; 0 sends them unpaced.
requests_per_second: 0

# IANA time zone for dates in generated documents; empty uses local time.
timezone: ""

# Timeout for each Canvas request.
timeout: 30s
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter .canvas-sync.yaml in the vault",
	Long: `Creates .canvas-sync.yaml in the vault root (or the --config path) with every
setting documented, and creates the sync root folder if it is missing.

Use --force to overwrite an existing settings file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, err := settingsPath()
		if err != nil {
			return err
		}

		if !initForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
			}
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("creating settings directory: %w", err)
		}
		if err := os.WriteFile(outPath, []byte(initTemplate), 0600); err != nil {
			return fmt.Errorf("writing settings: %w", err)
		}
		info("Created %s", outPath)

		root, err := vaultRoot()
		if err != nil {
			return err
		}
		syncRoot := filepath.Join(root, config.DefaultSyncRootPath)
		if _, err := os.Stat(syncRoot); os.IsNotExist(err) {
			if err := os.MkdirAll(syncRoot, 0755); err != nil {
				return fmt.Errorf("creating sync root: %w", err)
			}
			info("Created %s", syncRoot)
		}

		info("")
		info("Next steps:")
		info("  1. Set remote_base_url and api_token (or CANVAS_SYNC_API_TOKEN in .env)")
		info("  2. Create one folder per course under 01-Active, named after its course code")
		info("  3. Run 'canvas-sync check', then 'canvas-sync sync'")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing settings file")
	rootCmd.AddCommand(initCmd)
}
