package config

import (
	"os"
	"path/filepath"
)

const (
	// VaultFileName is the settings file kept at the vault root.
	VaultFileName = ".canvas-sync.yaml"
	// EnvFileName is the optional dotenv file at the vault root.
	EnvFileName = ".env"

	configDirName  = "canvas-sync"
	userConfigFile = "settings.yaml"
)

// ConfigLevel represents the precedence level of a settings file.
type ConfigLevel string

const (
	LevelUser  ConfigLevel = "user"
	LevelVault ConfigLevel = "vault"
)

// ConfigLayerInfo describes a discovered settings file.
type ConfigLayerInfo struct {
	Path   string
	Level  ConfigLevel
	Exists bool
}

// DiscoverOptions controls how settings paths are discovered.
type DiscoverOptions struct {
	// VaultRoot is the vault directory (required).
	VaultRoot string

	// UserConfigPath overrides the default user settings path.
	// Empty means use the OS default. Set to a nonexistent path to skip.
	UserConfigPath string
}

// DiscoverPaths returns the settings layers to read, from lowest
// precedence (user) to highest (vault). Paths are deduplicated by
// resolved absolute path.
func DiscoverPaths(opts DiscoverOptions) []ConfigLayerInfo {
	var layers []ConfigLayerInfo
	seen := make(map[string]bool)

	addLayer := func(level ConfigLevel, path string) {
		if path == "" {
			return
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		_, statErr := os.Stat(path)
		layers = append(layers, ConfigLayerInfo{
			Path:   path,
			Level:  level,
			Exists: statErr == nil,
		})
	}

	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath = defaultUserConfigPath()
	}
	addLayer(LevelUser, userPath)

	addLayer(LevelVault, VaultSettingsPath(opts.VaultRoot))

	return layers
}

// LayerPaths extracts the paths of the given layers in order.
func LayerPaths(layers []ConfigLayerInfo) []string {
	paths := make([]string, 0, len(layers))
	for _, l := range layers {
		paths = append(paths, l.Path)
	}
	return paths
}

// VaultSettingsPath returns the vault-level settings file path.
func VaultSettingsPath(vaultRoot string) string {
	return filepath.Join(vaultRoot, VaultFileName)
}

// EnvFilePath returns the dotenv file path for a vault.
func EnvFilePath(vaultRoot string) string {
	return filepath.Join(vaultRoot, EnvFileName)
}

// defaultUserConfigPath returns the platform-standard user settings path.
func defaultUserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configDirName, userConfigFile)
}
