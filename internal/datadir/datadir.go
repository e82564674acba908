// Package datadir resolves where the task file lives when none is configured.
package datadir

import (
	"os"
	"path/filepath"
)

const (
	// TaskFile is the default task file name.
	TaskFile = "todomenu.txt"

	// ConfigDir is the configuration directory name under the user config dir.
	ConfigDir = "todomenu"

	// ConfigFile is the configuration file name.
	ConfigFile = "todomenu.toml"
)

// TaskPath returns the default task file path: $XDG_DATA_HOME first, then
// ~/.local/share, then the temporary directory.
func TaskPath() string {
	return filepath.Join(DataDir(), TaskFile)
}

// DataDir returns the directory holding the default task file.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "share")
	}
	return os.TempDir()
}

// ConfigPaths returns the candidate configuration files in lookup order.
func ConfigPaths() []string {
	var paths []string
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		paths = append(paths, filepath.Join(dir, ConfigDir, ConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths,
			filepath.Join(home, ".config", ConfigDir, ConfigFile),
			filepath.Join(home, "."+ConfigFile),
		)
	}
	return paths
}
