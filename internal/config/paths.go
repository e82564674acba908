package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nibzard/todomenu/internal/datadir"
)

// EnvConfig names an explicit config file.
const EnvConfig = EnvPrefix + "CONFIG"

// findUserConfigFile returns the first config file that exists, or "".
func findUserConfigFile() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return expandPath(p)
	}
	for _, p := range datadir.ConfigPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// expandPath expands environment variables and a leading ~ in p.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := os.ExpandEnv(p)
	if expanded != "~" && !strings.HasPrefix(expanded, "~/") {
		return expanded
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return expanded
	}
	if expanded == "~" {
		return home
	}
	return filepath.Join(home, expanded[2:])
}
