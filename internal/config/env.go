package config

import (
	"os"
	"strings"
)

// EnvPrefix starts every environment variable read by Load.
const EnvPrefix = "TODOMENU_"

// EnvName returns the environment variable for field.
func EnvName(field string) string {
	return EnvPrefix + strings.ToUpper(field)
}

// loadEnv overrides config from environment variables. Empty variables are
// treated as unset.
func (c *Config) loadEnv() {
	for _, field := range Fields() {
		if v := os.Getenv(EnvName(field)); v != "" {
			c.set(field, v, SourceEnv)
		}
	}
}
