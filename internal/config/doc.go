// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file
// 3. Environment variables (TODOMENU_*)
// 4. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User config locations, first match wins:
// - $TODOMENU_CONFIG
// - $XDG_CONFIG_HOME/todomenu/todomenu.toml
// - ~/.config/todomenu/todomenu.toml
// - ~/.todomenu.toml
//
// A malformed value never aborts loading. It is recorded in Config.Warnings
// and the value from the previous level is kept.
package config
