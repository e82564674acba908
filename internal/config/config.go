package config

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/nibzard/todomenu/internal/datadir"
	"github.com/nibzard/todomenu/internal/logging"
	"github.com/nibzard/todomenu/internal/menu"
	"github.com/nibzard/todomenu/internal/present"
	"github.com/nibzard/todomenu/internal/todo"
)

// Default values.
const (
	DefaultMatch      = menu.MatchSubstring
	DefaultAtomicSave = true
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// Config holds the full configuration for todomenu.
type Config struct {
	// Task file; resolved through datadir when unset.
	File string `toml:"file"`

	// Label colors as "#rrggbb".
	ColorPriority string `toml:"color_priority"`
	ColorProject  string `toml:"color_project"`
	ColorContext  string `toml:"color_context"`

	// Filter matcher: substring or fuzzy.
	Match string `toml:"match"`

	// Replace the task file through a temporary file instead of truncating it.
	AtomicSave bool `toml:"atomic_save"`

	// Logging
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	LogFile   string `toml:"log_file"`

	// Path of the config file that was read, if any.
	Path string `toml:"-"`

	// Values that could not be used, each an *Error.
	Warnings []error `toml:"-"`

	sources map[string]Source
}

// Default returns a config with every field at its default.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	colors := present.DefaultColors()
	cfg.ColorPriority = colors.Priority
	cfg.ColorProject = colors.Project
	cfg.ColorContext = colors.Context
	cfg.Match = DefaultMatch
	cfg.AtomicSave = DefaultAtomicSave
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// Load builds the configuration from defaults, the user config file, the
// environment and the flags in args. Only a flag syntax error is returned;
// every other problem ends up in Warnings.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := Default()

	// 1. User config file
	if path := findUserConfigFile(); path != "" {
		cfg.loadFile(path)
	}

	// 2. Environment
	cfg.loadEnv()

	// 3. CLI flags
	if err := cfg.parseFlags(fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 4. Derived values
	finalizeConfig(cfg)
	return cfg, nil
}

func finalizeConfig(cfg *Config) {
	if cfg.File == "" {
		cfg.File = datadir.TaskPath()
	}
}

// Colors returns the label colors.
func (c *Config) Colors() present.Colors {
	return present.Colors{
		Priority: c.ColorPriority,
		Project:  c.ColorProject,
		Context:  c.ColorContext,
	}
}

// Matcher returns the configured filter matcher.
func (c *Config) Matcher() menu.Matcher {
	m, err := menu.MatcherByName(c.Match)
	if err != nil {
		return menu.SubstringMatcher{}
	}
	return m
}

// StoreOptions returns the task store options for this config.
func (c *Config) StoreOptions() []todo.StoreOption {
	if c.AtomicSave {
		return nil
	}
	return []todo.StoreOption{todo.WithInPlaceWrite()}
}

// Value returns field formatted as it would be written in the config file.
func (c *Config) Value(field string) string {
	switch field {
	case FieldFile:
		return c.File
	case FieldColorPriority:
		return c.ColorPriority
	case FieldColorProject:
		return c.ColorProject
	case FieldColorContext:
		return c.ColorContext
	case FieldMatch:
		return c.Match
	case FieldAtomicSave:
		return strconv.FormatBool(c.AtomicSave)
	case FieldLogLevel:
		return c.LogLevel
	case FieldLogFormat:
		return c.LogFormat
	case FieldLogFile:
		return c.LogFile
	}
	return ""
}

var errUnknownField = errors.New("unknown field")

// set validates raw and assigns it to field. A bad value is recorded as a
// warning and the field keeps its current value.
func (c *Config) set(field, raw string, src Source) {
	if err := c.assign(field, raw); err != nil {
		c.warn(&Error{Source: src, Field: field, Value: raw, Err: err})
		return
	}
	c.setSource(field, src)
}

func (c *Config) assign(field, raw string) error {
	switch field {
	case FieldFile:
		c.File = expandPath(strings.TrimSpace(raw))
	case FieldColorPriority, FieldColorProject, FieldColorContext:
		color, err := present.ParseColor(raw)
		if err != nil {
			return err
		}
		switch field {
		case FieldColorPriority:
			c.ColorPriority = color
		case FieldColorProject:
			c.ColorProject = color
		default:
			c.ColorContext = color
		}
	case FieldMatch:
		if _, err := menu.MatcherByName(raw); err != nil {
			return err
		}
		c.Match = normalize(raw, DefaultMatch)
	case FieldAtomicSave:
		v, err := parseBool(raw)
		if err != nil {
			return err
		}
		c.AtomicSave = v
	case FieldLogLevel:
		if _, err := logging.ParseLevel(raw); err != nil {
			return err
		}
		c.LogLevel = normalize(raw, DefaultLogLevel)
	case FieldLogFormat:
		if _, err := logging.ParseFormatter(raw); err != nil {
			return err
		}
		c.LogFormat = normalize(raw, DefaultLogFormat)
	case FieldLogFile:
		c.LogFile = expandPath(strings.TrimSpace(raw))
	default:
		return errUnknownField
	}
	return nil
}

func (c *Config) warn(err *Error) {
	c.Warnings = append(c.Warnings, err)
}

func normalize(s, fallback string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return fallback
	}
	return s
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
