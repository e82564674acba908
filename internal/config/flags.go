package config

import (
	"flag"
	"strings"
)

// flagName maps a field to its command-line flag.
func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

// parseFlags registers the config flags on fs, parses args and applies the
// flags that were set.
func (c *Config) parseFlags(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("todomenu", flag.ContinueOnError)
	}

	var file string
	fs.StringVar(&file, flagName(FieldFile), c.File, "Path to the todo.txt file")
	fs.StringVar(&file, "f", c.File, "Path to the todo.txt file (shorthand)")
	fs.String(flagName(FieldColorPriority), c.ColorPriority, "Priority color (#rrggbb)")
	fs.String(flagName(FieldColorProject), c.ColorProject, "Project color (#rrggbb)")
	fs.String(flagName(FieldColorContext), c.ColorContext, "Context color (#rrggbb)")
	fs.String(flagName(FieldMatch), c.Match, "Filter matcher (substring, fuzzy)")
	fs.Bool(flagName(FieldAtomicSave), c.AtomicSave, "Save through a temporary file and rename")
	fs.String(flagName(FieldLogLevel), c.LogLevel, "Log level (debug, info, warn, error)")
	fs.String(flagName(FieldLogFormat), c.LogFormat, "Log format (text, json, logfmt)")
	fs.String(flagName(FieldLogFile), c.LogFile, "Log file for the interactive menu")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fields := make(map[string]string, len(Fields())+1)
	for _, field := range Fields() {
		fields[flagName(field)] = field
	}
	fields["f"] = FieldFile

	fs.Visit(func(f *flag.Flag) {
		if field, ok := fields[f.Name]; ok {
			c.set(field, f.Value.String(), SourceFlag)
		}
	})
	return nil
}
