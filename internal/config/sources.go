package config

// Source represents where a configuration value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceFile    Source = "file"
	SourceEnv     Source = "environment"
	SourceFlag    Source = "flag"
)

// Field names, as written in the config file.
const (
	FieldFile          = "file"
	FieldColorPriority = "color_priority"
	FieldColorProject  = "color_project"
	FieldColorContext  = "color_context"
	FieldMatch         = "match"
	FieldAtomicSave    = "atomic_save"
	FieldLogLevel      = "log_level"
	FieldLogFormat     = "log_format"
	FieldLogFile       = "log_file"
)

// Fields lists every field in display order.
func Fields() []string {
	return []string{
		FieldFile,
		FieldColorPriority,
		FieldColorProject,
		FieldColorContext,
		FieldMatch,
		FieldAtomicSave,
		FieldLogLevel,
		FieldLogFormat,
		FieldLogFile,
	}
}

// Source returns where field got its value.
func (c *Config) Source(field string) Source {
	if s, ok := c.sources[field]; ok {
		return s
	}
	return SourceDefault
}

func (c *Config) setSource(field string, s Source) {
	if c.sources == nil {
		c.sources = make(map[string]Source)
	}
	c.sources[field] = s
}
