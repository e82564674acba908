package config

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/BurntSushi/toml"
)

// loadFile applies the keys of the TOML file at path. A file that does not
// parse is skipped as a whole.
func (c *Config) loadFile(path string) {
	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		c.warn(&Error{Source: SourceFile, Err: fmt.Errorf("%s: %w", path, err)})
		return
	}
	c.Path = path

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value, err := tomlString(raw[key])
		if err != nil {
			c.warn(&Error{Source: SourceFile, Field: key, Value: fmt.Sprint(raw[key]), Err: err})
			continue
		}
		c.set(key, value, SourceFile)
	}
}

func tomlString(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}
