package present

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Default label colors.
const (
	DefaultPriorityColor = "#ff0000"
	DefaultProjectColor  = "#008000"
	DefaultContextColor  = "#ffa500"
)

// Colors holds the hex colors used for tags and priorities.
type Colors struct {
	Priority string
	Project  string
	Context  string
}

// DefaultColors returns red priorities, green projects and orange contexts.
func DefaultColors() Colors {
	return Colors{
		Priority: DefaultPriorityColor,
		Project:  DefaultProjectColor,
		Context:  DefaultContextColor,
	}
}

// ParseColor normalizes a hex color such as "#F00", "ff0000" or "#FF0000"
// to lower-case "#rrggbb".
func ParseColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty color")
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return c.Hex(), nil
}
