package config

import (
	"errors"
	"fmt"
)

// ErrConfig matches every *Error.
var ErrConfig = errors.New("config")

// Error reports a configuration value that could not be used.
type Error struct {
	Source Source
	Field  string
	Value  string
	Err    error
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config: %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("config: %s %s=%q: %v", e.Source, e.Field, e.Value, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrConfig }
