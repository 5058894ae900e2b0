package flagutil

import (
	"fmt"
	"log/slog"
	"strings"
)

// LogLevel extends slog.Level and implements go-flags' Unmarshaler.
type LogLevel struct {
	slog.Level
}

// UnmarshalFlag calls UnmarshalText for go-flags compatibility.
func (l *LogLevel) UnmarshalFlag(value string) error {
	return l.UnmarshalText([]byte(value))
}

// Toggle is enabled unless explicitly set to the literal "false".
type Toggle bool

func (t *Toggle) UnmarshalFlag(value string) error {
	*t = Toggle(strings.TrimSpace(value) != "false")
	return nil
}

func (t Toggle) MarshalFlag() (string, error) {
	if t {
		return "true", nil
	}
	return "false", nil
}

// UnmarshalTOML accepts both TOML booleans and strings.
func (t *Toggle) UnmarshalTOML(value any) error {
	switch typedValue := value.(type) {
	case bool:
		*t = Toggle(typedValue)
	case string:
		return t.UnmarshalFlag(typedValue)
	default:
		return fmt.Errorf("unexpected toggle value type: %T", value)
	}
	return nil
}
