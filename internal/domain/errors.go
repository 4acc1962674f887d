package domain

import (
	"errors"
	"fmt"
)

// ErrNodeNotFound is returned when an operation names a node id the graph does not contain
var ErrNodeNotFound = errors.New("node not found")

// InputError reports malformed graph input or an edge referencing an unresolved node id.
type InputError struct {
	Reason string
	ID     string // offending node id, if any
	Line   int    // 1-based input line, 0 when unknown
}

// Error implements error
func (e *InputError) Error() string {
	msg := "input error: " + e.Reason
	if e.ID != "" {
		msg += fmt.Sprintf(" (id %q)", e.ID)
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	return msg
}

// NewInputError creates an InputError with a formatted reason
func NewInputError(id string, format string, args ...any) *InputError {
	return &InputError{Reason: fmt.Sprintf(format, args...), ID: id}
}

// ConfigurationError reports an invalid configuration option.
type ConfigurationError struct {
	Field  string
	Reason string
}

// Error implements error
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// NewConfigurationError creates a ConfigurationError with a formatted reason
func NewConfigurationError(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsInputError reports whether err wraps an *InputError
func IsInputError(err error) bool {
	var target *InputError
	return errors.As(err, &target)
}

// IsConfigurationError reports whether err wraps a *ConfigurationError
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}
