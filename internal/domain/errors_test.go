package domain

import (
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"input with id", NewInputError("x", "duplicate node id"), `input error: duplicate node id (id "x")`},
		{"input with line", &InputError{Reason: "bad row", Line: 3}, "input error: bad row at line 3"},
		{"configuration", NewConfigurationError("alpha_min", "%v is outside [0, 1]", 2), "configuration error: alpha_min: 2 is outside [0, 1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
		})
	}
}

func TestErrorDetection(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", NewInputError("a", "bad"))
	if !IsInputError(wrapped) || IsConfigurationError(wrapped) {
		t.Error("expected wrapped input error to be detected")
	}
	wrapped = fmt.Errorf("config: %w", NewConfigurationError("f", "bad"))
	if !IsConfigurationError(wrapped) || IsInputError(wrapped) {
		t.Error("expected wrapped configuration error to be detected")
	}
}
