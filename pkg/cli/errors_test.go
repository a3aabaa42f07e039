package cli

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("sink.backend", "unknown backend")
	if !strings.Contains(err.Error(), "sink.backend") {
		t.Errorf("error should name the field: %v", err)
	}
	if !strings.Contains(err.Error(), "unknown backend") {
		t.Errorf("error should carry the message: %v", err)
	}
}

func TestConfigError_NoField(t *testing.T) {
	err := NewConfigError("", "failed to load")
	if strings.Contains(err.Error(), " in ") {
		t.Errorf("fieldless error should not name a field: %v", err)
	}
	if !strings.Contains(err.Error(), "failed to load") {
		t.Errorf("error should carry the message: %v", err)
	}
}

func TestCommandError(t *testing.T) {
	cause := errors.New("no such file")
	err := NewCommandError("export", cause)

	if !strings.Contains(err.Error(), "export") {
		t.Errorf("error should name the command: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("CommandError should unwrap to its cause")
	}
}
