package cli

import "testing"

func TestSetupSignalHandler(t *testing.T) {
	ctx := SetupSignalHandler()
	if ctx == nil {
		t.Fatal("SetupSignalHandler returned nil context")
	}
	select {
	case <-ctx.Done():
		t.Error("context canceled before any signal")
	default:
	}
}
