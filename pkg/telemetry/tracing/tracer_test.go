package tracing

import (
	"context"
	"testing"

	"mercator-hq/callisto/pkg/config"
)

func TestNew_Disabled(t *testing.T) {
	tracer, err := New(&config.TracingConfig{Enabled: false})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tracer.Enabled() {
		t.Error("disabled config produced an enabled tracer")
	}

	// Noop spans must still be usable end to end.
	ctx, span := tracer.StartImport(context.Background(), "testdata/dump.txt")
	if ctx == nil {
		t.Fatal("StartImport returned nil context")
	}
	EndImport(span, 42, "batch-1", nil)

	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestNew_NilConfig(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("expected error for nil config")
	}
}
