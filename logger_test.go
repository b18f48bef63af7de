package glint

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestLoggerDefaultIsSilent(t *testing.T) {
	SetLogger(nil)
	if logger().Enabled(nil, slog.LevelError) {
		t.Error("default logger should be disabled at every level")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	logger().Warn("stale handle", "handle", 42)
	if buf.Len() == 0 {
		t.Error("expected log output")
	}
}
