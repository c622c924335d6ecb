package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Fatal("expected default logger to be disabled")
	}
}

func TestSetLoggerRoutesRecords(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	Logger().Info("mode switched", "mode", "clock")
	if !strings.Contains(buf.String(), "mode=clock") {
		t.Fatalf("expected record in output, got %q", buf.String())
	}
}
