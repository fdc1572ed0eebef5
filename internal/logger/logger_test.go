package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"loud":    slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewFormats(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, slog.LevelWarn, "json")
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hidden")
	l.Warn("shown", "file", "0001.png")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"file":"0001.png"`) {
		t.Errorf("unexpected output %q", out)
	}
	if _, err := New(&buf, slog.LevelInfo, "pretty"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != slog.Default() {
		t.Error("expected the default logger")
	}
	l, _ := New(&bytes.Buffer{}, slog.LevelInfo, "text")
	if FromContext(WithContext(context.Background(), l)) != l {
		t.Error("logger lost in context")
	}
}
