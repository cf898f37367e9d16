package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewProductionJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "production", Level: slog.LevelInfo})

	log.Info("item created", "slug", "two-sum")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("production output is not JSON: %v", err)
	}
	if record["msg"] != "item created" {
		t.Errorf("msg = %v, want %q", record["msg"], "item created")
	}
	if record["slug"] != "two-sum" {
		t.Errorf("slug = %v, want %q", record["slug"], "two-sum")
	}
}

func TestNewDevelopmentPretty(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "development", Level: slog.LevelDebug})

	log.Debug("probing slug", "base", "two-sum")

	out := buf.String()
	if !strings.Contains(out, "probing slug") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "base=two-sum") {
		t.Errorf("output missing attribute: %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "development", Level: slog.LevelWarn})

	log.Info("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("info record written despite warn level: %q", buf.String())
	}

	log.Warn("should be written")
	if buf.Len() == 0 {
		t.Error("warn record not written")
	}
}
