package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithWriter(Config{Format: "json", Level: "info"}, &buf)
	log.Info().Str("component", "test").Msg("hello")

	output := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(output), "{") {
		t.Fatalf("expected json output to start with '{', got %q", output)
	}
	if !strings.Contains(output, `"message":"hello"`) {
		t.Fatalf("expected message field, got %q", output)
	}
}

func TestNewWithWriterLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithWriter(Config{Format: "json", Level: "error"}, &buf)
	log.Info().Msg("dropped")
	log.Error().Msg("kept")

	output := buf.String()
	if strings.Contains(output, "dropped") {
		t.Fatalf("info log must be filtered at error level, got %q", output)
	}
	if !strings.Contains(output, "kept") {
		t.Fatalf("error log must pass at error level, got %q", output)
	}
}
