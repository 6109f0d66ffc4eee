package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"WARN", zerolog.WarnLevel},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := New(tt.level).GetLevel(); got != tt.want {
			t.Errorf("New(%q).GetLevel() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	log.Info().Str("file", "statement.csv").Msg("parsed statement")

	out := buf.String()
	if !strings.Contains(out, "parsed statement") {
		t.Errorf("expected message in output, got: %s", out)
	}
	if !strings.Contains(out, "statement.csv") {
		t.Errorf("expected field in output, got: %s", out)
	}
}

func TestNewWithWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "error")

	log.Info().Msg("should be suppressed")
	if buf.Len() != 0 {
		t.Errorf("info message logged at error level: %s", buf.String())
	}

	log.Error().Msg("should appear")
	if buf.Len() == 0 {
		t.Error("error message missing at error level")
	}
}
