package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_DefaultsToInfoLevel(t *testing.T) {
	log := New()

	if log == nil {
		t.Fatal("expected logger to be created")
	}
	if log.GetLevel() != slog.LevelInfo {
		t.Errorf("expected default level info, got %v", log.GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // Default
		{"", slog.LevelInfo},        // Default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSlogLogger_ImplementsInterface(t *testing.T) {
	var _ Logger = (*SlogLogger)(nil)
}

func TestSlogLogger_LogMethods(t *testing.T) {
	// Create a logger that writes to a buffer for verification
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	log := &SlogLogger{logger: slog.New(handler)}

	tests := []struct {
		name  string
		fn    func(string, ...any)
		level string
	}{
		{"Debug", log.Debug, "DEBUG"},
		{"Info", log.Info, "INFO"},
		{"Warn", log.Warn, "WARN"},
		{"Error", log.Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("test message", "key", "value")

			output := buf.String()
			if !strings.Contains(output, tt.level) {
				t.Errorf("expected output to contain level %q, got %q", tt.level, output)
			}
			if !strings.Contains(output, "test message") {
				t.Errorf("expected output to contain message, got %q", output)
			}
		})
	}
}

func TestSlogLogger_With_AttachesAttributes(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	levelVar := &slog.LevelVar{}
	log := &SlogLogger{logger: slog.New(handler), level: levelVar}

	child := log.With("election", "student-council")
	child.Info("count starting")

	output := buf.String()
	if !strings.Contains(output, "election=student-council") {
		t.Errorf("expected child attribute in output, got %q", output)
	}
}

func TestSlogLogger_With_SharesLevel(t *testing.T) {
	log := New()
	child := log.With("count_id", "abc")

	child.SetLevel(slog.LevelError)
	if log.GetLevel() != slog.LevelError {
		t.Errorf("expected parent level to follow child SetLevel, got %v", log.GetLevel())
	}
}

func TestSetLevel_ChangesLevel(t *testing.T) {
	log := New()

	log.SetLevel(slog.LevelDebug)
	if log.GetLevel() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", log.GetLevel())
	}

	log.SetLevel(slog.LevelWarn)
	if log.GetLevel() != slog.LevelWarn {
		t.Errorf("expected warn level, got %v", log.GetLevel())
	}
}
