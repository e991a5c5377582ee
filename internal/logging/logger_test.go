package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.input); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestJSONFormatEmitsStructuredRecords(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("segment processed", String("lang", "pt"), Int("index", 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal record: %v\n%s", err, buf.String())
	}
	if record["msg"] != "segment processed" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["lang"] != "pt" {
		t.Errorf("lang = %v", record["lang"])
	}
	if record["level"] != "info" {
		t.Errorf("level = %v", record["level"])
	}
}

func TestConsoleFormatRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible", String("reason", "slice extraction failed"))

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("below-level records leaked:\n%s", output)
	}
	if !strings.Contains(output, "visible") || !strings.Contains(output, "reason=") {
		t.Errorf("expected warn record with attrs:\n%s", output)
	}
}

func TestConsoleHandlerQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("emit", String("file", "out prefix.vtt"))
	if !strings.Contains(buf.String(), `"out prefix.vtt"`) {
		t.Errorf("expected quoted value:\n%s", buf.String())
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	if logger == nil {
		t.Fatal("expected logger")
	}
	logger.Error("goes nowhere", Error(nil))
}
