package whisper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func argValue(args []string, flag string) string {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func hasFlag(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}
	return false
}

func TestTranscribeParsesPayload(t *testing.T) {
	svc := NewService(Config{Model: "tiny"})

	var captured []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		captured = args
		outputDir := argValue(args, "--output_dir")
		payload := `{"text":" Hola mundo","language":"es","segments":[{"start":0,"end":2.5,"text":" Hola "},{"start":2.5,"end":4,"text":" mundo"}]}`
		return os.WriteFile(filepath.Join(outputDir, "clip.json"), []byte(payload), 0o644)
	})

	result, err := svc.Transcribe(context.Background(), "/tmp/audio/clip.wav", Options{})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if result.Language != "es" {
		t.Errorf("language = %q, want es", result.Language)
	}
	if len(result.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(result.Segments))
	}
	if result.JoinedText() != "Hola mundo" {
		t.Errorf("JoinedText = %q, want %q", result.JoinedText(), "Hola mundo")
	}
	if got := argValue(captured, "--model"); got != "tiny" {
		t.Errorf("model arg = %q, want tiny", got)
	}
	if hasFlag(captured, "--language") || hasFlag(captured, "--task") {
		t.Errorf("no language/task flags expected for defaults: %v", captured)
	}
}

func TestTranscribeForcedLanguage(t *testing.T) {
	svc := NewService(Config{})
	var captured []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		captured = args
		outputDir := argValue(args, "--output_dir")
		return os.WriteFile(filepath.Join(outputDir, "seg.json"), []byte(`{"text":"ola","segments":[]}`), 0o644)
	})

	if _, err := svc.Transcribe(context.Background(), "seg.wav", Options{Language: "pt"}); err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got := argValue(captured, "--language"); got != "pt" {
		t.Errorf("language arg = %q, want pt", got)
	}
	if hasFlag(captured, "--task") {
		t.Errorf("task flag not expected: %v", captured)
	}
}

func TestTranscribeTranslateTask(t *testing.T) {
	svc := NewService(Config{})
	var captured []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		captured = args
		outputDir := argValue(args, "--output_dir")
		return os.WriteFile(filepath.Join(outputDir, "seg.json"), []byte(`{"text":"hello","segments":[]}`), 0o644)
	})

	result, err := svc.Transcribe(context.Background(), "seg.wav", Options{Task: TaskTranslate})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got := argValue(captured, "--task"); got != "translate" {
		t.Errorf("task arg = %q, want translate", got)
	}
	if hasFlag(captured, "--language") {
		t.Errorf("language flag not expected for translation: %v", captured)
	}
	if result.JoinedText() != "hello" {
		t.Errorf("JoinedText = %q, want hello", result.JoinedText())
	}
}

func TestTranscribeCommandFailure(t *testing.T) {
	svc := NewService(Config{})
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return errors.New("exit status 1")
	})
	if _, err := svc.Transcribe(context.Background(), "seg.wav", Options{}); err == nil {
		t.Fatal("expected error from failing backend")
	}
}

func TestJoinedTextFallsBackToTopLevel(t *testing.T) {
	result := Result{Text: "  top level  "}
	if got := result.JoinedText(); got != "top level" {
		t.Errorf("JoinedText = %q, want trimmed top-level text", got)
	}
}
