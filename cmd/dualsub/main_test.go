package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dualsub/internal/pipeline"
	"dualsub/internal/subtitles"
)

func runCLI(t *testing.T, args []string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestRootRequiresTwoArgs(t *testing.T) {
	_, err := runCLI(t, []string{"only-one"})
	if err == nil {
		t.Fatal("expected an error with a single argument")
	}
	requireContains(t, err.Error(), "output prefix")
}

func TestRootRejectsBlankArgs(t *testing.T) {
	_, err := runCLI(t, []string{"  ", "out"})
	if err == nil || !strings.Contains(err.Error(), "must not be empty") {
		t.Fatalf("expected blank-argument error, got %v", err)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	out, err := runCLI(t, []string{"config", "validate"})
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, err = runCLI(t, []string{"config", "init", "--path", target})
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// A second init without --overwrite refuses to clobber the file.
	if _, err := runCLI(t, []string{"config", "init", "--path", target}); err == nil {
		t.Fatal("expected overwrite refusal")
	}
	if out, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}); err != nil {
		t.Fatalf("config init --overwrite: %v\n%s", err, out)
	}
}

func TestRunSummaryGroupsByLanguage(t *testing.T) {
	hello := "Hello"
	result := pipeline.Result{
		Segments: []subtitles.Segment{
			{Start: 0, End: 1, Lang: "es", Text: "Hola", Translation: &hello},
			{Start: 1, End: 2, Lang: "es", Text: "Adios"},
			{Start: 2, End: 3, Lang: "fr", Text: "Bonjour"},
		},
		OutputFiles: []string{"out.original.vtt", "out.json"},
	}

	summary := renderRunSummary(result)
	requireContains(t, summary, "Spanish")
	requireContains(t, summary, "French")
	requireContains(t, summary, "Translated cues: 1/3")
	requireContains(t, summary, "out.original.vtt")
}
