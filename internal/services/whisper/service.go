package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	langpkg "dualsub/internal/language"
)

// DefaultCommand is the whisper CLI resolved from PATH when the config does
// not name one.
const DefaultCommand = "whisper"

// DefaultModel matches the reference default; a mid-sized tradeoff between
// speed and accuracy.
const DefaultModel = "small"

// Task selects the backend operation mode.
type Task string

const (
	// TaskTranscribe produces text in the spoken language.
	TaskTranscribe Task = "transcribe"
	// TaskTranslate produces an English rendering regardless of the
	// spoken language.
	TaskTranslate Task = "translate"
)

// Options tune a single transcription request.
type Options struct {
	// Language forces the decode language (ISO 639-1). Empty means
	// automatic detection.
	Language string
	// Task selects transcription vs. translation. Empty means transcribe.
	Task Task
}

// Segment is one raw timed segment from the backend.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Result is a parsed backend response.
type Result struct {
	Segments []Segment `json:"segments"`
	Text     string    `json:"text"`
	Language string    `json:"language"`
}

// JoinedText returns the segment texts joined with single spaces, falling
// back to the top-level text when the backend produced no segments.
func (r Result) JoinedText() string {
	if len(r.Segments) == 0 {
		return strings.TrimSpace(r.Text)
	}
	parts := make([]string, 0, len(r.Segments))
	for _, seg := range r.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// Transcriber is the speech capability boundary consumed by the pipeline.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, opts Options) (Result, error)
}

// Config holds backend invocation settings.
type Config struct {
	// Command is the whisper binary. Defaults to DefaultCommand.
	Command string
	// Model selects the model variant. Defaults to DefaultModel.
	Model string
}

// Service runs the whisper CLI as a subprocess.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a Service with the given configuration.
func NewService(cfg Config) *Service {
	if cfg.Command == "" {
		cfg.Command = DefaultCommand
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Service{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	return s.cfg.Model
}

// Transcribe runs the backend against audioPath and parses the JSON payload
// it writes next to its other outputs. The JSON file lands in a fresh
// temporary directory that is removed before returning.
func (s *Service) Transcribe(ctx context.Context, audioPath string, opts Options) (Result, error) {
	if strings.TrimSpace(audioPath) == "" {
		return Result{}, fmt.Errorf("transcribe: audio path required")
	}

	outputDir, err := os.MkdirTemp("", "whisper-out-")
	if err != nil {
		return Result{}, fmt.Errorf("transcribe: temp output dir: %w", err)
	}
	defer os.RemoveAll(outputDir)

	args := s.buildArgs(audioPath, outputDir, opts)
	if err := s.run(ctx, s.cfg.Command, args...); err != nil {
		return Result{}, fmt.Errorf("whisper: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	payloadPath := filepath.Join(outputDir, baseName+".json")
	result, err := loadResult(payloadPath)
	if err != nil {
		return Result{}, fmt.Errorf("whisper: %w", err)
	}
	return result, nil
}

func (s *Service) buildArgs(audioPath, outputDir string, opts Options) []string {
	args := []string{
		audioPath,
		"--model", s.cfg.Model,
		"--output_format", "json",
		"--output_dir", outputDir,
		"--verbose", "False",
	}
	if lang := langpkg.ToISO2(opts.Language); lang != "" {
		args = append(args, "--language", lang)
	}
	if opts.Task != "" && opts.Task != TaskTranscribe {
		args = append(args, "--task", string(opts.Task))
	}
	return args
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func loadResult(payloadPath string) (Result, error) {
	data, err := os.ReadFile(payloadPath)
	if err != nil {
		return Result{}, fmt.Errorf("read output payload: %w", err)
	}
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("parse output payload: %w", err)
	}
	return result, nil
}
