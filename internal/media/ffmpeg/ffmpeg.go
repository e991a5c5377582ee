package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultBinary is resolved from PATH when no binary is configured.
const DefaultBinary = "ffmpeg"

// Extractor shells out to ffmpeg for audio extraction. All output is mono
// 16 kHz signed 16-bit PCM WAV, the input format the whisper backend expects.
type Extractor struct {
	binary        string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewExtractor creates an Extractor for the given ffmpeg binary.
func NewExtractor(binary string) *Extractor {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	return &Extractor{binary: binary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (e *Extractor) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	e.commandRunner = runner
}

// ExtractAudio extracts the whole audio stream of source into dest.
func (e *Extractor) ExtractAudio(ctx context.Context, source, dest string) error {
	args := []string{
		"-y", "-i", source,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		dest,
	}
	if err := e.run(ctx, args...); err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}
	return nil
}

// ExtractSlice extracts the [start, end) time window of source into dest.
// Start and end are seconds; sub-millisecond precision is dropped.
func (e *Extractor) ExtractSlice(ctx context.Context, source, dest string, start, end float64) error {
	args := []string{
		"-y", "-i", source,
		"-ss", formatSeconds(start),
		"-to", formatSeconds(end),
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		dest,
	}
	if err := e.run(ctx, args...); err != nil {
		return fmt.Errorf("extract slice %s-%s: %w", formatSeconds(start), formatSeconds(end), err)
	}
	return nil
}

func (e *Extractor) run(ctx context.Context, args ...string) error {
	if e.commandRunner != nil {
		return e.commandRunner(ctx, e.binary, args...)
	}
	cmd := exec.CommandContext(ctx, e.binary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", e.binary, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', 3, 64)
}
