package subtitles

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteVTT emits segments as a WebVTT cue list for the chosen track.
// Cues are numbered 1..N in segment order.
func WriteVTT(w io.Writer, segments []Segment, track Track) error {
	if _, err := io.WriteString(w, "WEBVTT\n\n"); err != nil {
		return fmt.Errorf("write vtt header: %w", err)
	}
	for i, seg := range segments {
		cue := fmt.Sprintf("%d\n%s --> %s\n%s\n\n",
			i+1,
			FormatVTTTimestamp(seg.Start),
			FormatVTTTimestamp(seg.End),
			seg.CueBody(track),
		)
		if _, err := io.WriteString(w, cue); err != nil {
			return fmt.Errorf("write vtt cue %d: %w", i+1, err)
		}
	}
	return nil
}

// WriteSRT emits segments as an SRT cue list for the chosen track. SRT has
// no file header; otherwise the structure matches WriteVTT with comma
// millisecond separators.
func WriteSRT(w io.Writer, segments []Segment, track Track) error {
	for i, seg := range segments {
		cue := fmt.Sprintf("%d\n%s --> %s\n%s\n\n",
			i+1,
			FormatSRTTimestamp(seg.Start),
			FormatSRTTimestamp(seg.End),
			seg.CueBody(track),
		)
		if _, err := io.WriteString(w, cue); err != nil {
			return fmt.Errorf("write srt cue %d: %w", i+1, err)
		}
	}
	return nil
}

// WriteJSON serializes the full segment list, including null translations,
// for downstream reuse.
func WriteJSON(w io.Writer, segments []Segment) error {
	if segments == nil {
		segments = []Segment{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(segments); err != nil {
		return fmt.Errorf("encode segments: %w", err)
	}
	return nil
}

// WriteFile renders via the provided emit function into path, creating
// parent directories as needed.
func WriteFile(path string, emit func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure output dir: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := emit(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
