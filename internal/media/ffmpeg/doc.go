// Package ffmpeg wraps the ffmpeg binary for whole-file audio extraction
// and per-segment time-window slicing.
package ffmpeg
