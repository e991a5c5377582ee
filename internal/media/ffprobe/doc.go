// Package ffprobe provides a typed wrapper around ffprobe JSON output,
// used to validate the input video before extraction begins.
package ffprobe
