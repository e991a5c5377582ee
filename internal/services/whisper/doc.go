// Package whisper invokes a Whisper-compatible speech recognition CLI and
// parses its JSON output.
//
// The backend is treated as a black box behind the Transcriber interface:
// input is an audio path plus an optional language hint and task mode,
// output is timed segments, joined text, and a detected language. The
// bundled Service shells out to the configured binary; tests substitute the
// command runner.
package whisper
