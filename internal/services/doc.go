// Package services defines shared error taxonomy for external collaborators
// (ffmpeg, ffprobe, the whisper backend).
//
// Fatal conditions carry ErrValidation/ErrNotFound/ErrConfiguration markers
// and abort the run; ErrExternalTool marks subprocess failures, which the
// pipeline treats as fatal for whole-file operations and recoverable for
// per-segment operations.
package services
