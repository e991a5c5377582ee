// Package pipeline orchestrates the transcription run: input validation,
// whole-file audio extraction, base transcription, per-segment language
// classification with optional refinement and translation, and dual-track
// emission.
//
// Run-level failures (missing input, whole-file extraction or transcription
// errors) abort before any output is written. Per-segment failures are
// contained: a failed refinement keeps the base text, a failed translation
// leaves the translation absent, and the run completes either way.
package pipeline
