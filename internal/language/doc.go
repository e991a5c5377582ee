// Package language provides language code normalization and per-segment
// text language classification.
//
// Code conversions (ISO 639-1, ISO 639-2, display names) are consolidated
// here so the whisper argument builder, the pipeline, and the CLI summary
// all agree on codes. Classification wraps a statistical text detector and
// degrades to the empty string on any failure; no detector error escapes.
package language
