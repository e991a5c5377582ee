// Package transcache caches per-segment transcription and translation
// results in SQLite, keyed by input fingerprint, time window, model,
// language hint, and task.
//
// The cache is an optimization only: every failure path degrades to a
// backend call, never to a run failure.
package transcache
