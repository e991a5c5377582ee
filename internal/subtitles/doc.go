// Package subtitles holds the enriched segment record and the cue track
// emitters.
//
// Both output tracks (original language and English translation) share
// identical timing; they differ only in cue body selection. Emission is
// deterministic: the same segment list always produces byte-identical
// output.
package subtitles
