package subtitles

import "strings"

// Segment is one time-stamped cue enriched by the pipeline. Start and End
// are seconds relative to the full audio stream with End >= Start.
// Translation is nil when translation was skipped or failed; it is never an
// empty string.
type Segment struct {
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Lang        string  `json:"lang"`
	Text        string  `json:"text"`
	Translation *string `json:"translation"`
}

// Track selects which text a cue body carries.
type Track int

const (
	// TrackOriginal emits the original-language text, prefixed with the
	// segment language tag when one was chosen.
	TrackOriginal Track = iota
	// TrackTranslation emits the English translation, falling back to the
	// original text when no translation is present so every cue stays
	// visible.
	TrackTranslation
)

// CueBody returns the display text for the segment on the given track.
func (s Segment) CueBody(track Track) string {
	text := strings.TrimSpace(s.Text)
	if track == TrackTranslation {
		if s.Translation != nil {
			if trans := strings.TrimSpace(*s.Translation); trans != "" {
				return trans
			}
		}
		return text
	}
	if s.Lang != "" {
		return "[" + s.Lang + "] " + text
	}
	return text
}

// SetTranslation stores a trimmed translation, leaving the segment untouched
// when the input trims to nothing.
func (s *Segment) SetTranslation(text string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}
	s.Translation = &trimmed
}
