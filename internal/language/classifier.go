package language

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Detector produces a best-guess ISO 639-1 code for a text sample. The
// boolean result is false when detection is inconclusive.
type Detector interface {
	DetectCode(text string) (string, bool)
}

// DetectorOptions are the explicit initialization parameters for the
// statistical detector. Construction is deterministic: the same options and
// input text always yield the same result.
type DetectorOptions struct {
	// Languages restricts detection to these ISO 639-1 codes. Fewer than
	// two recognized codes falls back to the default candidate set.
	Languages []string
	// MinConfidence rejects detections below this confidence (0..1).
	MinConfidence float64
}

// DefaultCandidateLanguages is the candidate set used when the config does
// not narrow detection. Portuguese and Spanish lead because the refinement
// pass only acts on those two.
var DefaultCandidateLanguages = []string{"pt", "es", "en", "fr", "de", "it"}

var linguaByCode = map[string]lingua.Language{
	"en": lingua.English,
	"es": lingua.Spanish,
	"pt": lingua.Portuguese,
	"fr": lingua.French,
	"de": lingua.German,
	"it": lingua.Italian,
	"ja": lingua.Japanese,
	"ko": lingua.Korean,
	"zh": lingua.Chinese,
	"ru": lingua.Russian,
	"nl": lingua.Dutch,
	"pl": lingua.Polish,
}

type linguaDetector struct {
	detector      lingua.LanguageDetector
	minConfidence float64
}

// NewDetector builds a lingua-backed Detector from explicit options.
func NewDetector(opts DetectorOptions) Detector {
	candidates := make([]lingua.Language, 0, len(opts.Languages))
	for _, code := range opts.Languages {
		if lang, ok := linguaByCode[ToISO2(code)]; ok {
			candidates = append(candidates, lang)
		}
	}
	if len(candidates) < 2 {
		candidates = candidates[:0]
		for _, code := range DefaultCandidateLanguages {
			candidates = append(candidates, linguaByCode[code])
		}
	}
	return &linguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidates...).
			Build(),
		minConfidence: opts.MinConfidence,
	}
}

func (d *linguaDetector) DetectCode(text string) (string, bool) {
	detected, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	if d.minConfidence > 0 {
		if d.detector.ComputeLanguageConfidence(text, detected) < d.minConfidence {
			return "", false
		}
	}
	return strings.ToLower(detected.IsoCode639_1().String()), true
}

// Classifier assigns a per-segment language code from segment text.
type Classifier struct {
	detector Detector
}

// NewClassifier wraps a Detector. A nil detector yields a classifier that
// always returns the empty string.
func NewClassifier(detector Detector) *Classifier {
	return &Classifier{detector: detector}
}

// Classify returns the two-letter language code for the text, biased toward
// Portuguese and Spanish: any detected Portuguese or Spanish variant
// collapses to "pt" or "es" respectively, other detections pass through
// unchanged. Empty input never reaches the detector, and inconclusive
// detection degrades to "".
func (c *Classifier) Classify(text string) string {
	if c == nil || c.detector == nil {
		return ""
	}
	if strings.TrimSpace(text) == "" {
		return ""
	}
	code, ok := c.detector.DetectCode(text)
	if !ok {
		return ""
	}
	code = strings.ToLower(strings.TrimSpace(code))
	switch {
	case strings.HasPrefix(code, "pt"):
		return "pt"
	case strings.HasPrefix(code, "es"):
		return "es"
	}
	return code
}
