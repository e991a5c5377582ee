package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dualsub/internal/logging"
	"dualsub/internal/services/whisper"
	"dualsub/internal/subtitles"
	"dualsub/internal/transcache"
)

// refinableLanguages gates the refinement pass. Forcing a language hint
// only helps when the model was trained heavily on it and the detector is
// trustworthy for it; Portuguese and Spanish are the supported pair.
var refinableLanguages = map[string]bool{
	"pt": true,
	"es": true,
}

// processSegment enriches one raw segment. It never fails: refinement and
// translation degrade independently and the base text always survives.
func (p *Pipeline) processSegment(ctx context.Context, index int, raw whisper.Segment, overallLang string) subtitles.Segment {
	start, end := raw.Start, raw.End
	if end < start {
		end = start
	}
	text := strings.TrimSpace(raw.Text)

	lang := p.classifier.Classify(text)
	if lang == "" {
		lang = overallLang
	}

	if p.opts.RefinePerSegment && refinableLanguages[lang] {
		if refined, ok := p.refineSegment(ctx, index, start, end, lang); ok {
			text = refined
		}
	}

	segment := subtitles.Segment{Start: start, End: end, Lang: lang, Text: text}

	if p.opts.Translate {
		if translated, ok := p.translateSegment(ctx, index, start, end); ok {
			segment.SetTranslation(translated)
		}
	}
	return segment
}

// refineSegment re-transcribes the segment's audio slice with the language
// forced. The boolean result is false when the segment text should be left
// alone.
func (p *Pipeline) refineSegment(ctx context.Context, index int, start, end float64, lang string) (string, bool) {
	key := transcache.Key{
		Fingerprint: p.fingerprint,
		Start:       start,
		End:         end,
		Model:       p.model,
		Language:    lang,
		Task:        string(whisper.TaskTranscribe),
	}
	if text, hit := p.cacheLookup(ctx, key); hit {
		return text, text != ""
	}

	slicePath := filepath.Join(p.workDir, fmt.Sprintf("segment_%d.wav", index+1))
	text, ok := p.transcribeSlice(ctx, index, slicePath, start, end, whisper.Options{Language: lang}, "refine")
	if ok {
		p.cacheStore(ctx, key, text)
	}
	return text, ok
}

// translateSegment requests an English rendering of the segment's audio
// slice. The boolean result is false when no translation should be stored.
func (p *Pipeline) translateSegment(ctx context.Context, index int, start, end float64) (string, bool) {
	key := transcache.Key{
		Fingerprint: p.fingerprint,
		Start:       start,
		End:         end,
		Model:       p.model,
		Task:        string(whisper.TaskTranslate),
	}
	if text, hit := p.cacheLookup(ctx, key); hit {
		return text, text != ""
	}

	slicePath := filepath.Join(p.workDir, fmt.Sprintf("segment_%d_t.wav", index+1))
	text, ok := p.transcribeSlice(ctx, index, slicePath, start, end, whisper.Options{Task: whisper.TaskTranslate}, "translate")
	if ok {
		p.cacheStore(ctx, key, text)
	}
	return text, ok
}

// transcribeSlice extracts [start, end) to slicePath, transcribes it with
// the given options, and removes the slice file regardless of outcome.
// Failures are logged and reported as ok=false; they never propagate.
func (p *Pipeline) transcribeSlice(ctx context.Context, index int, slicePath string, start, end float64, opts whisper.Options, step string) (string, bool) {
	defer os.Remove(slicePath)

	if err := p.extractor.ExtractSlice(ctx, p.audioPath, slicePath, start, end); err != nil {
		p.logger.Debug("segment slice extraction failed",
			logging.String("step", step),
			logging.Int("segment", index+1),
			logging.Error(err),
		)
		return "", false
	}

	result, err := p.transcriber.Transcribe(ctx, slicePath, opts)
	if err != nil {
		p.logger.Debug("segment transcription failed",
			logging.String("step", step),
			logging.Int("segment", index+1),
			logging.Error(err),
		)
		return "", false
	}

	text := result.JoinedText()
	if text == "" {
		return "", false
	}
	return text, true
}

func (p *Pipeline) cacheLookup(ctx context.Context, key transcache.Key) (string, bool) {
	if p.cache == nil {
		return "", false
	}
	text, hit, err := p.cache.Get(ctx, key)
	if err != nil {
		p.logger.Debug("cache lookup failed", logging.Error(err))
		return "", false
	}
	if hit {
		p.logger.Debug("cache hit",
			logging.String("task", key.Task),
			logging.Float64("start", key.Start),
			logging.Float64("end", key.End),
		)
	}
	return text, hit
}

func (p *Pipeline) cacheStore(ctx context.Context, key transcache.Key, text string) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Put(ctx, key, text); err != nil {
		p.logger.Debug("cache store failed", logging.Error(err))
	}
}
