package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"dualsub/internal/language"
	"dualsub/internal/logging"
	"dualsub/internal/media/ffmpeg"
	"dualsub/internal/media/ffprobe"
	"dualsub/internal/media/wavinfo"
	"dualsub/internal/services"
	"dualsub/internal/services/whisper"
	"dualsub/internal/subtitles"
	"dualsub/internal/transcache"
)

// Options control a single run.
type Options struct {
	// VideoPath is the input video file.
	VideoPath string
	// OutPrefix is the output path stem for all emitted files.
	OutPrefix string
	// RefinePerSegment re-transcribes Portuguese/Spanish segments with a
	// forced language hint.
	RefinePerSegment bool
	// Translate produces the English track. Enabled by default at the CLI.
	Translate bool
	// KeepAudio copies the extracted whole-file WAV next to the outputs.
	KeepAudio bool
	// Jobs bounds concurrent segment workers. Values below 1 mean 1,
	// which preserves strictly sequential processing.
	Jobs int
}

// Deps are the external collaborators behind capability boundaries.
type Deps struct {
	Extractor   *ffmpeg.Extractor
	Transcriber whisper.Transcriber
	Classifier  *language.Classifier
	// Cache may be nil to disable per-segment result caching.
	Cache *transcache.Cache
	// Model tags cache keys and log lines with the backend variant.
	Model string
	// Probe inspects the input container; defaults to ffprobe.Inspect
	// with the default binary.
	Probe  func(ctx context.Context, path string) (ffprobe.Result, error)
	Logger *slog.Logger
}

// Result is the outcome of a completed run.
type Result struct {
	Segments        []subtitles.Segment
	OverallLanguage string
	OutputFiles     []string
	AudioDuration   time.Duration
}

// Pipeline runs the end-to-end conversion for one video.
type Pipeline struct {
	opts        Options
	extractor   *ffmpeg.Extractor
	transcriber whisper.Transcriber
	classifier  *language.Classifier
	cache       *transcache.Cache
	model       string
	probe       func(ctx context.Context, path string) (ffprobe.Result, error)
	logger      *slog.Logger

	// set during Run
	fingerprint string
	workDir     string
	audioPath   string
}

// New assembles a pipeline. Transcriber and Extractor are required;
// everything else has a working default.
func New(opts Options, deps Deps) (*Pipeline, error) {
	if deps.Extractor == nil {
		return nil, errors.New("pipeline: extractor is required")
	}
	if deps.Transcriber == nil {
		return nil, errors.New("pipeline: transcriber is required")
	}
	probe := deps.Probe
	if probe == nil {
		probe = func(ctx context.Context, path string) (ffprobe.Result, error) {
			return ffprobe.Inspect(ctx, ffprobe.DefaultBinary, path)
		}
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		opts:        opts,
		extractor:   deps.Extractor,
		transcriber: deps.Transcriber,
		classifier:  deps.Classifier,
		cache:       deps.Cache,
		model:       deps.Model,
		probe:       probe,
		logger:      logger,
	}, nil
}

// Run executes the full pipeline and emits all output files.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	var result Result

	if err := p.validateInput(ctx, &result); err != nil {
		return result, err
	}

	workDir := filepath.Join(os.TempDir(), "dualsub-"+uuid.NewString())
	if err := os.MkdirAll(workDir, 0o700); err != nil {
		return result, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)
	p.workDir = workDir

	if err := p.extractWholeAudio(ctx); err != nil {
		return result, err
	}

	raw, overallLang, err := p.baseTranscribe(ctx)
	if err != nil {
		return result, err
	}
	result.OverallLanguage = overallLang
	p.logger.Info("base transcription complete",
		logging.Int("segments", len(raw)),
		logging.String("language", overallLang),
	)

	segments, err := p.processSegments(ctx, raw, overallLang)
	if err != nil {
		return result, err
	}
	result.Segments = segments

	outputs, err := p.emit(segments)
	if err != nil {
		return result, err
	}
	result.OutputFiles = outputs

	if p.opts.KeepAudio {
		kept := p.opts.OutPrefix + ".extracted_audio.wav"
		if err := copyFile(p.audioPath, kept); err != nil {
			return result, fmt.Errorf("keep audio: %w", err)
		}
		result.OutputFiles = append(result.OutputFiles, kept)
	}

	return result, nil
}

func (p *Pipeline) validateInput(ctx context.Context, result *Result) error {
	info, err := os.Stat(p.opts.VideoPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrNotFound, "pipeline", "validate input", p.opts.VideoPath, nil)
		}
		return services.Wrap(services.ErrValidation, "pipeline", "validate input", "", err)
	}
	if info.IsDir() {
		return services.Wrap(services.ErrValidation, "pipeline", "validate input", p.opts.VideoPath+" is a directory", nil)
	}

	probed, err := p.probe(ctx, p.opts.VideoPath)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "pipeline", "probe input", "", err)
	}
	if probed.AudioStreamCount() == 0 {
		return services.Wrap(services.ErrValidation, "pipeline", "probe input", "no audio stream in "+p.opts.VideoPath, nil)
	}
	if seconds := probed.DurationSeconds(); seconds > 0 {
		result.AudioDuration = time.Duration(seconds * float64(time.Second))
	}

	if p.cache != nil {
		fingerprint, err := transcache.Fingerprint(p.opts.VideoPath)
		if err != nil {
			p.logger.Debug("input fingerprint failed; caching disabled for this run", logging.Error(err))
			p.cache = nil
		} else {
			p.fingerprint = fingerprint
		}
	}
	return nil
}

func (p *Pipeline) extractWholeAudio(ctx context.Context) error {
	p.audioPath = filepath.Join(p.workDir, "extracted_audio.wav")
	p.logger.Debug("extracting audio", logging.String("dest", p.audioPath))
	if err := p.extractor.ExtractAudio(ctx, p.opts.VideoPath, p.audioPath); err != nil {
		return services.Wrap(services.ErrExternalTool, "pipeline", "extract audio", "", err)
	}

	info, err := wavinfo.Probe(p.audioPath)
	if err != nil {
		p.logger.Warn("extracted audio probe failed", logging.Error(err))
		return nil
	}
	if err := wavinfo.ValidateSpeechInput(info); err != nil {
		p.logger.Warn("extracted audio has unexpected layout", logging.Error(err))
	}
	if !info.HasSignal {
		p.logger.Warn("extracted audio opens with silence; transcription may be empty")
	}
	return nil
}

func (p *Pipeline) baseTranscribe(ctx context.Context) ([]whisper.Segment, string, error) {
	p.logger.Debug("transcribing full audio with automatic language detection")
	result, err := p.transcriber.Transcribe(ctx, p.audioPath, whisper.Options{})
	if err != nil {
		return nil, "", services.Wrap(services.ErrExternalTool, "pipeline", "base transcription", "", err)
	}
	return result.Segments, language.ToISO2(result.Language), nil
}

func (p *Pipeline) processSegments(ctx context.Context, raw []whisper.Segment, overallLang string) ([]subtitles.Segment, error) {
	segments := make([]subtitles.Segment, len(raw))

	jobs := p.opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, seg := range raw {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			segments[i] = p.processSegment(groupCtx, i, seg, overallLang)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return segments, nil
}

func (p *Pipeline) emit(segments []subtitles.Segment) ([]string, error) {
	type emission struct {
		path string
		emit func(io.Writer) error
	}
	prefix := p.opts.OutPrefix
	emissions := []emission{
		{prefix + ".original.vtt", func(w io.Writer) error { return subtitles.WriteVTT(w, segments, subtitles.TrackOriginal) }},
		{prefix + ".original.srt", func(w io.Writer) error { return subtitles.WriteSRT(w, segments, subtitles.TrackOriginal) }},
	}
	if p.opts.Translate {
		emissions = append(emissions,
			emission{prefix + ".en.vtt", func(w io.Writer) error { return subtitles.WriteVTT(w, segments, subtitles.TrackTranslation) }},
			emission{prefix + ".en.srt", func(w io.Writer) error { return subtitles.WriteSRT(w, segments, subtitles.TrackTranslation) }},
		)
	}
	emissions = append(emissions, emission{prefix + ".json", func(w io.Writer) error { return subtitles.WriteJSON(w, segments) }})

	outputs := make([]string, 0, len(emissions))
	for _, e := range emissions {
		if err := subtitles.WriteFile(e.path, e.emit); err != nil {
			return nil, fmt.Errorf("emit outputs: %w", err)
		}
		p.logger.Debug("wrote output", logging.String("file", e.path))
		outputs = append(outputs, e.path)
	}
	return outputs, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
