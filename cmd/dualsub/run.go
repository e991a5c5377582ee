package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dualsub/internal/config"
	"dualsub/internal/language"
	"dualsub/internal/logging"
	"dualsub/internal/media/ffmpeg"
	"dualsub/internal/media/ffprobe"
	"dualsub/internal/pipeline"
	"dualsub/internal/services/whisper"
	"dualsub/internal/transcache"
)

type runOptions struct {
	videoPath        string
	outPrefix        string
	model            string
	refinePerSegment bool
	noTranslate      bool
	keepAudio        bool
	noCache          bool
	jobs             int
	configPath       string
	verbose          bool
}

func runPipeline(cmd *cobra.Command, opts *runOptions) error {
	cfg, cfgPath, cfgExists, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	level := cfg.Logging.Level
	if opts.verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{
		Level:  level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	if cfgExists {
		logger.Debug("configuration loaded", logging.String("path", cfgPath))
	} else {
		logger.Debug("no configuration file; using defaults")
	}

	model := opts.model
	if model == "" {
		model = cfg.Whisper.Model
	}

	detector := language.NewDetector(language.DetectorOptions{
		Languages:     cfg.Classifier.Languages,
		MinConfidence: cfg.Classifier.MinConfidence,
	})
	classifier := language.NewClassifier(detector)

	var cache *transcache.Cache
	if cfg.Cache.Enabled && !opts.noCache {
		cache, err = transcache.Open(cfg.Cache.Dir)
		if err != nil {
			logger.Warn("transcription cache unavailable", logging.Error(err))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	if dir := filepath.Dir(opts.outPrefix); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure output directory: %w", err)
		}
	}

	ffprobeBinary := cfg.Tools.FFprobe
	p, err := pipeline.New(pipeline.Options{
		VideoPath:        opts.videoPath,
		OutPrefix:        opts.outPrefix,
		RefinePerSegment: opts.refinePerSegment,
		Translate:        !opts.noTranslate,
		KeepAudio:        opts.keepAudio,
		Jobs:             opts.jobs,
	}, pipeline.Deps{
		Extractor:   ffmpeg.NewExtractor(cfg.Tools.FFmpeg),
		Transcriber: whisper.NewService(whisper.Config{Command: cfg.Tools.Whisper, Model: model}),
		Classifier:  classifier,
		Cache:       cache,
		Model:       model,
		Probe: func(ctx context.Context, path string) (ffprobe.Result, error) {
			return ffprobe.Inspect(ctx, ffprobeBinary, path)
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}

	result, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %d files for %s (language: %s)\n",
		len(result.OutputFiles), filepath.Base(opts.videoPath), result.OverallLanguage)
	if opts.verbose {
		fmt.Fprintln(out, renderRunSummary(result))
	}
	return nil
}
