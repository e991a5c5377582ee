package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	opts := &runOptions{}

	rootCmd := &cobra.Command{
		Use:   "dualsub <video> <out_prefix>",
		Short: "Generate dual-language subtitle tracks from a video file",
		Long: strings.TrimSpace(`
Extracts the audio track, transcribes it, classifies every segment's
language, and writes timing-identical original and English subtitle
tracks plus a JSON dump of the segments.

Outputs are written next to <out_prefix>:
  <out_prefix>.original.vtt / .srt   transcribed track with language tags
  <out_prefix>.en.vtt / .srt         English track (unless --no-translate)
  <out_prefix>.json                  raw segment data
`),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("provide the input video and an output prefix. Example: dualsub movie.mp4 subs/movie\nRun dualsub --help for more details")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.videoPath = strings.TrimSpace(args[0])
			opts.outPrefix = strings.TrimSpace(args[1])
			if opts.videoPath == "" || opts.outPrefix == "" {
				return fmt.Errorf("video path and output prefix must not be empty")
			}
			return runPipeline(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.model, "model", "m", "", "Speech model to use (overrides the configured default)")
	flags.BoolVar(&opts.refinePerSegment, "refine-per-segment", false, "Re-transcribe Portuguese/Spanish segments with a forced language hint")
	flags.BoolVar(&opts.noTranslate, "no-translate", false, "Skip the English translation track")
	flags.BoolVar(&opts.keepAudio, "keep-audio", false, "Keep the extracted audio next to the outputs")
	flags.BoolVar(&opts.noCache, "no-cache", false, "Bypass the per-segment transcription cache")
	flags.IntVarP(&opts.jobs, "jobs", "j", 1, "Concurrent segment workers")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging and the run summary table")

	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
