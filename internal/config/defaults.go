package config

const (
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultWhisperBinary = "whisper"
	defaultWhisperModel  = "small"
	defaultMinConfidence = 0.65
	defaultCacheDir      = "~/.cache/dualsub"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

func defaultClassifierLanguages() []string {
	return []string{"pt", "es", "en", "fr", "de", "it"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
			Whisper: defaultWhisperBinary,
		},
		Whisper: Whisper{
			Model: defaultWhisperModel,
		},
		Classifier: Classifier{
			MinConfidence: defaultMinConfidence,
			Languages:     defaultClassifierLanguages(),
		},
		Cache: Cache{
			Enabled: true,
			Dir:     defaultCacheDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
