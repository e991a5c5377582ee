package wavinfo

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Expected properties for speech-recognition input.
const (
	SpeechSampleRate = 16000
	SpeechChannels   = 1
)

// Info summarizes a WAV file header plus a decodability probe of its first
// PCM chunk.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
	// HasSignal is false when the probed chunk contained only zero
	// samples, which usually means a silent or broken extraction.
	HasSignal bool
}

// Probe reads the WAV header and the first PCM chunk of the file.
func Probe(path string) (Info, error) {
	file, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("wav probe: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	decoder.ReadInfo()
	if !decoder.IsValidFile() {
		return Info{}, fmt.Errorf("wav probe: %s is not a valid WAV file", path)
	}

	info := Info{
		SampleRate: int(decoder.SampleRate),
		Channels:   int(decoder.NumChans),
		BitDepth:   int(decoder.BitDepth),
	}
	if duration, err := decoder.Duration(); err == nil {
		info.Duration = duration
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: info.Channels, SampleRate: info.SampleRate},
		Data:   make([]int, 8192),
	}
	n, err := decoder.PCMBuffer(buf)
	if err != nil {
		return Info{}, fmt.Errorf("wav probe: decode pcm: %w", err)
	}
	for _, sample := range buf.Data[:n] {
		if sample != 0 {
			info.HasSignal = true
			break
		}
	}
	return info, nil
}

// ValidateSpeechInput reports whether the file matches the mono 16 kHz
// layout the transcription backend expects.
func ValidateSpeechInput(info Info) error {
	if info.SampleRate != SpeechSampleRate {
		return fmt.Errorf("sample rate %d, want %d", info.SampleRate, SpeechSampleRate)
	}
	if info.Channels != SpeechChannels {
		return fmt.Errorf("%d channels, want mono", info.Channels)
	}
	return nil
}
