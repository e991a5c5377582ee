package wavinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func writeTestWAV(t *testing.T, sampleRate, channels int, samples []int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wav")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create wav: %v", err)
	}
	encoder := wav.NewEncoder(file, sampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := encoder.Write(buf); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	if err := encoder.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestProbeReadsHeaderAndSignal(t *testing.T) {
	samples := make([]int, 1600)
	for i := range samples {
		samples[i] = (i%32 - 16) * 100
	}
	path := writeTestWAV(t, 16000, 1, samples)

	info, err := Probe(path)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if info.SampleRate != 16000 || info.Channels != 1 || info.BitDepth != 16 {
		t.Errorf("unexpected header: %+v", info)
	}
	if !info.HasSignal {
		t.Error("expected HasSignal for non-zero samples")
	}
	if err := ValidateSpeechInput(info); err != nil {
		t.Errorf("ValidateSpeechInput: %v", err)
	}
}

func TestProbeDetectsSilence(t *testing.T) {
	path := writeTestWAV(t, 16000, 1, make([]int, 1600))
	info, err := Probe(path)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if info.HasSignal {
		t.Error("expected HasSignal=false for all-zero samples")
	}
}

func TestValidateSpeechInputRejectsWrongLayout(t *testing.T) {
	if err := ValidateSpeechInput(Info{SampleRate: 44100, Channels: 1}); err == nil {
		t.Error("expected error for 44.1 kHz input")
	}
	if err := ValidateSpeechInput(Info{SampleRate: 16000, Channels: 2}); err == nil {
		t.Error("expected error for stereo input")
	}
}

func TestProbeRejectsNonWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.wav")
	if err := os.WriteFile(path, []byte("not a wav"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := Probe(path); err == nil {
		t.Error("expected error for invalid WAV data")
	}
}
