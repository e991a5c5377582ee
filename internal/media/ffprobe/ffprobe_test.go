package ffprobe

import "testing"

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video"},
			{CodecType: "audio"},
			{CodecType: "AUDIO"},
		},
		Format: Format{Duration: "123.45"},
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
}

func TestDurationHandlesInvalidValues(t *testing.T) {
	for _, duration := range []string{"", "bad", "-3"} {
		result := Result{Format: Format{Duration: duration}}
		if got := result.DurationSeconds(); got != 0 {
			t.Errorf("DurationSeconds(%q) = %v, want 0", duration, got)
		}
	}
}
