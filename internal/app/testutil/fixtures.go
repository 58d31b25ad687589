package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"habla-jungla/internal/app/audio"
)

// TestTones maps fixture names to sine tones.
var TestTones = map[string]struct {
	Freq     float64
	Duration time.Duration
}{
	"bark.wav":    {Freq: 440, Duration: 2 * time.Second},
	"roar.wav":    {Freq: 110, Duration: 3 * time.Second},
	"chirp.wav":   {Freq: 4000, Duration: 500 * time.Millisecond},
	"trumpet.wav": {Freq: 880, Duration: time.Second},
	"blip.wav":    {Freq: 1000, Duration: 20 * time.Millisecond},
}

// MockAPIResponses holds canned bodies for the remote services.
var MockAPIResponses = map[string]interface{}{
	"hf_loading": map[string]interface{}{
		"error":          "Model distilgpt2 is currently loading",
		"estimated_time": 20.0,
	},
	"analysis_text": map[string]interface{}{
		"results": "I am hungry, feed me now",
	},
	"analysis_structured": map[string]interface{}{
		"results": map[string]interface{}{"species": "cat", "mood": "annoyed"},
	},
}

// ToneWAV encodes a 16-bit mono sine tone.
func ToneWAV(t *testing.T, freq float64, d time.Duration, sampleRate int) []byte {
	t.Helper()
	data, err := audio.EncodeWAV(audio.Tone(freq, d, sampleRate, 0.5), sampleRate)
	if err != nil {
		t.Fatalf("Failed to encode test tone: %v", err)
	}
	return data
}

// CreateTestAudioFile writes the named TestTones fixture at 44.1 kHz into a
// temp directory. Unknown names get a 2 s 440 Hz tone.
func CreateTestAudioFile(t *testing.T, filename string) string {
	t.Helper()

	tone, ok := TestTones[filepath.Base(filename)]
	if !ok {
		tone = TestTones["bark.wav"]
	}
	return writeTempFile(t, filename, ToneWAV(t, tone.Freq, tone.Duration, 44100))
}

// CreateCorruptedAudioFile creates a file with invalid audio data for testing
func CreateCorruptedAudioFile(t *testing.T, filename string) string {
	t.Helper()
	return writeTempFile(t, filename, []byte("This is not a valid audio file!"))
}

// CreateEmptyFile creates an empty file for testing
func CreateEmptyFile(t *testing.T, filename string) string {
	t.Helper()
	return writeTempFile(t, filename, []byte{})
}

func writeTempFile(t *testing.T, filename string, data []byte) string {
	t.Helper()

	fullPath := filepath.Join(t.TempDir(), filepath.Base(filename))
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", fullPath, err)
	}
	return fullPath
}
