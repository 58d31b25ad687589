// Package audio decodes uploaded recordings into mono waveforms at a fixed
// sample rate.
package audio

import (
	"bytes"
	"path/filepath"
	"strings"
	"time"
)

// Format is a container/codec family recognized by the decoder.
type Format string

const (
	FormatUnknown Format = ""
	FormatWAV     Format = "wav"
	FormatMP3     Format = "mp3"
	FormatPCM     Format = "pcm"
)

// PCMContentType marks a clip as headerless 16-bit PCM.
const PCMContentType = "audio/pcm"

// IsPCMFile reports whether the file extension denotes headerless PCM.
func IsPCMFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pcm", ".raw":
		return true
	}
	return false
}

// Clip is an uploaded recording. It is never modified after creation.
type Clip struct {
	Data        []byte
	Filename    string
	ContentType string
	// SampleRate is the declared rate for headerless PCM; containers carry
	// their own and ignore it.
	SampleRate int
	// Channels is the declared channel count for headerless PCM.
	Channels int
}

// Waveform is mono audio normalized to [-1, 1].
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// Duration of the waveform.
func (w Waveform) Duration() time.Duration {
	if w.SampleRate == 0 {
		return 0
	}
	return time.Duration(len(w.Samples)) * time.Second / time.Duration(w.SampleRate)
}

// Sniff identifies the format from magic bytes, falling back to the content
// type for headerless PCM.
func Sniff(clip Clip) Format {
	data := clip.Data
	switch {
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return FormatWAV
	case len(data) >= 3 && bytes.Equal(data[0:3], []byte("ID3")):
		return FormatMP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return FormatMP3
	}

	ct := strings.ToLower(clip.ContentType)
	if strings.HasPrefix(ct, "audio/l16") || strings.HasPrefix(ct, "audio/pcm") {
		return FormatPCM
	}
	return FormatUnknown
}

// downmix averages interleaved frames into one channel.
func downmix(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		return interleaved
	}
	frames := len(interleaved) / channels
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += interleaved[i*channels+c]
		}
		mono[i] = sum / float64(channels)
	}
	return mono
}
