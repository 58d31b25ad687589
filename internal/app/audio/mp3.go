package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"mime"
	"strconv"

	"github.com/hajimehoshi/go-mp3"
)

// go-mp3 always emits 16-bit little-endian stereo.
const mp3Channels = 2

func decodeMP3(data []byte) (Waveform, error) {
	d, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return Waveform{}, err
	}

	raw, err := io.ReadAll(d)
	if err != nil {
		return Waveform{}, fmt.Errorf("read mp3 frames: %w", err)
	}

	return Waveform{
		Samples:    downmix(s16leToFloat(raw), mp3Channels),
		SampleRate: d.SampleRate(),
	}, nil
}

func s16leToFloat(raw []byte) []float64 {
	out := make([]float64, len(raw)/2)
	for i := range out {
		v := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		out[i] = float64(v) / 32768
	}
	return out
}

// decodePCM reads headerless signed 16-bit little-endian PCM. The rate and
// channel count come from the clip, or from the rate and channels
// parameters of an audio/L16 content type.
func decodePCM(clip Clip) (Waveform, error) {
	rate, channels := clip.SampleRate, clip.Channels
	declaredRate, declaredChannels := PCMParams(clip.ContentType)
	if rate <= 0 {
		rate = declaredRate
	}
	if channels <= 0 {
		channels = declaredChannels
	}
	if rate <= 0 {
		return Waveform{}, fmt.Errorf("raw pcm needs a declared sample rate")
	}
	if channels <= 0 {
		channels = 1
	}
	if len(clip.Data)%(2*channels) != 0 {
		return Waveform{}, fmt.Errorf("raw pcm length %d is not a whole number of %d-channel frames", len(clip.Data), channels)
	}
	return Waveform{
		Samples:    downmix(s16leToFloat(clip.Data), channels),
		SampleRate: rate,
	}, nil
}

// PCMParams reads the rate and channels parameters of a content type such
// as "audio/L16; rate=16000; channels=2". Missing or malformed values are 0.
func PCMParams(contentType string) (rate, channels int) {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return 0, 0
	}
	rate, _ = strconv.Atoi(params["rate"])
	channels, _ = strconv.Atoi(params["channels"])
	return rate, channels
}
