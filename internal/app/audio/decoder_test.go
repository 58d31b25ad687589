package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "habla-jungla/internal/app/errors"
)

func TestSniff(t *testing.T) {
	wavBytes, err := EncodeWAV(Tone(440, 10*time.Millisecond, 8000, 0.5), 8000)
	require.NoError(t, err)

	tests := []struct {
		name string
		clip Clip
		want Format
	}{
		{"wav header", Clip{Data: wavBytes}, FormatWAV},
		{"id3 tag", Clip{Data: []byte("ID3\x04\x00rest")}, FormatMP3},
		{"mpeg frame sync", Clip{Data: []byte{0xFF, 0xFB, 0x90, 0x00}}, FormatMP3},
		{"declared pcm", Clip{Data: []byte{0, 0}, ContentType: "audio/L16; rate=16000"}, FormatPCM},
		{"text", Clip{Data: []byte("definitely not audio")}, FormatUnknown},
		{"empty", Clip{}, FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sniff(tt.clip))
		})
	}
}

func TestDecodeWAVAtTargetRate(t *testing.T) {
	tone := Tone(440, time.Second, 44100, 0.5)
	data, err := EncodeWAV(tone, 44100)
	require.NoError(t, err)

	wave, err := NewDecoder(DecoderConfig{TargetRate: 44100}).Decode(context.Background(), Clip{Data: data})
	require.NoError(t, err)

	assert.Equal(t, 44100, wave.SampleRate)
	require.Len(t, wave.Samples, len(tone))
	for i := 0; i < 100; i++ {
		assert.InDelta(t, tone[i], wave.Samples[i], 1e-3)
	}
	assert.Equal(t, time.Second, wave.Duration())
}

func TestDecodeResamplesToTargetRate(t *testing.T) {
	data, err := EncodeWAV(Tone(440, time.Second, 22050, 0.5), 22050)
	require.NoError(t, err)

	wave, err := NewDecoder(DecoderConfig{TargetRate: 44100}).Decode(context.Background(), Clip{Data: data})
	require.NoError(t, err)

	assert.Equal(t, 44100, wave.SampleRate)
	assert.InDelta(t, 44100, len(wave.Samples), 4410)
}

func TestDecodePCMDownmixesStereo(t *testing.T) {
	raw := s16le(16384, 0, -16384, -16384)

	clip := Clip{Data: raw, ContentType: "audio/pcm", SampleRate: 16000, Channels: 2}
	wave, err := NewDecoder(DecoderConfig{TargetRate: 16000}).Decode(context.Background(), clip)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.25, -0.5}, wave.Samples)
}

func s16le(frames ...int16) []byte {
	raw := make([]byte, 2*len(frames))
	for i, v := range frames {
		binary.LittleEndian.PutUint16(raw[2*i:], uint16(v))
	}
	return raw
}

func TestDecodeFailures(t *testing.T) {
	decoder := NewDecoder(DecoderConfig{TargetRate: 44100})

	tests := []struct {
		name  string
		clip  Clip
		cause error
	}{
		{"empty bytes", Clip{}, apperrors.ErrEmptyAudio},
		{"non-audio bytes", Clip{Data: []byte("<html>hello</html>")}, apperrors.ErrUnsupportedFormat},
		{"pcm without rate", Clip{Data: []byte{0, 0}, ContentType: "audio/pcm"}, nil},
		{"odd pcm length", Clip{Data: []byte{0, 0, 0}, ContentType: "audio/pcm", SampleRate: 8000}, nil},
		{"truncated wav", Clip{Data: []byte("RIFF\x00\x00\x00\x00WAVEfmt ")}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decoder.Decode(context.Background(), tt.clip)
			require.Error(t, err)

			var decodeErr *apperrors.DecodeError
			assert.True(t, errors.As(err, &decodeErr))
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}
		})
	}
}

func TestIntsToFloat(t *testing.T) {
	assert.Equal(t, []float64{-1, 0, 0.5}, intsToFloat([]int{0, 128, 192}, 8))
	assert.Equal(t, []float64{-1, 0.5}, intsToFloat([]int{-32768, 16384}, 16))
}

func TestResampleSameRateIsIdentity(t *testing.T) {
	in := []float64{0.1, 0.2, 0.3}
	out, err := Resample(in, 8000, 8000)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = Resample(in, 0, 8000)
	assert.Error(t, err)
}

func TestDecodeWAVRejectsOversizedChunks(t *testing.T) {
	data, err := EncodeWAV(Tone(440, 10*time.Millisecond, 8000, 0.5), 8000)
	require.NoError(t, err)

	tests := []struct {
		name   string
		offset int
	}{
		{"fmt chunk", 16},
		{"data chunk", 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			crafted := append([]byte(nil), data...)
			binary.LittleEndian.PutUint32(crafted[tt.offset:], 0x7FFFFFF0)

			_, err := NewDecoder(DecoderConfig{TargetRate: 44100}).Decode(context.Background(), Clip{Data: crafted})
			require.Error(t, err)

			var decodeErr *apperrors.DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, string(FormatWAV), decodeErr.Format)
			assert.Contains(t, err.Error(), "only")
		})
	}
}

func TestCheckChunkSizesAcceptsEncodedWAV(t *testing.T) {
	data, err := EncodeWAV(Tone(440, 10*time.Millisecond, 8000, 0.5), 8000)
	require.NoError(t, err)
	assert.NoError(t, checkChunkSizes(data))
}

// silentMP3 builds MPEG-1 Layer III frames (128 kbps, 44.1 kHz, stereo)
// whose side info and main data are all zero.
func silentMP3(frames int) []byte {
	const frameSize = 144 * 128000 / 44100
	var out []byte
	for i := 0; i < frames; i++ {
		frame := make([]byte, frameSize)
		copy(frame, []byte{0xFF, 0xFB, 0x90, 0x00})
		out = append(out, frame...)
	}
	return out
}

func TestDecodeMP3(t *testing.T) {
	data := silentMP3(10)
	require.Equal(t, FormatMP3, Sniff(Clip{Data: data}))

	wave, err := NewDecoder(DecoderConfig{TargetRate: 44100}).Decode(context.Background(), Clip{Data: data})
	require.NoError(t, err)

	assert.Equal(t, 44100, wave.SampleRate)
	assert.InDelta(t, 10*1152, len(wave.Samples), 1152)
	for _, s := range wave.Samples {
		assert.InDelta(t, 0, s, 1e-6)
	}
}

func TestDecodeMP3Garbage(t *testing.T) {
	_, err := NewDecoder(DecoderConfig{TargetRate: 44100}).Decode(context.Background(), Clip{Data: []byte{0xFF, 0xFB, 0x90}})
	require.Error(t, err)

	var decodeErr *apperrors.DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, string(FormatMP3), decodeErr.Format)
}

func TestS16leToFloat(t *testing.T) {
	assert.Equal(t, []float64{0.5, -0.5, -1}, s16leToFloat(s16le(16384, -16384, -32768)))
	// a dangling odd byte is dropped
	assert.Len(t, s16leToFloat([]byte{0, 0, 1}), 1)
}

func TestDecodePCMRateFromContentType(t *testing.T) {
	raw := s16le(16384, 16384, -16384, -16384)

	clip := Clip{Data: raw, ContentType: "audio/L16; rate=8000; channels=2"}
	wave, err := NewDecoder(DecoderConfig{TargetRate: 8000}).Decode(context.Background(), clip)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, -0.5}, wave.Samples)

	// a declared clip rate wins over the content type
	clip = Clip{Data: raw, ContentType: "audio/L16; rate=16000", SampleRate: 8000, Channels: 1}
	wave, err = NewDecoder(DecoderConfig{TargetRate: 8000}).Decode(context.Background(), clip)
	require.NoError(t, err)
	assert.Len(t, wave.Samples, 4)
}

func TestPCMParams(t *testing.T) {
	tests := []struct {
		contentType  string
		wantRate     int
		wantChannels int
	}{
		{"audio/L16; rate=16000; channels=2", 16000, 2},
		{"audio/pcm;rate=44100", 44100, 0},
		{"audio/pcm", 0, 0},
		{"audio/L16; rate=fast", 0, 0},
		{"", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			rate, channels := PCMParams(tt.contentType)
			assert.Equal(t, tt.wantRate, rate)
			assert.Equal(t, tt.wantChannels, channels)
		})
	}
}

func TestIsPCMFile(t *testing.T) {
	assert.True(t, IsPCMFile("chirp.pcm"))
	assert.True(t, IsPCMFile("/tmp/LION.RAW"))
	assert.False(t, IsPCMFile("bark.wav"))
	assert.False(t, IsPCMFile("pcm"))
}
