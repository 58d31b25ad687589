package features

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habla-jungla/internal/app/audio"
	apperrors "habla-jungla/internal/app/errors"
)

func TestFFTImpulse(t *testing.T) {
	re := make([]float64, 8)
	im := make([]float64, 8)
	re[0] = 1
	fft(re, im)
	for k := range re {
		assert.InDelta(t, 1.0, re[k], 1e-12)
		assert.InDelta(t, 0.0, im[k], 1e-12)
	}
}

func TestFFTSinePeak(t *testing.T) {
	const n = 64
	re := make([]float64, n)
	im := make([]float64, n)
	for i := range re {
		re[i] = math.Sin(2 * math.Pi * 4 * float64(i) / n)
	}
	power := powerSpectrum(re, im)
	require.Len(t, power, n/2+1)

	peak := 0
	for k, p := range power {
		if p > power[peak] {
			peak = k
		}
	}
	assert.Equal(t, 4, peak)
}

func TestMelScaleRoundTrip(t *testing.T) {
	for _, hz := range []float64{0, 200, 999, 1000, 4000, 22050} {
		assert.InDelta(t, hz, melToHz(hzToMel(hz)), 1e-6)
	}
	assert.InDelta(t, 15.0, hzToMel(1000), 1e-12)
}

func TestDCTIsOrthonormal(t *testing.T) {
	basis := dctMatrix(8, 8)
	for i := range basis {
		for j := range basis {
			var dot float64
			for k := range basis[i] {
				dot += basis[i][k] * basis[j][k]
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, dot, 1e-9)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.FFTSize = 1000
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.NumMels = 4
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.HighFreq = -1
	assert.Error(t, bad.Validate())
}

func TestComputeShape(t *testing.T) {
	mfcc, err := NewMFCC(DefaultConfig())
	require.NoError(t, err)

	tone := audio.Tone(440, 2*time.Second, 44100, 0.5)
	m, err := mfcc.Compute(tone)
	require.NoError(t, err)

	assert.Equal(t, 13, m.Rows())
	assert.Equal(t, 173, m.Cols())
	assert.False(t, m.IsRagged())
	for _, row := range m.Data {
		for _, v := range row {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		}
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	mfcc, err := NewMFCC(DefaultConfig())
	require.NoError(t, err)

	tone := audio.Tone(880, 250*time.Millisecond, 44100, 0.3)
	a, err := mfcc.Compute(tone)
	require.NoError(t, err)
	b, err := mfcc.Compute(tone)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeSilenceIsFlat(t *testing.T) {
	mfcc, err := NewMFCC(DefaultConfig())
	require.NoError(t, err)

	m, err := mfcc.Compute(make([]float64, 4096))
	require.NoError(t, err)

	// all mel bands sit at the power floor, so only the DC coefficient is nonzero
	for k := 1; k < m.Rows(); k++ {
		for _, v := range m.Data[k] {
			assert.InDelta(t, 0.0, v, 1e-6)
		}
	}
	assert.Less(t, m.Data[0][0], 0.0)
}

func TestComputeRejectsEmpty(t *testing.T) {
	mfcc, err := NewMFCC(DefaultConfig())
	require.NoError(t, err)
	_, err = mfcc.Compute(nil)
	assert.Error(t, err)
}

func TestExtractor(t *testing.T) {
	mfcc, err := NewMFCC(DefaultConfig())
	require.NoError(t, err)
	extractor, err := NewExtractor(audio.NewDecoder(audio.DecoderConfig{TargetRate: 44100}), mfcc)
	require.NoError(t, err)

	data, err := audio.EncodeWAV(audio.Tone(440, 2*time.Second, 44100, 0.5), 44100)
	require.NoError(t, err)

	m, err := extractor.Extract(context.Background(), audio.Clip{Data: data, Filename: "tone.wav"})
	require.NoError(t, err)
	assert.Equal(t, 13, m.Rows())
	assert.Equal(t, 173, m.Cols())

	_, err = extractor.Extract(context.Background(), audio.Clip{Data: []byte("not audio")})
	assert.True(t, apperrors.IsDecodeError(err))

	_, err = extractor.Extract(context.Background(), audio.Clip{})
	assert.True(t, apperrors.IsDecodeError(err))
}

func TestNewExtractorRateMismatch(t *testing.T) {
	mfcc, err := NewMFCC(DefaultConfig())
	require.NoError(t, err)
	_, err = NewExtractor(audio.NewDecoder(audio.DecoderConfig{TargetRate: 16000}), mfcc)
	assert.Error(t, err)
}

func TestMatrixHelpers(t *testing.T) {
	m := NewMatrix(2, 3)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, 0, Matrix{}.Cols())

	c := m.Clone()
	c.Data[0][0] = 7
	assert.Equal(t, 0.0, m.Data[0][0])

	m.Data[1] = m.Data[1][:1]
	assert.True(t, m.IsRagged())
}
