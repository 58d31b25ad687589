// Package features turns decoded audio into a cepstral feature matrix.
//
// The MFCC chain mirrors the common librosa defaults:
//
//	SampleRate:      44100
//	NumCoefficients: 13
//	FFTSize:         2048 (centered frames, zero padded)
//	HopSize:         512
//	NumMels:         128 (Slaney scale and area normalization)
//	TopDB:           80
package features

import (
	"fmt"
	"math"
)

const (
	minPower = 1e-10
)

// Config controls MFCC extraction.
type Config struct {
	SampleRate      int     // target sample rate in Hz
	NumCoefficients int     // cepstral bands kept per frame
	FFTSize         int     // window and FFT length, power of two
	HopSize         int     // frame step in samples
	NumMels         int     // mel filters before the DCT
	LowFreq         float64 // lowest filter edge in Hz
	HighFreq        float64 // highest filter edge in Hz, 0 means Nyquist
	TopDB           float64 // dynamic range kept below the peak, 0 disables
}

// DefaultConfig returns the extraction constants used by the classifier.
func DefaultConfig() Config {
	return Config{
		SampleRate:      44100,
		NumCoefficients: 13,
		FFTSize:         2048,
		HopSize:         512,
		NumMels:         128,
		LowFreq:         0,
		HighFreq:        0,
		TopDB:           80,
	}
}

// Validate checks the config for values the DSP chain cannot handle.
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	case c.NumCoefficients <= 0:
		return fmt.Errorf("coefficient count must be positive, got %d", c.NumCoefficients)
	case !isPowerOfTwo(c.FFTSize):
		return fmt.Errorf("fft size must be a power of two, got %d", c.FFTSize)
	case c.HopSize <= 0:
		return fmt.Errorf("hop size must be positive, got %d", c.HopSize)
	case c.NumMels < c.NumCoefficients:
		return fmt.Errorf("mel count %d is below coefficient count %d", c.NumMels, c.NumCoefficients)
	case c.HighFreq < 0 || c.LowFreq < 0 || (c.HighFreq > 0 && c.HighFreq <= c.LowFreq):
		return fmt.Errorf("invalid frequency range [%g, %g]", c.LowFreq, c.HighFreq)
	}
	return nil
}

// MFCC computes mel-frequency cepstral coefficients. It holds only
// precomputed read-only tables and is safe for concurrent use.
type MFCC struct {
	cfg     Config
	window  []float64
	melBank [][]float64
	dct     [][]float64
}

// NewMFCC precomputes the window, filter bank and DCT basis for cfg.
func NewMFCC(cfg Config) (*MFCC, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	high := cfg.HighFreq
	if high == 0 {
		high = float64(cfg.SampleRate) / 2
	}
	return &MFCC{
		cfg:     cfg,
		window:  hannWindow(cfg.FFTSize),
		melBank: melFilterBank(cfg.NumMels, cfg.FFTSize, cfg.SampleRate, cfg.LowFreq, high),
		dct:     dctMatrix(cfg.NumCoefficients, cfg.NumMels),
	}, nil
}

// Config returns the extraction constants.
func (e *MFCC) Config() Config {
	return e.cfg
}

// NumFrames is the column count produced for n samples.
func (e *MFCC) NumFrames(n int) int {
	return 1 + n/e.cfg.HopSize
}

// Compute returns a NumCoefficients x NumFrames matrix for mono samples at
// the configured sample rate.
func (e *MFCC) Compute(samples []float64) (Matrix, error) {
	if len(samples) == 0 {
		return Matrix{}, fmt.Errorf("no samples to analyze")
	}

	melDB := e.logMelSpectrogram(samples)
	frames := len(melDB)

	out := NewMatrix(e.cfg.NumCoefficients, frames)
	for t, mel := range melDB {
		for k, basis := range e.dct {
			var acc float64
			for i, v := range mel {
				acc += basis[i] * v
			}
			out.Data[k][t] = acc
		}
	}
	return out, nil
}

// logMelSpectrogram returns [frames][numMels] power in dB.
func (e *MFCC) logMelSpectrogram(samples []float64) [][]float64 {
	nfft := e.cfg.FFTSize
	pad := nfft / 2

	padded := make([]float64, len(samples)+2*pad)
	copy(padded[pad:], samples)

	frames := e.NumFrames(len(samples))
	frame := make([]float64, nfft)
	scratch := make([]float64, nfft)

	out := make([][]float64, frames)
	peak := math.Inf(-1)
	for t := 0; t < frames; t++ {
		start := t * e.cfg.HopSize
		for i := 0; i < nfft; i++ {
			frame[i] = padded[start+i] * e.window[i]
		}
		power := powerSpectrum(frame, scratch)

		mel := make([]float64, len(e.melBank))
		for m, filter := range e.melBank {
			var energy float64
			for k, w := range filter {
				if w != 0 {
					energy += w * power[k]
				}
			}
			db := 10 * math.Log10(math.Max(minPower, energy))
			mel[m] = db
			if db > peak {
				peak = db
			}
		}
		out[t] = mel
	}

	if e.cfg.TopDB > 0 {
		floor := peak - e.cfg.TopDB
		for _, mel := range out {
			for m, v := range mel {
				if v < floor {
					mel[m] = floor
				}
			}
		}
	}
	return out
}
