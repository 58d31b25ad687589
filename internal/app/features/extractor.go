package features

import (
	"context"
	"fmt"

	"habla-jungla/internal/app/audio"
	apperrors "habla-jungla/internal/app/errors"
)

// Extractor decodes a clip and computes its MFCC matrix.
type Extractor struct {
	decoder *audio.Decoder
	mfcc    *MFCC
}

// NewExtractor wires a decoder to an MFCC stage. The decoder's target rate
// must match the MFCC sample rate.
func NewExtractor(decoder *audio.Decoder, mfcc *MFCC) (*Extractor, error) {
	if decoder.TargetRate() != mfcc.Config().SampleRate {
		return nil, fmt.Errorf("decoder rate %d does not match feature rate %d",
			decoder.TargetRate(), mfcc.Config().SampleRate)
	}
	return &Extractor{decoder: decoder, mfcc: mfcc}, nil
}

// Config returns the extraction constants.
func (e *Extractor) Config() Config {
	return e.mfcc.Config()
}

// Extract returns the feature matrix for clip. Decoding failures are
// *errors.DecodeError and are never masked.
func (e *Extractor) Extract(ctx context.Context, clip audio.Clip) (Matrix, error) {
	wave, err := e.decoder.Decode(ctx, clip)
	if err != nil {
		return Matrix{}, err
	}

	m, err := e.mfcc.Compute(wave.Samples)
	if err != nil {
		return Matrix{}, apperrors.NewDecodeError("", err)
	}
	return m, nil
}
