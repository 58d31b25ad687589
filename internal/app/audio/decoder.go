package audio

import (
	"context"

	apperrors "habla-jungla/internal/app/errors"
)

// DecoderConfig configures decoding.
type DecoderConfig struct {
	TargetRate int
	// FFmpegPath enables the ffmpeg fallback for unrecognized containers.
	FFmpegPath string
}

// Decoder turns clips into mono waveforms at a fixed rate. It holds no
// mutable state.
type Decoder struct {
	targetRate int
	ffmpegPath string
}

// NewDecoder creates a decoder. A zero TargetRate is rejected at Decode time.
func NewDecoder(cfg DecoderConfig) *Decoder {
	return &Decoder{
		targetRate: cfg.TargetRate,
		ffmpegPath: cfg.FFmpegPath,
	}
}

// TargetRate is the rate every decoded waveform is resampled to.
func (d *Decoder) TargetRate() int {
	return d.targetRate
}

// Decode parses the clip, downmixes to mono and resamples to the target
// rate. Every failure is a *errors.DecodeError.
func (d *Decoder) Decode(ctx context.Context, clip Clip) (Waveform, error) {
	if len(clip.Data) == 0 {
		return Waveform{}, apperrors.NewDecodeError("", apperrors.ErrEmptyAudio)
	}

	format := Sniff(clip)

	var (
		wave Waveform
		err  error
	)
	switch format {
	case FormatWAV:
		wave, err = decodeWAV(clip.Data)
	case FormatMP3:
		wave, err = decodeMP3(clip.Data)
	case FormatPCM:
		wave, err = decodePCM(clip)
	default:
		if d.ffmpegPath == "" {
			return Waveform{}, apperrors.NewDecodeError("", apperrors.ErrUnsupportedFormat)
		}
		format = "ffmpeg"
		wave, err = decodeFFmpeg(ctx, d.ffmpegPath, clip.Data, d.targetRate)
	}
	if err != nil {
		return Waveform{}, apperrors.NewDecodeError(string(format), err)
	}
	if len(wave.Samples) == 0 {
		return Waveform{}, apperrors.NewDecodeError(string(format), apperrors.ErrNoSamples)
	}

	if wave.SampleRate != d.targetRate {
		resampled, err := Resample(wave.Samples, wave.SampleRate, d.targetRate)
		if err != nil {
			return Waveform{}, apperrors.NewDecodeError(string(format), apperrors.Wrap(err, apperrors.ErrResampleFailed.Error()))
		}
		if len(resampled) == 0 {
			return Waveform{}, apperrors.NewDecodeError(string(format), apperrors.ErrNoSamples)
		}
		wave = Waveform{Samples: resampled, SampleRate: d.targetRate}
	}
	return wave, nil
}
