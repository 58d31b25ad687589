package backbone

import (
	"fmt"

	apperrors "habla-jungla/internal/app/errors"
)

// Backbone types accepted by New.
const (
	TypeConvNet   = "convnet"
	TypeTFServing = "tfserving"
)

// InputChannels is the channel count every backbone receives.
const InputChannels = 3

// Config selects and configures a backbone.
type Config struct {
	Type string
	// WeightsPath loads convnet weights; empty means SeededWeights(Seed).
	WeightsPath string
	Seed        uint64
	Blocks      [][]int
	TFServing   TFServingConfig
	// Serialize wraps the handle with its own mutex.
	Serialize bool
}

// New builds the configured backbone.
func New(cfg Config) (Backbone, error) {
	var (
		b   Backbone
		err error
	)
	switch cfg.Type {
	case TypeConvNet, "":
		b, err = newConvNetFromConfig(cfg)
	case TypeTFServing:
		b, err = NewTFServing(cfg.TFServing)
	default:
		return nil, apperrors.Wrapf(apperrors.ErrUnknownBackend, "backbone %q", cfg.Type)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Serialize {
		b = Serialized(b)
	}
	return b, nil
}

func newConvNetFromConfig(cfg Config) (*ConvNet, error) {
	if cfg.WeightsPath != "" {
		w, err := LoadWeights(cfg.WeightsPath)
		if err != nil {
			return nil, err
		}
		if w.InChannels != InputChannels {
			return nil, fmt.Errorf("weights expect %d input channels, classifier feeds %d", w.InChannels, InputChannels)
		}
		return NewConvNet(w)
	}
	blocks := cfg.Blocks
	if len(blocks) == 0 {
		blocks = DefaultBlocks
	}
	return NewConvNet(SeededWeights(cfg.Seed, InputChannels, blocks))
}
