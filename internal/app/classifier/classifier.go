// Package classifier maps a cepstral feature matrix onto a species label by
// projecting it through a frozen image backbone.
package classifier

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"habla-jungla/internal/app/classifier/backbone"
	apperrors "habla-jungla/internal/app/errors"
	"habla-jungla/internal/app/features"
)

// DefaultInputWidth is the spatial width the backbone expects.
const DefaultInputWidth = 224

// Config holds the classifier constants.
type Config struct {
	InputWidth int
	Vocabulary []Label
}

// Classifier is safe for concurrent use as long as its backbone is.
type Classifier struct {
	width    int
	vocab    []Label
	backbone backbone.Backbone
	logger   *zap.Logger
}

// New creates a classifier around a loaded backbone.
func New(cfg Config, bb backbone.Backbone, logger *zap.Logger) (*Classifier, error) {
	if cfg.InputWidth <= 0 {
		return nil, apperrors.OutOfRange("classifier input width", 1, math.MaxInt32)
	}
	if len(cfg.Vocabulary) == 0 {
		return nil, apperrors.RequiredField("classifier vocabulary")
	}
	for _, l := range cfg.Vocabulary {
		if l == Unknown {
			return nil, apperrors.InvalidField("classifier vocabulary", "must not contain the unknown label")
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		width:    cfg.InputWidth,
		vocab:    append([]Label(nil), cfg.Vocabulary...),
		backbone: bb,
		logger:   logger,
	}, nil
}

// InputWidth is the normalized time axis length.
func (c *Classifier) InputWidth() int {
	return c.width
}

// Vocabulary returns a copy of the ordered labels.
func (c *Classifier) Vocabulary() []Label {
	return append([]Label(nil), c.vocab...)
}

// Backbone returns the backbone name.
func (c *Classifier) Backbone() string {
	return c.backbone.Name()
}

// LabelFor maps a backbone channel onto the vocabulary by index mod V.
func (c *Classifier) LabelFor(channel int) Label {
	v := len(c.vocab)
	return c.vocab[((channel%v)+v)%v]
}

// Classify runs the full chain. Every internal failure yields Fallback.
func (c *Classifier) Classify(ctx context.Context, m features.Matrix) Result {
	if m.Rows() == 0 {
		return c.fallback("input", apperrors.ErrEmptyFeatures)
	}
	if m.IsRagged() {
		return c.fallback("input", apperrors.Wrap(apperrors.ErrShapeMismatch, "ragged feature matrix"))
	}

	input := ToTensor(NormalizeWidth(m, c.width))

	activations, err := c.forward(ctx, input)
	if err != nil {
		return c.fallback("backbone", err)
	}

	scores, err := ReduceSpatial(activations)
	if err != nil {
		return c.fallback("reduce", err)
	}

	channel, err := Argmax(scores)
	if err != nil {
		return c.fallback("argmax", err)
	}

	label := c.LabelFor(channel)
	c.logger.Debug("classified clip",
		zap.String("label", string(label)),
		zap.Int("channel", channel),
		zap.Float64("score", scores[channel]),
		zap.Int("frames", m.Cols()))
	return Ok(label, channel, scores[channel])
}

// forward converts a backbone panic into an error so it takes the fallback
// path like any other internal failure.
func (c *Classifier) forward(ctx context.Context, input *backbone.Tensor) (out *backbone.Tensor, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.Wrap(apperrors.ErrBackbonePanicked, fmt.Sprint(r))
		}
	}()
	return c.backbone.Forward(ctx, input)
}

func (c *Classifier) fallback(stage string, cause error) Result {
	amb := &apperrors.ClassificationAmbiguity{Stage: stage, Cause: cause}
	c.logger.Warn("classification fell back to unknown", zap.String("stage", stage), zap.Error(cause))
	return Fallback(amb)
}
