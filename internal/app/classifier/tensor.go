package classifier

import (
	"math"

	"habla-jungla/internal/app/classifier/backbone"
	apperrors "habla-jungla/internal/app/errors"
	"habla-jungla/internal/app/features"
)

// NormalizeWidth returns a copy of m with exactly width columns: right
// padded with zeros when narrower, cut to the first width columns when
// wider.
func NormalizeWidth(m features.Matrix, width int) features.Matrix {
	out := features.NewMatrix(m.Rows(), width)
	for r, row := range m.Data {
		copy(out.Data[r], row)
	}
	return out
}

// ToTensor lays the matrix out as [1, rows, cols, 3] by repeating the single
// channel three times.
func ToTensor(m features.Matrix) *backbone.Tensor {
	t := backbone.NewTensor(1, m.Rows(), m.Cols(), backbone.InputChannels)
	for h, row := range m.Data {
		for w, v := range row {
			for c := 0; c < backbone.InputChannels; c++ {
				t.Set(0, h, w, c, float32(v))
			}
		}
	}
	return t
}

// ReduceSpatial sums the first batch item over height and width, leaving
// one score per channel.
func ReduceSpatial(t *backbone.Tensor) ([]float64, error) {
	if err := t.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrShapeMismatch, err.Error())
	}
	if t.N != 1 {
		return nil, apperrors.Wrapf(apperrors.ErrShapeMismatch, "expected batch of 1, got %d", t.N)
	}
	if t.H == 0 || t.W == 0 || t.C == 0 {
		return nil, apperrors.ErrSpatialCollapse
	}

	scores := make([]float64, t.C)
	for h := 0; h < t.H; h++ {
		for w := 0; w < t.W; w++ {
			base := t.Index(0, h, w, 0)
			for c := 0; c < t.C; c++ {
				scores[c] += float64(t.Data[base+c])
			}
		}
	}
	return scores, nil
}

// Argmax returns the first index of the largest score. Non-finite scores
// are an error.
func Argmax(scores []float64) (int, error) {
	if len(scores) == 0 {
		return 0, apperrors.ErrSpatialCollapse
	}
	best := 0
	for i, s := range scores {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return 0, apperrors.Wrapf(apperrors.ErrNonFiniteScore, "channel %d", i)
		}
		if s > scores[best] {
			best = i
		}
	}
	return best, nil
}
