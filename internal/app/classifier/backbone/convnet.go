package backbone

import (
	"context"
	"fmt"

	apperrors "habla-jungla/internal/app/errors"
)

// ConvNet is a VGG-style stack of convolution blocks with no head. Its
// weights are read-only after construction, so Forward is safe for
// concurrent use.
type ConvNet struct {
	weights *Weights
}

// NewConvNet validates w and returns a projector over it.
func NewConvNet(w *Weights) (*ConvNet, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &ConvNet{weights: w}, nil
}

func (n *ConvNet) Name() string {
	return "convnet"
}

// Weights exposes the frozen parameters for export.
func (n *ConvNet) Weights() *Weights {
	return n.weights
}

// Forward runs every block and returns the final activation volume.
func (n *ConvNet) Forward(ctx context.Context, input *Tensor) (*Tensor, error) {
	if err := input.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrShapeMismatch, err.Error())
	}
	if input.C != n.weights.InChannels {
		return nil, apperrors.Wrap(apperrors.ErrShapeMismatch,
			fmt.Sprintf("input has %d channels, backbone expects %d", input.C, n.weights.InChannels))
	}

	x := input
	for b, block := range n.weights.Blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := range block.Convs {
			x = conv3x3ReLU(x, &block.Convs[i])
		}
		x = maxPool2x2(x)
		if x.H == 0 || x.W == 0 {
			return nil, apperrors.Wrap(apperrors.ErrSpatialCollapse, fmt.Sprintf("after block %d", b))
		}
	}
	return x, nil
}

func conv3x3ReLU(x *Tensor, conv *Conv) *Tensor {
	out := NewTensor(x.N, x.H, x.W, conv.Out)
	acc := make([]float32, conv.Out)

	for n := 0; n < x.N; n++ {
		for h := 0; h < x.H; h++ {
			for w := 0; w < x.W; w++ {
				copy(acc, conv.Bias)
				for ky := 0; ky < 3; ky++ {
					ih := h + ky - 1
					if ih < 0 || ih >= x.H {
						continue
					}
					for kx := 0; kx < 3; kx++ {
						iw := w + kx - 1
						if iw < 0 || iw >= x.W {
							continue
						}
						base := x.Index(n, ih, iw, 0)
						kbase := (ky*3 + kx) * conv.In * conv.Out
						for ci := 0; ci < conv.In; ci++ {
							v := x.Data[base+ci]
							if v == 0 {
								continue
							}
							row := conv.Kernel[kbase+ci*conv.Out : kbase+(ci+1)*conv.Out]
							for co, k := range row {
								acc[co] += v * k
							}
						}
					}
				}
				dst := out.Data[out.Index(n, h, w, 0):]
				for co, v := range acc {
					if v > 0 {
						dst[co] = v
					}
				}
			}
		}
	}
	return out
}

func maxPool2x2(x *Tensor) *Tensor {
	out := NewTensor(x.N, x.H/2, x.W/2, x.C)
	for n := 0; n < out.N; n++ {
		for h := 0; h < out.H; h++ {
			for w := 0; w < out.W; w++ {
				for c := 0; c < out.C; c++ {
					m := x.At(n, 2*h, 2*w, c)
					if v := x.At(n, 2*h, 2*w+1, c); v > m {
						m = v
					}
					if v := x.At(n, 2*h+1, 2*w, c); v > m {
						m = v
					}
					if v := x.At(n, 2*h+1, 2*w+1, c); v > m {
						m = v
					}
					out.Set(n, h, w, c, m)
				}
			}
		}
	}
	return out
}
