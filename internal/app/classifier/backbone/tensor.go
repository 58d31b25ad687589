// Package backbone holds frozen feature projectors used by the species
// classifier. A backbone maps an NHWC tensor to an activation volume and is
// never trained or mutated after construction.
package backbone

import (
	"context"
	"fmt"
	"sync"
)

// Tensor is a dense float32 tensor in NHWC layout.
type Tensor struct {
	N, H, W, C int
	Data       []float32
}

// NewTensor allocates a zero tensor.
func NewTensor(n, h, w, c int) *Tensor {
	return &Tensor{N: n, H: h, W: w, C: c, Data: make([]float32, n*h*w*c)}
}

// Index returns the flat offset of (n, h, w, c).
func (t *Tensor) Index(n, h, w, c int) int {
	return ((n*t.H+h)*t.W+w)*t.C + c
}

// At returns the element at (n, h, w, c).
func (t *Tensor) At(n, h, w, c int) float32 {
	return t.Data[t.Index(n, h, w, c)]
}

// Set stores v at (n, h, w, c).
func (t *Tensor) Set(n, h, w, c int, v float32) {
	t.Data[t.Index(n, h, w, c)] = v
}

// Shape returns [N, H, W, C].
func (t *Tensor) Shape() [4]int {
	return [4]int{t.N, t.H, t.W, t.C}
}

// Validate checks that Data matches the declared shape.
func (t *Tensor) Validate() error {
	if t == nil {
		return fmt.Errorf("nil tensor")
	}
	if t.N < 0 || t.H < 0 || t.W < 0 || t.C < 0 {
		return fmt.Errorf("negative dimension in shape %v", t.Shape())
	}
	if want := t.N * t.H * t.W * t.C; len(t.Data) != want {
		return fmt.Errorf("tensor shape %v needs %d values, has %d", t.Shape(), want, len(t.Data))
	}
	return nil
}

// Backbone is a frozen projector. Implementations must not mutate their
// weights from Forward.
type Backbone interface {
	Name() string
	Forward(ctx context.Context, input *Tensor) (*Tensor, error)
}

// Serialized guards a backbone handle with its own mutex so that only one
// Forward runs at a time on that handle.
func Serialized(b Backbone) Backbone {
	return &serialized{inner: b}
}

type serialized struct {
	mu    sync.Mutex
	inner Backbone
}

func (s *serialized) Name() string {
	return s.inner.Name()
}

func (s *serialized) Forward(ctx context.Context, input *Tensor) (*Tensor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Forward(ctx, input)
}
