package backbone

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

const weightsVersion = 1

// Weights is the on-disk form of a convnet backbone.
type Weights struct {
	Version    int     `msgpack:"version"`
	InChannels int     `msgpack:"in_channels"`
	Blocks     []Block `msgpack:"blocks"`
}

// Block is a run of 3x3 convolutions followed by one 2x2 max pool.
type Block struct {
	Convs []Conv `msgpack:"convs"`
}

// Conv is a 3x3 same-padded convolution with bias and ReLU.
// Kernel layout is [ky][kx][in][out].
type Conv struct {
	In     int       `msgpack:"in"`
	Out    int       `msgpack:"out"`
	Kernel []float32 `msgpack:"kernel"`
	Bias   []float32 `msgpack:"bias"`
}

// DefaultBlocks is the output channel layout of the bundled projector:
// three pooling stages take 13 cepstral rows down to one.
var DefaultBlocks = [][]int{{16}, {32}, {64}}

// OutChannels is the channel count of the final activation volume.
func (w *Weights) OutChannels() int {
	if len(w.Blocks) == 0 {
		return w.InChannels
	}
	last := w.Blocks[len(w.Blocks)-1]
	if len(last.Convs) == 0 {
		return w.InChannels
	}
	return last.Convs[len(last.Convs)-1].Out
}

// Validate checks that channel counts chain and buffers are sized.
func (w *Weights) Validate() error {
	if w.Version != weightsVersion {
		return fmt.Errorf("unsupported weights version %d", w.Version)
	}
	if w.InChannels <= 0 {
		return fmt.Errorf("in_channels must be positive, got %d", w.InChannels)
	}
	in := w.InChannels
	for b, block := range w.Blocks {
		if len(block.Convs) == 0 {
			return fmt.Errorf("block %d has no convolutions", b)
		}
		for c, conv := range block.Convs {
			if conv.In != in {
				return fmt.Errorf("block %d conv %d expects %d input channels, previous layer gives %d", b, c, conv.In, in)
			}
			if conv.Out <= 0 {
				return fmt.Errorf("block %d conv %d has %d output channels", b, c, conv.Out)
			}
			if len(conv.Kernel) != 9*conv.In*conv.Out {
				return fmt.Errorf("block %d conv %d kernel has %d values, want %d", b, c, len(conv.Kernel), 9*conv.In*conv.Out)
			}
			if len(conv.Bias) != conv.Out {
				return fmt.Errorf("block %d conv %d bias has %d values, want %d", b, c, len(conv.Bias), conv.Out)
			}
			in = conv.Out
		}
	}
	return nil
}

// SeededWeights generates He-initialized weights from a fixed seed. The same
// seed and layout always produce identical weights.
func SeededWeights(seed uint64, inChannels int, blocks [][]int) *Weights {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	w := &Weights{Version: weightsVersion, InChannels: inChannels}
	in := inChannels
	for _, outs := range blocks {
		var block Block
		for _, out := range outs {
			std := math.Sqrt(2.0 / float64(9*in))
			kernel := make([]float32, 9*in*out)
			for i := range kernel {
				kernel[i] = float32(rng.NormFloat64() * std)
			}
			block.Convs = append(block.Convs, Conv{
				In:     in,
				Out:    out,
				Kernel: kernel,
				Bias:   make([]float32, out),
			})
			in = out
		}
		w.Blocks = append(w.Blocks, block)
	}
	return w
}

// LoadWeights reads msgpack-encoded weights from path.
func LoadWeights(path string) (*Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weights: %w", err)
	}
	var w Weights
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode weights %s: %w", path, err)
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights %s: %w", path, err)
	}
	return &w, nil
}

// SaveWeights writes msgpack-encoded weights to path.
func SaveWeights(path string, w *Weights) error {
	if err := w.Validate(); err != nil {
		return err
	}
	data, err := msgpack.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode weights: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
