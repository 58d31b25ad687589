package backbone

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "habla-jungla/internal/app/errors"
)

func identityWeights() *Weights {
	kernel := make([]float32, 9)
	kernel[4] = 1
	return &Weights{
		Version:    weightsVersion,
		InChannels: 1,
		Blocks:     []Block{{Convs: []Conv{{In: 1, Out: 1, Kernel: kernel, Bias: []float32{0}}}}},
	}
}

func TestTensorValidate(t *testing.T) {
	assert.NoError(t, NewTensor(1, 2, 3, 4).Validate())
	assert.Error(t, (&Tensor{N: 1, H: 2, W: 2, C: 1, Data: make([]float32, 3)}).Validate())

	var nilTensor *Tensor
	assert.Error(t, nilTensor.Validate())
}

func TestConvNetIdentityKernel(t *testing.T) {
	net, err := NewConvNet(identityWeights())
	require.NoError(t, err)

	in := &Tensor{N: 1, H: 2, W: 2, C: 1, Data: []float32{1, -2, 3, 4}}
	out, err := net.Forward(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, [4]int{1, 1, 1, 1}, out.Shape())
	assert.Equal(t, float32(4), out.Data[0])
}

func TestConvNetDefaultGeometry(t *testing.T) {
	net, err := NewConvNet(SeededWeights(7, InputChannels, DefaultBlocks))
	require.NoError(t, err)

	out, err := net.Forward(context.Background(), NewTensor(1, 13, 224, 3))
	require.NoError(t, err)
	assert.Equal(t, [4]int{1, 1, 28, 64}, out.Shape())
}

func TestConvNetSpatialCollapse(t *testing.T) {
	blocks := [][]int{{4}, {4}, {4}, {4}}
	net, err := NewConvNet(SeededWeights(1, InputChannels, blocks))
	require.NoError(t, err)

	_, err = net.Forward(context.Background(), NewTensor(1, 13, 224, 3))
	assert.ErrorIs(t, err, apperrors.ErrSpatialCollapse)
}

func TestConvNetChannelMismatch(t *testing.T) {
	net, err := NewConvNet(SeededWeights(1, InputChannels, DefaultBlocks))
	require.NoError(t, err)

	_, err = net.Forward(context.Background(), NewTensor(1, 4, 4, 1))
	assert.ErrorIs(t, err, apperrors.ErrShapeMismatch)
}

func TestSeededWeightsDeterministic(t *testing.T) {
	a := SeededWeights(42, 3, DefaultBlocks)
	b := SeededWeights(42, 3, DefaultBlocks)
	c := SeededWeights(43, 3, DefaultBlocks)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a.Blocks[0].Convs[0].Kernel, c.Blocks[0].Convs[0].Kernel)
	assert.Equal(t, 64, a.OutChannels())
}

func TestWeightsValidate(t *testing.T) {
	w := identityWeights()
	w.Blocks[0].Convs[0].Bias = nil
	assert.Error(t, w.Validate())

	w = SeededWeights(1, 3, DefaultBlocks)
	w.Blocks[1].Convs[0].In = 8
	assert.Error(t, w.Validate())

	w = SeededWeights(1, 3, DefaultBlocks)
	w.Version = 99
	assert.Error(t, w.Validate())
}

func TestWeightsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.msgpack")
	w := SeededWeights(9, InputChannels, DefaultBlocks)
	require.NoError(t, SaveWeights(path, w))

	b, err := New(Config{Type: TypeConvNet, WeightsPath: path})
	require.NoError(t, err)
	assert.Equal(t, "convnet", b.Name())
	assert.Equal(t, w, b.(*ConvNet).Weights())

	_, err = LoadWeights(filepath.Join(t.TempDir(), "missing.msgpack"))
	assert.Error(t, err)
}

func TestFactory(t *testing.T) {
	b, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, "convnet", b.Name())

	b, err = New(Config{Type: TypeConvNet, Serialize: true})
	require.NoError(t, err)
	_, isSerialized := b.(*serialized)
	assert.True(t, isSerialized)

	_, err = New(Config{Type: "onnx"})
	assert.ErrorIs(t, err, apperrors.ErrUnknownBackend)

	_, err = New(Config{Type: TypeTFServing})
	assert.Error(t, err)
}

func TestTFServingForward(t *testing.T) {
	var got predictRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models/vgg16:predict", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"predictions": [][][][]float32{{{{1, 2}, {3, 4}}}},
		})
	}))
	defer server.Close()

	b, err := NewTFServing(TFServingConfig{BaseURL: server.URL + "/", Model: "vgg16", APIKey: "secret"})
	require.NoError(t, err)

	in := &Tensor{N: 1, H: 1, W: 2, C: 3, Data: []float32{1, 1, 1, 2, 2, 2}}
	out, err := b.Forward(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, [][][][]float32{{{{1, 1, 1}, {2, 2, 2}}}}, got.Instances)
	assert.Equal(t, [4]int{1, 1, 2, 2}, out.Shape())
	assert.Equal(t, []float32{1, 2, 3, 4}, out.Data)
}

func TestTFServingErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		target  error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not loaded", http.StatusServiceUnavailable)
			},
			target: apperrors.ErrRequestFailed,
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("{"))
			},
			target: apperrors.ErrResponseInvalid,
		},
		{
			name: "empty predictions",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"predictions": []}`))
			},
			target: apperrors.ErrSpatialCollapse,
		},
		{
			name: "ragged predictions",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"predictions": [[[[1, 2], [3]]]]}`))
			},
			target: apperrors.ErrShapeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			b, err := NewTFServing(TFServingConfig{BaseURL: server.URL, Model: "vgg16"})
			require.NoError(t, err)

			_, err = b.Forward(context.Background(), NewTensor(1, 1, 1, 3))
			assert.ErrorIs(t, err, tt.target)
		})
	}
}
