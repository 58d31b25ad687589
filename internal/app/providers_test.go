package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"habla-jungla/internal/app/audio"
	"habla-jungla/internal/app/classifier"
	"habla-jungla/internal/config"
)

func staticSettings() *config.Settings {
	s := config.Default()
	s.Environment = "test"
	s.Generator.Backend = "static"
	s.Generator.Backends["static"] = map[string]interface{}{"text": "hello"}
	return s
}

func TestInitializePipeline(t *testing.T) {
	p, err := InitializePipeline(staticSettings(), zap.NewNop())
	require.NoError(t, err)

	constants := p.Constants()
	assert.Equal(t, 44100, constants.SampleRate)
	assert.Equal(t, 13, constants.Bands)
	assert.Equal(t, 224, constants.InputWidth)
	assert.Equal(t, []string{"dog", "cat", "bird", "lion", "elephant"}, constants.Vocabulary)
	assert.Equal(t, "An animal says: ", constants.FallbackTemplate)
	assert.Equal(t, "convnet", constants.Backbone)
	assert.Equal(t, "static", constants.Generator)

	data, err := audio.EncodeWAV(audio.Tone(660, time.Second, 44100, 0.5), 44100)
	require.NoError(t, err)
	result, err := p.Translate(context.Background(), audio.Clip{Data: data})
	require.NoError(t, err)
	assert.Contains(t, append(classifier.DefaultVocabulary(), classifier.Unknown), result.Label)
	assert.True(t, strings.HasSuffix(string(result.Utterance), "hello"))
}

func TestInitializePipelineUnknownBackend(t *testing.T) {
	s := staticSettings()
	s.Generator.Backend = "carrier-pigeon"

	_, err := InitializePipeline(s, zap.NewNop())
	assert.Error(t, err)
}

func TestInitializeServer(t *testing.T) {
	srv, err := InitializeServer(staticSettings(), zap.NewNop())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/config", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"analysis_enabled":false`)

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestInitializeAnalyzer(t *testing.T) {
	s := staticSettings()
	a, err := InitializeAnalyzer(s, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, a)

	s.Analysis.Endpoint = "https://jungle-talk.example/analyze"
	a, err = InitializeAnalyzer(s, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, a)
}
