package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habla-jungla/internal/app/generator"
)

func TestComplete(t *testing.T) {
	var body map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"model":"tiny","response":" hiss hiss","done":true}` + "\n"))
	}))
	defer server.Close()

	b, err := NewBackend(Config{BaseURL: server.URL, Model: "tiny"})
	require.NoError(t, err)

	text, err := b.Complete(context.Background(), generator.Request{Prompt: "An animal says: ", MaxTokens: 50})
	require.NoError(t, err)

	assert.Equal(t, " hiss hiss", text)
	assert.Equal(t, true, body["raw"])
	assert.Equal(t, false, body["stream"])
	options, ok := body["options"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(50), options["num_predict"])
}

func TestCompleteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"model \"tiny\" not found"}`))
	}))
	defer server.Close()

	b, err := NewBackend(Config{BaseURL: server.URL, Model: "tiny"})
	require.NoError(t, err)

	_, err = b.Complete(context.Background(), generator.Request{Prompt: "x", MaxTokens: 5})
	assert.Error(t, err)
}

func TestRegistered(t *testing.T) {
	b, err := generator.NewBackend("ollama", nil)
	require.NoError(t, err)
	assert.Equal(t, "ollama", b.Name())
	assert.Equal(t, DefaultModel, b.(*Backend).config.Model)

	_, err = NewBackend(Config{BaseURL: "://bad"})
	assert.Error(t, err)
}
