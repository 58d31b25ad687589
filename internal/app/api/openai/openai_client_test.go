package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "habla-jungla/internal/app/errors"
	"habla-jungla/internal/app/generator"
)

func newTestServer(t *testing.T, path string, response string, captured *map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, path, r.URL.Path)
		assert.Equal(t, "Bearer sk-test-key-0123456789", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(response))
	}))
}

func TestCompletionMode(t *testing.T) {
	var body map[string]interface{}
	server := newTestServer(t, "/v1/completions",
		`{"id":"cmpl-1","object":"text_completion","choices":[{"text":" woof woof","index":0}]}`, &body)
	defer server.Close()

	b, err := NewBackend(Config{APIKey: "sk-test-key-0123456789", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)

	text, err := b.Complete(context.Background(), generator.Request{Prompt: "A playful dog says: ", MaxTokens: 50})
	require.NoError(t, err)

	assert.Equal(t, " woof woof", text)
	assert.Equal(t, "A playful dog says: ", body["prompt"])
	assert.Equal(t, float64(50), body["max_tokens"])
	assert.Equal(t, "gpt-3.5-turbo-instruct", body["model"])
}

func TestChatMode(t *testing.T) {
	var body map[string]interface{}
	server := newTestServer(t, "/v1/chat/completions",
		`{"id":"chat-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"purr"}}]}`, &body)
	defer server.Close()

	b, err := NewBackend(Config{APIKey: "sk-test-key-0123456789", BaseURL: server.URL + "/v1", Mode: ModeChat})
	require.NoError(t, err)

	text, err := b.Complete(context.Background(), generator.Request{Prompt: "A sassy cat declares: ", MaxTokens: 20})
	require.NoError(t, err)

	assert.Equal(t, "purr", text)
	messages, ok := body["messages"].([]interface{})
	require.True(t, ok)
	assert.Len(t, messages, 2)
}

func TestEmptyChoices(t *testing.T) {
	var body map[string]interface{}
	server := newTestServer(t, "/v1/completions", `{"choices":[]}`, &body)
	defer server.Close()

	b, err := NewBackend(Config{APIKey: "sk-test-key-0123456789", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)

	_, err = b.Complete(context.Background(), generator.Request{Prompt: "x", MaxTokens: 5})
	assert.ErrorIs(t, err, apperrors.ErrEmptyCompletion)
}

func TestNewBackendValidation(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewBackend(Config{})
	assert.ErrorIs(t, err, apperrors.ErrMissingAPIKey)

	_, err = NewBackend(Config{APIKey: "k", Mode: "edit"})
	assert.Error(t, err)

	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	b, err := NewBackend(Config{})
	require.NoError(t, err)
	assert.Equal(t, "openai", b.Name())
}

func TestRegistered(t *testing.T) {
	assert.Contains(t, generator.ListRegisteredBackends(), "openai")

	b, err := generator.NewBackend("openai", map[string]interface{}{"api_key": "k", "mode": "chat", "model": "gpt-4o-mini"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", b.(*Backend).config.Model)
}
