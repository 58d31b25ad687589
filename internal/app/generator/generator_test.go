package generator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habla-jungla/internal/app/classifier"
	apperrors "habla-jungla/internal/app/errors"
)

type recordingBackend struct {
	reply    string
	err      error
	requests []Request
	mu       sync.Mutex
	active   int32
	overlap  int32
	delay    time.Duration
}

func (b *recordingBackend) Name() string { return "recording" }

func (b *recordingBackend) Complete(_ context.Context, req Request) (string, error) {
	if atomic.AddInt32(&b.active, 1) > 1 {
		atomic.StoreInt32(&b.overlap, 1)
	}
	defer atomic.AddInt32(&b.active, -1)
	time.Sleep(b.delay)

	b.mu.Lock()
	b.requests = append(b.requests, req)
	b.mu.Unlock()
	if b.err != nil {
		return "", b.err
	}
	return b.reply, nil
}

func TestGenerateStartsWithTemplatePrefix(t *testing.T) {
	templates := DefaultTemplates()
	labels := append(classifier.DefaultVocabulary(), classifier.Unknown, classifier.Label("zebra"))

	for _, label := range labels {
		t.Run(string(label), func(t *testing.T) {
			backend := &recordingBackend{reply: "hello there"}
			g, err := New(Config{}, backend, nil)
			require.NoError(t, err)

			utterance, err := g.Generate(context.Background(), label)
			require.NoError(t, err)

			prefix := templates.Prompt(label)
			assert.True(t, strings.HasPrefix(string(utterance), prefix))
			assert.Equal(t, prefix+"hello there", string(utterance))
			require.Len(t, backend.requests, 1)
			assert.Equal(t, Request{Prompt: prefix, MaxTokens: DefaultMaxTokens}, backend.requests[0])
		})
	}
}

func TestGenerateFallbackPrefix(t *testing.T) {
	assert.Equal(t, "An animal says: ", DefaultTemplates().Prompt(classifier.Unknown))
	assert.Equal(t, "A wise elephant shares: ", DefaultTemplates().Prompt(classifier.Elephant))
	assert.Equal(t, DefaultFallbackTemplate, Templates{}.Prompt(classifier.Dog))
}

func TestGenerateKeepsEchoedPrompt(t *testing.T) {
	backend := &recordingBackend{reply: "A playful dog says: woof woof"}
	g, err := New(Config{MaxTokens: 12}, backend, nil)
	require.NoError(t, err)

	utterance, err := g.Generate(context.Background(), classifier.Dog)
	require.NoError(t, err)
	assert.Equal(t, Utterance("A playful dog says: woof woof"), utterance)
	assert.Equal(t, 12, backend.requests[0].MaxTokens)
}

func TestGenerateWrapsBackendError(t *testing.T) {
	cause := errors.New("model unavailable")
	g, err := New(Config{}, &recordingBackend{err: cause}, nil)
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), classifier.Cat)
	require.Error(t, err)

	var genErr *apperrors.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "recording", genErr.Backend)
	assert.Equal(t, "cat", genErr.Label)
	assert.ErrorIs(t, err, cause)
}

func TestGenerateSerialize(t *testing.T) {
	backend := &recordingBackend{reply: "x", delay: 5 * time.Millisecond}
	g, err := New(Config{Serialize: true}, backend, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := g.Generate(context.Background(), classifier.Bird)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, backend.requests, 8)
	assert.Equal(t, int32(0), atomic.LoadInt32(&backend.overlap))
}

func TestCustomTemplates(t *testing.T) {
	templates := Templates{
		ByLabel:  map[classifier.Label]string{classifier.Dog: "Woof: "},
		Fallback: "Something says: ",
	}
	g, err := New(Config{Templates: templates}, NewStaticBackend("hi"), nil)
	require.NoError(t, err)

	u, err := g.Generate(context.Background(), classifier.Dog)
	require.NoError(t, err)
	assert.Equal(t, Utterance("Woof: hi"), u)

	u, err = g.Generate(context.Background(), classifier.Lion)
	require.NoError(t, err)
	assert.Equal(t, Utterance("Something says: hi"), u)
	assert.Equal(t, map[string]string{"dog": "Woof: "}, g.Templates().AsStrings())
}

func TestNewRequiresBackend(t *testing.T) {
	_, err := New(Config{}, nil, nil)
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	assert.Contains(t, ListRegisteredBackends(), "static")

	b, err := NewBackend("static", map[string]interface{}{"text": "rawr"})
	require.NoError(t, err)
	text, err := b.Complete(context.Background(), Request{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "rawr", text)

	_, err = NewBackend("gpt-17", nil)
	assert.ErrorIs(t, err, apperrors.ErrUnknownBackend)
}

func TestSettings(t *testing.T) {
	t.Setenv("JUNGLA_TEST_TOKEN", "tok")
	settings := map[string]interface{}{
		"token":   "${JUNGLA_TEST_TOKEN}",
		"count":   3,
		"ratio":   0.5,
		"timeout": "2s",
		"wait":    4,
	}
	assert.Equal(t, "tok", StringSetting(settings, "token", ""))
	assert.Equal(t, "def", StringSetting(settings, "missing", "def"))
	assert.Equal(t, 3, IntSetting(settings, "count", 0))
	assert.Equal(t, 0.5, FloatSetting(settings, "ratio", 0))
	assert.Equal(t, 3.0, FloatSetting(settings, "count", 0))
	assert.Equal(t, 2*time.Second, DurationSetting(settings, "timeout", 0))
	assert.Equal(t, 4*time.Second, DurationSetting(settings, "wait", 0))
	assert.Equal(t, time.Minute, DurationSetting(settings, "missing", time.Minute))
}
