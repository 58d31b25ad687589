// Package generator produces the short text an animal "says" by seeding a
// causal language model with a per-label prompt.
package generator

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"habla-jungla/internal/app/classifier"
	apperrors "habla-jungla/internal/app/errors"
)

// DefaultMaxTokens caps each completion.
const DefaultMaxTokens = 50

// Utterance is the generated text, prompt prefix included.
type Utterance string

// Request is one completion call.
type Request struct {
	Prompt    string
	MaxTokens int
}

// Backend is a loaded text-generation model. Complete returns either the
// continuation alone or the prompt followed by the continuation.
type Backend interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// Config holds the generation constants.
type Config struct {
	MaxTokens int
	Templates Templates
	// Serialize allows one Complete at a time on this backend handle.
	Serialize bool
}

// Generator turns labels into utterances.
type Generator struct {
	backend   Backend
	templates Templates
	maxTokens int
	mu        *sync.Mutex
	logger    *zap.Logger
}

// New creates a generator around a loaded backend.
func New(cfg Config, backend Backend, logger *zap.Logger) (*Generator, error) {
	if backend == nil {
		return nil, apperrors.RequiredField("generator backend")
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Templates.ByLabel == nil {
		cfg.Templates = DefaultTemplates()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Generator{
		backend:   backend,
		templates: cfg.Templates,
		maxTokens: cfg.MaxTokens,
		logger:    logger,
	}
	if cfg.Serialize {
		g.mu = &sync.Mutex{}
	}
	return g, nil
}

// Templates returns the prompt templates.
func (g *Generator) Templates() Templates {
	return g.templates
}

// MaxTokens is the completion cap.
func (g *Generator) MaxTokens() int {
	return g.maxTokens
}

// Backend returns the backend name.
func (g *Generator) Backend() string {
	return g.backend.Name()
}

// Generate requests one completion for label's prompt. Backend failures are
// returned as *errors.GenerationError.
func (g *Generator) Generate(ctx context.Context, label classifier.Label) (Utterance, error) {
	prompt := g.templates.Prompt(label)

	if g.mu != nil {
		g.mu.Lock()
		defer g.mu.Unlock()
	}

	start := time.Now()
	text, err := g.backend.Complete(ctx, Request{Prompt: prompt, MaxTokens: g.maxTokens})
	if err != nil {
		return "", &apperrors.GenerationError{Backend: g.backend.Name(), Label: string(label), Cause: err}
	}

	g.logger.Debug("generated utterance",
		zap.String("label", string(label)),
		zap.String("backend", g.backend.Name()),
		zap.Duration("latency", time.Since(start)))

	if strings.HasPrefix(text, prompt) {
		return Utterance(text), nil
	}
	return Utterance(prompt + text), nil
}
