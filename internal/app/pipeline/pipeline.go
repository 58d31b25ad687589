// Package pipeline sequences feature extraction, classification and
// generation into a single translate call.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"habla-jungla/internal/app/audio"
	"habla-jungla/internal/app/classifier"
	"habla-jungla/internal/app/features"
	"habla-jungla/internal/app/generator"
)

// FeatureExtractor turns a clip into a feature matrix.
type FeatureExtractor interface {
	Extract(ctx context.Context, clip audio.Clip) (features.Matrix, error)
}

// SpeciesClassifier labels a feature matrix. It never fails.
type SpeciesClassifier interface {
	Classify(ctx context.Context, m features.Matrix) classifier.Result
}

// UtteranceGenerator writes what a labelled animal says.
type UtteranceGenerator interface {
	Generate(ctx context.Context, label classifier.Label) (generator.Utterance, error)
}

// Constants are the reproducibility settings reported alongside results.
type Constants struct {
	SampleRate       int               `json:"sample_rate" yaml:"sample_rate"`
	Bands            int               `json:"bands" yaml:"bands"`
	InputWidth       int               `json:"input_width" yaml:"input_width"`
	Vocabulary       []string          `json:"vocabulary" yaml:"vocabulary"`
	Templates        map[string]string `json:"templates" yaml:"templates"`
	FallbackTemplate string            `json:"fallback_template" yaml:"fallback_template"`
	MaxTokens        int               `json:"max_tokens" yaml:"max_tokens"`
	Backbone         string            `json:"backbone" yaml:"backbone"`
	Generator        string            `json:"generator" yaml:"generator"`
}

// Timings records time spent per stage.
type Timings struct {
	Extract  time.Duration
	Classify time.Duration
	Generate time.Duration
	Total    time.Duration
}

// Translation is the result of one translate call.
type Translation struct {
	Label     classifier.Label
	Utterance generator.Utterance
	Outcome   classifier.Outcome
	Bands     int
	Frames    int
	Timings   Timings
	// States lists the state machine path, ending in StateDone.
	States []string
}

// Pipeline holds the loaded model handles. It is read-only after New and
// safe for concurrent calls when its stages are.
type Pipeline struct {
	extractor  FeatureExtractor
	classifier SpeciesClassifier
	generator  UtteranceGenerator
	constants  Constants
	metrics    *Metrics
	logger     *zap.Logger
}

// New wires the stages together. metrics may be nil.
func New(extractor FeatureExtractor, cls SpeciesClassifier, gen UtteranceGenerator, constants Constants, metrics *Metrics, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		extractor:  extractor,
		classifier: cls,
		generator:  gen,
		constants:  constants,
		metrics:    metrics,
		logger:     logger,
	}
}

// Constants returns the configured reproducibility constants.
func (p *Pipeline) Constants() Constants {
	return p.constants
}

// Translate runs extract, classify and generate in order. Decode and
// generation failures abort and are returned unchanged; a classifier
// fallback continues with the unknown label.
func (p *Pipeline) Translate(ctx context.Context, clip audio.Clip) (*Translation, error) {
	start := time.Now()
	run := newRun(p.logger.With(zap.String("clip", clip.Filename)))

	t0 := time.Now()
	matrix, err := p.extractor.Extract(ctx, clip)
	extractTime := time.Since(t0)
	p.observeStage("extract", extractTime)
	if err != nil {
		run.fail(ctx, "extract", err)
		p.countResult(ResultDecodeError)
		return nil, err
	}
	if err := run.advance(ctx, EventExtract); err != nil {
		return nil, err
	}

	t0 = time.Now()
	result := p.classifier.Classify(ctx, matrix)
	classifyTime := time.Since(t0)
	p.observeStage("classify", classifyTime)
	if err := run.advance(ctx, EventClassify); err != nil {
		return nil, err
	}

	t0 = time.Now()
	utterance, err := p.generator.Generate(ctx, result.Label)
	generateTime := time.Since(t0)
	p.observeStage("generate", generateTime)
	if err != nil {
		run.fail(ctx, "generate", err)
		p.countResult(ResultGenerationError)
		return nil, err
	}
	if err := run.advance(ctx, EventGenerate); err != nil {
		return nil, err
	}
	if err := run.advance(ctx, EventFinish); err != nil {
		return nil, err
	}

	if result.IsFallback() {
		p.countResult(ResultFallback)
	} else {
		p.countResult(ResultOK)
	}
	if p.metrics != nil {
		p.metrics.Labels.WithLabelValues(string(result.Label)).Inc()
	}

	translation := &Translation{
		Label:     result.Label,
		Utterance: utterance,
		Outcome:   result.Outcome,
		Bands:     matrix.Rows(),
		Frames:    matrix.Cols(),
		Timings: Timings{
			Extract:  extractTime,
			Classify: classifyTime,
			Generate: generateTime,
			Total:    time.Since(start),
		},
		States: run.path,
	}

	p.logger.Info("translated clip",
		zap.String("clip", clip.Filename),
		zap.String("label", string(result.Label)),
		zap.String("outcome", result.Outcome.String()),
		zap.Int("frames", translation.Frames),
		zap.Duration("total", translation.Timings.Total))
	return translation, nil
}

// Speak generates an utterance for a known label without any audio.
func (p *Pipeline) Speak(ctx context.Context, label classifier.Label) (generator.Utterance, error) {
	start := time.Now()
	utterance, err := p.generator.Generate(ctx, label)
	p.observeStage("generate", time.Since(start))
	if err != nil {
		p.countResult(ResultGenerationError)
		return "", err
	}
	return utterance, nil
}

func (p *Pipeline) observeStage(stage string, d time.Duration) {
	if p.metrics != nil {
		p.metrics.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	}
}

func (p *Pipeline) countResult(result string) {
	if p.metrics != nil {
		p.metrics.Translations.WithLabelValues(result).Inc()
	}
}

// States and events of a single translation.
const (
	StateReceived   = "received"
	StateExtracted  = "extracted"
	StateClassified = "classified"
	StateGenerated  = "generated"
	StateDone       = "done"
	StateFailed     = "failed"

	EventExtract  = "extract"
	EventClassify = "classify"
	EventGenerate = "generate"
	EventFinish   = "finish"
	EventFail     = "fail"
)

// run is the per-call state machine. It is never shared between calls.
type run struct {
	machine *fsm.FSM
	path    []string
	logger  *zap.Logger
}

func newRun(logger *zap.Logger) *run {
	r := &run{path: []string{StateReceived}, logger: logger}
	r.machine = fsm.NewFSM(
		StateReceived,
		fsm.Events{
			{Name: EventExtract, Src: []string{StateReceived}, Dst: StateExtracted},
			{Name: EventClassify, Src: []string{StateExtracted}, Dst: StateClassified},
			{Name: EventGenerate, Src: []string{StateClassified}, Dst: StateGenerated},
			{Name: EventFinish, Src: []string{StateGenerated}, Dst: StateDone},
			{Name: EventFail, Src: []string{StateReceived, StateExtracted, StateClassified}, Dst: StateFailed},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				r.path = append(r.path, e.Dst)
				r.logger.Debug("pipeline transition", zap.String("from", e.Src), zap.String("to", e.Dst))
			},
		},
	)
	return r
}

func (r *run) advance(ctx context.Context, event string) error {
	if err := r.machine.Event(ctx, event); err != nil {
		return fmt.Errorf("pipeline cannot %s from %s: %w", event, r.machine.Current(), err)
	}
	return nil
}

func (r *run) fail(ctx context.Context, stage string, cause error) {
	r.logger.Warn("translation aborted", zap.String("stage", stage), zap.Error(cause))
	if err := r.machine.Event(ctx, EventFail); err != nil {
		r.logger.Error("pipeline failed to enter failed state", zap.Error(err))
	}
}
