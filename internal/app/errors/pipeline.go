package errors

import (
	stderrors "errors"
	"fmt"
)

// DecodeError means the audio bytes could not be turned into a waveform.
// It is fatal to the request.
type DecodeError struct {
	Format string
	Cause  error
}

func (e *DecodeError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("decode %s audio: %v", e.Format, e.Cause)
	}
	return fmt.Sprintf("decode audio: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// NewDecodeError wraps cause as a DecodeError for the given format.
func NewDecodeError(format string, cause error) *DecodeError {
	return &DecodeError{Format: format, Cause: cause}
}

// ClassificationAmbiguity is the cause attached to a classifier fallback.
// It is logged, never returned from the pipeline.
type ClassificationAmbiguity struct {
	Stage string
	Cause error
}

func (e *ClassificationAmbiguity) Error() string {
	return fmt.Sprintf("classification ambiguous at %s: %v", e.Stage, e.Cause)
}

func (e *ClassificationAmbiguity) Unwrap() error { return e.Cause }

// GenerationError means the text backend failed. It is fatal to the request.
type GenerationError struct {
	Backend string
	Label   string
	Cause   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate utterance for %q via %s: %v", e.Label, e.Backend, e.Cause)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// TransportError is a failed call to the remote analysis service.
type TransportError struct {
	Endpoint   string
	StatusCode int
	Cause      error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote analysis %s returned %d: %v", e.Endpoint, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("remote analysis %s: %v", e.Endpoint, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// IsDecodeError reports whether err is or wraps a DecodeError.
func IsDecodeError(err error) bool {
	var target *DecodeError
	return stderrors.As(err, &target)
}

// IsGenerationError reports whether err is or wraps a GenerationError.
func IsGenerationError(err error) bool {
	var target *GenerationError
	return stderrors.As(err, &target)
}
