package errors

import (
	"fmt"
	"strings"
)

// Common error values
var (
	// Configuration errors
	ErrMissingAPIKey  = New("API key is required")
	ErrInvalidAPIKey  = New("invalid API key format")
	ErrInvalidConfig  = New("invalid configuration")
	ErrUnknownBackend = New("unknown backend")

	// Audio errors
	ErrEmptyAudio        = New("audio payload is empty")
	ErrUnsupportedFormat = New("unsupported audio format")
	ErrNoSamples         = New("audio contains no samples")
	ErrResampleFailed    = New("resampling failed")

	// Classification errors
	ErrEmptyFeatures    = New("feature matrix has no rows")
	ErrShapeMismatch    = New("tensor shape mismatch")
	ErrSpatialCollapse  = New("activation volume collapsed to zero size")
	ErrNonFiniteScore   = New("backbone produced a non-finite score")
	ErrBackbonePanicked = New("backbone panicked")

	// Generation errors
	ErrEmptyCompletion = New("backend returned an empty completion")

	// Network errors
	ErrRequestFailed   = New("request failed")
	ErrResponseInvalid = New("invalid response")
)

// Error is a message with an optional cause.
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{message: message, cause: err}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{message: fmt.Sprintf(format, args...), cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches errors carrying the same message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// RequiredField returns an error for missing required fields
func RequiredField(field string) error {
	return Newf("%s is required", field)
}

// InvalidField returns an error for invalid field values
func InvalidField(field string, reason string) error {
	return Newf("%s is invalid: %s", field, reason)
}

// OutOfRange returns an error for values outside acceptable range
func OutOfRange(field string, min, max interface{}) error {
	return Newf("%s out of range (must be between %v and %v)", field, min, max)
}

// IsValidationError reports whether err came from one of the field helpers.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "required") ||
		strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "out of range")
}
