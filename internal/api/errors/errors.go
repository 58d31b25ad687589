package errors

import (
	stderrors "errors"
	"net/http"

	apperrors "habla-jungla/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindNotFound           ErrorKind = "not_found"
	KindInternal           ErrorKind = "internal"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindBadRequest         ErrorKind = "bad_request"
	KindTooLarge           ErrorKind = "too_large"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Code      string            `json:"code,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewTooLargeError creates an upload size error
func NewTooLargeError(message string) *APIError {
	return &APIError{
		Kind:    KindTooLarge,
		Message: message,
	}
}

// NewServiceUnavailableError creates a service unavailable error
func NewServiceUnavailableError(message string) *APIError {
	return &APIError{
		Kind:    KindServiceUnavailable,
		Message: message,
	}
}

// FromPipeline maps a translation failure to its API error. Decode
// failures are the caller's fault; generation failures mean the language
// model is unreachable or misbehaving.
func FromPipeline(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	var decodeErr *apperrors.DecodeError
	if stderrors.As(err, &decodeErr) {
		e := NewBadRequestError("Audio could not be decoded")
		e.Code = "decode_error"
		e.Details = map[string]string{}
		if decodeErr.Cause != nil {
			e.Details["cause"] = decodeErr.Cause.Error()
		}
		if decodeErr.Format != "" {
			e.Details["format"] = decodeErr.Format
		}
		return e
	}

	var genErr *apperrors.GenerationError
	if stderrors.As(err, &genErr) {
		e := NewServiceUnavailableError("Utterance generation failed")
		e.Code = "generation_error"
		e.Details = map[string]string{"backend": genErr.Backend}
		if genErr.Label != "" {
			e.Details["species"] = genErr.Label
		}
		return e
	}

	if apperrors.IsValidationError(err) {
		return NewValidationError(err.Error(), nil)
	}

	return NewInternalError("Internal server error")
}
