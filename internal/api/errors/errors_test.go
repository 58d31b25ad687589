package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "habla-jungla/internal/app/errors"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind   ErrorKind
		status int
	}{
		{KindValidation, http.StatusUnprocessableEntity},
		{KindBadRequest, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindTooLarge, http.StatusRequestEntityTooLarge},
		{KindServiceUnavailable, http.StatusServiceUnavailable},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.status, (&APIError{Kind: tt.kind}).HTTPStatus())
		})
	}
}

func TestFromPipeline(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, FromPipeline(nil))
	})

	t.Run("decode error is a bad request", func(t *testing.T) {
		err := fmt.Errorf("extract: %w", apperrors.NewDecodeError("wav", apperrors.ErrNoSamples))
		apiErr := FromPipeline(err)
		require.NotNil(t, apiErr)
		assert.Equal(t, KindBadRequest, apiErr.Kind)
		assert.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus())
		assert.Equal(t, "decode_error", apiErr.Code)
		assert.Equal(t, "wav", apiErr.Details["format"])
	})

	t.Run("decode error without cause", func(t *testing.T) {
		apiErr := FromPipeline(&apperrors.DecodeError{})
		assert.Equal(t, KindBadRequest, apiErr.Kind)
		assert.NotContains(t, apiErr.Details, "cause")
	})

	t.Run("generation error is service unavailable", func(t *testing.T) {
		apiErr := FromPipeline(&apperrors.GenerationError{Backend: "hf", Label: "dog", Cause: stderrors.New("503")})
		assert.Equal(t, http.StatusServiceUnavailable, apiErr.HTTPStatus())
		assert.Equal(t, "hf", apiErr.Details["backend"])
		assert.Equal(t, "dog", apiErr.Details["species"])
	})

	t.Run("validation", func(t *testing.T) {
		apiErr := FromPipeline(apperrors.RequiredField("species"))
		assert.Equal(t, KindValidation, apiErr.Kind)
	})

	t.Run("api errors pass through", func(t *testing.T) {
		orig := NewTooLargeError("too big")
		assert.Same(t, orig, FromPipeline(orig))
	})

	t.Run("anything else is internal", func(t *testing.T) {
		apiErr := FromPipeline(stderrors.New("boom"))
		assert.Equal(t, KindInternal, apiErr.Kind)
		assert.Equal(t, "Internal server error", apiErr.Message)
	})
}
