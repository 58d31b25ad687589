package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"habla-jungla/internal/api/v1/dto"
	"habla-jungla/internal/config"
	"habla-jungla/internal/app/testutil"
)

func newTestServer(t *testing.T, maxUploadMB int) (*Server, *testutil.MockTranslationService) {
	t.Helper()
	settings := config.Default()
	settings.Environment = "test"
	settings.Server.MaxUploadMB = maxUploadMB

	service := testutil.NewMockTranslationService(t)
	return NewServer(ConfigFromSettings(settings), service, prometheus.NewRegistry(), zap.NewNop()), service
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, 1)

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	s, service := newTestServer(t, 1)
	service.On("Labels", mock.Anything).Return(&dto.LabelsResponse{Labels: []string{"dog"}, Fallback: "unknown"})

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/labels", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `jungla_http_requests_total{method="GET",route="/api/v1/labels",status="200"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t, 1)

	req := httptest.NewRequest(http.MethodOptions, "/process_audio", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
}

func TestUploadLimit(t *testing.T) {
	s, service := newTestServer(t, 1)

	body := bytes.Repeat([]byte("a"), 2<<20)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/translations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"too_large"`)
	service.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything, mock.Anything)
}

func TestSwaggerAndRecorderPage(t *testing.T) {
	s, _ := newTestServer(t, 1)

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/translations")

	w = httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "Habla Jungla"))
}
