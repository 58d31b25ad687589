//go:build integration
// +build integration

package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"habla-jungla/internal/app/testutil"
)

type MockRequest struct {
	Method    string
	Path      string
	Headers   map[string]string
	Body      []byte
	Timestamp time.Time
}

// mockServer records every request and answers through respond.
type mockServer struct {
	server      *httptest.Server
	requestLog  []MockRequest
	failureMode string
	delay       time.Duration
	mutex       sync.RWMutex
	respond     func(w http.ResponseWriter, body []byte, failureMode string)
}

func newMockServer(t *testing.T, respond func(w http.ResponseWriter, body []byte, failureMode string)) *mockServer {
	m := &mockServer{respond: respond}
	m.server = httptest.NewServer(http.HandlerFunc(m.handleRequest))
	t.Cleanup(m.server.Close)
	return m
}

func (m *mockServer) URL() string {
	return m.server.URL
}

func (m *mockServer) SetFailureMode(mode string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.failureMode = mode
}

func (m *mockServer) SetDelay(d time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.delay = d
}

func (m *mockServer) Requests() []MockRequest {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return append([]MockRequest(nil), m.requestLog...)
}

func (m *mockServer) handleRequest(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	m.mutex.Lock()
	m.requestLog = append(m.requestLog, MockRequest{
		Method:    r.Method,
		Path:      r.URL.Path,
		Headers:   map[string]string{"Authorization": r.Header.Get("Authorization"), "Content-Type": r.Header.Get("Content-Type")},
		Body:      body,
		Timestamp: time.Now(),
	})
	mode, delay := m.failureMode, m.delay
	m.mutex.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}
	m.respond(w, body, mode)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NewMockHFServer stands in for a Hugging Face text-generation endpoint. It
// continues every prompt with " hello from the jungle".
// Failure modes: "loading" (503), "garbage" (200 with a non-JSON body),
// "empty" (200 with an empty list).
func NewMockHFServer(t *testing.T) *mockServer {
	return newMockServer(t, func(w http.ResponseWriter, body []byte, mode string) {
		switch mode {
		case "loading":
			writeJSON(w, http.StatusServiceUnavailable, testutil.MockAPIResponses["hf_loading"])
			return
		case "garbage":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("<html>gateway</html>"))
			return
		case "empty":
			writeJSON(w, http.StatusOK, []interface{}{})
			return
		}

		var req struct {
			Inputs string `json:"inputs"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, []map[string]string{
			{"generated_text": req.Inputs + "hello from the jungle"},
		})
	})
}

// NewMockAnalysisServer stands in for the remote analysis service.
// Failure modes: "unauthorized" (401), "no_results" (200 without results),
// "structured" (object results).
func NewMockAnalysisServer(t *testing.T) *mockServer {
	return newMockServer(t, func(w http.ResponseWriter, body []byte, mode string) {
		switch mode {
		case "unauthorized":
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "bad key"})
		case "no_results":
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		case "structured":
			writeJSON(w, http.StatusOK, testutil.MockAPIResponses["analysis_structured"])
		default:
			writeJSON(w, http.StatusOK, testutil.MockAPIResponses["analysis_text"])
		}
	})
}
