package vbr

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// testLogger returns a logger that swallows all output
func testLogger(t *testing.T) *Logger {
	t.Helper()
	return NewLoggerWithWriter(false, false, false, io.Discard)
}

// testConfig returns a config pointing at the given test server, without credentials
func testConfig(t *testing.T, serverURL string) *Config {
	t.Helper()
	cfg := &Config{APIURL: serverURL}
	return cfg.WithDefaults()
}

// recordedRequest captures the parts of a request the tests assert on
type recordedRequest struct {
	Path          string
	Query         url.Values
	Authorization string
	APIVersion    string
}

// MockVBRServer simulates a VBR backend with configurable per-path responses
type MockVBRServer struct {
	*httptest.Server

	mu       sync.Mutex
	statuses map[string]int    // path -> response status (default 404)
	bodies   map[string]string // path -> response body for 200 responses
	requests []recordedRequest
}

// NewMockVBRServer creates a mock VBR backend
func NewMockVBRServer(t *testing.T) *MockVBRServer {
	t.Helper()

	m := &MockVBRServer{
		statuses: make(map[string]int),
		bodies:   make(map[string]string),
	}

	m.Server = httptest.NewServer(http.HandlerFunc(m.handle))
	t.Cleanup(m.Close)
	return m
}

// Respond configures one path to answer with the given status and body
func (m *MockVBRServer) Respond(path string, status int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[path] = status
	m.bodies[path] = body
}

// Requests returns a copy of all recorded requests
func (m *MockVBRServer) Requests() []recordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]recordedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// RequestsFor returns the recorded requests for one path
func (m *MockVBRServer) RequestsFor(path string) []recordedRequest {
	var out []recordedRequest
	for _, r := range m.Requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (m *MockVBRServer) handle(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.requests = append(m.requests, recordedRequest{
		Path:          r.URL.Path,
		Query:         r.URL.Query(),
		Authorization: r.Header.Get("Authorization"),
		APIVersion:    r.Header.Get(headerAPIVersion),
	})
	status, ok := m.statuses[r.URL.Path]
	body := m.bodies[r.URL.Path]
	m.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	// "hangup" simulates a transport-level failure by dropping the connection
	if body == "hangup" {
		hj, canHijack := w.(http.Hijacker)
		if !canHijack {
			panic("mock server: response writer does not support hijacking")
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			panic(err)
		}
		conn.Close()
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status == http.StatusOK {
		_, _ = w.Write([]byte(body))
	}
}
