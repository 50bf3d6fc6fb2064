package vbr

import (
	"net/http"
	"testing"
)

// captureRoundTripper records the request it receives instead of sending it
type captureRoundTripper struct {
	req *http.Request
}

func (c *captureRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	c.req = req
	return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
}

func TestAPIVersionRoundTripper(t *testing.T) {
	capture := &captureRoundTripper{}
	rt := newAPIVersionRoundTripper(DefaultAPIVersion, capture)

	req, err := http.NewRequest(http.MethodGet, "https://vbr.local/api/v1/jobs", nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("RoundTrip failed: %v", err)
	}

	if got := capture.req.Header.Get(headerAPIVersion); got != DefaultAPIVersion {
		t.Errorf("expected %s header %q, got %q", headerAPIVersion, DefaultAPIVersion, got)
	}

	// The original request must not be modified
	if got := req.Header.Get(headerAPIVersion); got != "" {
		t.Errorf("expected original request untouched, found header %q", got)
	}
}

func TestBearerTokenRoundTripper(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantHeader string
	}{
		{name: "token set", token: "tok-123", wantHeader: "Bearer tok-123"},
		{name: "empty token omits header", token: "", wantHeader: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capture := &captureRoundTripper{}
			rt := newBearerTokenRoundTripper(tt.token, capture)

			req, err := http.NewRequest(http.MethodGet, "https://vbr.local/api/v1/jobs", nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}

			if _, err := rt.RoundTrip(req); err != nil {
				t.Fatalf("RoundTrip failed: %v", err)
			}

			if got := capture.req.Header.Get("Authorization"); got != tt.wantHeader {
				t.Errorf("expected Authorization %q, got %q", tt.wantHeader, got)
			}
		})
	}
}
