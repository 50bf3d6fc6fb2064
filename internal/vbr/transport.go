package vbr

import (
	"crypto/tls"
	"net/http"
)

// headerAPIVersion is the header the VBR REST API requires on every request
const headerAPIVersion = "x-api-version"

// newInsecureTransport returns an HTTP transport that skips TLS certificate
// validation. VBR servers ship with self-signed certificates.
func newInsecureTransport() *http.Transport {
	return &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
}

// apiVersionRoundTripper is an HTTP RoundTripper that adds the x-api-version
// header to every outgoing request, including the token request
type apiVersionRoundTripper struct {
	transport http.RoundTripper
	version   string
}

// newAPIVersionRoundTripper creates a RoundTripper that injects the API version header
func newAPIVersionRoundTripper(version string, base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &apiVersionRoundTripper{
		transport: base,
		version:   version,
	}
}

// RoundTrip implements the http.RoundTripper interface
func (rt *apiVersionRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	clonedReq := req.Clone(req.Context())
	clonedReq.Header.Set(headerAPIVersion, rt.version)
	return rt.transport.RoundTrip(clonedReq)
}

// bearerTokenRoundTripper is an HTTP RoundTripper that attaches a bearer token
// to every outgoing request
type bearerTokenRoundTripper struct {
	transport http.RoundTripper
	token     string
}

// newBearerTokenRoundTripper creates a RoundTripper that injects the Authorization header
func newBearerTokenRoundTripper(token string, base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &bearerTokenRoundTripper{
		transport: base,
		token:     token,
	}
}

// RoundTrip implements the http.RoundTripper interface
func (rt *bearerTokenRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clonedReq := req.Clone(req.Context())
	if rt.token != "" {
		clonedReq.Header.Set("Authorization", "Bearer "+rt.token)
	}
	return rt.transport.RoundTrip(clonedReq)
}
