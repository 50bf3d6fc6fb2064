package vbr

import (
	"context"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
)

// Session is a short-lived transport handle for a single operation invocation.
// It bundles the TLS-insecure HTTP client, the API-version header and, when
// authentication succeeds, the bearer token. Sessions are never reused across
// invocations.
type Session struct {
	baseURL       string
	httpClient    *http.Client
	logger        *Logger
	authenticated bool
}

// NewSession creates a session against the configured VBR server.
//
// When credentials are present it requests a token from the password-grant
// endpoint and attaches it as a bearer token to all subsequent requests.
// Authentication failure is logged but not fatal: the session is returned
// unauthenticated and downstream calls carry no Authorization header.
func NewSession(ctx context.Context, cfg *Config, logger *Logger) *Session {
	logger.InfoVerbose("Creating VBR API session")

	transport := newAPIVersionRoundTripper(cfg.APIVersion, newInsecureTransport())
	httpClient := &http.Client{Transport: transport}

	session := &Session{
		baseURL:    cfg.APIURL,
		httpClient: httpClient,
		logger:     logger,
	}

	if cfg.Username == "" || cfg.Password == "" {
		logger.Warning("VBR credentials not provided. Some operations may fail.")
		return session
	}

	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  cfg.tokenURL(),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	// Route the token request through the session transport so it carries the
	// x-api-version header and skips certificate validation like every other call.
	tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	token, err := conf.PasswordCredentialsToken(tokenCtx, cfg.Username, cfg.Password)
	if err != nil {
		logger.Error("Error authenticating with VBR API: %v", err)
		return session
	}

	session.httpClient = &http.Client{
		Transport: newBearerTokenRoundTripper(token.AccessToken, transport),
	}
	session.authenticated = true
	logger.Info("Successfully authenticated with VBR API")
	return session
}

// Authenticated reports whether the session carries a bearer token
func (s *Session) Authenticated() bool {
	return s.authenticated
}

// get issues a GET request for a relative path with optional query parameters
func (s *Session) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	requestURL := s.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	s.logger.HTTPTrace("GET %s", requestURL)
	return s.httpClient.Do(req)
}
