package vbr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Maximum size for response bodies read from the backend (8MB)
const maxBodySize = 8 * 1024 * 1024

// Candidate endpoint chains per logical operation, tried in order. The first
// candidate answering 200 wins and the remaining ones are never tried. The
// breadth tolerates API layout drift across VBR deployments.
var (
	repositoryEndpoints = []string{
		"/api/v1/backupInfrastructure/repositories",
		"/api/v1/repositories",
		"/api/repositories",
	}

	jobEndpoints = []string{
		"/api/v1/jobs",
		"/api/v1/backupInfrastructure/jobs",
		"/api/jobs",
	}
)

// errNoValidEndpoint signals that every candidate endpoint failed
var errNoValidEndpoint = errors.New("no valid endpoint found")

// ProbeResult is the outcome of a successful endpoint probe
type ProbeResult struct {
	// Endpoint is the candidate path that answered
	Endpoint string

	// Body is the JSON response body, verbatim
	Body json.RawMessage
}

// probe tries each candidate path in order and returns the first 200 response
// carrying a valid JSON body. A failed candidate (transport error, non-200
// status, unparseable body) is logged as a warning and skipped; only the
// exhaustion of all candidates is an error.
func (s *Session) probe(ctx context.Context, candidates []string, query url.Values) (*ProbeResult, error) {
	for i, endpoint := range candidates {
		s.logger.InfoVerbose("Trying endpoint (%d/%d): %s%s", i+1, len(candidates), s.baseURL, endpoint)

		resp, err := s.get(ctx, endpoint, query)
		if err != nil {
			s.logger.Warning("Error with endpoint %s: %v", endpoint, err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			s.logger.Warning("Endpoint %s returned status code %d", endpoint, resp.StatusCode)
			continue
		}

		body, err := readJSONBody(resp.Body)
		resp.Body.Close()
		if err != nil {
			s.logger.Warning("Error with endpoint %s: %v", endpoint, err)
			continue
		}

		s.logger.InfoVerbose("Endpoint %s answered with %d bytes", endpoint, len(body))
		return &ProbeResult{Endpoint: endpoint, Body: body}, nil
	}

	return nil, errNoValidEndpoint
}

// readJSONBody reads a response body with a size limit and validates it as JSON
func readJSONBody(r io.Reader) (json.RawMessage, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("response body is not valid JSON")
	}

	return json.RawMessage(body), nil
}
