package vbr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// Client executes the read-only VBR query operations.
//
// Every operation builds a fresh session, so nothing is shared between
// invocations and a stale token can at worst affect a single call. Results
// are the backend's JSON re-serialized with indentation; errors carry the
// diagnostic text the tool surface hands to the caller.
type Client struct {
	config *Config
	logger *Logger
}

// NewClient creates a client for the configured VBR server
func NewClient(config *Config, logger *Logger) *Client {
	return &Client{
		config: config,
		logger: logger,
	}
}

// ListRepositories lists all repositories in the VBR system
func (c *Client) ListRepositories(ctx context.Context) (string, error) {
	runID := uuid.NewString()
	c.logger.Info("[%s] Listing VBR repositories", runID)

	session := NewSession(ctx, c.config, c.logger)

	result, err := session.probe(ctx, repositoryEndpoints, nil)
	if err != nil {
		c.logger.Error("[%s] No valid repository endpoint found", runID)
		return "", errors.New("No valid repository endpoint found")
	}

	if n, ok := arrayLen(result.Body); ok {
		c.logger.Info("[%s] Found %d repositories via %s", runID, n, result.Endpoint)
	}

	out, err := indentJSON(result.Body)
	if err != nil {
		c.logger.Error("[%s] Error listing repositories: %v", runID, err)
		return "", fmt.Errorf("Error listing repositories: %v", err)
	}
	return out, nil
}

// GetRepositoryDetails gets detailed information about a specific repository
func (c *Client) GetRepositoryDetails(ctx context.Context, id string) (string, error) {
	runID := uuid.NewString()
	c.logger.Info("[%s] Getting details for repository ID: %s", runID, id)

	session := NewSession(ctx, c.config, c.logger)

	candidates := make([]string, len(repositoryEndpoints))
	for i, endpoint := range repositoryEndpoints {
		candidates[i] = endpoint + "/" + url.PathEscape(id)
	}

	result, err := session.probe(ctx, candidates, nil)
	if err != nil {
		c.logger.Error("[%s] No valid repository details endpoint found for ID %s", runID, id)
		return "", fmt.Errorf("No valid repository details endpoint found for ID %s", id)
	}

	c.logger.Info("[%s] Successfully retrieved details for repository %s via %s", runID, id, result.Endpoint)

	out, err := indentJSON(result.Body)
	if err != nil {
		c.logger.Error("[%s] Error getting repository details: %v", runID, err)
		return "", fmt.Errorf("Error getting repository details: %v", err)
	}
	return out, nil
}

// ListBackupJobs lists backup jobs, optionally filtered by repository ID
func (c *Client) ListBackupJobs(ctx context.Context, repositoryID string) (string, error) {
	runID := uuid.NewString()
	if repositoryID != "" {
		c.logger.Info("[%s] Listing backup jobs for repository %s", runID, repositoryID)
	} else {
		c.logger.Info("[%s] Listing backup jobs", runID)
	}

	session := NewSession(ctx, c.config, c.logger)

	var query url.Values
	if repositoryID != "" {
		query = url.Values{"repositoryId": []string{repositoryID}}
	}

	result, err := session.probe(ctx, jobEndpoints, query)
	if err != nil {
		c.logger.Error("[%s] No valid jobs endpoint found", runID)
		return "", errors.New("No valid jobs endpoint found")
	}

	if n, ok := arrayLen(result.Body); ok {
		c.logger.Info("[%s] Found %d backup jobs via %s", runID, n, result.Endpoint)
	}

	out, err := indentJSON(result.Body)
	if err != nil {
		c.logger.Error("[%s] Error listing backup jobs: %v", runID, err)
		return "", fmt.Errorf("Error listing backup jobs: %v", err)
	}
	return out, nil
}

// indentJSON re-serializes a JSON document with two-space indentation
func indentJSON(body json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// arrayLen returns the element count when body is a JSON array. The backend
// schema is otherwise opaque to this client; the count is logged only.
func arrayLen(body json.RawMessage) (int, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return 0, false
	}
	return len(items), true
}
