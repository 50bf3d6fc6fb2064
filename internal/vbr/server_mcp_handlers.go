package vbr

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool results are always text: the winning endpoint's JSON on success, the
// diagnostic message on failure. Errors never propagate to the MCP layer as
// protocol faults; only malformed arguments produce an error result.

// handleListRepositories handles the list_vbr_repositories tool request
func (m *MCPServer) handleListRepositories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := m.client.ListRepositories(ctx)
	if err != nil {
		return mcp.NewToolResultText(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

// handleGetRepositoryDetails handles the get_repository_details tool request
func (m *MCPServer) handleGetRepositoryDetails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// Get repository ID from arguments
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("missing or invalid 'id' argument"), nil
	}

	out, err := m.client.GetRepositoryDetails(ctx, id)
	if err != nil {
		return mcp.NewToolResultText(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

// handleListBackupJobs handles the list_backup_jobs tool request
func (m *MCPServer) handleListBackupJobs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// Get optional repository filter
	var repositoryID string
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		repositoryID, _ = args["repository_id"].(string)
	}

	out, err := m.client.ListBackupJobs(ctx, repositoryID)
	if err != nil {
		return mcp.NewToolResultText(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}
