package vbr

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer exposes the VBR query operations as MCP tools
type MCPServer struct {
	client          *Client
	logger          *Logger
	mcpServer       *server.MCPServer
	serverTransport string
}

// NewMCPServer creates a new MCP server that exposes the VBR tools
func NewMCPServer(client *Client, serverTransport, version string, logger *Logger) (*MCPServer, error) {
	// Create MCP server
	mcpServer := server.NewMCPServer(
		"mcp-vbr",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
	)

	ms := &MCPServer{
		client:          client,
		logger:          logger,
		mcpServer:       mcpServer,
		serverTransport: serverTransport,
	}

	// Register all tools
	ms.registerTools()

	return ms, nil
}

// Start starts the MCP server using stdio or streamable-http transport
func (m *MCPServer) Start(ctx context.Context, listenAddr string) error {
	// Start the server with the specified transport
	switch m.serverTransport {
	case "stdio":
		return server.ServeStdio(m.mcpServer)
	case "streamable-http":
		httpServer := server.NewStreamableHTTPServer(
			m.mcpServer,
			server.WithEndpointPath("/mcp"),
		)
		return httpServer.Start(listenAddr)
	default:
		return fmt.Errorf("unsupported server transport: %s", m.serverTransport)
	}
}

// registerTools registers all MCP tools
func (m *MCPServer) registerTools() {
	// List repositories
	listRepositoriesTool := mcp.NewTool("list_vbr_repositories",
		mcp.WithDescription("Lists all backup repositories in the VBR system"),
	)
	m.mcpServer.AddTool(listRepositoriesTool, m.handleListRepositories)

	// Get repository details
	getRepositoryTool := mcp.NewTool("get_repository_details",
		mcp.WithDescription("Gets detailed information about a specific backup repository"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The ID of the repository to get details for"),
		),
	)
	m.mcpServer.AddTool(getRepositoryTool, m.handleGetRepositoryDetails)

	// List backup jobs
	listJobsTool := mcp.NewTool("list_backup_jobs",
		mcp.WithDescription("Lists backup jobs, optionally filtered by repository ID"),
		mcp.WithString("repository_id",
			mcp.Description("Optional repository ID to filter jobs"),
		),
	)
	m.mcpServer.AddTool(listJobsTool, m.handleListBackupJobs)
}
