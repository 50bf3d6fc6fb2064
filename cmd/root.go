package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vbr-tools/mcp-vbr/internal/vbr"
)

const (
	transportStdio          = "stdio"
	transportStreamableHTTP = "streamable-http"
)

var (
	version         string
	apiURL          string
	username        string
	password        string
	configFile      string
	serverTransport string
	listenAddr      string
	logDir          string
	verbose         bool
	noColor         bool
	httpTrace       bool
	repl            bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mcp-vbr",
	Short: "MCP server for the Veeam Backup & Replication REST API",
	Long: `mcp-vbr exposes read-only Veeam Backup & Replication (VBR) queries as MCP
(Model Context Protocol) tools, for use by AI assistants and other automated agents.

Three tools are available:
- list_vbr_repositories: list all backup repositories
- get_repository_details: fetch a single repository by ID
- list_backup_jobs: list backup jobs, optionally filtered by repository

Each tool invocation authenticates against the VBR server with a password-grant
token request and probes an ordered list of candidate API endpoints, so the same
binary works across VBR deployments with differing API layouts. Authentication
failure is not fatal; requests are then sent unauthenticated.

The server credentials are taken from flags, the environment (VBR_API_URL,
VBR_USERNAME, VBR_PASSWORD) or an optional YAML config file, in that order of
precedence.

The tool supports two modes:
- MCP Server mode (default): stdio or streamable-http transport
- REPL mode (--repl): run the same queries interactively

Every run writes a timestamped log file under --log-dir; stdout is never used
for logging so the stdio transport stays clean.`,
	RunE: runMCPVBR,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// SetVersion sets the version for the application
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	// Add flags
	rootCmd.Flags().StringVar(&apiURL, "api-url", "", "VBR API base URL (default $VBR_API_URL or "+vbr.DefaultAPIURL+")")
	rootCmd.Flags().StringVar(&username, "username", "", "VBR username (default $VBR_USERNAME)")
	rootCmd.Flags().StringVar(&password, "password", "", "VBR password (default $VBR_PASSWORD)")
	rootCmd.Flags().StringVar(&configFile, "config", "", "Path to optional YAML config file")
	rootCmd.Flags().StringVar(&serverTransport, "server-transport", transportStdio, "Transport protocol for the MCP server (stdio, streamable-http)")
	rootCmd.Flags().StringVar(&listenAddr, "listen-addr", ":8899", "Listen address for streamable-http server (path is fixed to /mcp)")
	rootCmd.Flags().StringVar(&logDir, "log-dir", "logs", "Directory for per-run log files")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Enable verbose logging (show per-candidate probe messages)")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().BoolVar(&httpTrace, "http-trace", false, "Enable full HTTP request/response logging")
	rootCmd.Flags().BoolVar(&repl, "repl", false, "Start interactive REPL mode instead of serving MCP")

	// Add subcommands
	rootCmd.AddCommand(newSelfUpdateCmd())

	// Mark flags as mutually exclusive
	rootCmd.MarkFlagsMutuallyExclusive("repl", "server-transport")
}

// validateTransport validates the transport configuration
func validateTransport() error {
	if serverTransport != transportStdio && serverTransport != transportStreamableHTTP {
		return fmt.Errorf("unsupported server transport '%s' (use stdio or streamable-http)", serverTransport)
	}
	return nil
}

// setupSignalHandler sets up graceful shutdown on interrupt signals
func setupSignalHandler(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		if repl {
			fmt.Println("\nReceived interrupt signal, shutting down gracefully...")
		}
		cancel()
	}()
}

// buildConfig assembles the VBR configuration from config file, environment
// and CLI flags. Flags win over environment variables, which win over the
// config file; anything still unset falls back to defaults.
func buildConfig(cmd *cobra.Command, logger *vbr.Logger) (*vbr.Config, error) {
	cfg := &vbr.Config{}

	if configFile != "" {
		loaded, err := vbr.LoadConfigFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		cfg = loaded
		logger.Info("Loaded configuration from %s", configFile)
	}

	cfg.ApplyEnvironment()

	if cmd.Flags().Changed("api-url") {
		cfg.APIURL = apiURL
	}
	if cmd.Flags().Changed("username") {
		cfg.Username = username
	}
	if cmd.Flags().Changed("password") {
		cfg.Password = password
	}

	cfg = cfg.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid VBR configuration: %w", err)
	}

	if cfg.Username == "" || cfg.Password == "" {
		logger.Warning("VBR credentials not provided. Some operations may fail.")
	}

	return cfg, nil
}

// runMCPServer runs the MCP server with the configured transport
func runMCPServer(ctx context.Context, client *vbr.Client, logger *vbr.Logger) error {
	server, err := vbr.NewMCPServer(client, serverTransport, version, logger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	logger.Info("Starting mcp-vbr MCP server (transport: %s)...", serverTransport)
	if serverTransport == transportStreamableHTTP {
		addr := listenAddr
		if !strings.Contains(addr, ":") {
			addr = ":" + addr
		}
		logger.Info("Listening on %s%s", addr, "/mcp")
	}

	if err := server.Start(ctx, listenAddr); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}

func runMCPVBR(cmd *cobra.Command, args []string) error {
	if err := validateTransport(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	setupSignalHandler(cancel)

	logger, err := vbr.NewFileLogger(logDir, verbose, !noColor, httpTrace)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() { _ = logger.Close() }()

	cfg, err := buildConfig(cmd, logger)
	if err != nil {
		return err
	}

	client := vbr.NewClient(cfg, logger)

	if repl {
		replHandler := vbr.NewREPL(client, logger)
		if err := replHandler.Run(ctx); err != nil {
			return fmt.Errorf("REPL error: %w", err)
		}
		return nil
	}

	return runMCPServer(ctx, client, logger)
}
