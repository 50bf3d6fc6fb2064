package vbr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
)

// errExit is a sentinel error used to signal REPL exit
var errExit = errors.New("exit")

// REPL provides an interactive front end over the VBR query operations
type REPL struct {
	client          *Client
	logger          *Logger
	commandHandlers map[string]commandHandler
}

// NewREPL creates a new REPL instance
func NewREPL(client *Client, logger *Logger) *REPL {
	r := &REPL{
		client: client,
		logger: logger,
	}
	r.commandHandlers = r.buildCommandHandlers()
	return r
}

// Run starts the REPL
func (r *REPL) Run(ctx context.Context) error {
	// Set up readline with tab completion
	completer := createCompleter()
	historyFile := filepath.Join(os.TempDir(), ".mcp_vbr_history")

	config := &readline.Config{
		Prompt:          "VBR> ",
		HistoryFile:     historyFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer func() { _ = rl.Close() }()

	// Display welcome message
	r.logger.Info("VBR REPL started. Type 'help' for available commands. Use TAB for completion.")
	fmt.Println()

	// Main REPL loop
	for {
		// Check if context is cancelled
		select {
		case <-ctx.Done():
			r.logger.Info("REPL shutting down...")
			return nil
		default:
		}

		// Read input
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				continue
			}
		} else if err == io.EOF {
			r.logger.Info("Goodbye!")
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		// Parse and execute command
		if err := r.executeCommand(ctx, input); err != nil {
			if errors.Is(err, errExit) {
				r.logger.Info("Goodbye!")
				return nil
			}
			r.logger.Error("Error: %v", err)
		}

		fmt.Println()
	}
}

// createCompleter creates the tab completion configuration
func createCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("?"),
		readline.PcItem("repos"),
		readline.PcItem("repo"),
		readline.PcItem("jobs"),
		readline.PcItem("verbose",
			readline.PcItem("on"),
			readline.PcItem("off"),
		),
		readline.PcItem("exit"),
		readline.PcItem("quit"),
	)
}

// filterInput filters input characters for readline
func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// commandHandler defines a REPL command with its handler and argument requirements
type commandHandler struct {
	minArgs int
	usage   string
	handler func(ctx context.Context, parts []string) error
}

// buildCommandHandlers creates the map of command handlers
func (r *REPL) buildCommandHandlers() map[string]commandHandler {
	return map[string]commandHandler{
		"help": {minArgs: 1, handler: func(ctx context.Context, parts []string) error {
			return r.showHelp()
		}},
		"?": {minArgs: 1, handler: func(ctx context.Context, parts []string) error {
			return r.showHelp()
		}},
		"exit": {minArgs: 1, handler: func(ctx context.Context, parts []string) error {
			return errExit
		}},
		"quit": {minArgs: 1, handler: func(ctx context.Context, parts []string) error {
			return errExit
		}},
		"repos": {minArgs: 1, handler: func(ctx context.Context, parts []string) error {
			return r.handleListRepositories(ctx)
		}},
		"repo": {
			minArgs: 2,
			usage:   "usage: repo <id>",
			handler: func(ctx context.Context, parts []string) error {
				return r.handleRepositoryDetails(ctx, parts[1])
			},
		},
		"jobs": {
			minArgs: 1,
			handler: func(ctx context.Context, parts []string) error {
				repositoryID := ""
				if len(parts) > 1 {
					repositoryID = parts[1]
				}
				return r.handleListJobs(ctx, repositoryID)
			},
		},
		"verbose": {
			minArgs: 2,
			usage:   "usage: verbose <on|off>",
			handler: func(ctx context.Context, parts []string) error {
				return r.handleVerbose(parts[1])
			},
		},
	}
}

// executeCommand parses and executes a command
func (r *REPL) executeCommand(ctx context.Context, input string) error {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	command := strings.ToLower(parts[0])

	handler, exists := r.commandHandlers[command]
	if !exists {
		return fmt.Errorf("unknown command: %s. Type 'help' for available commands", command)
	}

	if len(parts) < handler.minArgs {
		return errors.New(handler.usage)
	}

	return handler.handler(ctx, parts)
}

// showHelp displays available commands
func (r *REPL) showHelp() error {
	fmt.Println("Available commands:")
	fmt.Println("  help, ?                      - Show this help message")
	fmt.Println("  repos                        - List all backup repositories")
	fmt.Println("  repo <id>                    - Show details for one repository")
	fmt.Println("  jobs [repository-id]         - List backup jobs, optionally filtered")
	fmt.Println("  verbose <on|off>             - Enable/disable per-candidate probe logging")
	fmt.Println("  exit, quit                   - Exit the REPL")
	fmt.Println()
	fmt.Println("Keyboard shortcuts:")
	fmt.Println("  TAB                          - Auto-complete commands")
	fmt.Println("  ↑/↓ (arrow keys)             - Navigate command history")
	fmt.Println("  Ctrl+R                       - Search command history")
	fmt.Println("  Ctrl+C                       - Cancel current line")
	fmt.Println("  Ctrl+D                       - Exit REPL")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  repo 88788f9e-d8f5-4eb4-bc4f-9b3f5403bcec")
	fmt.Println("  jobs 88788f9e-d8f5-4eb4-bc4f-9b3f5403bcec")
	return nil
}

// handleListRepositories runs the repository listing and prints the result
func (r *REPL) handleListRepositories(ctx context.Context) error {
	out, err := r.client.ListRepositories(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}
	fmt.Println(out)
	return nil
}

// handleRepositoryDetails runs the repository detail lookup and prints the result
func (r *REPL) handleRepositoryDetails(ctx context.Context, id string) error {
	out, err := r.client.GetRepositoryDetails(ctx, id)
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}
	fmt.Println(out)
	return nil
}

// handleListJobs runs the job listing and prints the result
func (r *REPL) handleListJobs(ctx context.Context, repositoryID string) error {
	out, err := r.client.ListBackupJobs(ctx, repositoryID)
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}
	fmt.Println(out)
	return nil
}

// handleVerbose enables or disables verbose probe logging
func (r *REPL) handleVerbose(setting string) error {
	switch strings.ToLower(setting) {
	case "on":
		r.logger.SetVerbose(true)
		fmt.Println("Verbose logging enabled")
	case "off":
		r.logger.SetVerbose(false)
		fmt.Println("Verbose logging disabled")
	default:
		return fmt.Errorf("invalid setting: %s. Use 'on' or 'off'", setting)
	}
	return nil
}
