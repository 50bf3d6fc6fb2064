package vbr

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ANSI color codes for console output
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// Logger provides leveled, timestamped logging for the VBR tools.
//
// Lines go to the console writer (stderr by default, colored) and, when
// created via NewFileLogger, to a per-run log file as well (never colored).
// Stdout is never written to: the MCP stdio transport owns it.
type Logger struct {
	mu      sync.Mutex
	console io.Writer
	file    *os.File
	verbose bool
	color   bool
	trace   bool
}

// NewLogger creates a logger writing to stderr
func NewLogger(verbose, color, trace bool) *Logger {
	return NewLoggerWithWriter(verbose, color, trace, os.Stderr)
}

// NewLoggerWithWriter creates a logger writing to the given writer
func NewLoggerWithWriter(verbose, color, trace bool, w io.Writer) *Logger {
	return &Logger{
		console: w,
		verbose: verbose,
		color:   color,
		trace:   trace,
	}
}

// NewFileLogger creates a logger that writes to a timestamped per-run log file
// under dir (created if missing) in addition to stderr.
func NewFileLogger(dir string, verbose, color, trace bool) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	name := fmt.Sprintf("vbr_tools_%s.log", time.Now().Format("2006-01-02_15-04-05"))
	file, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := NewLogger(verbose, color, trace)
	logger.file = file
	return logger, nil
}

// Close closes the per-run log file, if any
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// SetVerbose enables or disables verbose output
func (l *Logger) SetVerbose(verbose bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = verbose
}

// Verbose reports whether verbose output is enabled
func (l *Logger) Verbose() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.verbose
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log("INFO", colorGreen, format, args...)
}

// InfoVerbose logs an informational message only when verbose mode is enabled
func (l *Logger) InfoVerbose(format string, args ...interface{}) {
	if !l.Verbose() {
		return
	}
	l.Info(format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.log("WARN", colorYellow, format, args...)
}

// WarningVerbose logs a warning message only when verbose mode is enabled
func (l *Logger) WarningVerbose(format string, args ...interface{}) {
	if !l.Verbose() {
		return
	}
	l.Warning(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log("ERROR", colorRed, format, args...)
}

// HTTPTrace logs an HTTP request/response detail when tracing is enabled
func (l *Logger) HTTPTrace(format string, args ...interface{}) {
	l.mu.Lock()
	trace := l.trace
	l.mu.Unlock()
	if !trace {
		return
	}
	l.log("HTTP", colorCyan, format, args...)
}

// log writes a single timestamped line to the console and log file
func (l *Logger) log(level, levelColor, format string, args ...interface{}) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.console != nil {
		tag := level
		if l.color {
			tag = levelColor + level + colorReset
		}
		fmt.Fprintf(l.console, "%s %-5s %s\n", timestamp, tag, message)
	}

	if l.file != nil {
		fmt.Fprintf(l.file, "%s %-5s %s\n", timestamp, level, message)
	}
}

// PrettyJSON renders a value as indented JSON for display
func PrettyJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
