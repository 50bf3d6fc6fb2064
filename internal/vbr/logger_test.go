package vbr

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInfoVerbose(t *testing.T) {
	tests := []struct {
		name           string
		verbose        bool
		format         string
		args           []interface{}
		expectOutput   bool
		expectedSubstr string
	}{
		{
			name:           "verbose enabled - should output",
			verbose:        true,
			format:         "test message: %s",
			args:           []interface{}{"hello"},
			expectOutput:   true,
			expectedSubstr: "test message: hello",
		},
		{
			name:         "verbose disabled - should not output",
			verbose:      false,
			format:       "test message: %s",
			args:         []interface{}{"hello"},
			expectOutput: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewLoggerWithWriter(tt.verbose, false, false, buf)

			logger.InfoVerbose(tt.format, tt.args...)

			output := buf.String()
			if tt.expectOutput {
				if !strings.Contains(output, tt.expectedSubstr) {
					t.Errorf("expected output to contain %q, got %q", tt.expectedSubstr, output)
				}
			} else {
				if output != "" {
					t.Errorf("expected no output, got %q", output)
				}
			}
		})
	}
}

func TestWarningVerbose(t *testing.T) {
	tests := []struct {
		name           string
		verbose        bool
		format         string
		args           []interface{}
		expectOutput   bool
		expectedSubstr string
	}{
		{
			name:           "verbose enabled - should output",
			verbose:        true,
			format:         "warning: %s",
			args:           []interface{}{"test warning"},
			expectOutput:   true,
			expectedSubstr: "warning: test warning",
		},
		{
			name:         "verbose disabled - should not output",
			verbose:      false,
			format:       "warning: %s",
			args:         []interface{}{"test warning"},
			expectOutput: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewLoggerWithWriter(tt.verbose, false, false, buf)

			logger.WarningVerbose(tt.format, tt.args...)

			output := buf.String()
			if tt.expectOutput {
				if !strings.Contains(output, tt.expectedSubstr) {
					t.Errorf("expected output to contain %q, got %q", tt.expectedSubstr, output)
				}
			} else {
				if output != "" {
					t.Errorf("expected no output, got %q", output)
				}
			}
		})
	}
}

func TestNonVerboseLevelsAlwaysLog(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLoggerWithWriter(false, false, false, buf)

	logger.Info("info %d", 1)
	logger.Warning("warning %d", 2)
	logger.Error("error %d", 3)

	output := buf.String()
	for _, want := range []string{"INFO", "info 1", "WARN", "warning 2", "ERROR", "error 3"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got %q", want, output)
		}
	}
}

func TestHTTPTraceGating(t *testing.T) {
	tests := []struct {
		name         string
		trace        bool
		expectOutput bool
	}{
		{name: "trace enabled", trace: true, expectOutput: true},
		{name: "trace disabled", trace: false, expectOutput: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewLoggerWithWriter(false, false, tt.trace, buf)

			logger.HTTPTrace("GET %s", "/api/v1/jobs")

			output := buf.String()
			if tt.expectOutput && !strings.Contains(output, "GET /api/v1/jobs") {
				t.Errorf("expected trace output, got %q", output)
			}
			if !tt.expectOutput && output != "" {
				t.Errorf("expected no output, got %q", output)
			}
		})
	}
}

func TestSetVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLoggerWithWriter(false, false, false, buf)

	logger.InfoVerbose("hidden")
	logger.SetVerbose(true)
	logger.InfoVerbose("visible")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("expected verbose message to be suppressed, got %q", output)
	}
	if !strings.Contains(output, "visible") {
		t.Errorf("expected verbose message after SetVerbose(true), got %q", output)
	}
}

func TestNewFileLoggerWritesPerRunFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := NewFileLogger(dir, false, false, false)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.console = nil // keep test output clean

	logger.Info("logged to file")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read log directory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one log file, got %d", len(entries))
	}
	if !strings.HasPrefix(entries[0].Name(), "vbr_tools_") || !strings.HasSuffix(entries[0].Name(), ".log") {
		t.Errorf("unexpected log file name: %s", entries[0].Name())
	}

	content, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "logged to file") {
		t.Errorf("expected log line in file, got %q", content)
	}
}

func TestPrettyJSON(t *testing.T) {
	out := PrettyJSON(map[string]string{"id": "r1"})
	expected := "{\n  \"id\": \"r1\"\n}"
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
}
