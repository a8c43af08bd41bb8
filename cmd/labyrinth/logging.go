package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

func parseLogLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.DebugLevel, nil
	case "", "info":
		return log.InfoLevel, nil
	case "warn":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("invalid log level %q (valid: debug, info, warn, error)", s)
	}
}

func newLogger(w io.Writer, prefix string) *log.Logger {
	level, _ := parseLogLevel(flagLogLevel)

	formatter := log.TextFormatter
	if flagLogFormat == "json" {
		formatter = log.JSONFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// newFileLogger logs to ~/.labyrinth/labyrinth.log, since the terminal
// belongs to the game while it runs. The returned closer is never nil.
func newFileLogger() (*log.Logger, io.Closer) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(io.Discard, "labyrinth"), io.NopCloser(nil)
	}

	dir := filepath.Join(home, ".labyrinth")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard, "labyrinth"), io.NopCloser(nil)
	}

	f, err := os.OpenFile(filepath.Join(dir, "labyrinth.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return newLogger(io.Discard, "labyrinth"), io.NopCloser(nil)
	}
	return newLogger(f, "labyrinth"), f
}
