// Package logging builds the leveled logger shared by the CLI and the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options holds configuration for the logger.
type Options struct {
	Level string
	// File, when set, receives every log line (append mode).
	File string
	// Fallback is used when File is empty. The TUI passes io.Discard because
	// it owns the terminal; one-shot commands pass stderr.
	Fallback io.Writer
}

// Logger wraps a charmbracelet logger together with its backing file.
type Logger struct {
	*log.Logger
	file *os.File
}

// New creates a logger with prefix "todo".
func New(opts Options) (*Logger, error) {
	level, err := log.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var (
		w    io.Writer = opts.Fallback
		file *os.File
	)
	if w == nil {
		w = os.Stderr
	}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		file, err = os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = file
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "todo",
		ReportTimestamp: file != nil,
	})
	return &Logger{Logger: logger, file: file}, nil
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
