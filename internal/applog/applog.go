// Package applog sets up structured logging for ccsearch. Logs always go
// to a file, never to stderr — in interactive mode stderr output would
// corrupt the TUI's rendered frame.
package applog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	logDir  = ".config/ccsearch"
	logFile = "debug.log"
)

// Setup opens the log file (creating its directory if needed), installs a
// slog.TextHandler writing to it at level Info (or Debug when verbose is
// true), and sets it as the process default logger. It returns a cleanup
// function the caller should defer, and the log file path so one-shot CLI
// mode can print it once under --verbose.
func Setup(verbose bool) (cleanup func(), path string, err error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	path = Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		return func() {}, "", nil
	}

	f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	var writer io.Writer = io.Discard
	var closeFn func()
	if openErr == nil {
		writer = f
		closeFn = func() { _ = f.Close() }
	} else {
		closeFn = func() {}
	}

	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return closeFn, path, nil
}

// Path returns the on-disk location of the log file.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(logDir, logFile)
	}
	return filepath.Join(home, logDir, logFile)
}
