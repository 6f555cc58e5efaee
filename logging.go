package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gitlab.com/tinyland/lab/hostpulse/config"
)

// parseLevel maps a config level name to a slog.Level. Empty means info.
func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", name, err)
	}
	return level, nil
}

// newLogger builds the process logger. While the TUI owns the terminal,
// records go to the configured log file; otherwise they go to stderr.
// The returned func closes the log file, if any.
func newLogger(cfg config.LogConfig, toStderr bool, stderr io.Writer) (*slog.Logger, func(), error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	if toStderr || cfg.File == "" {
		return slog.New(slog.NewTextHandler(stderr, opts)), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), func() { _ = f.Close() }, nil
}
