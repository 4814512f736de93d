// Package logging configures the structured logger used for diagnostics
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"music-log/internal/config"
)

// Rotation settings for the optional log file
const (
	MaxSizeMB  = 10
	MaxBackups = 5
	MaxAgeDays = 30
)

// ParseLevel maps debug, info, warn and error to slog levels
// Anything else falls back to warn
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New builds a logger from cfg and installs it as the slog default
// With no log file, text records go to stderr; otherwise JSON records go to
// a rotating file next to the configured path
func New(cfg config.Config, stderr io.Writer, verbose bool) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(cfg.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	var closer io.Closer = nopCloser{}

	if cfg.LogFile == "" {
		handler = slog.NewTextHandler(stderr, opts)
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return nil, nil, err
		}
		rotating := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    MaxSizeMB,
			MaxBackups: MaxBackups,
			MaxAge:     MaxAgeDays,
			Compress:   true,
		}
		handler = slog.NewJSONHandler(rotating, opts)
		closer = rotating
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
