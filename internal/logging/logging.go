// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the slog loggers used for clipnote diagnostics.
// Conversion progress is not logged here; it is printed to the command's
// output writer.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// BuildLogger creates a structured logger writing to stderr at the given level.
func BuildLogger(level string) *slog.Logger {
	return NewLogger(os.Stderr, level)
}

// NewLogger creates a text logger writing to w at the given level.
func NewLogger(w io.Writer, level string) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(handler)
}

// ParseLevel maps debug, warn and error to their slog levels. Anything
// else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
