// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewCommandLogger creates a structured logger for CLI command
// operations. When stderr is a terminal, uses slog.TextHandler for
// human-readable output. When stderr is piped or redirected (CI,
// scripts), uses slog.JSONHandler for machine-parseable output.
func NewCommandLogger(level slog.Level) *slog.Logger {
	return slog.New(consoleHandler(level))
}

// NewRunLogger creates the logger for a bootstrap run: console output
// as in NewCommandLogger, plus a JSON transcript appended to logPath
// with size-based rotation. The transcript is what "why did yesterday's
// bootstrap fail" gets answered from, so it survives the terminal.
func NewRunLogger(level slog.Level, logPath string) *slog.Logger {
	logFile := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
	}
	fileHandler := slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: level})

	return slog.New(multiHandler{consoleHandler(level), fileHandler})
}

func consoleHandler(level slog.Level) slog.Handler {
	options := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.NewTextHandler(os.Stderr, options)
	}
	return slog.NewJSONHandler(os.Stderr, options)
}

// multiHandler fans records out to every wrapped handler.
type multiHandler []slog.Handler

func (m multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range m {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m multiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range m {
		if handler.Enabled(ctx, record.Level) {
			errs = append(errs, handler.Handle(ctx, record.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	wrapped := make(multiHandler, len(m))
	for i, handler := range m {
		wrapped[i] = handler.WithAttrs(attrs)
	}
	return wrapped
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	wrapped := make(multiHandler, len(m))
	for i, handler := range m {
		wrapped[i] = handler.WithGroup(name)
	}
	return wrapped
}
