// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Env holds the process-environment knobs devstrap consumes. These are
// per-invocation overrides, distinct from the tool config file: passing
// extra install flags or turning up logging for a single run should not
// require editing any file.
type Env struct {
	// PipExtraArgs contains extra flags appended to the dependency
	// install command, whitespace-separated.
	PipExtraArgs string `env:"DEVSTRAP_PIP_EXTRA_ARGS"`

	// LogLevel selects the minimum log level: debug, info, warn, error.
	LogLevel string `env:"DEVSTRAP_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv reads the devstrap environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parsing environment: %w", err)
	}
	return e, nil
}

// ExtraInstallArgs returns the extra install flags split on whitespace,
// empty when none are set.
func (e Env) ExtraInstallArgs() []string {
	return strings.Fields(e.PipExtraArgs)
}

// SlogLevel maps the configured log level onto a slog level. Unknown
// values fall back to info.
func (e Env) SlogLevel() slog.Level {
	switch strings.ToLower(e.LogLevel) {
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
