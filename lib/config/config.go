// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides tool-level configuration for devstrap.
//
// Configuration is loaded from the file named by the DEVSTRAP_CONFIG
// environment variable. Unlike the repository inputs, this file is
// optional: a bootstrapper must work in a bare checkout, so built-in
// defaults apply when the variable is unset. The config file only
// adjusts where devstrap looks for things (file names, directory names)
// and how long it waits for external commands.
//
// The only expansion performed on values is ${VAR} and ${VAR:-default}
// for portability of shared config files.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the devstrap tool configuration. All paths are names
// relative to the repository root, not absolute locations.
type Config struct {
	// SettingsFile is the repository settings file name.
	SettingsFile string `yaml:"settings_file"`

	// EnvFile is the developer environment file name.
	EnvFile string `yaml:"env_file"`

	// VenvDir is the virtual environment directory name.
	VenvDir string `yaml:"venv_dir"`

	// CacheDir is the directory holding the sentinel and the run log.
	CacheDir string `yaml:"cache_dir"`

	// CommandTimeout bounds each external command, as a Go duration
	// string (e.g. "300s", "10m").
	CommandTimeout string `yaml:"command_timeout"`
}

// Default returns the built-in configuration. These are the values used
// when DEVSTRAP_CONFIG is unset, and the base that a config file
// overrides.
func Default() *Config {
	return &Config{
		SettingsFile:   "repository.ini",
		EnvFile:        ".env",
		VenvDir:        ".venv",
		CacheDir:       ".cache",
		CommandTimeout: "300s",
	}
}

// Load loads configuration from DEVSTRAP_CONFIG when set, and returns
// the defaults otherwise.
func Load() (*Config, error) {
	path := os.Getenv("DEVSTRAP_CONFIG")
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, merging over
// the defaults. Environment variables do not override config values;
// the only expansion performed is ${VAR} in the values themselves.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Timeout parses the configured command timeout.
func (c *Config) Timeout() (time.Duration, error) {
	timeout, err := time.ParseDuration(c.CommandTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid command_timeout %q: %w", c.CommandTimeout, err)
	}
	return timeout, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.SettingsFile == "" {
		errs = append(errs, fmt.Errorf("settings_file is required"))
	}
	if c.EnvFile == "" {
		errs = append(errs, fmt.Errorf("env_file is required"))
	}
	if c.VenvDir == "" {
		errs = append(errs, fmt.Errorf("venv_dir is required"))
	}
	if c.CacheDir == "" {
		errs = append(errs, fmt.Errorf("cache_dir is required"))
	}

	if timeout, err := c.Timeout(); err != nil {
		errs = append(errs, err)
	} else if timeout <= 0 {
		errs = append(errs, fmt.Errorf("command_timeout must be positive, got %s", timeout))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in all
// string fields.
func (c *Config) expandVariables() {
	c.SettingsFile = expandVars(c.SettingsFile)
	c.EnvFile = expandVars(c.EnvFile)
	c.VenvDir = expandVars(c.VenvDir)
	c.CacheDir = expandVars(c.CacheDir)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}
