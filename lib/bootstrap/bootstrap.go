// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package bootstrap orchestrates development-environment setup for a
// repository checkout: virtual environment creation, dependency
// installation, activation-script customization, and the sentinel file
// that makes the whole workflow idempotent.
//
// The workflow has two externally visible states, tracked by sentinel
// existence. A run against an initialized repository is a no-op. A
// reset deletes the virtual environment and the sentinel, forcing full
// recreation on the next run. The sentinel is written strictly after
// activation-script customization succeeds, so a crash mid-run leaves
// the repository uninitialized and safely re-runnable.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/devstrap/devstrap/lib/activate"
	"github.com/devstrap/devstrap/lib/repoconfig"
)

// sentinelMarker is the sentinel file content, followed by the
// platform line terminator.
const sentinelMarker = "TRUE"

// EnvironmentManager creates the virtual environment and installs
// dependencies. Satisfied by [*poetry.Client].
type EnvironmentManager interface {
	// EnvUse binds the virtual environment in dir to the given
	// Python version, creating it if needed.
	EnvUse(ctx context.Context, dir, version string) error

	// InstallDependencies installs declared dependencies in dir with
	// extraArgs appended to the command line.
	InstallDependencies(ctx context.Context, dir string, extraArgs []string) error
}

// Bootstrapper runs the bootstrap workflow against one repository.
type Bootstrapper struct {
	// Paths is the derived location set for the repository.
	Paths RepositoryPaths

	// Platform is the host platform, resolved once at startup.
	Platform Platform

	// Env creates the virtual environment and installs dependencies.
	Env EnvironmentManager

	// ExtraInstallArgs are appended to the dependency install command.
	ExtraInstallArgs []string

	// Logger receives the structured run transcript. Nil discards it.
	Logger *slog.Logger

	// Out receives user-facing progress output. Nil means os.Stdout.
	Out io.Writer
}

// Initialized reports whether the repository has a completed bootstrap,
// by sentinel existence.
func (b *Bootstrapper) Initialized() bool {
	_, err := os.Stat(b.Paths.SentinelFile)
	return err == nil
}

// Run performs the bootstrap transition. Already-initialized
// repositories are reported and left untouched. Any failure leaves the
// repository uninitialized: the sentinel is only written after every
// other step has succeeded.
func (b *Bootstrapper) Run(ctx context.Context) error {
	out := b.out()
	logger := b.logger()

	if b.Initialized() {
		fmt.Fprintln(out, "development environment already set up")
		logger.Info("bootstrap skipped", "reason", "sentinel present",
			"sentinel", b.Paths.SentinelFile)
		return nil
	}

	repoConfig, envSettings, err := repoconfig.Load(b.Paths.SettingsFile, b.Paths.EnvFile)
	if err != nil {
		return err
	}
	logger.Info("bootstrap starting", "repo", b.Paths.Root,
		"python_version", envSettings.PythonVersion)

	// The venv-creation step is idempotent on its own: an existing
	// activation script means the environment was already created on a
	// previous (possibly interrupted) run.
	if _, err := os.Stat(b.Paths.ActivationScript); os.IsNotExist(err) {
		if err := b.Env.EnvUse(ctx, b.Paths.Root, envSettings.PythonVersion); err != nil {
			return fmt.Errorf("creating virtual environment: %w", err)
		}
		if err := b.Env.InstallDependencies(ctx, b.Paths.Root, b.ExtraInstallArgs); err != nil {
			return fmt.Errorf("installing dependencies: %w", err)
		}
		logger.Info("virtual environment created", "venv", b.Paths.VenvDir)
	} else {
		logger.Info("virtual environment exists, skipping creation",
			"activation_script", b.Paths.ActivationScript)
	}

	err = activate.Customize(activate.Params{
		ScriptPath:      b.Paths.ActivationScript,
		EnvFilePath:     b.Paths.EnvFile,
		InterpreterPath: b.Paths.Interpreter,
		CLIAlias:        repoConfig.CLIAlias,
		CLIEntryScript:  repoConfig.CLIEntryScript,
		LineSeparator:   b.Platform.LineSeparator(),
	}, out)
	if err != nil {
		return err
	}

	if err := b.writeSentinel(); err != nil {
		return err
	}

	fmt.Fprintln(out, "development environment ready")
	logger.Info("bootstrap complete", "sentinel", b.Paths.SentinelFile)
	return nil
}

// Reset discards prior bootstrap state: the virtual environment
// directory and the sentinel, on every platform. It does not trigger
// recreation.
func (b *Bootstrapper) Reset() error {
	out := b.out()
	logger := b.logger()

	if _, err := os.Stat(b.Paths.VenvDir); err == nil {
		fmt.Fprintf(out, "removing virtual environment: %s\n", b.Paths.VenvDir)
		if err := os.RemoveAll(b.Paths.VenvDir); err != nil {
			return fmt.Errorf("removing virtual environment %s: %w", b.Paths.VenvDir, err)
		}
	}

	if _, err := os.Stat(b.Paths.SentinelFile); err == nil {
		if err := os.Remove(b.Paths.SentinelFile); err != nil {
			return fmt.Errorf("removing sentinel %s: %w", b.Paths.SentinelFile, err)
		}
	}

	logger.Info("bootstrap state reset", "repo", b.Paths.Root)
	return nil
}

// writeSentinel records completed initialization. Strictly the last
// step of a successful run.
func (b *Bootstrapper) writeSentinel() error {
	if err := os.MkdirAll(b.Paths.CacheDir, 0755); err != nil {
		return fmt.Errorf("creating cache directory %s: %w", b.Paths.CacheDir, err)
	}
	content := sentinelMarker + b.Platform.LineSeparator()
	if err := os.WriteFile(b.Paths.SentinelFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing sentinel %s: %w", b.Paths.SentinelFile, err)
	}
	return nil
}

func (b *Bootstrapper) out() io.Writer {
	if b.Out != nil {
		return b.Out
	}
	return os.Stdout
}

func (b *Bootstrapper) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
