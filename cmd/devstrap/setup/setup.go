// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package setup provides the bootstrap and reset commands: the two
// transitions of the environment state machine. Plain "devstrap" runs
// bootstrap; "devstrap reset" discards prior state first and then
// bootstraps, forcing full recreation.
package setup

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/devstrap/devstrap/cmd/devstrap/cli"
	"github.com/devstrap/devstrap/lib/bootstrap"
	"github.com/devstrap/devstrap/lib/config"
	"github.com/devstrap/devstrap/lib/poetry"
	"github.com/devstrap/devstrap/lib/runner"
)

// runLogName is the bootstrap transcript file inside the cache
// directory.
const runLogName = "devstrap.log"

// Params holds the shared flags of the bootstrap and reset commands.
type Params struct {
	// Repo is the repository root. Empty means discover it by walking
	// up from the working directory.
	Repo string

	// Timeout overrides the configured per-command timeout.
	Timeout time.Duration
}

func (p *Params) flagSet(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.StringVar(&p.Repo, "repo", "", "repository root (default: discovered from the working directory)")
	flags.DurationVar(&p.Timeout, "timeout", 0, "per-command timeout (default: from config, 300s)")
	return flags
}

// BootstrapCommand returns the "devstrap bootstrap" command. The root
// command delegates here for plain "devstrap".
func BootstrapCommand() *cli.Command {
	var params Params

	return &cli.Command{
		Name:    "bootstrap",
		Summary: "Set up the development environment",
		Description: `Set up the repository's development environment: create the in-project
virtual environment for the configured Python version, install declared
dependencies with Poetry, customize the venv activation script (env-file
sourcing and the optional CLI alias), and record completion.

Completed repositories are left untouched: a second run is a no-op. Use
"devstrap reset" to force recreation.`,
		Usage: "devstrap bootstrap [flags]",
		Examples: []cli.Example{
			{
				Description: "Bootstrap the current checkout",
				Command:     "devstrap bootstrap",
			},
			{
				Description: "Bootstrap a specific checkout with a longer timeout",
				Command:     "devstrap bootstrap --repo ~/src/project --timeout 15m",
			},
		},
		Flags: func() *pflag.FlagSet { return params.flagSet("bootstrap") },
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			return Run(params, false)
		},
	}
}

// ResetCommand returns the "devstrap reset" command.
func ResetCommand() *cli.Command {
	var params Params

	return &cli.Command{
		Name:    "reset",
		Summary: "Discard bootstrap state and set up again",
		Description: `Discard the repository's bootstrap state — the virtual environment
directory and the initialization sentinel — and then run a fresh
bootstrap. Both external commands run again regardless of prior state.`,
		Usage: "devstrap reset [flags]",
		Examples: []cli.Example{
			{
				Description: "Recreate the environment from scratch",
				Command:     "devstrap reset",
			},
		},
		Flags: func() *pflag.FlagSet { return params.flagSet("reset") },
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			return Run(params, true)
		},
	}
}

// Run executes the bootstrap workflow, optionally preceded by the reset
// transition.
func Run(params Params, reset bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	processEnv, err := config.ParseEnv()
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	timeout := params.Timeout
	if timeout == 0 {
		if timeout, err = cfg.Timeout(); err != nil {
			return err
		}
	}

	root, err := resolveRoot(params.Repo, cfg)
	if err != nil {
		return err
	}

	platform := bootstrap.CurrentPlatform()
	paths := bootstrap.DerivePaths(root, cfg, platform)

	// The cache directory hosts the run log as well as the sentinel,
	// so it is created up front. Sentinel creation stays a separate,
	// final step.
	if err := os.MkdirAll(paths.CacheDir, 0755); err != nil {
		return err
	}
	logger := cli.NewRunLogger(processEnv.SlogLevel(), filepath.Join(paths.CacheDir, runLogName))

	poetryClient, err := poetry.NewClient(&runner.Runner{Timeout: timeout}, platform.Windows())
	if err != nil {
		return err
	}

	bootstrapper := &bootstrap.Bootstrapper{
		Paths:            paths,
		Platform:         platform,
		Env:              poetryClient,
		ExtraInstallArgs: processEnv.ExtraInstallArgs(),
		Logger:           logger,
	}

	if reset {
		if err := bootstrapper.Reset(); err != nil {
			return err
		}
	}
	return bootstrapper.Run(ctx)
}

// resolveRoot returns the absolute repository root: the --repo flag
// when given, otherwise discovery from the working directory. An
// explicit root must already exist; nothing below it may be created
// for a mistyped path.
func resolveRoot(repo string, cfg *config.Config) (string, error) {
	if repo != "" {
		root, err := filepath.Abs(repo)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				return "", fmt.Errorf("repository root not found: %s", root)
			}
			return "", err
		}
		if !info.IsDir() {
			return "", fmt.Errorf("repository root is not a directory: %s", root)
		}
		return root, nil
	}
	workingDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return bootstrap.FindRoot(workingDir, cfg.SettingsFile)
}
