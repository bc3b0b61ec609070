// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package doctor diagnoses the bootstrap environment: repository
// inputs, the poetry binary, and the consistency of recorded state.
// All checks run regardless of earlier failures so the user gets a
// complete picture, and each failure names the command that fixes it.
package doctor

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/devstrap/devstrap/cmd/devstrap/cli"
	"github.com/devstrap/devstrap/lib/bootstrap"
	"github.com/devstrap/devstrap/lib/config"
	"github.com/devstrap/devstrap/lib/poetry"
	"github.com/devstrap/devstrap/lib/repoconfig"
)

// result describes the outcome of a single check.
type result struct {
	// Name identifies the check (e.g., "settings file").
	Name string

	// Passed is true if the check succeeded.
	Passed bool

	// Message describes the outcome: a success note or an error with
	// actionable guidance.
	Message string
}

// Command returns the "devstrap doctor" command.
func Command() *cli.Command {
	var repo string

	return &cli.Command{
		Name:    "doctor",
		Summary: "Diagnose the bootstrap environment",
		Description: `Check everything a bootstrap run depends on: the repository settings
file, the developer environment file, the poetry binary, and the
consistency of the recorded state (sentinel vs. virtual environment).

For each failure, prints what to fix. Exits 1 when any check fails.`,
		Usage: "devstrap doctor [flags]",
		Examples: []cli.Example{
			{
				Description: "Check the current checkout",
				Command:     "devstrap doctor",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("doctor", pflag.ContinueOnError)
			flags.StringVar(&repo, "repo", "", "repository root (default: discovered from the working directory)")
			return flags
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			processEnv, err := config.ParseEnv()
			if err != nil {
				return err
			}
			logger := cli.NewCommandLogger(processEnv.SlogLevel())
			return runDoctor(repo, os.Stdout, logger)
		},
	}
}

func runDoctor(repo string, out io.Writer, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	root, rootResult := checkRoot(repo, cfg)
	results := []result{rootResult}
	if rootResult.Passed {
		platform := bootstrap.CurrentPlatform()
		paths := bootstrap.DerivePaths(root, cfg, platform)
		logger.Debug("checking repository",
			"root", root,
			"settings_file", paths.SettingsFile,
			"env_file", paths.EnvFile)
		results = append(results,
			checkRepositoryInputs(paths),
			checkPoetry(),
			checkState(paths),
			checkActivation(paths),
		)
	} else {
		results = append(results, checkPoetry())
	}

	failed := 0
	for _, r := range results {
		marker := "ok  "
		if !r.Passed {
			marker = "FAIL"
			failed++
		}
		fmt.Fprintf(out, "%s  %-18s %s\n", marker, r.Name, r.Message)
	}

	if failed > 0 {
		fmt.Fprintf(out, "\n%d check(s) failed\n", failed)
		return &cli.ExitError{Code: 1}
	}
	fmt.Fprintln(out, "\nall checks passed")
	return nil
}

// checkRoot resolves the repository root.
func checkRoot(repo string, cfg *config.Config) (string, result) {
	if repo != "" {
		root, err := filepath.Abs(repo)
		if err != nil {
			return "", result{Name: "repository root", Message: err.Error()}
		}
		return root, result{Name: "repository root", Passed: true, Message: root}
	}

	workingDir, err := os.Getwd()
	if err != nil {
		return "", result{Name: "repository root", Message: err.Error()}
	}
	root, err := bootstrap.FindRoot(workingDir, cfg.SettingsFile)
	if err != nil {
		return "", result{Name: "repository root", Message: err.Error()}
	}
	return root, result{Name: "repository root", Passed: true, Message: root}
}

// checkRepositoryInputs validates the settings and environment files
// through the same loader bootstrap uses.
func checkRepositoryInputs(paths bootstrap.RepositoryPaths) result {
	_, envSettings, err := repoconfig.Load(paths.SettingsFile, paths.EnvFile)
	if err != nil {
		return result{Name: "repository inputs", Message: err.Error()}
	}
	return result{
		Name:   "repository inputs",
		Passed: true,
		Message: fmt.Sprintf("valid (%s=%s)",
			repoconfig.PythonVersionKey, envSettings.PythonVersion),
	}
}

// checkPoetry verifies the poetry binary is resolvable.
func checkPoetry() result {
	path, err := poetry.FindBinary()
	if err != nil {
		return result{Name: "poetry binary", Message: err.Error()}
	}
	return result{Name: "poetry binary", Passed: true, Message: path}
}

// checkState verifies the sentinel and virtual environment agree. A
// sentinel without a venv (or the reverse) means a bootstrap was
// interrupted or state was removed by hand; both are fixed by reset.
func checkState(paths bootstrap.RepositoryPaths) result {
	sentinelExists := exists(paths.SentinelFile)
	venvExists := exists(paths.VenvDir)

	switch {
	case sentinelExists && venvExists:
		return result{Name: "bootstrap state", Passed: true, Message: "initialized"}
	case !sentinelExists && !venvExists:
		return result{Name: "bootstrap state", Passed: true, Message: "uninitialized (run devstrap)"}
	case sentinelExists:
		return result{
			Name:    "bootstrap state",
			Message: "sentinel present but virtual environment missing; run 'devstrap reset'",
		}
	default:
		return result{
			Name:    "bootstrap state",
			Message: "virtual environment present but no sentinel; run 'devstrap' to finish, or 'devstrap reset' to recreate",
		}
	}
}

// checkActivation verifies the activation script exists wherever the
// virtual environment does. A venv without its script cannot be
// customized or entered, so the script going missing after creation is
// worth surfacing even when the sentinel says all is well.
func checkActivation(paths bootstrap.RepositoryPaths) result {
	scriptExists := exists(paths.ActivationScript)
	venvExists := exists(paths.VenvDir)

	switch {
	case scriptExists:
		return result{Name: "activation script", Passed: true, Message: paths.ActivationScript}
	case !venvExists:
		return result{Name: "activation script", Passed: true, Message: "not created yet (run devstrap)"}
	default:
		return result{
			Name:    "activation script",
			Message: "virtual environment present but activation script missing; run 'devstrap reset'",
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
