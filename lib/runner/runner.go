// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package runner executes external commands for the bootstrap workflow.
// Commands run synchronously with the caller's stdout/stderr so the user
// sees package-manager output live, bounded by a hard timeout. A banner
// identifying the command is printed before execution so failed runs are
// easy to attribute in terminal scrollback and CI logs.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single external command. Dependency installs
// can legitimately take minutes on a cold cache; anything past this is
// treated as hung.
const DefaultTimeout = 300 * time.Second

// Runner executes external commands. The zero value runs with
// DefaultTimeout and the process's stdout/stderr.
type Runner struct {
	// Timeout bounds each command. Zero means DefaultTimeout.
	Timeout time.Duration

	// Stdout and Stderr receive the command's output streams and the
	// pre-execution banner. Nil means os.Stdout / os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes name with args in dir, streaming output to the runner's
// writers, and returns the command's exit status. A non-zero status is
// not an error: it is returned for the caller to judge. Errors are
// reserved for commands that could not run at all or exceeded the
// timeout.
func (r *Runner) Run(ctx context.Context, dir, name string, args ...string) (int, error) {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	commandLine := CommandLine(name, args)
	printBanner(stdout, commandLine)

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	command := exec.CommandContext(runCtx, name, args...)
	command.Dir = dir
	command.Stdout = stdout
	command.Stderr = stderr

	err := command.Run()
	if err == nil {
		return 0, nil
	}

	// Timeout takes precedence over the exit error it produces: the
	// killed process reports a meaningless status.
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return 0, fmt.Errorf("command %q timed out after %s", commandLine, timeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, fmt.Errorf("running %q: %w", commandLine, err)
}

// CommandLine renders a command and its arguments as the single line
// shown in banners and failure messages.
func CommandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// printBanner writes the pre-execution banner identifying the command.
func printBanner(w io.Writer, commandLine string) {
	rule := strings.Repeat("-", 70)
	fmt.Fprintf(w, "%s\nrunning: %s\n%s\n", rule, commandLine, rule)
}
