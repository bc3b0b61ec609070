// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package poetry provides typed access to the Poetry CLI. It
// centralizes binary resolution and uniform failure formatting across
// the two invocations bootstrapping needs:
//
//   - poetry env use: bind the in-project virtual environment to a
//     specific Python version (creating it if needed)
//   - poetry install --no-root: install declared dependencies without
//     installing the repository itself as a package
//
// Non-zero exit statuses surface as a [CommandError] carrying the exact
// command line, so callers can report precisely which step failed.
package poetry

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/devstrap/devstrap/lib/runner"
)

// windowsInterpreter is passed to "poetry env use" on Windows hosts in
// place of the configured version. The py launcher resolves versioned
// interpreters there, so Poetry is pointed at the default interpreter
// instead of a version string it cannot locate.
const windowsInterpreter = "python"

// CommandRunner executes an external command and reports its exit
// status. Satisfied by [*runner.Runner].
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (int, error)
}

// Client invokes the Poetry CLI against one repository.
type Client struct {
	path        string
	run         CommandRunner
	windowsHost bool
}

// NewClient resolves the poetry binary and returns a client that runs
// it through run. windowsHost selects the interpreter substitution for
// "env use".
func NewClient(run CommandRunner, windowsHost bool) (*Client, error) {
	path, err := FindBinary()
	if err != nil {
		return nil, err
	}
	return &Client{path: path, run: run, windowsHost: windowsHost}, nil
}

// FindBinary resolves the poetry binary on PATH.
func FindBinary() (string, error) {
	path, err := exec.LookPath("poetry")
	if err != nil {
		return "", fmt.Errorf("poetry not found on PATH — install Poetry first " +
			"(https://python-poetry.org/docs/#installation)")
	}
	return path, nil
}

// EnvUse creates or selects the virtual environment for the given
// Python version in dir. On Windows hosts the configured version is
// replaced with a fixed interpreter name.
func (c *Client) EnvUse(ctx context.Context, dir, version string) error {
	interpreter := version
	if c.windowsHost {
		interpreter = windowsInterpreter
	}
	return c.exec(ctx, dir, "env", "use", interpreter)
}

// InstallDependencies installs the repository's declared dependencies
// in dir without installing the repository itself, with extraArgs
// appended to the command line.
func (c *Client) InstallDependencies(ctx context.Context, dir string, extraArgs []string) error {
	args := append([]string{"install", "--no-root"}, extraArgs...)
	return c.exec(ctx, dir, args...)
}

// exec runs poetry with args and converts a non-zero status into a
// CommandError.
func (c *Client) exec(ctx context.Context, dir string, args ...string) error {
	status, err := c.run.Run(ctx, dir, c.path, args...)
	if err != nil {
		return err
	}
	if status != 0 {
		return &CommandError{
			Command: runner.CommandLine(c.path, args),
			Status:  status,
		}
	}
	return nil
}

// CommandError reports a poetry invocation that ran to completion with
// a non-zero exit status.
type CommandError struct {
	// Command is the exact command line that failed.
	Command string

	// Status is the process exit status.
	Status int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed with status %d", e.Command, e.Status)
}
