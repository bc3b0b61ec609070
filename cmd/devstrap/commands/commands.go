// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete devstrap CLI command tree.
package commands

import (
	"fmt"

	"github.com/devstrap/devstrap/cmd/devstrap/cli"
	doctorcmd "github.com/devstrap/devstrap/cmd/devstrap/doctor"
	setupcmd "github.com/devstrap/devstrap/cmd/devstrap/setup"
	"github.com/devstrap/devstrap/lib/version"
)

// Root builds and returns the devstrap CLI command tree. Plain
// "devstrap" (no subcommand) runs the bootstrap — that is the everyday
// invocation, so it should not require typing a subcommand.
func Root() *cli.Command {
	bootstrap := setupcmd.BootstrapCommand()

	return &cli.Command{
		Name: "devstrap",
		Description: `devstrap: idempotent development-environment bootstrapper.

Create the repository's virtual environment, install dependencies with
Poetry, and customize the activation script. Completed repositories are
left untouched until "devstrap reset".`,
		Usage: "devstrap [command] [flags]",
		Examples: []cli.Example{
			{
				Description: "Bootstrap the current checkout",
				Command:     "devstrap",
			},
			{
				Description: "Discard state and bootstrap from scratch",
				Command:     "devstrap reset",
			},
		},
		Subcommands: []*cli.Command{
			bootstrap,
			setupcmd.ResetCommand(),
			doctorcmd.Command(),
			versionCommand(),
		},
		// Plain "devstrap" is the bootstrap command in full, flags
		// included: "devstrap --repo X" and "devstrap bootstrap --repo X"
		// behave identically.
		Flags: bootstrap.Flags,
		Run:   bootstrap.Run,
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print the devstrap version",
		Run: func(args []string) error {
			fmt.Println(version.String())
			return nil
		},
	}
}
