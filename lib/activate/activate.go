// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package activate customizes a virtual environment's activation script.
// It appends a fixed block: conditional sourcing of the repository's
// developer environment file with automatic variable export, and, when
// the repository declares a CLI alias, a shell function that invokes the
// environment's interpreter against the entry-point script.
//
// Customize is not idempotent: calling it twice appends the block twice.
// The bootstrap orchestrator guards it with the initialization sentinel.
package activate

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/devstrap/devstrap/lib/repoconfig"
)

// Params describes one activation-script customization.
type Params struct {
	// ScriptPath is the activation script to append to. A missing
	// script is not an error: presence depends on how the virtual
	// environment was created, so Customize prints its header and
	// returns without writing anything.
	ScriptPath string

	// EnvFilePath is the developer environment file sourced by the
	// appended block.
	EnvFilePath string

	// InterpreterPath is the virtual environment's interpreter binary,
	// invoked by the alias function.
	InterpreterPath string

	// CLIAlias and CLIEntryScript are the optional alias pair. Both
	// set installs the alias function; both empty skips it; a partial
	// pair is a configuration error.
	CLIAlias       string
	CLIEntryScript string

	// LineSeparator terminates every appended line. The caller resolves
	// it once per platform.
	LineSeparator string
}

// Customize appends the customization block to the activation script.
// Output (the progress header) goes to out.
func Customize(params Params, out io.Writer) error {
	fmt.Fprintf(out, "customizing activation script: %s\n", params.ScriptPath)

	// Re-asserted even though the config loader enforces it: this is
	// the component that needs both values at once.
	if (params.CLIAlias == "") != (params.CLIEntryScript == "") {
		return fmt.Errorf("%s and %s must be set together",
			repoconfig.AliasKey, repoconfig.EntryScriptKey)
	}

	if _, err := os.Stat(params.ScriptPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(out, "activation script not found, skipping customization")
			return nil
		}
		return fmt.Errorf("checking activation script %s: %w", params.ScriptPath, err)
	}

	file, err := os.OpenFile(params.ScriptPath, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("opening activation script %s: %w", params.ScriptPath, err)
	}
	defer file.Close()

	if _, err := file.WriteString(block(params)); err != nil {
		return fmt.Errorf("appending to activation script %s: %w", params.ScriptPath, err)
	}
	return nil
}

// block renders the appended text: a leading blank line, the env-file
// sourcing conditional, two blank lines, then the optional alias
// function.
func block(params Params) string {
	nl := params.LineSeparator
	var b strings.Builder

	b.WriteString(nl)
	b.WriteString(`if [ -f "` + params.EnvFilePath + `" ]; then` + nl)
	b.WriteString(`    set -a` + nl)
	b.WriteString(`    . "` + params.EnvFilePath + `"` + nl)
	b.WriteString(`    set +a` + nl)
	b.WriteString(`fi` + nl)
	b.WriteString(nl)
	b.WriteString(nl)

	if params.CLIAlias != "" {
		b.WriteString(`# ` + params.CLIAlias + ` command alias` + nl)
		b.WriteString(params.CLIAlias + `() {` + nl)
		b.WriteString(`    "` + params.InterpreterPath + `" "` + params.CLIEntryScript + `" "$@"` + nl)
		b.WriteString(`}` + nl)
		b.WriteString(`export -f ` + params.CLIAlias + nl)
	}
	return b.String()
}
