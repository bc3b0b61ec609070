// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package repoconfig loads the two per-repository inputs the bootstrap
// workflow consumes: the repository settings file (INI, default section)
// and the developer environment file (flat KEY=VALUE lines).
//
// Both files are required. The settings file declares the optional CLI
// alias pair; the environment file declares the Python version the
// virtual environment is bound to. Values in either file may be wrapped
// in one pair of single or double quotes, which is stripped.
package repoconfig

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

// Keys recognized in the repository inputs.
const (
	// PythonVersionKey names the required runtime version in the
	// developer environment file.
	PythonVersionKey = "PYTHON_VERSION"

	// AliasKey names the optional CLI alias in the settings file's
	// default section.
	AliasKey = "CUSTOM_CLI_ALIAS"

	// EntryScriptKey names the CLI entry-point script that the alias
	// invokes. Must be set together with AliasKey.
	EntryScriptKey = "CUSTOM_CLI_ENTRY_SCRIPT"
)

// RepositoryConfig holds the settings-file values consumed by
// bootstrapping. Both fields are empty when the repository declares no
// CLI alias.
type RepositoryConfig struct {
	// CLIAlias is the shell function name installed into the
	// activation script.
	CLIAlias string

	// CLIEntryScript is the script the alias runs with the virtual
	// environment's interpreter, relative to the repository root.
	CLIEntryScript string
}

// EnvironmentSettings holds the developer environment values consumed
// by bootstrapping.
type EnvironmentSettings struct {
	// PythonVersion is the runtime version the virtual environment is
	// created for. Never empty: Load rejects a missing or empty value.
	PythonVersion string
}

// Load reads the settings file and the developer environment file and
// validates the values bootstrapping depends on. Both files must exist;
// the error for a missing file names the missing path.
func Load(settingsPath, envPath string) (*RepositoryConfig, *EnvironmentSettings, error) {
	if _, err := os.Stat(settingsPath); err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("repository settings file not found: %s", settingsPath)
		}
		return nil, nil, fmt.Errorf("reading repository settings file %s: %w", settingsPath, err)
	}
	if _, err := os.Stat(envPath); err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("developer environment file not found: %s", envPath)
		}
		return nil, nil, fmt.Errorf("reading developer environment file %s: %w", envPath, err)
	}

	repoConfig, err := loadSettings(settingsPath)
	if err != nil {
		return nil, nil, err
	}

	envSettings, err := loadEnvironment(envPath)
	if err != nil {
		return nil, nil, err
	}

	return repoConfig, envSettings, nil
}

// loadSettings parses the INI settings file and validates the CLI alias
// pair: both keys set, or neither.
func loadSettings(path string) (*RepositoryConfig, error) {
	// The parser's own unquoting is disabled: normalizeQuoted applies
	// the one-pair rule, and stacking the two would strip nested quotes.
	file, err := ini.LoadSources(ini.LoadOptions{PreserveSurroundedQuote: true}, path)
	if err != nil {
		return nil, fmt.Errorf("parsing repository settings file %s: %w", path, err)
	}

	section := file.Section(ini.DefaultSection)
	repoConfig := &RepositoryConfig{
		CLIAlias:       normalizeQuoted(section.Key(AliasKey).String()),
		CLIEntryScript: normalizeQuoted(section.Key(EntryScriptKey).String()),
	}

	if (repoConfig.CLIAlias == "") != (repoConfig.CLIEntryScript == "") {
		return nil, fmt.Errorf("%s and %s must be set together in %s",
			AliasKey, EntryScriptKey, path)
	}
	return repoConfig, nil
}

// loadEnvironment scans the environment file and validates the runtime
// version.
func loadEnvironment(path string) (*EnvironmentSettings, error) {
	version, err := scanEnvFile(path, PythonVersionKey)
	if err != nil {
		return nil, err
	}
	if version == "" {
		return nil, fmt.Errorf("%s is missing or empty in %s", PythonVersionKey, path)
	}
	return &EnvironmentSettings{PythonVersion: version}, nil
}

// normalizeQuoted trims surrounding whitespace and strips exactly one
// matching pair of surrounding single or double quotes. A value of two
// bare quote characters becomes the empty string. No escape processing
// happens inside the quotes.
func normalizeQuoted(value string) string {
	value = strings.TrimSpace(value)
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}
