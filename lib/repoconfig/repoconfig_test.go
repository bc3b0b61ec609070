// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

package repoconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeRepo writes a settings file and environment file into a temp
// directory and returns their paths.
func writeRepo(t *testing.T, settings, envFile string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "repository.ini")
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(settingsPath, []byte(settings), 0644); err != nil {
		t.Fatalf("writing settings file: %v", err)
	}
	if err := os.WriteFile(envPath, []byte(envFile), 0644); err != nil {
		t.Fatalf("writing env file: %v", err)
	}
	return settingsPath, envPath
}

func TestLoad_FullConfiguration(t *testing.T) {
	settingsPath, envPath := writeRepo(t,
		"CUSTOM_CLI_ALIAS = myapp\nCUSTOM_CLI_ENTRY_SCRIPT = tools/cli.py\n",
		"PYTHON_VERSION=3.11\n")

	repoConfig, envSettings, err := Load(settingsPath, envPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repoConfig.CLIAlias != "myapp" {
		t.Errorf("expected alias myapp, got %q", repoConfig.CLIAlias)
	}
	if repoConfig.CLIEntryScript != "tools/cli.py" {
		t.Errorf("expected entry script tools/cli.py, got %q", repoConfig.CLIEntryScript)
	}
	if envSettings.PythonVersion != "3.11" {
		t.Errorf("expected python version 3.11, got %q", envSettings.PythonVersion)
	}
}

func TestLoad_QuotedSettingsValuesStripOnePair(t *testing.T) {
	settingsPath, envPath := writeRepo(t,
		"CUSTOM_CLI_ALIAS = \"'myapp'\"\nCUSTOM_CLI_ENTRY_SCRIPT = 'tools/cli.py'\n",
		"PYTHON_VERSION=3.11\n")

	repoConfig, _, err := Load(settingsPath, envPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Exactly one pair comes off; the inner single quotes survive.
	if repoConfig.CLIAlias != "'myapp'" {
		t.Errorf("expected alias 'myapp' with inner quotes, got %q", repoConfig.CLIAlias)
	}
	if repoConfig.CLIEntryScript != "tools/cli.py" {
		t.Errorf("expected entry script tools/cli.py, got %q", repoConfig.CLIEntryScript)
	}
}

func TestLoad_NoAliasPair(t *testing.T) {
	settingsPath, envPath := writeRepo(t, "", "PYTHON_VERSION=3.12\n")

	repoConfig, _, err := Load(settingsPath, envPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repoConfig.CLIAlias != "" || repoConfig.CLIEntryScript != "" {
		t.Errorf("expected empty alias pair, got %q/%q",
			repoConfig.CLIAlias, repoConfig.CLIEntryScript)
	}
}

func TestLoad_PartialAliasPairFails(t *testing.T) {
	settingsPath, envPath := writeRepo(t,
		"CUSTOM_CLI_ALIAS = myapp\n",
		"PYTHON_VERSION=3.11\n")

	_, _, err := Load(settingsPath, envPath)
	if err == nil {
		t.Fatal("expected error for partial alias pair, got nil")
	}
	if !strings.Contains(err.Error(), AliasKey) || !strings.Contains(err.Error(), EntryScriptKey) {
		t.Errorf("expected error naming both keys, got %q", err.Error())
	}
}

func TestLoad_EntryScriptAloneFails(t *testing.T) {
	settingsPath, envPath := writeRepo(t,
		"CUSTOM_CLI_ENTRY_SCRIPT = tools/cli.py\n",
		"PYTHON_VERSION=3.11\n")

	if _, _, err := Load(settingsPath, envPath); err == nil {
		t.Fatal("expected error for partial alias pair, got nil")
	}
}

func TestLoad_MissingSettingsFile(t *testing.T) {
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "repository.ini")
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("PYTHON_VERSION=3.11\n"), 0644); err != nil {
		t.Fatalf("writing env file: %v", err)
	}

	_, _, err := Load(settingsPath, envPath)
	if err == nil {
		t.Fatal("expected error for missing settings file, got nil")
	}
	if !strings.Contains(err.Error(), settingsPath) {
		t.Errorf("expected error naming %s, got %q", settingsPath, err.Error())
	}
}

func TestLoad_MissingEnvFile(t *testing.T) {
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "repository.ini")
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(settingsPath, []byte(""), 0644); err != nil {
		t.Fatalf("writing settings file: %v", err)
	}

	_, _, err := Load(settingsPath, envPath)
	if err == nil {
		t.Fatal("expected error for missing env file, got nil")
	}
	if !strings.Contains(err.Error(), envPath) {
		t.Errorf("expected error naming %s, got %q", envPath, err.Error())
	}
}

func TestLoad_MissingPythonVersion(t *testing.T) {
	settingsPath, envPath := writeRepo(t, "", "OTHER_KEY=value\n")

	_, _, err := Load(settingsPath, envPath)
	if err == nil {
		t.Fatal("expected error for missing PYTHON_VERSION, got nil")
	}
	if !strings.Contains(err.Error(), PythonVersionKey) {
		t.Errorf("expected error naming %s, got %q", PythonVersionKey, err.Error())
	}
}

func TestLoad_EmptyQuotedPythonVersionFails(t *testing.T) {
	settingsPath, envPath := writeRepo(t, "", "PYTHON_VERSION=\"\"\n")

	if _, _, err := Load(settingsPath, envPath); err == nil {
		t.Fatal("expected error for empty quoted PYTHON_VERSION, got nil")
	}
}

func TestScanEnvFile_LastOccurrenceWins(t *testing.T) {
	_, envPath := writeRepo(t, "", "PYTHON_VERSION=3.10\nPYTHON_VERSION=3.12\n")

	value, err := scanEnvFile(envPath, PythonVersionKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "3.12" {
		t.Errorf("expected last occurrence 3.12, got %q", value)
	}
}

func TestScanEnvFile_IgnoresUnrecognizedLines(t *testing.T) {
	_, envPath := writeRepo(t, "",
		"# comment without equals\nEDITOR=vim\n  PYTHON_VERSION = 3.11 \nPATH_EXTRA=/opt/bin\n")

	value, err := scanEnvFile(envPath, PythonVersionKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "3.11" {
		t.Errorf("expected 3.11, got %q", value)
	}
}

func TestNormalizeQuoted(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`"abc"`, "abc"},
		{`'abc'`, "abc"},
		{`""`, ""},
		{`''`, ""},
		{`abc`, "abc"},
		{`  abc  `, "abc"},
		{`"abc'`, `"abc'`},
		{`"`, `"`},
		{`'a"b'`, `a"b`},
		{``, ``},
	}
	for _, c := range cases {
		if got := normalizeQuoted(c.in); got != c.want {
			t.Errorf("normalizeQuoted(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
