// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devstrap/devstrap/cmd/devstrap/commands"
)

func TestRoot_TreeIsComplete(t *testing.T) {
	root := commands.Root()

	want := map[string]bool{
		"bootstrap": false,
		"reset":     false,
		"doctor":    false,
		"version":   false,
	}
	for _, sub := range root.Subcommands {
		if _, known := want[sub.Name]; known {
			want[sub.Name] = true
		}
		if sub.Summary == "" {
			t.Errorf("subcommand %q has no summary", sub.Name)
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}

	if root.Run == nil {
		t.Error("expected root Run so plain 'devstrap' bootstraps")
	}
	if root.Flags == nil {
		t.Error("expected root flags so 'devstrap --repo X' works without the subcommand")
	}
}

func TestRoot_BootstrapFlagsAcceptedWithoutSubcommand(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-checkout")

	// The flag must parse at the root; the run then fails on the
	// nonexistent repository, not on the flag itself.
	err := commands.Root().Execute([]string{"--repo", missing})
	if err == nil {
		t.Fatal("expected error for nonexistent repo, got nil")
	}
	if strings.Contains(err.Error(), "unexpected argument") ||
		strings.Contains(err.Error(), "unknown flag") {
		t.Errorf("expected --repo accepted at the root, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("expected error naming %s, got %q", missing, err.Error())
	}
	if _, statErr := os.Stat(missing); !os.IsNotExist(statErr) {
		t.Errorf("expected %s to stay absent", missing)
	}
}

func TestRoot_UnknownCommandErrors(t *testing.T) {
	err := commands.Root().Execute([]string{"bogus-subcommand"})
	if err == nil {
		t.Fatal("expected error for unknown command, got nil")
	}
	if !strings.Contains(err.Error(), "bogus-subcommand") {
		t.Errorf("expected error naming the command, got %q", err.Error())
	}
}
