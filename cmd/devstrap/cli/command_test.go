// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestExecute_DispatchesSubcommand(t *testing.T) {
	ran := false
	root := &Command{
		Name: "devstrap",
		Subcommands: []*Command{
			{
				Name: "reset",
				Run: func(args []string) error {
					ran = true
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"reset"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Error("expected subcommand to run")
	}
}

func TestExecute_RootRunWithoutArgs(t *testing.T) {
	ran := false
	root := &Command{
		Name:        "devstrap",
		Subcommands: []*Command{{Name: "reset", Run: func([]string) error { return nil }}},
		Run: func(args []string) error {
			ran = true
			return nil
		},
	}

	if err := root.Execute(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Error("expected root Run for bare invocation")
	}
}

func TestExecute_UnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name:        "devstrap",
		Subcommands: []*Command{{Name: "reset", Run: func([]string) error { return nil }}},
		Run:         func([]string) error { return nil },
	}

	err := root.Execute([]string{"rest"})
	if err == nil {
		t.Fatal("expected error for unknown command, got nil")
	}
	if !strings.Contains(err.Error(), `did you mean "reset"`) {
		t.Errorf("expected suggestion, got %q", err.Error())
	}
}

func TestExecute_UnknownFlagSuggests(t *testing.T) {
	command := &Command{
		Name: "bootstrap",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("bootstrap", pflag.ContinueOnError)
			flags.String("repo", "", "repository root")
			return flags
		},
		Run: func([]string) error { return nil },
	}

	err := command.Execute([]string{"--rpo", "x"})
	if err == nil {
		t.Fatal("expected error for unknown flag, got nil")
	}
	if !strings.Contains(err.Error(), "--repo") {
		t.Errorf("expected flag suggestion, got %q", err.Error())
	}
}

func TestExecute_FlagsParsedBeforeRun(t *testing.T) {
	var repo string
	var got []string
	command := &Command{
		Name: "bootstrap",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("bootstrap", pflag.ContinueOnError)
			flags.StringVar(&repo, "repo", "", "repository root")
			return flags
		},
		Run: func(args []string) error {
			got = args
			return nil
		},
	}

	if err := command.Execute([]string{"--repo", "/checkout", "extra"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo != "/checkout" {
		t.Errorf("expected repo flag parsed, got %q", repo)
	}
	if len(got) != 1 || got[0] != "extra" {
		t.Errorf("expected positional args after flags, got %v", got)
	}
}

func TestPrintHelp_ListsSubcommandsAndExamples(t *testing.T) {
	root := &Command{
		Name:    "devstrap",
		Summary: "Bootstrap development environments",
		Subcommands: []*Command{
			{Name: "reset", Summary: "Discard bootstrap state"},
		},
		Examples: []Example{
			{Description: "Bootstrap the current checkout", Command: "devstrap"},
		},
	}

	var out bytes.Buffer
	root.PrintHelp(&out)

	help := out.String()
	for _, want := range []string{"reset", "Discard bootstrap state", "devstrap <command>", "# Bootstrap the current checkout"} {
		if !strings.Contains(help, want) {
			t.Errorf("expected %q in help output:\n%s", want, help)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"reset", "reset", 0},
		{"rest", "reset", 1},
		{"bootsrap", "bootstrap", 1},
		{"doctor", "reset", 6},
	}
	for _, c := range cases {
		if got := levenshtein(c.a, c.b); got != c.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
