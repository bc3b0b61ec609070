// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestRun_SuccessStatus(t *testing.T) {
	var out, errOut bytes.Buffer
	r := &Runner{Stdout: &out, Stderr: &errOut}

	status, err := r.Run(context.Background(), t.TempDir(), "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != 0 {
		t.Errorf("expected status 0, got %d", status)
	}
	if !strings.Contains(out.String(), "hello") {
		t.Errorf("expected command output in stdout, got %q", out.String())
	}
}

func TestRun_NonZeroStatusIsNotError(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{Stdout: &out, Stderr: &out}

	status, err := r.Run(context.Background(), t.TempDir(), "sh", "-c", "exit 3")
	if err != nil {
		t.Fatalf("non-zero exit should not be an error, got: %v", err)
	}
	if status != 3 {
		t.Errorf("expected status 3, got %d", status)
	}
}

func TestRun_BannerIdentifiesCommand(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{Stdout: &out, Stderr: &out}

	if _, err := r.Run(context.Background(), t.TempDir(), "sh", "-c", "true"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "running: sh -c true") {
		t.Errorf("expected banner naming the command, got %q", out.String())
	}
}

func TestRun_RunsInDirectory(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	r := &Runner{Stdout: &out, Stderr: &out}

	if _, err := r.Run(context.Background(), dir, "sh", "-c", "pwd"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), dir) {
		t.Errorf("expected command to run in %s, output: %q", dir, out.String())
	}
}

func TestRun_TimeoutIsFatal(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{Timeout: 50 * time.Millisecond, Stdout: &out, Stderr: &out}

	_, err := r.Run(context.Background(), t.TempDir(), "sh", "-c", "sleep 5")
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("expected timeout in error, got %q", err.Error())
	}
}

func TestRun_MissingBinary(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{Stdout: &out, Stderr: &out}

	_, err := r.Run(context.Background(), t.TempDir(), "devstrap-no-such-binary")
	if err == nil {
		t.Fatal("expected error for missing binary, got nil")
	}
}

func TestCommandLine(t *testing.T) {
	if got := CommandLine("poetry", []string{"install", "--no-root"}); got != "poetry install --no-root" {
		t.Errorf("unexpected command line: %q", got)
	}
	if got := CommandLine("poetry", nil); got != "poetry" {
		t.Errorf("unexpected command line: %q", got)
	}
}
