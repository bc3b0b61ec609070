// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-tree framework for the devstrap
// binary: declarative commands with pflag flag sets, structured help
// output, typo suggestions for unknown commands and flags, and the
// loggers commands run with. Commands are assembled into a tree in
// cmd/devstrap/commands and dispatched by Execute from main.
package cli
