// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package version holds the build version stamped into release binaries.
package version

// Version is the devstrap release version. Overridden at build time:
//
//	go build -ldflags "-X github.com/devstrap/devstrap/lib/version.Version=v0.3.0"
var Version = "dev"

// String returns the full version line printed by "devstrap version".
func String() string {
	return "devstrap " + Version
}
