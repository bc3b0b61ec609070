// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

package bootstrap

import "runtime"

// Platform captures the host-dependent naming the bootstrap workflow
// needs: the interpreter binary name, the virtual environment's binary
// directory, and the line separator for generated text. It is resolved
// once at startup and passed down explicitly, never re-read mid-run.
type Platform struct {
	// GOOS is the host operating system, as in runtime.GOOS.
	GOOS string
}

// CurrentPlatform resolves the platform for the running process.
func CurrentPlatform() Platform {
	return Platform{GOOS: runtime.GOOS}
}

// Windows reports whether the host is a Windows machine.
func (p Platform) Windows() bool {
	return p.GOOS == "windows"
}

// InterpreterName is the interpreter binary name inside the virtual
// environment's binary directory.
func (p Platform) InterpreterName() string {
	if p.Windows() {
		return "python.exe"
	}
	return "python"
}

// VenvBinDirName is the name of the virtual environment's binary
// directory.
func (p Platform) VenvBinDirName() string {
	if p.Windows() {
		return "Scripts"
	}
	return "bin"
}

// LineSeparator is the native line terminator for generated text: the
// sentinel file and the activation-script block.
func (p Platform) LineSeparator() string {
	if p.Windows() {
		return "\r\n"
	}
	return "\n"
}
