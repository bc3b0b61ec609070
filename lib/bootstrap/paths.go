// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/devstrap/devstrap/lib/config"
)

// RepositoryPaths is the immutable set of absolute locations the
// bootstrap workflow touches. All paths are derived once from the
// resolved repository root via [DerivePaths] and never recomputed
// mid-run.
type RepositoryPaths struct {
	// Root is the resolved repository root.
	Root string

	// CacheDir holds the sentinel file and the run log.
	CacheDir string

	// SentinelFile marks a completed bootstrap by its existence.
	SentinelFile string

	// VenvDir is the virtual environment directory.
	VenvDir string

	// VenvBinDir is the virtual environment's binary directory
	// (bin on POSIX hosts, Scripts on Windows).
	VenvBinDir string

	// ActivationScript is the venv activation script.
	ActivationScript string

	// Interpreter is the virtual environment's interpreter binary.
	Interpreter string

	// EnvFile is the developer environment file.
	EnvFile string

	// SettingsFile is the repository settings file.
	SettingsFile string
}

// sentinelName is the sentinel file name inside the cache directory.
const sentinelName = "initialized"

// DerivePaths computes every bootstrap location from the repository
// root, the tool configuration's directory and file names, and the
// platform's venv layout.
func DerivePaths(root string, cfg *config.Config, platform Platform) RepositoryPaths {
	cacheDir := filepath.Join(root, cfg.CacheDir)
	venvDir := filepath.Join(root, cfg.VenvDir)
	venvBinDir := filepath.Join(venvDir, platform.VenvBinDirName())

	return RepositoryPaths{
		Root:             root,
		CacheDir:         cacheDir,
		SentinelFile:     filepath.Join(cacheDir, sentinelName),
		VenvDir:          venvDir,
		VenvBinDir:       venvBinDir,
		ActivationScript: filepath.Join(venvBinDir, "activate"),
		Interpreter:      filepath.Join(venvBinDir, platform.InterpreterName()),
		EnvFile:          filepath.Join(root, cfg.EnvFile),
		SettingsFile:     filepath.Join(root, cfg.SettingsFile),
	}
}

// FindRoot locates the repository root by walking up from startDir
// until a directory containing the settings file is found, the way git
// tools locate .git. The returned path is absolute.
func FindRoot(startDir, settingsFileName string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", startDir, err)
	}

	for {
		candidate := filepath.Join(dir, settingsFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found in %s or any parent directory; "+
				"run devstrap inside a repository checkout or pass --repo",
				settingsFileName, startDir)
		}
		dir = parent
	}
}
