// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

package repoconfig

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// scanEnvFile reads a flat KEY=VALUE file and returns the normalized
// value of the named key. Lines without "=" and lines for other keys
// are ignored. When the key appears more than once the last occurrence
// wins, matching shell assignment semantics. Returns "" when the key is
// absent.
//
// This is deliberately not a full dotenv parser: the bootstrap contract
// fixes the semantics (one recognized key, last assignment wins, one
// surrounding quote pair stripped, no escape expansion), so a library
// parser's comment and escape handling would change behavior.
func scanEnvFile(path, key string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("reading developer environment file %s: %w", path, err)
	}
	defer file.Close()

	value := ""
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		name, rest, found := strings.Cut(scanner.Text(), "=")
		if !found {
			continue
		}
		if strings.TrimSpace(name) != key {
			continue
		}
		value = normalizeQuoted(rest)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading developer environment file %s: %w", path, err)
	}
	return value, nil
}
