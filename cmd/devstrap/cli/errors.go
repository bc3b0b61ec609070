// Copyright 2026 The Devstrap Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// UsageError reports invalid command-line input: stray positional
// arguments, unparseable values, missing required flags. Distinct from
// runtime failures so main can keep the exit-code handling uniform
// while the message tells the user to fix the invocation.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

// Unwrap preserves the full error chain for errors.Is / errors.As.
func (e *UsageError) Unwrap() error { return e.Err }

// Validation creates a usage error: the caller provided bad input.
func Validation(format string, args ...any) *UsageError {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}
