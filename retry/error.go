// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package retry

import "fmt"

// MaxAttemptsError is returned by [Run] when the task has failed too
// many times. It wraps the most recent error.
type MaxAttemptsError struct {
	Attempts int
	Err      error
}

// Error implements error.
func (e *MaxAttemptsError) Error() string {
	return fmt.Sprintf("max attempts (%d) reached: %v", e.Attempts, e.Err)
}

// Unwrap returns the enclosed error.
func (e *MaxAttemptsError) Unwrap() error { return e.Err }
