// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package safe contains utilities for executing user-provided
// callbacks.
package safe

import (
	"fmt"
	"runtime"
	"strings"
)

const captureDepth = 32

// A RecoveredError associates a recovered panic with a stack trace.
type RecoveredError struct {
	Err   error
	Stack []uintptr
}

// Error implements error.
func (e *RecoveredError) Error() string {
	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "recovered: %v\n", e.Err)
	frames := runtime.CallersFrames(e.Stack)
	for {
		frame, more := frames.Next()
		_, _ = fmt.Fprintf(&sb, "%s ( %s:%d )\n", frame.Function, frame.File, frame.Line)
		if !more {
			return sb.String()
		}
	}
}

// String is for debugging use only.
func (e *RecoveredError) String() string {
	return e.Error()
}

// Unwrap returns the enclosed error.
func (e *RecoveredError) Unwrap() error { return e.Err }

// Call executes the callback. If the callback panics, a
// [RecoveredError] will be returned.
func Call(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err = recovered(r)
	}()
	fn()
	return nil
}

// recovered must be called from the deferred function so that the
// captured stack begins at the panic site.
func recovered(r any) *RecoveredError {
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", r)
	}
	stack := make([]uintptr, captureDepth)
	stack = stack[:runtime.Callers(3, stack)]
	return &RecoveredError{
		Err:   err,
		Stack: stack,
	}
}
