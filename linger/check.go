// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package linger

import (
	"runtime"
)

// CheckClean will record a test error if there are any callbacks still
// registered with the Recorder. A snapshot of the stack where each
// callback was registered will be written into the test log.
//
// A callback is pending until it has been invoked by
// [cancellation.Signal.Cancel] or removed with
// [cancellation.Registration.Dispose]. Disposing of a Registration
// after its Signal has been disposed does not remove the callback, so
// such callbacks are reported until the Signal is canceled.
func CheckClean(t TestingT, r *Recorder) {
	callers := r.Callers()
	if len(callers) == 0 {
		return
	}

	// Improve error messages if we're being called from a real test.
	if x, ok := t.(interface{ Helper() }); ok {
		x.Helper()
	}

	t.Errorf("%d pending cancellation callbacks", len(callers))
	for idx, stack := range callers {
		t.Errorf("  callback %d registered at:", idx+1)
		frames := runtime.CallersFrames(stack)
		for {
			frame, more := frames.Next()
			t.Errorf("    %s ( %s:%d )", frame.Function, frame.File, frame.Line)
			if !more {
				break
			}
		}
	}
	t.Errorf("  cancel the Signal or dispose of each Registration before the Signal is disposed")
}

// TestingT is the subset of [testing.TB] needed by [CheckClean].
type TestingT interface {
	Errorf(string, ...any)
}
