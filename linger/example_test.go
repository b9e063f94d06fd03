// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package linger_test

import (
	"fmt"
	"runtime"

	"vawter.tech/cancellation"
	"vawter.tech/cancellation/linger"
)

func ExampleRecorder() {
	// Construct the recorder and attach it to the Signal. The stack
	// depth counts away from Signal.Register(). If Token.Register() is
	// used, the smallest useful depth is 2 frames.
	rec := linger.NewRecorder(2 /* stack depth */)
	sig := cancellation.New(cancellation.WithTracker(rec))
	defer sig.Dispose()

	// Register a callback, but forget to dispose of it.
	_, _ = sig.Token().Register(func() {})

	stacks := rec.Callers()
	for _, stack := range stacks {
		frames := runtime.CallersFrames(stack)
		for {
			frame, more := frames.Next()
			fmt.Println(frame.Function)
			if !more {
				break
			}
		}
	}
	// Output:
	// vawter.tech/cancellation.Token.Register
	// vawter.tech/cancellation/linger_test.ExampleRecorder
}
