// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package safe

import (
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// requireStack asserts that the RecoveredError has a non-empty Stack
// whose frames include the named function.
func requireStack(r *require.Assertions, err error, funcName string) {
	var rec *RecoveredError
	r.ErrorAs(err, &rec)
	r.NotEmpty(rec.Stack)

	frames := runtime.CallersFrames(rec.Stack)
	var found bool
	for {
		frame, more := frames.Next()
		if strings.Contains(frame.Function, funcName) {
			found = true
			break
		}
		if !more {
			break
		}
	}
	r.True(found, "expected stack to contain %q, got:\n%s",
		funcName, rec.String())
}

func TestCall(t *testing.T) {
	r := require.New(t)

	// Normal call.
	r.NoError(Call(func() {}))

	// Panic with error.
	boom := errors.New("boom")
	err := Call(func() { panic(boom) })
	r.ErrorIs(err, boom)
	requireStack(r, err, "TestCall")

	// Panic with non-error.
	err = Call(func() { panic("yikes") })
	r.ErrorContains(err, "yikes")
	requireStack(r, err, "TestCall")
}

func TestCallNil(t *testing.T) {
	r := require.New(t)

	// A nil function panics with a runtime error, which is recovered.
	var fn func()
	err := Call(fn)
	var rec *RecoveredError
	r.ErrorAs(err, &rec)
	var rtErr runtime.Error
	r.ErrorAs(err, &rtErr)
}
