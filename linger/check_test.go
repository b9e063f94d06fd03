// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package linger

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"vawter.tech/cancellation"
)

func TestCheckEmpty(t *testing.T) {
	rec := NewRecorder(1)
	CheckClean(t, rec)
}

func TestLingering(t *testing.T) {
	here := make([]uintptr, 1)
	runtime.Callers(1, here)

	r := require.New(t)

	rec := NewRecorder(1)
	rec.data.Store(uintptr(1), here)

	fake := &fakeTB{t: t}
	CheckClean(fake, rec)

	r.True(fake.failed)
	r.Len(fake.msgs, 4)
	r.Equal("1 pending cancellation callbacks", fake.msgs[0])
	r.Equal("  callback 1 registered at:", fake.msgs[1])
	r.Contains(fake.msgs[2], "vawter.tech/cancellation/linger.TestLingering")
	r.Contains(fake.msgs[2], "check_test.go:")
	r.Contains(fake.msgs[3], "before the Signal is disposed")
}

// A Registration disposed after its Signal remains pending.
func TestLingeringAfterSignalDispose(t *testing.T) {
	r := require.New(t)

	rec := NewRecorder(sampleDepth)
	sig := cancellation.New(cancellation.WithTracker(rec))
	_, err := sig.Register(func() {})
	r.NoError(err)
	reg, err := sig.Register(func() {})
	r.NoError(err)

	sig.Dispose()
	reg.Dispose()

	fake := &fakeTB{t: t}
	CheckClean(fake, rec)
	r.True(fake.failed)
	r.Equal("2 pending cancellation callbacks", fake.msgs[0])
	r.Contains(fake.msgs, "  callback 2 registered at:")

	// Canceling the Signal releases both.
	sig.Cancel()
	CheckClean(t, rec)
}

type fakeTB struct {
	failed bool
	msgs   []string
	t      *testing.T
}

func (f *fakeTB) Helper() {}
func (f *fakeTB) Errorf(s string, a ...any) {
	f.failed = true
	f.msgs = append(f.msgs, fmt.Sprintf(s, a...))
	f.t.Logf(s, a...)
}
