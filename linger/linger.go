// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package linger contains a utility for reporting on where lingering
// callbacks were originally registered.
package linger

import (
	"runtime"
	"sync"
	"sync/atomic"

	"vawter.tech/cancellation"
)

// This value is sensitive to the code structure.
const callersOffset = 4

// NewRecorder constructs a [Recorder] that samples the call stack at the
// requested depth. A depth of 1 will record the location at which
// [cancellation.Signal.Register] was executed. For callbacks registered
// through [cancellation.Token.Register], the first recorded frame is
// Token.Register itself, so a depth of at least 2 is needed to reach
// the caller.
func NewRecorder(depth int) *Recorder {
	return &Recorder{depth: depth}
}

// A Recorder can be attached to a [cancellation.Signal] with
// [cancellation.WithTracker] to record the call stack where each
// callback was registered. It is primarily useful for testing
// scenarios, to ensure that every registration is eventually disposed
// of or invoked.
type Recorder struct {
	counter atomic.Uintptr
	data    sync.Map
	depth   int
}

var _ cancellation.Tracker = (*Recorder)(nil)

// Callers returns a snapshot of the caller stacks associated with any
// callbacks that are currently registered.
func (r *Recorder) Callers() [][]uintptr {
	var ret [][]uintptr
	r.data.Range(func(_, value any) bool {
		ret = append(ret, value.([]uintptr))
		return true
	})
	return ret
}

// Track implements [cancellation.Tracker].
func (r *Recorder) Track() (release func()) {
	pc := make([]uintptr, r.depth)
	pc = pc[:runtime.Callers(callersOffset, pc)]

	id := r.counter.Add(1)
	r.data.Store(id, pc)

	return func() { r.data.Delete(id) }
}
