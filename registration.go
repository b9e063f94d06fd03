// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package cancellation

import "sync/atomic"

// A Registration is returned by [Signal.Register] or [Token.Register].
// Its only purpose is to unregister the callback. The zero value is an
// inert Registration.
type Registration struct {
	unregister atomic.Pointer[func()]
}

// newRegistration accepts a nil function.
func newRegistration(fn func()) *Registration {
	r := &Registration{}
	if fn != nil {
		r.unregister.Store(&fn)
	}
	return r
}

// Dispose unregisters the callback if it has not yet been invoked. It
// is safe to call Dispose multiple times or concurrently with
// [Signal.Cancel]; the callback will be invoked at most once. Calling
// Dispose on a nil Registration is a no-op.
func (r *Registration) Dispose() {
	if r == nil {
		return
	}
	if fn := r.unregister.Swap(nil); fn != nil {
		(*fn)()
	}
}
