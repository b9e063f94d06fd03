// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package cancellation

import (
	"fmt"
	"log/slog"

	"vawter.tech/cancellation/internal/safe"
	"vawter.tech/cancellation/internal/state"
)

// A Signal is the owner-side handle of a cancellation flag. Consumers
// should be given a [Token] via [Signal.Token] rather than the Signal
// itself.
//
// A Signal has two one-shot transitions. [Signal.Cancel] requests
// cancellation and notifies every registered callback exactly once.
// [Signal.Dispose] disarms the Signal so that no further callbacks may
// be registered. Both transitions are idempotent.
//
// All methods on a Signal are safe for concurrent use.
type Signal struct {
	st *state.State
}

// New returns a ready-to-use Signal.
func New(opts ...Option) *Signal {
	cfg := newConfig(opts)
	s := &Signal{}
	s.st = state.New(cfg, state.Hooks{
		OnError: s.reportError,
		Tracker: cfg.tracker,
	})
	return s
}

// Cancel requests cancellation. The first call sets the flag and then
// invokes every registered callback, in registration order, on the
// calling goroutine. Callbacks are invoked without holding any internal
// lock, so they may freely call back into the Signal. Subsequent calls
// are no-ops.
//
// A panic in one callback will not prevent the remaining callbacks from
// being invoked. See [Signal.Errors] and [WithErrorHandler].
func (s *Signal) Cancel() {
	if s.st.Cancel() {
		s.config().logger.Debug("cancellation requested")
	}
}

// Dispose disarms the Signal. Subsequent calls to [Signal.Register]
// will fail with [ErrObjectDisposed]. Callbacks that have already been
// registered are left in place and will still be invoked if
// [Signal.Cancel] is called, however unregistering them becomes a
// no-op. Dispose also releases any links created by [WithContext] or
// [Linked]. Subsequent calls are no-ops.
func (s *Signal) Dispose() {
	if s.st.Dispose() {
		s.config().logger.Debug("disposed")
	}
}

// Done returns a channel that is closed once cancellation has been
// requested.
func (s *Signal) Done() <-chan struct{} { return s.st.Done() }

// Errors returns the panics recovered from registered callbacks. Each
// error will be a [RecoveredError].
func (s *Signal) Errors() []error { return s.st.Errors() }

// IsCancellationRequested returns true once [Signal.Cancel] has been
// called.
func (s *Signal) IsCancellationRequested() bool { return s.st.IsCanceled() }

// IsDisposed returns true once [Signal.Dispose] has been called.
func (s *Signal) IsDisposed() bool { return s.st.IsDisposed() }

// Register arranges for fn to be called when cancellation is
// requested. The function must not be nil.
//
// If the Signal has been disposed, [ErrObjectDisposed] is returned and
// fn will never be called. If cancellation has already been requested,
// fn is invoked synchronously before Register returns and the returned
// Registration is inert. Otherwise, fn is stored until [Signal.Cancel]
// is called or the returned Registration is disposed.
func (s *Signal) Register(fn func()) (*Registration, error) {
	unregister, err := s.st.Register(fn)
	if err != nil {
		return nil, err
	}
	return newRegistration(unregister), nil
}

// String is for debugging use only.
func (s *Signal) String() string {
	return fmt.Sprintf("%s: (%d callbacks) (%d errors) (canceled=%t) (disposed=%t)",
		s.config().name, s.st.Len(), len(s.st.Errors()), s.st.IsCanceled(), s.st.IsDisposed())
}

// Token returns a read-only view of the Signal.
func (s *Signal) Token() Token { return Token{src: s} }

func (s *Signal) reportError(err error) {
	s.config().logger.Error("cancellation callback panicked", slog.Any("error", err))
	if h := s.config().errHandler; h != nil {
		// The handler is user code, too.
		if hErr := safe.Call(func() { h(err) }); hErr != nil {
			s.config().logger.Error("error handler panicked", slog.Any("error", hErr))
		}
	}
}

func (s *Signal) config() *config {
	return s.st.Config().(*config)
}
