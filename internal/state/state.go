// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package state defines the core state-management types.
package state

import (
	"context"
	"errors"
	"runtime/trace"
	"slices"
	"sync"

	"vawter.tech/cancellation/internal/safe"
)

var (
	ErrCanceled = errors.New("operation canceled")
	ErrDisposed = errors.New("object disposed")
)

// A Tracker is notified whenever a callback is registered. The release
// function will be called exactly once, after the callback has been
// invoked, unregistered, or discarded.
type Tracker interface {
	Track() (release func())
}

// Hooks allow the owner of a State to observe its behavior. All hooks
// are invoked without holding the State's mutex.
type Hooks struct {
	OnError func(error) // Receives recovered callback panics.
	Tracker Tracker     // May be nil.
}

type subscriber struct {
	fn      func()
	id      uint64
	release func()
}

// A State holds the cancellation flag, the disposed flag, and the
// ordered list of registered callbacks.
type State struct {
	config any // General-purpose storage.
	done   chan struct{}
	hooks  Hooks

	mu struct {
		sync.Mutex
		canceled     bool
		disposed     bool
		disposeHooks []func()
		errs         []error
		nextID       uint64
		subs         []subscriber // Emptied when canceled.
	}
}

// New constructs a State.
func New(config any, hooks Hooks) *State {
	return &State{
		config: config,
		done:   make(chan struct{}),
		hooks:  hooks,
	}
}

// AddDisposeHook registers an internal callback that will be executed
// when the State is disposed. If the State has already been disposed,
// the callback is executed immediately and this method returns false.
func (s *State) AddDisposeHook(fn func()) (deferred bool) {
	if s.addDisposeHook(fn) {
		return true
	}
	s.call(fn)
	return false
}

// addDisposeHook is a minimal critical section.
func (s *State) addDisposeHook(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mu.disposed {
		return false
	}
	s.mu.disposeHooks = append(s.mu.disposeHooks, fn)
	return true
}

// AddErrors will add any non-nil errors to the State's error slice.
func (s *State) AddErrors(errs ...error) {
	if !slices.ContainsFunc(errs, func(err error) bool { return err != nil }) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, err := range errs {
		if err != nil {
			s.mu.errs = append(s.mu.errs, err)
		}
	}
}

// Cancel sets the cancellation flag and invokes every registered
// callback, in registration order, on the calling goroutine. It returns
// false if cancellation had already been requested.
func (s *State) Cancel() bool {
	toCall, ok := s.cancel()
	if !ok {
		return false
	}

	// We don't execute user code while holding a mutex.
	if len(toCall) > 0 {
		defer trace.StartRegion(context.Background(), "cancellation callbacks").End()
	}
	for _, sub := range toCall {
		s.call(sub.fn)
		sub.release()
	}
	return true
}

// cancel is a one-shot method that flips the flag and drains the
// subscribers.
func (s *State) cancel() (toCall []subscriber, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mu.canceled {
		return nil, false
	}
	s.mu.canceled = true
	close(s.done)

	toCall = s.mu.subs
	s.mu.subs = nil
	return toCall, true
}

// Config returns the configuration object passed to [New].
func (s *State) Config() any { return s.config }

// Dispose marks the State as disposed, which prevents any further
// registrations. Existing subscribers are left untouched. It returns
// false if the State had already been disposed.
func (s *State) Dispose() bool {
	s.mu.Lock()
	if s.mu.disposed {
		s.mu.Unlock()
		return false
	}
	s.mu.disposed = true
	hooks := s.mu.disposeHooks
	s.mu.disposeHooks = nil
	s.mu.Unlock()

	for _, fn := range hooks {
		s.call(fn)
	}
	return true
}

// Done returns a channel that is closed once cancellation has been
// requested.
func (s *State) Done() <-chan struct{} { return s.done }

// Errors will return a clone of the internal slice.
func (s *State) Errors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.mu.errs)
}

func (s *State) IsCanceled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mu.canceled
}

func (s *State) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mu.disposed
}

// Len returns the number of stored callbacks.
func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.mu.subs)
}

// Register adds a callback to be invoked when cancellation is
// requested. The decision to reject, invoke, or store the callback is
// made within a single critical section.
//
// If the State has been disposed, [ErrDisposed] is returned. If
// cancellation has already been requested, the callback is invoked
// immediately and the returned unregister function will be nil.
// Otherwise, the returned function removes the callback.
func (s *State) Register(fn func()) (unregister func(), err error) {
	release := func() {}
	if t := s.hooks.Tracker; t != nil {
		release = t.Track()
	}

	id, invokeNow, err := s.register(fn, release)
	switch {
	case err != nil:
		release()
		return nil, err
	case invokeNow:
		s.call(fn)
		release()
		return nil, nil
	}

	return func() { s.unregister(id) }, nil
}

// register is a minimal critical section.
func (s *State) register(fn, release func()) (id uint64, invokeNow bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mu.disposed {
		return 0, false, ErrDisposed
	}
	if s.mu.canceled {
		return 0, true, nil
	}
	id = s.mu.nextID
	s.mu.nextID++
	s.mu.subs = append(s.mu.subs, subscriber{fn: fn, id: id, release: release})
	return id, false, nil
}

func (s *State) unregister(id uint64) {
	// The subscriber has already been claimed by Cancel.
	select {
	case <-s.done:
		return
	default:
	}

	s.mu.Lock()
	if s.mu.disposed {
		s.mu.Unlock()
		return
	}
	idx := slices.IndexFunc(s.mu.subs, func(sub subscriber) bool { return sub.id == id })
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	release := s.mu.subs[idx].release
	s.mu.subs = slices.Delete(s.mu.subs, idx, idx+1)
	s.mu.Unlock()

	release()
}

// call executes user code, capturing any panic. This method must not be
// called with the mutex held.
func (s *State) call(fn func()) {
	err := safe.Call(fn)
	if err == nil {
		return
	}
	s.AddErrors(err)
	if h := s.hooks.OnError; h != nil {
		h(err)
	}
}
