// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package cancellation

import "context"

// WithContext returns a new Signal that will be canceled when the
// context is done. The link to the context is released when the Signal
// is disposed.
func WithContext(ctx context.Context, opts ...Option) *Signal {
	s := New(opts...)
	stop := context.AfterFunc(ctx, s.Cancel)
	s.st.AddDisposeHook(func() { stop() })
	return s
}

// Linked returns a new Signal that will be canceled when any of the
// source tokens is canceled. If a source token has already been
// canceled, the returned Signal will be canceled as well. The
// registrations made on the source tokens are released when the
// returned Signal is disposed.
//
// An error is returned if any source token belongs to a Signal that has
// been disposed.
func Linked(sources []Token, opts ...Option) (*Signal, error) {
	s := New(opts...)
	for _, src := range sources {
		reg, err := src.Register(s.Cancel)
		if err != nil {
			s.Dispose()
			return nil, err
		}
		s.st.AddDisposeHook(reg.Dispose)
	}
	return s, nil
}
