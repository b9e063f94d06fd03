// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package limit provides token-aware waits for concurrency and rate
// limits.
//
// A blocked caller is released with
// [cancellation.ErrOperationCanceled] as soon as its
// [cancellation.Token] is canceled.
package limit

import (
	"errors"
	"runtime/trace"
	"sync"

	"golang.org/x/time/rate"
	"vawter.tech/cancellation"
)

// Concurrency limits the number of callers that may hold a slot at
// the same time.
type Concurrency struct {
	ch chan struct{}
}

// NewConcurrency constructs a Concurrency that allows at most limit
// slots to be held.
func NewConcurrency(limit int) *Concurrency {
	if limit <= 0 {
		panic(errors.New("limit must be greater than zero"))
	}
	return &Concurrency{ch: make(chan struct{}, limit)}
}

// Acquire blocks until a slot is available or the token is canceled.
// The returned release function must be called to return the slot; it
// is safe to call more than once.
func (c *Concurrency) Acquire(tok cancellation.Token) (release func(), err error) {
	if err := tok.Err(); err != nil {
		return nil, err
	}

	// Fast-path: A concurrency slot is available.
	select {
	case c.ch <- struct{}{}:
		return c.releaser(), nil
	default:
	}

	defer trace.StartRegion(tok.Context(), "concurrency wait").End()

	select {
	case c.ch <- struct{}{}:
		return c.releaser(), nil
	case <-tok.Done():
		return nil, cancellation.ErrOperationCanceled
	}
}

// Len returns the number of slots currently held.
func (c *Concurrency) Len() int { return len(c.ch) }

func (c *Concurrency) releaser() func() {
	return sync.OnceFunc(func() { <-c.ch })
}

// Rate is a wrapper around a [rate.Limiter] whose waits are
// interrupted by a [cancellation.Token].
type Rate struct {
	l *rate.Limiter
}

// NewRate constructs a Rate that allows r events per second, with
// bursts of up to b events.
func NewRate(r float64, b int) *Rate {
	return &Rate{l: rate.NewLimiter(rate.Limit(r), b)}
}

// Wait blocks until an event is permitted or the token is canceled.
func (r *Rate) Wait(tok cancellation.Token) error {
	if err := tok.Err(); err != nil {
		return err
	}

	// Fast-path: there's capacity.
	if r.l.Allow() {
		return nil
	}

	defer trace.StartRegion(tok.Context(), "rate limit wait").End()

	if err := r.l.Wait(tok.Context()); err != nil {
		if errors.Is(err, cancellation.ErrOperationCanceled) {
			return cancellation.ErrOperationCanceled
		}
		// Report any other error.
		return err
	}
	return nil
}
