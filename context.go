// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package cancellation

import (
	"context"
	"errors"
	"time"
)

// errCanceledOperation is reported by contexts derived from a Token.
var errCanceledOperation = errors.Join(context.Canceled, ErrOperationCanceled)

// tokenKey is a [context.Context.Value] key for a Token.
type tokenKey struct{}

// FromContext returns the Token associated with the context by
// [Token.Context] or [WithToken]. It returns false if the argument is
// not associated with a Token.
func FromContext(ctx context.Context) (Token, bool) {
	tok, ok := ctx.Value(tokenKey{}).(Token)
	return tok, ok
}

// WithToken returns a copy of the parent context that is canceled when
// the Token is canceled, when the parent is done, or when the returned
// CancelFunc is called, whichever happens first. If the Token is
// canceled, the context's [context.Cause] will be both
// [context.Canceled] and [ErrOperationCanceled]. The Token can be
// retrieved from the returned context with [FromContext].
//
// If the Token's [Signal] has already been disposed, the returned
// context will be canceled with [ErrObjectDisposed] as its cause.
//
// Calling the CancelFunc releases the registration made on the Token.
func WithToken(parent context.Context, tok Token) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(context.WithValue(parent, tokenKey{}, tok))
	reg, err := tok.Register(func() { cancel(errCanceledOperation) })
	if err != nil {
		cancel(err)
	}
	return ctx, func() {
		reg.Dispose()
		cancel(context.Canceled)
	}
}

// Context adapts the Token into a [context.Context]. This can be used
// whenever it is necessary to call other APIs that should be made aware
// of the cancellation request.
//
// The returned context has the following behaviors:
//   - The [context.Context.Done] method returns [Token.Done].
//   - The [context.Context.Err] method returns an error that is both
//     [context.Canceled] and [ErrOperationCanceled] once cancellation
//     has been requested. Otherwise, it returns nil.
//   - There is no deadline.
//   - The Token can be retrieved with [FromContext].
func (t Token) Context() context.Context {
	return &tokenCtx{tok: t}
}

// tokenCtx just swizzles the Token's method set.
type tokenCtx struct {
	tok Token
}

var _ context.Context = (*tokenCtx)(nil)

func (c *tokenCtx) Deadline() (deadline time.Time, ok bool) { return }

func (c *tokenCtx) Done() <-chan struct{} { return c.tok.Done() }

func (c *tokenCtx) Err() error {
	if c.tok.IsCancellationRequested() {
		return errCanceledOperation
	}
	return nil
}

func (c *tokenCtx) Value(key any) any {
	if _, ok := key.(tokenKey); ok {
		return c.tok
	}
	return nil
}

// String is for debugging use only.
func (c *tokenCtx) String() string {
	if c.tok.src != nil {
		return "cancellation.Token(" + c.tok.src.config().name + ").Context"
	}
	if c.tok.canceled {
		return "cancellation.Canceled.Context"
	}
	return "cancellation.None.Context"
}
