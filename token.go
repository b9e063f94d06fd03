// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package cancellation

// closed is shared by all instances of [Canceled].
var closed = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

var (
	// None is a Token that can never be canceled. It is the zero value
	// of Token.
	None = Token{}

	// Canceled is a Token that has already been canceled.
	Canceled = Token{canceled: true}
)

// A Token is a read-only view of a [Signal]. Tokens are small values
// that may be freely copied and shared between goroutines. A Token
// does not own the lifetime of its Signal.
//
// In addition to tokens obtained from [Signal.Token], there are two
// fixed tokens, [None] and [Canceled], whose state never changes.
type Token struct {
	src      *Signal // Nil for fixed tokens.
	canceled bool    // Only meaningful when src is nil.
}

// CanBeCanceled returns true if the Token is associated with a
// [Signal], regardless of whether cancellation has been requested, or
// if it is [Canceled]. It returns false only for [None].
func (t Token) CanBeCanceled() bool {
	return t.src != nil || t.canceled
}

// Done returns a channel that is closed once cancellation has been
// requested. The channel returned for [None] is nil, and will therefore
// block forever in a select statement.
func (t Token) Done() <-chan struct{} {
	switch {
	case t.src != nil:
		return t.src.Done()
	case t.canceled:
		return closed
	default:
		return nil
	}
}

// Err is the cooperative cancellation checkpoint. It returns
// [ErrOperationCanceled] if cancellation has been requested. Otherwise,
// it returns nil.
//
//	for item := range work {
//	    if err := tok.Err(); err != nil {
//	        return err
//	    }
//	    process(item)
//	}
func (t Token) Err() error {
	if t.IsCancellationRequested() {
		return ErrOperationCanceled
	}
	return nil
}

// IsCancellationRequested reports the state of the underlying
// [Signal]. The value remains available after the Signal has been
// disposed.
func (t Token) IsCancellationRequested() bool {
	if t.src != nil {
		return t.src.IsCancellationRequested()
	}
	return t.canceled
}

// Register arranges for fn to be called when cancellation is
// requested. See [Signal.Register] for details.
//
// Registering with a fixed token never fails. The [Canceled] token will
// invoke fn immediately, while [None] will never invoke fn. In both
// cases, the returned Registration is inert.
func (t Token) Register(fn func()) (*Registration, error) {
	if t.src != nil {
		return t.src.Register(fn)
	}
	if t.canceled {
		fn()
	}
	return &Registration{}, nil
}
