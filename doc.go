// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package cancellation provides a cooperative cancellation primitive.
//
// A [Signal] propagates a "cancel requested" notification from a single
// owner to any number of observers without polling. Observers receive a
// [Token], which can report the cancellation state and register
// callbacks, but which cannot itself request cancellation.
//
// # Creating a signal
//
// Use [New] to create a standalone Signal, [WithContext] to derive one
// from an existing [context.Context], or [Linked] to combine several
// tokens.
//
//	sig := cancellation.New(cancellation.WithName("ingest"))
//	defer sig.Dispose()
//	go worker(sig.Token())
//	// ...
//	sig.Cancel()
//
// # Observing a token
//
// Long-running loops call [Token.Err] as a checkpoint. It returns
// [ErrOperationCanceled] once cancellation has been requested, which the
// caller is expected to propagate:
//
//	func worker(tok cancellation.Token) error {
//	    for item := range work {
//	        if err := tok.Err(); err != nil {
//	            return err
//	        }
//	        process(item)
//	    }
//	    return nil
//	}
//
// [Token.Done] returns a channel for use in select statements, and
// [Token.Register] arranges for a callback to be invoked when
// cancellation is requested.
//
//	reg, err := tok.Register(func() { conn.Close() })
//	if err != nil {
//	    return err
//	}
//	defer reg.Dispose()
//
// The fixed tokens [None] and [Canceled] can be passed wherever a Token
// is required, but no Signal is available.
//
// # Delivery guarantees
//
// [Signal.Cancel] flips the cancellation flag exactly once and invokes
// every registered callback exactly once, in registration order, on the
// calling goroutine. Callbacks run without any internal lock held, so
// they may register further callbacks, dispose of registrations, or
// dispose of the Signal. A callback registered concurrently with a
// call to Cancel is either stored and later invoked by Cancel, or
// invoked immediately by [Signal.Register]; never both, and never
// neither.
//
// A panic in a callback is recovered so that the remaining callbacks
// are still invoked. Recovered panics are logged, made available from
// [Signal.Errors], and passed to any handler installed with
// [WithErrorHandler].
//
// # Disposal
//
// [Signal.Dispose] disarms a Signal. Any further call to
// [Signal.Register] fails with [ErrObjectDisposed]. Tokens remain
// readable after disposal and continue to report the last known
// cancellation state.
//
// # Integration with other libraries
//
// [Token.Context] exports the cancellation state as a plain
// [context.Context] for libraries that are not token-aware, and
// [WithToken] attaches a Token to an existing context. [FromContext]
// recovers the Token from any context in the chain. [CancelOnReceive]
// cancels a Signal when a value arrives on a channel, which is commonly
// used with [os/signal.Notify].
//
// The [vawter.tech/cancellation/retry] and
// [vawter.tech/cancellation/limit] sub-packages provide token-aware
// retry loops and waits.
//
// # Testing
//
// The [vawter.tech/cancellation/linger] sub-package provides a
// [Tracker] that detects callbacks which were never invoked or
// unregistered. The [vawter.tech/cancellation/metrics] sub-package
// exports the same information to Prometheus.
package cancellation
