// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package retry contains token-aware retry loops.
//
// [Run] is a general-purpose building block for retryable behaviors
// using a [Classifier] function to drive the retry policy. An
// exponential [Backoff] and a trivial [Loop] implementation are
// provided. No attempt is made once the [cancellation.Token] has been
// canceled.
package retry

import (
	"errors"
	"runtime/trace"

	"vawter.tech/cancellation"
)

// A Classifier is a function that determines if an error is retryable.
// Each call to [Run] is associated with a state value, which is
// initially the zero value for the S type. If the task fails, the error
// and the current state are passed to the Classifier. The Classifier
// may return an error to fail the task if it should not be retried.
//
// If the task should be retried, the Classifier returns a channel that
// emits a value when the task should be retried (e.g.: [time.After]).
// Closing the channel without emitting a value will abandon the retry,
// failing with the error most recently passed to the Classifier.
//
// If the token is canceled while waiting for the retry signal, the task
// will be failed with the previously examined error joined with
// [cancellation.ErrOperationCanceled].
//
// If the returned channel and error are both nil, the error will be
// considered to have been handled by the Classifier function and the
// task will be considered a success.
type Classifier[S, N any] func(tok cancellation.Token, state *S, err error) (<-chan N, error)

// A Task is retried by [Run].
type Task func(tok cancellation.Token) error

// Run executes the task until it succeeds, the Classifier rejects an
// error, or the token is canceled. If the token has already been
// canceled, the task is not executed and
// [cancellation.ErrOperationCanceled] is returned.
func Run[S, N any](tok cancellation.Token, fn Classifier[S, N], task Task) error {
	var state S
	for {
		if err := tok.Err(); err != nil {
			return err
		}
		// Make the attempt.
		err := task(tok)
		if err == nil {
			return nil
		}
		// Classify the error.
		next, fail := fn(tok, &state, err)
		// Classifier is rejecting the error.
		if fail != nil {
			return fail
		}
		// Classifier ate the error condition.
		if next == nil {
			return nil
		}
		// Wait for a decision.
		if err := waitOnChannel(tok, next, err); err != nil {
			return err
		}
	}
}

func waitOnChannel[N any](tok cancellation.Token, next <-chan N, err error) error {
	defer trace.StartRegion(tok.Context(), "retry wait").End()
	select {
	case _, ok := <-next:
		if ok {
			return nil
		}
		return err
	case <-tok.Done():
		return errors.Join(err, cancellation.ErrOperationCanceled)
	}
}
