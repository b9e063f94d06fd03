// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package cancellation

// CancelOnReceive will cancel the Signal when a value is received from
// the channel or if the channel is closed. CancelOnReceive can be used,
// for example, with [os/signal.Notify]. The background goroutine exits
// once the Signal has been canceled or disposed. If the Signal is
// already canceled or disposed, this function is a no-op.
func CancelOnReceive[T any](s *Signal, ch <-chan T) {
	if s.IsCancellationRequested() {
		return
	}
	disposed := make(chan struct{})
	if !s.st.AddDisposeHook(func() { close(disposed) }) {
		return
	}
	go func() {
		select {
		case <-ch:
			s.Cancel()
		case <-s.Done():
		case <-disposed:
		}
	}()
}
