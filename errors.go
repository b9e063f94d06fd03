// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package cancellation

import (
	"vawter.tech/cancellation/internal/safe"
	"vawter.tech/cancellation/internal/state"
)

// ErrObjectDisposed is returned when registering a callback with a
// [Signal] that has been disposed. The Signal should be considered
// permanently inert.
var ErrObjectDisposed = state.ErrDisposed

// ErrOperationCanceled is returned by [Token.Err] once cancellation has
// been requested.
var ErrOperationCanceled = state.ErrCanceled

// A RecoveredError is recorded when a registered callback panics.
type RecoveredError = safe.RecoveredError
