// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package cancellation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenContext(t *testing.T) {
	s := New(WithName("ctx"))
	ctx := s.Token().Context()

	t.Run("initial_state", func(t *testing.T) {
		r := require.New(t)
		r.NoError(ctx.Err())
		select {
		case <-ctx.Done():
			r.Fail("should not be done")
		default:
		}
		_, ok := ctx.Deadline()
		r.False(ok)
		r.Equal("cancellation.Token(ctx).Context", ctx.(*tokenCtx).String())
	})

	t.Run("value", func(t *testing.T) {
		r := require.New(t)
		found, ok := FromContext(ctx)
		r.True(ok)
		r.Equal(s.Token(), found)
		r.Nil(ctx.Value("unknown"))
	})

	t.Run("canceled", func(t *testing.T) {
		r := require.New(t)
		s.Cancel()
		r.ErrorIs(ctx.Err(), context.Canceled)
		r.ErrorIs(ctx.Err(), ErrOperationCanceled)
		select {
		case <-ctx.Done():
		default:
			r.Fail("should be done")
		}
	})
}

func TestFixedTokenContext(t *testing.T) {
	r := require.New(t)

	none := None.Context()
	r.Nil(none.Done())
	r.NoError(none.Err())

	canceled := Canceled.Context()
	r.ErrorIs(canceled.Err(), ErrOperationCanceled)
	<-canceled.Done()

	_, ok := FromContext(context.Background())
	r.False(ok)
}

func TestWithToken(t *testing.T) {
	r := require.New(t)

	s := New()
	ctx, cancel := WithToken(t.Context(), s.Token())
	defer cancel()

	found, ok := FromContext(ctx)
	r.True(ok)
	r.Equal(s.Token(), found)
	r.NoError(ctx.Err())
	r.Equal(1, s.st.Len())

	s.Cancel()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		r.Fail("timed out")
	}
	r.ErrorIs(ctx.Err(), context.Canceled)
	r.ErrorIs(context.Cause(ctx), ErrOperationCanceled)
}

func TestWithTokenReleases(t *testing.T) {
	r := require.New(t)

	s := New()
	ctx, cancel := WithToken(t.Context(), s.Token())
	r.Equal(1, s.st.Len())

	cancel()
	r.Zero(s.st.Len())
	r.ErrorIs(ctx.Err(), context.Canceled)
	r.NotErrorIs(context.Cause(ctx), ErrOperationCanceled)
}

func TestWithTokenParent(t *testing.T) {
	r := require.New(t)

	parent, cancelParent := context.WithCancel(t.Context())
	ctx, cancel := WithToken(parent, None)
	defer cancel()

	cancelParent()
	<-ctx.Done()
	r.ErrorIs(ctx.Err(), context.Canceled)
}

func TestWithTokenDisposed(t *testing.T) {
	r := require.New(t)

	s := New()
	s.Dispose()
	ctx, cancel := WithToken(t.Context(), s.Token())
	defer cancel()

	<-ctx.Done()
	r.ErrorIs(context.Cause(ctx), ErrObjectDisposed)
}
