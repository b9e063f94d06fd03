// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"vawter.tech/cancellation"
)

func TestTracker(t *testing.T) {
	r := require.New(t)

	reg := prometheus.NewRegistry()
	m := New(reg)

	sig := cancellation.New(cancellation.WithName("test"), m.Option("test"))
	pending := m.pending.WithLabelValues("test")
	registered := m.registered.WithLabelValues("test")

	reg1, err := sig.Register(func() {})
	r.NoError(err)
	_, err = sig.Register(func() {})
	r.NoError(err)
	r.Equal(2.0, testutil.ToFloat64(pending))
	r.Equal(2.0, testutil.ToFloat64(registered))

	reg1.Dispose()
	r.Equal(1.0, testutil.ToFloat64(pending))

	sig.Cancel()
	r.Equal(0.0, testutil.ToFloat64(pending))

	// Immediate invocations are counted, but never pending.
	_, err = sig.Register(func() {})
	r.NoError(err)
	r.Equal(0.0, testutil.ToFloat64(pending))
	r.Equal(3.0, testutil.ToFloat64(registered))

	count, err := testutil.GatherAndCount(reg)
	r.NoError(err)
	r.Equal(2, count)
}

func TestUnregistered(t *testing.T) {
	r := require.New(t)

	m := New(nil)
	tr := m.Tracker("loose")
	release := tr.Track()
	r.Equal(1.0, testutil.ToFloat64(m.pending.WithLabelValues("loose")))
	release()
	r.Equal(0.0, testutil.ToFloat64(m.pending.WithLabelValues("loose")))
}
