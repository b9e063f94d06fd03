// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package metrics exports callback registration counts to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"vawter.tech/cancellation"
)

const signalLabel = "signal"

// Metrics holds the Prometheus collectors shared by all Trackers.
type Metrics struct {
	pending    *prometheus.GaugeVec
	registered *prometheus.CounterVec
}

// New registers the collectors with the Registerer. A nil Registerer
// leaves the collectors unregistered.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		pending: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "cancellation",
			Name:      "pending_callbacks",
			Help:      "the number of callbacks waiting for cancellation",
		}, []string{signalLabel}),
		registered: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cancellation",
			Name:      "registered_callbacks_total",
			Help:      "the number of callbacks registered",
		}, []string{signalLabel}),
	}
}

// Option is a convenience for attaching a [Metrics.Tracker] to a new
// Signal.
func (m *Metrics) Option(name string) cancellation.Option {
	return cancellation.WithTracker(m.Tracker(name))
}

// Tracker returns a [cancellation.Tracker] whose values are labeled
// with the given name.
func (m *Metrics) Tracker(name string) cancellation.Tracker {
	return &tracker{
		pending:    m.pending.WithLabelValues(name),
		registered: m.registered.WithLabelValues(name),
	}
}

type tracker struct {
	pending    prometheus.Gauge
	registered prometheus.Counter
}

func (t *tracker) Track() (release func()) {
	t.registered.Inc()
	t.pending.Inc()
	return t.pending.Dec
}
