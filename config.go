// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package cancellation

import (
	"log/slog"

	"github.com/google/uuid"
	"vawter.tech/cancellation/internal/state"
)

// A Tracker is notified when a callback is stored by a [Signal]. The
// returned release function is called exactly once, after the callback
// has been invoked or unregistered. See the linger and metrics
// packages for implementations.
type Tracker = state.Tracker

// An Option configures a [Signal].
type Option func(*config)

// WithErrorHandler installs a function that receives a
// [RecoveredError] whenever a registered callback panics. The handler
// is called on the goroutine that invoked the callback.
func WithErrorHandler(fn func(err error)) Option {
	return func(cfg *config) { cfg.errHandler = fn }
}

// WithLogger sets the logger used to report lifecycle events and
// recovered panics. The default is [slog.Default].
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) { cfg.logger = logger }
}

// WithName gives the Signal a descriptive name for use in logs and
// execution traces. A random name is generated if unset.
func WithName(name string) Option {
	return func(cfg *config) { cfg.name = name }
}

// WithTracker attaches a [Tracker] to the Signal.
func WithTracker(t Tracker) Option {
	return func(cfg *config) { cfg.tracker = t }
}

type config struct {
	errHandler func(error)
	logger     *slog.Logger
	name       string
	tracker    Tracker
}

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.Sanitize()
	return cfg
}

// Sanitize fills in default values.
func (c *config) Sanitize() {
	if c.name == "" {
		c.name = uuid.NewString()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With(slog.String("signal", c.name))
}
