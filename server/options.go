// File: server/options.go
// Package server defines functional options for the event loop.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"io"
	"log/slog"

	"github.com/momentics/hioload-epoll/control"
)

// Option customizes loop initialization.
type Option func(*Loop)

// WithConfig replaces the whole configuration.
func WithConfig(cfg *Config) Option {
	return func(l *Loop) {
		if cfg != nil {
			l.cfg = *cfg
		}
	}
}

// WithSink sets where inbound bytes are forwarded. Defaults to os.Stdout.
func WithSink(w io.Writer) Option {
	return func(l *Loop) {
		l.sink = w
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loop) {
		l.log = log
	}
}

// WithMetrics shares a counter set with the caller.
func WithMetrics(c *control.Counters) Option {
	return func(l *Loop) {
		l.metrics = c
	}
}

// WithBatchSize overrides the readiness batch capacity.
func WithBatchSize(n int) Option {
	return func(l *Loop) {
		l.cfg.MaxEvents = n
	}
}

// WithDrainLimit bounds accept and read iterations per notification.
// Drains cut short are resumed on the next Poll.
func WithDrainLimit(n int) Option {
	return func(l *Loop) {
		l.cfg.DrainLimit = n
	}
}

// WithCPU pins the thread executing Run to one logical CPU.
func WithCPU(cpu int) Option {
	return func(l *Loop) {
		l.cfg.PinCPU = true
		l.cfg.CPU = cpu
	}
}
