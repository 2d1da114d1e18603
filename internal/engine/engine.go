// Package engine implements the portfolio analytics core: contract status
// derivation, strategic-value scoring, capacity-constrained optimization,
// CSV reconciliation, and batch validation. Every entry point is a pure
// function over in-memory batches; the only injected dependency is the clock.
package engine

import (
	"math"
	"time"
)

// Engine evaluates client batches. Safe for concurrent use across
// independent batches; it holds no mutable state.
type Engine struct {
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the reference clock, primarily for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine. Without options it uses the system clock.
func New(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// today returns the reference clock truncated to calendar-day precision.
// Status comparisons are day-granular; intra-day times never matter.
func (e *Engine) today() time.Time {
	now := e.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
