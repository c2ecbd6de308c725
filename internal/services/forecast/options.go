package forecast

import (
    "time"

    "NFTCast/internal/domain/repository"
    "NFTCast/pkg/logger"
)

// Option configures an Engine.
type Option func(*Engine)

// WithSeed makes every run reproducible for a given seed.
func WithSeed(seed int64) Option {
    return func(e *Engine) { e.seeds = newSeedSource(seed) }
}

// WithRand overrides the per-run random source factory. The factory is called
// once per forecaster run, before any fan-out, and must return independent sources.
func WithRand(factory func() Rand) Option {
    return func(e *Engine) { e.newRand = factory }
}

// WithClock sets the instant prediction dates are derived from.
func WithClock(clock func() time.Time) Option {
    return func(e *Engine) { e.clock = clock }
}

// WithTimeout bounds the ensemble fan-out. Zero disables the deadline.
func WithTimeout(d time.Duration) Option {
    return func(e *Engine) { e.timeout = d }
}

// WithFallbackBase sets the anchor price used when the series is empty.
func WithFallbackBase(price float64) Option {
    return func(e *Engine) {
        if price > 0 {
            e.fallbackBase = price
        }
    }
}

func WithLogger(l *logger.Logger) Option {
    return func(e *Engine) {
        if l != nil {
            e.log = l
        }
    }
}

func WithMetrics(m repository.Metrics) Option {
    return func(e *Engine) { e.metrics = m }
}
