package oracle

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/hupe1980/gsfs/engine"
)

// LimiterConfig holds evaluation limits.
type LimiterConfig struct {
	// MaxConcurrent is the maximum number of evaluations in flight.
	// If 0, defaults to 1.
	MaxConcurrent int64

	// PerSecond is the maximum evaluation rate.
	// If 0, unlimited.
	PerSecond float64

	// Burst is the rate limiter's bucket size.
	// If 0, defaults to 1.
	Burst int
}

// Limiter bounds the concurrency and rate of an oracle, e.g. one backed by
// a shared training cluster.
type Limiter struct {
	inner engine.Oracle
	cfg   LimiterConfig

	sem     *semaphore.Weighted
	limiter *rate.Limiter // nil if unlimited

	inFlight atomic.Int64
}

var _ engine.Oracle = (*Limiter)(nil)

// NewLimiter wraps inner.
func NewLimiter(inner engine.Oracle, cfg LimiterConfig) *Limiter {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	l := &Limiter{
		inner: inner,
		cfg:   cfg,
		sem:   semaphore.NewWeighted(cfg.MaxConcurrent),
	}
	if cfg.PerSecond > 0 {
		l.limiter = rate.NewLimiter(rate.Limit(cfg.PerSecond), cfg.Burst)
	}
	return l
}

// Evaluate waits for a rate token and a concurrency slot, then delegates.
func (l *Limiter) Evaluate(ctx context.Context, features []string) (float64, error) {
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return 0, err
		}
	}
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return 0, err
	}
	defer l.sem.Release(1)

	l.inFlight.Add(1)
	defer l.inFlight.Add(-1)

	return l.inner.Evaluate(ctx, features)
}

// InFlight returns the number of evaluations currently running.
func (l *Limiter) InFlight() int64 { return l.inFlight.Load() }

// Config returns the effective limits.
func (l *Limiter) Config() LimiterConfig { return l.cfg }
