package gsfs

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/hupe1980/gsfs/engine"
)

// MetricsCollector defines an interface for collecting search metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus; see package observability.
type MetricsCollector interface {
	// RecordEpisode is called after each completed episode with the number
	// of nodes on its path and the leaf's score.
	RecordEpisode(depth int, score float64)

	// RecordEvaluation is called after each oracle call.
	// duration is the time taken, err is nil if successful.
	RecordEvaluation(duration time.Duration, err error)

	// RecordExpansion is called when a node of the given subset size is
	// added to the search graph.
	RecordExpansion(size int)

	// RecordImprovement is called when a new best subset is found.
	RecordImprovement(score float64, size int)

	// RecordFit is called after each Fit or Refit.
	RecordFit(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEpisode(int, float64)            {}
func (NoopMetricsCollector) RecordEvaluation(time.Duration, error) {}
func (NoopMetricsCollector) RecordExpansion(int)                   {}
func (NoopMetricsCollector) RecordImprovement(float64, int)        {}
func (NoopMetricsCollector) RecordFit(time.Duration, error)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	Episodes         atomic.Int64
	DepthTotal       atomic.Int64
	Evaluations      atomic.Int64
	EvaluationErrors atomic.Int64
	EvaluationNanos  atomic.Int64
	Expansions       atomic.Int64
	Improvements     atomic.Int64
	Fits             atomic.Int64
	FitErrors        atomic.Int64
	bestBits         atomic.Uint64
	hasBest          atomic.Bool
}

// RecordEpisode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEpisode(depth int, score float64) {
	b.Episodes.Add(1)
	b.DepthTotal.Add(int64(depth))
}

// RecordEvaluation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEvaluation(duration time.Duration, err error) {
	b.Evaluations.Add(1)
	b.EvaluationNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EvaluationErrors.Add(1)
	}
}

// RecordExpansion implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExpansion(size int) {
	b.Expansions.Add(1)
}

// RecordImprovement implements MetricsCollector.
func (b *BasicMetricsCollector) RecordImprovement(score float64, size int) {
	b.Improvements.Add(1)
	b.bestBits.Store(math.Float64bits(score))
	b.hasBest.Store(true)
}

// RecordFit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFit(duration time.Duration, err error) {
	b.Fits.Add(1)
	if err != nil {
		b.FitErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		Episodes:         b.Episodes.Load(),
		Evaluations:      b.Evaluations.Load(),
		EvaluationErrors: b.EvaluationErrors.Load(),
		Expansions:       b.Expansions.Load(),
		Improvements:     b.Improvements.Load(),
		Fits:             b.Fits.Load(),
		FitErrors:        b.FitErrors.Load(),
	}
	if s.Episodes > 0 {
		s.AvgDepth = float64(b.DepthTotal.Load()) / float64(s.Episodes)
	}
	if s.Evaluations > 0 {
		s.EvaluationAvgNanos = b.EvaluationNanos.Load() / s.Evaluations
	}
	if b.hasBest.Load() {
		s.BestScore = math.Float64frombits(b.bestBits.Load())
	}
	return s
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	Episodes           int64
	AvgDepth           float64
	Evaluations        int64
	EvaluationErrors   int64
	EvaluationAvgNanos int64
	Expansions         int64
	Improvements       int64
	BestScore          float64
	Fits               int64
	FitErrors          int64
}

// metricsObserver adapts a MetricsCollector to engine.MetricsObserver.
type metricsObserver struct {
	mc MetricsCollector
}

var _ engine.MetricsObserver = metricsObserver{}

func (o metricsObserver) OnEpisode(depth int, score float64) { o.mc.RecordEpisode(depth, score) }

func (o metricsObserver) OnEvaluation(duration time.Duration, err error) {
	o.mc.RecordEvaluation(duration, err)
}

func (o metricsObserver) OnExpansion(size int) { o.mc.RecordExpansion(size) }

func (o metricsObserver) OnImprovement(score float64, size int) {
	o.mc.RecordImprovement(score, size)
}
