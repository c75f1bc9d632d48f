package engine

import "time"

// MetricsObserver defines the interface for observing search events.
type MetricsObserver interface {
	// OnEpisode is called after each completed episode with the number of
	// nodes on its path (root included) and the leaf's score.
	OnEpisode(depth int, score float64)

	// OnEvaluation is called after each oracle call.
	OnEvaluation(duration time.Duration, err error)

	// OnExpansion is called when a node of the given subset size is
	// materialised.
	OnExpansion(size int)

	// OnImprovement is called when a new best subset is recorded.
	OnImprovement(score float64, size int)
}

// NoopMetricsObserver is a no-op implementation of MetricsObserver.
type NoopMetricsObserver struct{}

func (o *NoopMetricsObserver) OnEpisode(depth int, score float64)             {}
func (o *NoopMetricsObserver) OnEvaluation(duration time.Duration, err error) {}
func (o *NoopMetricsObserver) OnExpansion(size int)                           {}
func (o *NoopMetricsObserver) OnImprovement(score float64, size int)          {}
