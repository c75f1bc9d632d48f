package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/gsfs"
)

var _ gsfs.MetricsCollector = (*PrometheusCollector)(nil)

// PrometheusCollector implements gsfs.MetricsCollector with Prometheus
// counters, gauges and histograms.
type PrometheusCollector struct {
	episodes     prometheus.Counter
	depth        prometheus.Histogram
	leafScore    prometheus.Histogram
	evaluations  *prometheus.CounterVec
	evalDuration prometheus.Histogram
	expansions   prometheus.Counter
	subsetSize   prometheus.Histogram
	improvements prometheus.Counter
	bestScore    prometheus.Gauge
	fits         *prometheus.CounterVec
	fitDuration  prometheus.Histogram
}

// NewPrometheusCollector registers the search metrics with reg under the
// given namespace. A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &PrometheusCollector{
		episodes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "episodes_total",
			Help:      "Completed search episodes",
		}),
		depth: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "episode_depth",
			Help:      "Nodes on the path of an episode",
			Buckets:   prometheus.LinearBuckets(1, 2, 12),
		}),
		leafScore: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "leaf_score",
			Help:      "Oracle score of episode leaves",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
		evaluations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Oracle evaluations by result",
		}, []string{"result"}),
		evalDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Oracle evaluation latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12), // 0.1ms to ~7min
		}),
		expansions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expansions_total",
			Help:      "Nodes added to the search graph",
		}),
		subsetSize: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "expansion_subset_size",
			Help:      "Subset size of added nodes",
			Buckets:   prometheus.LinearBuckets(1, 2, 12),
		}),
		improvements: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "improvements_total",
			Help:      "Improvements of the best score",
		}),
		bestScore: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_score",
			Help:      "Best score found so far",
		}),
		fits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fits_total",
			Help:      "Fit and Refit calls by result",
		}, []string{"result"}),
		fitDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fit_duration_seconds",
			Help:      "Fit and Refit duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordEpisode implements gsfs.MetricsCollector.
func (c *PrometheusCollector) RecordEpisode(depth int, score float64) {
	c.episodes.Inc()
	c.depth.Observe(float64(depth))
	c.leafScore.Observe(score)
}

// RecordEvaluation implements gsfs.MetricsCollector.
func (c *PrometheusCollector) RecordEvaluation(duration time.Duration, err error) {
	c.evaluations.WithLabelValues(result(err)).Inc()
	c.evalDuration.Observe(duration.Seconds())
}

// RecordExpansion implements gsfs.MetricsCollector.
func (c *PrometheusCollector) RecordExpansion(size int) {
	c.expansions.Inc()
	c.subsetSize.Observe(float64(size))
}

// RecordImprovement implements gsfs.MetricsCollector.
func (c *PrometheusCollector) RecordImprovement(score float64, _ int) {
	c.improvements.Inc()
	c.bestScore.Set(score)
}

// RecordFit implements gsfs.MetricsCollector.
func (c *PrometheusCollector) RecordFit(duration time.Duration, err error) {
	c.fits.WithLabelValues(result(err)).Inc()
	c.fitDuration.Observe(duration.Seconds())
}
