package gsfs

import (
	"time"

	"github.com/hupe1980/gsfs/engine"
	"github.com/hupe1980/gsfs/policy"
)

type options struct {
	scoring          string
	expansion        string
	termination      string
	params           policy.Params
	budget           engine.Budget
	seed             uint64
	warmStart        map[string]float64
	logger           *Logger
	metricsCollector MetricsCollector
	progressInterval time.Duration
	metricName       string
}

func defaultOptions() options {
	return options{
		scoring:          policy.RaveUCB.String(),
		expansion:        policy.Discrete.String(),
		termination:      policy.FirstNewOrFull.String(),
		params:           policy.DefaultParams(),
		budget:           engine.IterationBudget(100),
		seed:             1,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		progressInterval: 10 * time.Second,
	}
}

// Option configures a Selector.
type Option func(*options)

// WithScoring selects the child scoring function by name: "rave_ucb"
// (default), "basic_ucb" or "ucb_with_variance". The names UCB1_rave, UCB1
// and UCB1_with_variance are accepted as aliases.
func WithScoring(name string) Option {
	return func(o *options) {
		o.scoring = name
	}
}

// WithExpansion selects the multi-arm strategy: "discrete" (default) or
// "continuous".
func WithExpansion(name string) Option {
	return func(o *options) {
		o.expansion = name
	}
}

// WithTermination selects the end strategy. Only "default" exists.
func WithTermination(name string) Option {
	return func(o *options) {
		o.termination = name
	}
}

// WithParams sets the policy weights c_e, c, c_l, b_T and
// new_node_preference.
func WithParams(p policy.Params) Option {
	return func(o *options) {
		o.params = p
	}
}

// WithIterations bounds Fit by a number of episodes. Default: 100.
func WithIterations(n int) Option {
	return func(o *options) {
		o.budget = engine.IterationBudget(n)
	}
}

// WithDuration bounds Fit by wall-clock time.
func WithDuration(d time.Duration) Option {
	return func(o *options) {
		o.budget = engine.TimeBudget(d)
	}
}

// WithBudget sets the Fit budget.
func WithBudget(b engine.Budget) Option {
	return func(o *options) {
		o.budget = b
	}
}

// WithSeed seeds the uniform draw of the discrete strategy. Two selectors
// with the same seed, configuration and deterministic oracle explore the
// same graph. Default: 1.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithWarmStart folds one pseudo-observation per feature into g-RAVE before
// the first episode of every Fit.
//
// Example:
//
//	sel, _ := gsfs.New(features, gsfs.WithWarmStart(map[string]float64{
//	    "age":    0.31,
//	    "income": 0.12,
//	}))
func WithWarmStart(importances map[string]float64) Option {
	return func(o *options) {
		o.warmStart = importances
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring searches.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &gsfs.BasicMetricsCollector{}
//	sel, _ := gsfs.New(features, gsfs.WithMetricsCollector(metrics))
//	// ... fit ...
//	fmt.Println(metrics.Episodes.Load())
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithProgressInterval sets the minimum spacing of progress logs for time
// budgets. Default: 10s.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressInterval = d
	}
}

// WithMetricName records the name of the metric the oracle reports. It is
// informational and appears in exported reports.
func WithMetricName(name string) Option {
	return func(o *options) {
		o.metricName = name
	}
}
