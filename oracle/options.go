package oracle

import (
	"runtime"

	"github.com/hupe1980/gsfs/policy"
)

const (
	// DefaultFolds is the number of cross-validation folds.
	DefaultFolds = 4
	// DefaultTestSize is the holdout share of rows.
	DefaultTestSize = 0.25
)

type options struct {
	factory     Factory
	metric      Metric
	folds       int
	testSize    float64
	seed        uint64
	concurrency int
}

func defaultOptions() options {
	return options{
		factory:     NewNearestCentroid,
		metric:      ROCAUC,
		folds:       DefaultFolds,
		testSize:    DefaultTestSize,
		seed:        1,
		concurrency: runtime.GOMAXPROCS(0),
	}
}

// Option configures CrossValidator and Holdout.
type Option func(*options)

// WithClassifier sets the classifier factory. Default: NewNearestCentroid.
func WithClassifier(f Factory) Option {
	return func(o *options) {
		if f != nil {
			o.factory = f
		}
	}
}

// WithMetric sets the metric. Default: ROCAUC.
func WithMetric(m Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithFolds sets the number of cross-validation folds. Default: 4.
func WithFolds(k int) Option {
	return func(o *options) {
		o.folds = k
	}
}

// WithTestSize sets the holdout share in (0, 1). Default: 0.25.
func WithTestSize(share float64) Option {
	return func(o *options) {
		o.testSize = share
	}
}

// WithSeed seeds the row shuffle. Default: 1.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithConcurrency bounds the folds trained at once. Default: GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

func (o options) validate() error {
	if o.folds < 2 {
		return &policy.ConfigError{Field: "cv", Value: o.folds, Reason: "must be >= 2"}
	}
	if !(o.testSize > 0 && o.testSize < 1) {
		return &policy.ConfigError{Field: "test_size", Value: o.testSize, Reason: "must be in (0, 1)"}
	}
	if o.concurrency < 1 {
		return &policy.ConfigError{Field: "concurrency", Value: o.concurrency, Reason: "must be >= 1"}
	}
	return nil
}
