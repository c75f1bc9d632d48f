package engine

import (
	"log/slog"
	"time"

	"github.com/hupe1980/gsfs/policy"
)

// Option defines a configuration option for the Engine.
type Option func(*options)

type options struct {
	scoring     policy.ScoringKind
	expansion   policy.ExpansionKind
	termination policy.TerminationKind
	params      policy.Params
	budget      Budget
	seed        uint64
	logger      *slog.Logger
	metrics     MetricsObserver
	clock       func() time.Time
	progress    time.Duration
}

func defaultOptions() options {
	return options{
		scoring:     policy.RaveUCB,
		expansion:   policy.Discrete,
		termination: policy.FirstNewOrFull,
		params:      policy.DefaultParams(),
		budget:      IterationBudget(100),
		seed:        1,
		logger:      slog.New(slog.DiscardHandler),
		metrics:     &NoopMetricsObserver{},
		clock:       time.Now,
		progress:    10 * time.Second,
	}
}

// WithScoring sets the child scoring formula. Default: policy.RaveUCB.
func WithScoring(k policy.ScoringKind) Option {
	return func(o *options) {
		o.scoring = k
	}
}

// WithExpansion sets the expansion strategy. Default: policy.Discrete.
func WithExpansion(k policy.ExpansionKind) Option {
	return func(o *options) {
		o.expansion = k
	}
}

// WithTermination sets the end strategy. Default: policy.FirstNewOrFull.
func WithTermination(k policy.TerminationKind) Option {
	return func(o *options) {
		o.termination = k
	}
}

// WithParams sets the policy weights. Default: policy.DefaultParams().
func WithParams(p policy.Params) Option {
	return func(o *options) {
		o.params = p
	}
}

// WithBudget sets the budget of the first Run. Default: 100 iterations.
func WithBudget(b Budget) Option {
	return func(o *options) {
		o.budget = b
	}
}

// WithSeed seeds the uniform draw the discrete strategy falls back to when
// no unused feature scores above zero. Default: 1.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithLogger sets the logger for the engine.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetricsObserver sets the metrics observer for the engine.
func WithMetricsObserver(observer MetricsObserver) Option {
	return func(o *options) {
		if observer != nil {
			o.metrics = observer
		}
	}
}

// WithProgressInterval sets the minimum spacing of time-budget progress
// logs. Iteration budgets log every 1% of the budget. Default: 10s.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progress = d
	}
}

// WithClock replaces time.Now, mainly for tests of time budgets.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}
