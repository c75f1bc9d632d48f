package gsfs

import (
	"time"

	"github.com/hupe1980/gsfs/engine"
	"github.com/hupe1980/gsfs/policy"
)

// Search creates a new Selector builder over the given feature names.
//
// The builder is immutable - each method returns a new builder with the updated configuration.
// This ensures thread-safety and prevents accidental state sharing.
//
// Example:
//
//	sel, err := gsfs.Search("age", "income", "tenure").
//	    RaveUCB().
//	    Discrete().
//	    CE(2).
//	    Iterations(500).
//	    Build()
func Search(features ...string) SelectorBuilder {
	return SelectorBuilder{
		features:    features,
		scoring:     policy.RaveUCB.String(),
		expansion:   policy.Discrete.String(),
		termination: policy.FirstNewOrFull.String(),
		params:      policy.DefaultParams(),
		budget:      engine.IterationBudget(100),
		seed:        1,
	}
}

// SelectorBuilder is an immutable fluent builder for creating Selectors.
// Each method returns a new builder with the updated configuration.
type SelectorBuilder struct {
	features    []string
	scoring     string
	expansion   string
	termination string
	params      policy.Params
	budget      engine.Budget
	seed        uint64
	warmStart   map[string]float64
	logger      *Logger
	metrics     MetricsCollector
	metricName  string
}

// RaveUCB scores children by UCB1 blended with l-RAVE and g-RAVE (default).
func (b SelectorBuilder) RaveUCB() SelectorBuilder {
	b.scoring = policy.RaveUCB.String()
	return b
}

// BasicUCB scores children by plain UCB1.
func (b SelectorBuilder) BasicUCB() SelectorBuilder {
	b.scoring = policy.BasicUCB.String()
	return b
}

// VarianceUCB scores children by UCB1 with the variance-aware bonus.
func (b SelectorBuilder) VarianceUCB() SelectorBuilder {
	b.scoring = policy.VarianceUCB.String()
	return b
}

// Scoring selects the scoring function by name.
func (b SelectorBuilder) Scoring(name string) SelectorBuilder {
	b.scoring = name
	return b
}

// Discrete expands under progressive widening (default).
func (b SelectorBuilder) Discrete() SelectorBuilder {
	b.expansion = policy.Discrete.String()
	return b
}

// Continuous lets unused features compete with children at every step.
func (b SelectorBuilder) Continuous() SelectorBuilder {
	b.expansion = policy.Continuous.String()
	return b
}

// Expansion selects the multi-arm strategy by name.
func (b SelectorBuilder) Expansion(name string) SelectorBuilder {
	b.expansion = name
	return b
}

// Termination selects the end strategy by name.
func (b SelectorBuilder) Termination(name string) SelectorBuilder {
	b.termination = name
	return b
}

// Params replaces all policy weights.
func (b SelectorBuilder) Params(p policy.Params) SelectorBuilder {
	b.params = p
	return b
}

// CE sets the exploration weight c_e.
func (b SelectorBuilder) CE(v float64) SelectorBuilder {
	b.params.CE = v
	return b
}

// C sets c, the pace at which a node's own mean outweighs RAVE.
func (b SelectorBuilder) C(v float64) SelectorBuilder {
	b.params.C = v
	return b
}

// CL sets c_l, the pace at which l-RAVE outweighs g-RAVE.
func (b SelectorBuilder) CL(v float64) SelectorBuilder {
	b.params.CL = v
	return b
}

// BT sets the progressive widening exponent b_T.
func (b SelectorBuilder) BT(v float64) SelectorBuilder {
	b.params.BT = v
	return b
}

// NewNodePreference scales expansion scores in the continuous strategy.
func (b SelectorBuilder) NewNodePreference(v float64) SelectorBuilder {
	b.params.NewNodePreference = v
	return b
}

// Iterations bounds Fit by a number of episodes.
func (b SelectorBuilder) Iterations(n int) SelectorBuilder {
	b.budget = engine.IterationBudget(n)
	return b
}

// Duration bounds Fit by wall-clock time.
func (b SelectorBuilder) Duration(d time.Duration) SelectorBuilder {
	b.budget = engine.TimeBudget(d)
	return b
}

// Seed seeds the uniform draw of the discrete strategy.
func (b SelectorBuilder) Seed(seed uint64) SelectorBuilder {
	b.seed = seed
	return b
}

// WarmStart folds feature importances into g-RAVE before the first episode.
func (b SelectorBuilder) WarmStart(importances map[string]float64) SelectorBuilder {
	m := make(map[string]float64, len(importances))
	for k, v := range importances {
		m[k] = v
	}
	b.warmStart = m
	return b
}

// Logger sets the logger.
func (b SelectorBuilder) Logger(l *Logger) SelectorBuilder {
	b.logger = l
	return b
}

// Metrics sets the metrics collector.
func (b SelectorBuilder) Metrics(mc MetricsCollector) SelectorBuilder {
	b.metrics = mc
	return b
}

// MetricName records the name of the oracle's metric in exported reports.
func (b SelectorBuilder) MetricName(name string) SelectorBuilder {
	b.metricName = name
	return b
}

// Build creates the Selector.
func (b SelectorBuilder) Build() (*Selector, error) {
	opts := []Option{
		WithScoring(b.scoring),
		WithExpansion(b.expansion),
		WithTermination(b.termination),
		WithParams(b.params),
		WithBudget(b.budget),
		WithSeed(b.seed),
		WithMetricName(b.metricName),
	}
	if b.warmStart != nil {
		opts = append(opts, WithWarmStart(b.warmStart))
	}
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector(b.metrics))
	}
	return New(b.features, opts...)
}

// MustBuild creates the Selector and panics on error.
func (b SelectorBuilder) MustBuild() *Selector {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
