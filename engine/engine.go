package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/gsfs/featureset"
	"github.com/hupe1980/gsfs/lattice"
	"github.com/hupe1980/gsfs/policy"
	"github.com/hupe1980/gsfs/rave"
)

// Engine is one feature-selection search. It is not safe for concurrent use.
type Engine struct {
	universe   *featureset.Universe
	index      *lattice.Index
	local      *rave.LocalTable
	global     *rave.GlobalTable
	scorer     *policy.Scorer
	expander   *policy.Expander
	terminator *policy.Terminator

	opts    options
	logger  *slog.Logger
	metrics MetricsObserver

	budget   Budget
	limit    int
	checks   int
	episodes int
	start    time.Time
	started  bool
	progress *rate.Sometimes
	path     []lattice.NodeID
	longest  int
	best     float64
	bestSet  featureset.Set
	hasBest  bool
	history  []HistoryRecord
}

// New creates an engine over the given feature names.
func New(features []string, opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.params.Validate(); err != nil {
		return nil, err
	}
	if err := o.budget.Validate(); err != nil {
		return nil, err
	}

	u, err := featureset.NewUniverse(features)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		universe: u,
		index:    lattice.NewIndex(),
		local:    rave.NewLocalTable(),
		global:   rave.NewGlobalTable(),
		opts:     o,
		logger:   o.logger,
		metrics:  o.metrics,
		longest:  1,
	}

	e.scorer, err = policy.NewScorer(o.scoring, o.params, e.local, e.global)
	if err != nil {
		return nil, err
	}
	e.expander, err = policy.NewExpander(o.expansion, o.params, u, e.index, e.scorer, o.seed)
	if err != nil {
		return nil, err
	}
	e.terminator, err = policy.NewTerminator(o.termination, u)
	if err != nil {
		return nil, err
	}

	e.setBudget(o.budget)
	return e, nil
}

// Universe returns the feature universe.
func (e *Engine) Universe() *featureset.Universe { return e.universe }

// Index returns the search graph.
func (e *Engine) Index() *lattice.Index { return e.index }

// Budget returns the current budget.
func (e *Engine) Budget() Budget { return e.budget }

// WarmStart folds one pseudo-observation per feature into g-RAVE, biasing
// early expansion toward informative features.
func (e *Engine) WarmStart(importances map[string]float64) error {
	ids := make(map[featureset.ID]float64, len(importances))
	for name, v := range importances {
		id, ok := e.universe.ID(name)
		if !ok {
			return fmt.Errorf("%w: %q", featureset.ErrUnknownFeature, name)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: importance of %q is %v", ErrInvalidScore, name, v)
		}
		ids[id] = v
	}
	for _, id := range e.universe.All() {
		if v, ok := ids[id]; ok {
			e.global.Observe(id, v)
		}
	}
	e.logger.Debug("warm start applied", "features", len(ids))
	return nil
}

// Extend grants a further budget to the same search. An iteration budget of
// n allows exactly n more episodes; a time budget restarts the clock.
func (e *Engine) Extend(b Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	e.setBudget(b)
	e.started = false
	return nil
}

func (e *Engine) setBudget(b Budget) {
	e.budget = b
	if b.Kind == Iterations {
		e.limit = e.checks + b.Iterations
		e.progress = &rate.Sometimes{Every: max(b.Iterations/100, 1)}
	} else {
		e.progress = &rate.Sometimes{Interval: e.opts.progress}
	}
}

// Run executes episodes until the budget is exhausted, ctx is done, or an
// episode fails. The returned Result is valid in every case.
func (e *Engine) Run(ctx context.Context, oracle Oracle) (*Result, error) {
	if oracle == nil {
		return e.Result(), ErrNoOracle
	}
	if !e.started {
		e.start = e.opts.clock()
		e.started = true
	}

	e.logger.InfoContext(ctx, "search started",
		"features", e.universe.Len(),
		"budget", e.budget.String(),
		"scoring", e.scorer.Kind().String(),
		"expansion", e.expander.Kind().String(),
	)

	for {
		if err := ctx.Err(); err != nil {
			return e.Result(), err
		}
		if e.done() {
			break
		}
		if err := e.episode(ctx, oracle); err != nil {
			e.logger.ErrorContext(ctx, "search aborted", "iteration", e.checks, "error", err)
			return e.Result(), err
		}
	}

	e.logger.InfoContext(ctx, "search finished",
		"episodes", e.episodes,
		"best_score", e.best,
		"best_features", e.universe.Label(e.bestOrEmpty()),
		"nodes", e.index.Len(),
	)
	return e.Result(), nil
}

// done advances the check counter once and reports whether the budget is
// exhausted.
func (e *Engine) done() bool {
	e.checks++

	switch e.budget.Kind {
	case Iterations:
		if e.checks > e.limit {
			return true
		}
		e.progress.Do(func() {
			e.logger.Info("search progress",
				"iteration", e.checks-(e.limit-e.budget.Iterations),
				"budget", e.budget.Iterations,
				"best_score", e.best,
			)
		})
		return false
	default:
		elapsed := e.opts.clock().Sub(e.start)
		if elapsed > e.budget.Duration {
			return true
		}
		e.progress.Do(func() {
			e.logger.Info("search progress",
				"elapsed", elapsed,
				"budget", e.budget.Duration,
				"best_score", e.best,
			)
		})
		return false
	}
}

func (e *Engine) episode(ctx context.Context, oracle Oracle) error {
	e.path = e.path[:0]
	cur := lattice.RootID
	e.path = append(e.path, cur)

	var leaf *lattice.Node
	for {
		step, err := e.expander.Next(cur)
		if err != nil {
			return fmt.Errorf("iteration %d: %w", e.checks, err)
		}
		cur = step.Node
		leaf = e.index.Node(cur)
		if step.Expanded {
			e.metrics.OnExpansion(leaf.Size())
		}
		e.path = append(e.path, cur)
		if e.terminator.Done(leaf) {
			break
		}
	}

	features := e.universe.Names(leaf.Features())
	started := e.opts.clock()
	score, err := evaluateSafe(ctx, oracle, features)
	e.metrics.OnEvaluation(e.opts.clock().Sub(started), err)
	if err != nil {
		var pe *PanicError
		if errors.As(err, &pe) {
			e.logger.ErrorContext(ctx, "oracle panicked",
				"iteration", e.checks,
				"panic", pe.Value,
				"stack", string(pe.Stack),
			)
		}
		return fmt.Errorf("%w: iteration %d: %w", ErrOracle, e.checks, err)
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return fmt.Errorf("%w: iteration %d: %v", ErrInvalidScore, e.checks, score)
	}

	for _, id := range e.path {
		e.index.Node(id).AddScore(score)
	}
	if err := e.global.Update(leaf.Features(), score); err != nil {
		return err
	}
	if err := e.local.Add(leaf.Features(), score); err != nil {
		return err
	}

	e.episodes++
	e.longest = max(e.longest, len(e.path))
	e.metrics.OnEpisode(len(e.path), score)
	e.logger.DebugContext(ctx, "episode completed",
		"iteration", e.checks,
		"features", e.universe.Label(leaf.Features()),
		"score", score,
		"depth", len(e.path),
	)

	if !e.hasBest || score > e.best {
		e.hasBest = true
		e.best = score
		e.bestSet = leaf.Features()
		e.history = append(e.history, HistoryRecord{
			Score:     score,
			Features:  features,
			Elapsed:   e.opts.clock().Sub(e.start),
			Iteration: e.checks,
		})
		e.metrics.OnImprovement(score, leaf.Size())
		e.logger.InfoContext(ctx, "best subset improved",
			"iteration", e.checks,
			"score", score,
			"features", e.universe.Label(leaf.Features()),
		)
	}
	return nil
}

func (e *Engine) bestOrEmpty() featureset.Set {
	if !e.hasBest {
		return featureset.Empty()
	}
	return e.bestSet
}

// Result returns a snapshot of the search so far.
func (e *Engine) Result() *Result {
	r := &Result{
		Found:       e.hasBest,
		History:     make([]HistoryRecord, len(e.history)),
		Importances: make(map[string]float64, e.global.Len()),
		Iterations:  e.episodes,
		LongestPath: e.longest,
		Nodes:       e.index.Len(),
		Edges:       e.index.Edges(),
	}
	if e.hasBest {
		r.BestScore = e.best
		r.BestFeatures = e.universe.Names(e.bestSet)
	}
	copy(r.History, e.history)

	for _, st := range e.global.Entries() {
		name := e.universe.Name(st.Feature)
		r.Importances[name] = st.Mean()
		r.GlobalRave = append(r.GlobalRave, FeatureScore{
			Feature:  name,
			Visits:   st.Visits,
			ScoreSum: st.ScoreSum,
			Mean:     st.Mean(),
		})
	}
	for _, p := range e.local.Entries() {
		r.LocalRave = append(r.LocalRave, PathScore{
			Features: e.universe.Names(p.Features),
			Visits:   p.Visits,
			ScoreSum: p.ScoreSum,
			Mean:     p.Mean(),
		})
	}
	return r
}

// Validate checks the lattice invariants of the search graph.
func (e *Engine) Validate() error {
	return e.index.Validate()
}
