package gsfs

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/gsfs/engine"
	"github.com/hupe1980/gsfs/policy"
	"github.com/hupe1980/gsfs/report"
)

type (
	// Oracle scores a feature subset; higher is better.
	Oracle = engine.Oracle
	// OracleFunc adapts a plain function to Oracle.
	OracleFunc = engine.OracleFunc
	// Result is a snapshot of a search.
	Result = engine.Result
	// HistoryRecord is one improvement of the best score.
	HistoryRecord = engine.HistoryRecord
	// Budget bounds a Fit or Refit.
	Budget = engine.Budget
	// Config is the resolved configuration of a Selector.
	Config = report.Config
)

// Selector searches a fixed feature universe for the subset an Oracle scores
// highest. A Selector is safe for concurrent use; Fit and Refit are
// serialised and readers never observe a half-finished episode.
type Selector struct {
	mu sync.RWMutex

	features    []string
	scoring     policy.ScoringKind
	expansion   policy.ExpansionKind
	termination policy.TerminationKind
	opts        options

	runID   string
	logger  *Logger
	metrics MetricsCollector
	engine  *engine.Engine
	result  *Result
}

// New validates the configuration and returns an unfitted Selector.
func New(features []string, optFns ...Option) (*Selector, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	s := &Selector{
		features: append([]string(nil), features...),
		opts:     o,
		logger:   o.logger,
		metrics:  o.metricsCollector,
	}

	var err error
	if s.scoring, err = policy.ParseScoring(o.scoring); err != nil {
		return nil, err
	}
	if s.expansion, err = policy.ParseExpansion(o.expansion); err != nil {
		return nil, err
	}
	if s.termination, err = policy.ParseTermination(o.termination); err != nil {
		return nil, err
	}

	// Surface universe, parameter and warm-start errors eagerly.
	eng, err := s.newEngine(o.budget)
	if err != nil {
		return nil, err
	}
	if o.warmStart != nil {
		if err := eng.WarmStart(o.warmStart); err != nil {
			return nil, translateError(err)
		}
	}
	return s, nil
}

func (s *Selector) newEngine(b engine.Budget) (*engine.Engine, error) {
	eng, err := engine.New(s.features,
		engine.WithScoring(s.scoring),
		engine.WithExpansion(s.expansion),
		engine.WithTermination(s.termination),
		engine.WithParams(s.opts.params),
		engine.WithBudget(b),
		engine.WithSeed(s.opts.seed),
		engine.WithLogger(s.logger.Logger),
		engine.WithMetricsObserver(metricsObserver{mc: s.metrics}),
		engine.WithProgressInterval(s.opts.progressInterval),
	)
	return eng, translateError(err)
}

// Fit starts a fresh search with the configured budget. A previous search
// of this Selector is discarded.
func (s *Selector) Fit(ctx context.Context, oracle Oracle) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runID = uuid.NewString()
	s.logger = s.opts.logger.WithRun(s.runID).WithFeatures(len(s.features))

	eng, err := s.newEngine(s.opts.budget)
	if err != nil {
		return nil, err
	}
	if s.opts.warmStart != nil {
		err := eng.WarmStart(s.opts.warmStart)
		s.logger.LogWarmStart(ctx, len(s.opts.warmStart), err)
		if err != nil {
			return nil, translateError(err)
		}
	}
	s.engine = eng

	return s.run(ctx, "fit", oracle)
}

// Refit continues the fitted search with an additional budget. The search
// graph and RAVE tables are kept.
func (s *Selector) Refit(ctx context.Context, oracle Oracle, b Budget) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		return nil, ErrNotFitted
	}
	if err := s.engine.Extend(b); err != nil {
		return nil, translateError(err)
	}
	return s.run(ctx, "refit", oracle)
}

func (s *Selector) run(ctx context.Context, op string, oracle Oracle) (*Result, error) {
	start := time.Now()
	res, err := s.engine.Run(ctx, oracle)
	err = translateError(err)

	s.result = res
	s.metrics.RecordFit(time.Since(start), err)
	s.logger.LogFit(ctx, op, res.Iterations, res.BestScore, time.Since(start), err)

	if err != nil {
		return res, fmt.Errorf("gsfs: %s: %w", op, err)
	}
	return res, nil
}

// Result returns the outcome of the last Fit or Refit.
func (s *Selector) Result() (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.result == nil {
		return nil, ErrNotFitted
	}
	return s.result, nil
}

// BestFeatures returns the best subset found so far.
func (s *Selector) BestFeatures() ([]string, error) {
	res, err := s.Result()
	if err != nil {
		return nil, err
	}
	return append([]string(nil), res.BestFeatures...), nil
}

// BestScore returns the best score found so far.
func (s *Selector) BestScore() (float64, error) {
	res, err := s.Result()
	if err != nil {
		return 0, err
	}
	return res.BestScore, nil
}

// History returns every improvement of the best score, oldest first.
func (s *Selector) History() ([]HistoryRecord, error) {
	res, err := s.Result()
	if err != nil {
		return nil, err
	}
	return append([]HistoryRecord(nil), res.History...), nil
}

// Importances returns the g-RAVE score of every feature used so far.
func (s *Selector) Importances() (map[string]float64, error) {
	res, err := s.Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(res.Importances))
	for k, v := range res.Importances {
		out[k] = v
	}
	return out, nil
}

// RunID returns the ID of the current search, or "" before Fit.
func (s *Selector) RunID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runID
}

// Validate checks the DAG invariants of the search graph.
func (s *Selector) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.engine == nil {
		return ErrNotFitted
	}
	return translateError(s.engine.Validate())
}

// WriteDOT writes the search graph in Graphviz DOT format. withStats adds
// visits, mean and variance to every node label.
func (s *Selector) WriteDOT(w io.Writer, withStats bool) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.engine == nil {
		return ErrNotFitted
	}
	return s.engine.Index().WriteDOT(w, s.engine.Universe(), withStats)
}

// Config returns the resolved configuration.
func (s *Selector) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config()
}

func (s *Selector) config() Config {
	b := s.opts.budget
	if s.engine != nil {
		b = s.engine.Budget()
	}
	return Config{
		Features:    append([]string(nil), s.features...),
		Metric:      s.opts.metricName,
		Scoring:     s.scoring.String(),
		Expansion:   s.expansion.String(),
		Termination: s.termination.String(),
		Params:      s.opts.params,
		BudgetKind:  b.Kind.String(),
		Iterations:  b.Iterations,
		Duration:    b.Duration,
		Seed:        s.opts.seed,
	}
}
