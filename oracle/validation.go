package oracle

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/gsfs/dataset"
	"github.com/hupe1980/gsfs/engine"
)

var (
	_ engine.Oracle = (*CrossValidator)(nil)
	_ engine.Oracle = (*Holdout)(nil)
)

// CrossValidator scores a subset by the mean metric over stratified k-fold
// cross-validation. Folds are fixed at construction and trained
// concurrently.
type CrossValidator struct {
	data   *dataset.Dataset
	opts   options
	splits []split
}

// NewCrossValidator prepares the folds of data. Labels must be 0 or 1; use
// dataset.Relabel first.
func NewCrossValidator(data *dataset.Dataset, optFns ...Option) (*CrossValidator, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	splits, err := stratifiedKFold(data, o.folds, o.seed)
	if err != nil {
		return nil, err
	}
	return &CrossValidator{data: data, opts: o, splits: splits}, nil
}

// Metric returns the configured metric.
func (cv *CrossValidator) Metric() Metric { return cv.opts.metric }

// Evaluate implements engine.Oracle.
func (cv *CrossValidator) Evaluate(ctx context.Context, features []string) (float64, error) {
	sub, err := cv.data.Select(features)
	if err != nil {
		return 0, err
	}

	scores := make([]float64, len(cv.splits))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cv.opts.concurrency)
	for i, s := range cv.splits {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			score, err := fitAndScore(sub, s, cv.opts)
			if err != nil {
				return fmt.Errorf("fold %d: %w", i, err)
			}
			scores[i] = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores)), nil
}

// Holdout scores a subset on a single stratified train/test split.
type Holdout struct {
	data  *dataset.Dataset
	opts  options
	split split
}

// NewHoldout prepares the split of data. Labels must be 0 or 1.
func NewHoldout(data *dataset.Dataset, optFns ...Option) (*Holdout, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	s, err := stratifiedHoldout(data, o.testSize, o.seed)
	if err != nil {
		return nil, err
	}
	return &Holdout{data: data, opts: o, split: s}, nil
}

// Metric returns the configured metric.
func (h *Holdout) Metric() Metric { return h.opts.metric }

// Evaluate implements engine.Oracle.
func (h *Holdout) Evaluate(ctx context.Context, features []string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	sub, err := h.data.Select(features)
	if err != nil {
		return 0, err
	}
	return fitAndScore(sub, h.split, h.opts)
}

func fitAndScore(data *dataset.Dataset, s split, o options) (float64, error) {
	train, test := data.Rows(s.train), data.Rows(s.test)

	clf := o.factory()
	if err := clf.Fit(train.X(), train.Labels()); err != nil {
		return 0, err
	}
	proba, err := clf.PredictProba(test.X())
	if err != nil {
		return 0, err
	}
	return o.metric.Score(test.Labels(), proba)
}
