package testutil

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
)

// DefaultWeights has a unique optimum {A, B, C, D} under a cost of 0.02:
// 0.30 + 0.25 + 0.20 + 0.05 - 4*0.02 = 0.72.
var DefaultWeights = map[string]float64{
	"A": 0.30,
	"B": 0.25,
	"C": 0.20,
	"D": 0.05,
	"E": -0.10,
}

// DefaultFeatures returns the sorted keys of DefaultWeights.
func DefaultFeatures() []string {
	return []string{"A", "B", "C", "D", "E"}
}

// AdditiveOracle scores a subset as the sum of its feature weights minus a
// per-feature cost. It records every evaluation and is safe for concurrent
// use.
type AdditiveOracle struct {
	weights map[string]float64
	cost    float64

	mu     sync.Mutex
	calls  int
	scores map[string]float64
}

// NewAdditiveOracle returns an oracle over weights.
func NewAdditiveOracle(weights map[string]float64, cost float64) *AdditiveOracle {
	return &AdditiveOracle{
		weights: weights,
		cost:    cost,
		scores:  make(map[string]float64),
	}
}

// Evaluate implements the oracle contract.
func (o *AdditiveOracle) Evaluate(ctx context.Context, features []string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	score := 0.0
	for _, f := range features {
		score += o.weights[f] - o.cost
	}

	o.mu.Lock()
	o.calls++
	o.scores[Key(features)] = score
	o.mu.Unlock()
	return score, nil
}

// Calls returns the number of evaluations.
func (o *AdditiveOracle) Calls() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.calls
}

// Scores returns a copy of every evaluated subset's score keyed by Key.
func (o *AdditiveOracle) Scores() map[string]float64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make(map[string]float64, len(o.scores))
	for k, v := range o.scores {
		out[k] = v
	}
	return out
}

// Key joins the sorted feature names with commas.
func Key(features []string) string {
	s := slices.Clone(features)
	slices.Sort(s)
	return strings.Join(s, ",")
}

// ErrInjected is returned by FailingOracle.
var ErrInjected = errors.New("testutil: injected failure")

// FailingOracle delegates to Inner and fails the FailAt-th call (1-based).
type FailingOracle struct {
	Inner interface {
		Evaluate(ctx context.Context, features []string) (float64, error)
	}
	FailAt int

	mu    sync.Mutex
	calls int
}

// Evaluate implements the oracle contract.
func (o *FailingOracle) Evaluate(ctx context.Context, features []string) (float64, error) {
	o.mu.Lock()
	o.calls++
	n := o.calls
	o.mu.Unlock()

	if n == o.FailAt {
		return 0, ErrInjected
	}
	return o.Inner.Evaluate(ctx, features)
}
