package engine

import (
	"fmt"
	"time"

	"github.com/hupe1980/gsfs/policy"
)

// BudgetKind selects what bounds a run.
type BudgetKind uint8

const (
	// Iterations bounds the number of episodes.
	Iterations BudgetKind = iota
	// Time bounds the wall-clock duration.
	Time
)

// ParseBudget resolves a calculations_done_condition name. The empty name
// selects Iterations.
func ParseBudget(name string) (BudgetKind, error) {
	switch name {
	case "", "iterations":
		return Iterations, nil
	case "time":
		return Time, nil
	}
	return 0, &policy.ConfigError{Field: "calculations_done_condition", Value: name, Reason: "unsupported"}
}

func (k BudgetKind) String() string {
	switch k {
	case Iterations:
		return "iterations"
	case Time:
		return "time"
	default:
		return fmt.Sprintf("BudgetKind(%d)", uint8(k))
	}
}

// Budget bounds a run by episodes or by wall-clock time.
type Budget struct {
	Kind       BudgetKind
	Iterations int
	Duration   time.Duration
}

// IterationBudget returns a budget of n episodes.
func IterationBudget(n int) Budget { return Budget{Kind: Iterations, Iterations: n} }

// TimeBudget returns a budget of d wall-clock time.
func TimeBudget(d time.Duration) Budget { return Budget{Kind: Time, Duration: d} }

// Validate checks that the budget is positive.
func (b Budget) Validate() error {
	switch b.Kind {
	case Iterations:
		if b.Iterations <= 0 {
			return &policy.ConfigError{Field: "calculations_budget", Value: b.Iterations, Reason: "must be > 0"}
		}
	case Time:
		if b.Duration <= 0 {
			return &policy.ConfigError{Field: "calculations_budget", Value: b.Duration, Reason: "must be > 0"}
		}
	default:
		return &policy.ConfigError{Field: "calculations_done_condition", Value: b.Kind, Reason: "unsupported"}
	}
	return nil
}

func (b Budget) String() string {
	if b.Kind == Time {
		return b.Duration.String()
	}
	return fmt.Sprintf("%d iterations", b.Iterations)
}
