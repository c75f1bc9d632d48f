package policy

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/gsfs/featureset"
	"github.com/hupe1980/gsfs/lattice"
	"github.com/hupe1980/gsfs/rave"
)

// ErrNotChild is returned when a scored node does not extend its parent by
// exactly one feature.
var ErrNotChild = errors.New("policy: node is not a direct child of parent")

// ScoringKind selects the child scoring formula.
type ScoringKind uint8

const (
	// RaveUCB blends the node mean with l-RAVE and g-RAVE and adds the
	// variance-aware bonus. It is the default.
	RaveUCB ScoringKind = iota
	// BasicUCB is plain UCB1.
	BasicUCB
	// VarianceUCB is UCB1 with the variance-aware (UCB1-tuned) bonus.
	VarianceUCB
)

var scoringNames = map[string]ScoringKind{
	"rave_ucb":           RaveUCB,
	"UCB1_rave":          RaveUCB,
	"basic_ucb":          BasicUCB,
	"UCB1":               BasicUCB,
	"ucb_with_variance":  VarianceUCB,
	"UCB1_with_variance": VarianceUCB,
}

// ParseScoring resolves a scoring function name. The empty name selects
// RaveUCB.
func ParseScoring(name string) (ScoringKind, error) {
	if name == "" {
		return RaveUCB, nil
	}
	if k, ok := scoringNames[name]; ok {
		return k, nil
	}
	return 0, &ConfigError{Field: "scoring_function", Value: name, Reason: "unsupported"}
}

func (k ScoringKind) String() string {
	switch k {
	case RaveUCB:
		return "rave_ucb"
	case BasicUCB:
		return "basic_ucb"
	case VarianceUCB:
		return "ucb_with_variance"
	default:
		return fmt.Sprintf("ScoringKind(%d)", uint8(k))
	}
}

// Scorer computes exploration/exploitation scores.
type Scorer struct {
	kind   ScoringKind
	params Params
	local  *rave.LocalTable
	global *rave.GlobalTable
}

// NewScorer returns a scorer reading the given RAVE tables.
func NewScorer(kind ScoringKind, params Params, local *rave.LocalTable, global *rave.GlobalTable) (*Scorer, error) {
	if kind > VarianceUCB {
		return nil, &ConfigError{Field: "scoring_function", Value: kind, Reason: "unsupported"}
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{kind: kind, params: params, local: local, global: global}, nil
}

// Kind returns the scoring variant.
func (s *Scorer) Kind() ScoringKind { return s.kind }

// Score rates child as a descent target from parent. Unvisited children and
// children without a parent score +Inf.
func (s *Scorer) Score(parent, child *lattice.Node) (float64, error) {
	if parent == nil || child.Visits() == 0 {
		return math.Inf(1), nil
	}

	switch s.kind {
	case BasicUCB:
		return child.Mean() + math.Sqrt(s.params.CE*lnParent(parent)/float64(child.Visits())), nil
	case VarianceUCB:
		return child.Mean() + s.tunedBonus(parent, child), nil
	default:
		return s.raveScore(parent, child)
	}
}

// ExpansionScore rates parent ∪ {feature} before it exists as a node.
// A feature never seen in any episode scores +Inf.
func (s *Scorer) ExpansionScore(feature featureset.ID, parent *lattice.Node) (float64, error) {
	if s.global.Visits(feature) == 0 {
		return math.Inf(1), nil
	}
	extended := parent.Features().With(feature)

	tl, err := s.local.Visits(extended)
	if err != nil {
		return 0, err
	}
	lrave, err := s.local.Score(extended)
	if err != nil {
		return 0, err
	}
	beta := s.params.CL / (s.params.CL + float64(tl))
	return (1-beta)*lrave + beta*s.global.Score(feature), nil
}

func (s *Scorer) raveScore(parent, child *lattice.Node) (float64, error) {
	added := child.Features().Difference(parent.Features()).IDs()
	if len(added) != 1 || child.Size() != parent.Size()+1 {
		return 0, fmt.Errorf("%w: %d→%d", ErrNotChild, parent.ID(), child.ID())
	}

	tl, err := s.local.Visits(child.Features())
	if err != nil {
		return 0, err
	}
	lrave, err := s.local.Score(child.Features())
	if err != nil {
		return 0, err
	}

	t := float64(child.Visits())
	alpha := s.params.C / (s.params.C + t)
	beta := s.params.CL / (s.params.CL + float64(tl))
	grave := s.global.Score(added[0])

	return (1-alpha)*child.Mean() +
		alpha*((1-beta)*lrave+beta*grave) +
		s.tunedBonus(parent, child), nil
}

// tunedBonus is sqrt((c_e·ln T(p)/T(n)) · min(1/4, var + sqrt(2·ln T(p)/T(n)))).
func (s *Scorer) tunedBonus(parent, child *lattice.Node) float64 {
	t := float64(child.Visits())
	ln := lnParent(parent)
	v := math.Min(0.25, child.Variance()+math.Sqrt(2*ln/t))
	return math.Sqrt((s.params.CE * ln / t) * v)
}

// lnParent is ln T(parent), clamped at T=1 so an unvisited parent adds no
// bonus instead of NaN.
func lnParent(parent *lattice.Node) float64 {
	return math.Log(float64(max(parent.Visits(), 1)))
}
