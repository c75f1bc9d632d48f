package policy

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/hupe1980/gsfs/featureset"
	"github.com/hupe1980/gsfs/lattice"
)

// ErrNoCandidate is returned when a node has neither children nor unused
// features to descend into.
var ErrNoCandidate = errors.New("policy: no child or unused feature to descend into")

// ExpansionKind selects how a descent chooses between existing children
// and new nodes.
type ExpansionKind uint8

const (
	// Discrete expands only when progressive widening allows it.
	Discrete ExpansionKind = iota
	// Continuous lets unused features compete with existing children at
	// every step.
	Continuous
)

// ParseExpansion resolves an expansion strategy name. The empty name selects
// Discrete.
func ParseExpansion(name string) (ExpansionKind, error) {
	switch name {
	case "", "discrete":
		return Discrete, nil
	case "continuous":
		return Continuous, nil
	}
	return 0, &ConfigError{Field: "expansion_strategy", Value: name, Reason: "unsupported"}
}

func (k ExpansionKind) String() string {
	switch k {
	case Discrete:
		return "discrete"
	case Continuous:
		return "continuous"
	default:
		return fmt.Sprintf("ExpansionKind(%d)", uint8(k))
	}
}

// Step is the outcome of one descent decision.
type Step struct {
	Node lattice.NodeID
	// Expanded is set when Node was materialised by this step.
	Expanded bool
}

// Expander chooses the next node of a descent.
type Expander struct {
	kind     ExpansionKind
	params   Params
	universe *featureset.Universe
	index    *lattice.Index
	scorer   *Scorer
	rng      *rand.Rand
}

// NewExpander returns an expander over index. seed drives the uniform draw
// of the discrete strategy when no unused feature scores above zero.
func NewExpander(kind ExpansionKind, params Params, u *featureset.Universe, index *lattice.Index, scorer *Scorer, seed uint64) (*Expander, error) {
	if kind > Continuous {
		return nil, &ConfigError{Field: "expansion_strategy", Value: kind, Reason: "unsupported"}
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Expander{
		kind:     kind,
		params:   params,
		universe: u,
		index:    index,
		scorer:   scorer,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Kind returns the expansion variant.
func (e *Expander) Kind() ExpansionKind { return e.kind }

// Next picks the node the descent moves to from id.
func (e *Expander) Next(id lattice.NodeID) (Step, error) {
	n := e.index.Node(id)
	if n == nil {
		return Step{Node: lattice.NoNode}, fmt.Errorf("%w: %d", lattice.ErrNodeNotFound, id)
	}
	if e.kind == Continuous {
		return e.nextContinuous(n)
	}
	return e.nextDiscrete(n)
}

// ShouldExpand reports whether the discrete strategy materialises a new
// child of n.
func (e *Expander) ShouldExpand(n *lattice.Node) bool {
	t := n.Visits()
	if t == 0 {
		return true
	}
	widen := math.Floor(math.Pow(float64(t), e.params.BT)) -
		math.Floor(math.Pow(float64(t-1), e.params.BT))
	if widen <= 0 {
		return false
	}
	return !e.universe.Full().IsSubsetOf(e.index.UsedFeatures(n.ID()))
}

// Unused returns, in ascending order, the features that are neither in n nor
// in any of its children.
func (e *Expander) Unused(n *lattice.Node) []featureset.ID {
	return e.universe.Full().Difference(e.index.UsedFeatures(n.ID())).IDs()
}

func (e *Expander) nextDiscrete(n *lattice.Node) (Step, error) {
	if !e.ShouldExpand(n) {
		return e.bestChild(n)
	}

	unused := e.Unused(n)
	if len(unused) == 0 {
		return e.bestChild(n)
	}

	var (
		pick      featureset.ID
		bestScore = 0.0
		found     bool
	)
	for _, f := range unused {
		s, err := e.scorer.ExpansionScore(f, n)
		if err != nil {
			return Step{Node: lattice.NoNode}, err
		}
		if s > bestScore {
			pick, bestScore, found = f, s, true
		}
	}
	if !found {
		pick = unused[e.rng.IntN(len(unused))]
	}
	return e.expand(n, pick)
}

func (e *Expander) nextContinuous(n *lattice.Node) (Step, error) {
	child, bestScore, err := e.scoreChildren(n)
	if err != nil {
		return Step{Node: lattice.NoNode}, err
	}

	var (
		pick  featureset.ID
		found bool
	)
	for _, f := range e.Unused(n) {
		s, err := e.scorer.ExpansionScore(f, n)
		if err != nil {
			return Step{Node: lattice.NoNode}, err
		}
		if s *= e.params.NewNodePreference; s > bestScore {
			pick, bestScore, found = f, s, true
		}
	}
	if found {
		return e.expand(n, pick)
	}
	if child == lattice.NoNode {
		return Step{Node: lattice.NoNode}, fmt.Errorf("%w: node %d", ErrNoCandidate, n.ID())
	}
	return Step{Node: child}, nil
}

func (e *Expander) expand(n *lattice.Node, f featureset.ID) (Step, error) {
	id, err := e.index.AddNode(n.ID(), f)
	if err != nil {
		return Step{Node: lattice.NoNode}, err
	}
	return Step{Node: id, Expanded: true}, nil
}

func (e *Expander) bestChild(n *lattice.Node) (Step, error) {
	child, _, err := e.scoreChildren(n)
	if err != nil {
		return Step{Node: lattice.NoNode}, err
	}
	if child == lattice.NoNode {
		return Step{Node: lattice.NoNode}, fmt.Errorf("%w: node %d", ErrNoCandidate, n.ID())
	}
	return Step{Node: child}, nil
}

// scoreChildren returns the first child with the strictly highest score.
// The running best starts below any real score so negative oracle scores
// stay eligible.
func (e *Expander) scoreChildren(n *lattice.Node) (lattice.NodeID, float64, error) {
	best, bestScore := lattice.NoNode, math.Inf(-1)
	for _, cid := range n.Children() {
		s, err := e.scorer.Score(n, e.index.Node(cid))
		if err != nil {
			return lattice.NoNode, 0, err
		}
		if best == lattice.NoNode || s > bestScore {
			best, bestScore = cid, s
		}
	}
	return best, bestScore, nil
}
