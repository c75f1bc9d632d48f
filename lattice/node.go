package lattice

import (
	"github.com/hupe1980/gsfs/featureset"
)

// NodeID addresses a node in an Index arena.
type NodeID int32

const (
	// RootID is the ID of the empty-set root of every Index.
	RootID NodeID = 0

	// NoNode is returned where no node applies.
	NoNode NodeID = -1
)

// Node is one feature subset of the search graph with its running
// statistics.
type Node struct {
	id       NodeID
	features featureset.Set
	visits   int
	scoreSum float64
	scores   []float64
	children []NodeID
}

func newNode(id NodeID, features featureset.Set) *Node {
	return &Node{id: id, features: features}
}

// ID returns the node's arena ID.
func (n *Node) ID() NodeID { return n.id }

// Features returns the subset this node represents.
func (n *Node) Features() featureset.Set { return n.features }

// Size returns |Features()|.
func (n *Node) Size() int { return n.features.Len() }

// Visits returns T, the number of scores backpropagated through the node.
func (n *Node) Visits() int { return n.visits }

// ScoreSum returns the sum of all scores added.
func (n *Node) ScoreSum() float64 { return n.scoreSum }

// Scores returns a copy of the scores in insertion order.
func (n *Node) Scores() []float64 {
	out := make([]float64, len(n.scores))
	copy(out, n.scores)
	return out
}

// Children returns the IDs of the node's direct supersets.
// The slice is owned by the node and must not be modified.
func (n *Node) Children() []NodeID { return n.children }

// AddScore records one backpropagated score.
func (n *Node) AddScore(v float64) {
	n.scores = append(n.scores, v)
	n.visits++
	n.scoreSum += v
}

// Mean returns the average score, or 0 for an unvisited node.
func (n *Node) Mean() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.scoreSum / float64(n.visits)
}

// Variance returns the population variance of the scores, or 0 for an
// unvisited node.
func (n *Node) Variance() float64 {
	if len(n.scores) == 0 {
		return 0
	}
	mean := n.scoreSum / float64(len(n.scores))
	var ss float64
	for _, s := range n.scores {
		d := s - mean
		ss += d * d
	}
	return ss / float64(len(n.scores))
}

// Label returns the sorted, comma-joined feature names of the node.
func (n *Node) Label(u *featureset.Universe) string {
	return u.Label(n.features)
}

func (n *Node) addChild(id NodeID) {
	n.children = append(n.children, id)
}
