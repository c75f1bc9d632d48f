package lattice

import (
	"errors"
	"fmt"

	"github.com/hupe1980/gsfs/featureset"
	"github.com/hupe1980/gsfs/internal/visited"
)

var (
	// ErrNodeNotFound is returned for an ID outside the arena.
	ErrNodeNotFound = errors.New("lattice: node not found")

	// ErrFeaturePresent is returned when extending a node by a feature it
	// already contains.
	ErrFeaturePresent = errors.New("lattice: feature already in node")
)

// ErrDuplicateNode is returned by AddNode when the extended subset already
// has a node. It signals a broken caller: the expansion policy never asks
// for an extension that is already a child.
type ErrDuplicateNode struct {
	Existing NodeID
	Parent   NodeID
	Feature  featureset.ID
}

func (e *ErrDuplicateNode) Error() string {
	return fmt.Sprintf("lattice: extending node %d by feature %d duplicates node %d", e.Parent, e.Feature, e.Existing)
}

// Index is the node arena plus the size buckets used for DAG wiring.
type Index struct {
	nodes   []*Node
	buckets map[int][]NodeID
	byKey   map[string]NodeID
	edges   int
}

// NewIndex returns an index seeded with the empty-set root.
func NewIndex() *Index {
	root := newNode(RootID, featureset.Empty())
	return &Index{
		nodes:   []*Node{root},
		buckets: map[int][]NodeID{0: {RootID}},
		byKey:   map[string]NodeID{root.features.Key(): RootID},
	}
}

// Root returns the empty-set node.
func (x *Index) Root() *Node { return x.nodes[RootID] }

// Node returns the node with the given ID, or nil.
func (x *Index) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(x.nodes) {
		return nil
	}
	return x.nodes[id]
}

// Len returns the number of nodes, root included.
func (x *Index) Len() int { return len(x.nodes) }

// Edges returns the number of parent→child edges.
func (x *Index) Edges() int { return x.edges }

// Depth returns the size of the largest subset in the index.
func (x *Index) Depth() int {
	d := 0
	for k := range x.buckets {
		if k > d {
			d = k
		}
	}
	return d
}

// Bucket returns the IDs of all nodes whose subset has the given size, in
// insertion order. The slice must not be modified.
func (x *Index) Bucket(size int) []NodeID { return x.buckets[size] }

// Lookup returns the node representing exactly s.
func (x *Index) Lookup(s featureset.Set) (NodeID, bool) {
	id, ok := x.byKey[s.Key()]
	return id, ok
}

// AddNode materialises parent ∪ {feature} and wires it into the DAG:
// every node one level up that is a subset becomes a parent, every node one
// level down that is a superset becomes a child.
func (x *Index) AddNode(parent NodeID, feature featureset.ID) (NodeID, error) {
	p := x.Node(parent)
	if p == nil {
		return NoNode, fmt.Errorf("%w: %d", ErrNodeNotFound, parent)
	}
	if p.features.Contains(feature) {
		return NoNode, fmt.Errorf("%w: node %d, feature %d", ErrFeaturePresent, parent, feature)
	}

	features := p.features.With(feature)
	key := features.Key()
	if existing, ok := x.byKey[key]; ok {
		return NoNode, &ErrDuplicateNode{Existing: existing, Parent: parent, Feature: feature}
	}

	id := NodeID(len(x.nodes))
	n := newNode(id, features)
	size := features.Len()

	x.nodes = append(x.nodes, n)
	x.buckets[size] = append(x.buckets[size], id)
	x.byKey[key] = id

	for _, pid := range x.buckets[size-1] {
		if up := x.nodes[pid]; up.features.IsSubsetOf(features) {
			up.addChild(id)
			x.edges++
		}
	}
	for _, cid := range x.buckets[size+1] {
		if features.IsSubsetOf(x.nodes[cid].features) {
			n.addChild(cid)
			x.edges++
		}
	}
	return id, nil
}

// UsedFeatures returns the node's features united with those of all its
// children: every feature that no longer yields a new child.
func (x *Index) UsedFeatures(id NodeID) featureset.Set {
	n := x.Node(id)
	if n == nil {
		return featureset.Empty()
	}
	used := n.features
	for _, cid := range n.children {
		used = used.Union(x.nodes[cid].features)
	}
	return used
}

// Walk calls fn for every node reachable from the root, breadth first,
// each node once. Walk stops early when fn returns false.
func (x *Index) Walk(fn func(*Node) bool) {
	seen := visited.New(len(x.nodes))
	queue := []NodeID{RootID}
	seen.Visit(int(RootID))

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		n := x.nodes[id]
		if !fn(n) {
			return
		}
		for _, cid := range n.children {
			if seen.Visit(int(cid)) {
				queue = append(queue, cid)
			}
		}
	}
}
