package lattice

import (
	"fmt"
)

// InvariantError describes a violated graph invariant.
type InvariantError struct {
	Parent NodeID
	Child  NodeID
	Reason string
}

func (e *InvariantError) Error() string {
	if e.Child == NoNode {
		return fmt.Sprintf("lattice: node %d: %s", e.Parent, e.Reason)
	}
	return fmt.Sprintf("lattice: %d→%d: %s", e.Parent, e.Child, e.Reason)
}

// Validate checks the bucket-uniqueness and edge invariants over every pair
// of nodes in adjacent buckets. It is O(Σ|B_k|·|B_k+1|) and intended for
// tests and diagnostics.
func (x *Index) Validate() error {
	for size, ids := range x.buckets {
		seen := make(map[string]NodeID, len(ids))
		for _, id := range ids {
			n := x.nodes[id]
			if n.Size() != size {
				return &InvariantError{Parent: id, Child: NoNode, Reason: fmt.Sprintf("stored in bucket %d but has %d features", size, n.Size())}
			}
			key := n.features.Key()
			if other, dup := seen[key]; dup {
				return &InvariantError{Parent: other, Child: id, Reason: "same feature set twice in one bucket"}
			}
			seen[key] = id
		}
	}

	for _, n := range x.nodes {
		children := make(map[NodeID]struct{}, len(n.children))
		for _, cid := range n.children {
			if _, dup := children[cid]; dup {
				return &InvariantError{Parent: n.id, Child: cid, Reason: "duplicate edge"}
			}
			children[cid] = struct{}{}

			c := x.nodes[cid]
			if c.Size() != n.Size()+1 {
				return &InvariantError{Parent: n.id, Child: cid, Reason: "edge skips a level"}
			}
			if !n.features.IsSubsetOf(c.features) {
				return &InvariantError{Parent: n.id, Child: cid, Reason: "edge to a non-superset"}
			}
		}
		for _, cid := range x.buckets[n.Size()+1] {
			if _, ok := children[cid]; ok {
				continue
			}
			if n.features.IsSubsetOf(x.nodes[cid].features) {
				return &InvariantError{Parent: n.id, Child: cid, Reason: "missing edge to superset"}
			}
		}
	}
	return nil
}
