// Package lattice holds the search graph: one Node per explored feature
// subset, stored in an arena and addressed by NodeID.
//
// The graph is a DAG over the subset lattice, not a tree. When a node is
// inserted, Index wires it to every existing node one level up or down whose
// feature set is in a subset relation with it, so that two descents that
// reach the same subset through different orders share one node and its
// statistics.
//
// Invariants maintained by Index:
//
//   - a feature set appears at most once per size bucket;
//   - an edge u→v exists iff |v| = |u|+1 and u ⊆ v, for every pair of nodes
//     in adjacent buckets, independent of insertion order.
//
// Nodes are never removed. Index is not safe for concurrent mutation.
package lattice
