// Package engine runs the graph search over the feature-subset lattice.
//
// One Engine owns every piece of run state: the lattice index, the l-RAVE
// and g-RAVE tables, the policies, the best subset found so far and the
// improvement history. Nothing is shared between engines.
//
// # Episodes
//
// Each episode descends from the root through Expander.Next until the
// Terminator accepts the current node, asks the Oracle for the score of that
// node's feature subset, adds the score to every node on the path and folds
// it into both RAVE tables once:
//
//	root ──Next──▶ n1 ──Next──▶ n2 ... ──▶ leaf ──Evaluate──▶ score
//	  ▲                                                          │
//	  └──────────────── AddScore on every visited node ◀─────────┘
//
// # Budgets
//
// An iteration budget of N runs exactly N episodes; a time budget runs
// episodes until the wall clock since Run (or the last Extend) exceeds the
// duration. The budget and ctx are checked between episodes only; a running
// oracle call observes ctx itself.
//
// Extend keeps the graph and the tables and grants a further budget, which is
// how a search is continued after inspecting its result.
package engine
