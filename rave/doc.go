// Package rave implements the two Rapid Action Value Estimation tables that
// share statistics across the search graph.
//
// LocalTable (l-RAVE) aggregates scores by exact terminal subset and answers
// queries by containment: the score of a query Q is the mean over every
// recorded subset P with Q ⊆ P.
//
// GlobalTable (g-RAVE) aggregates scores per single feature: every episode
// contributes its full score once to each feature it used.
//
// A zero score from either table means "no information", not a low score.
package rave
