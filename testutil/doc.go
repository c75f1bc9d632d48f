// Package testutil provides testing utilities for gsfs.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded RNG, synthetic classification datasets with known
// informative columns, and deterministic oracles with a known optimum.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	ds := rng.ClassificationDataset(200, 3, 5) // 3 informative, 5 noise columns
//
// # Deterministic Oracles
//
//	oracle := testutil.NewAdditiveOracle(testutil.DefaultWeights, 0.02)
//	res, _ := sel.Fit(ctx, oracle)
//	// best subset: A, B, C, D with score 0.72
package testutil
