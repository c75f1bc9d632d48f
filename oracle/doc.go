// Package oracle provides ready-made oracles for feature-subset search.
//
// CrossValidator and Holdout score a subset by training a Classifier on the
// subset's columns of a binary dataset and measuring a Metric on held-out
// rows:
//
//	cv, err := oracle.NewCrossValidator(ds,
//	    oracle.WithMetric(oracle.ROCAUC),
//	    oracle.WithFolds(4),
//	)
//	res, err := sel.Fit(ctx, cv)
//
// Decorators wrap any oracle:
//
//	o := oracle.NewCached(cv, 4096)                                  // memoise per subset
//	o2 := oracle.NewLimiter(o, oracle.LimiterConfig{MaxConcurrent: 2}) // bound concurrency
package oracle
