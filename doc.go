// Package gsfs selects feature subsets by graph search.
//
// The search explores the lattice of feature subsets as a directed acyclic
// graph rooted at the empty set. Every episode walks down from the root,
// choosing between existing children (UCB scoring blended with RAVE
// statistics) and new children (progressive widening), until the end
// strategy fires. The leaf's subset is scored by a caller-supplied Oracle
// and the score is propagated back along the path and into the l-RAVE and
// g-RAVE tables.
//
// # Quick Start
//
//	sel, err := gsfs.Search("age", "income", "tenure", "region").
//	    RaveUCB().
//	    Discrete().
//	    Iterations(500).
//	    Build()
//
//	res, err := sel.Fit(ctx, gsfs.OracleFunc(func(ctx context.Context, features []string) (float64, error) {
//	    return model.CrossValidate(ctx, features)
//	}))
//	fmt.Println(res.BestFeatures, res.BestScore)
//
// Functional options are equivalent:
//
//	sel, err := gsfs.New(features,
//	    gsfs.WithScoring("ucb_with_variance"),
//	    gsfs.WithExpansion("continuous"),
//	    gsfs.WithDuration(30*time.Second),
//	)
//
// # Scoring Functions
//
//   - rave_ucb (default): UCB1 blended with l-RAVE of the child subset and
//     g-RAVE of the added feature
//   - basic_ucb: plain UCB1
//   - ucb_with_variance: UCB1-tuned, using the child's score variance
//
// # Multi-arm Strategies
//
//   - discrete (default): a new child is added when
//     floor(T^b_T) grows; the feature with the best RAVE expansion score
//     wins, otherwise one is drawn uniformly from a seeded PCG source
//   - continuous: the best expansion score competes directly with the best
//     child score, scaled by new_node_preference
//
// # Continuing a Search
//
// Refit keeps the search graph and the RAVE tables and adds budget:
//
//	res, err = sel.Refit(ctx, oracle, gsfs.Budget{Kind: engine.Iterations, Iterations: 200})
//
// # Oracles
//
// Package oracle provides ready-made oracles over a numeric dataset
// (k-fold cross-validation, holdout) and decorators that cache results or
// bound concurrency and rate.
//
// # Reports
//
// Export writes the run (configuration, history, RAVE tables) to any
// blobstore.Store, optionally zstd or lz4 compressed:
//
//	name, err := sel.Export(ctx, blobstore.NewLocalStore("./runs"),
//	    gsfs.WithReportCompression(report.Zstd),
//	    gsfs.WithTables("stats"),
//	)
//
// # Observability
//
// Use WithLogger for structured slog output and WithMetricsCollector for
// counters; package observability provides a Prometheus collector.
package gsfs
