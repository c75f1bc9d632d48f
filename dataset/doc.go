// Package dataset holds the numeric tables the built-in oracles train on.
//
// A Dataset is a dense row-major matrix of float64 feature values with one
// named column per feature plus a label vector. ReadCSV parses a headered
// CSV file, LoadCSV reads one from a blobstore.Store:
//
//	ds, err := dataset.LoadCSV(ctx, store, "train.csv", "churned")
//	ds = ds.Relabel(1)               // binary target: 1 vs. rest
//	sub, err := ds.Select([]string{"age", "tenure"})
package dataset
