// Package report persists the outcome of a feature-selection run.
//
// A Report bundles the run ID, the resolved configuration and the engine
// Result (best subset, history, g-RAVE and l-RAVE tables). Reports are
// encoded with a codec.Codec, optionally compressed with zstd or lz4, and
// written to any blobstore.Store:
//
//	r := report.New(runID, cfg, res)
//	n, err := report.Save(ctx, store, report.Name(runID, report.Zstd), r,
//	    report.WithCompression(report.Zstd))
//
// Load detects the compression from the leading magic bytes, so callers
// never need to know how a report was written.
//
// WriteSummary and the CSV writers render the human-readable tables;
// SaveTables writes all of them next to each other.
package report
