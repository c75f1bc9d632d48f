package gsfs

import (
	"context"

	"github.com/hupe1980/gsfs/blobstore"
	"github.com/hupe1980/gsfs/report"
)

type exportOptions struct {
	name        string
	compression report.Compression
	tables      string
	reportOpts  []report.Option
}

// ExportOption configures Export.
type ExportOption func(*exportOptions)

// WithReportName overrides the blob name. Default: report.Name(runID, compression).
func WithReportName(name string) ExportOption {
	return func(o *exportOptions) {
		o.name = name
	}
}

// WithReportCompression compresses the report. Default: report.None.
func WithReportCompression(c report.Compression) ExportOption {
	return func(o *exportOptions) {
		o.compression = c
	}
}

// WithTables additionally writes the text summary and the history, g-RAVE
// and l-RAVE CSV tables under the given name prefix.
func WithTables(prefix string) ExportOption {
	return func(o *exportOptions) {
		o.tables = prefix
	}
}

// WithReportOptions passes options such as report.WithCodec through.
func WithReportOptions(opts ...report.Option) ExportOption {
	return func(o *exportOptions) {
		o.reportOpts = append(o.reportOpts, opts...)
	}
}

// Report returns the current run as a report.
func (s *Selector) Report() (*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.result == nil {
		return nil, ErrNotFitted
	}
	return report.New(s.runID, s.config(), s.result), nil
}

// Export writes the report of the current run to store and returns the blob
// name it was written under.
//
// Example:
//
//	store := blobstore.NewLocalStore("./runs")
//	name, err := sel.Export(ctx, store, gsfs.WithReportCompression(report.Zstd))
func (s *Selector) Export(ctx context.Context, store blobstore.Store, optFns ...ExportOption) (string, error) {
	s.mu.RLock()
	logger := s.logger
	s.mu.RUnlock()

	r, err := s.Report()
	if err != nil {
		return "", err
	}

	var o exportOptions
	for _, fn := range optFns {
		fn(&o)
	}
	if o.name == "" {
		o.name = report.Name(r.RunID, o.compression)
	}

	opts := append([]report.Option{report.WithCompression(o.compression)}, o.reportOpts...)

	n, err := report.Save(ctx, store, o.name, r, opts...)
	if err == nil && o.tables != "" {
		err = report.SaveTables(ctx, store, o.tables, r)
	}
	logger.LogExport(ctx, o.name, n, err)
	if err != nil {
		return "", err
	}
	return o.name, nil
}
