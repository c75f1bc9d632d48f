package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/hupe1980/gsfs"
	"github.com/hupe1980/gsfs/blobstore"
	"github.com/hupe1980/gsfs/codec"
	"github.com/hupe1980/gsfs/dataset"
	"github.com/hupe1980/gsfs/engine"
	"github.com/hupe1980/gsfs/internal/config"
	"github.com/hupe1980/gsfs/observability"
	"github.com/hupe1980/gsfs/oracle"
	"github.com/hupe1980/gsfs/report"
)

type runFlags struct {
	data        string
	label       string
	scoring     string
	strategy    string
	iterations  int
	duration    time.Duration
	seed        uint64
	metric      string
	outputDir   string
	compression string
	codec       string
	tables      bool
	dot         bool
	logLevel    string
	logFormat   string
	metricsAddr string
}

func newRunCmd(configPath *string) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Select features of a CSV table",
		Long: `Run a graph search over the columns of a CSV table. Every column except
the label is a candidate feature; each subset is scored by a nearest-centroid
classifier under cross-validation or a holdout split.

Flags override the corresponding configuration file keys.`,
		Example: `  gsfs run --data train.csv --label y --iterations 500
  gsfs run --config gsfs.yaml --duration 2m --output-dir ./reports --tables`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			applyRunFlags(cmd, &f, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runSearch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.data, "data", "d", "", "Path to the training CSV")
	fl.StringVarP(&f.label, "label", "l", "", "Name of the label column")
	fl.StringVar(&f.scoring, "scoring", "", "Scoring function (rave_ucb, basic_ucb, ucb_with_variance)")
	fl.StringVar(&f.strategy, "strategy", "", "Multi-arm strategy (discrete, continuous)")
	fl.IntVarP(&f.iterations, "iterations", "n", 0, "Number of episodes")
	fl.DurationVar(&f.duration, "duration", 0, "Wall-clock budget; overrides --iterations")
	fl.Uint64Var(&f.seed, "seed", 0, "Seed of the search")
	fl.StringVar(&f.metric, "metric", "", "Oracle metric (roc_auc, acc, f1)")
	fl.StringVarP(&f.outputDir, "output-dir", "o", "", "Export the report to a local directory")
	fl.StringVar(&f.compression, "compression", "", "Report compression (none, lz4, zstd)")
	fl.StringVar(&f.codec, "codec", "", "Report codec (go-json, json, json-indent)")
	fl.BoolVar(&f.tables, "tables", false, "Also export the summary and CSV tables")
	fl.BoolVar(&f.dot, "dot", false, "Also export the search graph in DOT format")
	fl.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fl.StringVar(&f.logFormat, "log-format", "", "Log format (text, json)")
	fl.StringVar(&f.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")

	return cmd
}

// applyRunFlags copies explicitly set flags over cfg.
func applyRunFlags(cmd *cobra.Command, f *runFlags, cfg *config.Config) {
	changed := cmd.Flags().Changed

	if changed("data") {
		cfg.Data.Path = f.data
	}
	if changed("label") {
		cfg.Data.Label = f.label
	}
	if changed("scoring") {
		cfg.Search.ScoringFunction = f.scoring
	}
	if changed("strategy") {
		cfg.Search.MultiarmStrategy = f.strategy
	}
	if changed("iterations") {
		cfg.Search.CalculationsDoneCondition = "iterations"
		cfg.Search.Iterations = f.iterations
	}
	if changed("duration") {
		cfg.Search.CalculationsDoneCondition = "time"
		cfg.Search.Duration = f.duration
	}
	if changed("seed") {
		cfg.Search.Seed = f.seed
	}
	if changed("metric") {
		cfg.Oracle.Metric = f.metric
	}
	if changed("output-dir") {
		cfg.Output.Backend = "local"
		cfg.Output.Dir = f.outputDir
	}
	if changed("compression") {
		cfg.Output.Compression = f.compression
	}
	if changed("codec") {
		cfg.Output.Codec = f.codec
	}
	if changed("tables") {
		cfg.Output.Tables = f.tables
	}
	if changed("dot") {
		cfg.Output.DOT = f.dot
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if changed("log-format") {
		cfg.Logging.Format = f.logFormat
	}
	if changed("metrics-addr") {
		cfg.Metrics.Addr = f.metricsAddr
	}
}

func runSearch(ctx context.Context, stdout, stderr io.Writer, cfg *config.Config) error {
	logger := newLogger(stderr, cfg.Logging)

	if cfg.Data.Path == "" {
		return errors.New("no training data: set data.path or --data")
	}
	data, err := loadDataset(ctx, cfg.Data)
	if err != nil {
		return err
	}

	features := cfg.Search.Features
	if len(features) == 0 {
		features = data.Columns()
	}

	evaluator, err := newOracle(data, cfg.Oracle)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewPrometheusCollector(reg, "gsfs")

	if cfg.Metrics.Addr != "" {
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "addr", cfg.Metrics.Addr, "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		logger.Info("serving metrics", "addr", cfg.Metrics.Addr)
	}

	opts := []gsfs.Option{
		gsfs.WithScoring(cfg.Search.ScoringFunction),
		gsfs.WithExpansion(cfg.Search.MultiarmStrategy),
		gsfs.WithTermination(cfg.Search.EndStrategy),
		gsfs.WithParams(cfg.Search.Params.Policy()),
		gsfs.WithBudget(budget(cfg.Search)),
		gsfs.WithSeed(cfg.Search.Seed),
		gsfs.WithLogger(logger),
		gsfs.WithMetricsCollector(metrics),
		gsfs.WithMetricName(cfg.Oracle.Metric),
	}
	if len(cfg.Search.WarmStart) > 0 {
		opts = append(opts, gsfs.WithWarmStart(cfg.Search.WarmStart))
	}

	sel, err := gsfs.New(features, opts...)
	if err != nil {
		return err
	}

	// A cancelled context keeps the partial result; report it before
	// returning the error.
	_, fitErr := sel.Fit(ctx, evaluator)

	r, err := sel.Report()
	if err != nil {
		return errors.Join(fitErr, err)
	}
	if err := report.WriteSummary(stdout, r); err != nil {
		return errors.Join(fitErr, err)
	}
	if fitErr != nil && !errors.Is(fitErr, context.Canceled) {
		return fitErr
	}

	// Export with a fresh context so an interrupt still saves the report.
	if err := export(context.WithoutCancel(ctx), stdout, sel, cfg.Output); err != nil {
		return errors.Join(fitErr, err)
	}
	return fitErr
}

func loadDataset(ctx context.Context, cfg config.DataConfig) (*dataset.Dataset, error) {
	store := blobstore.NewLocalStore(filepath.Dir(cfg.Path))
	data, err := dataset.LoadCSV(ctx, store, filepath.Base(cfg.Path), cfg.Label)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", cfg.Path, err)
	}
	if cfg.Positive != nil {
		data = data.Relabel(*cfg.Positive)
	}
	return data, nil
}

// newOracle builds the classifier oracle, wrapped in a cache and a limiter
// when configured.
func newOracle(data *dataset.Dataset, cfg config.OracleConfig) (engine.Oracle, error) {
	metric, err := oracle.ParseMetric(cfg.Metric)
	if err != nil {
		return nil, err
	}
	opts := []oracle.Option{
		oracle.WithMetric(metric),
		oracle.WithFolds(cfg.CV),
		oracle.WithTestSize(cfg.TestSize),
		oracle.WithSeed(cfg.Seed),
	}

	var o engine.Oracle
	switch cfg.Method {
	case "holdout":
		o, err = oracle.NewHoldout(data, opts...)
	default:
		o, err = oracle.NewCrossValidator(data, opts...)
	}
	if err != nil {
		return nil, err
	}

	if cfg.CacheSize > 0 {
		o = oracle.NewCached(o, cfg.CacheSize)
	}
	if cfg.MaxConcurrent > 0 || cfg.RatePerSecond > 0 {
		o = oracle.NewLimiter(o, oracle.LimiterConfig{
			MaxConcurrent: cfg.MaxConcurrent,
			PerSecond:     cfg.RatePerSecond,
		})
	}
	return o, nil
}

func budget(cfg config.SearchConfig) engine.Budget {
	if cfg.CalculationsDoneCondition == "time" {
		return engine.TimeBudget(cfg.Duration)
	}
	return engine.IterationBudget(cfg.Iterations)
}

func export(ctx context.Context, stdout io.Writer, sel *gsfs.Selector, cfg config.OutputConfig) error {
	store, err := openStore(ctx, cfg)
	if err != nil || store == nil {
		return err
	}

	compression, err := report.ParseCompression(cfg.Compression)
	if err != nil {
		return err
	}

	c, err := codec.Parse(cfg.Codec)
	if err != nil {
		return err
	}

	prefix := "gsfs-" + sel.RunID()
	opts := []gsfs.ExportOption{
		gsfs.WithReportCompression(compression),
		gsfs.WithReportOptions(report.WithCodec(c)),
	}
	if cfg.Tables {
		opts = append(opts, gsfs.WithTables(prefix))
	}

	name, err := sel.Export(ctx, store, opts...)
	if err != nil {
		return err
	}
	printf(stdout, "Report: %s\n", name)

	if cfg.DOT {
		if err := writeDOT(ctx, store, prefix+".dot", sel); err != nil {
			return err
		}
		printf(stdout, "Graph: %s.dot\n", prefix)
	}
	return nil
}

func writeDOT(ctx context.Context, store blobstore.Store, name string, sel *gsfs.Selector) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}
	if err := sel.WriteDOT(w, true); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
