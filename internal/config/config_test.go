package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gsfs/policy"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, policy.DefaultParams(), cfg.Search.Params.Policy())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gsfs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
search:
  scoring_function: ucb_with_variance
  multiarm_strategy: continuous
  calculations_done_condition: time
  duration: 90s
  params:
    c_e: 3
oracle:
  metric: f1
data:
  path: train.csv
  label: churned
  positive: 2
output:
  backend: local
  dir: ./runs
  compression: zstd
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "ucb_with_variance", cfg.Search.ScoringFunction)
	assert.Equal(t, "continuous", cfg.Search.MultiarmStrategy)
	assert.Equal(t, 90*time.Second, cfg.Search.Duration)
	assert.Equal(t, 3.0, cfg.Search.Params.CE)
	assert.Equal(t, 1.0, cfg.Search.Params.C, "unset keys keep defaults")
	assert.Equal(t, "f1", cfg.Oracle.Metric)
	assert.Equal(t, 4, cfg.Oracle.CV)
	require.NotNil(t, cfg.Data.Positive)
	assert.Equal(t, 2.0, *cfg.Data.Positive)
	assert.Equal(t, "zstd", cfg.Output.Compression)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  unknown_key: 1\n"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"scoring", func(c *Config) { c.Search.ScoringFunction = "thompson" }, "Search.ScoringFunction"},
		{"strategy", func(c *Config) { c.Search.MultiarmStrategy = "greedy" }, "Search.MultiarmStrategy"},
		{"iteration budget", func(c *Config) { c.Search.Iterations = 0 }, "Search.Iterations"},
		{"time budget", func(c *Config) { c.Search.CalculationsDoneCondition = "time" }, "Search.Duration"},
		{"c_l", func(c *Config) { c.Search.Params.CL = 0 }, "Search.Params.CL"},
		{"c_e", func(c *Config) { c.Search.Params.CE = -1 }, "Search.Params.CE"},
		{"folds", func(c *Config) { c.Oracle.CV = 1 }, "Oracle.CV"},
		{"test size", func(c *Config) { c.Oracle.TestSize = 1 }, "Oracle.TestSize"},
		{"metric", func(c *Config) { c.Oracle.Metric = "mse" }, "Oracle.Metric"},
		{"bucket", func(c *Config) { c.Output.Backend = "s3" }, "Output.Bucket"},
		{"endpoint", func(c *Config) { c.Output.Backend = "minio"; c.Output.Bucket = "b" }, "Output.Endpoint"},
		{"dir", func(c *Config) { c.Output.Backend = "local" }, "Output.Dir"},
		{"compression", func(c *Config) { c.Output.Compression = "gzip" }, "Output.Compression"},
		{"codec", func(c *Config) { c.Output.Codec = "msgpack" }, "Output.Codec"},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }, "Logging.Level"},
		{"duplicate features", func(c *Config) { c.Search.Features = []string{"a", "a"} }, "Search.Features"},
		{"metrics addr", func(c *Config) { c.Metrics.Addr = "nope" }, "Metrics.Addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Search.Duration = time.Minute

	data, err := cfg.Marshal()
	require.NoError(t, err)

	got := Default()
	require.NoError(t, Parse(data, got))
	assert.Equal(t, cfg, got)
}
