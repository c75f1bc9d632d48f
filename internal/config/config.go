// Package config loads and validates the gsfs command-line configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/gsfs/policy"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the complete configuration of a gsfs run.
type Config struct {
	Search  SearchConfig  `yaml:"search" json:"search"`
	Oracle  OracleConfig  `yaml:"oracle" json:"oracle"`
	Data    DataConfig    `yaml:"data" json:"data"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
}

// SearchConfig configures the graph search.
type SearchConfig struct {
	// Features restricts the universe. Empty means every dataset column.
	Features []string `yaml:"features,omitempty" json:"features,omitempty" validate:"unique,dive,required"`

	ScoringFunction  string `yaml:"scoring_function" json:"scoring_function" validate:"oneof=rave_ucb basic_ucb ucb_with_variance UCB1_rave UCB1 UCB1_with_variance"`
	MultiarmStrategy string `yaml:"multiarm_strategy" json:"multiarm_strategy" validate:"oneof=discrete continuous"`
	EndStrategy      string `yaml:"end_strategy" json:"end_strategy" validate:"oneof=default first_new_or_full"`

	// CalculationsDoneCondition is "iterations" or "time".
	CalculationsDoneCondition string        `yaml:"calculations_done_condition" json:"calculations_done_condition" validate:"oneof=iterations time"`
	Iterations                int           `yaml:"iterations" json:"iterations" validate:"gte=0"`
	Duration                  time.Duration `yaml:"duration" json:"duration" validate:"gte=0"`

	Seed      uint64             `yaml:"seed" json:"seed"`
	Params    ParamsConfig       `yaml:"params" json:"params"`
	WarmStart map[string]float64 `yaml:"warm_start,omitempty" json:"warm_start,omitempty"`
}

// ParamsConfig holds the policy weights.
type ParamsConfig struct {
	CE                float64 `yaml:"c_e" json:"c_e" validate:"gte=0"`
	C                 float64 `yaml:"c" json:"c" validate:"gte=0"`
	CL                float64 `yaml:"c_l" json:"c_l" validate:"gt=0"`
	BT                float64 `yaml:"b_T" json:"b_T" validate:"gt=0"`
	NewNodePreference float64 `yaml:"new_node_preference" json:"new_node_preference" validate:"gt=0"`
}

// Policy converts to policy.Params.
func (p ParamsConfig) Policy() policy.Params {
	return policy.Params{CE: p.CE, C: p.C, CL: p.CL, BT: p.BT, NewNodePreference: p.NewNodePreference}
}

// OracleConfig configures the built-in classifier oracle.
type OracleConfig struct {
	// Method is "cv" (k-fold cross-validation) or "holdout".
	Method   string  `yaml:"method" json:"method" validate:"oneof=cv holdout"`
	Metric   string  `yaml:"metric" json:"metric" validate:"oneof=roc_auc acc f1"`
	CV       int     `yaml:"cv" json:"cv" validate:"gte=2"`
	TestSize float64 `yaml:"test_size" json:"test_size" validate:"gt=0,lt=1"`
	Seed     uint64  `yaml:"seed" json:"seed"`

	// CacheSize bounds the per-subset score cache. 0 disables it.
	CacheSize     int     `yaml:"cache_size" json:"cache_size" validate:"gte=0"`
	MaxConcurrent int64   `yaml:"max_concurrent" json:"max_concurrent" validate:"gte=0"`
	RatePerSecond float64 `yaml:"rate_per_second" json:"rate_per_second" validate:"gte=0"`
}

// DataConfig locates the training table.
type DataConfig struct {
	Path  string `yaml:"path" json:"path"`
	Label string `yaml:"label" json:"label"`
	// Positive, when set, relabels the target to positive vs. rest.
	Positive *float64 `yaml:"positive,omitempty" json:"positive,omitempty"`
}

// OutputConfig selects where reports are exported.
type OutputConfig struct {
	// Backend is "local", "s3" or "minio". Empty disables export.
	Backend     string `yaml:"backend" json:"backend" validate:"omitempty,oneof=local s3 minio"`
	Dir         string `yaml:"dir" json:"dir" validate:"required_if=Backend local"`
	Bucket      string `yaml:"bucket" json:"bucket" validate:"required_if=Backend s3,required_if=Backend minio"`
	Prefix      string `yaml:"prefix" json:"prefix"`
	Region      string `yaml:"region" json:"region"`
	Endpoint    string `yaml:"endpoint" json:"endpoint" validate:"required_if=Backend minio"`
	Insecure    bool   `yaml:"insecure" json:"insecure"`
	Compression string `yaml:"compression" json:"compression" validate:"oneof=none lz4 zstd"`
	Codec       string `yaml:"codec" json:"codec" validate:"oneof=go-json json json-indent"`
	// Tables also writes the text summary and CSV tables.
	Tables bool `yaml:"tables" json:"tables"`
	// DOT also writes the search graph in Graphviz format.
	DOT bool `yaml:"dot" json:"dot"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" json:"format" validate:"oneof=text json"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Addr serves /metrics when non-empty, e.g. ":9090".
	Addr string `yaml:"addr" json:"addr" validate:"omitempty,hostname_port"`
}

// Default returns the default configuration.
func Default() *Config {
	p := policy.DefaultParams()
	return &Config{
		Search: SearchConfig{
			ScoringFunction:           policy.RaveUCB.String(),
			MultiarmStrategy:          policy.Discrete.String(),
			EndStrategy:               "default",
			CalculationsDoneCondition: "iterations",
			Iterations:                100,
			Seed:                      1,
			Params: ParamsConfig{
				CE:                p.CE,
				C:                 p.C,
				CL:                p.CL,
				BT:                p.BT,
				NewNodePreference: p.NewNodePreference,
			},
		},
		Oracle: OracleConfig{
			Method:    "cv",
			Metric:    "roc_auc",
			CV:        4,
			TestSize:  0.25,
			Seed:      1,
			CacheSize: 4096,
		},
		Data: DataConfig{
			Label: "y",
		},
		Output: OutputConfig{
			Compression: "none",
			Codec:       "go-json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg. Keys absent from data keep their value;
// unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Marshal encodes cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
