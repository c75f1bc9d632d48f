package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/gsfs/engine"
	"github.com/hupe1980/gsfs/policy"
)

// FormatVersion is the version written into new reports.
const FormatVersion = 1

var (
	// ErrInvalidReport is returned when stored bytes do not decode into a
	// report.
	ErrInvalidReport = errors.New("report: invalid report")

	// ErrUnsupportedVersion is returned for reports written by a newer
	// format version.
	ErrUnsupportedVersion = errors.New("report: unsupported format version")
)

// Config is the resolved configuration of a run.
type Config struct {
	Features    []string      `json:"features"`
	Metric      string        `json:"metric_name,omitempty"`
	Scoring     string        `json:"scoring_function"`
	Expansion   string        `json:"multiarm_strategy"`
	Termination string        `json:"end_strategy"`
	Params      policy.Params `json:"params"`
	BudgetKind  string        `json:"calculations_done_condition"`
	Iterations  int           `json:"iterations,omitempty"`
	Duration    time.Duration `json:"duration,omitempty"`
	Seed        uint64        `json:"seed"`
}

// Budget renders the budget the way the summary prints it.
func (c Config) Budget() string {
	if c.BudgetKind == engine.Time.String() {
		return c.Duration.String()
	}
	return fmt.Sprint(c.Iterations)
}

// Report is the persisted form of a run.
type Report struct {
	Version   int           `json:"version"`
	RunID     string        `json:"run_id"`
	CreatedAt time.Time     `json:"created_at"`
	Config    Config        `json:"config"`
	Result    engine.Result `json:"result"`
}

// New builds a report stamped with the current time.
func New(runID string, cfg Config, res *engine.Result) *Report {
	r := &Report{
		Version:   FormatVersion,
		RunID:     runID,
		CreatedAt: time.Now().UTC(),
		Config:    cfg,
	}
	if res != nil {
		r.Result = *res
	}
	return r
}

func (r *Report) validate() error {
	if r.Version == 0 {
		return fmt.Errorf("%w: missing version", ErrInvalidReport)
	}
	if r.Version > FormatVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, r.Version)
	}
	return nil
}
