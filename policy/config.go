package policy

import (
	"errors"
	"fmt"
	"math"
)

// ErrConfiguration is the sentinel every *ConfigError unwraps to.
var ErrConfiguration = errors.New("invalid configuration")

// ConfigError reports an unknown variant name or an out-of-range parameter.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %v: %s", ErrConfiguration, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// Params are the tunable weights shared by the policies.
type Params struct {
	// CE weighs the exploration bonus (c_e).
	CE float64 `json:"c_e"`
	// C controls how fast the node's own mean outweighs RAVE (c).
	C float64 `json:"c"`
	// CL controls how fast l-RAVE outweighs g-RAVE (c_l).
	CL float64 `json:"c_l"`
	// BT is the progressive widening exponent (b_T).
	BT float64 `json:"b_T"`
	// NewNodePreference scales expansion scores in the continuous strategy.
	NewNodePreference float64 `json:"new_node_preference"`
}

// DefaultParams returns c_e=2, c=1, c_l=1, b_T=0.5, new_node_preference=1.
func DefaultParams() Params {
	return Params{
		CE:                2,
		C:                 1,
		CL:                1,
		BT:                0.5,
		NewNodePreference: 1,
	}
}

// Validate checks parameter ranges.
func (p Params) Validate() error {
	checks := []struct {
		field    string
		v        float64
		positive bool
	}{
		{"c_e", p.CE, false},
		{"c", p.C, false},
		{"c_l", p.CL, true},
		{"b_T", p.BT, true},
		{"new_node_preference", p.NewNodePreference, true},
	}
	for _, c := range checks {
		switch {
		case math.IsNaN(c.v) || math.IsInf(c.v, 0):
			return &ConfigError{Field: c.field, Value: c.v, Reason: "must be finite"}
		case c.positive && c.v <= 0:
			return &ConfigError{Field: c.field, Value: c.v, Reason: "must be > 0"}
		case c.v < 0:
			return &ConfigError{Field: c.field, Value: c.v, Reason: "must be >= 0"}
		}
	}
	return nil
}
