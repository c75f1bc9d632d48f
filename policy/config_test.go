package policy

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 2.0, p.CE)
	assert.Equal(t, 1.0, p.C)
	assert.Equal(t, 1.0, p.CL)
	assert.Equal(t, 0.5, p.BT)
	assert.Equal(t, 1.0, p.NewNodePreference)
	require.NoError(t, p.Validate())
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Params)
		field string
	}{
		{"negative c_e", func(p *Params) { p.CE = -0.1 }, "c_e"},
		{"negative c", func(p *Params) { p.C = -1 }, "c"},
		{"zero c_l", func(p *Params) { p.CL = 0 }, "c_l"},
		{"zero b_T", func(p *Params) { p.BT = 0 }, "b_T"},
		{"negative preference", func(p *Params) { p.NewNodePreference = -2 }, "new_node_preference"},
		{"NaN c", func(p *Params) { p.C = math.NaN() }, "c"},
		{"infinite c_e", func(p *Params) { p.CE = math.Inf(1) }, "c_e"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.edit(&p)

			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))

			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}

	t.Run("zero c_e and c are allowed", func(t *testing.T) {
		p := DefaultParams()
		p.CE, p.C = 0, 0
		assert.NoError(t, p.Validate())
	})
}

func TestParseNames(t *testing.T) {
	for name, want := range map[string]ScoringKind{
		"":                   RaveUCB,
		"rave_ucb":           RaveUCB,
		"UCB1_rave":          RaveUCB,
		"basic_ucb":          BasicUCB,
		"UCB1":               BasicUCB,
		"ucb_with_variance":  VarianceUCB,
		"UCB1_with_variance": VarianceUCB,
	} {
		got, err := ParseScoring(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	for name, want := range map[string]ExpansionKind{"": Discrete, "discrete": Discrete, "continuous": Continuous} {
		got, err := ParseExpansion(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	for _, name := range []string{"", "default", "first_new_or_full"} {
		got, err := ParseTermination(name)
		require.NoError(t, err, name)
		assert.Equal(t, FirstNewOrFull, got)
	}

	_, err := ParseScoring("thompson")
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = ParseExpansion("eager")
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = ParseTermination("depth")
	assert.ErrorIs(t, err, ErrConfiguration)

	assert.Equal(t, "ucb_with_variance", VarianceUCB.String())
	assert.Equal(t, "continuous", Continuous.String())
	assert.Equal(t, "default", FirstNewOrFull.String())
}
