package policy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gsfs/featureset"
	"github.com/hupe1980/gsfs/lattice"
	"github.com/hupe1980/gsfs/rave"
)

type fixture struct {
	u      *featureset.Universe
	index  *lattice.Index
	local  *rave.LocalTable
	global *rave.GlobalTable
}

func newFixture(t *testing.T, names ...string) *fixture {
	t.Helper()

	u, err := featureset.NewUniverse(names)
	require.NoError(t, err)

	return &fixture{
		u:      u,
		index:  lattice.NewIndex(),
		local:  rave.NewLocalTable(),
		global: rave.NewGlobalTable(),
	}
}

// path adds the chain root→names[0]→names[0..1]→... and returns the last node.
func (f *fixture) path(t *testing.T, names ...string) *lattice.Node {
	t.Helper()

	cur := lattice.RootID
	for i := range names {
		want := f.u.MustSetOf(names[:i+1]...)
		if id, ok := f.index.Lookup(want); ok {
			cur = id
			continue
		}
		id, err := f.index.AddNode(cur, f.u.MustID(names[i]))
		require.NoError(t, err)
		cur = id
	}
	return f.index.Node(cur)
}

func (f *fixture) record(t *testing.T, score float64, names ...string) {
	t.Helper()

	s := f.u.MustSetOf(names...)
	require.NoError(t, f.local.Add(s, score))
	require.NoError(t, f.global.Update(s, score))
}

func (f *fixture) scorer(t *testing.T, kind ScoringKind) *Scorer {
	t.Helper()

	s, err := NewScorer(kind, DefaultParams(), f.local, f.global)
	require.NoError(t, err)
	return s
}

func addScores(n *lattice.Node, scores ...float64) {
	for _, s := range scores {
		n.AddScore(s)
	}
}

func scoringFixture(t *testing.T) (*fixture, *lattice.Node, *lattice.Node) {
	f := newFixture(t, "A", "B", "C", "D", "E", "F")

	parent := f.path(t, "A", "B")
	child := f.path(t, "A", "B", "C")
	addScores(parent, 0.5, 0.7, 0.8)
	addScores(child, 0.7, 0.8)

	f.record(t, 0.5, "A", "B")
	f.record(t, 0.2, "A")
	f.record(t, 0.7, "A", "B", "C")
	f.record(t, 0.8, "A", "B", "C", "D")
	f.record(t, 0.3, "A", "B", "C", "E")

	return f, parent, child
}

func TestScoreRave(t *testing.T) {
	f, parent, child := scoringFixture(t)

	got, err := f.scorer(t, RaveUCB).Score(parent, child)
	require.NoError(t, err)

	// l-RAVE(ABC) = mean(.7,.8,.3), g-RAVE(C) = mean(.7,.8,.3); variance term saturates.
	want := (1-1.0/3)*0.75 + (1.0/3)*((3.0/4)*0.6+(1.0/4)*0.6) + math.Sqrt((2*math.Log(3)/2)*0.25)
	assert.InDelta(t, want, got, 1e-9)
}

func TestScoreBasic(t *testing.T) {
	f, parent, child := scoringFixture(t)

	got, err := f.scorer(t, BasicUCB).Score(parent, child)
	require.NoError(t, err)
	assert.InDelta(t, 0.75+math.Sqrt(2*math.Log(3)/2), got, 1e-9)
}

func TestScoreVariance(t *testing.T) {
	f, parent, child := scoringFixture(t)

	got, err := f.scorer(t, VarianceUCB).Score(parent, child)
	require.NoError(t, err)
	assert.InDelta(t, 0.75+math.Sqrt(math.Log(3)*0.25), got, 1e-9)

	// Enough visits pull the variance term below the 1/4 cap.
	addScores(child, 0.75, 0.75, 0.75, 0.75, 0.75, 0.75, 0.75, 0.75, 0.75, 0.75)
	addScores(parent, 0.1, 0.1)
	got, err = f.scorer(t, VarianceUCB).Score(parent, child)
	require.NoError(t, err)

	ln := math.Log(5)
	tn := 12.0
	v := math.Min(0.25, child.Variance()+math.Sqrt(2*ln/tn))
	assert.InDelta(t, child.Mean()+math.Sqrt((2*ln/tn)*v), got, 1e-9)
}

func TestScoreInfiniteGuards(t *testing.T) {
	f, parent, child := scoringFixture(t)
	fresh := f.path(t, "A", "B", "D")

	for _, kind := range []ScoringKind{RaveUCB, BasicUCB, VarianceUCB} {
		s := f.scorer(t, kind)

		got, err := s.Score(nil, child)
		require.NoError(t, err)
		assert.True(t, math.IsInf(got, 1), kind.String())

		got, err = s.Score(parent, fresh)
		require.NoError(t, err)
		assert.True(t, math.IsInf(got, 1), kind.String())
	}
}

func TestScoreRaveRejectsNonChild(t *testing.T) {
	f, _, child := scoringFixture(t)
	grand := f.path(t, "A")
	grand.AddScore(0.1)

	_, err := f.scorer(t, RaveUCB).Score(grand, child)
	assert.ErrorIs(t, err, ErrNotChild)
}

func TestExpansionScore(t *testing.T) {
	f, _, child := scoringFixture(t)
	s := f.scorer(t, RaveUCB)

	tests := []struct {
		feature string
		want    float64
	}{
		{"D", 0.8},
		{"E", 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.feature, func(t *testing.T) {
			got, err := s.ExpansionScore(f.u.MustID(tt.feature), child)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	t.Run("unseen feature", func(t *testing.T) {
		got, err := s.ExpansionScore(f.u.MustID("F"), child)
		require.NoError(t, err)
		assert.True(t, math.IsInf(got, 1))
	})

	t.Run("shallow nodes", func(t *testing.T) {
		// {A,D} is covered by ABCD only.
		a := f.index.Node(f.index.Root().Children()[0])
		got, err := s.ExpansionScore(f.u.MustID("D"), a)
		require.NoError(t, err)
		assert.InDelta(t, 0.5*0.8+0.5*0.8, got, 1e-9)

		// E at root: l-RAVE({E}) covers ABCE only.
		got, err = s.ExpansionScore(f.u.MustID("E"), f.index.Root())
		require.NoError(t, err)
		assert.InDelta(t, 0.3, got, 1e-9)
	})
}

func TestNewScorerValidates(t *testing.T) {
	p := DefaultParams()
	p.CL = 0
	_, err := NewScorer(RaveUCB, p, rave.NewLocalTable(), rave.NewGlobalTable())
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewScorer(ScoringKind(9), DefaultParams(), rave.NewLocalTable(), rave.NewGlobalTable())
	assert.ErrorIs(t, err, ErrConfiguration)
}
