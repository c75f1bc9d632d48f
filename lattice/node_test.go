package lattice

import (
	"testing"

	"github.com/hupe1980/gsfs/featureset"
	"github.com/stretchr/testify/assert"
)

func TestNode_Unvisited(t *testing.T) {
	n := newNode(1, featureset.Of(0))

	assert.Equal(t, 0, n.Visits())
	assert.Zero(t, n.Mean())
	assert.Zero(t, n.Variance())
	assert.Empty(t, n.Scores())
}

func TestNode_AddScore(t *testing.T) {
	n := newNode(1, featureset.Of(0))
	n.AddScore(0.5)
	n.AddScore(0.8)

	assert.Equal(t, 2, n.Visits())
	assert.InDelta(t, 1.3, n.ScoreSum(), 1e-12)
	assert.InDelta(t, 0.65, n.Mean(), 1e-12)
	// population variance of [0.5, 0.8]
	assert.InDelta(t, 0.0225, n.Variance(), 1e-12)
	assert.Equal(t, []float64{0.5, 0.8}, n.Scores())
}

func TestNode_ScoresIsCopy(t *testing.T) {
	n := newNode(1, featureset.Of(0))
	n.AddScore(1)

	s := n.Scores()
	s[0] = 42
	assert.Equal(t, []float64{1}, n.Scores())
}

func TestNode_Label(t *testing.T) {
	u, err := featureset.NewUniverse([]string{"c", "a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	n := newNode(3, u.MustSetOf("c", "b", "a"))
	assert.Equal(t, "a,b,c", n.Label(u))
}
