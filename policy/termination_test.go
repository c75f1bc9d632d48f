package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminator(t *testing.T) {
	f := newFixture(t, "A", "B")
	term, err := NewTerminator(FirstNewOrFull, f.u)
	require.NoError(t, err)

	root := f.index.Root()
	a := f.path(t, "A")
	ab := f.path(t, "A", "B")

	assert.True(t, term.Done(root), "unvisited root")
	assert.True(t, term.Done(a), "unvisited node")
	assert.True(t, term.Done(ab), "unvisited full node")

	addScores(root, 0.1)
	addScores(a, 0.1)
	addScores(ab, 0.1)

	assert.False(t, term.Done(root))
	assert.False(t, term.Done(a))
	assert.True(t, term.Done(ab), "visited node holding the whole universe")

	_, err = NewTerminator(TerminationKind(3), f.u)
	assert.ErrorIs(t, err, ErrConfiguration)
}
