package visited

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New(10)

	assert.False(t, s.Visited(1))
	assert.False(t, s.Visited(5))

	assert.True(t, s.Visit(1))
	assert.False(t, s.Visit(1), "second visit is not new")
	assert.True(t, s.Visited(1))
	assert.False(t, s.Visited(5))
	assert.Equal(t, 1, s.Count())

	s.Visit(5)
	assert.Equal(t, 2, s.Count())

	s.Reset()
	assert.False(t, s.Visited(1))
	assert.False(t, s.Visited(5))
	assert.Equal(t, 0, s.Count())

	assert.True(t, s.Visit(1))
}

func TestSet_Grow(t *testing.T) {
	s := New(2)
	s.Visit(1)

	assert.True(t, s.Visit(130))
	assert.True(t, s.Visited(130))
	assert.True(t, s.Visited(1))
	assert.False(t, s.Visited(129))
}

func TestSet_NegativeIDs(t *testing.T) {
	s := New(0)
	assert.False(t, s.Visit(-1))
	assert.False(t, s.Visited(-1))
	assert.Equal(t, 0, s.Count())
}
