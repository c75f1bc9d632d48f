package dataset

import (
	"context"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gsfs/blobstore"
)

const sample = `age, income, y, tenure
31, 1200, 1, 4
45, 3400, 0, 10
27, 900, 2, 1
`

func TestReadCSV(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(sample), "y")
	require.NoError(t, err)

	assert.Equal(t, []string{"age", "income", "tenure"}, ds.Columns())
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, 3, ds.NumFeatures())
	assert.Equal(t, []float64{45, 3400, 10}, ds.Row(1))
	assert.Equal(t, []float64{1, 0, 2}, ds.Labels())
	assert.True(t, ds.Has("tenure"))
	assert.False(t, ds.Has("y"))
	assert.NoError(t, ds.Validate())
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), "y")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = ReadCSV(strings.NewReader("a,b\n1,2\n"), "y")
	assert.ErrorIs(t, err, ErrNoLabel)

	_, err = ReadCSV(strings.NewReader("a,y\n1,x\n"), "y")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, "y", pe.Column)
	assert.ErrorIs(t, err, strconv.ErrSyntax)

	_, err = ReadCSV(strings.NewReader("a,y\n"), "y")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = ReadCSV(strings.NewReader("a,a,y\n1,2,0\n"), "y")
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestLoadCSV(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "train.csv", []byte(sample)))
	require.NoError(t, store.Put(ctx, "empty.csv", nil))

	ds, err := LoadCSV(ctx, store, "train.csv", "y")
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())

	_, err = LoadCSV(ctx, store, "empty.csv", "y")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = LoadCSV(ctx, store, "missing.csv", "y")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil, [][]float64{{1}}, []float64{0})
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = New([]string{"a"}, [][]float64{{1}}, []float64{0, 1})
	assert.ErrorIs(t, err, ErrShape)

	_, err = New([]string{"a", "b"}, [][]float64{{1}}, []float64{0})
	assert.ErrorIs(t, err, ErrShape)
}

func TestSelect(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(sample), "y")
	require.NoError(t, err)

	sub, err := ds.Select([]string{"tenure", "age"})
	require.NoError(t, err)
	assert.Equal(t, []string{"tenure", "age"}, sub.Columns())
	assert.Equal(t, []float64{10, 45}, sub.Row(1))
	assert.Equal(t, ds.Labels(), sub.Labels())

	_, err = ds.Select([]string{"height"})
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = ds.Select(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestRowsAndRelabel(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(sample), "y")
	require.NoError(t, err)
	assert.False(t, ds.IsBinary())

	bin := ds.Relabel(2)
	assert.Equal(t, []float64{0, 0, 1}, bin.Labels())
	assert.True(t, bin.IsBinary())
	assert.Equal(t, []float64{1, 0, 2}, ds.Labels())

	rows := bin.Rows([]int{2, 0})
	assert.Equal(t, 2, rows.Len())
	assert.Equal(t, []float64{27, 900, 1}, rows.Row(0))
	assert.Equal(t, []float64{1, 0}, rows.Labels())
}

func TestValidateNonFinite(t *testing.T) {
	ds, err := New([]string{"a"}, [][]float64{{math.NaN()}}, []float64{0})
	require.NoError(t, err)
	assert.Error(t, ds.Validate())

	ds, err = New([]string{"a"}, [][]float64{{1}}, []float64{math.Inf(1)})
	require.NoError(t, err)
	assert.Error(t, ds.Validate())
}
