package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gsfs/dataset"
	"github.com/hupe1980/gsfs/policy"
	"github.com/hupe1980/gsfs/testutil"
)

func balanced(t *testing.T, n int) *dataset.Dataset {
	t.Helper()
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = []float64{float64(i)}
		y[i] = float64(i % 2)
	}
	ds, err := dataset.New([]string{"a"}, x, y)
	require.NoError(t, err)
	return ds
}

func TestStratifiedKFold(t *testing.T) {
	ds := balanced(t, 10)

	splits, err := stratifiedKFold(ds, 4, 1)
	require.NoError(t, err)
	require.Len(t, splits, 4)

	seen := make(map[int]int)
	for _, s := range splits {
		assert.Equal(t, ds.Len(), len(s.train)+len(s.test))

		var pos int
		for _, r := range s.test {
			seen[r]++
			pos += int(ds.Labels()[r])
		}
		assert.Positive(t, pos)
		assert.Less(t, pos, len(s.test))
	}
	assert.Len(t, seen, ds.Len())
	for r, n := range seen {
		assert.Equal(t, 1, n, "row %d", r)
	}

	_, err = stratifiedKFold(ds, 6, 1)
	assert.ErrorIs(t, err, ErrTooFewSamples)
}

func TestStratifiedHoldout(t *testing.T) {
	s, err := stratifiedHoldout(balanced(t, 8), 0.25, 1)
	require.NoError(t, err)
	assert.Len(t, s.test, 2)
	assert.Len(t, s.train, 6)

	_, err = stratifiedHoldout(balanced(t, 2), 0.25, 1)
	assert.ErrorIs(t, err, ErrTooFewSamples)
}

func TestCrossValidator(t *testing.T) {
	ds := testutil.NewRNG(42).ClassificationDataset(120, 2, 4)

	cv, err := NewCrossValidator(ds)
	require.NoError(t, err)
	assert.Equal(t, ROCAUC, cv.Metric())

	ctx := context.Background()
	informative, err := cv.Evaluate(ctx, []string{"f00", "f01"})
	require.NoError(t, err)
	noise, err := cv.Evaluate(ctx, []string{"f04", "f05"})
	require.NoError(t, err)

	assert.Greater(t, informative, 0.85)
	assert.Less(t, noise, 0.75)

	again, err := cv.Evaluate(ctx, []string{"f01", "f00"})
	require.NoError(t, err)
	assert.InDelta(t, informative, again, 1e-12)

	_, err = cv.Evaluate(ctx, []string{"zz"})
	assert.ErrorIs(t, err, dataset.ErrUnknownColumn)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = cv.Evaluate(cancelled, []string{"f00"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCrossValidatorDeterministic(t *testing.T) {
	ds := testutil.NewRNG(7).ClassificationDataset(80, 1, 3)

	a, err := NewCrossValidator(ds, WithMetric(Accuracy), WithSeed(3), WithConcurrency(1))
	require.NoError(t, err)
	b, err := NewCrossValidator(ds, WithMetric(Accuracy), WithSeed(3))
	require.NoError(t, err)

	sa, err := a.Evaluate(context.Background(), []string{"f00", "f02"})
	require.NoError(t, err)
	sb, err := b.Evaluate(context.Background(), []string{"f00", "f02"})
	require.NoError(t, err)
	assert.Equal(t, sa, sb)
}

func TestHoldout(t *testing.T) {
	ds := testutil.NewRNG(42).ClassificationDataset(120, 2, 4)

	h, err := NewHoldout(ds, WithMetric(F1))
	require.NoError(t, err)
	assert.Equal(t, F1, h.Metric())

	s, err := h.Evaluate(context.Background(), []string{"f00", "f01"})
	require.NoError(t, err)
	assert.Greater(t, s, 0.8)
}

func TestValidationErrors(t *testing.T) {
	ds := balanced(t, 20)

	_, err := NewCrossValidator(ds, WithFolds(1))
	assert.ErrorIs(t, err, policy.ErrConfiguration)

	_, err = NewHoldout(ds, WithTestSize(1))
	assert.ErrorIs(t, err, policy.ErrConfiguration)

	_, err = NewCrossValidator(ds, WithConcurrency(0))
	assert.ErrorIs(t, err, policy.ErrConfiguration)

	_, err = NewCrossValidator(ds.Rows([]int{0, 1, 2}).Relabel(7))
	assert.ErrorIs(t, err, ErrTooFewSamples)

	multi, err := dataset.New([]string{"a"}, [][]float64{{1}, {2}}, []float64{0, 2})
	require.NoError(t, err)
	_, err = NewCrossValidator(multi)
	assert.ErrorIs(t, err, ErrNotBinary)
}
