package oracle

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gsfs/engine"
	"github.com/hupe1980/gsfs/testutil"
)

func TestCached(t *testing.T) {
	inner := testutil.NewAdditiveOracle(testutil.DefaultWeights, 0.02)
	c := NewCached(inner, 0)
	ctx := context.Background()

	a, err := c.Evaluate(ctx, []string{"B", "A"})
	require.NoError(t, err)
	b, err := c.Evaluate(ctx, []string{"A", "B"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, 1, inner.Calls())
	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
	assert.Equal(t, 1, c.Len())
	assert.Same(t, inner, c.Inner())

	c.Purge()
	_, err = c.Evaluate(ctx, []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.Calls())
}

func TestCachedEviction(t *testing.T) {
	inner := testutil.NewAdditiveOracle(testutil.DefaultWeights, 0)
	c := NewCached(inner, 1)
	ctx := context.Background()

	for _, f := range []string{"A", "B", "A"} {
		_, err := c.Evaluate(ctx, []string{f})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, inner.Calls())
}

func TestCachedErrorsNotCached(t *testing.T) {
	inner := &testutil.FailingOracle{Inner: testutil.NewAdditiveOracle(testutil.DefaultWeights, 0), FailAt: 1}
	c := NewCached(inner, 8)

	_, err := c.Evaluate(context.Background(), []string{"A"})
	assert.ErrorIs(t, err, testutil.ErrInjected)

	s, err := c.Evaluate(context.Background(), []string{"A"})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, s, 1e-12)
}

func TestCachedConcurrent(t *testing.T) {
	inner := testutil.NewAdditiveOracle(testutil.DefaultWeights, 0.02)
	c := NewCached(inner, 8)

	var wg sync.WaitGroup
	results := make([]float64, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := c.Evaluate(context.Background(), []string{"C", "A"})
			assert.NoError(t, err)
			results[i] = s
		}()
	}
	wg.Wait()

	for _, s := range results {
		assert.InDelta(t, 0.46, s, 1e-12)
	}
	assert.Equal(t, 1, c.Len())
}

type slowOracle struct {
	running atomic.Int64
	peak    atomic.Int64
}

func (o *slowOracle) Evaluate(ctx context.Context, _ []string) (float64, error) {
	n := o.running.Add(1)
	defer o.running.Add(-1)
	for {
		p := o.peak.Load()
		if n <= p || o.peak.CompareAndSwap(p, n) {
			break
		}
	}
	select {
	case <-time.After(5 * time.Millisecond):
		return 1, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func TestLimiterConcurrency(t *testing.T) {
	inner := &slowOracle{}
	l := NewLimiter(inner, LimiterConfig{MaxConcurrent: 2})
	assert.Equal(t, int64(2), l.Config().MaxConcurrent)
	assert.Equal(t, 1, l.Config().Burst)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Evaluate(context.Background(), []string{"A"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, inner.peak.Load(), int64(2))
	assert.Zero(t, l.InFlight())
}

func TestLimiterRate(t *testing.T) {
	l := NewLimiter(testutil.NewAdditiveOracle(testutil.DefaultWeights, 0), LimiterConfig{PerSecond: 1})

	_, err := l.Evaluate(context.Background(), []string{"A"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = l.Evaluate(ctx, []string{"A"})
	assert.Error(t, err)
}

func TestDecoratorsCompose(t *testing.T) {
	inner := testutil.NewAdditiveOracle(testutil.DefaultWeights, 0.02)
	var o engine.Oracle = NewLimiter(NewCached(inner, 16), LimiterConfig{MaxConcurrent: 4})

	e, err := engine.New(testutil.DefaultFeatures(), engine.WithBudget(engine.IterationBudget(100)))
	require.NoError(t, err)

	res, err := e.Run(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Iterations)
	assert.Less(t, inner.Calls(), 100)
}
