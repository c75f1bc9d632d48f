package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/gsfs/dataset"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// NormFloat64 returns a standard normal value.
func (r *RNG) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.NormFloat64()
}

// FeatureNames returns n names f00, f01, ...
func FeatureNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("f%02d", i)
	}
	return names
}

// ClassificationDataset generates a binary classification table. The first
// informative columns are shifted by the class (mean -1 for class 0, +1 for
// class 1), the remaining noise columns are standard normal. Columns are
// named by FeatureNames. Classes alternate so both are always present.
// Uses a single backing array for efficiency.
func (r *RNG) ClassificationDataset(rows, informative, noise int) *dataset.Dataset {
	r.mu.Lock()
	defer r.mu.Unlock()

	cols := informative + noise
	data := make([]float64, rows*cols)
	x := make([][]float64, rows)
	y := make([]float64, rows)

	for i := range rows {
		label := float64(i % 2)
		shift := 2*label - 1

		row := data[i*cols : (i+1)*cols]
		for j := range row {
			row[j] = r.rand.NormFloat64()
			if j < informative {
				row[j] += shift
			}
		}
		x[i] = row
		y[i] = label
	}

	ds, err := dataset.New(FeatureNames(cols), x, y)
	if err != nil {
		panic(err)
	}
	return ds
}
