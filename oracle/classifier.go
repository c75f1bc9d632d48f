package oracle

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotTrained is returned by PredictProba before Fit.
var ErrNotTrained = errors.New("oracle: classifier not trained")

// Classifier is a binary classifier over dense numeric rows.
type Classifier interface {
	// Fit trains on rows x with 0/1 labels y.
	Fit(x [][]float64, y []float64) error
	// PredictProba returns the class-1 probability of every row.
	PredictProba(x [][]float64) ([]float64, error)
}

// Factory returns a fresh, untrained Classifier. Folds are trained
// concurrently, each on its own instance.
type Factory func() Classifier

// NearestCentroid assigns class-1 probability by relative distance to the
// two class centroids: d0 / (d0 + d1).
type NearestCentroid struct {
	centroids [2][]float64
}

// NewNearestCentroid is a Factory for NearestCentroid.
func NewNearestCentroid() Classifier { return &NearestCentroid{} }

// Fit implements Classifier.
func (c *NearestCentroid) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 {
		return fmt.Errorf("oracle: fit: no rows")
	}
	dim := len(x[0])

	var counts [2]int
	sums := [2][]float64{make([]float64, dim), make([]float64, dim)}
	for i, row := range x {
		k := 0
		if y[i] == 1 {
			k = 1
		}
		counts[k]++
		for j, v := range row {
			sums[k][j] += v
		}
	}
	if counts[0] == 0 || counts[1] == 0 {
		return fmt.Errorf("oracle: fit: training rows contain a single class")
	}

	for k := range sums {
		for j := range sums[k] {
			sums[k][j] /= float64(counts[k])
		}
	}
	c.centroids = sums
	return nil
}

// PredictProba implements Classifier.
func (c *NearestCentroid) PredictProba(x [][]float64) ([]float64, error) {
	if c.centroids[0] == nil {
		return nil, ErrNotTrained
	}

	out := make([]float64, len(x))
	for i, row := range x {
		d0 := distance(row, c.centroids[0])
		d1 := distance(row, c.centroids[1])
		if d0+d1 == 0 {
			out[i] = 0.5
			continue
		}
		out[i] = d0 / (d0 + d1)
	}
	return out, nil
}

func distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
