package oracle

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/hupe1980/gsfs/dataset"
)

var (
	// ErrNotBinary is returned for datasets whose labels are not all 0 or 1.
	ErrNotBinary = errors.New("oracle: labels must be 0 or 1")

	// ErrTooFewSamples is returned when a class cannot populate every split.
	ErrTooFewSamples = errors.New("oracle: too few samples per class")
)

// split is one train/test partition of row indices.
type split struct {
	train []int
	test  []int
}

// classRows returns the shuffled row indices of class 0 and class 1.
func classRows(data *dataset.Dataset, seed uint64) ([2][]int, error) {
	if !data.IsBinary() {
		return [2][]int{}, ErrNotBinary
	}

	var rows [2][]int
	for i, y := range data.Labels() {
		k := int(y)
		rows[k] = append(rows[k], i)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for k := range rows {
		rng.Shuffle(len(rows[k]), func(i, j int) { rows[k][i], rows[k][j] = rows[k][j], rows[k][i] })
	}
	return rows, nil
}

// stratifiedKFold deals every class round-robin into k test folds.
func stratifiedKFold(data *dataset.Dataset, k int, seed uint64) ([]split, error) {
	rows, err := classRows(data, seed)
	if err != nil {
		return nil, err
	}
	for c, r := range rows {
		if len(r) < k {
			return nil, fmt.Errorf("%w: class %d has %d rows, need %d folds", ErrTooFewSamples, c, len(r), k)
		}
	}

	fold := make([]int, data.Len())
	for _, r := range rows {
		for i, row := range r {
			fold[row] = i % k
		}
	}

	splits := make([]split, k)
	for row, f := range fold {
		for i := range splits {
			if i == f {
				splits[i].test = append(splits[i].test, row)
			} else {
				splits[i].train = append(splits[i].train, row)
			}
		}
	}
	return splits, nil
}

// stratifiedHoldout moves ceil(share*n) rows of every class into the test
// side.
func stratifiedHoldout(data *dataset.Dataset, share float64, seed uint64) (split, error) {
	rows, err := classRows(data, seed)
	if err != nil {
		return split{}, err
	}

	var s split
	for c, r := range rows {
		n := int(math.Ceil(share * float64(len(r))))
		if n < 1 || n >= len(r) {
			return split{}, fmt.Errorf("%w: class %d has %d rows", ErrTooFewSamples, c, len(r))
		}
		s.test = append(s.test, r[:n]...)
		s.train = append(s.train, r[n:]...)
	}
	return s, nil
}
