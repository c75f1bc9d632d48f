package dataset

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmpty is returned for a dataset without rows or without columns.
	ErrEmpty = errors.New("dataset: empty")

	// ErrShape is returned when rows, columns and labels disagree in size.
	ErrShape = errors.New("dataset: shape mismatch")

	// ErrUnknownColumn is returned by Select for a name that is not a column.
	ErrUnknownColumn = errors.New("dataset: unknown column")

	// ErrDuplicateColumn is returned for a column name that occurs twice.
	ErrDuplicateColumn = errors.New("dataset: duplicate column")
)

// Dataset is a labelled numeric table.
type Dataset struct {
	columns []string
	index   map[string]int
	x       [][]float64
	y       []float64
}

// New validates and wraps the given table. x is row-major; every row must
// have len(columns) values and y one label per row. The slices are not
// copied.
func New(columns []string, x [][]float64, y []float64) (*Dataset, error) {
	if len(columns) == 0 || len(x) == 0 {
		return nil, ErrEmpty
	}
	if len(y) != len(x) {
		return nil, fmt.Errorf("%w: %d rows, %d labels", ErrShape, len(x), len(y))
	}

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, ok := index[c]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c)
		}
		index[c] = i
	}
	for i, row := range x {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrShape, i, len(row), len(columns))
		}
	}

	return &Dataset{columns: columns, index: index, x: x, y: y}, nil
}

// Columns returns the feature names. The slice must not be modified.
func (d *Dataset) Columns() []string { return d.columns }

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.x) }

// NumFeatures returns the number of columns.
func (d *Dataset) NumFeatures() int { return len(d.columns) }

// Row returns row i. The slice must not be modified.
func (d *Dataset) Row(i int) []float64 { return d.x[i] }

// X returns the feature matrix. The slices must not be modified.
func (d *Dataset) X() [][]float64 { return d.x }

// Labels returns the label vector. The slice must not be modified.
func (d *Dataset) Labels() []float64 { return d.y }

// Has reports whether name is a column.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Select returns a dataset restricted to the named columns, in the given
// order.
func (d *Dataset) Select(names []string) (*Dataset, error) {
	if len(names) == 0 {
		return nil, ErrEmpty
	}

	cols := make([]int, len(names))
	for i, name := range names {
		c, ok := d.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		cols[i] = c
	}

	data := make([]float64, len(d.x)*len(cols))
	x := make([][]float64, len(d.x))
	for r, row := range d.x {
		out := data[r*len(cols) : (r+1)*len(cols)]
		for i, c := range cols {
			out[i] = row[c]
		}
		x[r] = out
	}
	return New(append([]string(nil), names...), x, d.y)
}

// Rows returns a dataset over the given row indices. Feature rows are
// shared, labels are copied.
func (d *Dataset) Rows(idx []int) *Dataset {
	x := make([][]float64, len(idx))
	y := make([]float64, len(idx))
	for i, r := range idx {
		x[i] = d.x[r]
		y[i] = d.y[r]
	}
	return &Dataset{columns: d.columns, index: d.index, x: x, y: y}
}

// Relabel returns a copy whose labels are 1 where the label equals positive
// and 0 otherwise.
func (d *Dataset) Relabel(positive float64) *Dataset {
	y := make([]float64, len(d.y))
	for i, v := range d.y {
		if v == positive {
			y[i] = 1
		}
	}
	return &Dataset{columns: d.columns, index: d.index, x: d.x, y: y}
}

// IsBinary reports whether every label is 0 or 1.
func (d *Dataset) IsBinary() bool {
	for _, v := range d.y {
		if v != 0 && v != 1 {
			return false
		}
	}
	return true
}

// Validate reports the first non-finite value.
func (d *Dataset) Validate() error {
	for r, row := range d.x {
		for c, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("dataset: row %d column %q: non-finite value %v", r, d.columns[c], v)
			}
		}
		if math.IsNaN(d.y[r]) || math.IsInf(d.y[r], 0) {
			return fmt.Errorf("dataset: row %d: non-finite label %v", r, d.y[r])
		}
	}
	return nil
}
