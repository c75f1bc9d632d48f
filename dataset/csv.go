package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/gsfs/blobstore"
)

// ErrNoLabel is returned when the label column is missing from the header.
var ErrNoLabel = errors.New("dataset: label column not found")

// ParseError reports a cell that is not a number.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dataset: line %d column %q: cannot parse %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ReadCSV parses a headered CSV table. The column named label becomes the
// label vector, every other column a feature.
func ReadCSV(r io.Reader, label string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}

	labelCol := -1
	columns := make([]string, 0, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == label {
			labelCol = i
			continue
		}
		columns = append(columns, h)
	}
	if labelCol < 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoLabel, label)
	}

	var (
		x [][]float64
		y []float64
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: line %d: %w", line, err)
		}

		row := make([]float64, 0, len(columns))
		for i, cell := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, &ParseError{Line: line, Column: strings.TrimSpace(header[i]), Value: cell, Err: err}
			}
			if i == labelCol {
				y = append(y, v)
			} else {
				row = append(row, v)
			}
		}
		x = append(x, row)
	}

	return New(columns, x, y)
}

// LoadCSV reads a CSV table from store.
func LoadCSV(ctx context.Context, store blobstore.Store, name, label string) (*Dataset, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", name, err)
	}
	defer func() { _ = blob.Close() }()

	if blob.Size() == 0 {
		return nil, ErrEmpty
	}
	rc, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", name, err)
	}
	defer func() { _ = rc.Close() }()

	return ReadCSV(rc, label)
}
