// Package features provides the raw per-node feature lookup consumed by the
// input layer of an encoder.
//
// Tables can store rows at a narrower precision than the encoder's working
// float64 type: use NewTable[float32] or NewFloat16Table to halve or quarter
// the memory of large feature matrices. Lookups always hand out fresh
// float64 slices.
package features

import (
	"github.com/pkg/errors"
	"github.com/x448/float16"
	"golang.org/x/exp/constraints"
)

// Source is a read-only lookup of raw feature vectors, one per node, all of
// width Dim.
type Source interface {
	// Lookup returns the feature vector of node. The caller owns the
	// returned slice.
	Lookup(node int32) ([]float64, error)

	// Dim returns the width of every feature vector.
	Dim() int
}

// Table is an in-memory feature Source storing rows as []T.
type Table[T constraints.Float] struct {
	dim  int
	rows map[int32][]T
}

// NewTable creates an empty feature table with vectors of width dim, stored
// at precision T.
func NewTable[T constraints.Float](dim int) *Table[T] {
	return &Table[T]{dim: dim, rows: make(map[int32][]T)}
}

// FromRows creates a float64 table from a dense feature matrix: row i holds
// the features of node i. All rows must have the same width.
func FromRows(rows [][]float64) (*Table[float64], error) {
	if len(rows) == 0 {
		return nil, errors.New("features.FromRows: no rows given")
	}
	t := NewTable[float64](len(rows[0]))
	for node, row := range rows {
		if err := t.Set(int32(node), row); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Set stores the feature vector of node, converting to the table's storage
// precision. The row slice is copied, not retained.
func (t *Table[T]) Set(node int32, row []float64) error {
	if len(row) != t.dim {
		return errors.Errorf("feature row for node %d has width %d, table dim is %d",
			node, len(row), t.dim)
	}
	stored := make([]T, t.dim)
	for i, v := range row {
		stored[i] = T(v)
	}
	t.rows[node] = stored
	return nil
}

// Lookup implements Source.
func (t *Table[T]) Lookup(node int32) ([]float64, error) {
	row, found := t.rows[node]
	if !found {
		return nil, errors.Errorf("no features stored for node %d", node)
	}
	out := make([]float64, t.dim)
	for i, v := range row {
		out[i] = float64(v)
	}
	return out, nil
}

// Dim implements Source.
func (t *Table[T]) Dim() int { return t.dim }

// NumRows returns how many nodes have features stored.
func (t *Table[T]) NumRows() int { return len(t.rows) }

// Float16Table is an in-memory feature Source storing rows as IEEE 754
// half-precision values. Lookups convert back to float64, so values round
// to the nearest representable half-precision number.
type Float16Table struct {
	dim  int
	rows map[int32][]float16.Float16
}

// NewFloat16Table creates an empty half-precision feature table with
// vectors of width dim.
func NewFloat16Table(dim int) *Float16Table {
	return &Float16Table{dim: dim, rows: make(map[int32][]float16.Float16)}
}

// Set stores the feature vector of node rounded to half precision.
func (t *Float16Table) Set(node int32, row []float64) error {
	if len(row) != t.dim {
		return errors.Errorf("feature row for node %d has width %d, table dim is %d",
			node, len(row), t.dim)
	}
	stored := make([]float16.Float16, t.dim)
	for i, v := range row {
		stored[i] = float16.Fromfloat32(float32(v))
	}
	t.rows[node] = stored
	return nil
}

// Lookup implements Source.
func (t *Float16Table) Lookup(node int32) ([]float64, error) {
	row, found := t.rows[node]
	if !found {
		return nil, errors.Errorf("no features stored for node %d", node)
	}
	out := make([]float64, t.dim)
	for i, v := range row {
		out[i] = float64(v.Float32())
	}
	return out, nil
}

// Dim implements Source.
func (t *Float16Table) Dim() int { return t.dim }

// funcSource adapts a plain function to a Source.
type funcSource struct {
	dim int
	fn  func(node int32) ([]float64, error)
}

// FromFunc adapts fn to a Source with vectors of width dim. fn must return
// a fresh slice per call.
func FromFunc(dim int, fn func(node int32) ([]float64, error)) Source {
	return funcSource{dim: dim, fn: fn}
}

func (f funcSource) Lookup(node int32) ([]float64, error) { return f.fn(node) }
func (f funcSource) Dim() int                             { return f.dim }
