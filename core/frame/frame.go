package frame

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

// Frame is an immutable, ordered collection of equal-length columns.
type Frame struct {
	cols  []Column
	nrows int
}

// New builds a Frame. Columns must have equal lengths and unique, non-empty
// names.
func New(cols ...Column) (*Frame, error) {
	f := &Frame{cols: append([]Column(nil), cols...)}
	seen := make(map[string]struct{}, len(cols))
	for i, c := range cols {
		if c == nil {
			return nil, errors.NewConfigurationError("columns", "nil column", i)
		}
		if c.Name() == "" {
			return nil, errors.NewConfigurationError("columns", "column name cannot be empty", i)
		}
		if _, dup := seen[c.Name()]; dup {
			return nil, errors.NewConfigurationError("columns", "duplicate column name", c.Name())
		}
		seen[c.Name()] = struct{}{}
		if i == 0 {
			f.nrows = c.Len()
		} else if c.Len() != f.nrows {
			return nil, errors.NewShapeErrorf("frame.New", f.nrows, c.Len(), 0, "column '%s'", c.Name())
		}
	}
	return f, nil
}

// MustNew is New that panics on error. Intended for tests and literals.
func MustNew(cols ...Column) *Frame {
	f, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return f
}

// NRows returns the number of rows.
func (f *Frame) NRows() int { return f.nrows }

// NCols returns the number of columns.
func (f *Frame) NCols() int { return len(f.cols) }

// Col returns the i-th column.
func (f *Frame) Col(i int) Column { return f.cols[i] }

// Columns returns the columns in order.
func (f *Frame) Columns() []Column { return append([]Column(nil), f.cols...) }

// ColByName returns the column with the given name.
func (f *Frame) ColByName(name string) (Column, bool) {
	for _, c := range f.cols {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name()
	}
	return names
}

// Types returns the column types in order.
func (f *Frame) Types() []Type {
	types := make([]Type, len(f.cols))
	for i, c := range f.cols {
		types[i] = c.Type()
	}
	return types
}

// Drop returns a frame without the named column.
func (f *Frame) Drop(name string) (*Frame, error) {
	kept := make([]Column, 0, len(f.cols))
	for _, c := range f.cols {
		if c.Name() != name {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(f.cols) {
		return nil, errors.NewConfigurationError("name", "no such column", name)
	}
	return New(kept...)
}

// Rename returns a frame with the columns renamed to names.
func (f *Frame) Rename(names []string) (*Frame, error) {
	if len(names) != len(f.cols) {
		return nil, errors.NewShapeError("frame.Rename", len(f.cols), len(names), 1)
	}
	cols := make([]Column, len(f.cols))
	for i, c := range f.cols {
		cols[i] = rename(c, names[i])
	}
	return New(cols...)
}

// FromMatrix wraps a gonum matrix as a frame of Float64 columns. When names
// is nil the columns are called C0, C1, ...
func FromMatrix(m mat.Matrix, names []string) (*Frame, error) {
	rows, cols := m.Dims()
	if names == nil {
		names = make([]string, cols)
		for j := range names {
			names[j] = fmt.Sprintf("C%d", j)
		}
	}
	if len(names) != cols {
		return nil, errors.NewShapeError("frame.FromMatrix", cols, len(names), 1)
	}
	out := make([]Column, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, m)
		out[j] = NewFloat64Column(names[j], col)
	}
	return New(out...)
}

// ToDense converts every column to float64. String columns that do not
// parse become NaN.
func (f *Frame) ToDense() *mat.Dense {
	if f.nrows == 0 || len(f.cols) == 0 {
		return &mat.Dense{}
	}
	d := mat.NewDense(f.nrows, len(f.cols), nil)
	for j, c := range f.cols {
		for i := 0; i < f.nrows; i++ {
			d.Set(i, j, c.Float64(i))
		}
	}
	return d
}

// record is the gob wire form of a Frame.
type record struct {
	Names    []string
	Types    []Type
	NRows    int
	Bools    map[int][]bool
	Ints     map[int][]int64
	Float32s map[int][]float32
	Float64s map[int][]float64
	Strings  map[int][]string
}

// MarshalBinary implements encoding.BinaryMarshaler so frames can travel
// inside gob-encoded structs.
func (f *Frame) MarshalBinary() ([]byte, error) {
	rec := record{
		Names:    f.Names(),
		Types:    f.Types(),
		NRows:    f.nrows,
		Bools:    map[int][]bool{},
		Ints:     map[int][]int64{},
		Float32s: map[int][]float32{},
		Float64s: map[int][]float64{},
		Strings:  map[int][]string{},
	}
	for j, c := range f.cols {
		switch col := c.(type) {
		case *boolColumn:
			rec.Bools[j] = col.data
		case *intColumn:
			rec.Ints[j] = col.data
		case *float32Column:
			rec.Float32s[j] = col.data
		case *float64Column:
			rec.Float64s[j] = col.data
		case *stringColumn:
			rec.Strings[j] = col.data
		default:
			return nil, errors.NewTypeMismatchError("frame.MarshalBinary", c.Name(), "builtin column", fmt.Sprintf("%T", c))
		}
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return nil, errors.Wrap(err, "frame: encode")
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (f *Frame) UnmarshalBinary(data []byte) error {
	var rec record
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&rec); err != nil {
		return errors.Wrap(err, "frame: decode")
	}
	if len(rec.Names) != len(rec.Types) {
		return errors.NewShapeError("frame.UnmarshalBinary", len(rec.Names), len(rec.Types), 1)
	}
	cols := make([]Column, len(rec.Names))
	for j, name := range rec.Names {
		switch rec.Types[j] {
		case Bool:
			cols[j] = &boolColumn{name: name, data: fill(rec.Bools[j], rec.NRows)}
		case Int:
			cols[j] = &intColumn{name: name, data: fill(rec.Ints[j], rec.NRows)}
		case Float32:
			cols[j] = &float32Column{name: name, data: fill(rec.Float32s[j], rec.NRows)}
		case Float64:
			cols[j] = &float64Column{name: name, data: fill(rec.Float64s[j], rec.NRows)}
		case String:
			cols[j] = &stringColumn{name: name, data: fill(rec.Strings[j], rec.NRows)}
		default:
			return errors.NewTypeMismatchError("frame.UnmarshalBinary", name, "known type", rec.Types[j].String())
		}
	}
	decoded, err := New(cols...)
	if err != nil {
		return err
	}
	*f = *decoded
	return nil
}

// fill restores the length of columns gob dropped because they were empty
// or all zero-length.
func fill[T any](data []T, n int) []T {
	if len(data) == n {
		return data
	}
	out := make([]T, n)
	copy(out, data)
	return out
}
