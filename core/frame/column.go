// Package frame is the minimal columnar table the FTRL engine consumes and
// produces: typed, immutable, fixed-length columns addressed by position.
package frame

import (
	"math"
	"strconv"
)

// Type tags the primitive type stored in a Column.
type Type uint8

const (
	Bool Type = iota + 1
	Int
	Float32
	Float64
	String
)

func (t Type) String() string {
	switch t {
	case Bool:
		return "bool"
	case Int:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// IsFloat reports whether t is Float32 or Float64.
func (t Type) IsFloat() bool { return t == Float32 || t == Float64 }

// Column is one named, typed, immutable column.
type Column interface {
	Name() string
	Type() Type
	Len() int

	// Float64 returns the value at row i widened to float64; strings parse
	// as floats and yield NaN when they do not.
	Float64(i int) float64

	// Text returns the value at row i in its canonical string form.
	Text(i int) string

	// Bits returns a 64-bit identity of the value at row i: 0/1 for bools,
	// two's complement for ints, IEEE-754 bits of the float64 value for
	// floats. For strings it returns 0 and ok=false; hash Text instead.
	Bits(i int) (bits uint64, ok bool)
}

type boolColumn struct {
	name string
	data []bool
}

// NewBoolColumn creates a Bool column. The slice is copied.
func NewBoolColumn(name string, data []bool) Column {
	return &boolColumn{name: name, data: append([]bool(nil), data...)}
}

func (c *boolColumn) Name() string { return c.name }
func (c *boolColumn) Type() Type   { return Bool }
func (c *boolColumn) Len() int     { return len(c.data) }

func (c *boolColumn) Float64(i int) float64 {
	if c.data[i] {
		return 1
	}
	return 0
}

func (c *boolColumn) Text(i int) string { return strconv.FormatBool(c.data[i]) }

func (c *boolColumn) Bits(i int) (uint64, bool) {
	if c.data[i] {
		return 1, true
	}
	return 0, true
}

// Bools returns a copy of the column data.
func (c *boolColumn) Bools() []bool { return append([]bool(nil), c.data...) }

type intColumn struct {
	name string
	data []int64
}

// NewIntColumn creates an Int column. The slice is copied.
func NewIntColumn(name string, data []int64) Column {
	return &intColumn{name: name, data: append([]int64(nil), data...)}
}

func (c *intColumn) Name() string              { return c.name }
func (c *intColumn) Type() Type                { return Int }
func (c *intColumn) Len() int                  { return len(c.data) }
func (c *intColumn) Float64(i int) float64     { return float64(c.data[i]) }
func (c *intColumn) Text(i int) string         { return strconv.FormatInt(c.data[i], 10) }
func (c *intColumn) Bits(i int) (uint64, bool) { return uint64(c.data[i]), true }

type float32Column struct {
	name string
	data []float32
}

// NewFloat32Column creates a Float32 column. The slice is copied.
func NewFloat32Column(name string, data []float32) Column {
	return &float32Column{name: name, data: append([]float32(nil), data...)}
}

func (c *float32Column) Name() string          { return c.name }
func (c *float32Column) Type() Type            { return Float32 }
func (c *float32Column) Len() int              { return len(c.data) }
func (c *float32Column) Float64(i int) float64 { return float64(c.data[i]) }

func (c *float32Column) Text(i int) string {
	return strconv.FormatFloat(float64(c.data[i]), 'g', -1, 32)
}

func (c *float32Column) Bits(i int) (uint64, bool) {
	return math.Float64bits(float64(c.data[i])), true
}

// Float32s returns a copy of the column data.
func (c *float32Column) Float32s() []float32 { return append([]float32(nil), c.data...) }

type float64Column struct {
	name string
	data []float64
}

// NewFloat64Column creates a Float64 column. The slice is copied.
func NewFloat64Column(name string, data []float64) Column {
	return &float64Column{name: name, data: append([]float64(nil), data...)}
}

func (c *float64Column) Name() string          { return c.name }
func (c *float64Column) Type() Type            { return Float64 }
func (c *float64Column) Len() int              { return len(c.data) }
func (c *float64Column) Float64(i int) float64 { return c.data[i] }

func (c *float64Column) Text(i int) string {
	return strconv.FormatFloat(c.data[i], 'g', -1, 64)
}

func (c *float64Column) Bits(i int) (uint64, bool) { return math.Float64bits(c.data[i]), true }

// Float64s returns a copy of the column data.
func (c *float64Column) Float64s() []float64 { return append([]float64(nil), c.data...) }

type stringColumn struct {
	name string
	data []string
}

// NewStringColumn creates a String column. The slice is copied.
func NewStringColumn(name string, data []string) Column {
	return &stringColumn{name: name, data: append([]string(nil), data...)}
}

func (c *stringColumn) Name() string { return c.name }
func (c *stringColumn) Type() Type   { return String }
func (c *stringColumn) Len() int     { return len(c.data) }

func (c *stringColumn) Float64(i int) float64 {
	v, err := strconv.ParseFloat(c.data[i], 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func (c *stringColumn) Text(i int) string       { return c.data[i] }
func (c *stringColumn) Bits(int) (uint64, bool) { return 0, false }

// Float32Values returns the data of a Float32 column, or nil, false.
func Float32Values(c Column) ([]float32, bool) {
	fc, ok := c.(*float32Column)
	if !ok {
		return nil, false
	}
	return fc.Float32s(), true
}

// Float64Values returns the data of a Float64 column, or nil, false.
func Float64Values(c Column) ([]float64, bool) {
	fc, ok := c.(*float64Column)
	if !ok {
		return nil, false
	}
	return fc.Float64s(), true
}

// BoolValues returns the data of a Bool column, or nil, false.
func BoolValues(c Column) ([]bool, bool) {
	bc, ok := c.(*boolColumn)
	if !ok {
		return nil, false
	}
	return bc.Bools(), true
}

// rename returns a shallow copy of c under a new name. Columns are
// immutable, so sharing the backing slice is safe.
func rename(c Column, name string) Column {
	switch col := c.(type) {
	case *boolColumn:
		return &boolColumn{name: name, data: col.data}
	case *intColumn:
		return &intColumn{name: name, data: col.data}
	case *float32Column:
		return &float32Column{name: name, data: col.data}
	case *float64Column:
		return &float64Column{name: name, data: col.data}
	case *stringColumn:
		return &stringColumn{name: name, data: col.data}
	default:
		return c
	}
}
