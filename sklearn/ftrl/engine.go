package ftrl

import (
	"github.com/YuminosukeSato/hashftrl/core/frame"
)

// engine is the precision-specific part of a Model. Exactly one
// implementation, ftrl[float32] or ftrl[float64], backs a Model at a time.
type engine interface {
	doublePrecision() bool
	allocated() bool
	nClassifiers() int

	// allocate creates zeroed accumulators and importances.
	allocate(nbins uint64, nclassifiers, ncols int)
	reset()

	// resizeImportances makes sure there is one importance per column,
	// zeroing them if the count changes.
	resizeImportances(ncols int)

	// train returns the progressive log-loss of every completed epoch.
	train(job *trainJob) ([]float64, error)
	predict(job *predictJob) (*frame.Frame, error)

	weights(labels []string) *frame.Frame
	// setWeights installs accumulators from a frame already checked by
	// validateWeights.
	setWeights(f *frame.Frame, nbins uint64)

	importances(names []string, normalize bool) *frame.Frame
	setImportances(values frame.Column)
}

func newEngine(double bool) engine {
	if double {
		return &ftrl[float64]{}
	}
	return &ftrl[float32]{}
}

// ftrl is the FTRL-Proximal engine for weights of type T.
type ftrl[T Float] struct {
	store *store[T]
	fi    []T
}

func (e *ftrl[T]) doublePrecision() bool {
	var zero T
	_, ok := any(zero).(float64)
	return ok
}

func (e *ftrl[T]) allocated() bool { return e.store != nil }

func (e *ftrl[T]) nClassifiers() int {
	if e.store == nil {
		return 0
	}
	return len(e.store.cls)
}

func (e *ftrl[T]) allocate(nbins uint64, nclassifiers, ncols int) {
	e.store = newStore[T](nbins, nclassifiers)
	e.fi = make([]T, ncols)
}

func (e *ftrl[T]) reset() {
	e.store = nil
	e.fi = nil
}

func (e *ftrl[T]) resizeImportances(ncols int) {
	if len(e.fi) != ncols {
		e.fi = make([]T, ncols)
	}
}

func (e *ftrl[T]) weights(labels []string) *frame.Frame {
	if e.store == nil {
		return nil
	}
	cols := make([]frame.Column, 0, 2*len(e.store.cls))
	for k, c := range e.store.cls {
		cols = append(cols,
			floatColumn("z_"+labels[k], c.z),
			floatColumn("n_"+labels[k], c.n),
		)
	}
	return frame.MustNew(cols...)
}

func (e *ftrl[T]) setWeights(f *frame.Frame, nbins uint64) {
	ncls := f.NCols() / 2
	zs := make([][]T, ncls)
	ns := make([][]T, ncls)
	for k := 0; k < ncls; k++ {
		zs[k] = floatValues[T](f.Col(2 * k))
		ns[k] = floatValues[T](f.Col(2*k + 1))
	}
	e.store = storeFrom(nbins, zs, ns)
}

func (e *ftrl[T]) setImportances(values frame.Column) {
	e.fi = floatValues[T](values)
}

func floatColumn[T Float](name string, data []T) frame.Column {
	switch d := any(data).(type) {
	case []float32:
		return frame.NewFloat32Column(name, d)
	case []float64:
		return frame.NewFloat64Column(name, d)
	}
	panic("ftrl: unsupported float type")
}

// floatValues copies the data of a Float32 or Float64 column matching T.
func floatValues[T Float](c frame.Column) []T {
	var zero T
	switch any(zero).(type) {
	case float32:
		v, _ := frame.Float32Values(c)
		return any(v).([]T)
	case float64:
		v, _ := frame.Float64Values(c)
		return any(v).([]T)
	}
	return nil
}
