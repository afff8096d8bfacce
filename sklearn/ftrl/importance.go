package ftrl

import (
	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/hashftrl/core/frame"
	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

// Column names of the feature importances frame.
const (
	FeatureNameColumn       = "feature_name"
	FeatureImportanceColumn = "feature_importance"
)

// importances returns nil unless there is one recorded name per importance.
func (e *ftrl[T]) importances(names []string, normalize bool) *frame.Frame {
	if len(names) == 0 || len(names) != len(e.fi) {
		return nil
	}

	values := e.fi
	if normalize {
		values = normalized(e.fi)
	}
	return frame.MustNew(
		frame.NewStringColumn(FeatureNameColumn, names),
		floatColumn(FeatureImportanceColumn, values),
	)
}

// normalized divides the importances by their maximum. All-zero
// importances are returned unchanged.
func normalized[T Float](fi []T) []T {
	out := make([]T, len(fi))
	if len(fi) == 0 {
		return out
	}

	wide := make([]float64, len(fi))
	for i, v := range fi {
		wide[i] = float64(v)
	}
	if top := floats.Max(wide); top > 0 {
		floats.Scale(1/top, wide)
	}
	for i, v := range wide {
		out[i] = T(v)
	}
	return out
}

// validateImportances checks a frame produced by FeatureImportances before
// it is restored.
func validateImportances(f *frame.Frame, want frame.Type) error {
	const op = "SetImportances"
	if f.NCols() != 2 {
		return errors.NewShapeErrorf(op, 2, f.NCols(), 1,
			"expected columns '%s' and '%s'", FeatureNameColumn, FeatureImportanceColumn)
	}
	if f.NRows() == 0 {
		return errors.NewShapeErrorf(op, 1, 0, 0, "feature importances cannot be empty")
	}
	if names := f.Col(0); names.Type() != frame.String {
		return errors.NewTypeMismatchError(op, names.Name(), frame.String.String(), names.Type().String())
	}
	values := f.Col(1)
	if values.Type() != want {
		return errors.NewTypeMismatchError(op, values.Name(), want.String(), values.Type().String())
	}
	for i := 0; i < values.Len(); i++ {
		if v := values.Float64(i); v < 0 || !errors.IsFinite(v) {
			return errors.NewConfigurationError(values.Name(), "feature importances should be non-negative", v)
		}
	}
	return nil
}
