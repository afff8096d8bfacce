package ftrl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/hashftrl/core/frame"
	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

func weightsFrame(nbins int, ncols int, n float32) *frame.Frame {
	cols := make([]frame.Column, ncols)
	for k := range cols {
		data := make([]float32, nbins)
		for i := range data {
			data[i] = n
		}
		prefix := "z_"
		if k%2 == 1 {
			prefix = "n_"
		}
		cols[k] = frame.NewFloat32Column(prefix+string(rune('a'+k/2)), data)
	}
	return frame.MustNew(cols...)
}

func TestWeights_Layout(t *testing.T) {
	m, _ := trainedModel(t, WithNBins(32))
	w := m.Weights()
	require.NotNil(t, w)
	assert.Equal(t, 32, w.NRows())
	assert.Equal(t, []string{"z_target", "n_target"}, w.Names())
	assert.Equal(t, []frame.Type{frame.Float32, frame.Float32}, w.Types())

	mm := newModel(t, WithNBins(32), WithLabels("x", "y"), WithDoublePrecision(true))
	X := frame.MustNew(frame.NewIntColumn("f", []int64{1, 2}))
	y := frame.MustNew(frame.NewStringColumn("t", []string{"x", "y"}))
	require.NoError(t, mm.Fit(X, y))
	w = mm.Weights()
	assert.Equal(t, []string{"z_x", "n_x", "z_y", "n_y"}, w.Names())
	assert.Equal(t, frame.Float64, w.Col(3).Type())
}

func TestWeights_UntrainedIsNil(t *testing.T) {
	assert.Nil(t, newModel(t).Weights())
}

func TestSetWeights_Validation(t *testing.T) {
	negative := weightsFrame(8, 2, 0)
	negN := make([]float32, 8)
	negN[3] = -1
	negative = frame.MustNew(negative.Col(0), frame.NewFloat32Column("n_a", negN))

	nanN := make([]float32, 8)
	nanN[0] = float32(math.NaN())
	withNaN := frame.MustNew(negative.Col(0), frame.NewFloat32Column("n_a", nanN))

	infZ := make([]float32, 8)
	infZ[5] = float32(math.Inf(-1))
	withInfZ := frame.MustNew(frame.NewFloat32Column("z_a", infZ), frame.NewFloat32Column("n_a", make([]float32, 8)))

	doubles := frame.MustNew(
		frame.NewFloat64Column("z_a", make([]float64, 8)),
		frame.NewFloat64Column("n_a", make([]float64, 8)),
	)

	tests := []struct {
		name  string
		f     *frame.Frame
		check func(error) bool
	}{
		{"odd columns", weightsFrame(8, 3, 0), errors.IsShape},
		{"too few rows", weightsFrame(7, 2, 0), errors.IsShape},
		{"too many rows", weightsFrame(9, 2, 0), errors.IsShape},
		{"wrong classifier count", weightsFrame(8, 4, 0), errors.IsShape},
		{"wrong precision", doubles, errors.IsTypeMismatch},
		{"negative n", negative, errors.IsConfiguration},
		{"NaN n", withNaN, errors.IsConfiguration},
		{"infinite z", withInfZ, errors.IsConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t, WithNBins(8))
			err := m.SetWeights(tt.f)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
			assert.False(t, m.IsTrained())
		})
	}
}

func TestSetWeights_RoundTrip(t *testing.T) {
	src, X := trainedModel(t, WithNBins(64), WithNThreads(1))
	want, err := src.Predict(X)
	require.NoError(t, err)

	dst := newModel(t, WithNBins(64))
	require.NoError(t, dst.SetWeights(src.Weights()))
	assert.True(t, dst.IsTrained())
	assert.Equal(t, RegTypeNone, dst.RegType(), "SetWeights leaves RegType alone")

	// no columns recorded yet
	_, err = dst.Predict(X)
	require.Error(t, err)
	assert.True(t, errors.IsState(err))

	require.NoError(t, dst.RestoreState(src.ExportState()))
	got, err := dst.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, probabilities(want, 0), probabilities(got, 0))
}

func TestSetWeights_ReplacesTrainedWeights(t *testing.T) {
	m, X := trainedModel(t, WithNBins(16))
	require.NoError(t, m.SetWeights(weightsFrame(16, 2, 0)))

	pred, err := m.Predict(X)
	require.NoError(t, err)
	for _, p := range probabilities(pred, 0) {
		assert.Equal(t, 0.5, p, "zero weights predict 0.5")
	}
	assert.Equal(t, RegTypeBinomial, m.RegType())
}

func TestSetWeights_ZeroDenominatorPredictsHalf(t *testing.T) {
	m, X := trainedModel(t, WithNBins(8), WithBeta(0), WithLambda2(0))

	// z != 0 with n == 0 has no finite weight when beta and lambda2 are zero
	w := frame.MustNew(
		frame.NewFloat32Column("z_target", []float32{1, -1, 1, -1, 1, -1, 1, -1}),
		frame.NewFloat32Column("n_target", make([]float32, 8)),
	)
	require.NoError(t, m.SetWeights(w))

	pred, err := m.Predict(X)
	require.NoError(t, err)
	for _, p := range probabilities(pred, 0) {
		require.Equal(t, 0.5, p)
	}

	y := frame.MustNew(frame.NewBoolColumn("target", make([]bool, X.NRows())))
	require.NoError(t, m.Fit(X, y))
	pred, err = m.Predict(X)
	require.NoError(t, err)
	for _, p := range probabilities(pred, 0) {
		require.False(t, math.IsNaN(p))
	}
}

func TestSetWeights_NilResets(t *testing.T) {
	m, _ := trainedModel(t, WithNBins(16), WithAlpha(0.3))
	require.NoError(t, m.SetWeights(nil))
	assert.False(t, m.IsTrained())
	assert.Nil(t, m.Weights())
	assert.Equal(t, 0.3, m.Alpha())
	assert.Equal(t, RegTypeNone, m.RegType())
}

func TestSetWeights_TrainAfterwards(t *testing.T) {
	m := newModel(t, WithNBins(16))
	require.NoError(t, m.SetWeights(weightsFrame(16, 2, 0)))

	X, y := boolScenario()
	require.NoError(t, m.Fit(X, y))
	assert.Equal(t, []string{"x"}, m.FeatureNames())
	require.NotNil(t, m.FeatureImportances(false))
	assert.Equal(t, RegTypeBinomial, m.RegType())
}
