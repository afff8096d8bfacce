package ftrl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

func TestPartialFit_SingleEpoch(t *testing.T) {
	m := newModel(t, WithNBins(256), WithAlpha(0.1), WithNEpochs(3), WithNThreads(1))
	X, y := syntheticData(300, 4)

	require.NoError(t, m.PartialFit(X, y))
	assert.Equal(t, 1, m.NIterations())
	require.Len(t, m.GetLossHistory(), 1)
	assert.Equal(t, m.GetLossHistory()[0], m.GetLoss())

	require.NoError(t, m.Fit(X, y))
	assert.Equal(t, 4, m.NIterations())
	history := m.GetLossHistory()
	require.Len(t, history, 4)
	assert.Less(t, history[3], history[0])
	assert.Equal(t, history[3], m.GetLoss())
	assert.Equal(t, 3, m.NEpochs(), "PartialFit leaves nepochs alone")
}

func TestPartialFit_InvalidInput(t *testing.T) {
	m := newModel(t)
	X, _ := boolScenario()
	err := m.PartialFit(X, nil)
	assert.True(t, errors.IsShape(err))
	assert.Zero(t, m.NIterations())
	assert.Zero(t, m.GetLoss())
}

func TestLossHistory_ClearedOnReset(t *testing.T) {
	m, X := trainedModel(t, WithNBins(64), WithNEpochs(2))
	assert.Len(t, m.GetLossHistory(), 2)

	m.Reset()
	assert.Empty(t, m.GetLossHistory())
	assert.Zero(t, m.NIterations())

	src, _ := trainedModel(t, WithNBins(64))
	require.NoError(t, m.RestoreState(src.ExportState()))
	assert.Empty(t, m.GetLossHistory(), "restored models start a new history")
	_, err := m.Predict(X)
	require.NoError(t, err)
}

func TestLossHistory_IsBounded(t *testing.T) {
	m := newModel(t)
	values := make([]float64, maxLossHistory+6)
	for i := range values {
		values[i] = float64(i)
	}
	m.recordLosses(values[:10])
	m.recordLosses(values[10:])

	history := m.GetLossHistory()
	require.Len(t, history, maxLossHistory)
	assert.Equal(t, 6.0, history[0])
	assert.Equal(t, float64(maxLossHistory+5), m.GetLoss())
	assert.Equal(t, maxLossHistory+6, m.NIterations())
}

func TestGetConverged(t *testing.T) {
	tests := []struct {
		name   string
		losses []float64
		want   bool
	}{
		{"no epochs", nil, false},
		{"one epoch", []float64{0.3}, false},
		{"still improving", []float64{0.5, 0.3}, false},
		{"flat", []float64{0.5, 0.30004, 0.30001}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t)
			m.recordLosses(tt.losses)
			assert.Equal(t, tt.want, m.GetConverged())
		})
	}
}

func TestFit_NonFiniteLossStopsTraining(t *testing.T) {
	m, X := trainedModel(t, WithNBins(16), WithNEpochs(3))
	before := m.NIterations()

	// NaNが混入した重みでは損失が有限にならない
	e := m.eng.(*ftrl[float32])
	for b := range e.store.cls[0].z {
		e.store.cls[0].z[b] = float32(math.NaN())
	}

	_, y := syntheticData(X.NRows(), 1)
	err := m.Fit(X, y)
	require.Error(t, err)
	assert.True(t, errors.IsNumerical(err), "got %v", err)

	var numErr *errors.NumericalInstabilityError
	require.True(t, errors.As(err, &numErr))
	assert.Equal(t, 1, numErr.Iteration)
	assert.True(t, math.IsNaN(numErr.Values[0]))
	assert.Equal(t, before, m.NIterations(), "the failed epoch is not recorded")
}
