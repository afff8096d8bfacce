package ftrl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 0.005, p.Alpha)
	assert.Equal(t, 1.0, p.Beta)
	assert.Equal(t, 0.0, p.Lambda1)
	assert.Equal(t, 1.0, p.Lambda2)
	assert.Equal(t, uint64(1_000_000), p.NBins)
	assert.Equal(t, 1, p.NEpochs)
	assert.False(t, p.Interactions)
	assert.False(t, p.DoublePrecision)
	assert.NoError(t, p.Validate())
}

func TestNew_InvalidParams(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		param string
	}{
		{"zero alpha", []Option{WithAlpha(0)}, "alpha"},
		{"negative alpha", []Option{WithAlpha(-1)}, "alpha"},
		{"NaN alpha", []Option{WithAlpha(math.NaN())}, "alpha"},
		{"negative beta", []Option{WithBeta(-1)}, "beta"},
		{"negative lambda1", []Option{WithLambda1(-0.1)}, "lambda1"},
		{"negative lambda2", []Option{WithLambda2(-0.1)}, "lambda2"},
		{"NaN lambda2", []Option{WithLambda2(math.NaN())}, "lambda2"},
		{"infinite alpha", []Option{WithAlpha(math.Inf(1))}, "alpha"},
		{"infinite beta", []Option{WithBeta(math.Inf(1))}, "beta"},
		{"zero nbins", []Option{WithNBins(0)}, "nbins"},
		{"negative nepochs", []Option{WithNEpochs(-1)}, "nepochs"},
		{"bad bundle", []Option{WithParams(Params{Alpha: 1, NBins: 0})}, "nbins"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.opts...)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.True(t, errors.IsConfiguration(err))

			var cfgErr *errors.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.param, cfgErr.ParamName)
		})
	}
}

func TestNew_ValidBoundaryParams(t *testing.T) {
	m, err := New(
		WithAlpha(0.1),
		WithBeta(0),
		WithLambda1(0),
		WithLambda2(0),
		WithNBins(100),
	)
	require.NoError(t, err)
	assert.Equal(t, 0.1, m.Alpha())
	assert.Equal(t, 0.0, m.Beta())
	assert.Equal(t, uint64(100), m.NBins())
	assert.Equal(t, DefaultNEpochs, m.NEpochs())
}

func TestNew_BundleAndIndividualConflict(t *testing.T) {
	_, err := New(WithParams(DefaultParams()), WithAlpha(0.1))
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))

	// non-parameter options combine with either form
	m, err := New(WithParams(DefaultParams()), WithLabels("a", "b"), WithNThreads(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, m.Labels())
	assert.Equal(t, 2, m.NThreads())
}

func TestParamsTuple(t *testing.T) {
	p := Params{
		Alpha: 0.1, Beta: 0.5, Lambda1: 0.01, Lambda2: 2,
		NBins: 1024, NEpochs: 3, Interactions: true, DoublePrecision: false,
	}
	tuple := p.Tuple()
	assert.Equal(t, [8]float64{0.1, 0.5, 0.01, 2, 1024, 3, 1, 0}, tuple)

	back, err := ParamsFromTuple(tuple[:])
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestParamsFromTuple_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		tuple []float64
	}{
		{"short", []float64{0.1, 1, 0, 1, 10, 1, 0}},
		{"long", []float64{0.1, 1, 0, 1, 10, 1, 0, 0, 0}},
		{"fractional nbins", []float64{0.1, 1, 0, 1, 10.5, 1, 0, 0}},
		{"negative nepochs", []float64{0.1, 1, 0, 1, 10, -1, 0, 0}},
		{"flag out of range", []float64{0.1, 1, 0, 1, 10, 1, 2, 0}},
		{"invalid alpha", []float64{0, 1, 0, 1, 10, 1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParamsFromTuple(tt.tuple)
			require.Error(t, err)
			assert.True(t, errors.IsConfiguration(err))
		})
	}
}

func TestGetParams_SetParamsMap(t *testing.T) {
	m := newModel(t)
	params := m.GetParams()
	assert.Equal(t, DefaultAlpha, params["alpha"])
	assert.Equal(t, DefaultNBins, params["nbins"])
	assert.Equal(t, false, params["double_precision"])

	require.NoError(t, m.SetParamsMap(map[string]interface{}{
		"alpha":            0.2,
		"nbins":            64,
		"nepochs":          float64(4),
		"double_precision": true,
	}))
	assert.Equal(t, 0.2, m.Alpha())
	assert.Equal(t, uint64(64), m.NBins())
	assert.Equal(t, 4, m.NEpochs())
	assert.True(t, m.DoublePrecision())

	err := m.SetParamsMap(map[string]interface{}{"gamma": 1.0})
	assert.True(t, errors.IsConfiguration(err))

	err = m.SetParamsMap(map[string]interface{}{"interactions": "yes"})
	assert.True(t, errors.IsConfiguration(err))

	err = m.SetParamsMap(map[string]interface{}{"alpha": -1.0})
	assert.True(t, errors.IsConfiguration(err))
	assert.Equal(t, 0.2, m.Alpha(), "failed update must not change params")
}

func TestSetters_Validation(t *testing.T) {
	m := newModel(t)

	assert.True(t, errors.IsConfiguration(m.SetAlpha(0)))
	assert.True(t, errors.IsConfiguration(m.SetBeta(-1)))
	assert.True(t, errors.IsConfiguration(m.SetLambda1(-1)))
	assert.True(t, errors.IsConfiguration(m.SetLambda2(math.NaN())))
	assert.True(t, errors.IsConfiguration(m.SetNBins(0)))
	assert.True(t, errors.IsConfiguration(m.SetNEpochs(-2)))
	assert.Equal(t, DefaultParams(), m.Params())

	require.NoError(t, m.SetAlpha(0.3))
	require.NoError(t, m.SetBeta(0.2))
	require.NoError(t, m.SetLambda1(0.01))
	require.NoError(t, m.SetLambda2(0.5))
	require.NoError(t, m.SetNBins(16))
	require.NoError(t, m.SetNEpochs(0))
	require.NoError(t, m.SetInteractions(true))
	assert.Equal(t, Params{
		Alpha: 0.3, Beta: 0.2, Lambda1: 0.01, Lambda2: 0.5,
		NBins: 16, NEpochs: 0, Interactions: true,
	}, m.Params())
}

func TestSetDoublePrecision_KeepsInteractions(t *testing.T) {
	m := newModel(t, WithInteractions(false))
	require.NoError(t, m.SetDoublePrecision(true))
	assert.True(t, m.DoublePrecision())
	assert.False(t, m.Interactions())
	assert.True(t, m.eng.doublePrecision())

	require.NoError(t, m.SetDoublePrecision(false))
	assert.False(t, m.eng.doublePrecision())
}

func TestLayoutSetters_TrainedModel(t *testing.T) {
	m, _ := trainedModel(t, WithNBins(128), WithAlpha(0.1))

	for name, err := range map[string]error{
		"nbins":            m.SetNBins(256),
		"interactions":     m.SetInteractions(true),
		"double_precision": m.SetDoublePrecision(true),
	} {
		require.Error(t, err, name)
		assert.True(t, errors.IsState(err), name)
	}
	assert.Equal(t, uint64(128), m.NBins())

	// unchanged values and non-layout params are accepted
	require.NoError(t, m.SetNBins(128))
	require.NoError(t, m.SetAlpha(0.2))
	require.NoError(t, m.SetNEpochs(3))

	m.Reset()
	require.NoError(t, m.SetNBins(256))
	assert.Equal(t, uint64(256), m.NBins())
}
