package ftrl

import (
	"math"

	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

// Default hyperparameter values.
const (
	DefaultAlpha          = 0.005
	DefaultBeta           = 1.0
	DefaultLambda1        = 0.0
	DefaultLambda2        = 1.0
	DefaultNBins   uint64 = 1_000_000
	DefaultNEpochs        = 1
)

// nParams is the length of the fixed-order tuple form of Params.
const nParams = 8

// Params holds the FTRL-Proximal hyperparameters.
type Params struct {
	Alpha   float64 // learning rate, > 0
	Beta    float64 // learning-rate smoothing, >= 0
	Lambda1 float64 // L1 regularization, >= 0
	Lambda2 float64 // L2 regularization, >= 0

	NBins   uint64 // number of hash bins per classifier, > 0
	NEpochs int    // passes over the data per Fit, >= 0

	Interactions    bool // add pairwise feature interactions
	DoublePrecision bool // float64 weights instead of float32
}

// DefaultParams returns the default hyperparameters.
func DefaultParams() Params {
	return Params{
		Alpha:   DefaultAlpha,
		Beta:    DefaultBeta,
		Lambda1: DefaultLambda1,
		Lambda2: DefaultLambda2,
		NBins:   DefaultNBins,
		NEpochs: DefaultNEpochs,
	}
}

// Validate checks every hyperparameter and returns the first violation as a
// ConfigurationError.
func (p Params) Validate() error {
	if err := validateAlpha(p.Alpha); err != nil {
		return err
	}
	if err := validateNonNegative("beta", p.Beta); err != nil {
		return err
	}
	if err := validateNonNegative("lambda1", p.Lambda1); err != nil {
		return err
	}
	if err := validateNonNegative("lambda2", p.Lambda2); err != nil {
		return err
	}
	if err := validateNBins(p.NBins); err != nil {
		return err
	}
	return validateNEpochs(p.NEpochs)
}

// Tuple returns the parameters in the fixed order alpha, beta, lambda1,
// lambda2, nbins, nepochs, interactions, double_precision.
func (p Params) Tuple() [nParams]float64 {
	return [nParams]float64{
		p.Alpha,
		p.Beta,
		p.Lambda1,
		p.Lambda2,
		float64(p.NBins),
		float64(p.NEpochs),
		boolToFloat(p.Interactions),
		boolToFloat(p.DoublePrecision),
	}
}

// ParamsFromTuple is the inverse of Params.Tuple. The values are validated.
func ParamsFromTuple(t []float64) (Params, error) {
	if len(t) != nParams {
		return Params{}, errors.NewConfigurationError("params", "tuple must have exactly 8 elements", len(t))
	}

	nbins, err := tupleCount("nbins", t[4])
	if err != nil {
		return Params{}, err
	}
	nepochs, err := tupleCount("nepochs", t[5])
	if err != nil {
		return Params{}, err
	}
	interactions, err := tupleFlag("interactions", t[6])
	if err != nil {
		return Params{}, err
	}
	double, err := tupleFlag("double_precision", t[7])
	if err != nil {
		return Params{}, err
	}

	p := Params{
		Alpha:           t[0],
		Beta:            t[1],
		Lambda1:         t[2],
		Lambda2:         t[3],
		NBins:           nbins,
		NEpochs:         int(nepochs),
		Interactions:    interactions,
		DoublePrecision: double,
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

func validateAlpha(v float64) error {
	if !errors.IsFinite(v) || v <= 0 {
		return errors.NewConfigurationError("alpha", "should be a positive finite number", v)
	}
	return nil
}

func validateNonNegative(name string, v float64) error {
	if !errors.IsFinite(v) || v < 0 {
		return errors.NewConfigurationError(name, "should be a finite number greater than or equal to zero", v)
	}
	return nil
}

func validateNBins(v uint64) error {
	if v == 0 {
		return errors.NewConfigurationError("nbins", "should be positive", v)
	}
	return nil
}

func validateNEpochs(v int) error {
	if v < 0 {
		return errors.NewConfigurationError("nepochs", "should be greater than or equal to zero", v)
	}
	return nil
}

func tupleCount(name string, v float64) (uint64, error) {
	if math.IsNaN(v) || v < 0 || v != math.Trunc(v) || v > math.MaxInt64 {
		return 0, errors.NewConfigurationError(name, "should be a non-negative integer", v)
	}
	return uint64(v), nil
}

func tupleFlag(name string, v float64) (bool, error) {
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, errors.NewConfigurationError(name, "should be 0 or 1", v)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// paramsMap renders p with the keys used by GetParams/SetParamsMap.
func paramsMap(p Params) map[string]interface{} {
	return map[string]interface{}{
		"alpha":            p.Alpha,
		"beta":             p.Beta,
		"lambda1":          p.Lambda1,
		"lambda2":          p.Lambda2,
		"nbins":            p.NBins,
		"nepochs":          p.NEpochs,
		"interactions":     p.Interactions,
		"double_precision": p.DoublePrecision,
	}
}

// applyParamsMap returns a copy of p with the values in m applied. Unknown
// keys and values of the wrong kind are ConfigurationErrors.
func applyParamsMap(p Params, m map[string]interface{}) (Params, error) {
	for key, raw := range m {
		var err error
		switch key {
		case "alpha":
			p.Alpha, err = asFloat(key, raw)
		case "beta":
			p.Beta, err = asFloat(key, raw)
		case "lambda1":
			p.Lambda1, err = asFloat(key, raw)
		case "lambda2":
			p.Lambda2, err = asFloat(key, raw)
		case "nbins":
			var n int64
			n, err = asInt(key, raw)
			if err == nil && n <= 0 {
				err = errors.NewConfigurationError(key, "should be positive", raw)
			}
			p.NBins = uint64(n)
		case "nepochs":
			var n int64
			n, err = asInt(key, raw)
			p.NEpochs = int(n)
		case "interactions":
			p.Interactions, err = asBool(key, raw)
		case "double_precision":
			p.DoublePrecision, err = asBool(key, raw)
		default:
			err = errors.NewConfigurationError(key, "unknown parameter", raw)
		}
		if err != nil {
			return Params{}, err
		}
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

func asFloat(key string, v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	}
	return 0, errors.NewConfigurationError(key, "should be a number", v)
}

func asInt(key string, v interface{}) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case uint64:
		if x > math.MaxInt64 {
			return 0, errors.NewConfigurationError(key, "is out of range", v)
		}
		return int64(x), nil
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) || math.IsNaN(x) {
			return 0, errors.NewConfigurationError(key, "should be an integer", v)
		}
		return int64(x), nil
	}
	return 0, errors.NewConfigurationError(key, "should be an integer", v)
}

func asBool(key string, v interface{}) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, errors.NewConfigurationError(key, "should be a boolean", v)
}
