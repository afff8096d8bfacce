package ftrl

import (
	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

// Params returns a copy of the hyperparameters.
func (m *Model) Params() Params {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.params
}

// SetParams replaces every hyperparameter. On a trained model nbins,
// interactions and double precision can not change.
func (m *Model) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setParams(p)
}

func (m *Model) setParams(p Params) error {
	if m.state.IsTrained() {
		switch {
		case p.NBins != m.params.NBins:
			return errTrainedLayout("SetNBins", "nbins")
		case p.Interactions != m.params.Interactions:
			return errTrainedLayout("SetInteractions", "interactions")
		case p.DoublePrecision != m.params.DoublePrecision:
			return errTrainedLayout("SetDoublePrecision", "double_precision")
		}
	}
	if p.DoublePrecision != m.params.DoublePrecision {
		m.eng = newEngine(p.DoublePrecision)
	}
	m.params = p
	return nil
}

func errTrainedLayout(op, param string) error {
	return errors.NewStateError(modelName, op,
		"cannot change "+param+" for a trained model, reset this model or create a new one")
}

// GetParams returns the hyperparameters keyed by their snake_case names.
func (m *Model) GetParams() map[string]interface{} {
	return paramsMap(m.Params())
}

// SetParamsMap applies the given snake_case keyed hyperparameters. Unknown
// keys are rejected.
func (m *Model) SetParamsMap(params map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := applyParamsMap(m.params, params)
	if err != nil {
		return err
	}
	return m.setParams(p)
}

// update validates and applies a change to a copy of the hyperparameters.
func (m *Model) update(validate error, apply func(p *Params)) error {
	if validate != nil {
		return validate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.params
	apply(&p)
	return m.setParams(p)
}

// Alpha returns the learning rate.
func (m *Model) Alpha() float64 { return m.Params().Alpha }

// SetAlpha sets the learning rate. It must be positive.
func (m *Model) SetAlpha(alpha float64) error {
	return m.update(validateAlpha(alpha), func(p *Params) { p.Alpha = alpha })
}

// Beta returns the learning-rate smoothing term.
func (m *Model) Beta() float64 { return m.Params().Beta }

// SetBeta sets beta. It must be non-negative.
func (m *Model) SetBeta(beta float64) error {
	return m.update(validateNonNegative("beta", beta), func(p *Params) { p.Beta = beta })
}

// Lambda1 returns the L1 regularization strength.
func (m *Model) Lambda1() float64 { return m.Params().Lambda1 }

// SetLambda1 sets lambda1. It must be non-negative.
func (m *Model) SetLambda1(lambda1 float64) error {
	return m.update(validateNonNegative("lambda1", lambda1), func(p *Params) { p.Lambda1 = lambda1 })
}

// Lambda2 returns the L2 regularization strength.
func (m *Model) Lambda2() float64 { return m.Params().Lambda2 }

// SetLambda2 sets lambda2. It must be non-negative.
func (m *Model) SetLambda2(lambda2 float64) error {
	return m.update(validateNonNegative("lambda2", lambda2), func(p *Params) { p.Lambda2 = lambda2 })
}

// NBins returns the number of hash bins.
func (m *Model) NBins() uint64 { return m.Params().NBins }

// SetNBins sets the number of hash bins. It fails on a trained model.
func (m *Model) SetNBins(nbins uint64) error {
	return m.update(validateNBins(nbins), func(p *Params) { p.NBins = nbins })
}

// NEpochs returns the number of passes per Fit.
func (m *Model) NEpochs() int { return m.Params().NEpochs }

// SetNEpochs sets the number of passes per Fit.
func (m *Model) SetNEpochs(nepochs int) error {
	return m.update(validateNEpochs(nepochs), func(p *Params) { p.NEpochs = nepochs })
}

// Interactions reports whether pairwise interactions are hashed.
func (m *Model) Interactions() bool { return m.Params().Interactions }

// SetInteractions turns pairwise interactions on or off. It fails on a
// trained model.
func (m *Model) SetInteractions(interactions bool) error {
	return m.update(nil, func(p *Params) { p.Interactions = interactions })
}

// DoublePrecision reports whether weights are float64.
func (m *Model) DoublePrecision() bool { return m.Params().DoublePrecision }

// SetDoublePrecision switches the weight precision. It fails on a trained
// model.
func (m *Model) SetDoublePrecision(double bool) error {
	return m.update(nil, func(p *Params) { p.DoublePrecision = double })
}

// NThreads returns the requested number of workers; 0 means one per CPU.
func (m *Model) NThreads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nthreads
}

// SetNThreads sets the number of workers used by Fit and Predict.
func (m *Model) SetNThreads(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nthreads = n
}
