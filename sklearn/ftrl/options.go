package ftrl

import (
	"github.com/YuminosukeSato/hashftrl/pkg/errors"
	"github.com/YuminosukeSato/hashftrl/pkg/log"
)

// Option is a functional option for New.
type Option func(*config)

type config struct {
	params     Params
	individual []string // names of params set through individual options

	bundle *Params // set by WithParams
	labels []string

	nthreads int
	logger   log.Logger
	callback EpochCallback
	drift    DriftDetector
}

func newConfig() *config {
	return &config{params: DefaultParams()}
}

// resolve returns the effective Params. A bundle and individual parameter
// options are mutually exclusive.
func (c *config) resolve() (Params, error) {
	if c.bundle == nil {
		return c.params, nil
	}
	if len(c.individual) > 0 {
		return Params{}, errConflictingParams(c.individual)
	}
	return *c.bundle, nil
}

func errConflictingParams(individual []string) error {
	return errors.NewConfigurationError("params",
		"WithParams cannot be combined with individual parameter options", individual)
}

// WithParams sets every hyperparameter at once. It can not be combined with
// WithAlpha, WithBeta, WithLambda1, WithLambda2, WithNBins, WithNEpochs,
// WithInteractions or WithDoublePrecision.
func WithParams(p Params) Option {
	return func(c *config) {
		c.bundle = &p
	}
}

// WithAlpha sets the learning rate.
func WithAlpha(alpha float64) Option {
	return func(c *config) {
		c.params.Alpha = alpha
		c.individual = append(c.individual, "alpha")
	}
}

// WithBeta sets the learning-rate smoothing term.
func WithBeta(beta float64) Option {
	return func(c *config) {
		c.params.Beta = beta
		c.individual = append(c.individual, "beta")
	}
}

// WithLambda1 sets the L1 regularization strength.
func WithLambda1(lambda1 float64) Option {
	return func(c *config) {
		c.params.Lambda1 = lambda1
		c.individual = append(c.individual, "lambda1")
	}
}

// WithLambda2 sets the L2 regularization strength.
func WithLambda2(lambda2 float64) Option {
	return func(c *config) {
		c.params.Lambda2 = lambda2
		c.individual = append(c.individual, "lambda2")
	}
}

// WithNBins sets the number of hash bins.
func WithNBins(nbins uint64) Option {
	return func(c *config) {
		c.params.NBins = nbins
		c.individual = append(c.individual, "nbins")
	}
}

// WithNEpochs sets the number of passes over the data per Fit.
func WithNEpochs(nepochs int) Option {
	return func(c *config) {
		c.params.NEpochs = nepochs
		c.individual = append(c.individual, "nepochs")
	}
}

// WithInteractions turns on pairwise feature interactions.
func WithInteractions(interactions bool) Option {
	return func(c *config) {
		c.params.Interactions = interactions
		c.individual = append(c.individual, "interactions")
	}
}

// WithDoublePrecision selects float64 weights.
func WithDoublePrecision(double bool) Option {
	return func(c *config) {
		c.params.DoublePrecision = double
		c.individual = append(c.individual, "double_precision")
	}
}

// WithLabels sets the class labels. See Model.SetLabels.
func WithLabels(labels ...string) Option {
	return func(c *config) {
		c.labels = append([]string(nil), labels...)
	}
}

// WithNThreads sets the number of training and prediction workers.
// Values <= 0 mean one per CPU.
func WithNThreads(n int) Option {
	return func(c *config) {
		c.nthreads = n
	}
}

// WithLogger sets the logger. The global logger is used otherwise.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithEpochCallback registers a function called after every training epoch.
func WithEpochCallback(cb EpochCallback) Option {
	return func(c *config) {
		c.callback = cb
	}
}

// WithDriftDetector makes FitStream score every batch before training on it
// and feed the per-row outcomes to d. Drift is reported in the log.
func WithDriftDetector(d DriftDetector) Option {
	return func(c *config) {
		c.drift = d
	}
}
