package ftrl

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/hashftrl/core/frame"
	"github.com/YuminosukeSato/hashftrl/core/model"
	"github.com/YuminosukeSato/hashftrl/pkg/errors"
	"github.com/YuminosukeSato/hashftrl/pkg/log"
)

const modelName = "Ftrl"

// Model is an FTRL-Proximal classifier over hashed features. Binomial
// models have a single classifier; multinomial models train one
// one-vs-rest classifier per label.
//
// Fit must not run concurrently with the setters or with another Fit.
type Model struct {
	mu sync.RWMutex

	id      string
	params  Params
	labels  []string
	regType RegType
	eng     engine
	state   *model.StateManager

	// Recorded at the first Fit, or restored from feature importances.
	featureNames []string
	colHashes    []uint64

	nthreads int
	logger   log.Logger
	callback EpochCallback
	drift    DriftDetector

	// Progressive log-loss per epoch since the last reset.
	losses     []float64
	iterations int
}

// New creates an untrained Model.
//
//	m, err := ftrl.New(
//	    ftrl.WithAlpha(0.1),
//	    ftrl.WithNBins(1<<20),
//	    ftrl.WithLabels("cat", "dog", "bird"),
//	)
func New(opts ...Option) (*Model, error) {
	c := newConfig()
	for _, opt := range opts {
		opt(c)
	}

	p, err := c.resolve()
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	labels, err := normalizeLabels(c.labels)
	if err != nil {
		return nil, err
	}

	logger := c.logger
	if logger == nil {
		logger = log.GetLogger()
	}
	id := uuid.NewString()

	return &Model{
		id:       id,
		params:   p,
		labels:   labels,
		eng:      newEngine(p.DoublePrecision),
		state:    model.NewStateManager(),
		nthreads: c.nthreads,
		logger:   logger.With(log.ModelNameKey, modelName, log.EstimatorIDKey, id),
		callback: c.callback,
		drift:    c.drift,
	}, nil
}

// ID returns the estimator ID attached to every log line of this model.
func (m *Model) ID() string { return m.id }

// Fit trains the model on X with one target column y. All input checks run
// before anything is modified. The first Fit (or the first after Reset)
// allocates the weights; later calls continue training them.
func (m *Model) Fit(X, y *frame.Frame) (err error) {
	defer errors.Recover(&err, "Ftrl.Fit")
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fit(X, y, m.params.NEpochs)
}

func (m *Model) fit(X, y *frame.Frame, nepochs int) error {
	start := time.Now()
	if err := m.checkFitInput(X, y); err != nil {
		return err
	}

	rt := m.regType
	if rt == RegTypeNone {
		rt = regTypeFor(m.labels)
	}
	targets, err := encodeTargets(y.Col(0), rt, m.labels)
	if err != nil {
		return err
	}

	if !m.state.IsTrained() {
		m.eng.allocate(m.params.NBins, len(m.labels), X.NCols())
		m.state.SetTrained()
	}
	if len(m.colHashes) == 0 {
		m.recordFeatures(X.Names())
		m.eng.resizeImportances(X.NCols())
	}
	m.regType = rt

	h := newHasher(m.params.NBins, m.params.Interactions, m.colHashes)
	if uint64(h.nFeatures()) > m.params.NBins {
		errors.Warn(errors.NewHashCollisionWarning(h.nFeatures(), m.params.NBins))
	}
	if nepochs == 0 {
		errors.Warn(errors.NewNoEpochsWarning("Ftrl.Fit"))
	}

	m.logger.Debug("fit started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, X.NRows(),
		log.FeaturesKey, X.NCols(),
		log.HashedFeaturesKey, h.nFeatures(),
		log.ClassifiersKey, len(m.labels),
		log.NBinsKey, m.params.NBins,
		log.PrecisionKey, precisionName(m.params.DoublePrecision),
		log.ThreadsKey, trainWorkers(m.nthreads, X.NRows()),
	)

	p := m.params
	p.NEpochs = nepochs
	history, err := m.eng.train(&trainJob{
		params:   p,
		hasher:   h,
		cols:     X.Columns(),
		nrows:    X.NRows(),
		targets:  targets,
		threads:  m.nthreads,
		callback: m.callback,
	})
	m.recordLosses(history)
	if err != nil {
		m.logger.Error("fit failed", err, log.OperationKey, log.OperationFit)
		return err
	}
	m.state.AddSamples(X.NRows())

	m.logger.Info("fit completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, X.NRows(),
		log.LossKey, lastLoss(history),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

func (m *Model) checkFitInput(X, y *frame.Frame) error {
	const op = "Fit"
	if X == nil || X.NCols() == 0 {
		return errors.NewShapeErrorf(op, 1, 0, 1, "training frame must have at least one column")
	}
	if X.NRows() == 0 {
		return errors.NewShapeErrorf(op, 1, 0, 0, "training frame must have at least one row")
	}
	if y == nil || y.NCols() != 1 {
		got := 0
		if y != nil {
			got = y.NCols()
		}
		return errors.NewShapeErrorf(op, 1, got, 1, "target frame must have exactly one column")
	}
	if y.NRows() != X.NRows() {
		return errors.NewShapeErrorf(op, X.NRows(), y.NRows(), 0, "target rows must match training rows")
	}

	if m.state.IsTrained() {
		if n := m.eng.nClassifiers(); n != len(m.labels) {
			return errors.NewStateError(modelName, op, fmt.Sprintf(
				"the model has %d classifier(s) but the labels require %d; reset the model to train with these labels",
				n, len(m.labels)))
		}
		if n := len(m.colHashes); n > 0 && X.NCols() != n {
			return errors.NewShapeErrorf(op, n, X.NCols(), 1, "the model was trained on a different number of columns")
		}
	}
	return nil
}

func (m *Model) recordFeatures(names []string) {
	m.featureNames = append([]string(nil), names...)
	m.colHashes = make([]uint64, len(names))
	for i, name := range names {
		m.colHashes[i] = HashColumnName(name)
	}
	_, samples := m.state.Dimensions()
	m.state.SetDimensions(len(names), samples)
}

// Predict returns one probability column per label for every row of X.
// Columns of X are matched to the training columns by position.
func (m *Model) Predict(X *frame.Frame) (_ *frame.Frame, err error) {
	defer errors.Recover(&err, "Ftrl.Predict")
	m.mu.RLock()
	defer m.mu.RUnlock()

	const op = "Predict"
	if err := m.state.RequireTrained(modelName, op); err != nil {
		return nil, err
	}
	if len(m.colHashes) == 0 {
		return nil, errors.NewStateError(modelName, op,
			"no feature columns are recorded; train the model or restore its feature importances")
	}
	if X == nil || X.NCols() != len(m.colHashes) {
		got := 0
		if X != nil {
			got = X.NCols()
		}
		return nil, errors.NewShapeErrorf(op, len(m.colHashes), got, 1, "the model was trained on a different number of columns")
	}

	start := time.Now()
	out, err := m.eng.predict(&predictJob{
		params:  m.params,
		hasher:  newHasher(m.params.NBins, m.params.Interactions, m.colHashes),
		cols:    X.Columns(),
		nrows:   X.NRows(),
		labels:  m.labels,
		threads: m.nthreads,
	})
	if err != nil {
		return nil, err
	}

	m.logger.Debug("predict completed",
		log.OperationKey, log.OperationPredict,
		log.SamplesKey, X.NRows(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return out, nil
}

// Reset drops the weights, importances and recorded columns. The
// hyperparameters and labels are kept.
func (m *Model) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
	m.logger.Debug("model reset", log.OperationKey, log.OperationReset)
}

func (m *Model) reset() {
	m.eng.reset()
	m.state.Reset()
	m.regType = RegTypeNone
	m.featureNames = nil
	m.colHashes = nil
	m.losses = nil
	m.iterations = 0
}

// IsTrained reports whether the model holds weights.
func (m *Model) IsTrained() bool {
	return m.state.IsTrained()
}

// Labels returns a copy of the class labels.
func (m *Model) Labels() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.labels...)
}

// SetLabels replaces the class labels. An empty list means a binomial
// model with the single label "target"; a single label is rejected, as
// are duplicates. A trained model can rename its labels but not change
// how many there are.
func (m *Model) SetLabels(labels []string) error {
	l, err := normalizeLabels(labels)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.IsTrained() {
		if n := m.eng.nClassifiers(); n != len(l) {
			return errors.NewStateError(modelName, "SetLabels", fmt.Sprintf(
				"the model has %d classifier(s) and cannot take %d label(s); reset this model or create a new one",
				n, len(l)))
		}
	}
	m.labels = l
	return nil
}

// RegType returns the classification mode, RegTypeNone when untrained.
func (m *Model) RegType() RegType {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.regType
}

// ColumnNameHashes returns the hashes of the training column names, or nil.
func (m *Model) ColumnNameHashes() []uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.colHashes == nil {
		return nil
	}
	return append([]uint64(nil), m.colHashes...)
}

// FeatureNames returns the training column names, or nil.
func (m *Model) FeatureNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.featureNames == nil {
		return nil
	}
	return append([]string(nil), m.featureNames...)
}

// Weights returns the z and n accumulators as columns z_<label>, n_<label>
// with nbins rows, or nil when the model is untrained.
func (m *Model) Weights() *frame.Frame {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.eng.weights(m.labels)
}

// SetWeights installs accumulators in the layout returned by Weights. A nil
// frame resets the model. The frame is validated completely before
// anything is changed; RegType is left as it is.
func (m *Model) SetWeights(f *frame.Frame) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if f == nil {
		m.reset()
		return nil
	}
	if err := validateWeights(f, m.params, len(m.labels)); err != nil {
		return err
	}
	m.eng.setWeights(f, m.params.NBins)
	if len(m.colHashes) > 0 {
		m.eng.resizeImportances(len(m.colHashes))
	}
	m.state.SetTrained()
	return nil
}

func validateWeights(f *frame.Frame, p Params, nclassifiers int) error {
	const op = "SetWeights"
	if uint64(f.NRows()) != p.NBins {
		return errors.NewShapeErrorf(op, int(p.NBins), f.NRows(), 0, "weights must have nbins rows")
	}
	if f.NCols()%2 != 0 {
		return errors.NewShapeErrorf(op, f.NCols()+1, f.NCols(), 1, "weights must have an even number of columns")
	}
	if f.NCols()/2 != nclassifiers {
		return errors.NewShapeErrorf(op, 2*nclassifiers, f.NCols(), 1,
			"weights must have one z and one n column per label")
	}

	want := floatTypeFor(p.DoublePrecision)
	for _, c := range f.Columns() {
		if c.Type() != want {
			return errors.NewTypeMismatchError(op, c.Name(), want.String(), c.Type().String())
		}
	}
	for k, c := range f.Columns() {
		for i := 0; i < c.Len(); i++ {
			v := c.Float64(i)
			if !errors.IsFinite(v) {
				return errors.NewConfigurationError(c.Name(), "weights should be finite", v)
			}
			if k%2 == 1 && v < 0 {
				return errors.NewConfigurationError(c.Name(), "n values should be non-negative", v)
			}
		}
	}
	return nil
}

// FeatureImportances returns the accumulated importance of every training
// column, divided by the largest one when normalize is set. It returns nil
// when no columns are recorded.
func (m *Model) FeatureImportances(normalize bool) *frame.Frame {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.state.IsTrained() {
		return nil
	}
	return m.eng.importances(m.featureNames, normalize)
}

func precisionName(double bool) string {
	if double {
		return "float64"
	}
	return "float32"
}
