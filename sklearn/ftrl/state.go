package ftrl

import (
	"io"

	"github.com/YuminosukeSato/hashftrl/core/frame"
	"github.com/YuminosukeSato/hashftrl/core/model"
	"github.com/YuminosukeSato/hashftrl/pkg/compress"
	"github.com/YuminosukeSato/hashftrl/pkg/errors"
	"github.com/YuminosukeSato/hashftrl/pkg/log"
)

// State is everything needed to rebuild a Model. Weights and Importances
// are nil for an untrained model.
type State struct {
	Params      [nParams]float64
	Labels      []string
	Weights     *frame.Frame
	Importances *frame.Frame
	RegType     RegType
}

// ExportState snapshots the model. The frames are copies.
func (m *Model) ExportState() *State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := &State{
		Params:  m.params.Tuple(),
		Labels:  append([]string(nil), m.labels...),
		RegType: m.regType,
	}
	if m.state.IsTrained() {
		s.Weights = m.eng.weights(m.labels)
		s.Importances = m.eng.importances(m.featureNames, false)
	}
	return s
}

// RestoreState replaces the model with s. The state is validated completely
// before the model is changed.
func (m *Model) RestoreState(s *State) (err error) {
	defer errors.Recover(&err, "Ftrl.RestoreState")
	const op = "RestoreState"
	if s == nil {
		return errors.NewConfigurationError("state", "cannot be nil", nil)
	}

	p, err := ParamsFromTuple(s.Params[:])
	if err != nil {
		return err
	}
	labels, err := restoredLabels(s.Labels)
	if err != nil {
		return err
	}
	if !s.RegType.valid() {
		return errors.NewConfigurationError("reg_type", "unknown value", int32(s.RegType))
	}

	eng := newEngine(p.DoublePrecision)
	var names []string
	if s.Weights != nil {
		if err := validateWeights(s.Weights, p, len(labels)); err != nil {
			return err
		}
		eng.setWeights(s.Weights, p.NBins)
		if s.Importances != nil {
			if err := validateImportances(s.Importances, floatTypeFor(p.DoublePrecision)); err != nil {
				return err
			}
			col := s.Importances.Col(0)
			names = make([]string, col.Len())
			for i := range names {
				names[i] = col.Text(i)
			}
			eng.setImportances(s.Importances.Col(1))
		}
	} else if s.Importances != nil {
		return errors.NewStateError(modelName, op, "feature importances cannot be restored without weights")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
	m.params = p
	m.labels = labels
	m.eng = eng
	if s.Weights != nil {
		m.state.SetTrained()
	}
	if names != nil {
		m.recordFeatures(names)
	}
	m.regType = s.RegType

	m.logger.Debug("state restored",
		log.OperationKey, log.OperationRestore,
		log.FeaturesKey, len(names),
		log.ClassifiersKey, len(labels),
	)
	return nil
}

// restoredLabels accepts the single-label form of a binomial model in
// addition to what SetLabels accepts.
func restoredLabels(labels []string) ([]string, error) {
	if len(labels) == 1 {
		if labels[0] == "" {
			return nil, errors.NewConfigurationError("labels", "label cannot be empty", labels)
		}
		return append([]string(nil), labels...), nil
	}
	return normalizeLabels(labels)
}

func floatTypeFor(double bool) frame.Type {
	if double {
		return frame.Float64
	}
	return frame.Float32
}

// Save writes the model state to w, compressed with codec.
func (m *Model) Save(w io.Writer, codec compress.ID) error {
	return model.SaveModelToWriter(m.ExportState(), w, codec)
}

// Load replaces the model with the state read from r.
func (m *Model) Load(r io.Reader) error {
	var s State
	if err := model.LoadModelFromReader(&s, r); err != nil {
		return err
	}
	return m.RestoreState(&s)
}

// SaveFile writes the model state to filename.
func (m *Model) SaveFile(filename string, codec compress.ID) error {
	return model.SaveModel(m.ExportState(), filename, codec)
}

// LoadFile replaces the model with the state stored in filename.
func (m *Model) LoadFile(filename string) error {
	var s State
	if err := model.LoadModel(&s, filename); err != nil {
		return err
	}
	return m.RestoreState(&s)
}

// Open creates a Model from a file written by SaveFile. Parameter options
// are ignored since the stored hyperparameters win.
func Open(filename string, opts ...Option) (*Model, error) {
	m, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := m.LoadFile(filename); err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	return m, nil
}
