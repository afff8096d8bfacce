package ftrl

import (
	"context"

	"github.com/YuminosukeSato/hashftrl/core/frame"
	"github.com/YuminosukeSato/hashftrl/core/model"
	"github.com/YuminosukeSato/hashftrl/pkg/errors"
	"github.com/YuminosukeSato/hashftrl/pkg/log"
	"github.com/YuminosukeSato/hashftrl/sklearn/drift"
)

var _ model.StreamingEstimator = (*Model)(nil)

// DriftDetector receives one prediction outcome per row.
type DriftDetector interface {
	Update(correct bool) drift.Result
}

var _ DriftDetector = (*drift.DDM)(nil)

// FitStream calls Fit on every batch in arrival order. It returns when the
// channel is closed, the context is canceled, or a batch fails. With a
// drift detector configured, each batch is first scored by the current
// model (progressive validation).
func (m *Model) FitStream(ctx context.Context, batches <-chan *model.Batch) error {
	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case b, ok := <-batches:
			if !ok {
				return nil
			}
			if b == nil {
				continue
			}
			if m.drift != nil {
				m.monitorDrift(i, b)
			}
			if err := m.Fit(b.X, b.Y); err != nil {
				return errors.Wrapf(err, "batch %d", i)
			}
		}
	}
}

// monitorDrift scores b before it is trained on. A row counts as correct
// when the predicted class, the argmax with probability >= 0.5 or no class
// at all, equals the target. Batches the model cannot score yet are
// skipped; Fit reports their errors.
func (m *Model) monitorDrift(batch int, b *model.Batch) {
	if !m.IsTrained() || b.Y == nil || b.Y.NCols() != 1 {
		return
	}
	pred, err := m.Predict(b.X)
	if err != nil {
		return
	}
	targets, err := encodeTargets(b.Y.Col(0), m.RegType(), m.Labels())
	if err != nil {
		return
	}

	var last drift.Result
	warned := false
	for i, target := range targets {
		last = m.drift.Update(predictedClass(pred, i) == target)
		warned = warned || last.WarningDetected
		if last.DriftDetected {
			m.logger.Warn("concept drift detected",
				log.OperationKey, log.OperationFit,
				"batch", batch,
				"row", i,
				"error_rate", last.ErrorRate,
			)
			warned = false
		}
	}
	if warned {
		m.logger.Debug("drift warning level reached", "batch", batch, "error_rate", last.ErrorRate)
	}
}

func predictedClass(pred *frame.Frame, row int) int32 {
	best, top := noClass, 0.5
	for k := 0; k < pred.NCols(); k++ {
		if p := pred.Col(k).Float64(row); p >= top {
			best, top = int32(k), p
		}
	}
	return best
}

// PredictStream predicts every input frame. The returned channel is closed
// once inputs is closed or ctx is canceled.
func (m *Model) PredictStream(ctx context.Context, inputs <-chan *frame.Frame) <-chan model.StreamResult {
	out := make(chan model.StreamResult)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case X, ok := <-inputs:
				if !ok {
					return
				}
				pred, err := m.Predict(X)
				select {
				case out <- model.StreamResult{Predictions: pred, Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
