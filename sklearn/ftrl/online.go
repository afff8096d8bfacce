package ftrl

import (
	"math"

	"github.com/YuminosukeSato/hashftrl/core/frame"
	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

const (
	// maxLossHistory bounds the retained per-epoch losses of long streams.
	maxLossHistory = 1024
	// convergenceTol is the largest change between the last two epoch
	// losses for which the model counts as converged.
	convergenceTol = 1e-4
)

// PartialFit trains a single pass over the batch, regardless of NEpochs.
// It is otherwise identical to Fit.
func (m *Model) PartialFit(X, y *frame.Frame) (err error) {
	defer errors.Recover(&err, "Ftrl.PartialFit")
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fit(X, y, 1)
}

// NIterations returns the number of epochs trained since the last reset.
func (m *Model) NIterations() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.iterations
}

// GetLoss returns the progressive log-loss of the last epoch, or 0 when no
// epoch has run.
func (m *Model) GetLoss() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return lastLoss(m.losses)
}

// GetLossHistory returns a copy of the most recent per-epoch losses.
func (m *Model) GetLossHistory() []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]float64(nil), m.losses...)
}

// GetConverged reports whether the last two epoch losses differ by less
// than convergenceTol.
func (m *Model) GetConverged() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := len(m.losses)
	if n < 2 {
		return false
	}
	return math.Abs(m.losses[n-1]-m.losses[n-2]) < convergenceTol
}

func (m *Model) recordLosses(history []float64) {
	m.iterations += len(history)
	m.losses = append(m.losses, history...)
	if over := len(m.losses) - maxLossHistory; over > 0 {
		m.losses = append(m.losses[:0], m.losses[over:]...)
	}
}

func lastLoss(history []float64) float64 {
	if len(history) == 0 {
		return 0
	}
	return history[len(history)-1]
}
