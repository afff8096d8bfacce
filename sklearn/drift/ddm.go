// Package drift detects concept drift in the error stream of an online
// classifier.
package drift

import (
	"math"
	"sync"
)

// DDM (Drift Detection Method) tracks the error rate of a classifier and
// signals when it rises significantly above the best rate seen so far.
// J. Gama, P. Medas, G. Castillo, P. Rodrigues (2004) "Learning with Drift
// Detection".
type DDM struct {
	minNumInstances int
	warningLevel    float64
	outControlLevel float64

	numInstances int
	numErrors    int

	// 学習開始からの最小値
	minErrorRate float64
	minStdDev    float64

	mu sync.Mutex
}

// Result is the detector state after one observation.
type Result struct {
	WarningDetected bool
	DriftDetected   bool
	ErrorRate       float64
}

// Option configures a DDM.
type Option func(*DDM)

// WithMinNumInstances sets how many observations are needed before any
// signal is raised.
func WithMinNumInstances(n int) Option {
	return func(d *DDM) {
		d.minNumInstances = n
	}
}

// WithWarningLevel sets the warning threshold in standard deviations.
func WithWarningLevel(level float64) Option {
	return func(d *DDM) {
		d.warningLevel = level
	}
}

// WithOutControlLevel sets the drift threshold in standard deviations.
func WithOutControlLevel(level float64) Option {
	return func(d *DDM) {
		d.outControlLevel = level
	}
}

// NewDDM creates a detector with the usual 30 instance warm-up and
// 2σ / 3σ thresholds.
func NewDDM(opts ...Option) *DDM {
	d := &DDM{
		minNumInstances: 30,
		warningLevel:    2.0,
		outControlLevel: 3.0,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.reset()
	return d
}

// Update records one prediction outcome. After a drift signal the
// statistics start over.
func (d *DDM) Update(correct bool) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.numInstances++
	if !correct {
		d.numErrors++
	}
	if d.numInstances < d.minNumInstances {
		return Result{}
	}

	p := float64(d.numErrors) / float64(d.numInstances)
	s := math.Sqrt(p * (1 - p) / float64(d.numInstances))
	res := Result{ErrorRate: p}

	// 基準値の更新
	if p+s < d.minErrorRate+d.minStdDev {
		d.minErrorRate = p
		d.minStdDev = s
	}

	if p+s > d.minErrorRate+d.outControlLevel*d.minStdDev {
		res.DriftDetected = true
		res.WarningDetected = true
		d.reset()
		return res
	}
	res.WarningDetected = p+s > d.minErrorRate+d.warningLevel*d.minStdDev
	return res
}

// Reset clears all statistics.
func (d *DDM) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

func (d *DDM) reset() {
	d.numInstances = 0
	d.numErrors = 0
	d.minErrorRate = math.Inf(1)
	d.minStdDev = math.Inf(1)
}

// Statistics is a snapshot of the detector counters.
type Statistics struct {
	NumInstances int
	NumErrors    int
	MinErrorRate float64
}

// Statistics returns the current counters.
func (d *DDM) Statistics() Statistics {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Statistics{
		NumInstances: d.numInstances,
		NumErrors:    d.numErrors,
		MinErrorRate: d.minErrorRate,
	}
}
