package ftrl

import (
	"github.com/YuminosukeSato/hashftrl/core/frame"
	"github.com/YuminosukeSato/hashftrl/core/parallel"
	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

// minRowsPerWorker keeps small frames on a single worker.
const minRowsPerWorker = 256

// EpochInfo is passed to the epoch callback after every epoch.
type EpochInfo struct {
	Epoch   int // 1-based
	NEpochs int
	Rows    int
	// LogLoss is the mean progressive log-loss of the epoch, computed from
	// the predictions made before each update.
	LogLoss float64
}

// EpochCallback is called after each training epoch. A non-nil error stops
// training; updates already applied are kept.
type EpochCallback func(EpochInfo) error

type trainJob struct {
	params   Params
	hasher   *hasher
	cols     []frame.Column
	nrows    int
	targets  []int32 // classifier index per row, or noClass
	threads  int
	callback EpochCallback
}

func trainWorkers(threads, nrows int) int {
	return parallel.Workers(threads, (nrows+minRowsPerWorker-1)/minRowsPerWorker)
}

// train runs job.params.NEpochs passes and returns the progressive log-loss
// of every completed epoch. An epoch whose loss is not finite stops
// training with a NumericalInstabilityError.
func (e *ftrl[T]) train(job *trainJob) ([]float64, error) {
	h := hyperFrom[T](job.params)
	ncols := len(job.cols)
	workers := trainWorkers(job.threads, job.nrows)
	evals := float64(job.nrows * len(e.store.cls))

	history := make([]float64, 0, job.params.NEpochs)
	for epoch := 1; epoch <= job.params.NEpochs; epoch++ {
		fis := make([][]T, workers)
		losses := make([]float64, workers)

		err := parallel.ParallelizeN(job.nrows, workers, func(w, start, end int) error {
			fi := make([]T, ncols)
			losses[w] = e.trainRange(h, job, start, end, fi)
			fis[w] = fi
			return nil
		})
		if err != nil {
			return history, errors.Wrapf(err, "training epoch %d", epoch)
		}

		// マージ
		var total float64
		for w := range fis {
			total += losses[w]
			for c, v := range fis[w] {
				e.fi[c] += v
			}
		}
		loss := total / evals
		if err := errors.CheckScalar("progressive_logloss", loss, epoch); err != nil {
			return history, err
		}
		history = append(history, loss)

		if job.callback != nil {
			info := EpochInfo{Epoch: epoch, NEpochs: job.params.NEpochs, Rows: job.nrows, LogLoss: loss}
			if err := job.callback(info); err != nil {
				return history, errors.Wrapf(err, "training stopped by epoch callback at epoch %d", epoch)
			}
		}
	}
	return history, nil
}

// trainRange updates the weights with rows [start, end) and accumulates
// feature importances into fi. It returns the summed log-loss.
func (e *ftrl[T]) trainRange(h hyper[T], job *trainJob, start, end int, fi []T) float64 {
	hs := job.hasher
	ncols := len(job.cols)
	raw := make([]uint64, ncols)
	bins := make([]uint64, hs.nFeatures())
	w := make([]T, len(bins))

	var loss float64
	for i := start; i < end; i++ {
		hs.hashRow(job.cols, i, raw, bins)

		for k := range e.store.cls {
			c := &e.store.cls[k]

			var sum T
			for f, b := range bins {
				mu := e.store.lock(b)
				mu.Lock()
				w[f] = h.weight(c.z[b], c.n[b])
				mu.Unlock()
				sum += w[f]
			}
			p := sigmoid(sum)

			positive := job.targets[i] == int32(k)
			var y T
			if positive {
				y = 1
			}
			g := p - y
			g2 := g * g

			for f, b := range bins {
				mu := e.store.lock(b)
				mu.Lock()
				n := c.n[b]
				sigma := (sqrt(n+g2) - sqrt(n)) / h.alpha
				c.z[b] += g - sigma*w[f]
				c.n[b] = n + g2
				mu.Unlock()
			}

			ag := abs(g)
			for f := 0; f < ncols; f++ {
				fi[f] += ag * abs(w[f])
			}
			for q, pair := range hs.pairs {
				v := ag * abs(w[ncols+q])
				fi[pair[0]] += v
				fi[pair[1]] += v
			}

			loss += logLoss(float64(p), positive)
		}
	}
	return loss
}
