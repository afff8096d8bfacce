package ftrl

import (
	"github.com/YuminosukeSato/hashftrl/core/frame"
	"github.com/YuminosukeSato/hashftrl/core/parallel"
)

type predictJob struct {
	params  Params
	hasher  *hasher
	cols    []frame.Column
	nrows   int
	labels  []string
	threads int
}

// predict computes one probability column per classifier. Weights are only
// read, so no bin lock is taken.
func (e *ftrl[T]) predict(job *predictJob) (*frame.Frame, error) {
	h := hyperFrom[T](job.params)
	ncls := len(e.store.cls)
	out := make([][]T, ncls)
	for k := range out {
		out[k] = make([]T, job.nrows)
	}

	workers := trainWorkers(job.threads, job.nrows)
	err := parallel.ParallelizeWithThreshold(job.nrows, minRowsPerWorker, workers, func(_, start, end int) error {
		raw := make([]uint64, len(job.cols))
		bins := make([]uint64, job.hasher.nFeatures())
		for i := start; i < end; i++ {
			job.hasher.hashRow(job.cols, i, raw, bins)
			for k := range e.store.cls {
				c := &e.store.cls[k]
				var sum T
				for _, b := range bins {
					sum += h.weight(c.z[b], c.n[b])
				}
				out[k][i] = sigmoid(sum)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cols := make([]frame.Column, ncls)
	for k := range out {
		cols[k] = floatColumn(job.labels[k], out[k])
	}
	return frame.New(cols...)
}
