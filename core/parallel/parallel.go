package parallel

import (
	"runtime"
	"sync"

	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

// Workers resolves a requested worker count: values <= 0 mean "one per
// CPU", and there is never more than one worker per item.
func Workers(requested, items int) int {
	n := requested
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > items {
		n = items
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ParallelizeN splits [0, items) into contiguous ranges, one per worker,
// and runs fn(worker, start, end) concurrently. It blocks until every
// worker returns. Panics inside fn are recovered and returned as errors;
// the first non-nil error (by worker index) is returned.
func ParallelizeN(items, workers int, fn func(worker, start, end int) error) error {
	if items == 0 {
		return nil
	}

	numWorkers := Workers(workers, items)
	if numWorkers == 1 {
		return errors.SafeExecute("parallel worker", func() error {
			return fn(0, 0, items)
		})
	}

	// ceiling division
	chunkSize := (items + numWorkers - 1) / numWorkers

	errs := make([]error, numWorkers)
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(w, s, e int) {
			defer wg.Done()
			errs[w] = errors.SafeExecute("parallel worker", func() error {
				return fn(w, s, e)
			})
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ParallelizeWithThreshold performs parallelization only when the number of items exceeds the threshold
// If below threshold, normal sequential processing is performed
func ParallelizeWithThreshold(items, threshold, workers int, fn func(worker, start, end int) error) error {
	if items <= threshold {
		return errors.SafeExecute("sequential worker", func() error {
			return fn(0, 0, items)
		})
	}
	return ParallelizeN(items, workers, fn)
}
