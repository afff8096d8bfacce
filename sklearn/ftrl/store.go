package ftrl

import (
	"math"
	"sync"

	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

// Float is the weight precision of an engine.
type Float interface {
	float32 | float64
}

// maxStripes caps the number of bin locks.
const maxStripes = 1 << 16

// classifier holds the FTRL accumulators of one one-vs-rest classifier.
type classifier[T Float] struct {
	z []T
	n []T // n[i] >= 0
}

// store is the weight arena: nbins accumulators per classifier, guarded by
// striped per-bin locks shared by all classifiers. A caller holds at most
// one stripe at a time.
type store[T Float] struct {
	nbins   uint64
	cls     []classifier[T]
	stripes []sync.Mutex
	mask    uint64
}

func newStore[T Float](nbins uint64, nclassifiers int) *store[T] {
	s := &store[T]{nbins: nbins, cls: make([]classifier[T], nclassifiers)}
	for k := range s.cls {
		s.cls[k] = classifier[T]{z: make([]T, nbins), n: make([]T, nbins)}
	}
	s.initStripes()
	return s
}

// storeFrom wraps existing accumulator slices. Each slice must have nbins
// elements.
func storeFrom[T Float](nbins uint64, zs, ns [][]T) *store[T] {
	s := &store[T]{nbins: nbins, cls: make([]classifier[T], len(zs))}
	for k := range zs {
		s.cls[k] = classifier[T]{z: zs[k], n: ns[k]}
	}
	s.initStripes()
	return s
}

func (s *store[T]) initStripes() {
	n := uint64(1)
	for n*2 <= s.nbins && n*2 <= maxStripes {
		n *= 2
	}
	s.stripes = make([]sync.Mutex, n)
	s.mask = n - 1
}

func (s *store[T]) lock(bin uint64) *sync.Mutex {
	return &s.stripes[bin&s.mask]
}

// hyper is the engine-precision copy of the learning-rate and
// regularization parameters.
type hyper[T Float] struct {
	alpha, beta, lambda1, lambda2 T
}

func hyperFrom[T Float](p Params) hyper[T] {
	return hyper[T]{
		alpha:   T(p.Alpha),
		beta:    T(p.Beta),
		lambda1: T(p.Lambda1),
		lambda2: T(p.Lambda2),
	}
}

// weight materializes the FTRL-Proximal weight from its accumulators. With
// beta and lambda2 both zero a bin that has z but no n has no finite
// weight and counts as zero.
func (h hyper[T]) weight(z, n T) T {
	az := z
	if az < 0 {
		az = -az
	}
	if az <= h.lambda1 {
		return 0
	}
	sign := T(1)
	if z < 0 {
		sign = -1
	}
	d := (h.beta+sqrt(n))/h.alpha + h.lambda2
	if d == 0 {
		return 0
	}
	return -(z - sign*h.lambda1) / d
}

func sqrt[T Float](x T) T {
	return T(math.Sqrt(float64(x)))
}

func abs[T Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func sigmoid[T Float](x T) T {
	return T(1 / (1 + math.Exp(-float64(x))))
}

// logLossEps clips probabilities away from 0 and 1 in the progressive loss.
const logLossEps = 1e-15

func logLoss(p float64, positive bool) float64 {
	if !positive {
		p = 1 - p
	}
	return -errors.StabilizeLog(p, logLossEps)
}
