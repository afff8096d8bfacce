package ftrl

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/hashftrl/core/frame"
	"github.com/YuminosukeSato/hashftrl/pkg/log"
)

func init() {
	log.SetLogger(nil)
}

// boolScenario is the four-row single boolean feature example.
func boolScenario() (X, y *frame.Frame) {
	X = frame.MustNew(frame.NewBoolColumn("x", []bool{true, false, true, false}))
	y = frame.MustNew(frame.NewBoolColumn("y", []bool{true, true, false, false}))
	return X, y
}

// syntheticData builds n rows with an int, a string and a float column.
// The target is true when the int category is below 5.
func syntheticData(n int, seed int64) (X, y *frame.Frame) {
	r := rand.New(rand.NewSource(seed))
	cat := make([]int64, n)
	city := make([]string, n)
	num := make([]float64, n)
	target := make([]bool, n)
	for i := 0; i < n; i++ {
		cat[i] = int64(r.Intn(10))
		city[i] = "city" + strconv.Itoa(r.Intn(5))
		num[i] = float64(r.Intn(3))
		target[i] = cat[i] < 5
	}
	X = frame.MustNew(
		frame.NewIntColumn("cat", cat),
		frame.NewStringColumn("city", city),
		frame.NewFloat64Column("num", num),
	)
	y = frame.MustNew(frame.NewBoolColumn("target", target))
	return X, y
}

// multinomialData builds n rows whose string target is determined by the
// single int feature.
func multinomialData(n int, seed int64) (X, y *frame.Frame) {
	r := rand.New(rand.NewSource(seed))
	labels := []string{"red", "green", "blue"}
	feat := make([]int64, n)
	target := make([]string, n)
	for i := 0; i < n; i++ {
		feat[i] = int64(r.Intn(3))
		target[i] = labels[feat[i]]
	}
	X = frame.MustNew(frame.NewIntColumn("f", feat))
	y = frame.MustNew(frame.NewStringColumn("color", target))
	return X, y
}

func newModel(t *testing.T, opts ...Option) *Model {
	t.Helper()
	m, err := New(opts...)
	require.NoError(t, err)
	return m
}

func trainedModel(t *testing.T, opts ...Option) (*Model, *frame.Frame) {
	t.Helper()
	m := newModel(t, opts...)
	X, y := syntheticData(200, 1)
	require.NoError(t, m.Fit(X, y))
	return m, X
}

// probabilities returns column k of a prediction frame as float64.
func probabilities(f *frame.Frame, k int) []float64 {
	c := f.Col(k)
	out := make([]float64, c.Len())
	for i := range out {
		out[i] = c.Float64(i)
	}
	return out
}

func requireProbabilities(t *testing.T, f *frame.Frame) {
	t.Helper()
	for k := 0; k < f.NCols(); k++ {
		for i, p := range probabilities(f, k) {
			require.GreaterOrEqualf(t, p, 0.0, "column %d row %d", k, i)
			require.LessOrEqualf(t, p, 1.0, "column %d row %d", k, i)
		}
	}
}
