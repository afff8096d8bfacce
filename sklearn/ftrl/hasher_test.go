package ftrl

import (
	"math"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/hashftrl/core/frame"
)

func TestHashColumnName(t *testing.T) {
	assert.Equal(t, xxhash.Sum64String("age"), HashColumnName("age"))
	assert.NotEqual(t, HashColumnName("age"), HashColumnName("Age"))
	// xxhash64 of the empty input with seed 0
	assert.Equal(t, uint64(0xef46db3751d8e999), xxhash.Sum64(nil))
}

func TestHashFeature_Layout(t *testing.T) {
	var buf [17]byte
	buf[0] = 0x00
	buf[1] = 0x01 // colHash = 1, little endian
	buf[9] = 0x02 // value = 2
	assert.Equal(t, xxhash.Sum64(buf[:]), HashFeature(1, 2))

	buf[0] = 0x01
	assert.Equal(t, xxhash.Sum64(buf[:]), HashInteraction(1, 2))
	assert.NotEqual(t, HashFeature(1, 2), HashInteraction(1, 2))
}

func TestHashValue(t *testing.T) {
	b := frame.NewBoolColumn("b", []bool{false, true})
	assert.Equal(t, uint64(0), HashValue(b, 0))
	assert.Equal(t, uint64(1), HashValue(b, 1))

	i := frame.NewIntColumn("i", []int64{-1, 42})
	assert.Equal(t, uint64(math.MaxUint64), HashValue(i, 0))
	assert.Equal(t, uint64(42), HashValue(i, 1))

	f32 := frame.NewFloat32Column("f", []float32{0.5})
	f64 := frame.NewFloat64Column("f", []float64{0.5})
	assert.Equal(t, math.Float64bits(0.5), HashValue(f32, 0))
	assert.Equal(t, HashValue(f64, 0), HashValue(f32, 0))

	s := frame.NewStringColumn("s", []string{"paris"})
	assert.Equal(t, xxhash.Sum64String("paris"), HashValue(s, 0))
}

func TestHasher_Deterministic(t *testing.T) {
	X, _ := syntheticData(50, 3)
	cols := X.Columns()
	hashes := []uint64{HashColumnName("cat"), HashColumnName("city"), HashColumnName("num")}

	for _, interactions := range []bool{false, true} {
		h1 := newHasher(97, interactions, hashes)
		h2 := newHasher(97, interactions, append([]uint64(nil), hashes...))

		raw := make([]uint64, len(cols))
		a := make([]uint64, h1.nFeatures())
		b := make([]uint64, h2.nFeatures())
		for i := 0; i < X.NRows(); i++ {
			h1.hashRow(cols, i, raw, a)
			h2.hashRow(cols, i, raw, b)
			require.Equal(t, a, b)
			for _, bin := range a {
				require.Less(t, bin, uint64(97))
			}
		}
	}
}

func TestHasher_FeatureCount(t *testing.T) {
	hashes := make([]uint64, 5)
	assert.Equal(t, 5, newHasher(10, false, hashes).nFeatures())
	h := newHasher(10, true, hashes)
	assert.Equal(t, 5+10, h.nFeatures())
	assert.Equal(t, [2]int{0, 1}, h.pairs[0])
	assert.Equal(t, [2]int{0, 4}, h.pairs[3])
	assert.Equal(t, [2]int{3, 4}, h.pairs[len(h.pairs)-1])
}

func TestHasher_InteractionBinsDiffer(t *testing.T) {
	X := frame.MustNew(
		frame.NewIntColumn("a", []int64{1}),
		frame.NewIntColumn("b", []int64{2}),
	)
	hashes := []uint64{HashColumnName("a"), HashColumnName("b")}
	h := newHasher(math.MaxUint64, true, hashes)

	raw := make([]uint64, 2)
	bins := make([]uint64, h.nFeatures())
	h.hashRow(X.Columns(), 0, raw, bins)
	require.Len(t, bins, 3)
	assert.NotEqual(t, bins[0], bins[2])
	assert.NotEqual(t, bins[1], bins[2])
	assert.Equal(t, HashInteraction(raw[0], raw[1])%math.MaxUint64, bins[2])
}

func TestHasher_ColumnIdentityMatters(t *testing.T) {
	// same value in differently named columns lands in different bins
	assert.NotEqual(t,
		HashFeature(HashColumnName("a"), 7),
		HashFeature(HashColumnName("b"), 7),
	)
}
