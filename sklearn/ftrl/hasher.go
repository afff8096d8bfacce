package ftrl

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/YuminosukeSato/hashftrl/core/frame"
)

// Domain tags keep single-column and interaction hashes apart.
const (
	tagSingle      byte = 0x00
	tagInteraction byte = 0x01
)

// HashColumnName returns the hash recorded for a training column.
func HashColumnName(name string) uint64 {
	return xxhash.Sum64String(name)
}

// HashValue returns the 64-bit identity of row i of c that is mixed with the
// column hash.
func HashValue(c frame.Column, i int) uint64 {
	if bits, ok := c.Bits(i); ok {
		return bits
	}
	return xxhash.Sum64String(c.Text(i))
}

// HashFeature returns the unreduced hash of a single column value.
func HashFeature(colHash, value uint64) uint64 {
	var buf [17]byte
	buf[0] = tagSingle
	binary.LittleEndian.PutUint64(buf[1:9], colHash)
	binary.LittleEndian.PutUint64(buf[9:], value)
	return xxhash.Sum64(buf[:])
}

// HashInteraction returns the unreduced hash of the pair of single-feature
// hashes hi, hj (i < j).
func HashInteraction(hi, hj uint64) uint64 {
	var buf [17]byte
	buf[0] = tagInteraction
	binary.LittleEndian.PutUint64(buf[1:9], hi)
	binary.LittleEndian.PutUint64(buf[9:], hj)
	return xxhash.Sum64(buf[:])
}

// hasher maps rows to bins. It is immutable and shared by all workers.
type hasher struct {
	nbins     uint64
	colHashes []uint64
	pairs     [][2]int // nil unless interactions are on
}

func newHasher(nbins uint64, interactions bool, colHashes []uint64) *hasher {
	h := &hasher{nbins: nbins, colHashes: colHashes}
	if interactions {
		n := len(colHashes)
		h.pairs = make([][2]int, 0, n*(n-1)/2)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				h.pairs = append(h.pairs, [2]int{i, j})
			}
		}
	}
	return h
}

// nFeatures is the number of bins produced per row.
func (h *hasher) nFeatures() int {
	return len(h.colHashes) + len(h.pairs)
}

// hashRow writes the bins of row i into bins (len nFeatures). raw is scratch
// space of len(cols) for the unreduced single-feature hashes. Columns are
// associated with recorded hashes by position.
func (h *hasher) hashRow(cols []frame.Column, i int, raw, bins []uint64) {
	for c, col := range cols {
		raw[c] = HashFeature(h.colHashes[c], HashValue(col, i))
		bins[c] = raw[c] % h.nbins
	}
	off := len(cols)
	for p, pair := range h.pairs {
		bins[off+p] = HashInteraction(raw[pair[0]], raw[pair[1]]) % h.nbins
	}
}
