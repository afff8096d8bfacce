package compress

import (
	"github.com/klauspost/compress/s2"

	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

// S2Compressor trades ratio for speed.
type S2Compressor struct{}

var _ Codec = S2Compressor{}

// Compress compresses data with S2.
func (S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	return s2.Encode(nil, data), nil
}

// Decompress decompresses S2 data.
func (S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, errors.Wrap(err, "s2 decompression failed")
	}
	return out, nil
}
