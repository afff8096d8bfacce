package compress

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

// LZ4Compressor uses the LZ4 frame format, which records the content size
// so decompression needs no buffer guessing.
type LZ4Compressor struct{}

var _ Codec = LZ4Compressor{}

// Compress compresses data into an LZ4 frame.
func (LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, errors.Wrap(err, "lz4 compression failed")
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "lz4 compression failed")
	}
	return buf.Bytes(), nil
}

// Decompress decompresses an LZ4 frame.
func (LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, errors.Wrap(err, "lz4 decompression failed")
	}
	return out, nil
}
