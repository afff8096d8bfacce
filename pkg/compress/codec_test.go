package compress

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

// sparseWeights mimics a serialized weight array: mostly zero bins.
func sparseWeights(n int) []byte {
	buf := make([]byte, 0, n*8)
	for i := 0; i < n; i++ {
		v := 0.0
		if i%97 == 0 {
			v = math.Sin(float64(i))
		}
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	return buf
}

func TestCodecs_RoundTrip(t *testing.T) {
	payload := sparseWeights(4096)

	for _, id := range []ID{None, Zstd, S2, LZ4} {
		t.Run(id.String(), func(t *testing.T) {
			codec, err := ForID(id)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)
			if id != None {
				assert.Less(t, len(compressed), len(payload))
			}

			out, err := codec.Decompress(compressed)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(payload, out))
		})
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, codec := range []Codec{ZstdCompressor{}, S2Compressor{}, LZ4Compressor{}} {
		out, err := codec.Decompress(nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	}
}

func TestCodecs_CorruptInput(t *testing.T) {
	garbage := []byte("definitely not compressed")
	for _, codec := range []Codec{ZstdCompressor{}, S2Compressor{}, LZ4Compressor{}} {
		_, err := codec.Decompress(garbage)
		assert.Error(t, err, "%T", codec)
	}
}

func TestParseID(t *testing.T) {
	for _, id := range []ID{None, Zstd, S2, LZ4} {
		got, err := ParseID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}

	_, err := ParseID("brotli")
	assert.True(t, errors.Is(err, errors.ErrUnknownCodec))

	_, err = ForID(ID(42))
	assert.True(t, errors.Is(err, errors.ErrUnknownCodec))
}
