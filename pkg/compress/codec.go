// Package compress provides the byte codecs used to persist models.
package compress

import (
	"fmt"

	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

// Codec compresses and decompresses whole payloads.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// ID identifies a codec in a persisted header byte.
type ID uint8

const (
	None ID = iota
	Zstd
	S2
	LZ4
)

func (id ID) String() string {
	switch id {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case S2:
		return "s2"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("codec(%d)", uint8(id))
	}
}

// ForID returns the codec for id.
func ForID(id ID) (Codec, error) {
	switch id {
	case None:
		return NoopCompressor{}, nil
	case Zstd:
		return ZstdCompressor{}, nil
	case S2:
		return S2Compressor{}, nil
	case LZ4:
		return LZ4Compressor{}, nil
	default:
		return nil, errors.Wrapf(errors.ErrUnknownCodec, "id %d", uint8(id))
	}
}

// ParseID maps a codec name ("none", "zstd", "s2", "lz4") to its ID.
func ParseID(name string) (ID, error) {
	for _, id := range []ID{None, Zstd, S2, LZ4} {
		if id.String() == name {
			return id, nil
		}
	}
	return 0, errors.Wrapf(errors.ErrUnknownCodec, "name %q", name)
}
