package compress

// NoopCompressor stores payloads as-is.
type NoopCompressor struct{}

var _ Codec = NoopCompressor{}

func (NoopCompressor) Compress(data []byte) ([]byte, error)   { return data, nil }
func (NoopCompressor) Decompress(data []byte) ([]byte, error) { return data, nil }
