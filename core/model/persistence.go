package model

import (
	"bufio"
	"bytes"
	"encoding/gob"
	"io"
	"os"

	"github.com/YuminosukeSato/hashftrl/pkg/compress"
	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

// magic prefixes every persisted model so foreign files fail fast.
var magic = [4]byte{'H', 'F', 'T', 'L'}

const formatVersion uint8 = 1

// SaveModelToWriter gob-encodes v, compresses it with the given codec and
// writes it to w behind a small header (magic, format version, codec id).
//
//	var buf bytes.Buffer
//	err := model.SaveModelToWriter(state, &buf, compress.Zstd)
func SaveModelToWriter(v interface{}, w io.Writer, codecID compress.ID) error {
	codec, err := compress.ForID(codecID)
	if err != nil {
		return err
	}

	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(v); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	payload, err := codec.Compress(raw.Bytes())
	if err != nil {
		return errors.Wrapf(err, "failed to compress model with %s", codecID)
	}

	header := append(magic[:], formatVersion, uint8(codecID))
	if _, err := w.Write(header); err != nil {
		return errors.Wrap(err, "failed to write model header")
	}
	if _, err := w.Write(payload); err != nil {
		return errors.Wrap(err, "failed to write model payload")
	}
	return nil
}

// LoadModelFromReader reads a model written by SaveModelToWriter into v,
// which must be a pointer.
func LoadModelFromReader(v interface{}, r io.Reader) error {
	var header [6]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return errors.Wrap(err, "failed to read model header")
	}
	if !bytes.Equal(header[:4], magic[:]) {
		return errors.New("not a hashftrl model file")
	}
	if header[4] != formatVersion {
		return errors.Newf("unsupported model format version %d", header[4])
	}
	codec, err := compress.ForID(compress.ID(header[5]))
	if err != nil {
		return err
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "failed to read model payload")
	}
	raw, err := codec.Decompress(payload)
	if err != nil {
		return err
	}
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(v); err != nil {
		return errors.Wrap(err, "failed to decode model")
	}
	return nil
}

// SaveModel writes v to filename (see SaveModelToWriter).
func SaveModel(v interface{}, filename string, codecID compress.ID) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	bw := bufio.NewWriter(file)
	if err := SaveModelToWriter(v, bw, codecID); err != nil {
		file.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		file.Close()
		return errors.Wrap(err, "failed to flush model file")
	}
	return file.Close()
}

// LoadModel reads v from filename (see LoadModelFromReader).
func LoadModel(v interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "failed to open file")
	}
	defer file.Close()
	return LoadModelFromReader(v, bufio.NewReader(file))
}
