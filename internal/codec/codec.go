// Package codec picks the compression of a workload file from its name.
package codec

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Codec compresses and decompresses a stream.
type Codec interface {
	// Reader wraps r to decompress data read from it.
	Reader(r io.Reader) (io.ReadCloser, error)
	// Writer wraps w to compress data written to it. Closing the writer
	// flushes it but leaves w open.
	Writer(w io.Writer) (io.WriteCloser, error)
	// Extension returns the file extension without dot, or "" for none.
	Extension() string
}

var (
	// Zstd compresses with zstd.
	Zstd Codec = zstdCodec{}
	// Gzip compresses with gzip.
	Gzip Codec = gzipCodec{}
	// None passes data through.
	None Codec = noneCodec{}
)

// ForPath returns the codec matching the extension of path, or None.
func ForPath(path string) Codec {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	for _, c := range []Codec{Zstd, Gzip} {
		if strings.EqualFold(ext, c.Extension()) {
			return c
		}
	}
	return None
}

type zstdCodec struct{}

func (zstdCodec) Reader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}

func (zstdCodec) Writer(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
}

func (zstdCodec) Extension() string { return "zst" }

type gzipCodec struct{}

func (gzipCodec) Reader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func (gzipCodec) Writer(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriter(w), nil
}

func (gzipCodec) Extension() string { return "gz" }

type noneCodec struct{}

func (noneCodec) Reader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

func (noneCodec) Writer(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

func (noneCodec) Extension() string { return "" }

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
