package stream

import (
	"bytes"
	"io"
	"sync/atomic"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression is a compression layer recognized by its magic number.
type Compression uint

const (
	None Compression = iota
	Gzip
	Zstd
	Xz
)

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicXz   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// MaxMagic is the length of the longest magic number.
const maxMagic = 6

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case Xz:
		return "xz"
	default:
		return "unknown"
	}
}

func detectCompression(b []byte) Compression {
	switch {
	case bytes.HasPrefix(b, magicGzip):
		return Gzip
	case bytes.HasPrefix(b, magicZstd):
		return Zstd
	case bytes.HasPrefix(b, magicXz):
		return Xz
	}
	return None
}

// Reader returns a reader for the decompressed contents of r and, if the
// decompressor holds resources, a Closer for them.
func (c Compression) reader(r io.Reader) (io.Reader, io.Closer, error) {
	switch c {
	case Gzip:
		z, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return z, z, nil
	case Zstd:
		z, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		rc := z.IOReadCloser()
		return rc, rc, nil
	case Xz:
		z, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return z, nil, nil
	default:
		return r, nil, nil
	}
}

// Replay records what a decompressor consumes while reading its own header,
// so the input can be read again from the start if the header is bad.
type replay struct {
	r   io.Reader
	buf []byte
	off atomic.Bool
}

func (r *replay) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if !r.off.Load() {
		r.buf = append(r.buf, p[:n]...)
	}
	return n, err
}

// Rewind returns a reader yielding the input from the start.
func (r *replay) rewind() io.Reader {
	return io.MultiReader(bytes.NewReader(r.buf), r.r)
}
