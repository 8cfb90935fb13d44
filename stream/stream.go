// Package stream implements the bounded-prefix view of an input that drivers
// identify against.
//
// A [Stream] reads [HeaderSize] bytes when it's created. Drivers that need
// more evidence call [Stream.Ingest] to grow the prefix; nothing beyond the
// prefix is ever read through a Stream. Compressed inputs (gzip, zstd, xz) are
// detected by their magic numbers and decompressed transparently, so the
// prefix is always the prefix of the decompressed document.
package stream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// HeaderSize is the number of bytes read when a Stream is created.
const HeaderSize = 1024

// ErrClosed is reported when a closed Stream is used.
var ErrClosed = errors.New("stream: closed")

// Handle is the contract drivers rely on during identification.
//
// Slices returned by Header are only valid until the next call to Ingest.
type Handle interface {
	// Name is the name the input was opened by.
	Name() string
	// Header returns the prefix read so far.
	Header() []byte
	// Ingest attempts to grow the prefix to n bytes. It reports false if the
	// stream is closed or reading failed; a short prefix because the input
	// ended is not a failure.
	Ingest(n int) bool
	// Compression reports the compression layer the prefix was read through.
	Compression() Compression
	Close() error
}

var _ Handle = (*Stream)(nil)

// Stream is a [Handle] over an [io.Reader].
type Stream struct {
	name    string
	comp    Compression
	r       io.Reader
	closers []io.Closer
	buf     []byte
	eof     bool
	err     error
	closed  bool
}

// Open opens the named file and reads its header.
func Open(ctx context.Context, name string) (*Stream, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("stream: %w", err)
	}
	s, err := newStream(ctx, name, f, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

// New returns a Stream reading from r and reads its header.
//
// If r implements [io.Closer], it's closed when the Stream is closed.
func New(ctx context.Context, name string, r io.Reader) (*Stream, error) {
	c, _ := r.(io.Closer)
	return newStream(ctx, name, r, c)
}

func newStream(ctx context.Context, name string, r io.Reader, c io.Closer) (*Stream, error) {
	s := &Stream{name: name}
	if c != nil {
		s.closers = append(s.closers, c)
	}
	br := bufio.NewReader(r)
	peek, err := br.Peek(maxMagic)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("stream: %s: %w", name, err)
	}
	s.comp = detectCompression(peek)
	rp := &replay{r: br}
	dr, dc, err := s.comp.reader(rp)
	switch {
	case err == nil:
		rp.off.Store(true)
		if dc != nil {
			s.closers = append(s.closers, dc)
		}
		s.r = dr
	case s.comp != None:
		// A magic number alone doesn't make a compressed file.
		slog.DebugContext(ctx, "not a compressed input, reading as is",
			"file", name,
			"compression", s.comp.String(),
			"reason", err)
		s.comp = None
		s.r = rp.rewind()
	default:
		return nil, fmt.Errorf("stream: %s: %w", name, err)
	}
	if s.comp != None {
		slog.DebugContext(ctx, "decompressing input",
			"file", name,
			"compression", s.comp.String())
	}
	if !s.fill(HeaderSize) {
		err := s.err
		s.Close()
		return nil, fmt.Errorf("stream: %s: reading header: %w", name, err)
	}
	return s, nil
}

// Name implements [Handle].
func (s *Stream) Name() string { return s.name }

// Compression implements [Handle].
func (s *Stream) Compression() Compression { return s.comp }

// Header implements [Handle].
func (s *Stream) Header() []byte { return s.buf }

// Ingest implements [Handle].
//
// Growing the prefix allocates a new buffer; slices obtained from Header
// before the call keep pointing at the old one.
func (s *Stream) Ingest(n int) bool {
	if s.closed {
		return false
	}
	return s.fill(n)
}

// Err reports the read error that made Ingest fail, if any.
func (s *Stream) Err() error {
	if s.closed && s.err == nil {
		return ErrClosed
	}
	return s.err
}

func (s *Stream) fill(n int) bool {
	switch {
	case s.err != nil:
		return false
	case len(s.buf) >= n, s.eof:
		return true
	}
	b := make([]byte, n)
	copy(b, s.buf)
	ct, err := io.ReadFull(s.r, b[len(s.buf):])
	s.buf = b[:len(s.buf)+ct]
	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		s.eof = true
	default:
		s.err = err
		return false
	}
	return true
}

// Close implements [Handle].
//
// Closing an already closed Stream is a no-op.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	s.r = nil
	return errors.Join(errs...)
}
