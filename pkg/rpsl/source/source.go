// Package source acquires RPSL input streams.
//
// Registry dumps ship either plain or gzip-compressed (RIPE and APNIC
// publish .gz). Open and NewReader detect gzip framing by magic bytes and
// decompress transparently, so the parser only ever sees plain text.
package source

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// gzipMagic is the two-byte gzip member header.
var gzipMagic = []byte{0x1f, 0x8b}

// Open opens a dump file for reading, decompressing gzip transparently.
// Detection is by content, not file extension, so misnamed files still work.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source %q: %w", path, err)
	}

	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read source %q: %w", path, err)
	}

	return &readCloser{Reader: r, closers: closersFor(r, f)}, nil
}

// NewReader wraps r, decompressing transparently when the stream starts
// with the gzip magic bytes. An empty stream passes through unchanged.
func NewReader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(len(gzipMagic))
	if err == io.EOF {
		// Shorter than the magic: nothing compressed, pass through.
		return br, nil
	}
	if err != nil {
		return nil, err
	}

	if head[0] != gzipMagic[0] || head[1] != gzipMagic[1] {
		return br, nil
	}

	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("invalid gzip stream: %w", err)
	}
	return zr, nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc *readCloser) Close() error {
	var first error
	for _, c := range rc.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// closersFor orders cleanup: the gzip reader (if any) before the file.
func closersFor(r io.Reader, f *os.File) []io.Closer {
	if zr, ok := r.(*gzip.Reader); ok {
		return []io.Closer{zr, f}
	}
	return []io.Closer{f}
}
