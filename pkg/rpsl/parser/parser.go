package parser

import (
	"bufio"
	"io"

	"mercator-hq/callisto/pkg/rpsl"
	"mercator-hq/callisto/pkg/rpsl/rpslerr"
)

const (
	// defaultMaxLineBytes bounds a single input line. Registry remarks
	// lines run long, but anything past 1MB is a corrupt dump.
	defaultMaxLineBytes = 1 << 20

	initialLineBuffer = 64 * 1024
)

// Reader is a pull-based RPSL object reader over a byte stream.
//
// It is single-pass and forward-only: each line is visited exactly once and
// no state survives an object boundary, so memory stays bounded by the
// largest single object. A Reader is not safe for concurrent use; run one
// Reader per input partition instead.
type Reader struct {
	scanner *bufio.Scanner
	b       builder

	lenient      bool
	maxLineBytes int

	line    int // 1-based line number of the last line read
	objects int // completed object count
	started bool

	skipped *rpslerr.ErrorList
	err     error // sticky fatal error
	done    bool
}

// NewReader creates a Reader over r with default configuration:
// strict malformed-line policy, 1MB line limit.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		scanner:      bufio.NewScanner(r),
		maxLineBytes: defaultMaxLineBytes,
		skipped:      rpslerr.NewErrorList(),
	}
}

// WithLenient sets the malformed-line policy. In lenient mode malformed
// lines are skipped and recorded (see Skipped) instead of failing the read.
// The default is strict: silently dropping data from an authoritative
// registry is unsafe for downstream consumers.
func (r *Reader) WithLenient(lenient bool) *Reader {
	r.lenient = lenient
	return r
}

// WithMaxLineBytes sets the maximum length of a single input line.
// Must be called before the first Next.
func (r *Reader) WithMaxLineBytes(n int) *Reader {
	if n > 0 {
		r.maxLineBytes = n
	}
	return r
}

// Next returns the next complete object. It returns io.EOF at end of input.
//
// In strict mode a malformed line returns a *rpslerr.Error (syntax) and the
// Reader is dead afterwards. Source I/O failures return a *rpslerr.Error
// (io) and are always fatal.
func (r *Reader) Next() (*rpsl.Object, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.done {
		return nil, io.EOF
	}
	if !r.started {
		r.started = true
		buf := initialLineBuffer
		if buf > r.maxLineBytes {
			buf = r.maxLineBytes
		}
		r.scanner.Buffer(make([]byte, buf), r.maxLineBytes)
	}

	for r.scanner.Scan() {
		r.line++
		ln := classify(r.scanner.Text(), r.b.attrOpen())

		switch ln.Class {
		case LineComment:
			// Comments never open or close anything.

		case LineBlank:
			if obj := r.b.flush(); obj != nil {
				r.objects++
				return obj, nil
			}

		case LineContinuation:
			r.b.continuation(ln.Text)

		case LineAttribute:
			r.b.attribute(ln.Name, ln.Value)

		case LineEndOfSource:
			// APNIC dumps end with a literal EOF line; anything after it
			// is ignored.
			r.done = true
			if obj := r.b.flush(); obj != nil {
				r.objects++
				return obj, nil
			}
			return nil, io.EOF

		case LineMalformed:
			perr := rpslerr.NewSyntaxError(ln.Text,
				rpslerr.Position{Line: r.line, Object: r.objects + 1},
				r.scanner.Text())
			perr.ObjectID = r.b.class()
			if !r.lenient {
				r.err = perr
				return nil, perr
			}
			r.skipped.Add(perr)
		}
	}

	if err := r.scanner.Err(); err != nil {
		r.err = rpslerr.NewIOError(err, rpslerr.Position{Line: r.line, Object: r.objects + 1})
		return nil, r.err
	}

	// End of input without a trailing blank line: finalize as if one had
	// been seen.
	r.done = true
	if obj := r.b.flush(); obj != nil {
		r.objects++
		return obj, nil
	}
	return nil, io.EOF
}

// ReadAll drains the reader and returns all objects.
func (r *Reader) ReadAll() ([]*rpsl.Object, error) {
	var objects []*rpsl.Object
	for {
		obj, err := r.Next()
		if err == io.EOF {
			return objects, nil
		}
		if err != nil {
			return objects, err
		}
		objects = append(objects, obj)
	}
}

// Line returns the number of the last input line read.
func (r *Reader) Line() int {
	return r.line
}

// Objects returns the number of completed objects so far.
func (r *Reader) Objects() int {
	return r.objects
}

// Skipped returns the malformed lines skipped in lenient mode.
func (r *Reader) Skipped() *rpslerr.ErrorList {
	return r.skipped
}
