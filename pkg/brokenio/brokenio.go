// 7 Sep 2026
// Package brokenio wraps an io.Reader so it misbehaves. It is for
// testing the readers of histogram source files and observation
// files, which should give a sensible error and not a panic or a
// half filled table.
// Typical use:
//   rdr := brokenio.NewReader(f)
//   rdr.SetCutAfter(100)
// Everything then works as before, but the file seems to end after
// 100 bytes.

package brokenio

import (
	"errors"
	"io"
	"math/rand"
)

// ErrInjected is returned by a Reader told to fail.
var ErrInjected = errors.New("brokenio: injected read failure")

// Reader is an io.ReadCloser with controlled failures. A negative
// limit means the failure is switched off.
type Reader struct {
	rdrOrig   io.Reader
	cutAfter  int64   // pretend EOF after this many bytes
	failAfter int64   // return ErrInjected after this many bytes
	probTrash float32 // chance a read has its tail zeroed
	rng       *rand.Rand
	nByte     int64
}

// NewReader wraps rIn. Until one of the Set functions is called it
// behaves exactly like rIn.
func NewReader(rIn io.Reader) *Reader {
	return &Reader{
		rdrOrig:   rIn,
		cutAfter:  -1,
		failAfter: -1,
		rng:       rand.New(rand.NewSource(1)),
	}
}

// SetCutAfter makes the stream end after n bytes.
func (r *Reader) SetCutAfter(n int64) { r.cutAfter = n }

// SetFailAfter makes reads fail once n bytes have been delivered.
func (r *Reader) SetFailAfter(n int64) { r.failAfter = n }

// SetProbTrash sets how often a read has the second half of its data
// replaced by zero bytes. Zero bytes are not valid in any of our text
// formats.
func (r *Reader) SetProbTrash(prob float32) { r.probTrash = prob }

// trashTail zeroes the second half of p
func trashTail(p []byte) {
	for i := len(p) / 2; i < len(p); i++ {
		p[i] = 0
	}
}

// Read passes through to the wrapped reader until a limit is hit.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.failAfter >= 0 && r.nByte >= r.failAfter {
		return 0, ErrInjected
	}
	if r.cutAfter >= 0 {
		left := r.cutAfter - r.nByte
		if left <= 0 {
			return 0, io.EOF
		}
		if int64(len(p)) > left {
			p = p[:left]
		}
	}
	if r.failAfter >= 0 {
		if left := r.failAfter - r.nByte; int64(len(p)) > left {
			p = p[:left]
		}
	}
	n, err := r.rdrOrig.Read(p)
	r.nByte += int64(n)
	if n > 1 && r.probTrash > 0 && r.rng.Float32() < r.probTrash {
		trashTail(p[:n])
	}
	return n, err
}

// Close closes the wrapped reader if it can be closed.
func (r *Reader) Close() error {
	if c, ok := r.rdrOrig.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
