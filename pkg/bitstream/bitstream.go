// 2 Sep 2026

// Package bitstream packs unsigned integers into a stream of bits.
// Bits go into each byte from the most significant end. A Writer
// appends to a byte slice which may be shared by many compressed
// arrays, so the caller can remember where each one starts.
package bitstream

import (
	"errors"
)

// ErrShortData is returned when a Reader runs off the end of its data.
var ErrShortData = errors.New("bitstream: read past end of data")

// ErrCorrupt means the selectors in a stream gave a bit width that
// cannot have come from Compress.
var ErrCorrupt = errors.New("bitstream: corrupt selector stream")

// Writer is a cursor into a growing byte buffer. bitOffset is the
// next bit to be set in the last byte, counting down from 7.
type Writer struct {
	buf       []byte
	bitOffset int
}

// NewWriter appends a fresh byte to buf and starts writing there.
// Pass nil for a private buffer.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: append(buf, 0), bitOffset: 7}
}

// advance moves to the next bit, opening a new byte when the last
// one is full.
func (w *Writer) advance() {
	if w.bitOffset--; w.bitOffset < 0 {
		w.buf = append(w.buf, 0)
		w.bitOffset = 7
	}
}

// WriteBit writes a single bit.
func (w *Writer) WriteBit(bit bool) {
	if bit {
		w.buf[len(w.buf)-1] |= 1 << uint(w.bitOffset)
	}
	w.advance()
}

// Write writes the low nbits of value, most significant first.
func (w *Writer) Write(value uint32, nbits int) {
	for nbits > 0 {
		nbits--
		if value&(1<<uint(nbits)) != 0 {
			w.buf[len(w.buf)-1] |= 1 << uint(w.bitOffset)
		}
		w.advance()
	}
}

// Sync writes a zero bit, then ones up to the byte boundary. The
// stream is left with an empty byte open at the end.
func (w *Writer) Sync() {
	w.WriteBit(false)
	for w.bitOffset != 7 {
		w.WriteBit(true)
	}
}

// Bytes returns the whole buffer, including anything that was in it
// before NewWriter was called.
func (w *Writer) Bytes() []byte { return w.buf }

// Len is the length of the buffer in bytes.
func (w *Writer) Len() int { return len(w.buf) }

// Reader is a bounds checked cursor over a byte slice.
type Reader struct {
	data      []byte
	pos       int  // next byte to load
	cur       byte // byte being consumed
	bitOffset int  // bit of cur to be read next. -1 means load a byte.
}

// NewReader starts reading at the first byte of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data, bitOffset: -1}
}

var lowMask = [9]uint8{0x00, 0x01, 0x03, 0x07, 0x0F, 0x1F, 0x3F, 0x7F, 0xFF}

// Read returns the next nbits as an unsigned value. nbits may not be
// more than 32.
func (r *Reader) Read(nbits int) (uint32, error) {
	var result uint32
	for nbits > 0 {
		if r.bitOffset < 0 {
			if r.pos >= len(r.data) {
				return 0, ErrShortData
			}
			r.cur = r.data[r.pos]
			r.pos++
			r.bitOffset = 7
		}
		bw := r.bitOffset + 1
		if bw > nbits {
			bw = nbits
		}
		r.bitOffset -= bw
		result = result<<uint(bw) | uint32(lowMask[bw]&(r.cur>>uint(r.bitOffset+1)))
		nbits -= bw
	}
	return result, nil
}
