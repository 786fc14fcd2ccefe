// 2 Sep 2026
// Compression of arrays of small integers with a four bit selector in
// front of every group of one, two or four values. The selector says
// how the bit width changes and how many values follow. This is a
// cut down version of the array compression in MRS and the stream it
// produces is byte for byte the same, so the tables stay compatible.

package bitstream

import (
	"math/bits"
)

type selector struct {
	databits int32 // change to the current width
	span     int   // number of values sharing the width
}

// selectors[0] is special. It resets the width to maxWidth.
var selectors = [16]selector{
	{0, 1},
	{-4, 1},
	{-2, 1}, {-2, 2},
	{-1, 1}, {-1, 2}, {-1, 4},
	{0, 1}, {0, 2}, {0, 4},
	{1, 1}, {1, 2}, {1, 4},
	{2, 1}, {2, 2},
	{4, 1},
}

const (
	startWidth = 8
	MaxWidth   = 24 // values must fit in this many bits
)

func bitWidth(v uint32) int32 { return int32(bits.Len32(v)) }

// Compress writes values to w. Values wider than MaxWidth bits are
// silently mangled, so do not send them.
// We look at up to four values and take the selector which packs the
// most values for the least wasted bits. It is greedy and not
// optimal, but changing it would change the file format.
func Compress(w *Writer, values []uint32) {
	width := int32(startWidth)
	var bn [4]int32  // bit widths of pending values
	var dv [4]uint32 // pending values
	bc := 0          // number pending
	a := 0

	for a < len(values) || bc > 0 {
		for bc < 4 && a < len(values) {
			dv[bc] = values[a]
			bn[bc] = bitWidth(values[a])
			a++
			bc++
		}

		s := 0
		c := bn[0] - MaxWidth
		for i := 1; i < len(selectors); i++ {
			sel := selectors[i]
			if sel.span > bc {
				continue
			}
			wd := width + sel.databits
			if wd < 0 || wd > MaxWidth {
				continue
			}
			fits := true
			var waste int32
			for j := 0; j < sel.span; j++ {
				fits = fits && bn[j] <= wd
				waste += wd - bn[j]
			}
			if !fits {
				continue
			}
			if n := int32(sel.span-1)*4 - waste; n > c {
				s = i
				c = n
			}
		}

		if s == 0 {
			width = MaxWidth
		} else {
			width += selectors[s].databits
		}
		n := selectors[s].span
		w.Write(uint32(s), 4)
		if width > 0 {
			for i := 0; i < n; i++ {
				w.Write(dv[i], int(width))
			}
		}

		bc -= n
		if bc > 0 {
			for i := 0; i < 4-n; i++ {
				bn[i] = bn[i+n]
				dv[i] = dv[i+n]
			}
		}
	}
}

// Decompress fills out from r. The stream does not say how long it
// is, so out must already have the right length.
func Decompress(r *Reader, out []uint32) error {
	width := int32(startWidth)
	span := 0
	for i := range out {
		if span == 0 {
			s, err := r.Read(4)
			if err != nil {
				return err
			}
			span = selectors[s].span
			if s == 0 {
				width = MaxWidth
			} else {
				width += selectors[s].databits
			}
			if width < 0 || width > MaxWidth {
				return ErrCorrupt
			}
		}
		if width > 0 {
			v, err := r.Read(int(width))
			if err != nil {
				return err
			}
			out[i] = v
		} else {
			out[i] = 0
		}
		span--
	}
	return nil
}

// Encode is Compress plus Sync on a private buffer.
func Encode(values []uint32) []byte {
	w := NewWriter(nil)
	Compress(w, values)
	w.Sync()
	return w.Bytes()
}

// Decode unpacks n values from the start of data.
func Decode(data []byte, n int) ([]uint32, error) {
	out := make([]uint32, n)
	if err := Decompress(NewReader(data), out); err != nil {
		return nil, err
	}
	return out, nil
}
