// 5 Sep 2026

package histogram

import (
	"math"
)

// wrap puts an angle into [-180, 180).
func wrap(a float64) float64 {
	a = math.Mod(a+180, 360)
	if a < 0 {
		a += 360
	}
	return a - 180
}

// bracket finds the bin at or below angle a and the weight to give
// the bin above it. n is the number of bins.
func bracket(a float64, n int) (floorIx, ceilIx int, factor float64) {
	a = wrap(a)
	floorIx = int(math.Floor(float64(n) * (a + 180) / 360))
	if floorIx >= n { // rounding just below +180
		floorIx = n - 1
	}
	ceilIx = floorIx + 1
	if ceilIx%n == floorIx {
		return floorIx, ceilIx, 1
	}
	floorAngle := float64(floorIx)*360/float64(n) - 180
	ceilAngle := float64(ceilIx)*360/float64(n) - 180
	factor = (a - floorAngle) / (ceilAngle - floorAngle)
	return floorIx, ceilIx, factor
}

// InterpolatedCount gives the count at (a1, a2) by bilinear
// interpolation between the four surrounding bins, or linear
// interpolation for one dimensional histograms where a2 is ignored.
// At the low edge of a bin the result is that bin's count.
func (h *Histogram) InterpolatedCount(a1, a2 float64) float64 {
	cnt := func(i, j int) float64 { return float64(h.Count(i, j)) }
	f1, c1, fac1 := bracket(a1, h.dim)
	if !h.d2 {
		return cnt(f1, 0) + (cnt(c1, 0)-cnt(f1, 0))*fac1
	}
	f2, c2, fac2 := bracket(a2, h.dim)
	lo := cnt(f1, f2) + (cnt(c1, f2)-cnt(f1, f2))*fac1
	hi := cnt(f1, c2) + (cnt(c1, c2)-cnt(f1, c2))*fac1
	return lo + (hi-lo)*fac2
}

// ZScore is the interpolated count in units of the histogram's
// standard deviation from its mean. SD is never zero in tables that
// were built or loaded by this module.
func (h *Histogram) ZScore(a1, a2 float64) float64 {
	return (h.InterpolatedCount(a1, a2) - float64(h.Mean)) / float64(h.SD)
}
