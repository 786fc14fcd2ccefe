// 5 Sep 2026

// Package histogram holds the angular count histograms that Z-scores
// are calculated against. There are two kinds. Ramachandran
// histograms are over (phi, psi). Torsion histograms are over
// (chi1, chi2), or just chi1 for residues with a single rotatable
// side chain bond. Angles run from -180 to 180 and the histograms
// wrap around at the edges.
package histogram

import (
	"fmt"
	"math"

	"github.com/andrew-torda/matrix"
)

// SecStr is the structural class a histogram was collected for. The
// values are the tags written in the binary tables.
type SecStr byte

const (
	Helix  SecStr = 'H'
	Strand SecStr = 'E'
	Other  SecStr = '.'
	Cis    SecStr = 'c' // cis proline
	PrePro SecStr = 'p' // residue before a proline
)

// String gives the names used in reports
func (ss SecStr) String() string {
	switch ss {
	case Helix:
		return "helix"
	case Strand:
		return "strand"
	case Other:
		return "other"
	case Cis:
		return "cis"
	case PrePro:
		return "prepro"
	}
	return fmt.Sprintf("unknown(%q)", byte(ss))
}

// Valid says if ss is one of the five classes.
func (ss SecStr) Valid() bool {
	switch ss {
	case Helix, Strand, Other, Cis, PrePro:
		return true
	}
	return false
}

// Kind says what a histogram counts.
type Kind int

const (
	Rama Kind = iota
	Torsion
)

// String is the word used in source file names and their second line
func (k Kind) String() string {
	if k == Torsion {
		return "torsion"
	}
	return "rama"
}

// Stats are the numbers stored with each histogram. Mean and SD are
// for the interpolated count and turn it into a Z-score.
type Stats struct {
	Mean         float32
	SD           float32
	MeanVsRandom float32
	SDVsRandom   float32
	BinSpacing   float32 // degrees
}

// Histogram is one table of counts. It is not changed after it is
// made, so it can be shared between goroutines.
type Histogram struct {
	Stats
	aa     string // three letters, or *** / IV_ for groups
	ss     SecStr
	kind   Kind
	counts []uint32 // row major, first angle is the row
	dim    int      // bins along each axis
	d2     bool
}

// oneDim are the residues whose torsion histograms only have chi1.
var oneDim = map[string]bool{"CYS": true, "SER": true, "THR": true, "VAL": true}

// Is2DFor says if a histogram of this kind for aa has two angles.
func Is2DFor(kind Kind, aa string) bool {
	return kind != Torsion || !oneDim[aa]
}

// MaxDim is the most bins allowed along one axis (0.1 degree bins).
const MaxDim = 3600

// BinsPerAxis checks binSpacing and says how many bins it gives along
// one axis. The spacing has to divide 360 into at most MaxDim bins.
func BinsPerAxis(binSpacing float32) (int, error) {
	d := 360 / float64(binSpacing)
	if !(binSpacing > 0) || !(d >= 1 && d <= MaxDim) {
		return 0, fmt.Errorf("bin spacing %v out of range", binSpacing)
	}
	n := math.Round(d)
	if math.Abs(d-n) > 1e-3 {
		return 0, fmt.Errorf("bin spacing %v does not divide 360", binSpacing)
	}
	return int(n), nil
}

// NBins says how many counts a histogram should have. It is zero if
// the spacing is no good.
func NBins(kind Kind, aa string, binSpacing float32) int {
	dim, err := BinsPerAxis(binSpacing)
	if err != nil {
		return 0
	}
	if Is2DFor(kind, aa) {
		return dim * dim
	}
	return dim
}

// New makes a histogram and takes ownership of counts.
func New(kind Kind, aa string, ss SecStr, st Stats, counts []uint32) (*Histogram, error) {
	if len(aa) != 3 {
		return nil, fmt.Errorf("residue name %q is not three characters", aa)
	}
	if !ss.Valid() {
		return nil, fmt.Errorf("bad structural class %q for %s", byte(ss), aa)
	}
	dim, err := BinsPerAxis(st.BinSpacing)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", aa, ss, err)
	}
	if n := NBins(kind, aa, st.BinSpacing); n != len(counts) {
		return nil, fmt.Errorf("%s %s %s has %d counts, expected %d", kind, aa, ss, len(counts), n)
	}
	h := &Histogram{
		Stats:  st,
		aa:     aa,
		ss:     ss,
		kind:   kind,
		counts: counts,
		dim:    dim,
		d2:     Is2DFor(kind, aa),
	}
	return h, nil
}

func (h *Histogram) AA() string     { return h.aa }
func (h *Histogram) SS() SecStr     { return h.ss }
func (h *Histogram) Kind() Kind     { return h.kind }
func (h *Histogram) Dim() int       { return h.dim }
func (h *Histogram) Is2D() bool     { return h.d2 }
func (h *Histogram) NCounts() int   { return len(h.counts) }
func (h *Histogram) String() string { return fmt.Sprintf("%s %s %s", h.kind, h.aa, h.ss) }

// Counts returns a copy of the counts.
func (h *Histogram) Counts() []uint32 {
	r := make([]uint32, len(h.counts))
	copy(r, h.counts)
	return r
}

// Count returns the count at bin (i, j). Indices wrap around. For one
// dimensional histograms j is ignored.
func (h *Histogram) Count(i, j int) uint32 {
	i %= h.dim
	if !h.d2 {
		return h.counts[i]
	}
	j %= h.dim
	return h.counts[i*h.dim+j]
}

// Angles gives the angles at the low edge of bin index. For one
// dimensional histograms a2 is -180.
func (h *Histogram) Angles(index int) (a1, a2 float64) {
	sp := float64(h.BinSpacing)
	if !h.d2 {
		return float64(index)*sp - 180, -180
	}
	x, y := index/h.dim, index%h.dim
	return float64(x)*sp - 180, float64(y)*sp - 180
}

// index is the inverse of Angles, for reading source files.
// ok is false if the angles are outside [-180, 180).
func (h *Histogram) index(a1, a2 float64) (ix int, ok bool) {
	sp := float64(h.BinSpacing)
	y := int(math.Floor((a1 + 180) / sp))
	x := 0
	if h.d2 {
		x = y
		y = int(math.Floor((a2 + 180) / sp))
	}
	if x < 0 || x >= h.dim || y < 0 || y >= h.dim {
		return 0, false
	}
	return x*h.dim + y, true
}

// Grid returns the counts as a matrix, dim by dim, or one row for
// one dimensional histograms.
func (h *Histogram) Grid() *matrix.FMatrix2d {
	nrow := 1
	if h.d2 {
		nrow = h.dim
	}
	g := matrix.NewFMatrix2d(nrow, h.dim)
	for i, c := range h.counts {
		g.Mat[i/h.dim][i%h.dim] = float32(c)
	}
	return g
}
