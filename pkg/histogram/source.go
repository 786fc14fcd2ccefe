// 6 Sep 2026
// Reading and writing the text files the tables are built from.
// They look like
//   14400 bins, aver 19.2878, sd 15.4453, binspacing 3
//   torsion vs random: 2.0553 2.8287
//   -180 -180 12
//   -180 -177 9
//   ...
// One dimensional histograms have one angle per line.

package histogram

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const numRx = `([-+]?\d+(?:\.\d+)?(?:[eE][-+]?\d+)?)`

var (
	rxHeader = regexp.MustCompile(`^(\d+) bins, aver ` + numRx + `, sd ` + numRx + `, binspacing ` + numRx + `$`)
	rxRandom = regexp.MustCompile(`^(torsion|rama) vs random: ` + numRx + ` ` + numRx + `$`)
)

const maxMsgLen = 70

// FormatError says what was wrong with a source or table file and,
// for text files, which line it was on.
type FormatError struct {
	File string // may be empty
	Line int    // 0 if not known
	Text string // the offending line
	Desc string
}

func firstPart(s string) string {
	if len(s) > maxMsgLen {
		return s[:maxMsgLen]
	}
	return s
}

func (e *FormatError) Error() string {
	var errmsg string
	if e.File != "" {
		errmsg = e.File + ": "
	}
	if e.Line != 0 {
		errmsg += "Line: " + strconv.Itoa(e.Line) + " "
	}
	errmsg += e.Desc
	if e.Line != 0 && e.Text != "" {
		errmsg += "\nLine starting with\n" + firstPart(e.Text)
	}
	return errmsg
}

// lineRdr counts lines so errors can say where they happened.
type lineRdr struct {
	scn  *bufio.Scanner
	n    int
	line string
}

func (l *lineRdr) next() bool {
	if !l.scn.Scan() {
		return false
	}
	l.n++
	l.line = strings.TrimRight(l.scn.Text(), "\r")
	return true
}

func (l *lineRdr) fail(desc string) error {
	return &FormatError{Line: l.n, Text: l.line, Desc: desc}
}

func (l *lineRdr) err(desc string) error {
	if err := l.scn.Err(); err != nil {
		return fmt.Errorf("reading line %d: %w", l.n+1, err)
	}
	return &FormatError{Line: l.n, Desc: desc}
}

func parseF32(s string) float32 {
	f, _ := strconv.ParseFloat(s, 32) // the regexp has checked it
	return float32(f)
}

// ReadSource reads one histogram from its text form. aa and ss come
// from the file name, not the contents.
func ReadSource(r io.Reader, kind Kind, aa string, ss SecStr) (*Histogram, error) {
	lr := lineRdr{scn: bufio.NewScanner(r)}
	if !lr.next() {
		return nil, lr.err("empty file")
	}
	m := rxHeader.FindStringSubmatch(lr.line)
	if m == nil {
		return nil, lr.fail("Invalid file, expected \"N bins, aver X, sd Y, binspacing Z\"")
	}
	nBins, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, lr.fail("bin count " + err.Error())
	}
	st := Stats{Mean: parseF32(m[2]), SD: parseF32(m[3]), BinSpacing: parseF32(m[4])}
	if _, err := BinsPerAxis(st.BinSpacing); err != nil {
		return nil, lr.fail(err.Error())
	}
	if !(st.SD > 0) || math.IsInf(float64(st.SD), 0) {
		return nil, lr.fail("sd must be positive")
	}
	if want := NBins(kind, aa, st.BinSpacing); nBins != want {
		return nil, lr.fail(fmt.Sprintf("Unexpected number of bins, got %d, expected %d", nBins, want))
	}

	if !lr.next() {
		return nil, lr.err("truncated file? no vs random line")
	}
	if m = rxRandom.FindStringSubmatch(lr.line); m == nil || m[1] != kind.String() {
		return nil, lr.fail("Invalid file, expected \"" + kind.String() + " vs random: X Y\"")
	}
	st.MeanVsRandom = parseF32(m[2])
	st.SDVsRandom = parseF32(m[3])

	h, err := New(kind, aa, ss, st, make([]uint32, nBins))
	if err != nil {
		return nil, lr.fail(err.Error())
	}
	nfield := 2
	if h.d2 {
		nfield = 3
	}
	for i := 0; i < nBins; {
		if !lr.next() {
			return nil, lr.err(fmt.Sprintf("truncated file? got %d of %d bins", i, nBins))
		}
		f := strings.Fields(lr.line)
		if len(f) == 0 {
			continue
		}
		if len(f) != nfield {
			return nil, lr.fail(fmt.Sprintf("expected %d fields, got %d", nfield, len(f)))
		}
		var a [2]float64
		for j := 0; j < nfield-1; j++ {
			if a[j], err = strconv.ParseFloat(f[j], 64); err != nil {
				return nil, lr.fail("bad angle " + f[j])
			}
		}
		c, err := strconv.ParseUint(f[nfield-1], 10, 32)
		if err != nil {
			return nil, lr.fail("bad count " + f[nfield-1])
		}
		ix, ok := h.index(a[0], a[1])
		if !ok {
			return nil, lr.fail("angle out of range")
		}
		h.counts[ix] = uint32(c)
		i++
	}
	return h, nil
}

func ftoa(f float32) string { return strconv.FormatFloat(float64(f), 'g', -1, 32) }

// WriteSource writes h in the form ReadSource reads.
func (h *Histogram) WriteSource(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d bins, aver %s, sd %s, binspacing %s\n",
		len(h.counts), ftoa(h.Mean), ftoa(h.SD), ftoa(h.BinSpacing))
	fmt.Fprintf(bw, "%s vs random: %s %s\n", h.kind, ftoa(h.MeanVsRandom), ftoa(h.SDVsRandom))
	for i, c := range h.counts {
		a1, a2 := h.Angles(i)
		a1s := strconv.FormatFloat(a1, 'f', -1, 64)
		if h.d2 {
			fmt.Fprintf(bw, "%s %s %d\n", a1s, strconv.FormatFloat(a2, 'f', -1, 64), c)
		} else {
			fmt.Fprintf(bw, "%s %d\n", a1s, c)
		}
	}
	return bw.Flush()
}
