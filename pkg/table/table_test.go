// 12 Sep 2026

package table_test

import (
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrew-torda/tortoize/pkg/histogram"
	"github.com/andrew-torda/tortoize/pkg/table"
	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
)

var cmpHist = cmp.AllowUnexported(histogram.Histogram{})

// mkHist makes a histogram with spacing 90 and counts that depend on
// seed, so two histograms are not the same.
func mkHist(t *testing.T, kind histogram.Kind, aa string, ss histogram.SecStr, seed uint32) *histogram.Histogram {
	t.Helper()
	st := histogram.Stats{Mean: 1.0 / 3, SD: 0.1 + float32(seed), MeanVsRandom: -2.7182817,
		SDVsRandom: 1e-7, BinSpacing: 90}
	counts := make([]uint32, histogram.NBins(kind, aa, st.BinSpacing))
	for i := range counts {
		counts[i] = (uint32(i)*seed*2654435761 + seed) % 5000
	}
	counts[0] = 1<<24 - 1
	h, err := histogram.New(kind, aa, ss, st, counts)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func mkRama(t *testing.T) *table.File {
	return &table.File{Kind: histogram.Rama, Mean: -0.75, SD: 1.0 / 7,
		Hists: []*histogram.Histogram{
			mkHist(t, histogram.Rama, "ALA", histogram.Helix, 1),
			mkHist(t, histogram.Rama, "PRO", histogram.Cis, 2),
			mkHist(t, histogram.Rama, "***", histogram.PrePro, 3),
			mkHist(t, histogram.Rama, "IV_", histogram.PrePro, 4),
		}}
}

func TestRoundTrip(t *testing.T) {
	tors := &table.File{Kind: histogram.Torsion, Mean: 0.25, SD: 3,
		Hists: []*histogram.Histogram{
			mkHist(t, histogram.Torsion, "SER", histogram.Other, 5),
			mkHist(t, histogram.Torsion, "TRP", histogram.Strand, 6),
		}}
	for _, f := range []*table.File{mkRama(t), tors} {
		buf := f.Encode()
		if len(buf) < 8+(len(f.Hists)+1)*table.RecordSize {
			t.Fatal("encoded table too short", len(buf))
		}
		g, err := table.Decode(buf, f.Kind, "test")
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(f, g, cmpHist); diff != "" {
			t.Errorf("%s table changed (-want +got):\n%s", f.Kind, diff)
		}
		if !table.Equal(f, g) {
			t.Errorf("%s table not equal after decoding", f.Kind)
		}
	}
	if table.Equal(mkRama(t), tors) {
		t.Error("different tables compare equal")
	}
	if g, err := table.Decode((&table.File{SD: 1}).Encode(), histogram.Rama, ""); err != nil {
		t.Error("empty table", err)
	} else if len(g.Hists) != 0 {
		t.Error("empty table has histograms")
	}
}

func TestBadDecode(t *testing.T) {
	good := mkRama(t).Encode()
	nHdr := 8 + 5*table.RecordSize
	badOffset := append([]byte(nil), good...)
	badOffset[8+24], badOffset[8+25] = 0xff, 0xff
	noSD := append([]byte(nil), good...)
	copy(noSD[4:8], []byte{0, 0, 0, 0})
	spacing := func(sp float32) []byte {
		b := append([]byte(nil), good...)
		binary.LittleEndian.PutUint32(b[8+20:], math.Float32bits(sp))
		return b
	}
	cases := []struct {
		name string
		buf  []byte
	}{
		{"short", good[:20]},
		{"no sentinel", good[:8+2*table.RecordSize]},
		{"offset", badOffset},
		{"truncated", good[:nHdr+1]},
		{"zero sd", noSD},
		{"tiny spacing", spacing(1e-6)},
		{"no spacing", spacing(1e-40)},
		{"uneven spacing", spacing(7)},
		{"wide spacing", spacing(720)},
	}
	for _, c := range cases {
		_, err := table.Decode(c.buf, histogram.Rama, c.name)
		var fe *table.FormatError
		if !errors.As(err, &fe) {
			t.Errorf("%s: want FormatError, got %v", c.name, err)
		} else if fe.File != c.name {
			t.Errorf("%s: error has file %q", c.name, fe.File)
		}
	}
}

func writeFile(t *testing.T, path, s string, zip bool) {
	t.Helper()
	if !zip {
		if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
			t.Fatal(err)
		}
		return
	}
	fp, err := os.Create(path + ".gz")
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(fp)
	if _, err := zw.Write([]byte(s)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := fp.Close(); err != nil {
		t.Fatal(err)
	}
}

func writeSource(t *testing.T, dir string, h *histogram.Histogram, name string, zip bool) {
	t.Helper()
	var b strings.Builder
	if err := h.WriteSource(&b); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, name), b.String(), zip)
}

const summary = `Some preamble
Rama: average -1.5, sd 0.25
Rota: average 0.125, sd 2
`

func TestBuildLoad(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(src, table.SummaryName), summary, false)

	alaO := mkHist(t, histogram.Rama, "ALA", histogram.Other, 7)
	alaH := mkHist(t, histogram.Rama, "ALA", histogram.Helix, 8)
	glyE := mkHist(t, histogram.Rama, "GLY", histogram.Strand, 9)
	cis := mkHist(t, histogram.Rama, "PRO", histogram.Cis, 10)
	glyP := mkHist(t, histogram.Rama, "GLY", histogram.PrePro, 11)
	serT := mkHist(t, histogram.Torsion, "SER", histogram.Helix, 12)
	// written out of order, read back in the fixed order
	writeSource(t, src, glyP, "rama_count_prepro_GLY.txt", false)
	writeSource(t, src, alaO, "rama_count_other_ALA.txt", true)
	writeSource(t, src, cis, "rama_count_cis_PRO.txt", false)
	writeSource(t, src, glyE, "rama_count_strand_GLY.txt", false)
	writeSource(t, src, alaH, "rama_count_helix_ALA.txt", false)
	writeSource(t, src, serT, "torsion_count_helix_SER.txt", true)

	if err := table.Build(src, dst); err != nil {
		t.Fatal(err)
	}
	rama, err := table.Load(filepath.Join(dst, table.RamaName), histogram.Rama)
	if err != nil {
		t.Fatal(err)
	}
	want := &table.File{Kind: histogram.Rama, Mean: -1.5, SD: 0.25,
		Hists: []*histogram.Histogram{alaH, alaO, glyE, cis, glyP}}
	if diff := cmp.Diff(want, rama, cmpHist); diff != "" {
		t.Errorf("rama table (-want +got):\n%s", diff)
	}
	tors, err := table.Load(filepath.Join(dst, table.TorsionName), histogram.Torsion)
	if err != nil {
		t.Fatal(err)
	}
	if tors.Mean != 0.125 || tors.SD != 2 || len(tors.Hists) != 1 {
		t.Fatal("torsion table wrong", tors.Mean, tors.SD, len(tors.Hists))
	}
	if diff := cmp.Diff(serT, tors.Hists[0], cmpHist); diff != "" {
		t.Errorf("torsion histogram (-want +got):\n%s", diff)
	}
}

func TestBuildErrors(t *testing.T) {
	src := t.TempDir()
	err := table.Build(src, t.TempDir())
	var mre *table.MissingResourceError
	if !errors.As(err, &mre) {
		t.Fatal("no summary, want MissingResourceError, got", err)
	}

	writeFile(t, filepath.Join(src, table.SummaryName), "Rama: average 1, sd 2\n", false)
	var fe *table.FormatError
	if err := table.Build(src, t.TempDir()); !errors.As(err, &fe) {
		t.Fatal("no Rota line, want FormatError, got", err)
	}

	writeFile(t, filepath.Join(src, table.SummaryName), summary, false)
	writeFile(t, filepath.Join(src, "rama_count_helix_CYS.txt"),
		"16 bins, aver 1, sd 0, binspacing 90\n", false)
	err = table.Build(src, t.TempDir())
	if !errors.As(err, &fe) {
		t.Fatal("zero sd, want FormatError, got", err)
	}
	if !strings.HasSuffix(fe.File, "rama_count_helix_CYS.txt") || fe.Line != 1 {
		t.Error("error should name the file and line", fe.File, fe.Line)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := table.Load(filepath.Join(t.TempDir(), table.RamaName), histogram.Rama)
	var mre *table.MissingResourceError
	if !errors.As(err, &mre) {
		t.Fatal("want MissingResourceError, got", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("should unwrap to ErrNotExist")
	}
}

func TestSources(t *testing.T) {
	rama, tors := table.Sources(histogram.Rama), table.Sources(histogram.Torsion)
	if len(rama) != 64 || len(tors) != 60 {
		t.Fatal("wrong number of sources", len(rama), len(tors))
	}
	if rama[0].Name != "rama_count_helix_ALA.txt" || tors[59].Name != "torsion_count_other_VAL.txt" {
		t.Error("wrong order", rama[0].Name, tors[59].Name)
	}
	if last := rama[63]; last.AA != "IV_" || last.SS != histogram.PrePro {
		t.Error("last rama source", last)
	}
}
