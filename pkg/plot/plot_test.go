// 18 Sep 2026

package plot_test

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"testing"

	"github.com/andrew-torda/tortoize/pkg/histogram"
	. "github.com/andrew-torda/tortoize/pkg/plot"
)

// mkHist has four bins a side and all the counts in bin (3, 0), or
// bin 0 if it is one dimensional.
func mkHist(t *testing.T, kind histogram.Kind, aa string) *histogram.Histogram {
	t.Helper()
	n := histogram.NBins(kind, aa, 90)
	counts := make([]uint32, n)
	counts[n-4] = 100
	h, err := histogram.New(kind, aa, histogram.Helix, histogram.Stats{SD: 1, BinSpacing: 90}, counts)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func lum(c color.Color) uint32 {
	r, g, b, _ := c.RGBA()
	return r + g + b
}

func TestRender(t *testing.T) {
	h := mkHist(t, histogram.Rama, "ALA")
	opt := Options{Width: 240, Height: 240}
	img, err := Render(h, []Point{{A1: -135, A2: 135}}, opt)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 240 || b.Dy() != 240 {
		t.Fatal("wrong size", b)
	}
	// plot area is 160 square from (40, 40), 40 pixels a bin
	full := img.At(40+3*40+20, 40+3*40+20) // phi 90, psi -180
	empty := img.At(40+20, 40+3*40+20)     // phi -180, psi -180
	if lum(full) >= lum(empty) {
		t.Error("full bin should be darker", full, empty)
	}
	if got := img.RGBAAt(40+20, 40+20); got != (color.RGBA{200, 0, 0, 255}) {
		t.Error("observed point not drawn", got)
	}
	for _, log := range []bool{false, true} {
		opt.LogScale = log
		if _, err := Render(h, nil, opt); err != nil {
			t.Error(err)
		}
	}
}

func TestOneDim(t *testing.T) {
	h := mkHist(t, histogram.Torsion, "SER")
	img, err := Render(h, []Point{{A1: 10}}, Options{Width: 200, Height: 100})
	if err != nil {
		t.Fatal(err)
	}
	// the counts are all in the first bin
	if lum(img.At(40+15, 58)) >= lum(img.At(40+3*30+15, 58)) {
		t.Error("bar missing")
	}
}

func TestWritePNG(t *testing.T) {
	h := mkHist(t, histogram.Rama, "GLY")
	var b bytes.Buffer
	if err := WritePNG(&b, h, nil, Options{Width: 100, Height: 120}); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&b)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 120 {
		t.Error("size", img.Bounds())
	}
	if err := WritePNG(&b, h, nil, Options{Width: 50, Height: 50}); err == nil {
		t.Error("too small should fail")
	} else if errors.Unwrap(err) == nil {
		t.Error("error should wrap", err)
	}
}
