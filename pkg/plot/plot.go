// 18 Sep 2026

// Package plot draws a reference histogram as a density map, with
// observed angles on top, and writes it as a PNG.
package plot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/andrew-torda/matrix"
	"github.com/andrew-torda/tortoize/pkg/histogram"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Options says how big the picture is and how to scale counts.
type Options struct {
	Width    int
	Height   int
	LogScale bool
}

// Point is an observed pair of angles. For one dimensional
// histograms A2 is ignored.
type Point struct {
	A1, A2 float64
}

const (
	margin   = 40 // pixels around the plot for labels
	fontSize = 12
	dotSize  = 2
)

var (
	bgColour  = color.RGBA{255, 255, 255, 255}
	dotColour = color.RGBA{200, 0, 0, 255}
	axColour  = color.RGBA{0, 0, 0, 255}
)

var errSize = errors.New("plot too small")

var ttf struct {
	once sync.Once
	f    *truetype.Font
	err  error
}

func getFont() (*truetype.Font, error) {
	ttf.once.Do(func() { ttf.f, ttf.err = truetype.Parse(goregular.TTF) })
	return ttf.f, ttf.err
}

// scaled returns the counts between 0 and 1.
func scaled(g *matrix.FMatrix2d, logScale bool) [][]float32 {
	out := make([][]float32, len(g.Mat))
	var top float32
	for i, row := range g.Mat {
		out[i] = make([]float32, len(row))
		for j, v := range row {
			if logScale {
				v = float32(math.Log1p(float64(v)))
			}
			out[i][j] = v
			if v > top {
				top = v
			}
		}
	}
	if top == 0 {
		return out
	}
	for _, row := range out {
		for j := range row {
			row[j] /= top
		}
	}
	return out
}

// ramp goes from white through blue to dark blue.
func ramp(f float32) color.RGBA {
	if f < 0.5 {
		t := f * 2
		return color.RGBA{uint8(255 * (1 - t)), uint8(255 * (1 - 0.6*t)), 255, 255}
	}
	t := (f - 0.5) * 2
	return color.RGBA{0, uint8(102 * (1 - t)), uint8(255 - 127*t), 255}
}

// frame is where angles land in the picture.
type frame struct {
	x0, y0, w, h int
}

func (fr frame) x(a float64) int {
	return fr.x0 + int(math.Floor((a+180)/360*float64(fr.w)))
}

// y has angle -180 at the bottom.
func (fr frame) y(a float64) int {
	return fr.y0 + fr.h - 1 - int(math.Floor((a+180)/360*float64(fr.h)))
}

func wrap(a float64) float64 {
	a = math.Mod(a+180, 360)
	if a < 0 {
		a += 360
	}
	return a - 180
}

// Render draws h. For a two dimensional histogram the first angle
// goes across and the second up. A one dimensional histogram is drawn
// as bars.
func Render(h *histogram.Histogram, obs []Point, opt Options) (*image.RGBA, error) {
	if opt.Width < 2*margin+h.Dim() || opt.Height < 2*margin+h.Dim() {
		return nil, fmt.Errorf("%w: %dx%d for %d bins", errSize, opt.Width, opt.Height, h.Dim())
	}
	img := image.NewRGBA(image.Rect(0, 0, opt.Width, opt.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bgColour), image.Point{}, draw.Src)
	fr := frame{x0: margin, y0: margin, w: opt.Width - 2*margin, h: opt.Height - 2*margin}
	dens := scaled(h.Grid(), opt.LogScale)
	n := h.Dim()
	for px := 0; px < fr.w; px++ {
		i := px * n / fr.w
		for py := 0; py < fr.h; py++ {
			j := (fr.h - 1 - py) * n / fr.h
			if h.Is2D() {
				img.SetRGBA(fr.x0+px, fr.y0+py, ramp(dens[i][j]))
			} else if float32(fr.h-1-py) < dens[0][i]*float32(fr.h) {
				img.SetRGBA(fr.x0+px, fr.y0+py, ramp(0.75))
			}
		}
	}
	for _, p := range obs {
		a2 := p.A2
		if !h.Is2D() {
			a2 = 0
		}
		cx, cy := fr.x(wrap(p.A1)), fr.y(wrap(a2))
		for dx := -dotSize; dx <= dotSize; dx++ {
			for dy := -dotSize; dy <= dotSize; dy++ {
				if image.Pt(cx+dx, cy+dy).In(img.Bounds()) {
					img.SetRGBA(cx+dx, cy+dy, dotColour)
				}
			}
		}
	}
	drawBox(img, fr)
	if err := labels(img, fr, h); err != nil {
		return nil, err
	}
	return img, nil
}

func drawBox(img *image.RGBA, fr frame) {
	for x := fr.x0 - 1; x <= fr.x0+fr.w; x++ {
		img.SetRGBA(x, fr.y0-1, axColour)
		img.SetRGBA(x, fr.y0+fr.h, axColour)
	}
	for y := fr.y0 - 1; y <= fr.y0+fr.h; y++ {
		img.SetRGBA(fr.x0-1, y, axColour)
		img.SetRGBA(fr.x0+fr.w, y, axColour)
	}
}

// labels puts a title above the plot and tick values on the axes.
func labels(img *image.RGBA, fr frame, h *histogram.Histogram) error {
	f, err := getFont()
	if err != nil {
		return fmt.Errorf("plot font: %w", err)
	}
	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(f)
	c.SetFontSize(fontSize)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.NewUniform(axColour))
	c.SetHinting(font.HintingFull)
	face := truetype.NewFace(f, &truetype.Options{Size: fontSize, DPI: 72})
	defer face.Close()

	centred := func(s string, x, y int) error {
		w := font.MeasureString(face, s)
		pt := fixed.P(x, y).Sub(fixed.Point26_6{X: w / 2})
		_, err := c.DrawString(s, pt)
		return err
	}
	if err := centred(h.String(), fr.x0+fr.w/2, fr.y0-fontSize); err != nil {
		return err
	}
	for _, a := range []float64{-180, 0, 180} {
		s := fmt.Sprint(a)
		x := fr.x(a)
		if a == 180 {
			x = fr.x0 + fr.w
		}
		if err := centred(s, x, fr.y0+fr.h+fontSize+4); err != nil {
			return err
		}
		if !h.Is2D() {
			continue
		}
		y := fr.y(a)
		if a == 180 {
			y = fr.y0
		}
		if err := centred(s, fr.x0/2, y+fontSize/2); err != nil {
			return err
		}
	}
	return nil
}

// WritePNG renders h and writes it to w.
func WritePNG(w io.Writer, h *histogram.Histogram, obs []Point, opt Options) error {
	img, err := Render(h, obs, opt)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("writing png: %w", err)
	}
	return nil
}
