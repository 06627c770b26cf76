// Package text draws strings with a bitmap font through surface.Drawable.
package text

import (
	"image/color"
	"math"

	"bootmenu/bootos/surface"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Font is the font used for all menu and status text.
var Font tinyfont.Fonter = &proggy.TinySZ8pt7b

// LineHeight is the vertical advance of Font.
func LineHeight() int { return int(Font.GetYAdvance()) }

type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
)

// Canvas is a drawable with known bounds.
type Canvas interface {
	surface.Drawable
	Width() int
	Height() int
}

// Width returns the rendered width of s in pixels.
func Width(s string) int {
	_, outbox := tinyfont.LineWidth(Font, s)
	return int(outbox)
}

// Draw renders s with its baseline at y. With AlignCenter, x is the
// horizontal center of the line.
func Draw(dst Canvas, x, y int, s string, c color.RGBA, align Align) error {
	if align == AlignCenter {
		x -= Width(s) / 2
	}
	rec := &recorder{w: clamp16(dst.Width()), h: clamp16(dst.Height())}
	tinyfont.WriteLine(rec, Font, clamp16(x), clamp16(y), s, c)
	return dst.DrawPoints(rec.pts)
}

// recorder collects glyph pixels so a whole line is drawn with one DrawPoints call.
type recorder struct {
	w, h int16
	pts  []surface.Point
}

var _ drivers.Displayer = (*recorder)(nil)

func (r *recorder) Size() (x, y int16) { return r.w, r.h }

func (r *recorder) SetPixel(x, y int16, c color.RGBA) {
	r.pts = append(r.pts, surface.Point{X: int(x), Y: int(y), Color: c})
}

func (r *recorder) Display() error { return nil }

func clamp16(v int) int16 {
	if v < math.MinInt16 {
		return math.MinInt16
	}
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	return int16(v)
}
