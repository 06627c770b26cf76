// Package chaos draws a Sierpinski triangle with the chaos game, one pixel per step.
package chaos

import (
	"context"
	"encoding/binary"
	"fmt"
	"strconv"

	"bootmenu/bootos/surface"
	"bootmenu/hal"
)

const wordBytes = strconv.IntSize / 8

// Point is a position in surface coordinates.
type Point struct {
	X, Y float64
}

type Options struct {
	// Margin insets the triangle from the surface edges. Defaults to 20.
	Margin float64
	// Color of plotted points. Defaults to dark green.
	Color hal.BltPixel
}

// Renderer runs the chaos game on a surface.
type Renderer struct {
	surf *surface.Surface
	disp hal.Display
	rng  hal.RNG

	anchors [3]Point
	p       Point
	color   hal.BltPixel

	buf [wordBytes]byte
}

func New(surf *surface.Surface, disp hal.Display, rng hal.RNG, opts Options) *Renderer {
	if opts.Margin <= 0 {
		opts.Margin = 20
	}
	if opts.Color == (hal.BltPixel{}) {
		opts.Color = hal.RGB(0, 100, 0)
	}
	w, h := float64(surf.Width()), float64(surf.Height())
	m := opts.Margin
	return &Renderer{
		surf: surf,
		disp: disp,
		rng:  rng,
		anchors: [3]Point{
			{X: w / 2, Y: m},
			{X: m, Y: h - m},
			{X: w - m, Y: h - m},
		},
		p:     Point{X: w / 2, Y: h / 2},
		color: opts.Color,
	}
}

func (r *Renderer) Anchors() [3]Point { return r.anchors }

// Current returns the last plotted point (the surface center before the first step).
func (r *Renderer) Current() Point { return r.p }

// PaintBackground fills the surface with a red/green gradient on blue and presents it.
func (r *Renderer) PaintBackground() error {
	w, h := r.surf.Width(), r.surf.Height()
	for y := 0; y < h; y++ {
		red := ramp(y, h)
		for x := 0; x < w; x++ {
			r.surf.Set(x, y, hal.RGB(red, ramp(x, w), 255))
		}
	}
	if err := r.surf.PresentFull(r.disp); err != nil {
		return fmt.Errorf("chaos: present: %w", err)
	}
	return nil
}

func ramp(v, n int) uint8 {
	if n <= 1 {
		return 0
	}
	return uint8(float64(v) / float64(n-1) * 255)
}

// Step moves halfway toward a random anchor, plots the point and presents
// only that pixel.
func (r *Renderer) Step() error {
	if err := r.rng.Fill(r.buf[:]); err != nil {
		return fmt.Errorf("chaos: rng: %w", err)
	}
	v := r.anchors[word(r.buf[:])%3]

	r.p.X = (r.p.X + v.X) * 0.5
	r.p.Y = (r.p.Y + v.Y) * 0.5

	x, y := int(r.p.X), int(r.p.Y)
	r.surf.Set(x, y, r.color)
	if err := r.surf.PresentPoint(r.disp, x, y); err != nil {
		return fmt.Errorf("chaos: present: %w", err)
	}
	return nil
}

// word decodes a little-endian machine word.
func word(b []byte) uint {
	if wordBytes == 4 {
		return uint(binary.LittleEndian.Uint32(b))
	}
	return uint(binary.LittleEndian.Uint64(b))
}

// Run paints the background and steps until ctx is done.
func (r *Renderer) Run(ctx context.Context) error {
	if err := r.PaintBackground(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := r.Step(); err != nil {
			return err
		}
	}
}
