// Package surface is an off-screen pixel buffer that is pushed to the display with blits.
package surface

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"bootmenu/hal"
)

var (
	ErrInvalidSize       = errors.New("surface: invalid size")
	ErrInvalidCoordinate = errors.New("surface: invalid coordinate")
)

// Point is a single colored pixel to draw.
type Point struct {
	X, Y  int
	Color color.Color
}

// Drawable accepts sequences of colored points.
type Drawable interface {
	DrawPoints(pts []Point) error
}

// Surface owns a width*height array of pixels, row-major.
//
// Writes outside the surface are dropped. A Surface is not safe for
// concurrent use.
type Surface struct {
	width  int
	height int
	pixels []hal.BltPixel
}

// New allocates a black surface.
func New(width, height int) (*Surface, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width > 0 && height > math.MaxInt/width {
		return nil, fmt.Errorf("%w: %dx%d overflows", ErrInvalidSize, width, height)
	}
	return &Surface{
		width:  width,
		height: height,
		pixels: make([]hal.BltPixel, width*height),
	}, nil
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Pixels returns the backing array. It is owned by the surface.
func (s *Surface) Pixels() []hal.BltPixel { return s.pixels }

func (s *Surface) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Set writes c at (x, y) if the point is inside the surface.
func (s *Surface) Set(x, y int, c hal.BltPixel) {
	if !s.inBounds(x, y) {
		return
	}
	s.pixels[y*s.width+x] = c
}

// At returns the pixel at (x, y).
func (s *Surface) At(x, y int) (*hal.BltPixel, bool) {
	if !s.inBounds(x, y) {
		return nil, false
	}
	return &s.pixels[y*s.width+x], true
}

// DrawPoints sets each point in order, converting colors to 24-bit RGB.
// Coordinates must fit a signed 32-bit pair; the first one that does not
// stops the call.
func (s *Surface) DrawPoints(pts []Point) error {
	for _, p := range pts {
		if p.X < math.MinInt32 || p.X > math.MaxInt32 || p.Y < math.MinInt32 || p.Y > math.MaxInt32 {
			return fmt.Errorf("%w: (%d,%d)", ErrInvalidCoordinate, p.X, p.Y)
		}
		s.Set(p.X, p.Y, hal.FromColor(p.Color))
	}
	return nil
}

// Clear sets every pixel to c.
func (s *Surface) Clear(c hal.BltPixel) {
	for i := range s.pixels {
		s.pixels[i] = c
	}
}

// PresentFull pushes the whole surface to the display in one blit.
func (s *Surface) PresentFull(d hal.Display) error {
	return d.Blit(hal.BlitOp{
		Buffer: s.pixels,
		Src:    hal.Region{Full: true},
		Width:  s.width,
		Height: s.height,
	})
}

// PresentPoint pushes the single pixel at (x, y), addressing it inside the
// full buffer with the surface's row stride.
func (s *Surface) PresentPoint(d hal.Display, x, y int) error {
	if !s.inBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d)", ErrInvalidCoordinate, x, y)
	}
	return d.Blit(hal.BlitOp{
		Buffer: s.pixels,
		Src:    hal.Region{X: x, Y: y, Stride: s.width},
		DestX:  x,
		DestY:  y,
		Width:  1,
		Height: 1,
	})
}
