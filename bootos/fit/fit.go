// Package fit scales a decoded pixmap onto a surface, preserving its aspect ratio.
package fit

import (
	"math"

	"bootmenu/bootos/ppm"
	"bootmenu/hal"
)

// Mapping selects the nearest-neighbour resampling direction.
type Mapping uint8

const (
	// MappingForward walks source pixels and plots each at its scaled
	// position. Upscaling leaves gaps between plotted pixels and
	// downscaling lets later source pixels overwrite earlier ones.
	MappingForward Mapping = iota
	// MappingInverse walks the destination footprint and samples the
	// nearest source pixel, so every covered pixel is written.
	MappingInverse
)

// Anchor selects where the scaled image is placed.
type Anchor uint8

const (
	AnchorCenter Anchor = iota
	AnchorTopLeft
)

// Options picks the resampling direction and the placement of the image.
type Options struct {
	Mapping Mapping
	Anchor  Anchor
}

// Geometry is the placement of a scaled image on a surface.
type Geometry struct {
	Scale   float64
	OffsetX int
	OffsetY int
}

// Target is a pixel sink with bounds-checked writes.
type Target interface {
	Width() int
	Height() int
	Set(x, y int, c hal.BltPixel)
}

// Compute returns the aspect-preserving scale for a srcW x srcH image on a
// dstW x dstH surface and the offsets that place it according to anchor.
func Compute(dstW, dstH, srcW, srcH int, anchor Anchor) Geometry {
	if dstW <= 0 || dstH <= 0 || srcW <= 0 || srcH <= 0 {
		return Geometry{}
	}
	scale := math.Min(float64(dstW)/float64(srcW), float64(dstH)/float64(srcH))
	g := Geometry{Scale: scale}
	if anchor == AnchorCenter {
		g.OffsetX = round((float64(dstW) - float64(srcW)*scale) / 2)
		g.OffsetY = round((float64(dstH) - float64(srcH)*scale) / 2)
	}
	return g
}

// Blit scales img onto dst and returns the geometry it used.
// Writes that land outside dst are dropped by dst.
func Blit(dst Target, img *ppm.Image, opts Options) Geometry {
	if img == nil || img.Width <= 0 || img.Height <= 0 || len(img.Pix) < img.Width*img.Height*3 {
		return Geometry{}
	}
	g := Compute(dst.Width(), dst.Height(), img.Width, img.Height, opts.Anchor)
	if g.Scale <= 0 {
		return Geometry{}
	}

	switch opts.Mapping {
	case MappingInverse:
		blitInverse(dst, img, g)
	default:
		blitForward(dst, img, g)
	}
	return g
}

func blitForward(dst Target, img *ppm.Image, g Geometry) {
	w, h := img.Width, img.Height
	for sy := 0; sy < h; sy++ {
		dy := round(float64(sy)*g.Scale) + g.OffsetY
		row := sy * w * 3
		for sx := 0; sx < w; sx++ {
			dx := round(float64(sx)*g.Scale) + g.OffsetX
			i := row + sx*3
			dst.Set(dx, dy, hal.RGB(img.Pix[i], img.Pix[i+1], img.Pix[i+2]))
		}
	}
}

// Footprint is the size in destination pixels of a srcW x srcH image drawn
// with g, rounded half up.
func (g Geometry) Footprint(srcW, srcH int) (w, h int) {
	return round(float64(srcW) * g.Scale), round(float64(srcH) * g.Scale)
}

func blitInverse(dst Target, img *ppm.Image, g Geometry) {
	w, h := img.Width, img.Height
	fw, fh := g.Footprint(w, h)
	for dy := 0; dy < fh; dy++ {
		sy := clamp(round(float64(dy)/g.Scale), 0, h-1)
		row := sy * w * 3
		for dx := 0; dx < fw; dx++ {
			sx := clamp(round(float64(dx)/g.Scale), 0, w-1)
			i := row + sx*3
			dst.Set(dx+g.OffsetX, dy+g.OffsetY, hal.RGB(img.Pix[i], img.Pix[i+1], img.Pix[i+2]))
		}
	}
}

// round rounds half up.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
