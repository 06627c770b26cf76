package hal

import (
	"image"
	"image/color"
)

// RGBA converts p to an opaque color.RGBA.
func (p BltPixel) RGBA() color.RGBA {
	return color.RGBA{R: p.Red, G: p.Green, B: p.Blue, A: 0xFF}
}

// FromColor converts any color to a blit pixel, dropping alpha.
func FromColor(c color.Color) BltPixel {
	if c == nil {
		return BltPixel{}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return BltPixel{Red: n.R, Green: n.G, Blue: n.B}
}

// copyToRGBA expands a dense width*height pixel slice into dst.Pix.
func copyToRGBA(dst *image.RGBA, src []BltPixel) {
	pix := dst.Pix
	for i, p := range src {
		j := i * 4
		if j+3 >= len(pix) {
			return
		}
		pix[j+0] = p.Red
		pix[j+1] = p.Green
		pix[j+2] = p.Blue
		pix[j+3] = 0xFF
	}
}
