package menu

import "image/color"

// Layout positions menu text on the surface.
type Layout struct {
	// X, Y is the baseline of the first label; labels are Stride apart.
	X, Y   int
	Stride int

	// Marker prefixes the selected label; other labels get the same number of spaces.
	Marker string

	Foreground color.RGBA
	Background color.RGBA
	Accent     color.RGBA

	// ConfirmDrop places the confirmation text this fraction of the surface
	// height below the center.
	ConfirmDrop float64
}

// DefaultLayout returns the stock menu layout.
func DefaultLayout() Layout {
	return Layout{
		X:           50,
		Y:           150,
		Stride:      20,
		Marker:      ">> ",
		Foreground:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Background:  color.RGBA{A: 255},
		Accent:      color.RGBA{R: 120, G: 0, B: 255, A: 255},
		ConfirmDrop: 0.3,
	}
}
