// Package console is a scrolling text terminal drawn on a surface.
package console

import (
	"image/color"

	"bootmenu/bootos/surface"
	"bootmenu/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

// Console renders log lines on a surface and presents after every line.
// It implements hal.Logger.
type Console struct {
	term *tinyterm.Terminal
	scr  *screen
}

// New returns a console that draws on s and presents to disp.
func New(s *surface.Surface, disp hal.Display) *Console {
	scr := &screen{s: s, disp: disp}
	term := tinyterm.NewTerminal(scr)
	term.Configure(&tinyterm.Config{
		Font:       &proggy.TinySZ8pt7b,
		FontHeight: 10,
		FontOffset: 6,
	})
	return &Console{term: term, scr: scr}
}

// Write writes raw terminal output (VT100 subset) and presents it.
func (c *Console) Write(p []byte) (int, error) {
	n, err := c.term.Write(p)
	derr := c.scr.Display()
	if err != nil {
		return n, err
	}
	return n, derr
}

func (c *Console) WriteLineString(s string) {
	_, _ = c.Write([]byte(s + "\r\n"))
}

func (c *Console) WriteLineBytes(b []byte) {
	line := make([]byte, 0, len(b)+2)
	line = append(line, b...)
	line = append(line, '\r', '\n')
	_, _ = c.Write(line)
}

// Err returns the last error reported by the display, if any.
func (c *Console) Err() error { return c.scr.err }

// screen adapts a surface to the terminal's displayer interface.
type screen struct {
	s    *surface.Surface
	disp hal.Display
	err  error
}

var _ drivers.Displayer = (*screen)(nil)

func (d *screen) Size() (x, y int16) {
	return int16(d.s.Width()), int16(d.s.Height())
}

func (d *screen) SetPixel(x, y int16, c color.RGBA) {
	d.s.Set(int(x), int(y), hal.RGB(c.R, c.G, c.B))
}

func (d *screen) Display() error {
	if d.disp == nil {
		return nil
	}
	d.err = d.s.PresentFull(d.disp)
	return d.err
}

func (d *screen) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	p := hal.RGB(c.R, c.G, c.B)
	for py := int(y); py < int(y)+int(height); py++ {
		for px := int(x); px < int(x)+int(width); px++ {
			d.s.Set(px, py, p)
		}
	}
	return nil
}

// SetScroll is a no-op: the console only shows the short boot banner, which
// never runs past the bottom of the screen.
func (d *screen) SetScroll(int16) {}

func (d *screen) SetRotation(drivers.Rotation) error { return nil }
