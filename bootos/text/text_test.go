package text

import (
	"image/color"
	"testing"

	"bootmenu/bootos/surface"
	"bootmenu/hal"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

type bounds struct {
	minX, minY, maxX, maxY int
	n                      int
}

func litBounds(s *surface.Surface) bounds {
	b := bounds{minX: s.Width(), minY: s.Height(), maxX: -1, maxY: -1}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			p, _ := s.At(x, y)
			if *p == (hal.BltPixel{}) {
				continue
			}
			b.n++
			b.minX = min(b.minX, x)
			b.minY = min(b.minY, y)
			b.maxX = max(b.maxX, x)
			b.maxY = max(b.maxY, y)
		}
	}
	return b
}

func TestDrawLeftAligned(t *testing.T) {
	s, _ := surface.New(80, 40)
	if err := Draw(s, 10, 20, "Option1", white, AlignLeft); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	b := litBounds(s)
	if b.n == 0 {
		t.Fatal("expected glyph pixels")
	}
	if b.minX < 10 {
		t.Fatalf("expected text to start at x>=10, got %d", b.minX)
	}
	if b.maxY > 20+LineHeight()/2 || b.minY < 20-LineHeight() {
		t.Fatalf("expected text around baseline 20, got rows %d..%d", b.minY, b.maxY)
	}
	for _, p := range s.Pixels() {
		if p != (hal.BltPixel{}) && p != hal.RGB(255, 255, 255) {
			t.Fatalf("expected white glyph pixels, got %+v", p)
		}
	}
}

func TestDrawCentered(t *testing.T) {
	s, _ := surface.New(120, 40)
	msg := "centered"
	if err := Draw(s, 60, 20, msg, white, AlignCenter); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	b := litBounds(s)
	w := Width(msg)
	if w <= 0 {
		t.Fatal("expected positive width")
	}
	if b.minX < 60-w/2-1 || b.maxX > 60+w/2+1 {
		t.Fatalf("expected text within [%d,%d], got [%d,%d]", 60-w/2, 60+w/2, b.minX, b.maxX)
	}
	mid := (b.minX + b.maxX) / 2
	if mid < 55 || mid > 65 {
		t.Fatalf("expected text centered near 60, got %d", mid)
	}
}

func TestDrawClipsAtEdges(t *testing.T) {
	s, _ := surface.New(10, 10)
	if err := Draw(s, -20, 5, "clipped text", white, AlignLeft); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if err := Draw(s, 5, 500, "below", white, AlignLeft); err != nil {
		t.Fatalf("Draw: %v", err)
	}
}
