package console

import (
	"errors"
	"testing"

	"bootmenu/bootos/surface"
	"bootmenu/hal"
)

type countingDisplay struct {
	blits int
	err   error
}

func (d *countingDisplay) Mode() hal.Mode { return hal.Mode{Width: 160, Height: 80} }

func (d *countingDisplay) Blit(op hal.BlitOp) error {
	if d.err != nil {
		return d.err
	}
	d.blits++
	return nil
}

func lit(s *surface.Surface) int {
	n := 0
	for _, p := range s.Pixels() {
		if p != (hal.BltPixel{}) {
			n++
		}
	}
	return n
}

func TestWriteLinePresents(t *testing.T) {
	s, _ := surface.New(160, 80)
	d := &countingDisplay{}
	c := New(s, d)

	c.WriteLineString("bootmenu online")
	if lit(s) == 0 {
		t.Fatal("expected text pixels on the surface")
	}
	if d.blits != 1 {
		t.Fatalf("expected one present per line, got %d", d.blits)
	}
	c.WriteLineString("Loading menu...")
	if d.blits != 2 {
		t.Fatalf("expected one present per line, got %d", d.blits)
	}
	if err := c.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConsoleIsLogger(t *testing.T) {
	s, _ := surface.New(160, 80)
	var l hal.Logger = New(s, &countingDisplay{})
	l.WriteLineBytes([]byte("Loading menu..."))
	if lit(s) == 0 {
		t.Fatal("expected text pixels on the surface")
	}
}

func TestDisplayErrorIsReported(t *testing.T) {
	s, _ := surface.New(160, 80)
	boom := errors.New("blit failed")
	c := New(s, &countingDisplay{err: boom})
	if _, err := c.Write([]byte("x\r\n")); !errors.Is(err, boom) {
		t.Fatalf("expected display error, got %v", err)
	}
	if !errors.Is(c.Err(), boom) {
		t.Fatalf("expected Err to report display error, got %v", c.Err())
	}
}
