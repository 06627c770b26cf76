package surface

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"bootmenu/hal"
)

type recordingDisplay struct {
	ops []hal.BlitOp
	err error
}

func (d *recordingDisplay) Mode() hal.Mode { return hal.Mode{Width: 4, Height: 3} }

func (d *recordingDisplay) Blit(op hal.BlitOp) error {
	if d.err != nil {
		return d.err
	}
	d.ops = append(d.ops, op)
	return nil
}

func mustNew(t *testing.T, w, h int) *Surface {
	t.Helper()
	s, err := New(w, h)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", w, h, err)
	}
	return s
}

func TestNewIsBlack(t *testing.T) {
	s := mustNew(t, 4, 3)
	if len(s.Pixels()) != 12 {
		t.Fatalf("expected 12 pixels, got %d", len(s.Pixels()))
	}
	for i, p := range s.Pixels() {
		if p != (hal.BltPixel{}) {
			t.Fatalf("pixel %d: expected black, got %+v", i, p)
		}
	}
}

func TestNewRejectsInvalidSize(t *testing.T) {
	if _, err := New(-1, 3); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
	if _, err := New(math.MaxInt/2, 3); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize on overflow, got %v", err)
	}
}

func TestSetOutOfBoundsIsNoop(t *testing.T) {
	s := mustNew(t, 4, 3)
	white := hal.RGB(255, 255, 255)
	for _, pt := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {4, 3}, {-5, -5}, {100, 1}} {
		s.Set(pt[0], pt[1], white)
	}
	for i, p := range s.Pixels() {
		if p != (hal.BltPixel{}) {
			t.Fatalf("pixel %d changed by out-of-bounds write: %+v", i, p)
		}
	}
	if _, ok := s.At(4, 0); ok {
		t.Fatal("expected At(4, 0) to be out of bounds")
	}
}

func TestSetAndAt(t *testing.T) {
	s := mustNew(t, 4, 3)
	s.Set(3, 2, hal.RGB(1, 2, 3))
	p, ok := s.At(3, 2)
	if !ok {
		t.Fatal("expected At(3, 2) in bounds")
	}
	if *p != hal.RGB(1, 2, 3) {
		t.Fatalf("expected (1,2,3), got %+v", *p)
	}
	if s.Pixels()[2*4+3] != hal.RGB(1, 2, 3) {
		t.Fatal("expected row-major storage")
	}
}

func TestDrawPointsConvertsColor(t *testing.T) {
	s := mustNew(t, 4, 3)
	err := s.DrawPoints([]Point{
		{X: 0, Y: 0, Color: color.RGBA{R: 10, G: 20, B: 30, A: 255}},
		{X: 1, Y: 0, Color: color.Gray{Y: 200}},
		{X: 9, Y: 9, Color: color.White},
		{X: 0, Y: 0, Color: color.RGBA{R: 40, G: 50, B: 60, A: 255}},
	})
	if err != nil {
		t.Fatalf("DrawPoints: %v", err)
	}
	if p, _ := s.At(0, 0); *p != hal.RGB(40, 50, 60) {
		t.Fatalf("expected later point to win, got %+v", *p)
	}
	if p, _ := s.At(1, 0); *p != hal.RGB(200, 200, 200) {
		t.Fatalf("expected gray 200, got %+v", *p)
	}
}

func TestDrawPointsInvalidCoordinateAbortsCall(t *testing.T) {
	if math.MaxInt == math.MaxInt32 {
		t.Skip("int is 32-bit")
	}
	s := mustNew(t, 4, 3)
	tooFar := int64(math.MaxInt32) + 1
	err := s.DrawPoints([]Point{
		{X: 0, Y: 0, Color: color.White},
		{X: int(tooFar), Y: 0, Color: color.White},
		{X: 1, Y: 0, Color: color.White},
	})
	if !errors.Is(err, ErrInvalidCoordinate) {
		t.Fatalf("expected ErrInvalidCoordinate, got %v", err)
	}
	if p, _ := s.At(0, 0); *p != hal.RGB(255, 255, 255) {
		t.Fatal("expected point before the invalid one to be drawn")
	}
	if p, _ := s.At(1, 0); *p != (hal.BltPixel{}) {
		t.Fatal("expected point after the invalid one to be skipped")
	}

	// The surface stays usable.
	if err := s.DrawPoints([]Point{{X: 2, Y: 2, Color: color.White}}); err != nil {
		t.Fatalf("DrawPoints after error: %v", err)
	}
}

func TestClear(t *testing.T) {
	s := mustNew(t, 2, 2)
	s.Clear(hal.RGB(9, 8, 7))
	for i, p := range s.Pixels() {
		if p != hal.RGB(9, 8, 7) {
			t.Fatalf("pixel %d: expected cleared color, got %+v", i, p)
		}
	}
}

func TestPresentFull(t *testing.T) {
	s := mustNew(t, 4, 3)
	d := &recordingDisplay{}
	if err := s.PresentFull(d); err != nil {
		t.Fatalf("PresentFull: %v", err)
	}
	if len(d.ops) != 1 {
		t.Fatalf("expected 1 blit, got %d", len(d.ops))
	}
	op := d.ops[0]
	if !op.Src.Full || op.DestX != 0 || op.DestY != 0 || op.Width != 4 || op.Height != 3 {
		t.Fatalf("unexpected blit op: %+v", op)
	}
	if len(op.Buffer) != 12 {
		t.Fatalf("expected full buffer, got %d pixels", len(op.Buffer))
	}
}

func TestPresentPoint(t *testing.T) {
	s := mustNew(t, 4, 3)
	d := &recordingDisplay{}
	if err := s.PresentPoint(d, 2, 1); err != nil {
		t.Fatalf("PresentPoint: %v", err)
	}
	op := d.ops[0]
	if op.Src.Full || op.Src.X != 2 || op.Src.Y != 1 || op.Src.Stride != 4 {
		t.Fatalf("unexpected source region: %+v", op.Src)
	}
	if op.DestX != 2 || op.DestY != 1 || op.Width != 1 || op.Height != 1 {
		t.Fatalf("unexpected destination: %+v", op)
	}

	if err := s.PresentPoint(d, 4, 0); !errors.Is(err, ErrInvalidCoordinate) {
		t.Fatalf("expected ErrInvalidCoordinate, got %v", err)
	}
	if len(d.ops) != 1 {
		t.Fatal("expected no blit for an out-of-range point")
	}
}

func TestPresentPropagatesDisplayErrors(t *testing.T) {
	s := mustNew(t, 4, 3)
	boom := errors.New("device error")
	d := &recordingDisplay{err: boom}
	if err := s.PresentFull(d); !errors.Is(err, boom) {
		t.Fatalf("expected display error, got %v", err)
	}
	if err := s.PresentPoint(d, 0, 0); !errors.Is(err, boom) {
		t.Fatalf("expected display error, got %v", err)
	}
}
