package hal

import (
	"context"
	"errors"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var (
	ErrNotImplemented = errors.New("not implemented")

	// ErrInvalidBlit is returned by displays for regions that fall outside
	// the source buffer or the screen.
	ErrInvalidBlit = errors.New("hal: invalid blit")

	// ErrStopped is returned by an app step function once the app finished.
	// Runners treat it as a clean exit.
	ErrStopped = errors.New("hal: stopped")
)

// BltPixel is one pixel of a blit buffer (firmware BGR layout, 24-bit color).
type BltPixel struct {
	Blue     uint8
	Green    uint8
	Red      uint8
	Reserved uint8
}

// RGB returns a pixel with the given color.
func RGB(r, g, b uint8) BltPixel {
	return BltPixel{Red: r, Green: g, Blue: b}
}

// Mode describes the current video mode.
type Mode struct {
	Width  int
	Height int
}

// Region selects the source rectangle of a blit inside BlitOp.Buffer.
type Region struct {
	// Full means Buffer holds exactly Width*Height pixels.
	Full bool

	X, Y int
	// Stride is the number of pixels per row of Buffer.
	Stride int
}

// BlitOp copies a rectangle of Buffer to the screen at (DestX, DestY).
type BlitOp struct {
	Buffer []BltPixel
	Src    Region

	DestX, DestY  int
	Width, Height int
}

// Display is the video output capability.
type Display interface {
	Mode() Mode
	Blit(op BlitOp) error
}

// KeyCode is a named scan code. Printable keys use KeyUnknown plus a rune.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyDelete
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
)

func (c KeyCode) String() string {
	switch c {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyDelete:
		return "delete"
	case KeyEscape:
		return "escape"
	case KeyF1:
		return "f1"
	case KeyF2:
		return "f2"
	case KeyF3:
		return "f3"
	default:
		return "unknown"
	}
}

// Key is a keyboard event: either a named scan code or a printable rune.
type Key struct {
	Code KeyCode
	Rune rune
}

// Printable reports whether k carries a character rather than a scan code.
func (k Key) Printable() bool { return k.Code == KeyUnknown && k.Rune != 0 }

// Special returns a scan-code key.
func Special(code KeyCode) Key { return Key{Code: code} }

// Char returns a character key.
func Char(r rune) Key { return Key{Rune: r} }

// Input is the keyboard capability.
type Input interface {
	// ReadKey returns the next pending key without blocking.
	// ok is false when no key is pending.
	ReadKey() (k Key, ok bool, err error)
	// WaitForKey blocks until a key is pending or ctx is done.
	WaitForKey(ctx context.Context) error
}

// RNG is a source of random bytes.
type RNG interface {
	Fill(p []byte) error
}

// HAL provides the only contact point between the app and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	RNG() RNG
}
