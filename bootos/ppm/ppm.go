// Package ppm reads and writes binary portable pixmaps (P6) with 8-bit samples.
package ppm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"
)

const (
	// Magic is the binary pixmap marker.
	Magic = "P6"
	// MaxVal is the only supported sample depth.
	MaxVal = 255
)

var (
	ErrBadMagic          = errors.New("ppm: bad magic")
	ErrBadDimensions     = errors.New("ppm: bad dimensions")
	ErrUnsupportedMaxVal = errors.New("ppm: unsupported maxval")
	ErrTruncated         = errors.New("ppm: truncated pixel data")
)

// Image is a decoded pixmap. Pix holds Width*Height interleaved R,G,B
// triples and aliases the decoded input.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// Decode parses a P6 pixmap.
//
// The header is read line by line: magic, "width height", maxval. Lines are
// trimmed of surrounding whitespace; blank lines and '#' comments are skipped.
// The pixel data is taken from the end of data, so anything between the
// header and the last Width*Height*3 bytes is ignored.
func Decode(data []byte) (*Image, error) {
	hr := headerReader{data: data}

	magic, ok := hr.next()
	if !ok {
		return nil, fmt.Errorf("%w: empty header", ErrBadMagic)
	}
	if string(magic) != Magic {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, clip(magic))
	}

	dims, ok := hr.next()
	if !ok {
		return nil, fmt.Errorf("%w: missing dimension line", ErrBadDimensions)
	}
	fields := bytes.Fields(dims)
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: want 2 fields, got %d", ErrBadDimensions, len(fields))
	}
	w, err := parseDim(fields[0])
	if err != nil {
		return nil, err
	}
	h, err := parseDim(fields[1])
	if err != nil {
		return nil, err
	}
	if w != 0 && h > math.MaxInt/3/w {
		return nil, fmt.Errorf("%w: %dx%d too large", ErrBadDimensions, w, h)
	}
	n := w * h * 3

	mv, ok := hr.next()
	if !ok {
		return nil, fmt.Errorf("%w: missing maxval", ErrUnsupportedMaxVal)
	}
	v, err := strconv.ParseUint(string(mv), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMaxVal, clip(mv))
	}
	if v != MaxVal {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMaxVal, v)
	}

	if len(data)-hr.off < n {
		return nil, fmt.Errorf("%w: want %d bytes, have %d", ErrTruncated, n, len(data)-hr.off)
	}
	return &Image{Width: w, Height: h, Pix: data[len(data)-n:]}, nil
}

func parseDim(b []byte) (int, error) {
	v, err := strconv.ParseUint(string(b), 10, 32)
	if err != nil || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %q", ErrBadDimensions, clip(b))
	}
	return int(v), nil
}

type headerReader struct {
	data []byte
	off  int
}

// next returns the next non-blank, non-comment header line.
func (r *headerReader) next() ([]byte, bool) {
	for r.off < len(r.data) {
		rest := r.data[r.off:]
		line := rest
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line = rest[:i]
			r.off += i + 1
		} else {
			r.off = len(r.data)
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		return line, true
	}
	return nil, false
}

func clip(b []byte) []byte {
	if len(b) > 16 {
		return b[:16]
	}
	return b
}

// Encode writes img as a P6 pixmap with a minimal header.
func Encode(w io.Writer, img *Image) error {
	if img == nil {
		return errors.New("ppm: encode: nil image")
	}
	if img.Width < 0 || img.Height < 0 || len(img.Pix) != img.Width*img.Height*3 {
		return fmt.Errorf("ppm: encode: %dx%d image has %d pixel bytes", img.Width, img.Height, len(img.Pix))
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", Magic, img.Width, img.Height, MaxVal); err != nil {
		return err
	}
	if _, err := bw.Write(img.Pix); err != nil {
		return err
	}
	return bw.Flush()
}

// FromImage flattens any image to 8-bit RGB, dropping alpha.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := &Image{Width: w, Height: h, Pix: make([]byte, w*h*3)}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			out.Pix[i+0] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			i += 3
		}
	}
	return out
}
