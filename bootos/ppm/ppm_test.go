package ppm

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

var pixels2x2 = []byte{
	255, 0, 0, 0, 255, 0,
	0, 0, 255, 10, 20, 30,
}

func withPixels(header string) []byte {
	return append([]byte(header), pixels2x2...)
}

func TestDecodeWellFormed(t *testing.T) {
	img, err := Decode(withPixels("P6\n2 2\n255\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Width != 2 || img.Height != 2 {
		t.Fatalf("expected 2x2, got %dx%d", img.Width, img.Height)
	}
	if !bytes.Equal(img.Pix, pixels2x2) {
		t.Fatalf("expected trailing 12 bytes, got %v", img.Pix)
	}
}

func TestDecodeToleratesHeaderWhitespace(t *testing.T) {
	headers := []string{
		"P6\r\n2 2\r\n255\r\n",
		"P6 \n  2\t2  \n255\n",
		"P6\n\n2 2\n\n255\n",
		"P6\n# created by a test\n2 2\n# depth\n255\n",
		// Extra bytes after the header are ignored; pixels anchor at the end.
		"P6\n2 2\n255\n\n\n",
	}
	for _, hdr := range headers {
		img, err := Decode(withPixels(hdr))
		if err != nil {
			t.Fatalf("Decode(%q): %v", hdr, err)
		}
		if img.Width != 2 || img.Height != 2 {
			t.Fatalf("Decode(%q): expected 2x2, got %dx%d", hdr, img.Width, img.Height)
		}
		if !bytes.Equal(img.Pix, pixels2x2) {
			t.Fatalf("Decode(%q): expected trailing 12 bytes, got %v", hdr, img.Pix)
		}
	}
}

func TestDecodePixelsMayContainNewlines(t *testing.T) {
	pix := []byte{'\n', '\n', '\n', '#', ' ', '\r'}
	img, err := Decode(append([]byte("P6\n2 1\n255\n"), pix...))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(img.Pix, pix) {
		t.Fatalf("expected %v, got %v", pix, img.Pix)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrBadMagic},
		{"ascii variant", withPixels("P3\n2 2\n255\n"), ErrBadMagic},
		{"garbage", []byte("\x89PNG\r\n\x1a\n"), ErrBadMagic},
		{"missing dimension line", []byte("P6"), ErrBadDimensions},
		{"missing dimension line after newline", []byte("P6\n"), ErrBadDimensions},
		{"one dimension", withPixels("P6\n2\n255\n"), ErrBadDimensions},
		{"three dimensions", withPixels("P6\n2 2 2\n255\n"), ErrBadDimensions},
		{"negative width", withPixels("P6\n-2 2\n255\n"), ErrBadDimensions},
		{"non-numeric height", withPixels("P6\n2 x\n255\n"), ErrBadDimensions},
		{"huge", withPixels("P6\n4294967295 4294967295\n255\n"), ErrBadDimensions},
		{"maxval 128", withPixels("P6\n2 2\n128\n"), ErrUnsupportedMaxVal},
		{"maxval 65535", withPixels("P6\n2 2\n65535\n"), ErrUnsupportedMaxVal},
		{"maxval missing", []byte("P6\n2 2\n"), ErrUnsupportedMaxVal},
		{"maxval garbage", withPixels("P6\n2 2\nff\n"), ErrUnsupportedMaxVal},
		{"short pixel data", []byte("P6\n2 2\n255\n\x01\x02\x03"), ErrTruncated},
	}
	for _, tc := range cases {
		img, err := Decode(tc.data)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		if img != nil {
			t.Fatalf("%s: expected nil image on error", tc.name)
		}
	}
}

func TestDecodeZeroSize(t *testing.T) {
	img, err := Decode([]byte("P6\n0 0\n255\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Width != 0 || img.Height != 0 || len(img.Pix) != 0 {
		t.Fatalf("expected empty image, got %dx%d with %d bytes", img.Width, img.Height, len(img.Pix))
	}
}

func TestEncodeDecode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, &Image{Width: 2, Height: 2, Pix: pixels2x2}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("P6\n2 2\n255\n")) {
		t.Fatalf("unexpected header: %q", buf.Bytes()[:11])
	}
	img, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(img.Pix, pixels2x2) {
		t.Fatalf("expected pixels to survive, got %v", img.Pix)
	}
}

func TestEncodeRejectsMismatchedPixels(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, &Image{Width: 2, Height: 2, Pix: pixels2x2[:9]}); err == nil {
		t.Fatal("expected error for short pixel data")
	}
	if buf.Len() != 0 {
		t.Fatal("expected nothing written")
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.SetNRGBA(5, 5, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	src.SetNRGBA(6, 5, color.NRGBA{R: 4, G: 5, B: 6, A: 128})
	img := FromImage(src)
	if img.Width != 2 || img.Height != 1 {
		t.Fatalf("expected 2x1, got %dx%d", img.Width, img.Height)
	}
	want := []byte{1, 2, 3, 4, 5, 6}
	if !bytes.Equal(img.Pix, want) {
		t.Fatalf("expected %v, got %v", want, img.Pix)
	}
}

func FuzzDecode(f *testing.F) {
	f.Add(withPixels("P6\n2 2\n255\n"))
	f.Add([]byte("P6\n2 2\n128\n"))
	f.Add([]byte("P6\n# c\n1 1\n255\n\x00\x00\x00"))
	f.Add([]byte("P6\n99999 99999\n255\n"))
	f.Fuzz(func(t *testing.T, data []byte) {
		img, err := Decode(data)
		if err != nil {
			return
		}
		if len(img.Pix) != img.Width*img.Height*3 {
			t.Fatalf("decoded %dx%d with %d pixel bytes", img.Width, img.Height, len(img.Pix))
		}
	})
}
