package main

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"bootmenu/bootos/fit"
	"bootmenu/bootos/ppm"
	"bootmenu/hal"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

func main() {
	var (
		inPath   = flag.String("in", "", "Input image (png, jpeg, gif, bmp, webp).")
		outPath  = flag.String("out", "", "Output .ppm file.")
		size     = flag.String("size", "", "Letterbox the image into WxH before writing.")
		infoPath = flag.String("info", "", "Print the header of a .ppm file.")
		fitTo    = flag.String("fit", "", "With -info: print the placement on a WxH screen.")
		anchor   = flag.String("anchor", "center", "center|topleft.")
		inverse  = flag.Bool("inverse", false, "Use inverse nearest-neighbour mapping.")
	)
	flag.Parse()

	opts := fit.Options{}
	switch strings.ToLower(*anchor) {
	case "center":
		opts.Anchor = fit.AnchorCenter
	case "topleft":
		opts.Anchor = fit.AnchorTopLeft
	default:
		fatalf("unknown anchor: %s", *anchor)
	}
	if *inverse {
		opts.Mapping = fit.MappingInverse
	}

	switch {
	case *infoPath != "":
		if err := info(os.Stdout, *infoPath, *fitTo, opts.Anchor); err != nil {
			fatalf("info: %v", err)
		}
	case *inPath != "" && *outPath != "":
		if err := convert(*inPath, *outPath, *size, opts); err != nil {
			fatalf("convert: %v", err)
		}
	default:
		fatalf("usage: mkppm -in in.png -out out.ppm [-size WxH] [-anchor center|topleft] [-inverse]\n       mkppm -info in.ppm [-fit WxH] [-anchor center|topleft]")
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func parseSize(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WxH", s)
	}
	if w, err = strconv.Atoi(ws); err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("size %q: bad width", s)
	}
	if h, err = strconv.Atoi(hs); err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("size %q: bad height", s)
	}
	return w, h, nil
}

func convert(inPath, outPath, size string, opts fit.Options) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	src, format, err := image.Decode(bufio.NewReader(in))
	if err != nil {
		return err
	}
	img := ppm.FromImage(src)

	if size != "" {
		w, h, err := parseSize(size)
		if err != nil {
			return err
		}
		img = letterbox(img, w, h, opts)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := ppm.Encode(out, img); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Printf("%s %dx%d -> %s %dx%d\n", format, src.Bounds().Dx(), src.Bounds().Dy(), outPath, img.Width, img.Height)
	return nil
}

// letterbox scales img onto a black w×h canvas.
func letterbox(img *ppm.Image, w, h int, opts fit.Options) *ppm.Image {
	dst := &canvas{img: &ppm.Image{Width: w, Height: h, Pix: make([]byte, w*h*3)}}
	fit.Blit(dst, img, opts)
	return dst.img
}

// canvas lets the fitter draw into a pixmap.
type canvas struct {
	img *ppm.Image
}

func (c *canvas) Width() int  { return c.img.Width }
func (c *canvas) Height() int { return c.img.Height }

func (c *canvas) Set(x, y int, p hal.BltPixel) {
	if x < 0 || y < 0 || x >= c.img.Width || y >= c.img.Height {
		return
	}
	i := (y*c.img.Width + x) * 3
	c.img.Pix[i], c.img.Pix[i+1], c.img.Pix[i+2] = p.Red, p.Green, p.Blue
}

func info(out io.Writer, path, fitTo string, anchor fit.Anchor) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	img, err := ppm.Decode(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %s %dx%d maxval %d, %d pixel bytes\n", path, ppm.Magic, img.Width, img.Height, ppm.MaxVal, len(img.Pix))

	if fitTo == "" {
		return nil
	}
	w, h, err := parseSize(fitTo)
	if err != nil {
		return err
	}
	g := fit.Compute(w, h, img.Width, img.Height, anchor)
	fw, fh := g.Footprint(img.Width, img.Height)
	fmt.Fprintf(out, "fit %dx%d: scale %.4f, offset (%d,%d), footprint %dx%d\n",
		w, h, g.Scale, g.OffsetX, g.OffsetY, fw, fh)
	return nil
}
