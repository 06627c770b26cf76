//go:build !tinygo

package hal

import (
	"fmt"
	"image"
	"sync"
)

// hostFramebuffer is the host's video memory. Blits land here; the window
// or headless runner snapshots it.
type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	vram   []BltPixel
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{
		width:  width,
		height: height,
		vram:   make([]BltPixel, width*height),
	}
}

func (f *hostFramebuffer) Mode() Mode { return Mode{Width: f.width, Height: f.height} }

func (f *hostFramebuffer) Blit(op BlitOp) error {
	if op.Width < 0 || op.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrInvalidBlit, op.Width, op.Height)
	}
	if op.Width == 0 || op.Height == 0 {
		return nil
	}
	if op.DestX < 0 || op.DestY < 0 || op.DestX+op.Width > f.width || op.DestY+op.Height > f.height {
		return fmt.Errorf("%w: dest %dx%d at (%d,%d) outside %dx%d",
			ErrInvalidBlit, op.Width, op.Height, op.DestX, op.DestY, f.width, f.height)
	}

	srcX, srcY, stride := 0, 0, op.Width
	if !op.Src.Full {
		srcX, srcY, stride = op.Src.X, op.Src.Y, op.Src.Stride
	}
	if srcX < 0 || srcY < 0 || stride < srcX+op.Width {
		return fmt.Errorf("%w: source region (%d,%d) stride %d", ErrInvalidBlit, srcX, srcY, stride)
	}
	if (srcY+op.Height-1)*stride+srcX+op.Width > len(op.Buffer) {
		return fmt.Errorf("%w: source buffer too small (%d pixels)", ErrInvalidBlit, len(op.Buffer))
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for row := 0; row < op.Height; row++ {
		src := (srcY+row)*stride + srcX
		dst := (op.DestY+row)*f.width + op.DestX
		copy(f.vram[dst:dst+op.Width], op.Buffer[src:src+op.Width])
	}
	return nil
}

func (f *hostFramebuffer) snapshotRGBA(dst *image.RGBA) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copyToRGBA(dst, f.vram)
}

func (f *hostFramebuffer) image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	f.snapshotRGBA(img)
	return img
}
