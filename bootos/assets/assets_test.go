package assets

import (
	"testing"

	"bootmenu/bootos/ppm"
)

func TestSplashDecodes(t *testing.T) {
	img, err := ppm.Decode(Splash)
	if err != nil {
		t.Fatalf("decode splash: %v", err)
	}
	if img.Width != 96 || img.Height != 64 {
		t.Fatalf("expected 96x64, got %dx%d", img.Width, img.Height)
	}
}
