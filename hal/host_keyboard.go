//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var scanCodes = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyHome, KeyHome},
	{ebiten.KeyEnd, KeyEnd},
	{ebiten.KeyDelete, KeyDelete},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyF1, KeyF1},
	{ebiten.KeyF2, KeyF2},
	{ebiten.KeyF3, KeyF3},
}

func (k *hostKeyboard) poll() {
	for _, r := range ebiten.AppendInputChars(nil) {
		k.push(Char(r))
	}

	// Enter and Backspace arrive as control characters, like firmware text input.
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		k.push(Char('\r'))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		k.push(Char('\b'))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		k.push(Char('\t'))
	}

	for _, sc := range scanCodes {
		if inpututil.IsKeyJustPressed(sc.key) {
			k.push(Special(sc.code))
		}
	}
}
