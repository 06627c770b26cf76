package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"bootmenu/bootos/surface"
	"bootmenu/bootos/text"
	"bootmenu/hal"
)

// showPanic logs a recovered panic and draws it on the screen.
// surf may be nil if the panic happened before the surface existed.
func showPanic(h hal.HAL, log hal.Logger, surf *surface.Surface, v any, stack []byte) {
	log.WriteLineString(fmt.Sprintf("app: panic: %v", v))
	for _, line := range stackLines(stack) {
		log.WriteLineString(line)
	}

	disp := h.Display()
	if disp == nil {
		return
	}
	if surf == nil {
		mode := disp.Mode()
		s, err := surface.New(mode.Width, mode.Height)
		if err != nil {
			return
		}
		surf = s
	}

	lines := []string{"bootmenu panic:", fmt.Sprintf("panic: %v", v)}
	if st := stackLines(stack); len(st) > 0 {
		lines = append(lines, "stack:")
		lines = append(lines, st...)
	} else {
		lines = append(lines, "stack: unavailable")
	}

	if err := drawPanic(surf, lines); err != nil {
		log.WriteLineString("app: panic screen: " + err.Error())
		return
	}
	if err := surf.PresentFull(disp); err != nil {
		log.WriteLineString("app: panic screen: " + err.Error())
	}
}

func stackLines(stack []byte) []string {
	var out []string
	for _, line := range strings.Split(string(stack), "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			out = append(out, strings.ReplaceAll(line, "\t", "  "))
		}
	}
	return out
}

// drawPanic writes lines black on white, wrapping at the screen width and
// stopping at the bottom edge.
func drawPanic(surf *surface.Surface, lines []string) error {
	surf.Clear(hal.RGB(255, 255, 255))

	lineH := text.LineHeight()
	charW := text.Width("0")
	if lineH <= 0 || charW <= 0 {
		return nil
	}
	cols := surf.Width() / charW
	if cols <= 0 {
		cols = 1
	}

	fg := color.RGBA{A: 255}
	y := lineH
	for _, line := range lines {
		for {
			if y > surf.Height() {
				return nil
			}
			chunk, rest := takeRunes(line, cols)
			if err := text.Draw(surf, 0, y, chunk, fg, text.AlignLeft); err != nil {
				return err
			}
			y += lineH
			line = strings.TrimLeft(rest, " ")
			if line == "" {
				break
			}
		}
	}
	return nil
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
