// Package assets holds images compiled into the binary.
package assets

import _ "embed"

// Splash is the P6 pixmap shown on the menu confirmation screen.
// Regenerate with cmd/mkppm.
//
//go:embed splash.ppm
var Splash []byte
