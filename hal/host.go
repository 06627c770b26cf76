//go:build !tinygo

package hal

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"sync"
)

// HostConfig sizes the host's simulated video mode.
type HostConfig struct {
	Width  int
	Height int
}

const (
	defaultHostWidth  = 800
	defaultHostHeight = 600
)

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	rng    hostRNG
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	if cfg.Width <= 0 {
		cfg.Width = defaultHostWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHostHeight
	}
	return &hostHAL{
		logger: &hostLogger{w: os.Stdout},
		fb:     newHostFramebuffer(cfg.Width, cfg.Height),
		kbd:    newHostKeyboard(),
		rng:    hostRNG{r: rand.Reader},
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return h.fb }
func (h *hostHAL) Input() Input     { return h.kbd }
func (h *hostHAL) RNG() RNG         { return h.rng }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostRNG struct {
	r io.Reader
}

func (g hostRNG) Fill(p []byte) error {
	if _, err := io.ReadFull(g.r, p); err != nil {
		return fmt.Errorf("hal: rng: %w", err)
	}
	return nil
}
