// Package app wires the boot menu and the chaos demo to a HAL.
package app

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"bootmenu/bootos/assets"
	"bootmenu/bootos/chaos"
	"bootmenu/bootos/console"
	"bootmenu/bootos/fit"
	"bootmenu/bootos/menu"
	"bootmenu/bootos/surface"
	"bootmenu/hal"
	"bootmenu/internal/buildinfo"
)

// DefaultHold is how long the confirmation screen stays up.
const DefaultHold = 10 * time.Second

// Config selects what the menu session shows.
type Config struct {
	Options []menu.Option

	// Image is the P6 pixmap for the confirmation screen; nil uses assets.Splash.
	Image  []byte
	Layout menu.Layout
	Fit    fit.Options

	// Hold is the confirmation delay. Zero means DefaultHold, negative skips it.
	Hold time.Duration
}

// ChaosConfig configures the fractal demo.
type ChaosConfig struct {
	Margin float64
}

// Session is a boot program running on its own goroutine.
// The host frame loop polls Step; the caller collects the outcome with Wait.
type Session struct {
	done chan struct{}

	mu  sync.Mutex
	res menu.Result
	err error
}

func newSession() *Session {
	return &Session{done: make(chan struct{})}
}

// Start runs the menu session until an option is chosen or ctx is done.
func Start(ctx context.Context, h hal.HAL, cfg Config) *Session {
	s := newSession()
	go s.run(h, func(surf *surface.Surface, log hal.Logger) (menu.Result, error) {
		return runMenu(ctx, h, surf, log, cfg)
	})
	return s
}

// StartChaos runs the chaos game until ctx is done.
func StartChaos(ctx context.Context, h hal.HAL, cfg ChaosConfig) *Session {
	s := newSession()
	go s.run(h, func(surf *surface.Surface, log hal.Logger) (menu.Result, error) {
		log.WriteLineString("app: starting chaos game")
		r := chaos.New(surf, h.Display(), h.RNG(), chaos.Options{Margin: cfg.Margin})
		err := r.Run(ctx)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		return menu.Result{}, err
	})
	return s
}

// Step reports whether the session is still running. It returns
// hal.ErrStopped after a clean finish and the session error otherwise.
func (s *Session) Step() error {
	select {
	case <-s.done:
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.err != nil {
			return s.err
		}
		return hal.ErrStopped
	default:
		return nil
	}
}

// Done is closed when the session finishes.
func (s *Session) Done() <-chan struct{} { return s.done }

// Wait blocks until the session finishes.
func (s *Session) Wait() (menu.Result, error) {
	<-s.done
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.res, s.err
}

func (s *Session) finish(res menu.Result, err error) {
	s.mu.Lock()
	s.res, s.err = res, err
	s.mu.Unlock()
	close(s.done)
}

func (s *Session) run(h hal.HAL, body func(*surface.Surface, hal.Logger) (menu.Result, error)) {
	log := h.Logger()
	if log == nil {
		log = hal.DiscardLogger
	}

	var surf *surface.Surface
	defer func() {
		if v := recover(); v != nil {
			err := fmt.Errorf("app: panic: %v", v)
			showPanic(h, log, surf, v, debug.Stack())
			s.finish(menu.Result{}, err)
		}
	}()

	disp := h.Display()
	if disp == nil {
		s.finish(menu.Result{}, errors.New("app: no display"))
		return
	}
	mode := disp.Mode()
	var err error
	surf, err = surface.New(mode.Width, mode.Height)
	if err != nil {
		s.finish(menu.Result{}, fmt.Errorf("app: %w", err))
		return
	}

	con := console.New(surf, disp)
	boot := hal.MultiLogger(log, con)
	boot.WriteLineString("bootmenu online (" + buildinfo.Short() + ")")
	if err := con.Err(); err != nil {
		s.finish(menu.Result{}, fmt.Errorf("app: banner: %w", err))
		return
	}

	res, err := body(surf, boot)
	s.finish(res, err)
}

func runMenu(ctx context.Context, h hal.HAL, surf *surface.Surface, boot hal.Logger, cfg Config) (menu.Result, error) {
	boot.WriteLineString("Loading menu...")

	img := cfg.Image
	if img == nil {
		img = assets.Splash
	}
	log := h.Logger()
	m, err := menu.New(menu.Config{
		Surface: surf,
		Display: h.Display(),
		Input:   h.Input(),
		Logger:  log,
		Options: cfg.Options,
		Image:   img,
		Layout:  cfg.Layout,
		Fit:     cfg.Fit,
	})
	if err != nil {
		return menu.Result{}, fmt.Errorf("app: %w", err)
	}

	res, err := m.Run(ctx)
	if err != nil {
		return res, err
	}
	if log != nil {
		log.WriteLineString(selectionMessage(res.Choice))
	}

	hold(ctx, cfg.Hold)
	return res, nil
}

func selectionMessage(o menu.Option) string {
	switch o {
	case menu.Option1, menu.Option2, menu.Option3:
		return o.String() + " selected!"
	default:
		panic(fmt.Sprintf("app: unknown option %d", o))
	}
}

func hold(ctx context.Context, d time.Duration) {
	if d < 0 {
		return
	}
	if d == 0 {
		d = DefaultHold
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
