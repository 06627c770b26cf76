//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Host HostConfig

	Hz    int
	Ticks uint64

	// Keys are injected one per KeyEvery ticks, starting after the first tick.
	Keys     []Key
	KeyEvery int

	// Screenshot, if set, receives a PNG of the video memory when the runner exits.
	Screenshot string
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.KeyEvery <= 0 {
		cfg.KeyEvery = 1
	}

	h := newHost(cfg.Host)
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	err := runHeadlessLoop(ctx, h, step, cfg, d)
	if cfg.Screenshot != "" {
		if serr := writeScreenshot(h.fb, cfg.Screenshot); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}

func runHeadlessLoop(ctx context.Context, h *hostHAL, step func() error, cfg HeadlessConfig, d time.Duration) error {
	t := time.NewTicker(d)
	defer t.Stop()

	keys := cfg.Keys
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			tick++
			if len(keys) > 0 && tick%uint64(cfg.KeyEvery) == 0 {
				h.kbd.push(keys[0])
				keys = keys[1:]
			}
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrStopped) {
						return nil
					}
					return err
				}
			}
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

func writeScreenshot(fb *hostFramebuffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("hal: screenshot: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, fb.image()); err != nil {
		return fmt.Errorf("hal: screenshot: %w", err)
	}
	return f.Close()
}
