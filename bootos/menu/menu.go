// Package menu is the interactive boot menu: a list of options driven by
// Up/Down, confirmed with Enter and cancelled with Escape.
package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bootmenu/bootos/fit"
	"bootmenu/bootos/ppm"
	"bootmenu/bootos/surface"
	"bootmenu/bootos/text"
	"bootmenu/hal"
)

var ErrNoOptions = errors.New("menu: no options")

// Config holds the capabilities and content of a menu.
type Config struct {
	Surface *surface.Surface
	Display hal.Display
	Input   hal.Input
	Logger  hal.Logger

	// Options defaults to DefaultOptions.
	Options []Option
	// Image is the P6 pixmap shown on the confirmation screen.
	Image []byte

	// Layout defaults to DefaultLayout.
	Layout Layout
	Fit    fit.Options
}

// Controller owns the option list and the current selection.
type Controller struct {
	surf *surface.Surface
	disp hal.Display
	in   hal.Input
	log  hal.Logger

	options  []Option
	selected int
	state    State

	image  []byte
	layout Layout
	fit    fit.Options
}

// New validates cfg and returns a controller with the first option selected.
func New(cfg Config) (*Controller, error) {
	if cfg.Surface == nil || cfg.Display == nil || cfg.Input == nil {
		return nil, errors.New("menu: surface, display and input are required")
	}
	opts := cfg.Options
	if opts == nil {
		opts = DefaultOptions()
	}
	if len(opts) == 0 {
		return nil, ErrNoOptions
	}
	layout := cfg.Layout
	if layout == (Layout{}) {
		layout = DefaultLayout()
	}
	log := cfg.Logger
	if log == nil {
		log = hal.DiscardLogger
	}
	return &Controller{
		surf:    cfg.Surface,
		disp:    cfg.Display,
		in:      cfg.Input,
		log:     log,
		options: append([]Option(nil), opts...),
		image:   cfg.Image,
		layout:  layout,
		fit:     cfg.Fit,
	}, nil
}

func (c *Controller) Selected() int     { return c.selected }
func (c *Controller) State() State      { return c.state }
func (c *Controller) Options() []Option { return c.options }

// HandleKey applies one key event and returns the resulting state.
// Once the controller reached a terminal state further keys are ignored.
func (c *Controller) HandleKey(k hal.Key) State {
	if c.state.Terminal() {
		return c.state
	}
	switch {
	case k.Code == hal.KeyUp:
		if c.selected > 0 {
			c.selected--
		}
	case k.Code == hal.KeyDown:
		if c.selected < len(c.options)-1 {
			c.selected++
		}
	case k.Code == hal.KeyEscape:
		c.selected = 0
		c.state = StateCancelled
	case k.Printable() && k.Rune == '\r':
		c.state = StateSelected
	}
	return c.state
}

// Run draws the menu and handles keys until an option is confirmed or the
// menu is cancelled. Cancelling returns the first option.
//
// Key read errors are shown on screen and the read is retried. A failure to
// present or to build the confirmation screen is returned.
func (c *Controller) Run(ctx context.Context) (Result, error) {
	for !c.state.Terminal() {
		if err := c.render(); err != nil {
			return Result{}, err
		}

		k, ok, err := c.readKey(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Result{}, ctxErr
			}
			c.log.WriteLineString("menu: error reading key: " + err.Error())
			if err := c.renderError(err); err != nil {
				return Result{}, err
			}
			continue
		}
		if !ok {
			continue
		}
		c.HandleKey(k)
	}

	choice := c.options[c.selected]
	if c.state == StateSelected {
		c.log.WriteLineString("menu: selected " + choice.String())
		if err := c.confirm(choice); err != nil {
			return Result{}, err
		}
	} else {
		c.log.WriteLineString("menu: cancelled, defaulting to " + choice.String())
	}
	return Result{Choice: choice, State: c.state}, nil
}

func (c *Controller) readKey(ctx context.Context) (hal.Key, bool, error) {
	if err := c.in.WaitForKey(ctx); err != nil {
		return hal.Key{}, false, err
	}
	return c.in.ReadKey()
}

func (c *Controller) label(i int) string {
	prefix := strings.Repeat(" ", len(c.layout.Marker))
	if i == c.selected {
		prefix = c.layout.Marker
	}
	return prefix + c.options[i].String()
}

func (c *Controller) render() error {
	c.surf.Clear(hal.FromColor(c.layout.Background))
	for i := range c.options {
		y := c.layout.Y + i*c.layout.Stride
		if err := text.Draw(c.surf, c.layout.X, y, c.label(i), c.layout.Foreground, text.AlignLeft); err != nil {
			return fmt.Errorf("menu: draw: %w", err)
		}
	}
	if err := c.surf.PresentFull(c.disp); err != nil {
		return fmt.Errorf("menu: present: %w", err)
	}
	return nil
}

func (c *Controller) renderError(readErr error) error {
	c.surf.Clear(hal.FromColor(c.layout.Background))
	w, h := c.surf.Width(), c.surf.Height()
	msg := "Error: " + readErr.Error()
	if err := text.Draw(c.surf, w/2, h/2, msg, c.layout.Foreground, text.AlignCenter); err != nil {
		return fmt.Errorf("menu: draw: %w", err)
	}
	if err := c.surf.PresentFull(c.disp); err != nil {
		return fmt.Errorf("menu: present: %w", err)
	}
	return nil
}

func (c *Controller) confirm(choice Option) error {
	c.surf.Clear(hal.FromColor(c.layout.Background))

	img, err := ppm.Decode(c.image)
	if err != nil {
		return fmt.Errorf("menu: confirmation image: %w", err)
	}
	fit.Blit(c.surf, img, c.fit)

	w, h := c.surf.Width(), c.surf.Height()
	y := h/2 + int(c.layout.ConfirmDrop*float64(h))
	msg := "You selected: " + choice.String()
	if err := text.Draw(c.surf, w/2, y, msg, c.layout.Accent, text.AlignCenter); err != nil {
		return fmt.Errorf("menu: draw: %w", err)
	}
	if err := c.surf.PresentFull(c.disp); err != nil {
		return fmt.Errorf("menu: present: %w", err)
	}
	return nil
}
