// Package config loads the host runner configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"bootmenu/bootos/fit"
	"bootmenu/bootos/menu"
	"bootmenu/hal"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultScale  = 1
	DefaultHz     = 60
	DefaultMargin = 20.0
	DefaultHold   = 10 * time.Second
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Headless HeadlessConfig `yaml:"headless"`
	Menu     MenuConfig     `yaml:"menu"`
	Fit      FitConfig      `yaml:"fit"`
	Hold     time.Duration  `yaml:"hold"`
	Chaos    ChaosConfig    `yaml:"chaos"`
}

type DisplayConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Scale  int `yaml:"scale"`
}

type HeadlessConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Hz         int      `yaml:"hz"`
	Ticks      uint64   `yaml:"ticks"`
	Keys       []string `yaml:"keys"`
	KeyEvery   int      `yaml:"key_every"`
	Screenshot string   `yaml:"screenshot"`
}

type MenuConfig struct {
	X       int      `yaml:"x"`
	Y       int      `yaml:"y"`
	Stride  int      `yaml:"stride"`
	Options []string `yaml:"options"`
}

type FitConfig struct {
	Mapping string `yaml:"mapping"`
	Anchor  string `yaml:"anchor"`
}

type ChaosConfig struct {
	Margin float64 `yaml:"margin"`
}

func Default() *Config {
	l := menu.DefaultLayout()
	return &Config{
		Display: DisplayConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Scale:  DefaultScale,
		},
		Headless: HeadlessConfig{
			Hz:       DefaultHz,
			KeyEvery: 1,
		},
		Menu: MenuConfig{
			X:      l.X,
			Y:      l.Y,
			Stride: l.Stride,
		},
		Fit: FitConfig{
			Mapping: "forward",
			Anchor:  "center",
		},
		Hold:  DefaultHold,
		Chaos: ChaosConfig{Margin: DefaultMargin},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Display.Width <= 0 || c.Display.Height <= 0:
		return fmt.Errorf("%w: display size %dx%d", ErrInvalid, c.Display.Width, c.Display.Height)
	case c.Display.Scale <= 0:
		return fmt.Errorf("%w: display scale %d", ErrInvalid, c.Display.Scale)
	case c.Headless.Hz <= 0:
		return fmt.Errorf("%w: headless hz %d", ErrInvalid, c.Headless.Hz)
	case c.Headless.KeyEvery <= 0:
		return fmt.Errorf("%w: headless key_every %d", ErrInvalid, c.Headless.KeyEvery)
	case c.Menu.Stride <= 0:
		return fmt.Errorf("%w: menu stride %d", ErrInvalid, c.Menu.Stride)
	case c.Chaos.Margin < 0:
		return fmt.Errorf("%w: chaos margin %g", ErrInvalid, c.Chaos.Margin)
	}
	if _, err := ParseKeys(c.Headless.Keys); err != nil {
		return err
	}
	if _, err := c.Options(); err != nil {
		return err
	}
	if _, err := c.FitOptions(); err != nil {
		return err
	}
	return nil
}

// Layout returns the default menu layout moved to the configured position.
func (c *Config) Layout() menu.Layout {
	l := menu.DefaultLayout()
	l.X, l.Y, l.Stride = c.Menu.X, c.Menu.Y, c.Menu.Stride
	return l
}

// Options returns the configured menu entries; nil means the defaults.
func (c *Config) Options() ([]menu.Option, error) {
	if len(c.Menu.Options) == 0 {
		return nil, nil
	}
	out := make([]menu.Option, 0, len(c.Menu.Options))
	for _, name := range c.Menu.Options {
		o, err := menu.ParseOption(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		out = append(out, o)
	}
	return out, nil
}

func (c *Config) FitOptions() (fit.Options, error) {
	var o fit.Options
	switch strings.ToLower(c.Fit.Mapping) {
	case "", "forward":
		o.Mapping = fit.MappingForward
	case "inverse":
		o.Mapping = fit.MappingInverse
	default:
		return o, fmt.Errorf("%w: fit mapping %q", ErrInvalid, c.Fit.Mapping)
	}
	switch strings.ToLower(c.Fit.Anchor) {
	case "", "center":
		o.Anchor = fit.AnchorCenter
	case "topleft", "top-left":
		o.Anchor = fit.AnchorTopLeft
	default:
		return o, fmt.Errorf("%w: fit anchor %q", ErrInvalid, c.Fit.Anchor)
	}
	return o, nil
}

// ParseKeys turns key names into scripted key events. Names are up, down,
// left, right, enter, esc or escape, space, or any single character.
func ParseKeys(names []string) ([]hal.Key, error) {
	keys := make([]hal.Key, 0, len(names))
	for _, name := range names {
		k, err := parseKey(name)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func parseKey(name string) (hal.Key, error) {
	switch strings.ToLower(name) {
	case "up":
		return hal.Special(hal.KeyUp), nil
	case "down":
		return hal.Special(hal.KeyDown), nil
	case "left":
		return hal.Special(hal.KeyLeft), nil
	case "right":
		return hal.Special(hal.KeyRight), nil
	case "enter", "return":
		return hal.Char('\r'), nil
	case "esc", "escape":
		return hal.Special(hal.KeyEscape), nil
	case "space":
		return hal.Char(' '), nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return hal.Char(r), nil
	}
	return hal.Key{}, fmt.Errorf("%w: key %q", ErrInvalid, name)
}
