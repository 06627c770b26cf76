//go:build !tinygo

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"bootmenu/app"
	"bootmenu/hal"
	"bootmenu/internal/buildinfo"
	"bootmenu/internal/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	choiceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7800ff"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666688"))
)

// options are the command-line overrides of the config file.
type options struct {
	configPath string
	headless   bool
	hz         int
	ticks      uint64
	keys       []string
	screenshot string
	width      int
	height     int
	scale      int
	hold       time.Duration
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(&options{}).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:          "bootmenu",
		Short:        "boot menu on a framebuffer",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}
			ac, err := appConfig(cfg)
			if err != nil {
				return err
			}
			return runAndReport(cmd, cfg, func(ctx context.Context, h hal.HAL) *app.Session {
				return app.Start(ctx, h, ac)
			})
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "config file path (yaml)")
	pf.BoolVar(&o.headless, "headless", false, "run without a window")
	pf.IntVar(&o.hz, "hz", config.DefaultHz, "tick rate in headless mode")
	pf.Uint64Var(&o.ticks, "ticks", 0, "stop after N ticks in headless mode (0 = until done)")
	pf.StringSliceVar(&o.keys, "keys", nil, "scripted keys for headless mode (up,down,enter,esc,...)")
	pf.StringVar(&o.screenshot, "screenshot", "", "write a PNG of the screen on exit (headless)")
	pf.IntVar(&o.width, "width", config.DefaultWidth, "display width")
	pf.IntVar(&o.height, "height", config.DefaultHeight, "display height")
	pf.IntVar(&o.scale, "scale", config.DefaultScale, "window scale factor")
	pf.DurationVar(&o.hold, "hold", config.DefaultHold, "how long the confirmation screen stays up (negative skips)")

	chaosCmd := &cobra.Command{
		Use:   "chaos",
		Short: "draw the Sierpinski triangle with the chaos game",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}
			_, err = run(cmd.Context(), cfg, func(ctx context.Context, h hal.HAL) *app.Session {
				return app.StartChaos(ctx, h, app.ChaosConfig{Margin: cfg.Chaos.Margin})
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}

	root.AddCommand(chaosCmd, versionCmd)
	return root
}

// loadConfig reads the config file, if any, and applies the flags the user set.
func loadConfig(cmd *cobra.Command, o *options) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("headless") {
		cfg.Headless.Enabled = o.headless
	}
	if flags.Changed("hz") {
		cfg.Headless.Hz = o.hz
	}
	if flags.Changed("ticks") {
		cfg.Headless.Ticks = o.ticks
	}
	if flags.Changed("keys") {
		cfg.Headless.Keys = o.keys
	}
	if flags.Changed("screenshot") {
		cfg.Headless.Screenshot = o.screenshot
	}
	if flags.Changed("width") {
		cfg.Display.Width = o.width
	}
	if flags.Changed("height") {
		cfg.Display.Height = o.height
	}
	if flags.Changed("scale") {
		cfg.Display.Scale = o.scale
	}
	if flags.Changed("hold") {
		cfg.Hold = o.hold
	}
	return cfg, cfg.Validate()
}

func appConfig(cfg *config.Config) (app.Config, error) {
	opts, err := cfg.Options()
	if err != nil {
		return app.Config{}, err
	}
	fo, err := cfg.FitOptions()
	if err != nil {
		return app.Config{}, err
	}
	return app.Config{
		Options: opts,
		Layout:  cfg.Layout(),
		Fit:     fo,
		Hold:    cfg.Hold,
	}, nil
}

// run hosts a session in a window or headless and returns it once the host
// loop exits. The session context is cancelled before returning.
func run(ctx context.Context, cfg *config.Config, start func(context.Context, hal.HAL) *app.Session) (*app.Session, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	host := hal.HostConfig{Width: cfg.Display.Width, Height: cfg.Display.Height}
	var sess *app.Session
	newApp := func(h hal.HAL) func() error {
		sess = start(ctx, h)
		return sess.Step
	}

	if !cfg.Headless.Enabled {
		err := hal.RunWindow(host, cfg.Display.Scale, newApp)
		return sess, err
	}

	keys, err := config.ParseKeys(cfg.Headless.Keys)
	if err != nil {
		return nil, err
	}
	err = hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
		Host:       host,
		Hz:         cfg.Headless.Hz,
		Ticks:      cfg.Headless.Ticks,
		Keys:       keys,
		KeyEvery:   cfg.Headless.KeyEvery,
		Screenshot: cfg.Headless.Screenshot,
	})
	return sess, err
}

func runAndReport(cmd *cobra.Command, cfg *config.Config, start func(context.Context, hal.HAL) *app.Session) error {
	sess, err := run(cmd.Context(), cfg, start)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	out := cmd.OutOrStdout()
	if sess == nil {
		fmt.Fprintln(out, mutedStyle.Render("no selection"))
		return nil
	}
	res, err := sess.Wait()
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, mutedStyle.Render("no selection"))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, mutedStyle.Render(res.State.String()+":"), choiceStyle.Render(res.Choice.String()))
	return nil
}
