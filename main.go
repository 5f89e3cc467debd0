package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/photonicat/svglock/internal/config"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return buildCLI().ParseAndRun(ctx, os.Args[1:])
}

// canvasFlags are the size of the screen a frame is composed for.
type canvasFlags struct {
	width, height, heightMM int
	displays                string
}

func (c *canvasFlags) register(fs *flag.FlagSet, width, height int) {
	fs.IntVar(&c.width, "width", width, "canvas width in pixels")
	fs.IntVar(&c.height, "height", height, "canvas height in pixels")
	fs.IntVar(&c.heightMM, "height-mm", 0, "physical canvas height in millimeters, 0 for 96 dpi")
	fs.StringVar(&c.displays, "displays", "", "display rectangles as x,y,w,h separated by ';'")
}

func buildCLI() *ffcli.Command {
	// Render command
	var renderCfg config.Config
	var renderCanvas canvasFlags
	renderFlagSet := flag.NewFlagSet("svglock render", flag.ExitOnError)
	renderCfg.Register(renderFlagSet)
	renderCanvas.register(renderFlagSet, 1280, 800)
	renderEvents := renderFlagSet.String("events", "key", "comma separated events replayed before the frame is written")
	renderOut := renderFlagSet.String("out", "frame.png", "output PNG")

	renderCmd := &ffcli.Command{
		Name:       "render",
		ShortUsage: "svglock render [flags]",
		ShortHelp:  "Replay events and write the resulting frame as PNG",
		FlagSet:    renderFlagSet,
		Options:    config.ParseOptions(),
		Exec: func(_ context.Context, _ []string) error {
			return execRender(&renderCfg, renderCanvas, *renderEvents, *renderOut)
		},
	}

	// Preview command
	var previewCfg config.Config
	var previewCanvas canvasFlags
	previewFlagSet := flag.NewFlagSet("svglock preview", flag.ExitOnError)
	previewCfg.Register(previewFlagSet)
	previewCanvas.register(previewFlagSet, 1280, 800)
	previewListen := previewFlagSet.String("listen", ":8082", "HTTP listen address")
	previewFB := previewFlagSet.String("fb", "", "also mirror frames to this framebuffer device, e.g. /dev/fb0")

	previewCmd := &ffcli.Command{
		Name:       "preview",
		ShortUsage: "svglock preview [flags]",
		ShortHelp:  "Serve the lock screen over HTTP and drive it from a browser",
		FlagSet:    previewFlagSet,
		Options:    config.ParseOptions(),
		Exec: func(ctx context.Context, _ []string) error {
			return execPreview(ctx, &previewCfg, previewCanvas, *previewListen, *previewFB)
		},
	}

	// X11 command
	var x11Cfg config.Config
	x11FlagSet := flag.NewFlagSet("svglock x11", flag.ExitOnError)
	x11Cfg.Register(x11FlagSet)
	x11Display := x11FlagSet.String("display", "", "X display, $DISPLAY when empty")
	x11Verify := x11FlagSet.Duration("verify-delay", time.Second, "how long Return shows the verify ring before failing")

	x11Cmd := &ffcli.Command{
		Name:       "x11",
		ShortUsage: "svglock x11 [flags]",
		ShortHelp:  "Cover the X screen and show keystroke feedback",
		LongHelp:   "Keys:\n  any key     highlight the next segment\n  BackSpace   backspace highlight\n  Return      verify, then fail\n  Escape      clear the buffer; on an empty buffer, quit",
		FlagSet:    x11FlagSet,
		Options:    config.ParseOptions(),
		Exec: func(ctx context.Context, _ []string) error {
			return execX11(ctx, &x11Cfg, *x11Display, *x11Verify)
		},
	}

	// Root command
	root := &ffcli.Command{
		ShortUsage:  "svglock <subcommand> [flags]",
		ShortHelp:   "SVG unlock indicator for lock screens",
		FlagSet:     flag.NewFlagSet("svglock", flag.ExitOnError),
		Subcommands: []*ffcli.Command{renderCmd, previewCmd, x11Cmd},
	}
	root.Exec = func(_ context.Context, _ []string) error {
		fmt.Fprintln(os.Stderr, ffcli.DefaultUsageFunc(root))
		return flag.ErrHelp
	}
	return root
}
