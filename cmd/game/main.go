package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/tomz197/neonraid/internal/audio"
	"github.com/tomz197/neonraid/internal/config"
	"github.com/tomz197/neonraid/internal/draw"
	"github.com/tomz197/neonraid/internal/input"
	"github.com/tomz197/neonraid/internal/loop"
	"github.com/tomz197/neonraid/internal/tui"
)

// envConfig holds the process settings read from the environment.
type envConfig struct {
	Logging    config.LoggingConfig
	TuningPath string `env:"NEONRAID_TUNING"`
}

type options struct {
	ansi    bool
	noGrid  bool
	noSound bool
	tuning  string
}

func main() {
	var opts options
	flag.BoolVar(&opts.ansi, "ansi", false, "draw with raw ANSI escapes instead of tcell")
	flag.BoolVar(&opts.noGrid, "no-grid", false, "hide the background grid")
	flag.BoolVar(&opts.noSound, "mute", false, "disable sound")
	flag.StringVar(&opts.tuning, "config", "", "gameplay tuning file (.toml, .yaml)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	var env envConfig
	if err := config.ParseEnv(&env); err != nil {
		return err
	}
	if opts.tuning == "" {
		opts.tuning = env.TuningPath
	}

	tuning := config.Defaults()
	if opts.tuning != "" {
		loaded, err := config.Load(opts.tuning)
		if err != nil {
			return err
		}
		tuning = loaded
	}
	if opts.noSound {
		tuning.Audio.Enabled = false
	}

	// The terminal belongs to the game, so logs go to a file or nowhere.
	logOut := io.Discard
	if env.Logging.File != "" {
		f, err := os.OpenFile(env.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := config.NewLogger(env.Logging, logOut)
	if err != nil {
		return err
	}

	sound := audio.New(tuning.Audio, logger)
	defer sound.Close()

	game := loop.NewGame(tuning, loop.Options{Effects: sound, Logger: logger})
	logger.Info("starting", "ansi", opts.ansi, "sound", sound.Enabled())

	var in loop.InputSource
	var renderer loop.Renderer
	if opts.ansi {
		fd := int(os.Stdin.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("enable raw mode: %w", err)
		}
		defer func() {
			_ = term.Restore(fd, oldState)
		}()

		r := draw.NewTerminalRenderer(os.Stdout, game.Field(), draw.RendererOptions{NoGrid: opts.noGrid})
		r.Begin()
		defer r.End()
		in, renderer = input.StartStream(os.Stdin), r
	} else {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("init screen: %w", err)
		}
		defer screen.Fini()
		screen.HideCursor()

		in, renderer = tui.NewInput(screen), tui.NewRenderer(screen, game.Field(), opts.noGrid)
	}

	driver := loop.NewDriver(game, in, renderer, loop.DriverOptions{Logger: logger})
	err = driver.Run(ctx)
	logger.Info("finished", "score", game.Session().Score())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
