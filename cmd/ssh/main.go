package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/neonraid/internal/config"
	"github.com/tomz197/neonraid/internal/draw"
	"github.com/tomz197/neonraid/internal/input"
	"github.com/tomz197/neonraid/internal/loop"
)

// serverConfig holds the SSH server settings read from the environment.
type serverConfig struct {
	Host        string        `env:"SSH_HOST" envDefault:"::"`
	Port        string        `env:"SSH_PORT" envDefault:"2222"`
	HostKeyPath string        `env:"SSH_HOST_KEY" envDefault:"/app/keys/host_key"`
	IdleTimeout time.Duration `env:"SSH_IDLE_TIMEOUT" envDefault:"2m"` // Disconnect players without input
	TuningPath  string        `env:"NEONRAID_TUNING"`
	Logging     config.LoggingConfig
}

func main() {
	var cfg serverConfig
	if err := config.ParseEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Logging, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	tuning := config.Defaults()
	if cfg.TuningPath != "" {
		if tuning, err = config.Load(cfg.TuningPath); err != nil {
			logger.Fatal("failed to load tuning", "err", err)
		}
	}
	// Sound would play on the server, not on the player's machine.
	tuning.Audio.Enabled = false

	logger.Info("ssh config", "host", cfg.Host, "port", cfg.Port, "host_key", cfg.HostKeyPath, "idle_timeout", cfg.IdleTimeout)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithMiddleware(
			gameMiddleware(tuning, cfg.IdleTimeout, logger),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if cfg.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting ssh server", "addr", s.Addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed, closing connections", "err", err)
		_ = s.Close()
	}
}

// gameMiddleware runs one independent game per PTY session.
func gameMiddleware(tuning config.Tuning, idleTimeout time.Duration, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			sessLogger := logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
			sessLogger.Info("new game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			game := loop.NewGame(tuning, loop.Options{Logger: sessLogger})
			renderer := draw.NewTerminalRenderer(sess, game.Field(), draw.RendererOptions{
				TermSizeFunc: sizeTracker.getSize,
				Subtitle:     "Playing as " + sess.User(),
			})
			driver := loop.NewDriver(game, input.StartStream(sess), renderer, loop.DriverOptions{
				IdleTimeout: idleTimeout,
				Logger:      sessLogger,
			})

			renderer.Begin()
			err := driver.Run(sess.Context())
			renderer.End()
			if err != nil && !errors.Is(err, context.Canceled) {
				sessLogger.Error("game error", "err", err)
			}

			sessLogger.Info("session ended", "score", game.Session().Score())
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
