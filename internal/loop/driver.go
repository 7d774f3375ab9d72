package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/neonraid/internal/input"
)

// Renderer draws a frame. It must not modify the snapshot.
type Renderer interface {
	Render(Snapshot) error
}

// InputSource reports the actions held at poll time.
type InputSource interface {
	Poll() input.Set
}

// Clock supplies frame timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// DriverOptions configures a driver.
type DriverOptions struct {
	Clock       Clock         // Defaults to SystemClock
	FrameTime   time.Duration // Ticker period for Run; defaults to the tuning's loop FPS
	IdleTimeout time.Duration // Quit after this long without input; zero disables
	Logger      *log.Logger
}

// Driver feeds one game with input and time, and renders every frame.
type Driver struct {
	game     *Game
	input    InputSource
	renderer Renderer
	clock    Clock
	logger   *log.Logger

	frameTime   time.Duration
	idleTimeout time.Duration

	last         time.Time
	hasLast      bool
	prev         input.Set
	lastActivity time.Time
	snap         Snapshot
}

// NewDriver wires a game to its input source and renderer.
func NewDriver(game *Game, in InputSource, r Renderer, opts DriverOptions) *Driver {
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	frameTime := opts.FrameTime
	if frameTime <= 0 {
		frameTime = game.tuning.Loop.FrameTime()
	}
	return &Driver{
		game:        game,
		input:       in,
		renderer:    r,
		clock:       clock,
		logger:      logger,
		frameTime:   frameTime,
		idleTimeout: opts.IdleTimeout,
	}
}

// Game returns the driven game.
func (d *Driver) Game() *Game {
	return d.game
}

// Tick runs one frame at now: Input → Update → Draw.
// Returns quit when the player asked to leave or went idle for too long.
func (d *Driver) Tick(now time.Time) (quit bool) {
	held := d.poll()
	if held.Has(input.Quit) {
		return true
	}

	if held != 0 || d.lastActivity.IsZero() {
		d.lastActivity = now
	} else if d.idleTimeout > 0 && now.Sub(d.lastActivity) > d.idleTimeout {
		d.logger.Info("disconnecting idle player", "idle", now.Sub(d.lastActivity))
		return true
	}

	pressed := held.PressedSince(d.prev)
	d.prev = held
	if d.applyCommands(pressed) {
		// Fresh run: time spent before it does not count, and the key
		// that started it must not also steer or fire.
		d.hasLast = false
		d.resetInput()
		held = 0
	}

	var dt time.Duration
	if d.hasLast {
		dt = now.Sub(d.last)
	}
	d.last = now
	d.hasLast = true

	if d.game.Phase() != PhasePaused && d.game.Phase() != PhaseIdle {
		d.game.Update(dt, held)
	}

	d.render()
	return false
}

// resettable is implemented by input sources that can forget held keys.
type resettable interface {
	Reset()
}

func (d *Driver) resetInput() {
	if r, ok := d.input.(resettable); ok {
		r.Reset()
	}
}

func (d *Driver) poll() input.Set {
	if d.input == nil {
		return 0
	}
	return d.input.Poll()
}

// applyCommands turns freshly pressed command keys into phase changes.
// Returns true when a new run began or a paused one resumed.
func (d *Driver) applyCommands(pressed input.Set) bool {
	g := d.game
	switch {
	case pressed.Has(input.Restart):
		return g.Restart()
	case pressed.Has(input.Pause):
		if g.Phase() == PhasePaused {
			return g.Resume()
		}
		g.Pause()
		return false
	case g.Phase() == PhaseIdle && (pressed.Has(input.Start) || pressed.Has(input.Fire)):
		return g.Start()
	case g.Phase() == PhaseOver && pressed.Has(input.Start):
		return g.Restart()
	}
	return false
}

// render draws the current state. Failures are logged and the loop goes on.
func (d *Driver) render() {
	if d.renderer == nil {
		return
	}
	d.game.SnapshotInto(&d.snap)
	if err := d.renderer.Render(d.snap); err != nil {
		d.logger.Warn("render failed", "err", err)
	}
}

// Run ticks at the configured frame rate until ctx is cancelled or the
// player quits.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.frameTime)
	defer ticker.Stop()

	if d.Tick(d.clock.Now()) {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if d.Tick(d.clock.Now()) {
				return nil
			}
		}
	}
}
