package loop

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/neonraid/internal/config"
	"github.com/tomz197/neonraid/internal/input"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

// scriptedInput returns the queued sets in order, then nothing.
type scriptedInput struct {
	sets []input.Set
}

func (s *scriptedInput) Poll() input.Set {
	if len(s.sets) == 0 {
		return 0
	}
	next := s.sets[0]
	s.sets = s.sets[1:]
	return next
}

func (s *scriptedInput) Push(sets ...input.Set) {
	s.sets = append(s.sets, sets...)
}

type recordingRenderer struct {
	frames []Snapshot
	err    error
}

func (r *recordingRenderer) Render(s Snapshot) error {
	r.frames = append(r.frames, s)
	return r.err
}

func (r *recordingRenderer) last() Snapshot {
	return r.frames[len(r.frames)-1]
}

func newTestDriver(t *testing.T) (*Driver, *scriptedInput, *recordingRenderer, *fakeClock) {
	t.Helper()
	tuning := config.Defaults()
	tuning.Spawner.Interval = time.Hour
	g := NewGame(tuning, Options{Rand: rand.New(rand.NewSource(1))})
	in := &scriptedInput{}
	r := &recordingRenderer{}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	d := NewDriver(g, in, r, DriverOptions{Clock: clock})
	return d, in, r, clock
}

func TestDriverRendersWhileIdle(t *testing.T) {
	d, _, r, clock := newTestDriver(t)
	for i := 0; i < 3; i++ {
		if d.Tick(clock.Advance(frame)) {
			t.Fatal("driver quit without quit input")
		}
	}
	if len(r.frames) != 3 {
		t.Fatalf("rendered %d frames, want 3", len(r.frames))
	}
	if r.last().Phase != PhaseIdle {
		t.Fatalf("phase = %v, want idle", r.last().Phase)
	}
}

func TestDriverStartsOnFireAndResetsDelta(t *testing.T) {
	d, in, r, clock := newTestDriver(t)
	d.Tick(clock.Advance(frame))

	// Long wait on the title screen must not leak into the first frame.
	clock.Advance(5 * time.Second)
	in.Push(input.NewSet(input.Fire))
	d.Tick(clock.Now())
	if r.last().Phase != PhaseRunning {
		t.Fatalf("phase = %v, want running", r.last().Phase)
	}
	if n := len(r.last().Projectiles); n != 0 {
		t.Fatalf("start key also fired %d projectiles", n)
	}
	startX := r.last().Player.X

	in.Push(input.NewSet(input.MoveRight))
	d.Tick(clock.Advance(frame))

	moved := r.last().Player.X - startX
	if math.Abs(moved-300*frame.Seconds()) > 1e-9 {
		t.Fatalf("player moved %v, want %v", moved, 300*frame.Seconds())
	}
}

func TestDriverPauseToggleOnEdge(t *testing.T) {
	d, in, r, clock := newTestDriver(t)
	in.Push(input.NewSet(input.Start))
	d.Tick(clock.Advance(frame))

	pause := input.NewSet(input.Pause)
	in.Push(pause, pause, pause)
	for i := 0; i < 3; i++ {
		d.Tick(clock.Advance(frame))
		if r.last().Phase != PhasePaused {
			t.Fatalf("tick %d: phase = %v, want paused while key held", i, r.last().Phase)
		}
	}

	in.Push(0, pause)
	d.Tick(clock.Advance(frame))
	d.Tick(clock.Advance(frame))
	if r.last().Phase != PhaseRunning {
		t.Fatalf("phase = %v, want running after second press", r.last().Phase)
	}
}

func TestDriverDoesNotSimulateWhilePaused(t *testing.T) {
	d, in, r, clock := newTestDriver(t)
	in.Push(input.NewSet(input.Start))
	d.Tick(clock.Advance(frame))
	in.Push(input.NewSet(input.Pause))
	d.Tick(clock.Advance(frame))

	x := r.last().Player.X
	in.Push(input.NewSet(input.MoveLeft), input.NewSet(input.MoveLeft))
	d.Tick(clock.Advance(frame))
	d.Tick(clock.Advance(frame))

	if r.last().Player.X != x {
		t.Fatal("player moved while paused")
	}
	if r.last().Phase != PhasePaused {
		t.Fatalf("phase = %v, want paused", r.last().Phase)
	}
}

func TestDriverRestartFromOver(t *testing.T) {
	d, in, r, clock := newTestDriver(t)
	in.Push(input.NewSet(input.Start))
	d.Tick(clock.Advance(frame))
	d.Tick(clock.Advance(frame)) // release

	g := d.Game()
	g.session.score = 300
	g.session.lives = 0
	g.session.phase = PhaseOver

	in.Push(input.NewSet(input.Start))
	d.Tick(clock.Advance(frame))

	if s := r.last(); s.Phase != PhaseRunning || s.Score != 0 || s.Lives != 3 {
		t.Fatalf("after restart: phase=%v score=%d lives=%d", s.Phase, s.Score, s.Lives)
	}
}

func TestDriverRestartKey(t *testing.T) {
	d, in, r, clock := newTestDriver(t)
	in.Push(input.NewSet(input.Restart))
	d.Tick(clock.Advance(frame))
	if r.last().Phase != PhaseRunning {
		t.Fatalf("restart from idle: phase = %v, want running", r.last().Phase)
	}
}

func TestDriverQuit(t *testing.T) {
	d, in, r, clock := newTestDriver(t)
	in.Push(input.NewSet(input.Quit))
	if !d.Tick(clock.Advance(frame)) {
		t.Fatal("Tick() = false on quit")
	}
	if len(r.frames) != 0 {
		t.Fatalf("rendered %d frames after quit", len(r.frames))
	}
}

func TestDriverSurvivesRenderErrors(t *testing.T) {
	d, _, r, clock := newTestDriver(t)
	r.err = errors.New("broken pipe")
	for i := 0; i < 3; i++ {
		if d.Tick(clock.Advance(frame)) {
			t.Fatal("render error stopped the driver")
		}
	}
	if len(r.frames) != 3 {
		t.Fatalf("rendered %d frames, want 3", len(r.frames))
	}
}

func TestDriverIdleTimeout(t *testing.T) {
	tuning := config.Defaults()
	g := NewGame(tuning, Options{})
	in := &scriptedInput{}
	clock := &fakeClock{now: time.Unix(0, 0)}
	d := NewDriver(g, in, nil, DriverOptions{Clock: clock, IdleTimeout: time.Minute})

	if d.Tick(clock.Now()) {
		t.Fatal("quit on the first tick")
	}
	in.Push(input.NewSet(input.MoveLeft))
	if d.Tick(clock.Advance(50 * time.Second)) {
		t.Fatal("quit while the player is active")
	}
	if d.Tick(clock.Advance(50 * time.Second)) {
		t.Fatal("quit before the timeout")
	}
	if !d.Tick(clock.Advance(11 * time.Second)) {
		t.Fatal("idle player was not disconnected")
	}
}

func TestDriverRunStopsOnCancel(t *testing.T) {
	d, _, _, _ := newTestDriver(t)
	d.clock = SystemClock{}
	d.frameTime = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestDriverRunStopsOnQuit(t *testing.T) {
	d, in, _, _ := newTestDriver(t)
	d.clock = SystemClock{}
	d.frameTime = time.Millisecond
	in.Push(0, 0, input.NewSet(input.Quit))

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Phase
		want     bool
	}{
		{PhaseIdle, PhaseRunning, true},
		{PhaseIdle, PhasePaused, false},
		{PhaseIdle, PhaseOver, false},
		{PhaseRunning, PhasePaused, true},
		{PhaseRunning, PhaseOver, true},
		{PhaseRunning, PhaseRunning, true},
		{PhasePaused, PhaseRunning, true},
		{PhasePaused, PhaseOver, false},
		{PhaseOver, PhaseRunning, true},
		{PhaseOver, PhasePaused, false},
		{PhaseOver, PhaseIdle, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestSessionIgnoresChangesUnlessRunning(t *testing.T) {
	s := NewSession(2)
	s.AddScore(100)
	if s.LoseLife() || s.Score() != 0 || s.Lives() != 2 {
		t.Fatalf("idle session changed: score=%d lives=%d", s.Score(), s.Lives())
	}

	s.transition(PhaseRunning)
	s.AddScore(100)
	s.AddScore(-50)
	if s.Score() != 100 {
		t.Fatalf("score = %d, want 100", s.Score())
	}
	if s.LoseLife() {
		t.Fatal("first life lost ended the game")
	}
	if !s.LoseLife() || s.Phase() != PhaseOver {
		t.Fatalf("last life lost: phase = %v, want over", s.Phase())
	}
	if s.LoseLife() || s.Lives() != 0 {
		t.Fatalf("lives = %d after game over", s.Lives())
	}
}
