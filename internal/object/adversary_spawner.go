package object

import (
	"time"

	"github.com/tomz197/neonraid/internal/config"
	"github.com/tomz197/neonraid/internal/physics"
)

// AdversarySpawner releases one adversary every interval of simulated time.
type AdversarySpawner struct {
	adversary config.AdversaryConfig
	interval  time.Duration
	maxBurst  int
	topOffset float64
	elapsed   time.Duration
}

// NewAdversarySpawner creates a fixed-interval spawner.
func NewAdversarySpawner(adv config.AdversaryConfig, cfg config.SpawnerConfig) *AdversarySpawner {
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Second
	}
	maxBurst := cfg.MaxPerUpdate
	if maxBurst < 1 {
		maxBurst = 1
	}
	return &AdversarySpawner{
		adversary: adv,
		interval:  interval,
		maxBurst:  maxBurst,
		topOffset: cfg.TopOffset,
	}
}

// Reset restarts the interval timer.
func (s *AdversarySpawner) Reset() {
	s.elapsed = 0
}

// Elapsed returns the time accumulated towards the next spawn.
func (s *AdversarySpawner) Elapsed() time.Duration {
	return s.elapsed
}

// Update accumulates ctx.Delta and spawns when the interval is reached.
// A single huge delta spawns at most maxBurst adversaries; the excess is dropped.
// Returns the number of adversaries spawned.
func (s *AdversarySpawner) Update(ctx UpdateContext) int {
	if ctx.Delta > 0 {
		s.elapsed += ctx.Delta
	}

	spawned := 0
	for s.elapsed >= s.interval && spawned < s.maxBurst {
		s.elapsed -= s.interval
		if ctx.Spawner != nil && ctx.Rand != nil {
			ctx.Spawner.Spawn(s.newAdversary(ctx))
			spawned++
		}
	}
	if s.elapsed >= s.interval {
		s.elapsed %= s.interval
	}
	return spawned
}

// newAdversary places an adversary at a random x just above the visible top edge.
func (s *AdversarySpawner) newAdversary(ctx UpdateContext) *Adversary {
	w, h := s.adversary.Width, s.adversary.Height
	maxX := ctx.Field.Width - w
	if maxX < 0 {
		maxX = 0
	}
	x := physics.Clamp(ctx.Rand.Float64()*maxX, 0, maxX)
	y := -h - s.topOffset
	speed := uniform(ctx.Rand, s.adversary.MinSpeed, s.adversary.MaxSpeed)
	hue := uniform(ctx.Rand, s.adversary.MinHue, s.adversary.MaxHue)
	return NewAdversary(x, y, w, h, speed, hue)
}
