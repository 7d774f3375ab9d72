package object

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/tomz197/neonraid/internal/config"
	"github.com/tomz197/neonraid/internal/physics"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Default particle dynamics, used when a particle is built outside an explosion.
const (
	DefaultParticleDrag = 0.98
	DefaultLifeFrame    = 16 * time.Millisecond
)

// Particle is a short-lived visual effect.
type Particle struct {
	X, Y   float64 // Center
	VX, VY float64 // Velocity in units per second
	Life   float64 // Remaining life, 1 at birth, removed at <= 0
	Decay  float64 // Life lost per reference frame
	Size   float64
	Color  string
	Drag   float64       // Velocity multiplier applied every update
	Frame  time.Duration // Reference frame that Decay is expressed in
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, decay, size float64, color string) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		X:     x,
		Y:     y,
		VX:    vx,
		VY:    vy,
		Life:  1,
		Decay: decay,
		Size:  size,
		Color: color,
		Drag:  DefaultParticleDrag,
		Frame: DefaultLifeFrame,
	}
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// MarkDestroyed ends the particle's life.
func (p *Particle) MarkDestroyed() {
	p.Life = 0
}

// IsDestroyed returns true once the particle has no life left.
func (p *Particle) IsDestroyed() bool {
	return p.Life <= 0
}

// Bounds returns a square of side Size centered on the particle.
func (p *Particle) Bounds() physics.Rect {
	return physics.Rect{X: p.X - p.Size/2, Y: p.Y - p.Size/2, W: p.Size, H: p.Size}
}

// Update moves the particle, drains its life and applies drag.
// Returns true once the particle has faded out.
func (p *Particle) Update(ctx UpdateContext) bool {
	dt := seconds(ctx.Delta)

	p.X += p.VX * dt
	p.Y += p.VY * dt

	frame := p.Frame
	if frame <= 0 {
		frame = DefaultLifeFrame
	}
	p.Life -= p.Decay * (float64(max(ctx.Delta, 0)) / float64(frame))

	p.VX *= p.Drag
	p.VY *= p.Drag

	return p.Life <= 0
}

// SpawnExplosion creates count particles bursting out of (x, y) in random
// directions. An empty color gives every particle its own neon hue.
func SpawnExplosion(x, y float64, color string, count int, cfg config.ParticleConfig, rng *rand.Rand, spawner Spawner) {
	if spawner == nil || rng == nil || !physics.Finite(x) || !physics.Finite(y) {
		return
	}

	drag := cfg.Drag
	if drag <= 0 {
		drag = DefaultParticleDrag
	}

	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := uniform(rng, cfg.MinSpeed, cfg.MaxSpeed)

		c := color
		if c == "" {
			c = NeonColor(uniform(rng, cfg.MinHue, cfg.MaxHue), particleLightness)
		}

		p := NewParticle(
			x, y,
			math.Cos(angle)*speed,
			math.Sin(angle)*speed,
			uniform(rng, cfg.MinDecay, cfg.MaxDecay),
			uniform(rng, cfg.MinSize, cfg.MaxSize),
			c,
		)
		p.Drag = drag
		if cfg.ReferenceFrame > 0 {
			p.Frame = cfg.ReferenceFrame
		}
		spawner.Spawn(p)
	}
}
