package object

import (
	"time"

	"github.com/tomz197/neonraid/internal/config"
	"github.com/tomz197/neonraid/internal/effect"
	"github.com/tomz197/neonraid/internal/input"
	"github.com/tomz197/neonraid/internal/physics"
)

// Player is the player-controlled craft.
type Player struct {
	X, Y  float64 // Top-left corner
	W, H  float64
	Speed float64 // Units per second along each held direction
	Color string

	FireRate     time.Duration // Minimum time between shots
	fireCooldown time.Duration // Time until next shot allowed

	bottomMargin float64
	projectile   config.ProjectileConfig
}

// NewPlayer creates the craft at its spawn point.
func NewPlayer(cfg config.PlayerConfig, proj config.ProjectileConfig, field Playfield) *Player {
	p := &Player{
		W:            cfg.Width,
		H:            cfg.Height,
		Speed:        cfg.Speed,
		Color:        cfg.Color,
		FireRate:     cfg.FireCooldown,
		bottomMargin: cfg.BottomMargin,
		projectile:   proj,
	}
	p.Reset(field)
	return p
}

// SpawnPoint returns the default top-left position: horizontally centered,
// bottomMargin above the bottom edge.
func (p *Player) SpawnPoint(field Playfield) (float64, float64) {
	x := (field.Width - p.W) / 2
	y := field.Height - p.H - p.bottomMargin
	return physics.Clamp(x, 0, field.Width-p.W), physics.Clamp(y, 0, field.Height-p.H)
}

// Reset moves the craft back to its spawn point and clears the fire cooldown.
func (p *Player) Reset(field Playfield) {
	p.X, p.Y = p.SpawnPoint(field)
	p.fireCooldown = 0
}

// Bounds returns the collision box.
func (p *Player) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Center returns the middle of the craft.
func (p *Player) Center() (float64, float64) {
	return p.Bounds().Center()
}

// Cooldown returns the time left until the next shot is allowed.
func (p *Player) Cooldown() time.Duration {
	return p.fireCooldown
}

// Update handles movement, clamping to the playfield, and shooting.
func (p *Player) Update(ctx UpdateContext) {
	dt := seconds(ctx.Delta)

	var dx, dy float64
	if ctx.Input.Has(input.MoveLeft) {
		dx--
	}
	if ctx.Input.Has(input.MoveRight) {
		dx++
	}
	if ctx.Input.Has(input.MoveUp) {
		dy--
	}
	if ctx.Input.Has(input.MoveDown) {
		dy++
	}

	p.X = physics.Clamp(p.X+dx*p.Speed*dt, 0, ctx.Field.Width-p.W)
	p.Y = physics.Clamp(p.Y+dy*p.Speed*dt, 0, ctx.Field.Height-p.H)

	// Shooting
	if p.fireCooldown > 0 {
		p.fireCooldown -= ctx.Delta
		if p.fireCooldown < 0 {
			p.fireCooldown = 0
		}
	}
	if ctx.Input.Has(input.Fire) && p.fireCooldown <= 0 && ctx.Spawner != nil {
		p.fireCooldown = p.FireRate

		// Spawn projectile from the nose of the craft
		pw, ph := p.projectile.Width, p.projectile.Height
		proj := NewProjectile(p.X+p.W/2-pw/2, p.Y-ph, pw, ph, 0, -p.projectile.Speed, OwnerPlayer)
		proj.Color = p.projectile.Color
		ctx.Spawner.Spawn(proj)

		if ctx.Effects != nil {
			ctx.Effects.Play(effect.Shoot)
		}
	}
}
