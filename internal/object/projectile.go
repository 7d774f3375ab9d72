package object

import "github.com/tomz197/neonraid/internal/physics"

// Projectile is a bullet travelling in a straight line.
type Projectile struct {
	X, Y      float64 // Top-left corner
	W, H      float64
	VX, VY    float64 // Velocity in units per second
	Owner     Owner   // Who fired it
	Color     string
	destroyed bool
}

// NewProjectile creates a projectile with the given box and velocity.
func NewProjectile(x, y, w, h, vx, vy float64, owner Owner) *Projectile {
	return &Projectile{X: x, Y: y, W: w, H: h, VX: vx, VY: vy, Owner: owner}
}

// MarkDestroyed marks the projectile for removal.
func (p *Projectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the projectile is marked for destruction.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed
}

// Bounds returns the collision box.
func (p *Projectile) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// OutOfBounds reports whether the projectile is fully above the top or fully
// below the bottom of the playfield.
func (p *Projectile) OutOfBounds(field Playfield) bool {
	return p.Y+p.H < 0 || p.Y > field.Height
}

// Update moves the projectile. Returns true once it has left the playfield.
func (p *Projectile) Update(ctx UpdateContext) bool {
	dt := seconds(ctx.Delta)
	p.X += p.VX * dt
	p.Y += p.VY * dt
	return p.OutOfBounds(ctx.Field)
}
