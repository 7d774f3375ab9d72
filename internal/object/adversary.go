package object

import "github.com/tomz197/neonraid/internal/physics"

// Adversary is an enemy craft descending towards the bottom edge.
type Adversary struct {
	X, Y      float64 // Top-left corner
	W, H      float64
	Speed     float64 // Downward units per second
	Hue       float64 // Color seed in degrees
	Color     string
	destroyed bool
}

// NewAdversary creates an adversary; its color is derived from hue.
func NewAdversary(x, y, w, h, speed, hue float64) *Adversary {
	return &Adversary{
		X:     x,
		Y:     y,
		W:     w,
		H:     h,
		Speed: speed,
		Hue:   hue,
		Color: NeonColor(hue, adversaryLightness),
	}
}

// MarkDestroyed marks the adversary for removal.
func (a *Adversary) MarkDestroyed() {
	a.destroyed = true
}

// IsDestroyed returns true if the adversary is marked for destruction.
func (a *Adversary) IsDestroyed() bool {
	return a.destroyed
}

// Bounds returns the collision box.
func (a *Adversary) Bounds() physics.Rect {
	return physics.Rect{X: a.X, Y: a.Y, W: a.W, H: a.H}
}

// Center returns the middle of the adversary.
func (a *Adversary) Center() (float64, float64) {
	return a.Bounds().Center()
}

// OutOfBounds reports whether the adversary is fully below the playfield.
func (a *Adversary) OutOfBounds(field Playfield) bool {
	return a.Y > field.Height
}

// Update moves the adversary down. Returns true once it has left the playfield.
func (a *Adversary) Update(ctx UpdateContext) bool {
	a.Y += a.Speed * seconds(ctx.Delta)
	return a.OutOfBounds(ctx.Field)
}
