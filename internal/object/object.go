// Package object defines the simulated entities, their motion and culling
// rules, and the spawners that create them.
package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/neonraid/internal/effect"
	"github.com/tomz197/neonraid/internal/input"
	"github.com/tomz197/neonraid/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Entity)
}

// Playfield is the bounded plane entities move on. Origin is the top-left corner.
type Playfield struct {
	Width  float64
	Height float64
}

// Bounds returns the playfield as a rectangle.
func (p Playfield) Bounds() physics.Rect {
	return physics.Rect{W: p.Width, H: p.Height}
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Input   input.Set
	Field   Playfield
	Spawner Spawner
	Effects effect.Player
	Rand    *rand.Rand
}

// Entity is anything the store can own.
type Entity interface {
	Bounds() physics.Rect
	Destructible
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal at the end of the current frame.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj any) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// Owner tags who fired a projectile.
type Owner uint8

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

// seconds converts a frame delta to seconds, treating negative deltas as zero.
func seconds(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return d.Seconds()
}

// uniform returns a value in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
