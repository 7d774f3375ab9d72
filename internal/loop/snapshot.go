package loop

import (
	"time"

	"github.com/tomz197/neonraid/internal/object"
)

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	Phase   Phase
	Score   int
	Lives   int
	Elapsed time.Duration
	Field   object.Playfield

	Player      object.Player
	Projectiles []object.Projectile
	Adversaries []object.Adversary
	Particles   []object.Particle
}

// Snapshot returns a fresh copy of the current state.
func (g *Game) Snapshot() Snapshot {
	var s Snapshot
	g.SnapshotInto(&s)
	return s
}

// SnapshotInto copies the current state into s, reusing its slices.
func (g *Game) SnapshotInto(s *Snapshot) {
	s.Phase = g.session.Phase()
	s.Score = g.session.Score()
	s.Lives = g.session.Lives()
	s.Elapsed = g.session.Elapsed()
	s.Field = g.field

	if g.store.Player != nil {
		s.Player = *g.store.Player
	}
	s.Projectiles = copyValues(s.Projectiles[:0], g.store.Projectiles)
	s.Adversaries = copyValues(s.Adversaries[:0], g.store.Adversaries)
	s.Particles = copyValues(s.Particles[:0], g.store.Particles)
}

func copyValues[T any](dst []T, src []*T) []T {
	for _, v := range src {
		dst = append(dst, *v)
	}
	return dst
}
