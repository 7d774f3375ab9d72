package loop

import "github.com/tomz197/neonraid/internal/object"

// Store owns every entity of a session in ordered, typed collections.
// Entities requested mid-update are queued and inserted by FlushSpawned.
type Store struct {
	Player      *object.Player
	Projectiles []*object.Projectile
	Adversaries []*object.Adversary
	Particles   []*object.Particle

	toSpawn []object.Entity
}

// NewStore creates an empty store for the given player.
func NewStore(player *object.Player) *Store {
	return &Store{Player: player}
}

// Spawn queues an entity to be added after the current pass.
// Implements object.Spawner interface.
func (s *Store) Spawn(obj object.Entity) {
	if obj == nil {
		return
	}
	s.toSpawn = append(s.toSpawn, obj)
}

// Pending returns the number of queued entities.
func (s *Store) Pending() int {
	return len(s.toSpawn)
}

// FlushSpawned appends all queued entities to their collections and clears the queue.
func (s *Store) FlushSpawned() {
	for _, obj := range s.toSpawn {
		switch o := obj.(type) {
		case *object.Projectile:
			s.Projectiles = append(s.Projectiles, o)
		case *object.Adversary:
			s.Adversaries = append(s.Adversaries, o)
		case *object.Particle:
			s.Particles = append(s.Particles, o)
		}
	}
	clear(s.toSpawn)
	s.toSpawn = s.toSpawn[:0]
}

// Compact removes every entity marked destroyed, preserving order.
// Removed particles go back to their pool.
func (s *Store) Compact() {
	s.Projectiles = compact(s.Projectiles)
	s.Adversaries = compact(s.Adversaries)
	s.Particles = compact(s.Particles)
}

// Clear drops every projectile, adversary and particle, queued ones included.
func (s *Store) Clear() {
	for _, p := range s.Particles {
		p.Release()
	}
	for _, obj := range s.toSpawn {
		object.ReleaseObject(obj)
	}
	clear(s.Projectiles)
	clear(s.Adversaries)
	clear(s.Particles)
	clear(s.toSpawn)
	s.Projectiles = s.Projectiles[:0]
	s.Adversaries = s.Adversaries[:0]
	s.Particles = s.Particles[:0]
	s.toSpawn = s.toSpawn[:0]
}

// Len returns the number of live entities, the player excluded.
func (s *Store) Len() int {
	return len(s.Projectiles) + len(s.Adversaries) + len(s.Particles)
}

// compact keeps the live entries of items in place.
func compact[T object.Entity](items []T) []T {
	kept := items[:0] // reuse backing array
	for _, obj := range items {
		if obj.IsDestroyed() {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	var zero T
	for i := len(kept); i < len(items); i++ {
		items[i] = zero
	}
	return kept
}
