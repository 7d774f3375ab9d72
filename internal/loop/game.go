// Package loop runs the simulation: the entity store, the session state
// machine, collision resolution and the per-frame driver.
package loop

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/neonraid/internal/config"
	"github.com/tomz197/neonraid/internal/effect"
	"github.com/tomz197/neonraid/internal/input"
	"github.com/tomz197/neonraid/internal/object"
)

// Options configures the collaborators of a game.
type Options struct {
	Rand    *rand.Rand    // Source for spawns and explosions; seeded from the clock when nil
	Effects effect.Player // Sound effects; silent when nil
	Logger  *log.Logger   // Discards when nil
}

// Game is one single-player session: its entities, its score and lives,
// and the rules that advance them.
type Game struct {
	tuning  config.Tuning
	field   object.Playfield
	store   *Store
	session *Session
	spawner *object.AdversarySpawner
	effects effect.Player
	rng     *rand.Rand
	logger  *log.Logger

	fresh bool // Next update is the first after start or resume
}

// NewGame creates an idle game.
func NewGame(tuning config.Tuning, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	field := object.Playfield{Width: tuning.Playfield.Width, Height: tuning.Playfield.Height}
	return &Game{
		tuning:  tuning,
		field:   field,
		store:   NewStore(object.NewPlayer(tuning.Player, tuning.Projectile, field)),
		session: NewSession(tuning.Player.InitialLives),
		spawner: object.NewAdversarySpawner(tuning.Adversary, tuning.Spawner),
		effects: effect.Safe(opts.Effects, logger),
		rng:     rng,
		logger:  logger,
	}
}

// Phase returns the current run-state.
func (g *Game) Phase() Phase {
	return g.session.Phase()
}

// Session exposes score, lives and elapsed time.
func (g *Game) Session() *Session {
	return g.session
}

// Store exposes the entities.
func (g *Game) Store() *Store {
	return g.store
}

// Field returns the playfield bounds.
func (g *Game) Field() object.Playfield {
	return g.field
}

// Start leaves the title screen. From over it behaves like Restart.
// Returns false when the game is already running or paused.
func (g *Game) Start() bool {
	switch g.session.Phase() {
	case PhaseIdle:
		g.reset()
		g.session.transition(PhaseRunning)
		g.fresh = true
		g.logger.Debug("game started")
		return true
	case PhaseOver:
		return g.Restart()
	default:
		return false
	}
}

// Pause freezes a running game. A no-op in any other phase.
func (g *Game) Pause() bool {
	if g.session.Phase() != PhaseRunning {
		return false
	}
	g.session.transition(PhasePaused)
	g.logger.Debug("game paused", "score", g.session.Score())
	return true
}

// Resume continues a paused game. A no-op in any other phase.
func (g *Game) Resume() bool {
	if g.session.Phase() != PhasePaused {
		return false
	}
	g.session.transition(PhaseRunning)
	g.fresh = true
	g.logger.Debug("game resumed")
	return true
}

// TogglePause switches between running and paused.
func (g *Game) TogglePause() bool {
	if g.session.Phase() == PhasePaused {
		return g.Resume()
	}
	return g.Pause()
}

// Restart clears every entity, restores score and lives, repositions the
// player and runs. From idle it behaves like Start.
func (g *Game) Restart() bool {
	if g.session.Phase() == PhaseIdle {
		return g.Start()
	}
	if !CanTransition(g.session.Phase(), PhaseRunning) {
		return false
	}
	g.reset()
	g.session.transition(PhaseRunning)
	g.fresh = true
	g.logger.Debug("game restarted")
	return true
}

// reset restores the initial world.
func (g *Game) reset() {
	g.store.Clear()
	g.store.Player.Reset(g.field)
	g.spawner.Reset()
	g.session.reset()
}

// Update advances the simulation by dt. dt is clamped to [0, MaxFrameDelta]
// and treated as zero on the first update after start or resume.
// Outside the running phase only leftover particles keep fading on the
// game over screen; idle and paused are no-ops.
func (g *Game) Update(dt time.Duration, in input.Set) {
	dt = g.clampDelta(dt)

	switch g.session.Phase() {
	case PhaseRunning:
		if g.fresh {
			dt = 0
			g.fresh = false
		}
		g.updateRunning(dt, in)
	case PhaseOver:
		g.updateOver(dt)
	}
}

func (g *Game) clampDelta(dt time.Duration) time.Duration {
	if dt < 0 {
		return 0
	}
	if limit := g.tuning.Loop.MaxFrameDelta; limit > 0 && dt > limit {
		return limit
	}
	return dt
}

func (g *Game) updateContext(dt time.Duration, in input.Set) object.UpdateContext {
	return object.UpdateContext{
		Delta:   dt,
		Input:   in,
		Field:   g.field,
		Spawner: g.store,
		Effects: g.effects,
		Rand:    g.rng,
	}
}

// updateRunning is one frame of gameplay: motion, spawning, collisions, removal.
func (g *Game) updateRunning(dt time.Duration, in input.Set) {
	ctx := g.updateContext(dt, in)
	g.session.advance(dt)

	g.store.Player.Update(ctx)
	g.updateEntities(ctx)

	g.spawner.Update(ctx)
	g.store.FlushSpawned()

	g.checkCollisions()

	// Explosion particles requested by collisions
	g.store.FlushSpawned()
}

// updateOver lets explosion particles finish after the last life is lost.
func (g *Game) updateOver(dt time.Duration) {
	ctx := g.updateContext(dt, 0)
	for _, p := range g.store.Particles {
		if p.Update(ctx) {
			p.MarkDestroyed()
		}
	}
	g.store.Compact()
	g.store.FlushSpawned()
}

// updateEntities moves every entity and marks the ones that left the playfield.
func (g *Game) updateEntities(ctx object.UpdateContext) {
	for _, p := range g.store.Projectiles {
		if p.Update(ctx) {
			p.MarkDestroyed()
		}
	}
	for _, a := range g.store.Adversaries {
		if a.Update(ctx) {
			a.MarkDestroyed()
		}
	}
	for _, p := range g.store.Particles {
		if p.Update(ctx) {
			p.MarkDestroyed()
		}
	}
}
