package loop

import (
	"github.com/tomz197/neonraid/internal/effect"
	"github.com/tomz197/neonraid/internal/object"
)

// checkCollisions resolves every hit of the frame against the pre-removal
// state, then compacts the store.
func (g *Game) checkCollisions() {
	g.checkProjectileAdversaryCollisions()
	g.checkPlayerCollisions()
	g.store.Compact()
}

// checkProjectileAdversaryCollisions lets each player projectile kill at most
// one adversary; the first adversary in store order wins.
func (g *Game) checkProjectileAdversaryCollisions() {
	for _, p := range g.store.Projectiles {
		if p.IsDestroyed() || p.Owner != object.OwnerPlayer {
			continue
		}
		pb := p.Bounds()
		for _, a := range g.store.Adversaries {
			if a.IsDestroyed() {
				continue
			}
			if pb.Overlaps(a.Bounds()) {
				p.MarkDestroyed()
				a.MarkDestroyed()
				g.session.AddScore(g.tuning.Scoring.KillScore)

				x, y := a.Center()
				g.spawnExplosion(x, y, a.Color)
				g.effects.Play(effect.Explosion)
				break
			}
		}
	}
}

// checkPlayerCollisions costs the player at most one life per frame.
func (g *Game) checkPlayerCollisions() {
	player := g.store.Player
	if player == nil || g.session.Phase() != PhaseRunning {
		return
	}
	pb := player.Bounds()

	for _, a := range g.store.Adversaries {
		if a.IsDestroyed() {
			continue
		}
		if pb.Overlaps(a.Bounds()) {
			a.MarkDestroyed()

			ax, ay := a.Center()
			px, py := player.Center()
			g.spawnExplosion(ax, ay, a.Color)
			g.spawnExplosion(px, py, player.Color)
			g.effects.Play(effect.Explosion)

			if g.session.LoseLife() {
				g.logger.Debug("game over", "score", g.session.Score(), "elapsed", g.session.Elapsed())
			}
			return
		}
	}
}

// spawnExplosion queues a particle burst at (x, y).
func (g *Game) spawnExplosion(x, y float64, color string) {
	object.SpawnExplosion(x, y, color, g.tuning.Particle.Count, g.tuning.Particle, g.rng, g.store)
}
