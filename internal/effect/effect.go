// Package effect defines the fire-and-forget presentation cues the simulation
// emits (sounds today) and a guard that keeps faulty players from affecting it.
package effect

import "github.com/charmbracelet/log"

// Kind identifies a cue.
type Kind uint8

const (
	Shoot Kind = iota
	Explosion
)

func (k Kind) String() string {
	switch k {
	case Shoot:
		return "shoot"
	case Explosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// Player plays cues. Implementations must not block the caller.
type Player interface {
	Play(kind Kind)
}

// Nop discards every cue.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Kind) {}

// Safe wraps p so a panicking player is logged and swallowed.
// A nil p yields Nop.
func Safe(p Player, logger *log.Logger) Player {
	if p == nil {
		return Nop{}
	}
	if _, ok := p.(*safePlayer); ok {
		return p
	}
	return &safePlayer{next: p, logger: logger}
}

type safePlayer struct {
	next   Player
	logger *log.Logger
}

func (s *safePlayer) Play(kind Kind) {
	defer func() {
		if r := recover(); r != nil && s.logger != nil {
			s.logger.Warn("effect player failed", "effect", kind, "panic", r)
		}
	}()
	s.next.Play(kind)
}
