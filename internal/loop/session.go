package loop

import "time"

// Phase is the run-state of a session.
type Phase uint8

const (
	PhaseIdle    Phase = iota // Title screen, nothing simulated yet
	PhaseRunning              // Active gameplay
	PhasePaused               // Frozen, entities untouched
	PhaseOver                 // Lives exhausted, waiting for restart
)

var phaseNames = [...]string{
	PhaseIdle:    "idle",
	PhaseRunning: "running",
	PhasePaused:  "paused",
	PhaseOver:    "over",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// transitions lists every allowed phase change. Running to running is a restart.
var transitions = map[Phase][]Phase{
	PhaseIdle:    {PhaseRunning},
	PhaseRunning: {PhasePaused, PhaseOver, PhaseRunning},
	PhasePaused:  {PhaseRunning},
	PhaseOver:    {PhaseRunning},
}

// CanTransition reports whether a session may move from one phase to another.
func CanTransition(from, to Phase) bool {
	for _, p := range transitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

// Session tracks score, lives and run-state for one player.
type Session struct {
	phase        Phase
	score        int
	lives        int
	initialLives int
	elapsed      time.Duration // Simulated time while running
}

// NewSession creates an idle session.
func NewSession(initialLives int) *Session {
	if initialLives < 1 {
		initialLives = 1
	}
	return &Session{
		phase:        PhaseIdle,
		lives:        initialLives,
		initialLives: initialLives,
	}
}

func (s *Session) Phase() Phase           { return s.phase }
func (s *Session) Score() int             { return s.score }
func (s *Session) Lives() int             { return s.lives }
func (s *Session) Elapsed() time.Duration { return s.elapsed }

// transition moves to the given phase if the table allows it.
func (s *Session) transition(to Phase) bool {
	if !CanTransition(s.phase, to) {
		return false
	}
	s.phase = to
	return true
}

// reset restores score, lives and elapsed time.
func (s *Session) reset() {
	s.score = 0
	s.lives = s.initialLives
	s.elapsed = 0
}

// advance accumulates simulated time while running.
func (s *Session) advance(dt time.Duration) {
	if s.phase == PhaseRunning && dt > 0 {
		s.elapsed += dt
	}
}

// AddScore increases the score. Ignored unless running.
func (s *Session) AddScore(points int) {
	if s.phase != PhaseRunning || points <= 0 {
		return
	}
	s.score += points
}

// LoseLife removes one life. Ignored unless running.
// Returns true when this call ended the game.
func (s *Session) LoseLife() bool {
	if s.phase != PhaseRunning || s.lives <= 0 {
		return false
	}
	s.lives--
	if s.lives == 0 {
		return s.transition(PhaseOver)
	}
	return false
}
