package input

import "time"

// DefaultHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report presses (and auto-repeats), never releases.
const DefaultHoldDuration = 30 * time.Millisecond

// Tracker records the last time each action was pressed so that key
// combinations arriving in different frames still read as held together.
type Tracker struct {
	hold time.Duration
	last [actionCount]time.Time
}

// NewTracker creates a tracker with the given hold window.
func NewTracker(hold time.Duration) *Tracker {
	if hold <= 0 {
		hold = DefaultHoldDuration
	}
	return &Tracker{hold: hold}
}

// Press marks a as pressed at now.
func (t *Tracker) Press(a Action, now time.Time) {
	if a < actionCount {
		t.last[a] = now
	}
}

// Held returns every action pressed within the hold window before now.
func (t *Tracker) Held(now time.Time) Set {
	var s Set
	for a := Action(0); a < actionCount; a++ {
		if !t.last[a].IsZero() && now.Sub(t.last[a]) < t.hold {
			s = s.With(a)
		}
	}
	return s
}

// Reset forgets all presses, e.g. so the key that started a game does not
// also fire on the first frame.
func (t *Tracker) Reset() {
	t.last = [actionCount]time.Time{}
}
