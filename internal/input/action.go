// Package input turns raw key presses into a per-frame set of held logical actions.
package input

import "strings"

// Action is a logical player command.
type Action uint8

const (
	MoveLeft Action = iota
	MoveRight
	MoveUp
	MoveDown
	Fire
	Pause
	Restart
	Start
	Quit

	actionCount
)

var actionNames = [actionCount]string{
	MoveLeft:  "moveLeft",
	MoveRight: "moveRight",
	MoveUp:    "moveUp",
	MoveDown:  "moveDown",
	Fire:      "fire",
	Pause:     "pause",
	Restart:   "restart",
	Start:     "start",
	Quit:      "quit",
}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// Set is the snapshot of actions held during one frame.
type Set uint16

// NewSet returns a set holding the given actions.
func NewSet(actions ...Action) Set {
	var s Set
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}

// Has reports whether a is held.
func (s Set) Has(a Action) bool {
	return a < actionCount && s&(1<<a) != 0
}

// With returns s with a held.
func (s Set) With(a Action) Set {
	if a >= actionCount {
		return s
	}
	return s | 1<<a
}

// Without returns s with a released.
func (s Set) Without(a Action) Set {
	if a >= actionCount {
		return s
	}
	return s &^ (1 << a)
}

// PressedSince returns the actions held in s but not in prev (rising edges).
func (s Set) PressedSince(prev Set) Set {
	return s &^ prev
}

func (s Set) String() string {
	var names []string
	for a := Action(0); a < actionCount; a++ {
		if s.Has(a) {
			names = append(names, a.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}
