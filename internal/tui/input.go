package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/neonraid/internal/input"
	"github.com/tomz197/neonraid/internal/loop"
)

// holdDuration is how long a key reads as held after its last key event.
// tcell, like the raw terminal, reports presses and auto-repeats only.
const holdDuration = 120 * time.Millisecond

// Input turns tcell key events into held actions.
type Input struct {
	screen  tcell.Screen
	events  chan tcell.Event
	tracker *input.Tracker
	now     func() time.Time
}

// NewInput starts a goroutine that forwards screen events until the screen
// is finalized.
func NewInput(screen tcell.Screen) *Input {
	in := &Input{
		screen:  screen,
		events:  make(chan tcell.Event, 128),
		tracker: input.NewTracker(holdDuration),
		now:     time.Now,
	}
	go forward(screen.PollEvent, in.events)
	return in
}

// forward copies events from poll into events until poll returns nil, then
// closes events. Events arriving while the buffer is full are dropped so the
// goroutine still ends when nobody polls anymore.
func forward(poll func() tcell.Event, events chan<- tcell.Event) {
	for {
		ev := poll()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		default:
		}
	}
}

// Poll drains pending events (non-blocking) and returns the held actions.
// Once the screen is finalized Poll reports Quit.
func (in *Input) Poll() input.Set {
	now := in.now()
	closed := false

drain:
	for {
		select {
		case ev, ok := <-in.events:
			if !ok {
				closed = true
				break drain
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if a, ok := keyAction(ev); ok {
					in.tracker.Press(a, now)
				}
			case *tcell.EventResize:
				in.screen.Sync()
			}
		default:
			break drain
		}
	}

	held := in.tracker.Held(now)
	if closed {
		held = held.With(input.Quit)
	}
	return held
}

// Reset forgets held keys.
func (in *Input) Reset() {
	in.tracker.Reset()
}

// keyAction maps a key event to its action.
func keyAction(ev *tcell.EventKey) (input.Action, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return input.MoveLeft, true
	case tcell.KeyRight:
		return input.MoveRight, true
	case tcell.KeyUp:
		return input.MoveUp, true
	case tcell.KeyDown:
		return input.MoveDown, true
	case tcell.KeyEnter:
		return input.Start, true
	case tcell.KeyEscape:
		return input.Pause, true
	case tcell.KeyCtrlC:
		return input.Quit, true
	case tcell.KeyRune:
		return input.RuneAction(ev.Rune())
	}
	return 0, false
}

var _ loop.InputSource = (*Input)(nil)
