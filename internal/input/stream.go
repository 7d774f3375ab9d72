package input

import (
	"bufio"
	"io"
	"time"
)

// escapeTimeout is how long an unfinished escape sequence waits for the
// rest of its bytes before it is dropped.
const escapeTimeout = 100 * time.Millisecond

// maxEscapeLen bounds a buffered escape sequence; longer ones are garbage.
const maxEscapeLen = 16

// Stream delivers terminal input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch       chan byte
	tracker  *Tracker
	now      func() time.Time
	lastSeen time.Time

	pending   []byte // Unfinished escape sequence from the previous poll
	pendingAt time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// Bytes arriving while the buffer is full are dropped, so the reader never
// blocks on a stream nobody polls anymore and exits once r fails.
func StartStream(r io.Reader) *Stream {
	s := newStream(make(chan byte, 128))
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	go func() {
		for {
			b, err := br.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			select {
			case s.ch <- b:
			default:
			}
		}
	}()
	return s
}

func newStream(ch chan byte) *Stream {
	return &Stream{
		ch:       ch,
		tracker:  NewTracker(DefaultHoldDuration),
		now:      time.Now,
		lastSeen: time.Now(),
	}
}

// Poll drains all available bytes (non-blocking) and returns the held actions.
// Escape sequences for arrow keys are decoded. Once the reader is exhausted
// Poll reports Quit so the caller can tear the session down.
func (s *Stream) Poll() Set {
	now := s.now()
	if len(s.pending) > 0 && now.Sub(s.pendingAt) > escapeTimeout {
		s.pending = s.pending[:0]
	}
	buf := s.pending
	received := false
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
			received = true
		default:
			break drain
		}
	}

	if received {
		s.lastSeen = now
	}
	rest := applyBytes(s.tracker, buf, now)
	if len(rest) > maxEscapeLen {
		rest = nil
	}
	if received && len(rest) > 0 {
		s.pendingAt = now
	}
	s.pending = append(s.pending[:0], rest...)

	held := s.tracker.Held(now)
	if closed {
		held = held.With(Quit)
	}
	return held
}

// Reset clears remembered key presses.
func (s *Stream) Reset() {
	s.tracker.Reset()
}

// LastActivity returns when a key was last received.
func (s *Stream) LastActivity() time.Time {
	return s.lastSeen
}

// applyBytes parses the collected bytes and updates key state timestamps.
// It returns the tail of buf holding an escape sequence whose remaining
// bytes have not arrived yet.
func applyBytes(t *Tracker, buf []byte, now time.Time) []byte {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			if a, ok := byteAction(b); ok {
				t.Press(a, now)
			}
			continue
		}

		n, a, ok := parseEscape(buf[i:])
		if n == 0 {
			return buf[i:]
		}
		if ok {
			t.Press(a, now)
		}
		i += n - 1
	}
	return nil
}

// parseEscape decodes the escape sequence at the start of seq: CSI
// (ESC [ params final) or SS3 (ESC O final). It returns the sequence length,
// or zero when more bytes are needed. Only arrow keys map to actions; a lone
// ESC followed by another key is skipped.
func parseEscape(seq []byte) (n int, a Action, ok bool) {
	if len(seq) < 2 {
		return 0, 0, false
	}
	if seq[1] != '[' && seq[1] != 'O' {
		return 1, 0, false
	}
	for j := 2; j < len(seq); j++ {
		c := seq[j]
		switch {
		case c >= 0x40 && c <= 0x7e: // Final byte
			a, ok := arrowAction(c)
			return j + 1, a, ok
		case c >= 0x20 && c <= 0x3f: // Parameter or intermediate byte
		default:
			// Malformed; drop what was read and let c be parsed on its own.
			return j, 0, false
		}
	}
	return 0, 0, false
}

func arrowAction(final byte) (Action, bool) {
	switch final {
	case 'A':
		return MoveUp, true
	case 'B':
		return MoveDown, true
	case 'C':
		return MoveRight, true
	case 'D':
		return MoveLeft, true
	}
	return 0, false
}

// byteAction maps a single key byte to its action.
func byteAction(b byte) (Action, bool) {
	return RuneAction(rune(b))
}

// RuneAction maps a typed character to its action.
func RuneAction(r rune) (Action, bool) {
	switch r {
	case 'q', 'Q', 0x03: // 0x03 is Ctrl-C in raw mode
		return Quit, true
	case 'a', 'A', 'h', 'H':
		return MoveLeft, true
	case 'd', 'D', 'l', 'L':
		return MoveRight, true
	case 'w', 'W', 'k', 'K':
		return MoveUp, true
	case 's', 'S', 'j', 'J':
		return MoveDown, true
	case ' ':
		return Fire, true
	case 'p', 'P':
		return Pause, true
	case 'r', 'R':
		return Restart, true
	case '\n', '\r':
		return Start, true
	}
	return 0, false
}
