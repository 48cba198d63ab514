// Package input turns raw key data into the game's logical actions.
package input

import (
	"bufio"
	"time"
)

// Action is a logical control, independent of the key that produced it.
type Action int

const (
	MoveLeft Action = iota
	MoveRight
	Fire
	Pause

	actionCount
)

// Actions lists every action in declaration order.
var Actions = []Action{MoveLeft, MoveRight, Fire, Pause}

func (a Action) String() string {
	switch a {
	case MoveLeft:
		return "move-left"
	case MoveRight:
		return "move-right"
	case Fire:
		return "fire"
	case Pause:
		return "pause"
	default:
		return "unknown"
	}
}

// Valid reports whether a is one of the declared actions.
func (a Action) Valid() bool {
	return a >= 0 && a < actionCount
}

// Event is a press or release of an action.
type Event struct {
	Action Action
	Down   bool
}

// KeyHoldDuration is how long a terminal key counts as held after its last byte.
// Terminals only report presses and auto-repeat, so releases are inferred.
var KeyHoldDuration = 120 * time.Millisecond

// Stream delivers input bytes via a channel and tracks which actions are held.
type Stream struct {
	ch       chan byte
	closed   bool
	quit     bool
	held     [actionCount]bool
	lastSeen [actionCount]time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// Poll drains all available bytes (non-blocking) and returns the resulting
// action events. A key seen for the first time yields a down event; a held key
// not seen for KeyHoldDuration yields an up event. quit is true once Q was
// pressed or the reader closed.
func (s *Stream) Poll(now time.Time) (events []Event, quit bool) {
	var buf []byte
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if a, ok := arrowAction(buf[i+2]); ok {
				events = s.press(events, a, now)
				i += 2
				continue
			}
		}

		if b == 'q' || b == 'Q' || b == 0x03 {
			s.quit = true
			continue
		}
		if a, ok := byteAction(b); ok {
			events = s.press(events, a, now)
		}
	}

	for a := Action(0); a < actionCount; a++ {
		if s.held[a] && now.Sub(s.lastSeen[a]) >= KeyHoldDuration {
			s.held[a] = false
			events = append(events, Event{Action: a})
		}
	}

	return events, s.quit || s.closed
}

// Reset releases every held action without emitting events.
func (s *Stream) Reset() {
	s.held = [actionCount]bool{}
}

func (s *Stream) press(events []Event, a Action, now time.Time) []Event {
	s.lastSeen[a] = now
	if s.held[a] {
		return events
	}
	s.held[a] = true
	return append(events, Event{Action: a, Down: true})
}

func arrowAction(code byte) (Action, bool) {
	switch code {
	case 'A': // Up arrow
		return Fire, true
	case 'C': // Right arrow
		return MoveRight, true
	case 'D': // Left arrow
		return MoveLeft, true
	}
	return 0, false
}

func byteAction(b byte) (Action, bool) {
	switch b {
	case 'a', 'A', 'j', 'J':
		return MoveLeft, true
	case 'd', 'D', 'l', 'L':
		return MoveRight, true
	case ' ', 'w', 'W', 'i', 'I', '\r', '\n':
		return Fire, true
	case 'p', 'P':
		return Pause, true
	}
	return 0, false
}
