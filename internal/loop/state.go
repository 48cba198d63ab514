package loop

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
)

// State names reported by Session.StateName.
const (
	StateWelcome  = "welcome"
	StatePlay     = "play"
	StateGameOver = "game-over"
)

// State is one phase of the game. The session calls Update then Draw on the
// current state every tick.
type State interface {
	Update(s *Session, dt float64)
	Draw(s *Session, dt float64, r draw.Renderer)
}

// Enterer is implemented by states that set up when they become current.
type Enterer interface {
	Enter(s *Session)
}

// Leaver is implemented by states that clean up before another state takes over.
type Leaver interface {
	Leave(s *Session)
}

// KeyDowner is implemented by states that react to action presses.
type KeyDowner interface {
	KeyDown(s *Session, a input.Action)
}

// KeyUpper is implemented by states that react to action releases.
type KeyUpper interface {
	KeyUp(s *Session, a input.Action)
}

// moveToState leaves the current state, then enters next.
func (s *Session) moveToState(next State) {
	from := s.StateName()
	if l, ok := s.state.(Leaver); ok {
		l.Leave(s)
	}
	s.state = next
	if e, ok := next.(Enterer); ok {
		e.Enter(s)
	}
	s.log.Debug("state change", "from", from, "to", s.StateName())
}

// infoLine returns the baseline of the HUD text below the play field.
func (s *Session) infoLine() float64 {
	return s.bounds.Bottom + (float64(s.surface.Height)-s.bounds.Bottom)/2 + float64(draw.FontInfo.Size)/2
}

func (s *Session) center() (x, y float64) {
	return float64(s.surface.Width) / 2, float64(s.surface.Height) / 2
}
