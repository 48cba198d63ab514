package loop

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
)

// welcomeState is the title screen. Fire starts a game.
type welcomeState struct{}

func (welcomeState) Update(*Session, float64) {}

func (welcomeState) Draw(s *Session, _ float64, r draw.Renderer) {
	r.Clear()
	cx, cy := s.center()
	r.DrawText("Space Invaders", cx, cy-40, draw.FontTitle, draw.ColorText, draw.AlignCenter)
	r.DrawText("Press 'Space' or touch to start.", cx, cy, draw.FontBody, draw.ColorText, draw.AlignCenter)
}

func (welcomeState) KeyDown(s *Session, a input.Action) {
	if a == input.Fire {
		s.moveToState(playState{})
	}
}
