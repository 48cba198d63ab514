package loop

import (
	"fmt"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
)

// gameOverState shows the final score. Fire starts a new game.
type gameOverState struct{}

func (gameOverState) Update(*Session, float64) {}

func (gameOverState) Draw(s *Session, _ float64, r draw.Renderer) {
	r.Clear()
	cx, cy := s.center()
	r.DrawText("Game Over!", cx, cy-40, draw.FontTitle, draw.ColorText, draw.AlignCenter)
	r.DrawText(fmt.Sprintf("You scored %d and got to level %d", s.score, s.level),
		cx, cy, draw.FontBody, draw.ColorText, draw.AlignCenter)
	r.DrawText("Press 'Space' to play again.", cx, cy+40, draw.FontBody, draw.ColorText, draw.AlignCenter)
}

func (gameOverState) KeyDown(s *Session, a input.Action) {
	if a == input.Fire {
		s.moveToState(playState{})
	}
}
