package loop

import (
	"fmt"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/object"
)

// playState runs the game proper. Pause freezes it without leaving the state.
type playState struct{}

func (playState) Enter(s *Session) {
	s.resetRun()
}

// Leave discards the ship and any projectiles in flight.
func (playState) Leave(s *Session) {
	s.ship = nil
	s.rockets = nil
	s.bombs = nil
	s.paused = false
}

func (playState) KeyDown(s *Session, a input.Action) {
	if a == input.Pause {
		s.TogglePause()
	}
}

func (playState) Update(s *Session, dt float64) {
	if s.paused || s.won {
		return
	}

	// Ship control
	step := s.cfg.ShipSpeed * dt
	if s.pressed[input.MoveLeft] {
		s.MoveShip(-step)
	}
	if s.pressed[input.MoveRight] {
		s.MoveShip(step)
	}
	if s.pressed[input.Fire] {
		s.ShipFire()
	}

	s.moveProjectiles(dt)
	s.formation.advance(s, dt)
	s.resolveCollisions(dt)
}

func (playState) Draw(s *Session, _ float64, r draw.Renderer) {
	r.Clear()
	if s.paused {
		cx, cy := s.center()
		r.DrawText("Paused", cx, cy, draw.FontTitle, draw.ColorText, draw.AlignCenter)
		return
	}

	if s.cfg.Debug {
		s.bounds.Outline(r)
	}
	if s.ship != nil {
		s.ship.Draw(r)
	}
	drawAll(r, s.invaders)
	drawAll(r, s.bombs)
	drawAll(r, s.rockets)

	info := s.infoLine()
	r.DrawText(fmt.Sprintf("Lives: %d", s.lives), s.bounds.Left, info, draw.FontInfo, draw.ColorText, draw.AlignLeft)
	r.DrawText(fmt.Sprintf("Score: %d, Level: %d", s.score, s.level), s.bounds.Right, info, draw.FontInfo, draw.ColorText, draw.AlignRight)

	if s.won {
		cx, cy := s.center()
		r.DrawText("You Win!", cx, cy, draw.FontTitle, draw.ColorText, draw.AlignCenter)
		r.DrawText("Press 'Space' to play again.", cx, cy+40, draw.FontBody, draw.ColorText, draw.AlignCenter)
	}
}

func drawAll[T object.Object](r draw.Renderer, objs []T) {
	for _, o := range objs {
		o.Draw(r)
	}
}

// moveProjectiles advances bombs and rockets and drops those that left the surface.
func (s *Session) moveProjectiles(dt float64) {
	floor := float64(s.surface.Height)
	bombs := s.bombs[:0]
	for _, b := range s.bombs {
		if !b.Update(dt, floor) {
			bombs = append(bombs, b)
		}
	}
	s.bombs = bombs

	rockets := s.rockets[:0]
	for _, p := range s.rockets {
		if !p.Update(dt) {
			rockets = append(rockets, p)
		}
	}
	s.rockets = rockets
}
