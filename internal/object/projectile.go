package object

import (
	"github.com/tomz197/invaders/internal/draw"
)

// Rocket is fired by the ship and travels up.
type Rocket struct {
	X, Y     float64
	Velocity float64 // Upward speed, units per second
}

// Update moves the rocket. Returns true once it has left the top of the field.
func (p *Rocket) Update(dt float64) (remove bool) {
	p.Y -= p.Velocity * dt
	return p.Y < 0
}

// Draw renders the rocket as a thin vertical line.
func (p *Rocket) Draw(r draw.Renderer) {
	r.FillRect(p.X, p.Y-2, 1, 4, draw.ColorRocket)
}

// Bomb is dropped by an invader and falls toward the ship.
type Bomb struct {
	X, Y     float64
	Velocity float64 // Downward speed, units per second
}

// Update moves the bomb. Returns true once it has fallen below floor.
func (p *Bomb) Update(dt, floor float64) (remove bool) {
	p.Y += p.Velocity * dt
	return p.Y > floor
}

// Draw renders the bomb as a small square.
func (p *Bomb) Draw(r draw.Renderer) {
	r.FillRect(p.X-2, p.Y-2, 4, 4, draw.ColorBomb)
}
