package object

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// Ship dimensions.
const (
	ShipWidth  = 20.0
	ShipHeight = 16.0
)

// rocketSpawnOffset is how far above the ship center new rockets appear.
const rocketSpawnOffset = 12.0

// Ship is the player-controlled cannon at the bottom of the play field.
type Ship struct {
	X, Y          float64 // Center position
	Width, Height float64
}

// NewShip creates a ship centered at (x, y).
func NewShip(x, y float64) *Ship {
	return &Ship{X: x, Y: y, Width: ShipWidth, Height: ShipHeight}
}

// Move shifts the ship horizontally, keeping it within the bounds.
func (s *Ship) Move(dx float64, b Bounds) {
	s.X = physics.Clamp(s.X+dx, b.Left, b.Right)
}

// Contains reports whether the point lies within the ship's box.
func (s *Ship) Contains(x, y float64) bool {
	return physics.PointInBox(x, y, s.X, s.Y, s.Width, s.Height)
}

// Fire creates a rocket leaving the ship's nose.
func (s *Ship) Fire(velocity float64) *Rocket {
	return &Rocket{X: s.X, Y: s.Y - rocketSpawnOffset, Velocity: velocity}
}

// Draw renders the ship as a filled box.
func (s *Ship) Draw(r draw.Renderer) {
	r.FillRect(s.X-s.Width/2, s.Y-s.Height/2, s.Width, s.Height, draw.ColorShip)
}
