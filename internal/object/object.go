// Package object holds the game entities: the ship, the invaders and the
// rockets and bombs they exchange. Positions are box centers in logical units.
package object

import (
	"github.com/tomz197/invaders/internal/draw"
)

// Object is a drawable game entity.
type Object interface {
	Draw(r draw.Renderer)
}

// Bounds is the play field rectangle the ship and invaders are kept within.
type Bounds struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Width returns the horizontal extent of the bounds.
func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the bounds.
func (b Bounds) Height() float64 {
	return b.Bottom - b.Top
}

// Outline strokes the bounds rectangle.
func (b Bounds) Outline(r draw.Renderer) {
	r.StrokeRect(b.Left, b.Top, b.Width(), b.Height(), draw.ColorDebug)
}
