package object

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// Invader dimensions.
const (
	InvaderWidth  = 18.0
	InvaderHeight = 14.0
)

// InvaderKind distinguishes invader varieties. There is one today.
type InvaderKind int

const (
	InvaderStandard InvaderKind = iota
)

// Invader is one member of the formation.
// Rank is the row, with higher ranks closer to the ship. File is the column.
type Invader struct {
	X, Y          float64 // Center position
	Width, Height float64
	Rank, File    int
	Kind          InvaderKind
}

// NewInvader creates a standard invader centered at (x, y).
func NewInvader(x, y float64, rank, file int) *Invader {
	return &Invader{
		X:      x,
		Y:      y,
		Width:  InvaderWidth,
		Height: InvaderHeight,
		Rank:   rank,
		File:   file,
		Kind:   InvaderStandard,
	}
}

// Contains reports whether the point lies within the invader's box.
func (inv *Invader) Contains(x, y float64) bool {
	return physics.PointInBox(x, y, inv.X, inv.Y, inv.Width, inv.Height)
}

// Overlaps reports whether the invader's box intersects the ship's.
func (inv *Invader) Overlaps(s *Ship) bool {
	return physics.BoxesOverlap(inv.X, inv.Y, inv.Width, inv.Height, s.X, s.Y, s.Width, s.Height)
}

// DropBomb creates a bomb at the invader's bottom center.
func (inv *Invader) DropBomb(velocity float64) *Bomb {
	return &Bomb{X: inv.X, Y: inv.Y + inv.Height/2, Velocity: velocity}
}

// Draw renders the invader as a filled box.
func (inv *Invader) Draw(r draw.Renderer) {
	r.FillRect(inv.X-inv.Width/2, inv.Y-inv.Height/2, inv.Width, inv.Height, draw.ColorInvader)
}
