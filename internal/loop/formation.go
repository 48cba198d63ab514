package loop

import (
	"fmt"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

type vec struct {
	X, Y float64
}

// boundaryHit is the edge a formation move would cross. At most one is latched per tick.
type boundaryHit int

const (
	hitNone boundaryHit = iota
	hitLeft
	hitRight
	hitBottom
)

// formation owns the velocity shared by every invader.
// A side hit turns the sweep into a drop; once the drop distance is covered
// the formation sweeps the other way, faster.
type formation struct {
	velocity vec
	next     vec     // Velocity to resume once the drop completes
	speed    float64 // Current sweep speed, grows with each side hit
	dropping bool
	dropped  float64
}

func (f *formation) reset(initial float64) {
	*f = formation{
		velocity: vec{X: -initial},
		speed:    initial,
	}
}

// spawnFormation lays out ranks x files invaders, rank 0 at the top.
func spawnFormation(cfg config.Config, b object.Bounds) []*object.Invader {
	centerX := (b.Left + b.Right) / 2
	files := float64(cfg.InvaderFiles)
	invaders := make([]*object.Invader, 0, cfg.InvaderRanks*cfg.InvaderFiles)

	for rank := 0; rank < cfg.InvaderRanks; rank++ {
		for file := 0; file < cfg.InvaderFiles; file++ {
			x := centerX + (files/2-float64(file))*cfg.InvaderSpacingX/files
			y := b.Top + float64(rank)*cfg.InvaderSpacingY
			invaders = append(invaders, object.NewInvader(x, y, rank, file))
		}
	}
	if cfg.Debug {
		mustBeUnique(invaders)
	}
	return invaders
}

// mustBeUnique panics if two invaders share a rank and file.
func mustBeUnique(invaders []*object.Invader) {
	seen := make(map[[2]int]bool, len(invaders))
	for _, inv := range invaders {
		key := [2]int{inv.Rank, inv.File}
		if seen[key] {
			panic(fmt.Sprintf("duplicate invader at rank %d file %d", inv.Rank, inv.File))
		}
		seen[key] = true
	}
}

// advance moves the formation by one tick. Every invader moves, or, when any
// candidate position would cross a boundary, none does and the formation reacts.
func (f *formation) advance(s *Session, dt float64) {
	hit := f.scan(s.invaders, s.bounds, dt)
	if hit == hitNone {
		for _, inv := range s.invaders {
			inv.X += f.velocity.X * dt
			inv.Y += f.velocity.Y * dt
		}
	}

	if f.dropping {
		f.dropped += f.velocity.Y * dt
		if f.dropped >= s.cfg.InvaderDropDistance {
			f.dropping = false
			f.velocity = f.next
			f.dropped = 0
		}
	}

	switch hit {
	case hitLeft:
		f.speed += s.cfg.InvaderAcceleration
		f.velocity = vec{Y: f.speed}
		f.next = vec{X: f.speed}
		f.dropping = true
	case hitRight:
		f.speed += s.cfg.InvaderAcceleration
		f.velocity = vec{Y: f.speed}
		f.next = vec{X: -f.speed}
		f.dropping = true
	case hitBottom:
		s.lives = 0
		s.log.Debug("formation reached the bottom")
	}
}

// scan returns the edge crossed by the first invader, in collection order,
// whose candidate position leaves the bounds.
func (f *formation) scan(invaders []*object.Invader, b object.Bounds, dt float64) boundaryHit {
	for _, inv := range invaders {
		x := inv.X + f.velocity.X*dt
		y := inv.Y + f.velocity.Y*dt
		switch {
		case x < b.Left:
			return hitLeft
		case x > b.Right:
			return hitRight
		case y > b.Bottom:
			return hitBottom
		}
	}
	return hitNone
}

// frontRank returns, per file, the living invader with the highest rank.
// Files are listed in the order they first appear in the collection.
func frontRank(invaders []*object.Invader) []*object.Invader {
	byFile := make(map[int]*object.Invader)
	var order []int
	for _, inv := range invaders {
		cur, ok := byFile[inv.File]
		if !ok {
			order = append(order, inv.File)
		}
		if !ok || inv.Rank > cur.Rank {
			byFile[inv.File] = inv
		}
	}
	front := make([]*object.Invader, 0, len(order))
	for _, file := range order {
		front = append(front, byFile[file])
	}
	return front
}
