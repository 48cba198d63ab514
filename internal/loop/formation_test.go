package loop

import (
	"testing"

	"github.com/tomz197/invaders/internal/object"
)

func TestFormationLayout(t *testing.T) {
	h := newHarness(t, quietConfig())
	h.play(t)
	b := h.s.Bounds()
	centerX := (b.Left + b.Right) / 2

	first := h.s.invaders[0]
	if first.Rank != 0 || first.File != 0 {
		t.Fatalf("first invader rank/file = %d/%d", first.Rank, first.File)
	}
	if first.X != centerX+100 || first.Y != b.Top {
		t.Fatalf("first invader at (%v,%v), want (%v,%v)", first.X, first.Y, centerX+100, b.Top)
	}
	last := h.s.invaders[len(h.s.invaders)-1]
	if last.Rank != 4 || last.File != 9 || last.Y != b.Top+80 {
		t.Fatalf("last invader = %+v", last)
	}
	if h.s.formation.velocity != (vec{X: -10}) {
		t.Fatalf("initial velocity = %+v, want {-10 0}", h.s.formation.velocity)
	}
}

func TestFormationDriftsLeftAtInitialVelocity(t *testing.T) {
	h := newHarness(t, quietConfig())
	h.play(t)

	type pos struct{ x, y float64 }
	start := make([]pos, len(h.s.invaders))
	for i, inv := range h.s.invaders {
		start[i] = pos{inv.X, inv.Y}
	}

	const n = 250 // 5 seconds, well before the leftmost file reaches the edge
	prev := start
	for tick := 0; tick < n; tick++ {
		h.ticks(1)
		cur := make([]pos, len(h.s.invaders))
		for i, inv := range h.s.invaders {
			cur[i] = pos{inv.X, inv.Y}
			if cur[i].x >= prev[i].x {
				t.Fatalf("tick %d: invader %d did not move left", tick, i)
			}
		}
		prev = cur
	}

	elapsed := float64(n) * tickDT
	for i, inv := range h.s.invaders {
		want := start[i].x - 10*elapsed
		if d := inv.X - want; d > 1e-6 || d < -1e-6 {
			t.Fatalf("invader %d x = %v, want %v", i, inv.X, want)
		}
		if inv.Y != start[i].y {
			t.Fatalf("invader %d y changed: %v -> %v", i, start[i].y, inv.Y)
		}
	}
}

func TestFormationMovesAllOrNone(t *testing.T) {
	h := newHarness(t, quietConfig())
	h.play(t)
	b := h.s.Bounds()

	// Put the leftmost invader (last file) right at the left edge.
	shift := h.s.invaders[9].X - (b.Left + 0.1)
	for _, inv := range h.s.invaders {
		inv.X -= shift
	}

	before := make([]object.Invader, len(h.s.invaders))
	for i, inv := range h.s.invaders {
		before[i] = *inv
	}
	h.ticks(1)

	for i, inv := range h.s.invaders {
		if inv.X != before[i].X || inv.Y != before[i].Y {
			t.Fatalf("invader %d moved on a boundary tick", i)
		}
	}
	f := h.s.formation
	if !f.dropping || f.velocity != (vec{Y: 14}) || f.next != (vec{X: 14}) {
		t.Fatalf("formation after left hit = %+v", f)
	}

	// The next tick drops everyone by the same amount.
	h.ticks(1)
	for i, inv := range h.s.invaders {
		if !almostEqual(inv.Y-before[i].Y, 14*tickDT) || inv.X != before[i].X {
			t.Fatalf("invader %d did not drop with the formation", i)
		}
	}
}

func TestFormationFirstViolationWins(t *testing.T) {
	f := formation{velocity: vec{X: -10, Y: 0}}
	b := object.Bounds{Left: 0, Top: 0, Right: 100, Bottom: 100}

	right := object.NewInvader(100, 50, 0, 0) // moving left: stays inside
	left := object.NewInvader(0.05, 50, 0, 1)
	if got := f.scan([]*object.Invader{right, left}, b, tickDT); got != hitLeft {
		t.Fatalf("scan = %v, want hitLeft", got)
	}

	f.velocity = vec{X: 10}
	pastRight := object.NewInvader(99.95, 50, 0, 0)
	pastLeft := object.NewInvader(-5, 50, 0, 1)
	if got := f.scan([]*object.Invader{pastRight, pastLeft}, b, tickDT); got != hitRight {
		t.Fatalf("scan = %v, want hitRight from the first invader", got)
	}
}

func TestFormationVelocityEscalation(t *testing.T) {
	cfg := quietConfig()
	cfg.InvaderRanks = 1
	cfg.InvaderFiles = 1
	h := newHarness(t, cfg)
	h.play(t)

	reversals := 0
	lastSign := -1.0
	for i := 0; i < 20000; i++ {
		h.ticks(1)
		f := h.s.formation
		if f.dropping || f.velocity.X == 0 {
			continue
		}
		sign := 1.0
		if f.velocity.X < 0 {
			sign = -1
		}
		if sign != lastSign {
			reversals++
			lastSign = sign
		}
		if reversals == 2 {
			break
		}
	}

	f := h.s.formation
	if reversals != 2 {
		t.Fatalf("reversals = %d, want 2", reversals)
	}
	if f.speed != 18 || f.velocity != (vec{X: -18}) {
		t.Fatalf("after two reversals speed=%v velocity=%+v, want 18 and {-18 0}", f.speed, f.velocity)
	}
	if h.s.StateName() != StatePlay {
		t.Fatalf("state = %q, formation should still be in play", h.s.StateName())
	}
}

func TestFormationBottomEndsGame(t *testing.T) {
	cfg := quietConfig()
	cfg.InvaderRanks = 1
	cfg.InvaderFiles = 1
	h := newHarness(t, cfg)
	h.play(t)
	b := h.s.Bounds()

	inv := h.s.invaders[0]
	inv.X = b.Left + 10 // away from the ship
	inv.Y = b.Bottom - 0.1
	h.s.formation.velocity = vec{Y: 14}
	h.s.formation.dropping = true

	lost := 0
	h.s.OnGameLost(func(*Session) { lost++ })
	h.ticks(1)

	if h.s.Lives() != 0 || h.s.StateName() != StateGameOver || lost != 1 {
		t.Fatalf("lives=%d state=%q lost=%d, want 0 game-over 1", h.s.Lives(), h.s.StateName(), lost)
	}
}

func TestFrontRank(t *testing.T) {
	invaders := []*object.Invader{
		object.NewInvader(0, 0, 0, 0),
		object.NewInvader(0, 0, 0, 1),
		object.NewInvader(0, 0, 2, 0),
		object.NewInvader(0, 0, 1, 1),
		object.NewInvader(0, 0, 1, 0),
	}
	front := frontRank(invaders)
	if len(front) != 2 {
		t.Fatalf("front = %d invaders, want 2", len(front))
	}
	if front[0] != invaders[2] || front[1] != invaders[3] {
		t.Fatalf("front = %+v %+v", front[0], front[1])
	}
}

func TestDuplicateInvaderPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("duplicate rank/file should panic")
		}
	}()
	mustBeUnique([]*object.Invader{
		object.NewInvader(0, 0, 1, 1),
		object.NewInvader(5, 5, 1, 1),
	})
}
