package loop

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

const tickDT = 0.02

// manualClock is a Clock that only moves when told to.
type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }
func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type harness struct {
	s     *Session
	rec   *draw.Recorder
	sched *StepScheduler
	clock *manualClock
}

// quietConfig is the default tuning without random bombing.
func quietConfig() config.Config {
	cfg := config.Default()
	cfg.BombRate = 0
	return cfg
}

func newHarness(t *testing.T, cfg config.Config, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		rec:   draw.NewRecorder(nil),
		sched: NewStepScheduler(),
		clock: &manualClock{now: time.Unix(1000, 0)},
	}
	opts = append([]Option{WithScheduler(h.sched), WithClock(h.clock), WithRand(1)}, opts...)
	s, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Initialise(SurfaceFor(cfg), h.rec); err != nil {
		t.Fatalf("Initialise: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	h.s = s
	return h
}

// play starts a game from the welcome screen.
func (h *harness) play(t *testing.T) {
	t.Helper()
	h.s.KeyDown(input.Fire)
	h.s.KeyUp(input.Fire)
	if got := h.s.StateName(); got != StatePlay {
		t.Fatalf("state = %q, want play", got)
	}
}

func (h *harness) ticks(n int) {
	for i := 0; i < n; i++ {
		h.s.Tick(tickDT)
	}
}

func (h *harness) texts() []string {
	var out []string
	for _, c := range h.rec.Frame() {
		if c.Op == draw.OpText {
			out = append(out, c.Text)
		}
	}
	return out
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.TickRate = 0
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("New = %v, want ErrInvalidConfig", err)
	}
}

func TestInitialiseRejectsBadSurface(t *testing.T) {
	s, err := New(config.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rec := draw.NewRecorder(nil)

	cases := []struct {
		name    string
		surface draw.Surface
		r       draw.Renderer
	}{
		{"zero", draw.Surface{}, rec},
		{"too small", draw.Surface{Width: 200, Height: 500}, rec},
		{"no renderer", draw.Surface{Width: 800, Height: 600}, nil},
	}
	for _, tc := range cases {
		if err := s.Initialise(tc.surface, tc.r); !errors.Is(err, ErrInvalidSurface) {
			t.Fatalf("%s: Initialise = %v, want ErrInvalidSurface", tc.name, err)
		}
	}
	if err := s.Start(); !errors.Is(err, ErrNotInitialised) {
		t.Fatalf("Start before Initialise = %v, want ErrNotInitialised", err)
	}
}

func TestInitialiseCentersField(t *testing.T) {
	s, err := New(config.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Initialise(draw.Surface{Width: 800, Height: 600}, draw.NewRecorder(nil)); err != nil {
		t.Fatalf("Initialise: %v", err)
	}
	want := object.Bounds{Left: 200, Top: 150, Right: 600, Bottom: 450}
	if got := s.Bounds(); got != want {
		t.Fatalf("bounds = %+v, want %+v", got, want)
	}
}

func TestWelcomeToPlay(t *testing.T) {
	h := newHarness(t, quietConfig())
	if got := h.s.StateName(); got != StateWelcome {
		t.Fatalf("state = %q, want welcome", got)
	}
	if !h.s.Running() {
		t.Fatal("scheduler should run after Start")
	}

	h.sched.Step()
	if texts := h.texts(); len(texts) == 0 || texts[0] != "Space Invaders" {
		t.Fatalf("welcome frame texts = %v", texts)
	}

	h.play(t)
	if h.s.InvaderCount() != 50 {
		t.Fatalf("invaders = %d, want 50", h.s.InvaderCount())
	}
	if h.s.Lives() != 3 || h.s.Score() != 0 || h.s.Level() != 1 {
		t.Fatalf("lives/score/level = %d/%d/%d", h.s.Lives(), h.s.Score(), h.s.Level())
	}
	if h.s.ship == nil {
		t.Fatal("entering play should create the ship")
	}
}

func TestPlayDrawsHUD(t *testing.T) {
	h := newHarness(t, quietConfig())
	h.play(t)
	h.sched.Step()

	texts := strings.Join(h.texts(), "|")
	if !strings.Contains(texts, "Lives: 3") || !strings.Contains(texts, "Score: 0, Level: 1") {
		t.Fatalf("HUD texts = %q", texts)
	}
}

func TestDebugOutlinesBounds(t *testing.T) {
	cfg := quietConfig()
	cfg.Debug = true
	h := newHarness(t, cfg)
	h.play(t)
	h.ticks(1)

	b := h.s.Bounds()
	for _, c := range h.rec.Frame() {
		if c.Op == draw.OpStroke && c.X == b.Left && c.Y == b.Top && c.W == b.Width() && c.H == b.Height() {
			return
		}
	}
	t.Fatal("debug frame should outline the play bounds")
}

func TestMoveShipHeld(t *testing.T) {
	h := newHarness(t, quietConfig())
	h.play(t)
	x0 := h.s.ship.X

	h.s.KeyDown(input.MoveLeft)
	h.ticks(1)
	if got, want := h.s.ship.X, x0-120*tickDT; !almostEqual(got, want) {
		t.Fatalf("ship x = %v, want %v", got, want)
	}
	h.s.KeyUp(input.MoveLeft)

	h.s.KeyDown(input.MoveRight)
	h.ticks(1000)
	if h.s.ship.X != h.s.Bounds().Right {
		t.Fatalf("ship x = %v, want clamped to %v", h.s.ship.X, h.s.Bounds().Right)
	}
}

func TestFireRateLimit(t *testing.T) {
	cfg := quietConfig()
	cfg.RocketMaxFireRate = 3

	h := newHarness(t, cfg)
	h.play(t)
	h.s.ShipFire()
	h.clock.Advance(333 * time.Millisecond)
	h.s.ShipFire()
	if got := len(h.s.rockets); got != 1 {
		t.Fatalf("rockets after 333ms = %d, want 1", got)
	}

	h = newHarness(t, cfg)
	h.play(t)
	h.s.ShipFire()
	h.clock.Advance(334 * time.Millisecond)
	h.s.ShipFire()
	if got := len(h.s.rockets); got != 2 {
		t.Fatalf("rockets after 334ms = %d, want 2", got)
	}
}

func TestHeldFireRespectsCooldown(t *testing.T) {
	h := newHarness(t, quietConfig())
	h.play(t)

	h.s.KeyDown(input.Fire)
	for i := 0; i < 10; i++ {
		h.clock.Advance(20 * time.Millisecond)
		h.ticks(1)
	}
	if got := len(h.s.rockets); got != 1 {
		t.Fatalf("rockets in 200ms of held fire = %d, want 1", got)
	}
}

func TestPauseOnlyInPlay(t *testing.T) {
	h := newHarness(t, quietConfig())
	h.s.TogglePause()
	if h.s.Paused() {
		t.Fatal("pause should be ignored on the welcome screen")
	}

	h.play(t)
	h.s.KeyDown(input.Pause)
	if !h.s.Paused() {
		t.Fatal("pause key should pause play")
	}

	x0 := h.s.invaders[0].X
	h.s.MoveShip(-50)
	h.s.ShipFire()
	h.ticks(5)
	if h.s.invaders[0].X != x0 || len(h.s.rockets) != 0 {
		t.Fatal("paused game should not advance")
	}
	if texts := h.texts(); len(texts) != 1 || texts[0] != "Paused" {
		t.Fatalf("paused frame texts = %v, want only the banner", texts)
	}
}

func TestDoubleTogglePauseIsIdempotent(t *testing.T) {
	cfg := config.Default()
	a := newHarness(t, cfg)
	b := newHarness(t, cfg)
	a.play(t)
	b.play(t)

	a.ticks(10)
	a.s.TogglePause()
	a.s.TogglePause()
	a.ticks(10)

	b.ticks(20)

	if a.s.Paused() {
		t.Fatal("double toggle should leave the game running")
	}
	if len(a.s.invaders) != len(b.s.invaders) || len(a.s.bombs) != len(b.s.bombs) {
		t.Fatalf("collections diverged: %d/%d invaders, %d/%d bombs",
			len(a.s.invaders), len(b.s.invaders), len(a.s.bombs), len(b.s.bombs))
	}
	for i := range a.s.invaders {
		if a.s.invaders[i].X != b.s.invaders[i].X || a.s.invaders[i].Y != b.s.invaders[i].Y {
			t.Fatalf("invader %d at (%v,%v), want (%v,%v)", i,
				a.s.invaders[i].X, a.s.invaders[i].Y, b.s.invaders[i].X, b.s.invaders[i].Y)
		}
	}
}

// recordingState logs its enter and leave hooks.
type recordingState struct {
	name string
	log  *[]string
}

func (r recordingState) Update(*Session, float64) {}
func (r recordingState) Draw(*Session, float64, draw.Renderer) {}
func (r recordingState) Enter(*Session) { *r.log = append(*r.log, "enter "+r.name) }
func (r recordingState) Leave(*Session) { *r.log = append(*r.log, "leave "+r.name) }

func TestMoveToStateLeavesBeforeEntering(t *testing.T) {
	h := newHarness(t, quietConfig())
	var calls []string

	h.s.moveToState(recordingState{name: "a", log: &calls})
	h.s.moveToState(recordingState{name: "b", log: &calls})

	want := []string{"enter a", "leave a", "enter b"}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Fatalf("hooks = %v, want %v", calls, want)
	}
}

func TestOptionalCapabilitiesDefaultToNoop(t *testing.T) {
	h := newHarness(t, quietConfig())
	var calls []string
	h.s.moveToState(recordingState{name: "a", log: &calls})

	// recordingState has no key handlers.
	h.s.KeyDown(input.Fire)
	h.s.KeyUp(input.Fire)
	if !strings.HasPrefix(strings.Join(calls, ","), "enter a") || len(calls) != 1 {
		t.Fatalf("hooks = %v", calls)
	}
}

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}
