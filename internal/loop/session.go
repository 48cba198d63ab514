// Package loop runs the game: a session owns the entities, the state machine
// and the scheduler that ticks them at a fixed rate.
package loop

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

// ErrInvalidSurface is returned when a session cannot draw to the given surface.
var ErrInvalidSurface = errors.New("invalid render surface")

// ErrNotInitialised is returned by Start before Initialise succeeded.
var ErrNotInitialised = errors.New("session not initialised")

// Session is one game: configuration, play state, entities and the scheduler.
// All methods must be called from the goroutine that runs the ticks.
type Session struct {
	cfg       config.Config
	scheduler Scheduler
	clock     Clock
	rng       *rand.Rand
	log       *log.Logger

	surface  draw.Surface
	bounds   object.Bounds
	renderer draw.Renderer

	state   State
	pressed map[input.Action]bool

	lives  int
	score  int
	level  int
	paused bool
	won    bool

	ship      *object.Ship
	invaders  []*object.Invader
	rockets   []*object.Rocket
	bombs     []*object.Bomb
	formation formation

	lastRocket time.Time
	hasFired   bool

	onWon  func(*Session)
	onLost func(*Session)
}

// Option configures a Session.
type Option func(*Session)

// WithScheduler sets the tick scheduler. The default is a StepScheduler.
func WithScheduler(sched Scheduler) Option {
	return func(s *Session) {
		s.scheduler = sched
	}
}

// WithClock sets the clock used for the fire cooldown.
func WithClock(c Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

// WithRand seeds the random source used for bombing.
func WithRand(seed int64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the session logger. Sessions log nothing by default.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// New creates a session for cfg. The configuration is validated here so a bad
// value fails before anything is drawn.
func New(cfg config.Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		cfg:     cfg,
		pressed: make(map[input.Action]bool),
		lives:   cfg.Lives,
		level:   1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scheduler == nil {
		s.scheduler = NewStepScheduler()
	}
	if s.clock == nil {
		s.clock = systemClock{}
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	return s, nil
}

// SurfaceFor returns the surface frontends allocate for cfg: the play field
// with a margin around it and room below for the info line.
func SurfaceFor(cfg config.Config) draw.Surface {
	return draw.Surface{
		Width:  int(math.Ceil(cfg.FieldWidth)) + 40,
		Height: int(math.Ceil(cfg.FieldHeight)) + 80,
	}
}

// Initialise binds the session to a render surface and computes the play
// field bounds, centered in the surface.
func (s *Session) Initialise(surface draw.Surface, r draw.Renderer) error {
	if surface.Width <= 0 || surface.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidSurface, surface.Width, surface.Height)
	}
	if float64(surface.Width) < s.cfg.FieldWidth || float64(surface.Height) < s.cfg.FieldHeight {
		return fmt.Errorf("%w: %dx%d cannot hold a %gx%g play field",
			ErrInvalidSurface, surface.Width, surface.Height, s.cfg.FieldWidth, s.cfg.FieldHeight)
	}
	if r == nil {
		return fmt.Errorf("%w: no renderer", ErrInvalidSurface)
	}

	left := (float64(surface.Width) - s.cfg.FieldWidth) / 2
	top := (float64(surface.Height) - s.cfg.FieldHeight) / 2
	s.surface = surface
	s.renderer = r
	s.bounds = object.Bounds{
		Left:   left,
		Top:    top,
		Right:  left + s.cfg.FieldWidth,
		Bottom: top + s.cfg.FieldHeight,
	}
	return nil
}

// Start enters the welcome screen and starts ticking.
func (s *Session) Start() error {
	if s.renderer == nil {
		return ErrNotInitialised
	}
	s.moveToState(welcomeState{})
	dt := s.cfg.TickSeconds()
	s.scheduler.Start(func() { s.Tick(dt) })
	return nil
}

// Stop halts future ticks.
func (s *Session) Stop() {
	s.scheduler.Stop()
}

// Tick advances the current state by dt seconds and draws it.
func (s *Session) Tick(dt float64) {
	if s.state == nil {
		return
	}
	s.state.Update(s, dt)

	// The state may have changed during the update.
	s.state.Draw(s, dt, s.renderer)
	if f, ok := s.renderer.(draw.Flusher); ok {
		if err := f.Flush(); err != nil {
			s.log.Warn("flush frame", "err", err)
		}
	}
}

// KeyDown records a pressed action and notifies the current state.
func (s *Session) KeyDown(a input.Action) {
	s.pressed[a] = true
	if h, ok := s.state.(KeyDowner); ok {
		h.KeyDown(s, a)
	}
}

// KeyUp records a released action and notifies the current state.
func (s *Session) KeyUp(a input.Action) {
	delete(s.pressed, a)
	if h, ok := s.state.(KeyUpper); ok {
		h.KeyUp(s, a)
	}
}

// Dispatch routes a frontend input event. Once a cleared formation has halted
// the scheduler, Fire restarts the session from the welcome screen.
func (s *Session) Dispatch(ev input.Event) error {
	if !ev.Down {
		s.KeyUp(ev.Action)
		return nil
	}
	if ev.Action == input.Fire && s.won && !s.Running() {
		for _, a := range input.Actions {
			s.KeyUp(a)
		}
		return s.Start()
	}
	s.KeyDown(ev.Action)
	return nil
}

// Pressed reports whether an action is currently held.
func (s *Session) Pressed(a input.Action) bool {
	return s.pressed[a]
}

// MoveShip moves the ship horizontally by dx, clamped to the play field.
func (s *Session) MoveShip(dx float64) {
	if s.paused || s.ship == nil {
		return
	}
	s.ship.Move(dx, s.bounds)
}

// ShipFire launches a rocket unless one was fired within the cooldown.
func (s *Session) ShipFire() {
	if s.paused || s.ship == nil {
		return
	}
	now := s.clock.Now()
	if s.hasFired && now.Sub(s.lastRocket) <= s.cfg.FireCooldown() {
		return
	}
	s.rockets = append(s.rockets, s.ship.Fire(s.cfg.RocketVelocity))
	s.lastRocket = now
	s.hasFired = true
}

// TogglePause pauses or resumes play. It has no effect outside live play,
// including after the formation has been cleared.
func (s *Session) TogglePause() {
	if _, ok := s.state.(playState); !ok || s.won {
		return
	}
	s.paused = !s.paused
	s.log.Debug("pause toggled", "paused", s.paused)
}

// OnGameWon registers fn to be called when the formation is cleared.
func (s *Session) OnGameWon(fn func(*Session)) {
	s.onWon = fn
}

// OnGameLost registers fn to be called when the game is lost.
func (s *Session) OnGameLost(fn func(*Session)) {
	s.onLost = fn
}

func (s *Session) Lives() int   { return s.lives }
func (s *Session) Score() int   { return s.score }
func (s *Session) Level() int   { return s.level }
func (s *Session) Paused() bool { return s.paused }

// Won reports whether the current run ended by clearing the formation.
func (s *Session) Won() bool { return s.won }

// Running reports whether the scheduler is ticking.
func (s *Session) Running() bool { return s.scheduler.Running() }

// Bounds returns the play field rectangle.
func (s *Session) Bounds() object.Bounds { return s.bounds }

// Surface returns the bound render surface.
func (s *Session) Surface() draw.Surface { return s.surface }

// Config returns the session configuration.
func (s *Session) Config() config.Config { return s.cfg }

// InvaderCount returns the number of living invaders.
func (s *Session) InvaderCount() int { return len(s.invaders) }

// StateName names the current state for display and logging.
func (s *Session) StateName() string {
	switch s.state.(type) {
	case welcomeState:
		return StateWelcome
	case playState:
		return StatePlay
	case gameOverState:
		return StateGameOver
	default:
		return ""
	}
}

// resetRun prepares a fresh game: full lives, zero score, a new ship and formation.
func (s *Session) resetRun() {
	s.lives = s.cfg.Lives
	s.score = 0
	s.level = 1
	s.paused = false
	s.won = false
	s.hasFired = false

	s.ship = object.NewShip((s.bounds.Left+s.bounds.Right)/2, s.bounds.Bottom)
	s.rockets = nil
	s.bombs = nil
	s.invaders = spawnFormation(s.cfg, s.bounds)
	s.formation.reset(s.cfg.InvaderInitialVelocity)
}
