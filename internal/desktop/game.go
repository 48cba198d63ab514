// Package desktop runs the game in an ebiten window.
package desktop

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/loop/config"
)

// windowScale is the initial window size relative to the surface.
const windowScale = 2

var keyActions = map[ebiten.Key]input.Action{
	ebiten.KeyA:          input.MoveLeft,
	ebiten.KeyArrowLeft:  input.MoveLeft,
	ebiten.KeyD:          input.MoveRight,
	ebiten.KeyArrowRight: input.MoveRight,
	ebiten.KeySpace:      input.Fire,
	ebiten.KeyW:          input.Fire,
	ebiten.KeyArrowUp:    input.Fire,
	ebiten.KeyP:          input.Pause,
}

var quitKeys = []ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ}

// Game adapts a session to ebiten. ebiten's update loop drives the ticks and
// Draw replays the last recorded frame.
type Game struct {
	session   *loop.Session
	scheduler *loop.StepScheduler
	rec       *draw.Recorder
	renderer  *Renderer
	surface   draw.Surface
	log       *log.Logger
}

// NewGame creates a started game for cfg.
func NewGame(cfg config.Config, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	scheduler := loop.NewStepScheduler()
	session, err := loop.New(cfg, loop.WithScheduler(scheduler), loop.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	rec := draw.NewRecorder(nil)
	surface := loop.SurfaceFor(cfg)
	if err := session.Initialise(surface, rec); err != nil {
		return nil, err
	}
	if err := session.Start(); err != nil {
		return nil, err
	}

	return &Game{
		session:   session,
		scheduler: scheduler,
		rec:       rec,
		renderer:  renderer,
		surface:   surface,
		log:       logger,
	}, nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg config.Config, logger *log.Logger) error {
	g, err := NewGame(cfg, logger)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(g.surface.Width*windowScale, g.surface.Height*windowScale)
	ebiten.SetWindowTitle("Space Invaders")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TickRate)
	return ebiten.RunGame(g)
}

// Update runs one tick. ebiten calls it TickRate times per second.
func (g *Game) Update() error {
	if err := g.handleKeys(inpututil.IsKeyJustPressed, inpututil.IsKeyJustReleased, ebiten.IsKeyPressed); err != nil {
		return err
	}
	g.scheduler.Step()
	return nil
}

// handleKeys forwards key edges to the session. An action stays down while any
// key bound to it is still held.
func (g *Game) handleKeys(pressed, released, held func(ebiten.Key) bool) error {
	for _, k := range quitKeys {
		if pressed(k) {
			return ebiten.Termination
		}
	}
	for k, a := range keyActions {
		var ev input.Event
		switch {
		case pressed(k):
			ev = input.Event{Action: a, Down: true}
		case released(k):
			if heldElsewhere(a, k, held) {
				continue
			}
			ev = input.Event{Action: a}
		default:
			continue
		}
		if err := g.session.Dispatch(ev); err != nil {
			return err
		}
	}
	return nil
}

// heldElsewhere reports whether a key other than k that maps to a is held.
func heldElsewhere(a input.Action, k ebiten.Key, held func(ebiten.Key) bool) bool {
	for other, oa := range keyActions {
		if other != k && oa == a && held(other) {
			return true
		}
	}
	return false
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Target = screen
	draw.Replay(g.rec.Frame(), g.renderer)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.surface.Width, g.surface.Height
}
