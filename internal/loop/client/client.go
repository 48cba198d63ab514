// Package client runs one game session on an ANSI terminal: a local TTY or an SSH channel.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/loop/config"
)

// Client handles rendering and input for a single connection.
type Client struct {
	session      *loop.Session
	scheduler    *loop.StepScheduler
	term         *draw.Terminal
	surface      draw.Surface
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	frameTime    time.Duration
	log          *log.Logger

	running    bool
	lastInput  time.Time
	isInactive bool
}

// Options configures the client.
type Options struct {
	Config       config.Config
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
	Seed         int64 // Bomb randomness; zero seeds from the clock
}

// New creates a client whose session reads r and draws to w.
func New(r *bufio.Reader, w io.Writer, opts Options) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	scheduler := loop.NewStepScheduler()
	sessionOpts := []loop.Option{loop.WithScheduler(scheduler), loop.WithLogger(logger)}
	if opts.Seed != 0 {
		sessionOpts = append(sessionOpts, loop.WithRand(opts.Seed))
	}
	session, err := loop.New(opts.Config, sessionOpts...)
	if err != nil {
		return nil, err
	}

	surface := loop.SurfaceFor(opts.Config)
	termWidth, termHeight, err := termSizeFunc()
	if err != nil {
		return nil, fmt.Errorf("terminal size: %w", err)
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight, surface)
	term := draw.NewTerminal(w, surface, renderWidth, renderHeight)
	term.Resize(renderWidth, renderHeight, offsetCol, offsetRow)

	if err := session.Initialise(surface, term); err != nil {
		return nil, err
	}

	return &Client{
		session:      session,
		scheduler:    scheduler,
		term:         term,
		surface:      surface,
		writer:       w,
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		frameTime:    opts.Config.TickInterval(),
		log:          logger,
		running:      true,
		lastInput:    time.Now(),
	}, nil
}

// Session returns the game session driven by the client.
func (c *Client) Session() *loop.Session {
	return c.session
}

// Run starts the client loop. Blocks until the player quits, the input closes
// or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	if err := c.session.Start(); err != nil {
		return err
	}
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)

	for c.running {
		frameStart := time.Now()
		select {
		case <-ctx.Done():
			c.running = false
			continue
		default:
		}

		c.frame(frameStart)

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < c.frameTime {
			time.Sleep(c.frameTime - elapsed)
		}
	}

	c.session.Stop()
	draw.ClearScreen(c.writer)
	return nil
}

// frame processes input, follows the terminal size and advances the session once.
func (c *Client) frame(now time.Time) {
	c.processInput(now)
	if !c.running {
		return
	}
	c.updateScreen()

	if c.isInactive {
		c.drawInactivityScreen(now)
		return
	}
	// A halted session keeps its last frame on screen.
	c.scheduler.Step()
}

// processInput forwards input events to the session and tracks inactivity.
func (c *Client) processInput(now time.Time) {
	events, quit := c.inputStream.Poll(now)
	if quit {
		c.running = false
		return
	}

	idle := now.Sub(c.lastInput).Seconds()
	switch {
	case len(events) > 0:
		c.lastInput = now
		c.isInactive = false
	case idle > config.InactivityDisconnectUser:
		c.log.Info("disconnecting inactive player")
		c.running = false
		return
	case idle > config.InactivityWarnUser:
		c.isInactive = true
	}

	for _, ev := range events {
		wasRunning := c.session.Running()
		if err := c.session.Dispatch(ev); err != nil {
			c.log.Error("dispatch input", "action", ev.Action, "err", err)
			continue
		}
		if !wasRunning && c.session.Running() {
			c.inputStream.Reset()
		}
	}
}

// updateScreen follows terminal resizes, clamped to the max render resolution.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight, c.surface)
	c.term.Resize(renderWidth, renderHeight, offsetCol, offsetRow)
}

// drawInactivityScreen replaces the game frame with a disconnect warning.
func (c *Client) drawInactivityScreen(now time.Time) {
	cx := float64(c.surface.Width) / 2
	cy := float64(c.surface.Height) / 2
	left := int(config.InactivityDisconnectUser - now.Sub(c.lastInput).Seconds())

	c.term.Clear()
	c.term.DrawText("INACTIVITY WARNING", cx, cy-40, draw.FontTitle, draw.ColorText, draw.AlignCenter)
	c.term.DrawText(fmt.Sprintf("You will be disconnected in %d seconds.", left),
		cx, cy, draw.FontBody, draw.ColorText, draw.AlignCenter)
	c.term.DrawText("Press any key to continue", cx, cy+40, draw.FontBody, draw.ColorText, draw.AlignCenter)
	if err := c.term.Flush(); err != nil {
		c.log.Warn("flush frame", "err", err)
	}
}

// clampTermSize fits the surface into the terminal, keeping its aspect ratio
// (a cell is two half-block pixels tall), and computes the centering offset.
func clampTermSize(termWidth, termHeight int, s draw.Surface) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)

	aspect := float64(s.Width) / float64(s.Height)
	if fit := int(float64(renderHeight*2) * aspect); fit < renderWidth {
		renderWidth = fit
	} else {
		renderHeight = int(float64(renderWidth) / aspect / 2)
	}

	renderWidth = max(renderWidth, 0)
	renderHeight = max(renderHeight, 0)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
