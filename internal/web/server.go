// Package web serves the game to browsers: a canvas page and one session per websocket.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/loop/config"
)

//go:embed index.html
var htmlPage []byte

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message types.
const (
	msgHello = "hello" // Server: surface size and keys to suppress
	msgFrame = "frame" // Server: one recorded frame
	msgWon   = "won"
	msgLost  = "lost"
	msgDown  = "down" // Client: key pressed
	msgUp    = "up"   // Client: key released
)

// inMsg is a key event from the page, keyed by KeyboardEvent.keyCode.
type inMsg struct {
	Type string `json:"type"`
	Key  int    `json:"key"`
}

type outMsg struct {
	Type     string         `json:"type"`
	Surface  *draw.Surface  `json:"surface,omitempty"`
	Suppress []int          `json:"suppress,omitempty"`
	Frame    []draw.Command `json:"frame,omitempty"`
	Score    int            `json:"score,omitempty"`
	Level    int            `json:"level,omitempty"`
}

// Server hands out a fresh game session to every websocket connection.
type Server struct {
	cfg config.Config
	log *log.Logger

	wg sync.WaitGroup
}

// NewServer creates a server whose sessions all use cfg.
func NewServer(cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{cfg: cfg, log: logger}
}

// Handler routes the page and the websocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(htmlPage)
	})
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

// Wait blocks until every connection has been torn down.
func (s *Server) Wait() {
	s.wg.Wait()
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade", "err", err)
		return
	}
	s.wg.Add(1)
	defer s.wg.Done()
	defer conn.Close()

	logger := s.log.With("remote", r.RemoteAddr)
	logger.Info("player connected")
	defer logger.Info("player disconnected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan outMsg, 4)
	// send queues a message that must arrive; frames use offer instead.
	send := func(m outMsg) {
		select {
		case out <- m:
		case <-ctx.Done():
		}
	}
	offer := func(m outMsg) {
		select {
		case out <- m:
		default:
		}
	}

	scheduler := loop.NewTickerScheduler(s.cfg.TickInterval())
	rec := draw.NewRecorder(func(frame []draw.Command) error {
		offer(outMsg{Type: msgFrame, Frame: frame})
		return nil
	})
	session, err := loop.New(s.cfg, loop.WithScheduler(scheduler), loop.WithLogger(logger))
	if err != nil {
		logger.Error("new session", "err", err)
		return
	}
	surface := loop.SurfaceFor(s.cfg)
	if err := session.Initialise(surface, rec); err != nil {
		logger.Error("initialise session", "err", err)
		return
	}
	session.OnGameWon(func(gs *loop.Session) {
		send(outMsg{Type: msgWon, Score: gs.Score(), Level: gs.Level()})
	})
	session.OnGameLost(func(gs *loop.Session) {
		send(outMsg{Type: msgLost, Score: gs.Score(), Level: gs.Level()})
	})

	if err := conn.WriteJSON(outMsg{Type: msgHello, Surface: &surface, Suppress: input.SuppressedKeyCodes()}); err != nil {
		return
	}

	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		scheduler.Run(ctx)
	}()
	scheduler.Post(func() {
		if err := session.Start(); err != nil {
			logger.Error("start session", "err", err)
			cancel()
		}
	})

	// Writer
	writeDone := make(chan struct{})
	go func() {
		defer close(writeDone)
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case m := <-out:
				if err := conn.WriteJSON(m); err != nil {
					return
				}
			}
		}
	}()

	// Reader
	go func() {
		<-ctx.Done()
		_ = conn.Close() // unblocks ReadMessage
	}()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var m inMsg
		if err := json.Unmarshal(data, &m); err != nil {
			continue
		}
		a, ok := input.FromKeyCode(m.Key)
		if !ok || (m.Type != msgDown && m.Type != msgUp) {
			continue
		}
		ev := input.Event{Action: a, Down: m.Type == msgDown}
		scheduler.Post(func() {
			if err := session.Dispatch(ev); err != nil {
				logger.Error("dispatch input", "action", ev.Action, "err", err)
			}
		})
	}

	cancel()
	<-writeDone
	<-runDone
}
