package draw

import (
	"image/color"
	"sync"
)

// Op names a recorded drawing primitive.
type Op string

const (
	OpClear  Op = "clear"
	OpFill   Op = "fill"
	OpStroke Op = "stroke"
	OpText   Op = "text"
)

// Command is one recorded primitive. The JSON form is what the browser
// canvas replays; the typed fields are used when replaying in process.
type Command struct {
	Op        Op      `json:"op"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	W         float64 `json:"w,omitempty"`
	H         float64 `json:"h,omitempty"`
	Color     string  `json:"color,omitempty"`
	Text      string  `json:"text,omitempty"`
	CSSFont   string  `json:"font,omitempty"`
	TextAlign string  `json:"align,omitempty"`

	RGBA  color.RGBA `json:"-"`
	Font  Font       `json:"-"`
	Align Align      `json:"-"`
}

// Recorder is a Renderer that captures each frame as a list of commands.
// Flush publishes the frame to the sink and keeps it as the latest frame.
type Recorder struct {
	frame []Command
	sink  func([]Command) error

	mu     sync.Mutex
	latest []Command
}

var (
	_ Renderer = (*Recorder)(nil)
	_ Flusher  = (*Recorder)(nil)
)

// NewRecorder creates a recorder. sink may be nil.
func NewRecorder(sink func([]Command) error) *Recorder {
	return &Recorder{sink: sink}
}

func (r *Recorder) Clear() {
	r.frame = append(r.frame[:0], Command{Op: OpClear})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.RGBA) {
	r.frame = append(r.frame, Command{Op: OpFill, X: x, Y: y, W: w, H: h, Color: Hex(c), RGBA: c})
}

func (r *Recorder) StrokeRect(x, y, w, h float64, c color.RGBA) {
	r.frame = append(r.frame, Command{Op: OpStroke, X: x, Y: y, W: w, H: h, Color: Hex(c), RGBA: c})
}

func (r *Recorder) DrawText(text string, x, y float64, font Font, c color.RGBA, align Align) {
	r.frame = append(r.frame, Command{
		Op:        OpText,
		X:         x,
		Y:         y,
		Color:     Hex(c),
		Text:      text,
		CSSFont:   font.String(),
		TextAlign: align.String(),
		RGBA:      c,
		Font:      font,
		Align:     align,
	})
}

// Flush hands a copy of the current frame to the sink.
func (r *Recorder) Flush() error {
	frame := make([]Command, len(r.frame))
	copy(frame, r.frame)

	r.mu.Lock()
	r.latest = frame
	r.mu.Unlock()

	if r.sink != nil {
		return r.sink(frame)
	}
	return nil
}

// Frame returns the last flushed frame. The slice must not be modified.
func (r *Recorder) Frame() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest
}

// Pending returns the commands recorded since the last Clear.
func (r *Recorder) Pending() []Command {
	return r.frame
}

// Replay draws cmds onto dst.
func Replay(cmds []Command, dst Renderer) {
	for _, c := range cmds {
		switch c.Op {
		case OpClear:
			dst.Clear()
		case OpFill:
			dst.FillRect(c.X, c.Y, c.W, c.H, c.RGBA)
		case OpStroke:
			dst.StrokeRect(c.X, c.Y, c.W, c.H, c.RGBA)
		case OpText:
			dst.DrawText(c.Text, c.X, c.Y, c.Font, c.RGBA, c.Align)
		}
	}
}
