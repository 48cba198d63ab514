package draw

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// ChunkWriter accumulates terminal output and writes it in chunks so frames
// travel smoothly over SSH. Positions passed to MoveCursor and WriteAt are
// 1-based canvas coordinates; the centering offset is applied automatically.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer
	numBuf [20]byte
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset (e.g. after terminal resize).
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor appends an ANSI cursor position sequence.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Write implements io.Writer so Canvas.Render can target the chunk buffer.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends a string to the buffer.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteAt writes a string at a specific canvas position.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// textOverlay is a string placed over the canvas at a terminal cell.
type textOverlay struct {
	col, row int
	text     string
	color    color.RGBA
}

// Terminal renders frames to an ANSI terminal. Shapes go to a half-block
// Canvas; text is written as characters on top of it when the frame is flushed.
type Terminal struct {
	canvas *Canvas
	out    *ChunkWriter
	texts  []textOverlay
	drawn  []textOverlay // Overlays of the previous frame
	fresh  bool          // Clear the whole screen on the next flush
	colBuf []byte
}

var (
	_ Renderer = (*Terminal)(nil)
	_ Flusher  = (*Terminal)(nil)
)

// NewTerminal creates a terminal renderer mapping the logical surface onto
// cols x rows terminal cells.
func NewTerminal(w io.Writer, s Surface, cols, rows int) *Terminal {
	return &Terminal{
		canvas: NewScaledCanvas(cols, rows, float64(s.Width), float64(s.Height)),
		out:    NewChunkWriter(w, 0, 0),
		fresh:  true,
	}
}

// Resize updates the render area. Any change clears the screen on the next flush
// so no residue of the old layout survives.
func (t *Terminal) Resize(cols, rows, offsetCol, offsetRow int) {
	if cols != t.canvas.TerminalWidth() || rows != t.canvas.TerminalHeight() ||
		offsetCol != t.canvas.OffsetCol() || offsetRow != t.canvas.OffsetRow() {
		t.fresh = true
	}
	t.canvas.Resize(cols, rows)
	t.canvas.SetOffset(offsetCol, offsetRow)
	t.out.SetOffset(offsetCol, offsetRow)
}

// Canvas exposes the underlying pixel buffer.
func (t *Terminal) Canvas() *Canvas {
	return t.canvas
}

// Clear starts a new frame.
func (t *Terminal) Clear() {
	t.canvas.Clear()
	t.texts = t.texts[:0]
}

// FillRect fills a logical rectangle.
func (t *Terminal) FillRect(x, y, w, h float64, c color.RGBA) {
	t.canvas.FillRect(x, y, w, h, c)
}

// StrokeRect outlines a logical rectangle.
func (t *Terminal) StrokeRect(x, y, w, h float64, c color.RGBA) {
	t.canvas.StrokeRect(x, y, w, h, c)
}

// DrawText queues text anchored at its baseline, snapped to the nearest cell.
func (t *Terminal) DrawText(text string, x, y float64, font Font, c color.RGBA, align Align) {
	col, row := t.canvas.LogicalToTerminal(x, y-float64(font.Size)/2)
	n := utf8.RuneCountInString(text)
	switch align {
	case AlignCenter:
		col -= n / 2
	case AlignRight:
		col -= n
	}
	if col < 1 {
		col = 1
	}
	if row < 1 || row > t.canvas.TerminalHeight() {
		return
	}
	t.texts = append(t.texts, textOverlay{col: col, row: row, text: text, color: c})
}

// Flush writes the frame: changed canvas cells first, then the text overlays.
func (t *Terminal) Flush() error {
	if t.fresh {
		t.out.WriteString("\033[0m\033[H\033[2J")
		t.canvas.ForceRedraw()
		t.fresh = false
	}
	for _, o := range t.drawn {
		t.canvas.MarkTextDirty(o.col, o.row, utf8.RuneCountInString(o.text))
	}

	t.canvas.Render(t.out)

	for _, o := range t.texts {
		t.out.MoveCursor(o.col, o.row)
		t.colBuf = appendColor(t.colBuf[:0], 38, o.color)
		t.out.Write(t.colBuf)
		t.out.WriteString(o.text)
	}
	if len(t.texts) > 0 {
		t.out.WriteString("\033[0m")
	}
	t.drawn = append(t.drawn[:0], t.texts...)

	return t.out.Flush()
}
