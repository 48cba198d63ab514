package draw

import (
	"image/color"
	"io"
	"math"
	"strconv"
)

// cell is what one terminal character shows: the colors of its two half-block pixels.
// A zero alpha means the pixel is unset.
type cell struct {
	top, bottom color.RGBA
}

// dirtyCell never matches a rendered cell, forcing a repaint.
var dirtyCell = cell{top: color.RGBA{A: 1}}

// Canvas is a color drawing buffer with 2x vertical resolution using half-block characters.
// Logical coordinates are scaled to terminal pixels. Only cells that changed since the
// previous Render are written.
type Canvas struct {
	termWidth      int          // Actual terminal columns
	termHeight     int          // Actual terminal rows
	subPixelHeight int          // termHeight * 2
	pixels         []color.RGBA // Flat slice: [y * termWidth + x]
	prev           []cell       // Last rendered cell per terminal position

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets used to center the render area.
	offsetCol int
	offsetRow int

	numBuf [20]byte
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space the game draws in.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]color.RGBA, subPixelHeight*termWidth)
		c.prev = make([]cell, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.ForceRedraw()
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render repaint every cell.
func (c *Canvas) ForceRedraw() {
	for i := range c.prev {
		c.prev[i] = dirtyCell
	}
}

// MarkTextDirty flags n cells starting at the 1-based terminal position (col, row)
// so the next Render paints over text that was written there.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.termWidth {
			c.prev[r*c.termWidth+x] = dirtyCell
		}
	}
}

func (c *Canvas) setPixel(x, y int, col color.RGBA) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		col.A = 0xff
		c.pixels[y*c.termWidth+x] = col
	}
}

// FillRect fills a logical rectangle. Any rectangle that covers part of a pixel
// sets it, so small entities never disappear at low resolution.
func (c *Canvas) FillRect(x, y, w, h float64, col color.RGBA) {
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := int(math.Ceil((x + w) * c.scaleX))
	y1 := int(math.Ceil((y + h) * c.scaleY))
	if x1 == x0 {
		x1++
	}
	if y1 == y0 {
		y1++
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// StrokeRect draws the outline of a logical rectangle.
func (c *Canvas) StrokeRect(x, y, w, h float64, col color.RGBA) {
	x0 := int(math.Round(x * c.scaleX))
	y0 := int(math.Round(y * c.scaleY))
	x1 := int(math.Round((x+w)*c.scaleX)) - 1
	y1 := int(math.Round((y+h)*c.scaleY)) - 1
	for px := x0; px <= x1; px++ {
		c.setPixel(px, y0, col)
		c.setPixel(px, y1, col)
	}
	for py := y0; py <= y1; py++ {
		c.setPixel(x0, py, col)
		c.setPixel(x1, py, col)
	}
}

// At returns the pixel color at actual terminal pixel coordinates.
func (c *Canvas) At(x, y int) (color.RGBA, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return color.RGBA{}, false
	}
	p := c.pixels[y*c.termWidth+x]
	return p, p.A != 0
}

// maxChunkSize is the maximum bytes to write at once for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render writes every changed cell to w as half-block characters with
// 24-bit foreground and background colors.
func (c *Canvas) Render(w io.Writer) {
	var buf []byte
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			cur := cell{top: c.pixels[topOffset+col], bottom: c.pixels[bottomOffset+col]}
			idx := row*c.termWidth + col
			if c.prev[idx] == cur {
				continue
			}
			c.prev[idx] = cur

			buf = c.appendCursor(buf, col+1, row+1)
			buf = appendCell(buf, cur)
		}
	}
	if len(buf) == 0 {
		return
	}
	buf = append(buf, "\033[0m"...)

	for len(buf) > 0 {
		chunk := buf
		if len(chunk) > maxChunkSize {
			chunk = buf[:maxChunkSize]
		}
		w.Write(chunk)
		buf = buf[len(chunk):]
	}
}

func (c *Canvas) appendCursor(buf []byte, col, row int) []byte {
	buf = append(buf, "\033["...)
	buf = append(buf, strconv.AppendInt(c.numBuf[:0], int64(row+c.offsetRow), 10)...)
	buf = append(buf, ';')
	buf = append(buf, strconv.AppendInt(c.numBuf[:0], int64(col+c.offsetCol), 10)...)
	return append(buf, 'H')
}

func appendCell(buf []byte, cl cell) []byte {
	top := cl.top.A != 0
	bottom := cl.bottom.A != 0
	switch {
	case top && bottom && cl.top == cl.bottom:
		buf = appendColor(buf, 38, cl.top)
		buf = append(buf, "\033[49m"...)
		return append(buf, string(BlockFull)...)
	case top && bottom:
		buf = appendColor(buf, 38, cl.top)
		buf = appendColor(buf, 48, cl.bottom)
		return append(buf, string(BlockUpperHalf)...)
	case top:
		buf = appendColor(buf, 38, cl.top)
		buf = append(buf, "\033[49m"...)
		return append(buf, string(BlockUpperHalf)...)
	case bottom:
		buf = appendColor(buf, 38, cl.bottom)
		buf = append(buf, "\033[49m"...)
		return append(buf, string(BlockLowerHalf)...)
	default:
		return append(buf, "\033[0m "...)
	}
}

// appendColor appends an SGR 24-bit color sequence; layer is 38 (fg) or 48 (bg).
func appendColor(buf []byte, layer int, col color.RGBA) []byte {
	buf = append(buf, "\033["...)
	buf = strconv.AppendInt(buf, int64(layer), 10)
	buf = append(buf, ";2;"...)
	buf = strconv.AppendInt(buf, int64(col.R), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(col.G), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(col.B), 10)
	return append(buf, 'm')
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based terminal position (col, row).
// Used to place text overlays at positions matching canvas-drawn shapes.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}
