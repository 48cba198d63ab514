// Package draw defines the rendering surface the game draws through and
// the renderers that implement it for terminals and recorded frames.
package draw

import (
	"fmt"
	"image/color"
	"strings"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Surface describes the logical size of a render target.
type Surface struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Align is the horizontal anchoring of text relative to its x coordinate.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// String returns the canvas textAlign keyword.
func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Font selects the text size. The family is up to the renderer.
type Font struct {
	Size int  `json:"size"`
	Bold bool `json:"bold,omitempty"`
}

// Common fonts.
var (
	FontInfo  = Font{Size: 14}
	FontBody  = Font{Size: 16}
	FontTitle = Font{Size: 30, Bold: true}
)

// String returns the font in CSS shorthand, e.g. "bold 30px Arial".
func (f Font) String() string {
	var sb strings.Builder
	if f.Bold {
		sb.WriteString("bold ")
	}
	fmt.Fprintf(&sb, "%dpx Arial", f.Size)
	return sb.String()
}

// Palette.
var (
	ColorBackground = color.RGBA{0x00, 0x00, 0x00, 0xff}
	ColorShip       = color.RGBA{0x99, 0x99, 0x99, 0xff}
	ColorInvader    = color.RGBA{0x00, 0x66, 0x00, 0xff}
	ColorBomb       = color.RGBA{0xff, 0x55, 0x55, 0xff}
	ColorRocket     = color.RGBA{0xff, 0x00, 0x00, 0xff}
	ColorText       = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ColorDebug      = color.RGBA{0xff, 0x00, 0xff, 0xff}
)

// Hex formats c as a "#rrggbb" string.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Renderer is the set of primitives the game draws with.
// Coordinates are logical surface units with the origin at the top left.
type Renderer interface {
	Clear()
	FillRect(x, y, w, h float64, c color.RGBA)
	StrokeRect(x, y, w, h float64, c color.RGBA)
	DrawText(text string, x, y float64, font Font, c color.RGBA, align Align)
}

// Flusher is implemented by renderers that buffer a frame and need it
// pushed to their output once drawing is complete.
type Flusher interface {
	Flush() error
}
