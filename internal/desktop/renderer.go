package desktop

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/tomz197/invaders/internal/draw"
)

// Renderer draws onto an ebiten image. Set Target before each frame.
type Renderer struct {
	Target *ebiten.Image

	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource
	faces   map[draw.Font]*text.GoTextFace
}

var _ draw.Renderer = (*Renderer)(nil)

// NewRenderer loads the embedded Go fonts.
func NewRenderer() (*Renderer, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	return &Renderer{
		regular: regular,
		bold:    bold,
		faces:   make(map[draw.Font]*text.GoTextFace),
	}, nil
}

func (r *Renderer) Clear() {
	r.Target.Fill(draw.ColorBackground)
}

func (r *Renderer) FillRect(x, y, w, h float64, c color.RGBA) {
	vector.FillRect(r.Target, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (r *Renderer) StrokeRect(x, y, w, h float64, c color.RGBA) {
	vector.StrokeRect(r.Target, float32(x), float32(y), float32(w), float32(h), 1, c, false)
}

// DrawText draws text with its baseline at y.
func (r *Renderer) DrawText(s string, x, y float64, font draw.Font, c color.RGBA, align draw.Align) {
	face := r.face(font)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = textAlign(align)
	text.Draw(r.Target, s, face, op)
}

func (r *Renderer) face(f draw.Font) *text.GoTextFace {
	if face, ok := r.faces[f]; ok {
		return face
	}
	src := r.regular
	if f.Bold {
		src = r.bold
	}
	face := &text.GoTextFace{Source: src, Size: float64(f.Size)}
	r.faces[f] = face
	return face
}

func textAlign(a draw.Align) text.Align {
	switch a {
	case draw.AlignCenter:
		return text.AlignCenter
	case draw.AlignRight:
		return text.AlignEnd
	default:
		return text.AlignStart
	}
}
