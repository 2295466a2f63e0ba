package sapling

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// --- Text shape ---

// Text draws a single line of text anchored at (X, Y) according to Style.
// Its bounds are measured on the surface the first time it renders; until
// then it is never hit.
type Text struct {
	Content string
	X, Y    float64
	Style   TextStyle

	bounds   Rect
	measured bool
}

// NewText returns a text shape. It has no bounds until its first render.
func NewText(content string, x, y float64, style TextStyle) *Text {
	return &Text{Content: content, X: x, Y: y, Style: style}
}

// Bounds returns the local bounding box from the last render, and whether
// the text has been measured yet.
func (t *Text) Bounds() (Rect, bool) {
	return t.bounds, t.measured
}

// Contains reports whether p lies strictly inside the measured bounds.
// Unmeasured text contains nothing.
func (t *Text) Contains(p Point) bool {
	if !t.measured {
		return false
	}
	b := t.bounds
	return p.X > b.X && p.X < b.X+b.Width && p.Y > b.Y && p.Y < b.Y+b.Height
}

// Render measures the text if needed and draws it. With only a line style
// active, the text is painted in the line color since neither surface
// outlines glyphs.
func (t *Text) Render(s Surface, d *GraphicsData, alpha float64) {
	m := s.MeasureText(t.Content, t.Style)
	o := t.Style.origin(t.X, t.Y, m)
	t.bounds = Rect{X: o.X, Y: o.Y, Width: m.Width, Height: m.Ascent + m.Descent}
	t.measured = true
	switch {
	case d.Fill.Visible:
		s.FillText(t.Content, o.X, o.Y, t.Style, d.Fill, alpha)
	case d.Line.Visible:
		s.FillText(t.Content, o.X, o.Y, t.Style, d.Line.FillStyle, alpha)
	}
}

// Kind returns ShapeText.
func (t *Text) Kind() ShapeKind { return ShapeText }

// Clone returns a copy that keeps the measured bounds.
func (t *Text) Clone() Shape {
	c := *t
	return &c
}

// --- Fonts ---

// Font is a TrueType font source with faces cached per size.
type Font struct {
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// LoadFont parses TrueType or OpenType data.
func LoadFont(ttfData []byte) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("sapling: load font: %w", err)
	}
	return &Font{source: source, faces: make(map[float64]*text.GoTextFace)}, nil
}

var (
	defaultFontOnce sync.Once
	defaultFont     *Font
)

// DefaultFont returns Go Regular, the font surfaces use unless told otherwise.
func DefaultFont() *Font {
	defaultFontOnce.Do(func() {
		f, err := LoadFont(goregular.TTF)
		if err != nil {
			panic(err)
		}
		defaultFont = f
	})
	return defaultFont
}

// Face returns the face for size, creating it on first use.
func (f *Font) Face(size float64) *text.GoTextFace {
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := &text.GoTextFace{Source: f.source, Size: size}
	f.faces[size] = face
	return face
}

// Measure returns the advance width and vertical extent of s at size.
func (f *Font) Measure(s string, size float64) TextMetrics {
	face := f.Face(size)
	m := face.Metrics()
	return TextMetrics{
		Width:   text.Advance(s, face),
		Ascent:  m.HAscent,
		Descent: m.HDescent,
	}
}
