package sapling

// FillStyle describes how a shape's interior (or an image, or text) is painted.
// A style with Visible false paints nothing and does not make its shape
// hit-testable.
type FillStyle struct {
	Color   Color
	Alpha   float64
	Visible bool

	// Shadow is drawn as a copy of the shape offset in device space. The blur
	// radius is recorded but neither rasterizer applies it.
	ShadowOffsetX float64
	ShadowOffsetY float64
	ShadowBlur    float64
	ShadowColor   Color
}

// DefaultFillStyle returns the style used before any BeginFill: opaque black,
// not visible.
func DefaultFillStyle() FillStyle {
	return FillStyle{
		Color:       ColorBlack,
		Alpha:       1,
		ShadowColor: ColorBlack,
	}
}

// Fill returns a visible fill of color c at full alpha.
func Fill(c Color) FillStyle {
	f := DefaultFillStyle()
	f.Color = c
	f.Visible = true
	return f
}

// paint returns the color to draw with once the node's world alpha is applied.
func (f FillStyle) paint(alpha float64) Color {
	return f.Color.WithAlpha(f.Alpha * alpha)
}

// HasShadow reports whether a shadow pass is needed.
func (f FillStyle) HasShadow() bool {
	return (f.ShadowOffsetX != 0 || f.ShadowOffsetY != 0) && f.ShadowColor.A > 0
}

// shadow returns f recolored for the shadow pass.
func (f FillStyle) shadow() FillStyle {
	s := f
	s.Color = f.ShadowColor
	s.ShadowOffsetX, s.ShadowOffsetY = 0, 0
	return s
}

// LineCap is the shape drawn at the open ends of a stroke.
type LineCap uint8

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// LineJoin is the shape drawn where two stroke segments meet.
type LineJoin uint8

const (
	LineJoinMiter LineJoin = iota
	LineJoinBevel
	LineJoinRound
)

// LineStyle describes how a shape's outline is painted. It shares color,
// alpha, visibility and shadow with FillStyle.
type LineStyle struct {
	FillStyle
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       []float64
}

// DefaultLineStyle returns the style used before any BeginLine: zero width,
// butt caps, miter joins with limit 10, not visible.
func DefaultLineStyle() LineStyle {
	return LineStyle{
		FillStyle:  DefaultFillStyle(),
		MiterLimit: 10,
	}
}

// Line returns a visible solid stroke of color c and the given width.
func Line(c Color, width float64) LineStyle {
	l := DefaultLineStyle()
	l.Color = c
	l.Visible = true
	l.Width = width
	return l
}

func (l LineStyle) shadow() LineStyle {
	s := l
	s.FillStyle = l.FillStyle.shadow()
	return s
}

func (l LineStyle) clone() LineStyle {
	c := l
	c.Dash = append([]float64(nil), l.Dash...)
	return c
}

// TextAlign positions text horizontally relative to its anchor x.
type TextAlign uint8

const (
	TextAlignStart TextAlign = iota
	TextAlignCenter
	TextAlignEnd
)

// TextBaseline positions text vertically relative to its anchor y.
type TextBaseline uint8

const (
	TextBaselineAlphabetic TextBaseline = iota
	TextBaselineTop
	TextBaselineMiddle
	TextBaselineBottom
)

// DefaultFontSize is used by TextStyle values with a zero Size.
const DefaultFontSize = 16

// TextStyle configures DrawText.
type TextStyle struct {
	Size     float64
	Align    TextAlign
	Baseline TextBaseline
}

func (ts TextStyle) size() float64 {
	if ts.Size <= 0 {
		return DefaultFontSize
	}
	return ts.Size
}

// TextMetrics is the measured extent of a string, relative to its anchor.
type TextMetrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// origin returns the top-left corner of text anchored at (x, y).
func (ts TextStyle) origin(x, y float64, m TextMetrics) Point {
	switch ts.Align {
	case TextAlignCenter:
		x -= m.Width / 2
	case TextAlignEnd:
		x -= m.Width
	}
	h := m.Ascent + m.Descent
	switch ts.Baseline {
	case TextBaselineTop:
	case TextBaselineMiddle:
		y -= h / 2
	case TextBaselineBottom:
		y -= h
	default:
		y -= m.Ascent
	}
	return Point{x, y}
}
