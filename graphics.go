package sapling

import "image"

// GraphicsData is one entry in a Graphics list: a shape plus the fill and
// line styles that were current when it was drawn.
type GraphicsData struct {
	Shape Shape
	Fill  FillStyle
	Line  LineStyle
}

// hittable reports whether the entry takes part in hit testing. Only filled
// shapes are hit; a Path is hit when any of its runs is filled.
func (d *GraphicsData) hittable() bool {
	if p, ok := d.Shape.(*Path); ok {
		return p.filled()
	}
	return d.Fill.Visible
}

// Graphics is a retained list of shapes drawn by a graphics node, built
// with a pen-style API:
//
//	g := node.Graphics()
//	g.BeginFill(sapling.Fill(red)).DrawRect(0, 0, 100, 50)
//	g.BeginLine(sapling.Line(black, 2)).MoveTo(0, 0).LineTo(100, 50)
//
// Shapes capture the styles current when they are added. Free-form MoveTo
// and LineTo calls extend the current Path, which picks up style changes
// as they happen.
type Graphics struct {
	data []*GraphicsData
	fill FillStyle
	line LineStyle
	path *Path
}

func newGraphics() *Graphics {
	g := &Graphics{}
	g.Clear()
	return g
}

// Data returns the shape list in draw order. The returned slice MUST NOT be
// mutated, but its entries may be edited in place.
func (g *Graphics) Data() []*GraphicsData {
	return g.data
}

// Clear drops every shape and resets both styles to their defaults.
func (g *Graphics) Clear() *Graphics {
	clear(g.data)
	g.data = g.data[:0]
	g.fill = DefaultFillStyle()
	g.line = DefaultLineStyle()
	g.path = NewPath(g.fill, g.line)
	g.drawShape(g.path)
	return g
}

// BeginFill makes style the current fill and turns filling on. A zero Alpha
// is treated as opaque.
func (g *Graphics) BeginFill(style FillStyle) *Graphics {
	if style.Alpha == 0 {
		style.Alpha = 1
	}
	style.Visible = true
	g.fill = style
	g.path.pushState(g.fill, g.line)
	return g
}

// EndFill turns filling off for shapes drawn afterward.
func (g *Graphics) EndFill() *Graphics {
	g.fill.Visible = false
	g.path.pushState(g.fill, g.line)
	return g
}

// BeginLine makes style the current line and turns stroking on. A zero
// Alpha is treated as opaque and a zero MiterLimit as 10.
func (g *Graphics) BeginLine(style LineStyle) *Graphics {
	if style.Alpha == 0 {
		style.Alpha = 1
	}
	if style.MiterLimit == 0 {
		style.MiterLimit = 10
	}
	style.Visible = true
	g.line = style.clone()
	g.path.pushState(g.fill, g.line)
	return g
}

// EndLine turns stroking off for shapes drawn afterward.
func (g *Graphics) EndLine() *Graphics {
	g.line.Visible = false
	g.path.pushState(g.fill, g.line)
	return g
}

func (g *Graphics) drawShape(s Shape) *Graphics {
	g.data = append(g.data, &GraphicsData{Shape: s, Fill: g.fill, Line: g.line.clone()})
	return g
}

// DrawShape appends any Shape with the current styles.
func (g *Graphics) DrawShape(s Shape) *Graphics {
	return g.drawShape(s)
}

func (g *Graphics) DrawRect(x, y, w, h float64) *Graphics {
	return g.drawShape(NewRectangle(x, y, w, h))
}

func (g *Graphics) DrawCircle(x, y, radius float64) *Graphics {
	return g.drawShape(NewCircle(x, y, radius))
}

func (g *Graphics) DrawEllipse(x, y, rx, ry float64) *Graphics {
	return g.drawShape(NewEllipse(x, y, rx, ry))
}

func (g *Graphics) DrawRoundRect(x, y, w, h, radius float64) *Graphics {
	return g.drawShape(NewRoundRect(x, y, w, h, radius))
}

// DrawPolygon adds a closed polygon from flat x, y pairs.
func (g *Graphics) DrawPolygon(coords ...float64) *Graphics {
	return g.drawShape(NewPolygon(coords, true))
}

// DrawText adds a line of text anchored at (x, y).
func (g *Graphics) DrawText(content string, x, y float64, style TextStyle) *Graphics {
	return g.drawShape(NewText(content, x, y, style))
}

// DrawImage adds a bitmap; see NewImage for how zero sizes are resolved.
func (g *Graphics) DrawImage(src image.Image, x, y, w, h float64) *Graphics {
	return g.drawShape(NewImage(src, x, y, w, h, nil))
}

// DrawImageRegion adds the clip region of src scaled into (x, y, w, h).
func (g *Graphics) DrawImageRegion(src image.Image, clip Rect, x, y, w, h float64) *Graphics {
	return g.drawShape(NewImage(src, x, y, w, h, &clip))
}

// MoveTo starts a new subpath in the current path.
func (g *Graphics) MoveTo(x, y float64) *Graphics {
	g.path.moveTo(x, y)
	return g
}

// LineTo extends the current subpath.
func (g *Graphics) LineTo(x, y float64) *Graphics {
	g.path.lineTo(x, y)
	return g
}

// ClosePath closes the subpaths drawn since the last style change.
func (g *Graphics) ClosePath() *Graphics {
	g.path.closePath()
	return g
}

// BeginPath starts a new current path after every shape added so far.
func (g *Graphics) BeginPath() *Graphics {
	g.path = NewPath(g.fill, g.line)
	return g.drawShape(g.path)
}

// ClearPath drops the points of the current path.
func (g *Graphics) ClearPath() *Graphics {
	g.path.reset()
	return g
}

func (g *Graphics) hasFill() bool {
	for _, d := range g.data {
		if d.hittable() {
			return true
		}
	}
	return false
}

// contains tests local point p against every hittable entry.
func (g *Graphics) contains(p Point) bool {
	for _, d := range g.data {
		if d.hittable() && d.Shape.Contains(p) {
			return true
		}
	}
	return false
}

// render draws every entry under world. Shadows are drawn first, as a copy
// offset in device space. Paths are drawn without shadows.
func (g *Graphics) render(s Surface, world Matrix, alpha float64) {
	for _, d := range g.data {
		if _, isPath := d.Shape.(*Path); !isPath {
			g.renderShadows(s, d, world, alpha)
		}
		s.SetTransform(world)
		d.Shape.Render(s, d, alpha)
	}
}

func (g *Graphics) renderShadows(s Surface, d *GraphicsData, world Matrix, alpha float64) {
	off := DefaultLineStyle()
	if d.Fill.Visible && d.Fill.HasShadow() {
		m := world
		m.Prepend(TranslationMatrix(d.Fill.ShadowOffsetX, d.Fill.ShadowOffsetY))
		s.SetTransform(m)
		d.Shape.Render(s, &GraphicsData{Shape: d.Shape, Fill: d.Fill.shadow(), Line: off}, alpha)
	}
	if d.Line.Visible && d.Line.HasShadow() {
		m := world
		m.Prepend(TranslationMatrix(d.Line.ShadowOffsetX, d.Line.ShadowOffsetY))
		s.SetTransform(m)
		d.Shape.Render(s, &GraphicsData{Shape: d.Shape, Fill: DefaultFillStyle(), Line: d.Line.shadow()}, alpha)
	}
}

func (g *Graphics) clone() *Graphics {
	c := &Graphics{
		data: make([]*GraphicsData, len(g.data)),
		fill: g.fill,
		line: g.line.clone(),
	}
	for i, d := range g.data {
		cd := &GraphicsData{Shape: d.Shape.Clone(), Fill: d.Fill, Line: d.Line.clone()}
		if d.Shape == Shape(g.path) {
			c.path = cd.Shape.(*Path)
		}
		c.data[i] = cd
	}
	if c.path == nil {
		c.path = NewPath(c.fill, c.line)
	}
	return c
}
