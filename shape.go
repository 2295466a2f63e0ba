package sapling

import (
	"math"
	"strconv"
)

// ShapeKind identifies a Shape implementation.
type ShapeKind uint8

const (
	ShapeRectangle ShapeKind = iota
	ShapeCircle
	ShapeEllipse
	ShapeRoundRect
	ShapePolygon
	ShapePath
	ShapeText
	ShapeImage
)

var shapeKindNames = [...]string{
	ShapeRectangle: "rectangle",
	ShapeCircle:    "circle",
	ShapeEllipse:   "ellipse",
	ShapeRoundRect: "roundRect",
	ShapePolygon:   "polygon",
	ShapePath:      "path",
	ShapeText:      "text",
	ShapeImage:     "image",
}

func (k ShapeKind) String() string {
	if int(k) < len(shapeKindNames) {
		return shapeKindNames[k]
	}
	return "ShapeKind(" + strconv.Itoa(int(k)) + ")"
}

// Shape is a geometric primitive in a node's local space. Shapes serve both
// as Graphics entries and as hit areas.
type Shape interface {
	// Contains reports whether local point p is inside the shape.
	Contains(p Point) bool
	// Render draws the shape with d's styles. alpha is the node's world alpha.
	Render(s Surface, d *GraphicsData, alpha float64)
	Kind() ShapeKind
	Clone() Shape
}

// --- Rectangle ---

// Rectangle is an axis-aligned rectangle. Points on its edges are outside.
type Rectangle struct {
	X, Y, Width, Height float64
}

// NewRectangle returns a rectangle with its top-left corner at (x, y).
func NewRectangle(x, y, w, h float64) *Rectangle {
	return &Rectangle{X: x, Y: y, Width: w, Height: h}
}

// Contains reports whether p is strictly inside r.
func (r *Rectangle) Contains(p Point) bool {
	return p.X > r.X && p.X < r.X+r.Width && p.Y > r.Y && p.Y < r.Y+r.Height
}

// Render fills then strokes r with d's active styles.
func (r *Rectangle) Render(s Surface, d *GraphicsData, alpha float64) {
	if d.Fill.Visible {
		s.FillRect(r.X, r.Y, r.Width, r.Height, d.Fill, alpha)
	}
	if d.Line.Visible {
		s.StrokeRect(r.X, r.Y, r.Width, r.Height, d.Line, alpha)
	}
}

// Kind returns ShapeRectangle.
func (r *Rectangle) Kind() ShapeKind { return ShapeRectangle }

// Clone returns a copy of r.
func (r *Rectangle) Clone() Shape {
	c := *r
	return &c
}

// --- Circle ---

// Circle is centered at (X, Y). Points on the circumference are inside.
type Circle struct {
	X, Y, Radius float64
}

// NewCircle returns a circle centered at (x, y).
func NewCircle(x, y, radius float64) *Circle {
	return &Circle{X: x, Y: y, Radius: radius}
}

// Contains reports whether p is inside c or on its circumference.
func (c *Circle) Contains(p Point) bool {
	dx, dy := p.X-c.X, p.Y-c.Y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Render fills then strokes c as a path.
func (c *Circle) Render(s Surface, d *GraphicsData, alpha float64) {
	renderPath(s, EllipsePath(c.X, c.Y, c.Radius, c.Radius), d, alpha)
}

// Kind returns ShapeCircle.
func (c *Circle) Kind() ShapeKind { return ShapeCircle }

// Clone returns a copy of c.
func (c *Circle) Clone() Shape {
	cc := *c
	return &cc
}

// --- Ellipse ---

// Ellipse is axis-aligned and centered at (X, Y).
type Ellipse struct {
	X, Y, RadiusX, RadiusY float64
}

// NewEllipse returns an ellipse centered at (x, y) with radii rx and ry.
func NewEllipse(x, y, rx, ry float64) *Ellipse {
	return &Ellipse{X: x, Y: y, RadiusX: rx, RadiusY: ry}
}

// Contains reports whether p is inside e or on its edge. An ellipse with a
// non-positive radius contains nothing.
func (e *Ellipse) Contains(p Point) bool {
	if e.RadiusX <= 0 || e.RadiusY <= 0 {
		return false
	}
	dx, dy := (p.X-e.X)/e.RadiusX, (p.Y-e.Y)/e.RadiusY
	return dx*dx+dy*dy <= 1
}

// Render fills then strokes e as a path.
func (e *Ellipse) Render(s Surface, d *GraphicsData, alpha float64) {
	renderPath(s, EllipsePath(e.X, e.Y, e.RadiusX, e.RadiusY), d, alpha)
}

// Kind returns ShapeEllipse.
func (e *Ellipse) Kind() ShapeKind { return ShapeEllipse }

// Clone returns a copy of e.
func (e *Ellipse) Clone() Shape {
	c := *e
	return &c
}

// --- RoundRect ---

// RoundRect is a rectangle with circular corners. The radius is clamped to
// half the smaller side at construction.
type RoundRect struct {
	X, Y, Width, Height, Radius float64
}

// NewRoundRect returns a rounded rectangle, clamping radius to half the
// smaller side.
func NewRoundRect(x, y, w, h, radius float64) *RoundRect {
	if limit := math.Min(w, h) / 2; radius > limit {
		radius = limit
	}
	return &RoundRect{X: x, Y: y, Width: w, Height: h, Radius: radius}
}

// Contains reports whether p is strictly inside the rectangle and, in a
// corner region, within the corner's radius.
func (r *RoundRect) Contains(p Point) bool {
	if !(p.X > r.X && p.X < r.X+r.Width && p.Y > r.Y && p.Y < r.Y+r.Height) {
		return false
	}
	left, right := r.X+r.Radius, r.X+r.Width-r.Radius
	top, bottom := r.Y+r.Radius, r.Y+r.Height-r.Radius
	var cx, cy float64
	switch {
	case p.X < left && p.Y < top:
		cx, cy = left, top
	case p.X > right && p.Y < top:
		cx, cy = right, top
	case p.X < left && p.Y > bottom:
		cx, cy = left, bottom
	case p.X > right && p.Y > bottom:
		cx, cy = right, bottom
	default:
		return true
	}
	dx, dy := p.X-cx, p.Y-cy
	return dx*dx+dy*dy <= r.Radius*r.Radius
}

// Render fills then strokes r as a path.
func (r *RoundRect) Render(s Surface, d *GraphicsData, alpha float64) {
	renderPath(s, RoundRectPath(r.X, r.Y, r.Width, r.Height, r.Radius), d, alpha)
}

// Kind returns ShapeRoundRect.
func (r *RoundRect) Kind() ShapeKind { return ShapeRoundRect }

// Clone returns a copy of r.
func (r *RoundRect) Clone() Shape {
	c := *r
	return &c
}

// --- Polygon ---

// Polygon is a sequence of vertices. A NaN vertex starts a new ring. Hit
// testing uses the even-odd rule and always treats each ring as closed;
// Closed only affects how the outline is stroked.
type Polygon struct {
	Points []Point
	Closed bool
}

// NewPolygon builds a polygon from flat x, y pairs. A trailing odd value is
// ignored.
func NewPolygon(coords []float64, closed bool) *Polygon {
	pts := make([]Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		pts = append(pts, Point{coords[i], coords[i+1]})
	}
	return &Polygon{Points: pts, Closed: closed}
}

// Contains applies the even-odd rule across every ring.
func (g *Polygon) Contains(p Point) bool {
	return evenOddContains(g.Points, p)
}

// Render fills then strokes g, closing the outline only when Closed is set.
func (g *Polygon) Render(s Surface, d *GraphicsData, alpha float64) {
	renderPath(s, polylinePath(g.Points, g.Closed), d, alpha)
}

// Kind returns ShapePolygon.
func (g *Polygon) Kind() ShapeKind { return ShapePolygon }

// Clone returns a copy with its own vertex slice.
func (g *Polygon) Clone() Shape {
	return &Polygon{Points: append([]Point(nil), g.Points...), Closed: g.Closed}
}

// --- Helpers ---

func renderPath(s Surface, p *VectorPath, d *GraphicsData, alpha float64) {
	if d.Fill.Visible {
		s.FillPath(p, d.Fill, alpha)
	}
	if d.Line.Visible {
		s.StrokePath(p, d.Line, alpha)
	}
}

func isSeparator(p Point) bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

// polylinePath converts NaN-separated rings into a VectorPath.
func polylinePath(pts []Point, closed bool) *VectorPath {
	vp := &VectorPath{}
	start := true
	open := false
	for _, pt := range pts {
		if isSeparator(pt) {
			if open && closed {
				vp.Close()
			}
			start, open = true, false
			continue
		}
		if start {
			vp.MoveTo(pt.X, pt.Y)
			start = false
		} else {
			vp.LineTo(pt.X, pt.Y)
		}
		open = true
	}
	if open && closed {
		vp.Close()
	}
	return vp
}

// evenOddContains casts a ray from p toward +X across every ring of pts,
// closing each ring implicitly, and reports an odd crossing count.
func evenOddContains(pts []Point, p Point) bool {
	count := 0
	ringStart := -1
	for i := 0; i <= len(pts); i++ {
		if i == len(pts) || isSeparator(pts[i]) {
			if ringStart >= 0 && i-ringStart > 2 {
				if isIntersect(p, pts[i-1], pts[ringStart]) {
					count++
				}
			}
			ringStart = -1
			continue
		}
		if ringStart < 0 {
			ringStart = i
			continue
		}
		if isIntersect(p, pts[i-1], pts[i]) {
			count++
		}
	}
	return count%2 == 1
}

// isIntersect reports whether a ray from p toward +X crosses segment ab.
// Each edge is half-open in Y so a ray through a shared vertex counts once.
func isIntersect(p, a, b Point) bool {
	if (a.Y > p.Y) == (b.Y > p.Y) {
		return false
	}
	x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
	return p.X < x
}
