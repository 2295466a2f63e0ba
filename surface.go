package sapling

import (
	"image"
	"math"
)

// Surface is the drawing target a scene renders onto. Coordinates passed to
// the drawing methods are in the space set by the last SetTransform.
//
// Implementations: EbitenSurface (window), GGSurface (offscreen CPU raster)
// and Recorder (command log).
type Surface interface {
	// Size returns the surface dimensions in device pixels.
	Size() (width, height int)
	// SetTransform replaces the current matrix.
	SetTransform(m Matrix)
	// Clear resets every pixel to transparent.
	Clear()

	FillRect(x, y, w, h float64, style FillStyle, alpha float64)
	StrokeRect(x, y, w, h float64, style LineStyle, alpha float64)
	FillPath(p *VectorPath, style FillStyle, alpha float64)
	StrokePath(p *VectorPath, style LineStyle, alpha float64)

	// FillText draws s with its top-left corner at (x, y).
	FillText(s string, x, y float64, ts TextStyle, style FillStyle, alpha float64)
	MeasureText(s string, ts TextStyle) TextMetrics

	// DrawImage draws the src region of img (all of it when src is nil)
	// into dst.
	DrawImage(img image.Image, src *Rect, dst Rect, alpha float64)
}

// Snapshotter is implemented by surfaces that can read back their pixels.
type Snapshotter interface {
	Snapshot() (image.Image, error)
}

// PathVerb is one command in a VectorPath.
type PathVerb uint8

const (
	VerbMoveTo PathVerb = iota
	VerbLineTo
	VerbCubicTo
	VerbClose
)

// VectorPath is a device-independent outline: a list of verbs and the points
// they consume (MoveTo and LineTo one, CubicTo three, Close none).
type VectorPath struct {
	Verbs  []PathVerb
	Points []Point
}

func (p *VectorPath) MoveTo(x, y float64) {
	p.Verbs = append(p.Verbs, VerbMoveTo)
	p.Points = append(p.Points, Point{x, y})
}

func (p *VectorPath) LineTo(x, y float64) {
	p.Verbs = append(p.Verbs, VerbLineTo)
	p.Points = append(p.Points, Point{x, y})
}

func (p *VectorPath) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.Verbs = append(p.Verbs, VerbCubicTo)
	p.Points = append(p.Points, Point{c1x, c1y}, Point{c2x, c2y}, Point{x, y})
}

func (p *VectorPath) Close() {
	p.Verbs = append(p.Verbs, VerbClose)
}

// Reset empties the path, keeping its storage.
func (p *VectorPath) Reset() {
	p.Verbs = p.Verbs[:0]
	p.Points = p.Points[:0]
}

// Empty reports whether the path has no verbs.
func (p *VectorPath) Empty() bool {
	return len(p.Verbs) == 0
}

// Walk calls fn for each verb with the points it consumes.
func (p *VectorPath) Walk(fn func(v PathVerb, pts []Point)) {
	i := 0
	for _, v := range p.Verbs {
		n := 0
		switch v {
		case VerbMoveTo, VerbLineTo:
			n = 1
		case VerbCubicTo:
			n = 3
		}
		fn(v, p.Points[i:i+n])
		i += n
	}
}

// Transformed returns a copy of p with every point mapped through m.
func (p *VectorPath) Transformed(m Matrix) *VectorPath {
	out := &VectorPath{
		Verbs:  append([]PathVerb(nil), p.Verbs...),
		Points: make([]Point, len(p.Points)),
	}
	for i, pt := range p.Points {
		out.Points[i] = m.Apply(pt)
	}
	return out
}

// kappa is the control-point distance for a quarter-circle cubic.
const kappa = 0.5522847498

// RectPath returns the closed outline of an axis-aligned rectangle.
func RectPath(x, y, w, h float64) *VectorPath {
	p := &VectorPath{}
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
	return p
}

// EllipsePath returns a closed four-segment cubic approximation of an
// ellipse centered at (cx, cy).
func EllipsePath(cx, cy, rx, ry float64) *VectorPath {
	kx, ky := rx*kappa, ry*kappa
	p := &VectorPath{}
	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	p.CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	p.CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	p.CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	p.Close()
	return p
}

// RoundRectPath returns the closed outline of a rectangle with corners of
// radius r. r is clamped to half the smaller side.
func RoundRectPath(x, y, w, h, r float64) *VectorPath {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))
	if r == 0 {
		return RectPath(x, y, w, h)
	}
	k := r * kappa
	p := &VectorPath{}
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.CubicTo(x+w-r+k, y, x+w, y+r-k, x+w, y+r)
	p.LineTo(x+w, y+h-r)
	p.CubicTo(x+w, y+h-r+k, x+w-r+k, y+h, x+w-r, y+h)
	p.LineTo(x+r, y+h)
	p.CubicTo(x+r-k, y+h, x, y+h-r+k, x, y+h-r)
	p.LineTo(x, y+r)
	p.CubicTo(x, y+r-k, x+r-k, y, x+r, y)
	p.Close()
	return p
}
