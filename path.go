package sapling

import "math"

// pathRun is a stretch of a Path's points painted with one fill and line style.
type pathRun struct {
	start  int
	fill   FillStyle
	line   LineStyle
	closed bool
}

// Path is a free-form outline built with Graphics.MoveTo, LineTo and
// ClosePath. A NaN point separates subpaths. Each BeginFill or BeginLine
// while the path is current starts a new run, so one Path can paint
// different stretches with different styles.
type Path struct {
	Points []Point
	runs   []pathRun
}

// NewPath returns an empty path whose first run uses fill and line.
func NewPath(fill FillStyle, line LineStyle) *Path {
	return &Path{runs: []pathRun{{fill: fill, line: line.clone()}}}
}

// pushState starts a new run at the current end of Points. A run with no
// points yet is restyled in place.
func (p *Path) pushState(fill FillStyle, line LineStyle) {
	line = line.clone()
	if last := &p.runs[len(p.runs)-1]; last.start == len(p.Points) {
		last.fill, last.line = fill, line
		return
	}
	p.runs = append(p.runs, pathRun{start: len(p.Points), fill: fill, line: line})
}

// moveTo begins a new subpath at (x, y). Repeating the last point is a no-op.
func (p *Path) moveTo(x, y float64) {
	if n := len(p.Points); n > 0 {
		last := p.Points[n-1]
		if last.X == x && last.Y == y {
			return
		}
		if !isSeparator(last) {
			p.Points = append(p.Points, Point{math.NaN(), math.NaN()})
		}
	}
	p.Points = append(p.Points, Point{x, y})
}

func (p *Path) lineTo(x, y float64) {
	p.Points = append(p.Points, Point{x, y})
}

// closePath closes every subpath of the current run.
func (p *Path) closePath() {
	p.runs[len(p.runs)-1].closed = true
}

// reset drops every point and collapses the runs to the latest styles.
func (p *Path) reset() {
	last := p.runs[len(p.runs)-1]
	p.Points = p.Points[:0]
	p.runs = append(p.runs[:0], pathRun{fill: last.fill, line: last.line})
}

// filled reports whether any run paints its interior.
func (p *Path) filled() bool {
	for _, r := range p.runs {
		if r.fill.Visible {
			return true
		}
	}
	return false
}

// Contains applies the even-odd rule to every recorded point. Paths with
// fewer than three points contain nothing.
func (p *Path) Contains(pt Point) bool {
	if len(p.Points) < 3 {
		return false
	}
	return evenOddContains(p.Points, pt)
}

// Render paints each run with its own styles. d's styles are not used.
func (p *Path) Render(s Surface, _ *GraphicsData, alpha float64) {
	for i, r := range p.runs {
		end := len(p.Points)
		if i+1 < len(p.runs) {
			end = p.runs[i+1].start
		}
		if end <= r.start {
			continue
		}
		vp := polylinePath(p.Points[r.start:end], r.closed)
		if vp.Empty() {
			continue
		}
		if r.fill.Visible {
			s.FillPath(vp, r.fill, alpha)
		}
		if r.line.Visible {
			s.StrokePath(vp, r.line, alpha)
		}
	}
}

// Kind returns ShapePath.
func (p *Path) Kind() ShapeKind { return ShapePath }

// Clone returns a deep copy of the points and runs.
func (p *Path) Clone() Shape {
	c := &Path{
		Points: append([]Point(nil), p.Points...),
		runs:   make([]pathRun, len(p.runs)),
	}
	for i, r := range p.runs {
		r.line = r.line.clone()
		c.runs[i] = r
	}
	return c
}
