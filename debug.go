package sapling

import (
	"image"
	"time"
)

// globalDebug mirrors the most recently set Scene debug flag so that tree
// operations, which have no Scene pointer, can check it cheaply. With several
// scenes it reflects whichever called SetDebugMode last.
var globalDebug bool

// frameStats holds per-frame timings. Only populated in debug mode.
type frameStats struct {
	flushed       int
	flushTime     time.Duration
	transformTime time.Duration
	renderTime    time.Duration
	drawCount     int
}

func (s *Scene) debugLog(stats frameStats) {
	if !s.debug {
		return
	}
	logger().Debug("sapling frame",
		"frame", s.frame,
		"flushed", stats.flushed,
		"flush", stats.flushTime,
		"transform", stats.transformTime,
		"render", stats.renderTime,
		"total", stats.flushTime+stats.transformTime+stats.renderTime,
		"draws", stats.drawCount)
}

const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns when n sits deeper than debugMaxTreeDepth.
func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger().Warn("sapling: tree depth exceeds threshold",
			"node", n.Name, "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

const debugMaxChildCount = 1000

// debugCheckChildCount warns when n has more than debugMaxChildCount children.
func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		logger().Warn("sapling: child count exceeds threshold",
			"node", n.Name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}

// countingSurface wraps a Surface and counts draw operations for debug stats.
type countingSurface struct {
	Surface
	draws int
}

func (c *countingSurface) FillRect(x, y, w, h float64, style FillStyle, alpha float64) {
	c.draws++
	c.Surface.FillRect(x, y, w, h, style, alpha)
}

func (c *countingSurface) StrokeRect(x, y, w, h float64, style LineStyle, alpha float64) {
	c.draws++
	c.Surface.StrokeRect(x, y, w, h, style, alpha)
}

func (c *countingSurface) FillPath(p *VectorPath, style FillStyle, alpha float64) {
	c.draws++
	c.Surface.FillPath(p, style, alpha)
}

func (c *countingSurface) StrokePath(p *VectorPath, style LineStyle, alpha float64) {
	c.draws++
	c.Surface.StrokePath(p, style, alpha)
}

func (c *countingSurface) FillText(s string, x, y float64, ts TextStyle, style FillStyle, alpha float64) {
	c.draws++
	c.Surface.FillText(s, x, y, ts, style, alpha)
}

func (c *countingSurface) DrawImage(img image.Image, src *Rect, dst Rect, alpha float64) {
	c.draws++
	c.Surface.DrawImage(img, src, dst, alpha)
}
