package sapling

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	ggtext "github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrSurfaceClosed is returned by GGSurface methods after Close.
var ErrSurfaceClosed = errors.New("sapling: surface closed")

// GGSurface renders onto an offscreen gg context. It needs no window, so it
// backs headless runs, screenshots and pixel tests.
//
// Text is drawn unrotated: the anchor is mapped through the current matrix
// and the font is scaled by the matrix's average scale factor.
type GGSurface struct {
	ctx       *gg.Context
	transform Matrix
	source    *ggtext.FontSource
	faces     map[float64]ggtext.Face
	images    map[image.Image]*gg.ImageBuf
	closed    bool
	err       error
}

// NewGGSurface creates a transparent width×height surface.
func NewGGSurface(width, height int) (*GGSurface, error) {
	source, err := ggtext.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("sapling: load font: %w", err)
	}
	return &GGSurface{
		ctx:       gg.NewContext(width, height),
		transform: IdentityMatrix(),
		source:    source,
		faces:     make(map[float64]ggtext.Face),
		images:    make(map[image.Image]*gg.ImageBuf),
	}, nil
}

// Context exposes the underlying gg context.
func (s *GGSurface) Context() *gg.Context { return s.ctx }

// Err returns the first rasterizer error since the surface was created.
func (s *GGSurface) Err() error { return s.err }

func (s *GGSurface) Size() (int, int) { return s.ctx.Width(), s.ctx.Height() }

func (s *GGSurface) SetTransform(m Matrix) {
	s.transform = m
	s.ctx.SetTransform(ggMatrix(m))
}

func (s *GGSurface) Clear() {
	if s.closed {
		return
	}
	s.ctx.Clear()
}

func (s *GGSurface) FillRect(x, y, w, h float64, style FillStyle, alpha float64) {
	if s.closed {
		return
	}
	s.ctx.ClearPath()
	s.ctx.DrawRectangle(x, y, w, h)
	s.fill(style.paint(alpha))
}

func (s *GGSurface) StrokeRect(x, y, w, h float64, style LineStyle, alpha float64) {
	if s.closed || style.Width <= 0 {
		return
	}
	s.ctx.ClearPath()
	s.ctx.DrawRectangle(x, y, w, h)
	s.stroke(style, alpha)
}

func (s *GGSurface) FillPath(p *VectorPath, style FillStyle, alpha float64) {
	if s.closed {
		return
	}
	s.tracePath(p)
	s.fill(style.paint(alpha))
}

func (s *GGSurface) StrokePath(p *VectorPath, style LineStyle, alpha float64) {
	if s.closed || style.Width <= 0 {
		return
	}
	s.tracePath(p)
	s.stroke(style, alpha)
}

func (s *GGSurface) FillText(str string, x, y float64, ts TextStyle, style FillStyle, alpha float64) {
	if s.closed {
		return
	}
	scale := math.Sqrt(math.Abs(s.transform.Determinant()))
	if scale == 0 {
		return
	}
	m := s.MeasureText(str, ts)
	face := s.face(ts.size() * scale)
	// DrawString works in device space with y on the baseline.
	q := s.transform.Apply(Point{x, y + m.Ascent})
	s.ctx.SetFont(face)
	s.ctx.SetColor(style.paint(alpha))
	s.ctx.DrawString(str, q.X, q.Y)
}

func (s *GGSurface) MeasureText(str string, ts TextStyle) TextMetrics {
	face := s.face(ts.size())
	m := face.Metrics()
	return TextMetrics{
		Width:   face.Advance(str),
		Ascent:  m.Ascent,
		Descent: m.Descent,
	}
}

// DrawImage draws an axis-aligned copy of img; rotation and skew in the
// current matrix only move the corners.
func (s *GGSurface) DrawImage(img image.Image, src *Rect, dst Rect, alpha float64) {
	if s.closed || alpha <= 0 {
		return
	}
	buf, ok := s.images[img]
	if !ok {
		buf = gg.ImageBufFromImage(img)
		s.images[img] = buf
	}
	opts := gg.DrawImageOptions{
		X:         dst.X,
		Y:         dst.Y,
		DstWidth:  dst.Width,
		DstHeight: dst.Height,
		Opacity:   math.Min(alpha, 1),
	}
	if src != nil {
		r := image.Rect(int(src.X), int(src.Y), int(src.X+src.Width), int(src.Y+src.Height))
		opts.SrcRect = &r
	}
	s.ctx.DrawImageEx(buf, opts)
}

// Snapshot returns the current pixels.
func (s *GGSurface) Snapshot() (image.Image, error) {
	if s.closed {
		return nil, ErrSurfaceClosed
	}
	if err := s.ctx.FlushGPU(); err != nil {
		return nil, fmt.Errorf("sapling: snapshot: %w", err)
	}
	return s.ctx.Image(), nil
}

// SavePNG writes the current pixels to path.
func (s *GGSurface) SavePNG(path string) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	if err := s.ctx.SavePNG(path); err != nil {
		return fmt.Errorf("sapling: save png: %w", err)
	}
	return nil
}

// Close releases the context. Drawing after Close is a no-op.
func (s *GGSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.ctx.Close()
}

func (s *GGSurface) face(size float64) ggtext.Face {
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := s.source.Face(size)
	s.faces[size] = f
	return f
}

func (s *GGSurface) tracePath(p *VectorPath) {
	s.ctx.ClearPath()
	p.Walk(func(v PathVerb, pts []Point) {
		switch v {
		case VerbMoveTo:
			s.ctx.MoveTo(pts[0].X, pts[0].Y)
		case VerbLineTo:
			s.ctx.LineTo(pts[0].X, pts[0].Y)
		case VerbCubicTo:
			s.ctx.CubicTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case VerbClose:
			s.ctx.ClosePath()
		}
	})
}

func (s *GGSurface) fill(c Color) {
	s.ctx.SetColor(c)
	s.record(s.ctx.Fill())
}

func (s *GGSurface) stroke(style LineStyle, alpha float64) {
	s.ctx.SetColor(style.paint(alpha))
	s.ctx.SetLineWidth(style.Width)
	s.ctx.SetLineCap(ggLineCap(style.Cap))
	s.ctx.SetLineJoin(ggLineJoin(style.Join))
	s.ctx.SetMiterLimit(style.MiterLimit)
	if len(style.Dash) > 0 {
		s.ctx.SetDash(style.Dash...)
	} else {
		s.ctx.ClearDash()
	}
	s.record(s.ctx.Stroke())
}

func (s *GGSurface) record(err error) {
	if err == nil {
		return
	}
	if s.err == nil {
		s.err = err
		logger().Warn("sapling: gg rasterizer failed", "error", err)
	}
}

// ggMatrix maps a Matrix onto gg's row-major layout.
func ggMatrix(m Matrix) gg.Matrix {
	return gg.Matrix{A: m.A, B: m.C, C: m.TX, D: m.B, E: m.D, F: m.TY}
}

func ggLineCap(c LineCap) gg.LineCap {
	switch c {
	case LineCapRound:
		return gg.LineCapRound
	case LineCapSquare:
		return gg.LineCapSquare
	default:
		return gg.LineCapButt
	}
}

func ggLineJoin(j LineJoin) gg.LineJoin {
	switch j {
	case LineJoinBevel:
		return gg.LineJoinBevel
	case LineJoinRound:
		return gg.LineJoinRound
	default:
		return gg.LineJoinMiter
	}
}
