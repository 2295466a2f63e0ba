package sapling

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// --- White pixel singleton (no sync.Once — sapling is single-threaded) ---

var whiteImage *ebiten.Image

// ensureWhiteSubImage returns the center pixel of a 3x3 white image. Sampling
// an interior pixel keeps edge filtering from bleeding transparent texels in.
func ensureWhiteSubImage() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
	}
	return whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// EbitenSurface draws onto an ebiten image, usually the screen passed to
// Game.Draw. Paths are tessellated with ebiten's vector package after their
// points are mapped through the current matrix, so strokes scale with the
// matrix's average scale factor.
type EbitenSurface struct {
	dst       *ebiten.Image
	transform Matrix
	font      *Font

	verts []ebiten.Vertex
	inds  []uint16

	images map[image.Image]*ebiten.Image
}

// NewEbitenSurface wraps dst. The surface can be retargeted each frame with
// Reset so its image cache survives.
func NewEbitenSurface(dst *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{
		dst:       dst,
		transform: IdentityMatrix(),
		font:      DefaultFont(),
		images:    make(map[image.Image]*ebiten.Image),
	}
}

// Reset points the surface at a new destination image.
func (s *EbitenSurface) Reset(dst *ebiten.Image) {
	s.dst = dst
	s.transform = IdentityMatrix()
}

// SetFont replaces the font used for text. nil restores DefaultFont.
func (s *EbitenSurface) SetFont(f *Font) {
	if f == nil {
		f = DefaultFont()
	}
	s.font = f
}

// Target returns the destination image.
func (s *EbitenSurface) Target() *ebiten.Image { return s.dst }

func (s *EbitenSurface) Size() (int, int) {
	b := s.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (s *EbitenSurface) SetTransform(m Matrix) { s.transform = m }

func (s *EbitenSurface) Clear() { s.dst.Clear() }

func (s *EbitenSurface) FillRect(x, y, w, h float64, style FillStyle, alpha float64) {
	s.FillPath(RectPath(x, y, w, h), style, alpha)
}

func (s *EbitenSurface) StrokeRect(x, y, w, h float64, style LineStyle, alpha float64) {
	s.StrokePath(RectPath(x, y, w, h), style, alpha)
}

func (s *EbitenSurface) FillPath(p *VectorPath, style FillStyle, alpha float64) {
	path := s.devicePath(p)
	s.verts, s.inds = path.AppendVerticesAndIndicesForFilling(s.verts[:0], s.inds[:0])
	s.drawTriangles(style.paint(alpha))
}

func (s *EbitenSurface) StrokePath(p *VectorPath, style LineStyle, alpha float64) {
	if style.Width <= 0 {
		return
	}
	path := s.devicePath(p)
	op := &vector.StrokeOptions{
		Width:      float32(style.Width * math.Sqrt(math.Abs(s.transform.Determinant()))),
		LineCap:    ebitenLineCap(style.Cap),
		LineJoin:   ebitenLineJoin(style.Join),
		MiterLimit: float32(style.MiterLimit),
	}
	s.verts, s.inds = path.AppendVerticesAndIndicesForStroke(s.verts[:0], s.inds[:0], op)
	s.drawTriangles(style.paint(alpha))
}

func (s *EbitenSurface) FillText(str string, x, y float64, ts TextStyle, style FillStyle, alpha float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(matrixGeoM(s.transform))
	op.ColorScale.ScaleWithColor(style.paint(alpha))
	text.Draw(s.dst, str, s.font.Face(ts.size()), op)
}

func (s *EbitenSurface) MeasureText(str string, ts TextStyle) TextMetrics {
	return s.font.Measure(str, ts.size())
}

func (s *EbitenSurface) DrawImage(img image.Image, src *Rect, dst Rect, alpha float64) {
	eimg := s.ebitenImage(img)
	if src != nil {
		eimg = eimg.SubImage(image.Rect(
			int(src.X), int(src.Y),
			int(src.X+src.Width), int(src.Y+src.Height),
		)).(*ebiten.Image)
	}
	b := eimg.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dst.Width/float64(b.Dx()), dst.Height/float64(b.Dy()))
	op.GeoM.Translate(dst.X, dst.Y)
	op.GeoM.Concat(matrixGeoM(s.transform))
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(eimg, op)
}

// Snapshot reads back the destination pixels. Only valid inside the game loop.
func (s *EbitenSurface) Snapshot() (image.Image, error) {
	b := s.dst.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	s.dst.ReadPixels(img.Pix)
	return img, nil
}

func (s *EbitenSurface) ebitenImage(img image.Image) *ebiten.Image {
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	if e, ok := s.images[img]; ok {
		return e
	}
	e := ebiten.NewImageFromImage(img)
	s.images[img] = e
	return e
}

// devicePath converts p into an ebiten path in device coordinates.
func (s *EbitenSurface) devicePath(p *VectorPath) *vector.Path {
	var path vector.Path
	m := s.transform
	p.Walk(func(v PathVerb, pts []Point) {
		switch v {
		case VerbMoveTo:
			q := m.Apply(pts[0])
			path.MoveTo(float32(q.X), float32(q.Y))
		case VerbLineTo:
			q := m.Apply(pts[0])
			path.LineTo(float32(q.X), float32(q.Y))
		case VerbCubicTo:
			c1, c2, q := m.Apply(pts[0]), m.Apply(pts[1]), m.Apply(pts[2])
			path.CubicTo(float32(c1.X), float32(c1.Y), float32(c2.X), float32(c2.Y), float32(q.X), float32(q.Y))
		case VerbClose:
			path.Close()
		}
	})
	return &path
}

func (s *EbitenSurface) drawTriangles(c Color) {
	if len(s.inds) == 0 {
		return
	}
	r, g, b, a := float32(clamp01(c.R)), float32(clamp01(c.G)), float32(clamp01(c.B)), float32(clamp01(c.A))
	for i := range s.verts {
		v := &s.verts[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = r, g, b, a
	}
	op := &ebiten.DrawTrianglesOptions{
		FillRule:  ebiten.FillRuleNonZero,
		AntiAlias: true,
	}
	s.dst.DrawTriangles(s.verts, s.inds, ensureWhiteSubImage(), op)
}

// matrixGeoM converts a Matrix into an ebiten.GeoM.
func matrixGeoM(m Matrix) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m.A)
	g.SetElement(1, 0, m.B)
	g.SetElement(0, 1, m.C)
	g.SetElement(1, 1, m.D)
	g.SetElement(0, 2, m.TX)
	g.SetElement(1, 2, m.TY)
	return g
}

func ebitenLineCap(c LineCap) vector.LineCap {
	switch c {
	case LineCapRound:
		return vector.LineCapRound
	case LineCapSquare:
		return vector.LineCapSquare
	default:
		return vector.LineCapButt
	}
}

func ebitenLineJoin(j LineJoin) vector.LineJoin {
	switch j {
	case LineJoinBevel:
		return vector.LineJoinBevel
	case LineJoinRound:
		return vector.LineJoinRound
	default:
		return vector.LineJoinMiter
	}
}
