package sapling

import "image"

// Image draws a bitmap into the rectangle (X, Y, Width, Height). Clip, when
// set, selects the source region. The image is painted only while a fill is
// active, using that fill's alpha, and is hit-tested as its rectangle.
type Image struct {
	Source              image.Image
	X, Y, Width, Height float64
	Clip                *Rect
}

// NewImage creates an image shape. A zero width and height take the
// source's natural size; when only one is zero it follows the aspect ratio.
func NewImage(src image.Image, x, y, w, h float64, clip *Rect) *Image {
	img := &Image{Source: src, X: x, Y: y, Width: w, Height: h, Clip: clip}
	if src == nil {
		return img
	}
	nw, nh := float64(src.Bounds().Dx()), float64(src.Bounds().Dy())
	if clip != nil {
		nw, nh = clip.Width, clip.Height
	}
	switch {
	case w == 0 && h == 0:
		img.Width, img.Height = nw, nh
	case w == 0 && nh > 0:
		img.Width = nw / nh * h
	case h == 0 && nw > 0:
		img.Height = nh / nw * w
	}
	return img
}

// Contains reports whether p is strictly inside the destination rectangle.
func (i *Image) Contains(p Point) bool {
	return p.X > i.X && p.X < i.X+i.Width && p.Y > i.Y && p.Y < i.Y+i.Height
}

// Render draws the source scaled into the destination rectangle. It draws
// nothing without an active fill; the fill's alpha scales the image.
func (i *Image) Render(s Surface, d *GraphicsData, alpha float64) {
	if !d.Fill.Visible || i.Source == nil {
		return
	}
	s.DrawImage(i.Source, i.Clip, Rect{X: i.X, Y: i.Y, Width: i.Width, Height: i.Height}, d.Fill.Alpha*alpha)
}

// Kind returns ShapeImage.
func (i *Image) Kind() ShapeKind { return ShapeImage }

// Clone returns a copy with its own clip rectangle.
func (i *Image) Clone() Shape {
	c := *i
	if i.Clip != nil {
		clip := *i.Clip
		c.Clip = &clip
	}
	return &c
}
