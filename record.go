package sapling

import (
	"image"
	"unicode/utf8"
)

// CommandType identifies the kind of recorded draw call.
type CommandType uint8

const (
	CommandClear CommandType = iota
	CommandFillRect
	CommandStrokeRect
	CommandFillPath
	CommandStrokePath
	CommandFillText
	CommandDrawImage
)

var commandTypeNames = [...]string{
	CommandClear:      "clear",
	CommandFillRect:   "fillRect",
	CommandStrokeRect: "strokeRect",
	CommandFillPath:   "fillPath",
	CommandStrokePath: "strokePath",
	CommandFillText:   "fillText",
	CommandDrawImage:  "drawImage",
}

func (t CommandType) String() string {
	if int(t) < len(commandTypeNames) {
		return commandTypeNames[t]
	}
	return "unknown"
}

// RenderCommand is one draw call captured by a Recorder.
type RenderCommand struct {
	Type      CommandType
	Transform Matrix
	// Color is the final paint color with style and node alpha applied.
	Color Color
	Alpha float64

	Rect  Rect
	Path  *VectorPath
	Text  string
	Style TextStyle
	Line  LineStyle
	Image image.Image
	Src   *Rect
}

// Recorder is a Surface that records draw calls instead of rasterizing.
// Text is measured with fixed metrics: each rune advances half the font
// size, ascent is 0.8 and descent 0.2 of the size.
type Recorder struct {
	Width, Height int
	Commands      []RenderCommand

	transform Matrix
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height, transform: IdentityMatrix()}
}

// Reset drops every recorded command.
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
}

// Filter returns the recorded commands of type t.
func (r *Recorder) Filter(t CommandType) []RenderCommand {
	var out []RenderCommand
	for _, c := range r.Commands {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

func (r *Recorder) SetTransform(m Matrix) { r.transform = m }

func (r *Recorder) Clear() {
	r.push(RenderCommand{Type: CommandClear})
}

func (r *Recorder) FillRect(x, y, w, h float64, style FillStyle, alpha float64) {
	r.push(RenderCommand{Type: CommandFillRect, Rect: Rect{x, y, w, h}, Color: style.paint(alpha), Alpha: alpha})
}

func (r *Recorder) StrokeRect(x, y, w, h float64, style LineStyle, alpha float64) {
	r.push(RenderCommand{Type: CommandStrokeRect, Rect: Rect{x, y, w, h}, Color: style.paint(alpha), Alpha: alpha, Line: style.clone()})
}

func (r *Recorder) FillPath(p *VectorPath, style FillStyle, alpha float64) {
	r.push(RenderCommand{Type: CommandFillPath, Path: p, Color: style.paint(alpha), Alpha: alpha})
}

func (r *Recorder) StrokePath(p *VectorPath, style LineStyle, alpha float64) {
	r.push(RenderCommand{Type: CommandStrokePath, Path: p, Color: style.paint(alpha), Alpha: alpha, Line: style.clone()})
}

func (r *Recorder) FillText(s string, x, y float64, ts TextStyle, style FillStyle, alpha float64) {
	m := r.MeasureText(s, ts)
	r.push(RenderCommand{
		Type:  CommandFillText,
		Rect:  Rect{x, y, m.Width, m.Ascent + m.Descent},
		Text:  s,
		Style: ts,
		Color: style.paint(alpha),
		Alpha: alpha,
	})
}

func (r *Recorder) MeasureText(s string, ts TextStyle) TextMetrics {
	size := ts.size()
	return TextMetrics{
		Width:   float64(utf8.RuneCountInString(s)) * size / 2,
		Ascent:  size * 0.8,
		Descent: size * 0.2,
	}
}

func (r *Recorder) DrawImage(img image.Image, src *Rect, dst Rect, alpha float64) {
	r.push(RenderCommand{Type: CommandDrawImage, Image: img, Src: src, Rect: dst, Color: ColorWhite.WithAlpha(alpha), Alpha: alpha})
}

func (r *Recorder) push(c RenderCommand) {
	c.Transform = r.transform
	r.Commands = append(r.Commands, c)
}
