package sapling

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorTransparent = Color{}
)

// ParseColor parses a CSS hex color: "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa".
// The leading '#' is optional.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	var digits [4]uint64
	digits[3] = 255
	switch len(hex) {
	case 3, 4:
		for i := 0; i < len(hex); i++ {
			v, err := strconv.ParseUint(hex[i:i+1], 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("sapling: parse color %q: %w", s, err)
			}
			digits[i] = v * 17
		}
	case 6, 8:
		for i := 0; i < len(hex)/2; i++ {
			v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("sapling: parse color %q: %w", s, err)
			}
			digits[i] = v
		}
	default:
		return Color{}, fmt.Errorf("sapling: parse color %q: want 3, 4, 6 or 8 hex digits", s)
	}
	return Color{
		R: float64(digits[0]) / 255,
		G: float64(digits[1]) / 255,
		B: float64(digits[2]) / 255,
		A: float64(digits[3]) / 255,
	}, nil
}

// MustParseColor is like ParseColor but panics on malformed input. Intended
// for package-level color literals.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// RGBA implements color.Color (premultiplied, 16 bits per channel).
func (c Color) RGBA() (r, g, b, a uint32) {
	p := c.toRGBA()
	return p.RGBA()
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Point is a 2D coordinate. The coordinate system has its origin at the
// top-left, with Y increasing downward.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeGroup    NodeType = iota // group node with no visual output
	NodeTypeGraphics                 // draws its Graphics shape list
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeGroup:
		return "group"
	case NodeTypeGraphics:
		return "graphics"
	default:
		return "NodeType(" + strconv.Itoa(int(t)) + ")"
	}
}

// EventType identifies a kind of pointer event.
type EventType uint8

const (
	EventMouseMove  EventType = iota // pointer moved over a hit node (bubbles)
	EventMouseDown                   // button pressed over a hit node (bubbles)
	EventMouseUp                     // button released over a hit node (bubbles)
	EventMouseLeave                  // pointer left a node's hit path (at target only)
	EventMouseEnter                  // pointer entered a node's hit path (at target only)
	EventMouseOver                   // pointer moved onto a new top node (bubbles)
	EventMouseOut                    // pointer moved off the previous top node (bubbles)
	EventClick                       // press and release correlated (bubbles)
)

var eventTypeNames = [...]string{
	EventMouseMove:  "mousemove",
	EventMouseDown:  "mousedown",
	EventMouseUp:    "mouseup",
	EventMouseLeave: "mouseleave",
	EventMouseEnter: "mouseenter",
	EventMouseOver:  "mouseover",
	EventMouseOut:   "mouseout",
	EventClick:      "click",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "EventType(" + strconv.Itoa(int(t)) + ")"
}

// ParseEventType returns the EventType for a DOM-style event name such as
// "click" or "mouseenter".
func ParseEventType(name string) (EventType, bool) {
	for i, n := range eventTypeNames {
		if n == name {
			return EventType(i), true
		}
	}
	return 0, false
}

// MouseButton is a pointer button number. Values follow the DOM numbering.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = 0 // primary button
	MouseButtonMiddle MouseButton = 1 // auxiliary button (wheel click)
	MouseButtonRight  MouseButton = 2 // secondary button
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonRight:
		return "right"
	default:
		return "MouseButton(" + strconv.Itoa(int(b)) + ")"
	}
}

// Buttons bitmask values for EventObject.Buttons.
const (
	ButtonsLeft   uint8 = 1 << 0
	ButtonsRight  uint8 = 1 << 1
	ButtonsMiddle uint8 = 1 << 2
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Phase is the propagation phase of a dispatched event.
type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseCapturing
	PhaseAtTarget
	PhaseBubbling
)

func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseCapturing:
		return "capturing"
	case PhaseAtTarget:
		return "atTarget"
	case PhaseBubbling:
		return "bubbling"
	default:
		return "Phase(" + strconv.Itoa(int(p)) + ")"
	}
}

// Cursor hint values. Any CSS cursor name is accepted by Node.SetCursor; the
// ebiten host maps the ones it supports and falls back to the default shape.
const (
	CursorAuto       = "auto"
	CursorDefault    = "default"
	CursorPointer    = "pointer"
	CursorText       = "text"
	CursorCrosshair  = "crosshair"
	CursorMove       = "move"
	CursorNotAllowed = "not-allowed"
	CursorEWResize   = "ew-resize"
	CursorNSResize   = "ns-resize"
)
