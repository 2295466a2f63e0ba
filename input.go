package sapling

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EventSystem turns host pointer notifications into EventObjects and feeds
// them to an EventAdmin. Under ebiten it polls the mouse once per Update;
// other hosts call HandlePointer directly.
type EventSystem struct {
	admin *EventAdmin

	// Polling state.
	inside    bool
	lastX     int
	lastY     int
	hasLast   bool
	modifiers KeyModifiers
	shape     ebiten.CursorShapeType
}

// NewEventSystem creates an event system feeding admin.
func NewEventSystem(admin *EventAdmin) *EventSystem {
	return &EventSystem{admin: admin, shape: ebiten.CursorShapeDefault}
}

// Admin returns the admin events are fed to.
func (es *EventSystem) Admin() *EventAdmin {
	return es.admin
}

// HandlePointer dispatches one host notification. native is one of
// "pointermove", "pointerdown", "pointerup" or "pointerleave"; (x, y) is in
// stage coordinates. Unknown names are ignored and reported as false.
func (es *EventSystem) HandlePointer(native string, x, y float64, button MouseButton, buttons uint8) bool {
	t, ok := PointerEventType(native)
	if !ok {
		return false
	}
	e := NewPointerEvent(t, x, y, button, buttons)
	e.Modifiers = es.modifiers
	es.admin.EmitEvent(e)
	return true
}

// SetModifiers sets the modifier keys reported with subsequent events.
func (es *EventSystem) SetModifiers(m KeyModifiers) {
	es.modifiers = m
}

var polledButtons = [...]struct {
	ebiten ebiten.MouseButton
	button MouseButton
	mask   uint8
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft, ButtonsLeft},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle, ButtonsMiddle},
	{ebiten.MouseButtonRight, MouseButtonRight, ButtonsRight},
}

// poll reads the ebiten mouse state and dispatches whatever changed since
// the previous call. width and height bound the surface: a cursor outside
// them produces a single pointerleave.
func (es *EventSystem) poll(width, height int) {
	es.modifiers = readModifiers()
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	var buttons uint8
	for _, b := range polledButtons {
		if ebiten.IsMouseButtonPressed(b.ebiten) {
			buttons |= b.mask
		}
	}

	inside := mx >= 0 && my >= 0 && mx < width && my < height
	if !inside {
		if es.inside {
			es.HandlePointer("pointerleave", x, y, MouseButtonLeft, buttons)
		}
		es.inside = false
		es.hasLast = false
		es.applyCursor()
		return
	}
	es.inside = true

	if !es.hasLast || mx != es.lastX || my != es.lastY {
		es.HandlePointer("pointermove", x, y, MouseButtonLeft, buttons)
		es.lastX, es.lastY, es.hasLast = mx, my, true
	}
	for _, b := range polledButtons {
		if inpututil.IsMouseButtonJustPressed(b.ebiten) {
			es.HandlePointer("pointerdown", x, y, b.button, buttons)
		}
		if inpututil.IsMouseButtonJustReleased(b.ebiten) {
			es.HandlePointer("pointerup", x, y, b.button, buttons)
		}
	}
	es.applyCursor()
}

// applyCursor pushes the admin's cursor hint to the window when it changes.
func (es *EventSystem) applyCursor() {
	shape := cursorShape(es.admin.Cursor())
	if shape == es.shape {
		return
	}
	es.shape = shape
	ebiten.SetCursorShape(shape)
}

// cursorShape maps a cursor hint onto the closest ebiten shape.
func cursorShape(c string) ebiten.CursorShapeType {
	switch c {
	case CursorPointer:
		return ebiten.CursorShapePointer
	case CursorText:
		return ebiten.CursorShapeText
	case CursorCrosshair:
		return ebiten.CursorShapeCrosshair
	case CursorMove:
		return ebiten.CursorShapeMove
	case CursorNotAllowed:
		return ebiten.CursorShapeNotAllowed
	case CursorEWResize:
		return ebiten.CursorShapeEWResize
	case CursorNSResize:
		return ebiten.CursorShapeNSResize
	default:
		return ebiten.CursorShapeDefault
	}
}

// readModifiers returns the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}
