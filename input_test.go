package sapling

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestPointerEventType(t *testing.T) {
	tests := []struct {
		native string
		want   EventType
		ok     bool
	}{
		{"pointermove", EventMouseMove, true},
		{"pointerdown", EventMouseDown, true},
		{"pointerup", EventMouseUp, true},
		{"pointerleave", EventMouseLeave, true},
		{"pointercancel", 0, false},
		{"click", 0, false},
	}
	for _, tt := range tests {
		got, ok := PointerEventType(tt.native)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("PointerEventType(%q) = %v, %v; want %v, %v", tt.native, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNewPointerEvent(t *testing.T) {
	e := NewPointerEvent(EventMouseDown, 3, 4, MouseButtonMiddle, ButtonsMiddle)
	if !e.IsTrusted || e.Timestamp.IsZero() {
		t.Error("pointer event should be trusted and timestamped")
	}
	if e.Type != EventMouseDown || e.Button != MouseButtonMiddle || e.Buttons != ButtonsMiddle {
		t.Errorf("event = %+v", e)
	}
	assertPoint(t, "Global", e.Global, Pt(3, 4))
	if e.Target != nil || e.Phase != PhaseNone {
		t.Error("new event should be undispatched")
	}
}

func TestHandlePointer(t *testing.T) {
	resetPending(t)
	root := NewGroup("root")
	btn := box("btn", 0, 0, 10, 10)
	buildTree(t, root, root, btn)
	es := NewEventSystem(NewEventAdmin(root))
	es.SetModifiers(ModCtrl | ModAlt)

	var got *EventObject
	btn.On(EventMouseDown, func(e *EventObject) { got = e.Clone() })

	if !es.HandlePointer("pointerdown", 5, 5, MouseButtonLeft, ButtonsLeft) {
		t.Fatal("HandlePointer rejected pointerdown")
	}
	if got == nil {
		t.Fatal("listener not called")
	}
	if got.Modifiers != ModCtrl|ModAlt {
		t.Errorf("Modifiers = %v", got.Modifiers)
	}
	if es.HandlePointer("wheel", 5, 5, MouseButtonLeft, 0) {
		t.Error("HandlePointer accepted an unknown name")
	}
}

func TestCursorShape(t *testing.T) {
	tests := []struct {
		in   string
		want ebiten.CursorShapeType
	}{
		{CursorAuto, ebiten.CursorShapeDefault},
		{CursorDefault, ebiten.CursorShapeDefault},
		{CursorPointer, ebiten.CursorShapePointer},
		{CursorText, ebiten.CursorShapeText},
		{CursorCrosshair, ebiten.CursorShapeCrosshair},
		{CursorMove, ebiten.CursorShapeMove},
		{CursorNotAllowed, ebiten.CursorShapeNotAllowed},
		{CursorEWResize, ebiten.CursorShapeEWResize},
		{CursorNSResize, ebiten.CursorShapeNSResize},
		{"grab", ebiten.CursorShapeDefault},
	}
	for _, tt := range tests {
		if got := cursorShape(tt.in); got != tt.want {
			t.Errorf("cursorShape(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestButtonMask(t *testing.T) {
	if buttonMask(MouseButtonLeft) != ButtonsLeft ||
		buttonMask(MouseButtonRight) != ButtonsRight ||
		buttonMask(MouseButtonMiddle) != ButtonsMiddle {
		t.Error("buttonMask mismatch")
	}
}
