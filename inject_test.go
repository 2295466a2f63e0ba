package sapling

import (
	"reflect"
	"testing"
)

// injectScene returns a scene with a 100×100 "btn" at the origin, already
// flushed and transformed.
func injectScene(t *testing.T) (*Scene, *Node) {
	t.Helper()
	resetPending(t)
	s := NewScene(SceneConfig{Width: 200, Height: 200})
	btn := box("btn", 0, 0, 100, 100)
	s.Stage().Add(btn)
	s.Frame(NewRecorder(200, 200))
	return s, btn
}

func drain(t *testing.T, s *Scene) {
	t.Helper()
	for s.PendingInjections() > 0 {
		if err := s.Update(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestInjectClick(t *testing.T) {
	s, btn := injectScene(t)

	var log eventLog
	log.watch([]EventType{EventMouseMove, EventMouseDown, EventMouseUp, EventClick}, btn)

	s.InjectClick(50, 50)
	if s.PendingInjections() != 3 {
		t.Fatalf("PendingInjections = %d, want 3", s.PendingInjections())
	}

	s.Update()
	assertLog(t, log.entries, []string{"mousemove:btn"})
	s.Update()
	s.Update()
	assertLog(t, log.entries, []string{"mousemove:btn", "mousedown:btn", "mouseup:btn", "click:btn"})
	if s.PendingInjections() != 0 {
		t.Errorf("queue not drained: %d", s.PendingInjections())
	}
}

func TestInjectDrag(t *testing.T) {
	s, btn := injectScene(t)

	var moves []Point
	btn.On(EventMouseMove, func(e *EventObject) {
		moves = append(moves, e.Global)
		if e.Buttons != ButtonsLeft {
			t.Errorf("drag move Buttons = %v, want left held", e.Buttons)
		}
	})
	var ups []uint8
	btn.On(EventMouseUp, func(e *EventObject) { ups = append(ups, e.Buttons) })

	s.InjectDrag(10, 10, 50, 90, 6)
	if s.PendingInjections() != 6 {
		t.Fatalf("PendingInjections = %d, want 6", s.PendingInjections())
	}
	drain(t, s)

	want := []Point{{18, 26}, {26, 42}, {34, 58}, {42, 74}}
	if len(moves) != len(want) {
		t.Fatalf("moves = %v, want %v", moves, want)
	}
	for i := range want {
		assertPoint(t, "move", moves[i], want[i])
	}
	if !reflect.DeepEqual(ups, []uint8{0}) {
		t.Errorf("release Buttons = %v, want [0]", ups)
	}
}

func TestInjectDrag_MinFrames(t *testing.T) {
	s := NewScene(SceneConfig{Width: 10, Height: 10})
	s.InjectDrag(0, 0, 5, 5, 0)
	if s.PendingInjections() != 2 {
		t.Errorf("PendingInjections = %d, want 2 (press + release)", s.PendingInjections())
	}
}

func TestInjectQueueOrder(t *testing.T) {
	s := NewScene(SceneConfig{Width: 10, Height: 10})
	s.InjectMove(1, 1)
	s.InjectButtonPress(2, 2, MouseButtonRight)
	s.InjectButtonRelease(3, 3, MouseButtonRight)
	s.InjectLeave()

	var got []string
	for _, e := range s.injectQueue {
		got = append(got, e.native)
	}
	want := []string{"pointermove", "pointerdown", "pointerup", "pointerleave"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("queue = %v, want %v", got, want)
	}
	if s.injectQueue[1].buttons != ButtonsRight || s.injectQueue[2].buttons != 0 {
		t.Errorf("buttons = %v, %v", s.injectQueue[1].buttons, s.injectQueue[2].buttons)
	}
}

func TestProcessInjectedInput_EmptyQueue(t *testing.T) {
	s := NewScene(SceneConfig{Width: 10, Height: 10})
	if s.processInjectedInput() {
		t.Error("processInjectedInput reported an event on an empty queue")
	}
}

func TestInjectLeaveResetsOverList(t *testing.T) {
	s, btn := injectScene(t)
	leaves := 0
	btn.On(EventMouseLeave, func(*EventObject) { leaves++ })

	s.InjectMove(10, 10)
	s.InjectLeave()
	drain(t, s)

	if len(s.Admin().OverTargets()) != 0 {
		t.Error("over list not cleared by leave")
	}
	if leaves != 0 {
		t.Errorf("surface leave fired %d node leaves", leaves)
	}
}

func TestInjectRightClick(t *testing.T) {
	s, btn := injectScene(t)
	var buttons []MouseButton
	btn.On(EventClick, func(e *EventObject) { buttons = append(buttons, e.Button) })

	s.InjectButtonPress(5, 5, MouseButtonRight)
	s.InjectButtonRelease(5, 5, MouseButtonRight)
	drain(t, s)

	if !reflect.DeepEqual(buttons, []MouseButton{MouseButtonRight}) {
		t.Errorf("click buttons = %v", buttons)
	}
}
