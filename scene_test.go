package sapling

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewScene(t *testing.T) {
	s := NewScene(SceneConfig{Width: 320, Height: 240})
	stage := s.Stage()
	if stage == nil || stage.Type != NodeTypeGroup || stage.Name != "stage" {
		t.Fatalf("stage = %+v", stage)
	}
	if w, h := s.Size(); w != 320 || h != 240 {
		t.Errorf("Size = %dx%d", w, h)
	}
	if s.background != ColorWhite || s.backgroundAlpha != 1 {
		t.Errorf("background = %v alpha %v, want white/1", s.background, s.backgroundAlpha)
	}
	if s.Admin() == nil || s.Events().Admin() != s.Admin() {
		t.Error("event plumbing not wired")
	}
}

func TestStageHitAreaCoversSurface(t *testing.T) {
	resetPending(t)
	s := NewScene(SceneConfig{Width: 100, Height: 50})
	s.Frame(NewRecorder(100, 50))

	if got := s.Admin().HitTest(Pt(99, 49)); got != s.Stage() {
		t.Errorf("HitTest inside = %v, want stage", got)
	}
	if got := s.Admin().HitTest(Pt(150, 10)); got != nil {
		t.Errorf("HitTest outside = %v, want nil", got)
	}

	s.Resize(200, 50)
	if got := s.Admin().HitTest(Pt(150, 10)); got != s.Stage() {
		t.Errorf("HitTest after Resize = %v, want stage", got)
	}
}

func TestSceneBackgroundConfig(t *testing.T) {
	tests := []struct {
		name      string
		cfg       SceneConfig
		wantColor Color
		wantAlpha float64
	}{
		{"default", SceneConfig{}, ColorWhite, 1},
		{"hex", SceneConfig{Background: "#000"}, ColorBlack, 1},
		{"alpha", SceneConfig{Background: "#000", BackgroundAlpha: 0.25}, ColorBlack, 0.25},
		{"invalid falls back", SceneConfig{Background: "nope"}, ColorWhite, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene(tt.cfg)
			if s.background != tt.wantColor || s.backgroundAlpha != tt.wantAlpha {
				t.Errorf("background = %v/%v, want %v/%v", s.background, s.backgroundAlpha, tt.wantColor, tt.wantAlpha)
			}
		})
	}
}

func TestFrameCommandOrder(t *testing.T) {
	resetPending(t)
	s := NewScene(SceneConfig{Width: 100, Height: 100, Background: "#f00"})
	n := box("n", 10, 10, 20, 20)
	n.Graphics().BeginLine(Line(ColorBlack, 2)).DrawCircle(5, 5, 5)
	s.Stage().Add(n)

	rec := NewRecorder(100, 100)
	s.Frame(rec)

	var types []CommandType
	for _, c := range rec.Commands {
		types = append(types, c.Type)
	}
	want := []CommandType{CommandClear, CommandFillRect, CommandFillRect, CommandFillPath, CommandStrokePath}
	if !reflect.DeepEqual(types, want) {
		t.Fatalf("commands = %v, want %v", types, want)
	}

	bg := rec.Commands[1]
	if bg.Rect != (Rect{0, 0, 100, 100}) || bg.Color != (Color{1, 0, 0, 1}) {
		t.Errorf("background command = %+v", bg)
	}
	if bg.Transform != IdentityMatrix() {
		t.Errorf("background transform = %v, want identity", bg.Transform)
	}
	if got := rec.Commands[2].Transform; got != TranslationMatrix(10, 10) {
		t.Errorf("node transform = %v, want translate(10, 10)", got)
	}
	if s.FrameCount() != 1 {
		t.Errorf("FrameCount = %d, want 1", s.FrameCount())
	}
}

func TestFrameTransparentBackgroundSkipsFill(t *testing.T) {
	resetPending(t)
	s := NewScene(SceneConfig{Width: 10, Height: 10})
	s.SetBackground(ColorBlack, 0)

	rec := NewRecorder(10, 10)
	s.Frame(rec)
	if len(rec.Filter(CommandFillRect)) != 0 {
		t.Error("background painted with alpha 0")
	}
}

func TestFrameAppliesAlpha(t *testing.T) {
	resetPending(t)
	s := NewScene(SceneConfig{Width: 10, Height: 10})
	s.SetBackground(ColorWhite, 0)
	group := NewGroup("group").SetAlpha(0.5)
	n := NewGraphics("n")
	n.Graphics().BeginFill(FillStyle{Color: ColorBlack, Alpha: 0.5}).DrawRect(0, 0, 5, 5)
	s.Stage().Add(group)
	group.Add(n)

	rec := NewRecorder(10, 10)
	s.Frame(rec)

	fills := rec.Filter(CommandFillRect)
	if len(fills) != 1 {
		t.Fatalf("fills = %d, want 1", len(fills))
	}
	assertNear(t, "alpha", fills[0].Alpha, 0.5)
	assertNear(t, "paint alpha", fills[0].Color.A, 0.25)
}

func TestFrameSkipsTransparentSubtree(t *testing.T) {
	resetPending(t)
	s := NewScene(SceneConfig{Width: 10, Height: 10})
	s.SetBackground(ColorWhite, 0)
	ghost := box("ghost", 0, 0, 5, 5).SetAlpha(0)
	s.Stage().Add(ghost)

	rec := NewRecorder(10, 10)
	s.Frame(rec)
	if len(rec.Filter(CommandFillRect)) != 0 {
		t.Error("transparent node drew")
	}
}

func TestFrameFlushesBeforeRendering(t *testing.T) {
	resetPending(t)
	s := NewScene(SceneConfig{Width: 10, Height: 10})
	mounted := false
	n := box("n", 0, 0, 5, 5)
	n.OnMounted(func(*Node, Surface) { mounted = true })
	var rendered bool
	n.OnRendered(func(*Node, Surface) { rendered = mounted })
	s.Stage().Add(n)

	s.Frame(NewRecorder(10, 10))
	if !rendered {
		t.Error("node rendered before its mount was applied")
	}
}

func TestFrameFlushesOnlyItsOwnStage(t *testing.T) {
	resetPending(t)
	sA := NewScene(SceneConfig{Width: 10, Height: 10})
	sB := NewScene(SceneConfig{Width: 10, Height: 10})
	a := box("a", 0, 0, 5, 5)
	b := box("b", 0, 0, 5, 5)
	loose := NewGroup("loose")
	sA.Stage().Add(a)
	sB.Stage().Add(b)
	loose.Add(NewGroup("child"))

	sA.Frame(NewRecorder(10, 10))
	if a.Parent != sA.Stage() {
		t.Error("scene A did not apply its own add")
	}
	if loose.NumChildren() != 1 {
		t.Error("scene A did not apply the detached add")
	}
	if b.Parent != nil {
		t.Error("scene A applied an add for scene B")
	}
	if got := PendingMutations(); got != 1 {
		t.Errorf("PendingMutations = %d after scene A frame, want 1", got)
	}

	sB.Frame(NewRecorder(10, 10))
	if b.Parent != sB.Stage() {
		t.Error("scene B did not apply its queued add")
	}
	if got := PendingMutations(); got != 0 {
		t.Errorf("PendingMutations = %d after scene B frame, want 0", got)
	}
}

func TestSceneClear(t *testing.T) {
	resetPending(t)
	s := NewScene(SceneConfig{Width: 10, Height: 10})
	s.Stage().Add(NewGroup("a"), NewGroup("b"))
	FlushPending()

	s.Clear()
	FlushPending()
	if s.Stage().NumChildren() != 0 {
		t.Errorf("NumChildren = %d after Clear", s.Stage().NumChildren())
	}
}

func TestSceneStop(t *testing.T) {
	s := NewScene(SceneConfig{Width: 10, Height: 10})
	if err := s.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	s.Stop()
	if !s.Stopped() {
		t.Error("Stopped = false")
	}
	if err := s.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update after Stop = %v, want ebiten.Termination", err)
	}
}

type mockStore struct {
	events []InteractionEvent
}

func (m *mockStore) EmitEvent(e InteractionEvent) {
	m.events = append(m.events, e)
}

func TestSceneForwardsEntityEvents(t *testing.T) {
	resetPending(t)
	s := NewScene(SceneConfig{Width: 100, Height: 100})
	store := &mockStore{}
	s.SetEntityStore(store)

	tagged := box("tagged", 10, 10, 20, 20)
	tagged.EntityID = 5
	plain := box("plain", 50, 50, 20, 20)
	s.Stage().Add(tagged, plain)
	s.Frame(NewRecorder(100, 100))

	s.Events().SetModifiers(ModShift)
	s.Events().HandlePointer("pointerdown", 15, 20, MouseButtonLeft, ButtonsLeft)
	s.Events().HandlePointer("pointerdown", 55, 55, MouseButtonLeft, ButtonsLeft)

	if len(store.events) != 1 {
		t.Fatalf("forwarded %d events, want 1", len(store.events))
	}
	e := store.events[0]
	if e.Type != EventMouseDown || e.EntityID != 5 || e.TargetName != "tagged" {
		t.Errorf("event = %+v", e)
	}
	if e.GlobalX != 15 || e.GlobalY != 20 || e.LocalX != 5 || e.LocalY != 10 {
		t.Errorf("coordinates = (%v, %v) local (%v, %v)", e.GlobalX, e.GlobalY, e.LocalX, e.LocalY)
	}
	if e.Modifiers != ModShift || e.Buttons != ButtonsLeft {
		t.Errorf("modifiers/buttons = %v/%v", e.Modifiers, e.Buttons)
	}
}

func TestSceneNoStoreNoPanic(t *testing.T) {
	resetPending(t)
	s := NewScene(SceneConfig{Width: 100, Height: 100})
	n := box("n", 0, 0, 20, 20)
	n.EntityID = 1
	s.Stage().Add(n)
	s.Frame(NewRecorder(100, 100))
	s.Events().HandlePointer("pointerdown", 5, 5, MouseButtonLeft, ButtonsLeft)
}

func TestRunHeadlessStops(t *testing.T) {
	resetPending(t)
	s := NewScene(SceneConfig{Width: 10, Height: 10})
	frames := 0
	s.Stage().OnBeforeRender(func(*Node, Surface) {
		frames++
		if frames == 3 {
			s.Stop()
		}
	})

	err := RunHeadless(context.Background(), s, NewRecorder(10, 10), time.Millisecond)
	if err != nil {
		t.Fatalf("RunHeadless = %v, want nil", err)
	}
	if frames != 3 {
		t.Errorf("frames = %d, want 3", frames)
	}
}

func TestRunHeadlessContextCancel(t *testing.T) {
	s := NewScene(SceneConfig{Width: 10, Height: 10})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RunHeadless(ctx, s, NewRecorder(10, 10), time.Millisecond)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RunHeadless = %v, want context.Canceled", err)
	}
}

func TestRunHeadlessNilSurface(t *testing.T) {
	s := NewScene(SceneConfig{Width: 10, Height: 10})
	if err := RunHeadless(context.Background(), s, nil, 0); !errors.Is(err, ErrNoSurface) {
		t.Errorf("err = %v, want ErrNoSurface", err)
	}
}
