package sapling

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, delivered pointer events are forwarded to the ECS for
// every target node with a non-zero EntityID.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge. It is a
// value copy, so it stays valid after dispatch moves on.
type InteractionEvent struct {
	Type       EventType
	EntityID   uint32
	TargetName string
	GlobalX    float64
	GlobalY    float64
	LocalX     float64
	LocalY     float64
	Button     MouseButton
	Buttons    uint8
	Modifiers  KeyModifiers
	Timestamp  time.Time
}

// SceneConfig configures NewScene.
type SceneConfig struct {
	Width, Height int
	// Background is a CSS hex color; empty means "#fff". A color with an
	// alpha digit pair can make the background translucent.
	Background string
	// BackgroundAlpha multiplies the background color's alpha. Zero means 1.
	BackgroundAlpha float64
}

// Scene is the top-level object that owns the stage, the event plumbing and
// the per-frame driver.
type Scene struct {
	stage  *Node
	admin  *EventAdmin
	events *EventSystem
	store  EntityStore
	debug  bool

	width, height   int
	background      Color
	backgroundAlpha float64

	frame     uint64
	tickDelta float32
	tweens    []*TweenGroup
	stopped   bool
	polling   bool

	ebitenSurface *EbitenSurface

	// Synthetic input
	injectQueue   []syntheticPointerEvent
	injectButtons uint8
	testRunner    *TestRunner

	// Screenshots
	ScreenshotDir   string
	screenshotQueue []string
}

const defaultScreenshotDir = "screenshots"

// NewScene creates a scene with a stage group whose hit area covers the
// whole surface.
func NewScene(cfg SceneConfig) *Scene {
	stage := NewGroup("stage")
	stage.isStage = true
	stage.SetHitArea(NewRectangle(0, 0, float64(cfg.Width), float64(cfg.Height)))
	s := &Scene{
		stage:           stage,
		admin:           NewEventAdmin(stage),
		width:           cfg.Width,
		height:          cfg.Height,
		background:      ColorWhite,
		backgroundAlpha: 1,
		tickDelta:       1.0 / 60,
		ScreenshotDir:   defaultScreenshotDir,
	}
	s.events = NewEventSystem(s.admin)
	s.admin.SetForward(s.forwardEvent)
	if cfg.Background != "" {
		c, err := ParseColor(cfg.Background)
		if err != nil {
			logger().Warn("sapling: invalid background color, using white", "error", err)
		} else {
			s.background = c
		}
	}
	if cfg.BackgroundAlpha != 0 {
		s.backgroundAlpha = cfg.BackgroundAlpha
	}
	return s
}

// Stage returns the scene's root group.
func (s *Scene) Stage() *Node {
	return s.stage
}

// Admin returns the event admin dispatching pointer events into the stage.
func (s *Scene) Admin() *EventAdmin {
	return s.admin
}

// Events returns the host input adapter.
func (s *Scene) Events() *EventSystem {
	return s.events
}

// Size returns the scene dimensions.
func (s *Scene) Size() (int, int) {
	return s.width, s.height
}

// FrameCount returns how many frames have been rendered.
func (s *Scene) FrameCount() uint64 {
	return s.frame
}

// SetBackground sets the color painted under the stage each frame and its
// alpha. An alpha of 0 leaves the cleared surface transparent.
func (s *Scene) SetBackground(c Color, alpha float64) {
	s.background = c
	s.backgroundAlpha = alpha
}

// Resize changes the scene size and the stage's hit area.
func (s *Scene) Resize(width, height int) {
	s.width, s.height = width, height
	s.stage.SetHitArea(NewRectangle(0, 0, float64(width), float64(height)))
}

// Clear queues removal of every stage child.
func (s *Scene) Clear() {
	s.stage.RemoveChildren()
}

// Frame renders one frame onto surface: pending structural changes are
// applied, world transforms refreshed, the background painted and the
// stage drawn back-to-front.
func (s *Scene) Frame(surface Surface) {
	var stats frameStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	stats.flushed = flushPendingFor(s.stage)

	if s.debug {
		stats.flushTime = time.Since(t0)
		t0 = time.Now()
	}

	s.stage.UpdateTransform()

	if s.debug {
		stats.transformTime = time.Since(t0)
		t0 = time.Now()
	}

	surface.SetTransform(IdentityMatrix())
	surface.Clear()
	if s.backgroundAlpha > 0 {
		surface.FillRect(0, 0, float64(s.width), float64(s.height), Fill(s.background), s.backgroundAlpha)
	}

	if s.debug {
		counter := &countingSurface{Surface: surface}
		s.stage.RenderCanvas(counter)
		stats.drawCount = counter.draws
		stats.renderTime = time.Since(t0)
	} else {
		s.stage.RenderCanvas(surface)
	}

	s.flushScreenshots(surface)
	s.frame++
	s.debugLog(stats)
}

// Update advances the test runner, dispatches input (one injected event, or
// real input when running under Run) and steps registered tweens. Once Stop
// has been called it returns ebiten.Termination.
func (s *Scene) Update() error {
	if s.stopped {
		return ebiten.Termination
	}
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if !s.processInjectedInput() && s.polling {
		s.events.poll(s.width, s.height)
	}
	s.updateTweens(s.tickDelta)
	return nil
}

// Draw renders the scene onto an ebiten screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ebitenSurface == nil {
		s.ebitenSurface = NewEbitenSurface(screen)
	} else {
		s.ebitenSurface.Reset(screen)
	}
	s.Frame(s.ebitenSurface)
}

// Stop makes the next Update report termination, which ends Run and
// RunHeadless.
func (s *Scene) Stop() {
	s.stopped = true
}

// Stopped reports whether Stop has been called.
func (s *Scene) Stopped() bool {
	return s.stopped
}

// AddTween registers g to be advanced by every Update until it is done.
func (s *Scene) AddTween(g *TweenGroup) {
	s.tweens = append(s.tweens, g)
}

// NumTweens returns the number of running tweens.
func (s *Scene) NumTweens() int {
	return len(s.tweens)
}

func (s *Scene) updateTweens(dt float32) {
	kept := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			kept = append(kept, g)
		}
	}
	clear(s.tweens[len(kept):])
	s.tweens = kept
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, tree depth and
// child count warnings are logged and per-frame timings are logged at debug
// level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

func (s *Scene) forwardEvent(e *EventObject) {
	if s.store == nil || e.Target == nil || e.Target.EntityID == 0 {
		return
	}
	local := e.Target.ToLocal(e.Global)
	s.store.EmitEvent(InteractionEvent{
		Type:       e.Type,
		EntityID:   e.Target.EntityID,
		TargetName: e.Target.Name,
		GlobalX:    e.Global.X,
		GlobalY:    e.Global.Y,
		LocalX:     local.X,
		LocalY:     local.Y,
		Button:     e.Button,
		Buttons:    e.Buttons,
		Modifiers:  e.Modifiers,
		Timestamp:  e.Timestamp,
	})
}
