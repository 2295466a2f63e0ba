package sapling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrNoSurface is returned by RunHeadless when given a nil surface.
var ErrNoSurface = errors.New("sapling: no surface")

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
}

func (g *game) Update() error        { return g.scene.Update() }
func (g *game) Draw(s *ebiten.Image) { g.scene.Draw(s) }

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.scene.width || outsideHeight != g.scene.height {
		g.scene.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and drives scene until the window closes or
// scene.Stop is called. Window settings come from cfg; the scene keeps its
// own background unless cfg sets one.
func Run(scene *Scene, cfg RunConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	explicitBackground := cfg.Background != ""
	cfg = cfg.withDefaults()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	scene.Resize(cfg.Width, cfg.Height)
	if explicitBackground {
		scene.SetBackground(MustParseColor(cfg.Background), cfg.BackgroundAlpha)
	}
	scene.ScreenshotDir = cfg.ScreenshotDir
	scene.tickDelta = 1 / float32(cfg.TPS)
	scene.polling = true
	if cfg.Debug {
		scene.SetDebugMode(true)
	}
	if cfg.ShowFPS {
		scene.Stage().Add(NewFPSWidget())
	}

	err := ebiten.RunGame(&game{scene: scene})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("sapling: run: %w", err)
	}
	return nil
}

// RunHeadless drives scene on surface without a window, one Update and
// Frame per interval tick. It returns nil once scene.Stop is called and
// ctx.Err() if ctx ends first.
func RunHeadless(ctx context.Context, scene *Scene, surface Surface, interval time.Duration) error {
	if surface == nil {
		return ErrNoSurface
	}
	if interval <= 0 {
		interval = time.Second / 60
	}
	scene.tickDelta = float32(interval.Seconds())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := scene.Update(); err != nil {
			if errors.Is(err, ebiten.Termination) {
				return nil
			}
			return err
		}
		scene.Frame(surface)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
