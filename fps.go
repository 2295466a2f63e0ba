package sapling

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// NewFPSWidget creates a graphics node that displays the current FPS and TPS
// as reported by ebiten. The text is refreshed about every 0.5 seconds from
// the node's before-render hook.
func NewFPSWidget() *Node {
	node := NewGraphics("fps_widget")
	node.SetZIndex(1 << 30)
	g := node.Graphics()
	g.BeginFill(Fill(ColorBlack.WithAlpha(0.5))).DrawRect(0, 0, 110, 22)
	label := NewText("FPS: -", 6, 4, TextStyle{Size: 12, Baseline: TextBaselineTop})
	g.BeginFill(Fill(ColorWhite)).DrawShape(label)

	var last time.Time
	node.OnBeforeRender(func(*Node, Surface) {
		now := time.Now()
		if now.Sub(last) < 500*time.Millisecond {
			return
		}
		last = now
		label.Content = fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	})
	return node
}
