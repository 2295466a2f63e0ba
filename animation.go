package sapling

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 values of a Node simultaneously. Create one
// via the convenience constructors (TweenPosition, TweenScale, TweenAlpha,
// ...) and either call Update(dt) each frame or hand it to Scene.AddTween.
// Values are written through the node's setters, so transforms are
// invalidated as usual. If the target node is destroyed, the group stops
// immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(v [4]float64)
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target. If the target has been destroyed, Done is set and nothing is
// written.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDestroyed() {
		g.Done = true
		return
	}

	var vals [4]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.apply(vals)
	g.Done = allDone
}

func newTweenGroup(node *Node, duration float32, fn ease.TweenFunc, from, to []float64, apply func(v [4]float64)) *TweenGroup {
	g := &TweenGroup{count: len(from), target: node, apply: apply}
	for i := range from {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
	}
	return g
}

// TweenPosition animates the node's position to (toX, toY).
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	p := node.Transform.Position
	return newTweenGroup(node, duration, fn,
		[]float64{p.X(), p.Y()}, []float64{toX, toY},
		func(v [4]float64) { node.SetPosition(v[0], v[1]) })
}

// TweenScale animates the node's scale to (toSX, toSY).
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	s := node.Transform.Scale
	return newTweenGroup(node, duration, fn,
		[]float64{s.X(), s.Y()}, []float64{toSX, toSY},
		func(v [4]float64) { node.SetScale(v[0], v[1]) })
}

// TweenSkew animates the node's skew angles, in degrees.
func TweenSkew(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	s := node.Transform.Skew
	return newTweenGroup(node, duration, fn,
		[]float64{s.X(), s.Y()}, []float64{toX, toY},
		func(v [4]float64) { node.SetSkew(v[0], v[1]) })
}

// TweenAlpha animates the node's own alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		[]float64{node.Alpha}, []float64{to},
		func(v [4]float64) { node.SetAlpha(v[0]) })
}

// TweenRotation animates the node's rotation, in degrees.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		[]float64{node.Transform.Rotation()}, []float64{to},
		func(v [4]float64) { node.SetRotation(v[0]) })
}

// TweenFill animates every component of a graphics entry's fill color.
func TweenFill(node *Node, d *GraphicsData, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	c := d.Fill.Color
	return newTweenGroup(node, duration, fn,
		[]float64{c.R, c.G, c.B, c.A}, []float64{to.R, to.G, to.B, to.A},
		func(v [4]float64) { d.Fill.Color = Color{v[0], v[1], v[2], v[3]} })
}
