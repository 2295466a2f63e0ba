package sapling

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func assertApprox(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %f, want ~%f", name, got, want)
	}
}

func TestTweenPositionReachesTarget(t *testing.T) {
	node := NewGroup("pos").SetPosition(10, 20)

	g := TweenPosition(node, 100, 200, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	p := node.Transform.Position
	assertApprox(t, "X", p.X(), 100, 0.5)
	assertApprox(t, "Y", p.Y(), 200, 0.5)
}

func TestTweenScaleReachesTarget(t *testing.T) {
	node := NewGroup("scale")

	g := TweenScale(node, 2.0, 3.0, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done")
	}
	s := node.Transform.Scale
	assertApprox(t, "ScaleX", s.X(), 2, 0.01)
	assertApprox(t, "ScaleY", s.Y(), 3, 0.01)
}

func TestTweenSkewReachesTarget(t *testing.T) {
	node := NewGroup("skew")

	g := TweenSkew(node, 10, -20, 1.0, ease.Linear)
	g.Update(1)

	s := node.Transform.Skew
	assertApprox(t, "SkewX", s.X(), 10, 0.01)
	assertApprox(t, "SkewY", s.Y(), -20, 0.01)
}

func TestTweenAlphaInterpolates(t *testing.T) {
	node := NewGroup("alpha")

	g := TweenAlpha(node, 0, 1.0, ease.Linear)
	g.Update(0.5)

	if g.Done {
		t.Fatal("should not be Done at midpoint")
	}
	assertApprox(t, "Alpha", node.Alpha, 0.5, 0.01)

	g.Update(0.5)
	if !g.Done {
		t.Fatal("expected Done")
	}
	assertApprox(t, "Alpha", node.Alpha, 0, 0.01)
}

func TestTweenRotationReachesTarget(t *testing.T) {
	node := NewGroup("rot")

	g := TweenRotation(node, 90, 1.0, ease.Linear)
	g.Update(0.5)
	assertApprox(t, "mid rotation", node.Transform.Rotation(), 45, 0.01)
	g.Update(0.5)
	assertApprox(t, "rotation", node.Transform.Rotation(), 90, 0.01)
}

func TestTweenFillAllComponents(t *testing.T) {
	node := NewGraphics("fill")
	node.Graphics().BeginFill(Fill(ColorBlack)).DrawRect(0, 0, 10, 10)
	data := node.Graphics().Data()
	d := data[len(data)-1]

	to := Color{1, 0.5, 0.25, 0.5}
	g := TweenFill(node, d, to, 1.0, ease.Linear)
	g.Update(1)

	if !g.Done {
		t.Fatal("expected Done")
	}
	c := d.Fill.Color
	assertApprox(t, "R", c.R, 1, 0.01)
	assertApprox(t, "G", c.G, 0.5, 0.01)
	assertApprox(t, "B", c.B, 0.25, 0.01)
	assertApprox(t, "A", c.A, 0.5, 0.01)
}

func TestTweenMarksLocalMatrixDirty(t *testing.T) {
	node := NewGroup("dirty")
	node.UpdateTransform()

	g := TweenPosition(node, 50, 0, 1.0, ease.Linear)
	g.Update(1)
	node.UpdateTransform()

	assertPoint(t, "origin", node.ToGlobal(Point{}), Pt(50, 0))
}

func TestTweenGroupDestroyedNode(t *testing.T) {
	resetPending(t)
	node := NewGroup("destroyed").SetPosition(10, 20)

	g := TweenPosition(node, 100, 200, 1.0, ease.Linear)
	node.Destroy()
	FlushPending()

	g.Update(0.1)
	if !g.Done {
		t.Fatal("expected Done after destroyed node detected")
	}
	p := node.Transform.Position
	if p.X() != 10 || p.Y() != 20 {
		t.Errorf("position changed to (%v, %v) on destroyed node", p.X(), p.Y())
	}
}

func TestTweenEasingFunctionsDiffer(t *testing.T) {
	nodeL := NewGroup("linear")
	nodeC := NewGroup("cubic")

	gL := TweenPosition(nodeL, 100, 0, 1.0, ease.Linear)
	gC := TweenPosition(nodeC, 100, 0, 1.0, ease.OutCubic)
	gL.Update(0.5)
	gC.Update(0.5)

	xl, xc := nodeL.Transform.Position.X(), nodeC.Transform.Position.X()
	if xc-xl < 1.0 {
		t.Errorf("OutCubic should lead linear at midpoint: linear=%f cubic=%f", xl, xc)
	}
}

func TestSceneTweensRemovedWhenDone(t *testing.T) {
	resetPending(t)
	s := NewScene(SceneConfig{Width: 10, Height: 10})
	node := NewGroup("n")
	s.AddTween(TweenAlpha(node, 0, 2.0/60, ease.Linear))
	s.AddTween(TweenAlpha(NewGroup("long"), 0, 10, ease.Linear))

	if s.NumTweens() != 2 {
		t.Fatalf("NumTweens = %d, want 2", s.NumTweens())
	}
	for range 3 {
		if err := s.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if s.NumTweens() != 1 {
		t.Errorf("NumTweens = %d, want 1", s.NumTweens())
	}
	assertApprox(t, "Alpha", node.Alpha, 0, 0.01)
}
