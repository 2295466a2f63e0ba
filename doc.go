// Package sapling is a retained-mode 2D scene graph with DOM-style pointer
// events, rendered through [Ebitengine] or offscreen through [gg].
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and drives
// the scene for you:
//
//	scene := sapling.NewScene(sapling.SceneConfig{Width: 640, Height: 480})
//	box := sapling.NewGraphics("box")
//	box.Graphics().BeginFill(sapling.Fill(sapling.MustParseColor("#4af"))).DrawRect(0, 0, 80, 40)
//	box.SetPosition(100, 50)
//	scene.Stage().Add(box)
//	sapling.Run(scene, sapling.RunConfig{Title: "Boxes"})
//
// Without a window, render frames onto a [GGSurface] or a [Recorder]:
//
//	surface, _ := sapling.NewGGSurface(640, 480)
//	scene.Frame(surface)
//	surface.SavePNG("frame.png")
//
// # Scene graph
//
// Every element is a [Node]: a group, which only holds children, or a
// graphics node, which owns a [Graphics] display list. Children inherit
// their parent's transform, alpha and visibility.
//
// [Node.Add] and [Node.Remove] are deferred. The parent link, the child
// list and the mount and unmount hooks all change in [FlushPending], which
// [Scene.Frame] calls at the start of every frame for its own stage. Children draw in ascending z-index order; equal z-indices
// keep insertion order.
//
// # Events
//
// Pointer input is routed by an [EventAdmin]. It hit-tests the stage from
// the front-most node down, then delivers the event in capture, target and
// bubble phases along the path from the stage to the hit node:
//
//	box.On(sapling.EventClick, func(e *sapling.EventObject) {
//		fmt.Println("clicked at", e.Local())
//	})
//
// The admin also synthesizes mouseover, mouseout, mouseenter and mouseleave
// as the hovered path changes, and a click when a press and release land in
// the same subtree.
//
// # Testing
//
// [Scene.InjectClick], [Scene.InjectDrag] and friends queue synthetic
// pointer input consumed one event per [Scene.Update]. A [TestRunner]
// loaded from a JSON or TOML script sequences input and screenshots.
//
// [Ebitengine]: https://ebitengine.org
// [gg]: https://github.com/gogpu/gg
package sapling
