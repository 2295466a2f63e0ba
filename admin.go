package sapling

// EventAdmin hit-tests pointer events against a tree and propagates them
// with capture, at-target and bubble phases. It also derives mouseover,
// mouseout, mouseenter and mouseleave from consecutive moves, correlates
// presses and releases into clicks, and tracks the cursor hint.
//
// Hit tests run against the world matrices computed by the last
// UpdateTransform, which may be one frame old.
type EventAdmin struct {
	stage  *Node
	cursor string

	// overTargets is the root→target hit path from the last move.
	overTargets []*Node
	// pressPaths holds the hit path captured at each button's last press.
	pressPaths map[MouseButton][]*Node

	forward func(e *EventObject)
}

// NewEventAdmin creates an admin that hit-tests from stage.
func NewEventAdmin(stage *Node) *EventAdmin {
	return &EventAdmin{
		stage:      stage,
		cursor:     CursorAuto,
		pressPaths: make(map[MouseButton][]*Node),
	}
}

// Cursor returns the cursor hint computed by the last move.
func (a *EventAdmin) Cursor() string {
	return a.cursor
}

// OverTargets returns the root→target path under the pointer as of the last
// move. The returned slice MUST NOT be mutated.
func (a *EventAdmin) OverTargets() []*Node {
	return a.overTargets
}

// EmitEvent routes e to the handler for its type. Types other than
// mousemove, mousedown, mouseup and mouseleave are ignored.
func (a *EventAdmin) EmitEvent(e *EventObject) {
	switch e.Type {
	case EventMouseMove:
		a.OnMouseMove(e)
	case EventMouseDown:
		a.OnMouseDown(e)
	case EventMouseUp:
		a.OnMouseUp(e)
	case EventMouseLeave:
		a.OnMouseLeave(e)
	}
}

// OnMouseMove processes a pointer move at e.Global.
func (a *EventAdmin) OnMouseMove(e *EventObject) {
	hitTarget := a.HitTest(e.Global)
	var topTarget *Node
	if len(a.overTargets) > 0 {
		topTarget = a.overTargets[len(a.overTargets)-1]
	}
	hitPath := spreadPath(hitTarget)

	if topTarget != nil && hitTarget != topTarget {
		e.Target = topTarget
		e.Type = EventMouseOut
		a.DispatchEvent(e)

		if hitTarget == nil || !containsNode(hitPath, topTarget) {
			e.Type = EventMouseLeave
			for i := len(a.overTargets) - 1; i >= 0; i-- {
				node := a.overTargets[i]
				// The first node still on the new path is the common
				// ancestor; it and everything above it stay entered.
				if hitTarget != nil && containsNode(hitPath, node) {
					break
				}
				a.dispatchAtTarget(node, e)
			}
		}
	}

	if hitTarget != nil && hitTarget != topTarget {
		e.Target = hitTarget
		e.Type = EventMouseOver
		a.DispatchEvent(e)

		e.Type = EventMouseEnter
		if topTarget == nil {
			for _, node := range hitPath {
				a.dispatchAtTarget(node, e)
			}
		} else {
			for i := len(hitPath) - 1; i >= 0; i-- {
				if containsNode(a.overTargets, hitPath[i]) {
					break
				}
				a.dispatchAtTarget(hitPath[i], e)
			}
		}
	}

	if hitTarget != nil {
		e.Target = hitTarget
		e.Type = EventMouseMove
		a.DispatchEvent(e)
	}

	a.overTargets = hitPath
	a.cursor = CursorAuto
	for i := len(a.overTargets) - 1; i >= 0; i-- {
		if c := a.overTargets[i].Cursor; c != "" && c != CursorAuto {
			a.cursor = c
			break
		}
	}
}

// OnMouseDown processes a button press. Nothing fires without a hit.
func (a *EventAdmin) OnMouseDown(e *EventObject) {
	hitTarget := a.HitTest(e.Global)
	if hitTarget == nil {
		return
	}
	e.Target = hitTarget
	e.Type = EventMouseDown
	a.DispatchEvent(e)
	a.pressPaths[e.Button] = spreadPath(hitTarget)
}

// OnMouseUp processes a button release and synthesizes a click. The click
// defaults to the pressed node. When the release lands elsewhere, it moves
// to the nearest ancestor of the pressed node that is also on the release
// path, if there is one. Nothing fires without a hit, and no click fires
// without a recorded press.
func (a *EventAdmin) OnMouseUp(e *EventObject) {
	hitTarget := a.HitTest(e.Global)
	if hitTarget == nil {
		return
	}
	e.Target = hitTarget
	e.Type = EventMouseUp
	a.DispatchEvent(e)

	pressPath, ok := a.pressPaths[e.Button]
	if !ok || len(pressPath) == 0 {
		return
	}
	pressTarget := pressPath[len(pressPath)-1]
	clickTarget := pressTarget
	if pressTarget != hitTarget {
		hitPath := spreadPath(hitTarget)
		for i := len(pressPath) - 2; i >= 0; i-- {
			if containsNode(hitPath, pressPath[i]) {
				clickTarget = pressPath[i]
				break
			}
		}
	}
	e.Target = clickTarget
	e.Type = EventClick
	a.DispatchEvent(e)
}

// OnMouseLeave handles the pointer leaving the surface. The over list is
// reset without emitting per-node mouseout or mouseleave.
func (a *EventAdmin) OnMouseLeave(*EventObject) {
	a.overTargets = nil
}

// HitTest returns the top-most visible node containing global point p, or nil.
//
// The search is depth-first over children in reverse order, so the child
// drawn last is searched first; within a subtree descendants are tried
// before their ancestor. Invisible subtrees are skipped entirely.
//
// Subtrees with a world alpha of 0 are still searched, but UpdateTransform
// does not descend into them, so their world matrices are whatever was last
// computed. A node added under a fully transparent parent is tested with the
// identity matrix until the parent becomes visible again.
func (a *EventAdmin) HitTest(p Point) *Node {
	return hitTestRecursive(a.stage, p)
}

func hitTestRecursive(n *Node, p Point) *Node {
	if n == nil || !n.Visible {
		return nil
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if hit := hitTestRecursive(n.children[i], p); hit != nil {
			return hit
		}
	}
	if n.Contains(p) {
		return n
	}
	return nil
}

// DispatchEvent propagates e to e.Target along the target's root→target path.
func (a *EventAdmin) DispatchEvent(e *EventObject) {
	e.propagationStopped = false
	a.propagateEvent(e, spreadPath(e.Target))
	a.notify(e)
}

// SetForward installs fn to observe every event after it has been delivered
// to the tree, including the non-propagating mouseenter and mouseleave.
// Pass nil to remove it.
func (a *EventAdmin) SetForward(fn func(e *EventObject)) {
	a.forward = fn
}

func (a *EventAdmin) notify(e *EventObject) {
	if a.forward != nil {
		a.forward(e)
	}
}

// propagateEvent runs the capture walk root→target on the capture channel,
// fires both channels at the target, then bubbles target's parent→root on
// the bubble channel. StopPropagation is honored after every emission.
func (a *EventAdmin) propagateEvent(e *EventObject, path []*Node) {
	if len(path) == 0 {
		return
	}
	e.Phase = PhaseCapturing
	for _, node := range path[:len(path)-1] {
		e.CurrentTarget = node
		node.Emit(ChannelCapture, e)
		if e.propagationStopped {
			return
		}
	}

	a.emitAtTarget(e.Target, e)
	if e.propagationStopped {
		return
	}

	e.Phase = PhaseBubbling
	for i := len(path) - 2; i >= 0; i-- {
		e.CurrentTarget = path[i]
		path[i].Emit(ChannelBubble, e)
		if e.propagationStopped {
			return
		}
	}
}

// dispatchAtTarget delivers a non-propagating event to target alone.
func (a *EventAdmin) dispatchAtTarget(target *Node, e *EventObject) {
	e.propagationStopped = false
	a.emitAtTarget(target, e)
	a.notify(e)
}

// emitAtTarget fires e on both channels of target only. Used for the target
// phase and for the non-propagating mouseenter and mouseleave. Stopping
// propagation here only keeps e from reaching other nodes; both of target's
// channels always fire.
func (a *EventAdmin) emitAtTarget(target *Node, e *EventObject) {
	e.Phase = PhaseAtTarget
	e.Target = target
	e.CurrentTarget = target
	target.Emit(ChannelCapture, e)
	target.Emit(ChannelBubble, e)
}

func spreadPath(n *Node) []*Node {
	if n == nil {
		return nil
	}
	return n.SpreadPath()
}

func containsNode(path []*Node, n *Node) bool {
	for _, p := range path {
		if p == n {
			return true
		}
	}
	return false
}
