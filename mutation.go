package sapling

// Structural changes are not applied when requested. Add, Remove and Destroy
// append to a package-level queue that FlushPending drains in request order;
// Scene.Frame flushes at the start of every frame. Code running in the same
// turn as the request keeps seeing the old tree.
//
// A scene only applies the changes that touch its own stage or detached
// trees. Changes aimed at another scene's stage stay queued, in order, until
// that scene's next frame.

type mutationOp uint8

const (
	opAdd mutationOp = iota
	opRemove
	opDestroy
)

type mutation struct {
	op     mutationOp
	parent *Node
	child  *Node
}

// pendingMutations is package-level state (no locking — sapling is single-threaded).
var pendingMutations []mutation

// PendingMutations returns the number of queued structural changes.
func PendingMutations() int {
	return len(pendingMutations)
}

// FlushPending applies every queued Add, Remove and Destroy in the order they
// were requested and returns how many were applied. Changes queued by
// lifecycle hooks while flushing are applied in the same call, after the
// ones already queued.
func FlushPending() int {
	return flushPendingFor(nil)
}

// flushPendingFor applies queued changes like FlushPending but leaves the
// ones whose tree is rooted at a stage other than stage in the queue. A nil
// stage applies everything.
func flushPendingFor(stage *Node) int {
	applied, kept := 0, 0
	for i := 0; i < len(pendingMutations); i++ {
		m := pendingMutations[i]
		if stage != nil && m.foreignTo(stage) {
			pendingMutations[kept] = m
			kept++
			continue
		}
		switch m.op {
		case opAdd:
			m.parent.addOne(m.child)
		case opRemove:
			m.parent.removeOne(m.child)
		case opDestroy:
			m.child.releaseAll()
		}
		applied++
	}
	clear(pendingMutations[kept:])
	pendingMutations = pendingMutations[:kept]
	return applied
}

// foreignTo reports whether m targets a tree rooted at a scene stage other
// than stage.
func (m mutation) foreignTo(stage *Node) bool {
	n := m.parent
	if n == nil {
		n = m.child
	}
	root := n.Root()
	return root.isStage && root != stage
}

// discardPending drops every queued change without applying it.
func discardPending() {
	clear(pendingMutations)
	pendingMutations = pendingMutations[:0]
}

// Add queues children to be appended to n. When applied, a child that
// already has a parent is first detached from it; then HookBeforeMount fires
// on the child, the child is appended, its Parent is set, n's children are
// marked unsorted and HookMounted fires. Panics if any child is nil.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			panic("sapling: cannot add nil child")
		}
	}
	for _, c := range children {
		pendingMutations = append(pendingMutations, mutation{op: opAdd, parent: n, child: c})
	}
	return n
}

// Remove queues children to be detached from n. When applied, a child that
// is not in n's list is ignored; otherwise HookBeforeUnmount fires, the
// child is spliced out, its Parent is cleared and HookUnmounted fires.
func (n *Node) Remove(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		pendingMutations = append(pendingMutations, mutation{op: opRemove, parent: n, child: c})
	}
	return n
}

// RemoveChildren queues removal of every current child.
func (n *Node) RemoveChildren() *Node {
	return n.Remove(n.children...)
}

// RemoveSelf queues removal of n from its current parent. No-op without a parent.
func (n *Node) RemoveSelf() *Node {
	if n.Parent != nil {
		n.Parent.Remove(n)
	}
	return n
}

// Destroy queues removal of every child and of n itself, then drops all of
// n's event listeners and lifecycle hooks once those removals have run.
// Children are detached, not destroyed.
func (n *Node) Destroy() {
	n.RemoveChildren()
	n.RemoveSelf()
	pendingMutations = append(pendingMutations, mutation{op: opDestroy, child: n})
}

func (n *Node) addOne(child *Node) {
	if isAncestor(child, n) {
		logger().Warn("sapling: dropped add that would create a cycle",
			"parent", n.Name, "child", child.Name)
		return
	}
	if child.Parent != nil {
		child.Parent.removeOne(child)
	}
	child.callHook(HookBeforeMount, nil)
	n.children = append(n.children, child)
	child.Parent = n
	n.sorted = false
	child.callHook(HookMounted, nil)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

func (n *Node) removeOne(child *Node) {
	i := n.indexOfChild(child)
	if i < 0 {
		return
	}
	child.callHook(HookBeforeUnmount, nil)
	// Hooks cannot change n.children synchronously, so i is still valid.
	copy(n.children[i:], n.children[i+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.Parent = nil
	child.callHook(HookUnmounted, nil)
}

func (n *Node) releaseAll() {
	n.events.OffAllEvents()
	n.hooks.OffAllEvents()
	n.HitArea = nil
	n.UserData = nil
	n.destroyed = true
}
