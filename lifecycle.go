package sapling

import "strconv"

// Hook identifies a point in a node's mount, render or unmount cycle.
type Hook uint8

const (
	HookBeforeMount   Hook = iota // before the node is appended to a parent
	HookMounted                   // after the node is appended and Parent is set
	HookBeforeRender              // start of RenderCanvas, even for invisible nodes
	HookRendering                 // after the node drew itself, before its children
	HookRendered                  // after the node's children drew
	HookBeforeUnmount             // before the node is spliced out of its parent
	HookUnmounted                 // after the node is spliced out and Parent is nil
)

var hookNames = [...]string{
	HookBeforeMount:   "beforeMount",
	HookMounted:       "mounted",
	HookBeforeRender:  "beforeRender",
	HookRendering:     "rendering",
	HookRendered:      "rendered",
	HookBeforeUnmount: "beforeUnmount",
	HookUnmounted:     "unmounted",
}

func (h Hook) String() string {
	if int(h) < len(hookNames) {
		return hookNames[h]
	}
	return "Hook(" + strconv.Itoa(int(h)) + ")"
}

// HookFunc receives the node the hook fired on and, for render hooks, the
// surface being drawn to. Mount and unmount hooks receive a nil surface.
type HookFunc func(n *Node, s Surface)

type hookCall struct {
	node    *Node
	surface Surface
}

// OnHook registers fn for hook. Handlers run in registration order.
func (n *Node) OnHook(hook Hook, fn HookFunc) Handle {
	if fn == nil {
		panic("sapling: nil hook")
	}
	return n.hooks.On(hook, func(c hookCall) { fn(c.node, c.surface) })
}

// OnBeforeMount registers fn for HookBeforeMount.
func (n *Node) OnBeforeMount(fn HookFunc) Handle { return n.OnHook(HookBeforeMount, fn) }

// OnMounted registers fn for HookMounted.
func (n *Node) OnMounted(fn HookFunc) Handle { return n.OnHook(HookMounted, fn) }

// OnBeforeRender registers fn for HookBeforeRender.
func (n *Node) OnBeforeRender(fn HookFunc) Handle { return n.OnHook(HookBeforeRender, fn) }

// OnRendering registers fn for HookRendering.
func (n *Node) OnRendering(fn HookFunc) Handle { return n.OnHook(HookRendering, fn) }

// OnRendered registers fn for HookRendered.
func (n *Node) OnRendered(fn HookFunc) Handle { return n.OnHook(HookRendered, fn) }

// OnBeforeUnmount registers fn for HookBeforeUnmount.
func (n *Node) OnBeforeUnmount(fn HookFunc) Handle { return n.OnHook(HookBeforeUnmount, fn) }

// OnUnmounted registers fn for HookUnmounted.
func (n *Node) OnUnmounted(fn HookFunc) Handle { return n.OnHook(HookUnmounted, fn) }

func (n *Node) callHook(hook Hook, s Surface) {
	if !n.hooks.Has(hook) {
		return
	}
	n.hooks.Emit(hook, hookCall{node: n, surface: s})
}
