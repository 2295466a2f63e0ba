package sapling

import (
	"math"
	"strings"
)

// --- ID counter ---

// nodeSerialCounter is a plain counter (no atomic — sapling is single-threaded).
var nodeSerialCounter uint32

func nextNodeSerial() uint32 {
	nodeSerialCounter++
	return nodeSerialCounter
}

// --- Node ---

// Node is the fundamental scene graph element. A single flat struct is used
// for groups and drawables alike; Type selects whether the node draws its
// Graphics list.
//
// A node with a non-nil Parent appears exactly once in that parent's child
// list. Structural changes (Add, Remove and friends) are queued and applied
// by FlushPending, which Scene.Frame calls at the start of every frame.
type Node struct {
	// Identity
	Name    string
	Type    NodeType
	ID      string
	classes []string
	serial  uint32

	// Hierarchy
	Parent   *Node
	children []*Node

	Transform *Transform

	// Visibility & interaction
	Alpha   float64
	Visible bool
	Cursor  string
	HitArea Shape

	// Ordering
	zIndex int
	sorted bool

	// Metadata
	UserData any
	EntityID uint32

	// Computed
	worldAlpha float64

	graphics *Graphics

	events Emitter[channelKey, *EventObject]
	hooks  Emitter[Hook, hookCall]

	destroyed bool
	isStage   bool // root of a Scene
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.serial = nextNodeSerial()
	n.Transform = NewTransform()
	n.Alpha = 1
	n.worldAlpha = 1
	n.Visible = true
	n.Cursor = CursorAuto
	n.sorted = true
}

// NewGroup creates a group node with no visual representation of its own.
func NewGroup(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeGroup}
	nodeDefaults(n)
	return n
}

// NewGraphics creates a node that draws a list of shapes. Use Graphics to
// access the drawing API.
func NewGraphics(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeGraphics}
	nodeDefaults(n)
	n.graphics = newGraphics()
	return n
}

// Graphics returns the node's drawing list, or nil for group nodes.
func (n *Node) Graphics() *Graphics {
	return n.graphics
}

// --- Tree accessors ---

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Root walks parent links to the top of the tree.
func (n *Node) Root() *Node {
	r := n
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// SpreadPath returns the nodes from the root down to n, inclusive. The
// slice is freshly allocated on every call.
func (n *Node) SpreadPath() []*Node {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	path := make([]*Node, depth)
	for p := n; p != nil; p = p.Parent {
		depth--
		path[depth] = p
	}
	return path
}

// IsDestroyed reports whether Destroy has been applied to this node.
func (n *Node) IsDestroyed() bool {
	return n.destroyed
}

// --- Setters ---

// ZIndex returns the node's z-index.
func (n *Node) ZIndex() int {
	return n.zIndex
}

// SetZIndex sets the z-index and marks the parent's children as unsorted.
// Higher values draw later and win hit tests.
func (n *Node) SetZIndex(z int) *Node {
	if n.zIndex == z {
		return n
	}
	n.zIndex = z
	if n.Parent != nil {
		n.Parent.sorted = false
	}
	return n
}

// SetAlpha sets the node's own alpha. The effective alpha is the product of
// the alphas on the path from the root.
func (n *Node) SetAlpha(a float64) *Node {
	n.Alpha = a
	return n
}

// WorldAlpha returns the alpha computed during the last UpdateTransform.
func (n *Node) WorldAlpha() float64 {
	return n.worldAlpha
}

// SetVisible shows or hides the node and its subtree.
func (n *Node) SetVisible(v bool) *Node {
	n.Visible = v
	return n
}

// SetCursor sets the cursor hint shown while the pointer is over this node.
// CursorAuto defers to the nearest ancestor with a non-auto cursor.
func (n *Node) SetCursor(c string) *Node {
	n.Cursor = c
	return n
}

// SetHitArea sets the shape used for hit testing, in local coordinates.
func (n *Node) SetHitArea(s Shape) *Node {
	n.HitArea = s
	return n
}

// SetID sets the lookup id used by FindByID.
func (n *Node) SetID(id string) *Node {
	n.ID = id
	return n
}

// Classes returns the node's class list. The returned slice MUST NOT be mutated.
func (n *Node) Classes() []string {
	return n.classes
}

// SetClass replaces the class list with the space-separated names in s.
func (n *Node) SetClass(s string) *Node {
	n.classes = strings.Fields(s)
	return n
}

// AddClass appends the space-separated names in s.
func (n *Node) AddClass(s string) *Node {
	n.classes = append(n.classes, strings.Fields(s)...)
	return n
}

// RemoveClass removes every occurrence of the space-separated names in s.
func (n *Node) RemoveClass(s string) *Node {
	drop := strings.Fields(s)
	kept := n.classes[:0]
	for _, c := range n.classes {
		if !containsString(drop, c) {
			kept = append(kept, c)
		}
	}
	clear(n.classes[len(kept):])
	n.classes = kept
	return n
}

// HasClass reports whether the node carries class c.
func (n *Node) HasClass(c string) bool {
	return containsString(n.classes, c)
}

// SetPosition sets the transform position.
func (n *Node) SetPosition(x, y float64) *Node {
	n.Transform.Position.Set(x, y)
	return n
}

// SetPivot sets the transform pivot, the local point rotation and scale
// happen around.
func (n *Node) SetPivot(x, y float64) *Node {
	n.Transform.Pivot.Set(x, y)
	return n
}

// SetScale sets the transform scale.
func (n *Node) SetScale(x, y float64) *Node {
	n.Transform.Scale.Set(x, y)
	return n
}

// SetRotation sets the rotation in degrees.
func (n *Node) SetRotation(deg float64) *Node {
	n.Transform.SetRotation(deg)
	return n
}

// SetSkew sets the skew angles in degrees.
func (n *Node) SetSkew(x, y float64) *Node {
	n.Transform.Skew.Set(x, y)
	return n
}

// --- Lookup ---

// FindByID returns the first node in pre-order whose ID equals id, or nil.
func (n *Node) FindByID(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.children {
		if found := c.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// FindByClass returns every node in pre-order that carries class c.
func (n *Node) FindByClass(c string) []*Node {
	var out []*Node
	n.appendByClass(c, &out)
	return out
}

func (n *Node) appendByClass(c string, out *[]*Node) {
	if n.HasClass(c) {
		*out = append(*out, n)
	}
	for _, child := range n.children {
		child.appendByClass(c, out)
	}
}

// --- Per-frame traversal ---

// Sort orders children by ascending z-index if a z-index change (or an add)
// marked them unsorted. Equal z-indexes keep their insertion order.
func (n *Node) Sort() {
	if n.sorted {
		return
	}
	// Stable insertion sort: zero allocations and O(n) when nearly sorted.
	cs := n.children
	for i := 1; i < len(cs); i++ {
		key := cs[i]
		j := i - 1
		for j >= 0 && cs[j].zIndex > key.zIndex {
			cs[j+1] = cs[j]
			j--
		}
		cs[j+1] = key
	}
	n.sorted = true
}

// UpdateTransform refreshes this subtree's world matrices and world alphas.
// Subtrees that are invisible or fully transparent are not visited; their
// cached values stay as they were.
func (n *Node) UpdateTransform() {
	n.Sort()
	parentTransform := identityParent
	parentAlpha := 1.0
	if n.Parent != nil {
		parentTransform = n.Parent.Transform
		parentAlpha = n.Parent.worldAlpha
	}
	n.Transform.UpdateTransform(parentTransform)
	n.worldAlpha = parentAlpha * n.Alpha
	if n.worldAlpha <= 0 || !n.Visible {
		return
	}
	for _, c := range n.children {
		c.UpdateTransform()
	}
}

// Contains reports whether the global point p hits this node. The point is
// mapped through the inverse world matrix first; the hit area (or, for
// graphics nodes without one, any filled shape) is tested in local space.
// A node with neither never reports a hit.
func (n *Node) Contains(p Point) bool {
	if n.HitArea == nil && (n.graphics == nil || !n.graphics.hasFill()) {
		return false
	}
	local := n.Transform.world.ApplyInverse(p)
	if math.IsNaN(local.X) || math.IsNaN(local.Y) || math.IsInf(local.X, 0) || math.IsInf(local.Y, 0) {
		return false
	}
	if n.HitArea != nil {
		return n.HitArea.Contains(local)
	}
	return n.graphics.contains(local)
}

// ToLocal maps a global point into this node's local space using the last
// computed world matrix.
func (n *Node) ToLocal(p Point) Point {
	return n.Transform.world.ApplyInverse(p)
}

// ToGlobal maps a local point into root space.
func (n *Node) ToGlobal(p Point) Point {
	return n.Transform.world.Apply(p)
}

// RenderCanvas draws this subtree back-to-front onto s.
//
// HookBeforeRender fires unconditionally. An invisible node stops there.
// Otherwise the node draws itself, fires HookRendering, draws its children
// and fires HookRendered.
func (n *Node) RenderCanvas(s Surface) {
	n.callHook(HookBeforeRender, s)
	if !n.Visible {
		return
	}
	if n.worldAlpha > 0 {
		n.renderSelf(s)
	}
	n.callHook(HookRendering, s)
	// Children of a transparent node were not refreshed by UpdateTransform.
	if n.worldAlpha > 0 {
		for _, c := range n.children {
			c.RenderCanvas(s)
		}
	}
	n.callHook(HookRendered, s)
}

func (n *Node) renderSelf(s Surface) {
	if n.graphics == nil {
		return
	}
	n.graphics.render(s, n.Transform.world, n.worldAlpha)
}

// --- Clone ---

// Clone returns a detached deep copy of this subtree: transform inputs,
// alpha, visibility, z-index, cursor, hit area, id, classes, user data and
// graphics. Event listeners and lifecycle hooks are not copied. The clone's
// children are attached immediately because nothing can observe the new
// subtree yet.
func (n *Node) Clone() *Node {
	c := &Node{Name: n.Name, Type: n.Type}
	nodeDefaults(c)
	c.ID = n.ID
	c.classes = append([]string(nil), n.classes...)
	c.Transform.copyInputsFrom(n.Transform)
	c.Alpha = n.Alpha
	c.Visible = n.Visible
	c.Cursor = n.Cursor
	c.zIndex = n.zIndex
	c.UserData = n.UserData
	c.EntityID = n.EntityID
	if n.HitArea != nil {
		c.HitArea = n.HitArea.Clone()
	}
	if n.graphics != nil {
		c.graphics = n.graphics.clone()
	}
	for _, child := range n.children {
		cc := child.Clone()
		cc.Parent = c
		c.children = append(c.children, cc)
	}
	c.sorted = n.sorted
	return c
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// indexOfChild returns the index of child in n.children, or -1.
func (n *Node) indexOfChild(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
