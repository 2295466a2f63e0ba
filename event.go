package sapling

import "time"

// EventObject carries one pointer event through dispatch.
//
// A single EventObject is created per host pointer notification and then
// mutated in place for every dispatch that notification causes (mouseout,
// mouseleave, mouseover, mouseenter, mousemove ...). Fields read after a
// listener returns may already describe a later step. Listeners that need
// the data later must keep a Clone.
type EventObject struct {
	IsTrusted bool
	Timestamp time.Time
	Type      EventType
	Button    MouseButton
	Buttons   uint8
	Modifiers KeyModifiers
	Global    Point

	Phase         Phase
	Target        *Node
	CurrentTarget *Node

	propagationStopped bool
}

// StopPropagation prevents the event from reaching any further node. It is
// checked after every single listener channel emission.
func (e *EventObject) StopPropagation() {
	e.propagationStopped = true
}

// PropagationStopped reports whether StopPropagation was called during the
// current dispatch.
func (e *EventObject) PropagationStopped() bool {
	return e.propagationStopped
}

// Local maps Global into CurrentTarget's local space. Returns Global when
// there is no current target.
func (e *EventObject) Local() Point {
	if e.CurrentTarget == nil {
		return e.Global
	}
	return e.CurrentTarget.ToLocal(e.Global)
}

// Clone returns an independent copy that later dispatch steps will not touch.
func (e *EventObject) Clone() *EventObject {
	c := *e
	return &c
}

// nativePointerTypes maps host pointer notification names to event types.
var nativePointerTypes = map[string]EventType{
	"pointermove":  EventMouseMove,
	"pointerleave": EventMouseLeave,
	"pointerdown":  EventMouseDown,
	"pointerup":    EventMouseUp,
}

// PointerEventType maps a host pointer notification name (pointermove,
// pointerleave, pointerdown, pointerup) to the event type the admin handles.
func PointerEventType(native string) (EventType, bool) {
	t, ok := nativePointerTypes[native]
	return t, ok
}

// NewPointerEvent builds the EventObject for one host pointer notification.
func NewPointerEvent(t EventType, x, y float64, button MouseButton, buttons uint8) *EventObject {
	return &EventObject{
		IsTrusted: true,
		Timestamp: time.Now(),
		Type:      t,
		Button:    button,
		Buttons:   buttons,
		Global:    Point{x, y},
	}
}

// --- Listener registration ---

// Channel selects which propagation direction a listener receives.
type Channel uint8

const (
	ChannelBubble  Channel = iota // at-target and bubbling phases
	ChannelCapture                // capturing and at-target phases
)

type channelKey struct {
	Type    EventType
	Channel Channel
}

// Listener handles a dispatched event.
type Listener func(e *EventObject)

type listenerOptions struct {
	capture bool
	once    bool
}

// ListenerOption configures AddEventListener.
type ListenerOption func(*listenerOptions)

// WithCapture registers on the capture channel instead of the bubble channel.
func WithCapture() ListenerOption {
	return func(o *listenerOptions) { o.capture = true }
}

// WithOnce removes the listener after its first invocation.
func WithOnce() ListenerOption {
	return func(o *listenerOptions) { o.once = true }
}

// AddEventListener registers fn for events of type t on this node. By
// default the listener is on the bubble channel; pass WithCapture for the
// capture channel and WithOnce for a one-shot listener.
//
// Funcs are not comparable in Go, so registrations are never deduplicated:
// adding the same func twice makes it fire twice. Use the returned Handle to
// remove a registration.
func (n *Node) AddEventListener(t EventType, fn Listener, opts ...ListenerOption) Handle {
	var o listenerOptions
	for _, opt := range opts {
		opt(&o)
	}
	ch := ChannelBubble
	if o.capture {
		ch = ChannelCapture
	}
	key := channelKey{Type: t, Channel: ch}
	if o.once {
		return n.events.Once(key, fn)
	}
	return n.events.On(key, fn)
}

// On is shorthand for AddEventListener(t, fn) on the bubble channel.
func (n *Node) On(t EventType, fn Listener) Handle {
	return n.AddEventListener(t, fn)
}

// RemoveEventListener removes the registration behind h.
func (n *Node) RemoveEventListener(h Handle) bool {
	return h.Remove()
}

// RemoveAllEventListeners removes every listener for t on one channel.
func (n *Node) RemoveAllEventListeners(t EventType, capture bool) {
	ch := ChannelBubble
	if capture {
		ch = ChannelCapture
	}
	n.events.OffAll(channelKey{Type: t, Channel: ch})
}

// HasEventListener reports whether any listener for t is registered on the
// given channel.
func (n *Node) HasEventListener(t EventType, capture bool) bool {
	ch := ChannelBubble
	if capture {
		ch = ChannelCapture
	}
	return n.events.Has(channelKey{Type: t, Channel: ch})
}

// Emit delivers e to this node's listeners for e.Type on channel ch without
// any propagation.
func (n *Node) Emit(ch Channel, e *EventObject) {
	n.events.Emit(channelKey{Type: e.Type, Channel: ch}, e)
}
