package sapling

// Handle identifies one listener registration. Remove unregisters it.
// The zero Handle is valid and Remove on it is a no-op.
type Handle struct {
	id     uint64
	remove func(id uint64) bool
}

// Remove unregisters the listener. It reports whether a registration was
// removed; removing twice returns false the second time.
func (h Handle) Remove() bool {
	if h.remove == nil {
		return false
	}
	return h.remove(h.id)
}

type listener[A any] struct {
	id      uint64
	fn      func(A)
	removed bool
}

// Emitter is a synchronous publish/subscribe registry keyed by K, delivering
// an argument of type A. Every Node owns its own Emitter; there is no shared
// bus.
//
// Listeners fire in registration order. Emit walks a snapshot taken when it
// starts: listeners added during an emission wait for the next one, and
// listeners removed during an emission are skipped if they have not run yet.
type Emitter[K comparable, A any] struct {
	listeners map[K][]*listener[A]
	nextID    uint64
}

// On registers fn for key and returns its handle. Each call adds a separate
// registration, even for a func that is already registered.
func (e *Emitter[K, A]) On(key K, fn func(A)) Handle {
	if fn == nil {
		panic("sapling: nil listener")
	}
	id := e.add(key, fn)
	return e.handle(key, id)
}

// Once registers fn for key; the registration removes itself before fn is
// first invoked.
func (e *Emitter[K, A]) Once(key K, fn func(A)) Handle {
	if fn == nil {
		panic("sapling: nil listener")
	}
	var id uint64
	id = e.add(key, func(arg A) {
		e.remove(key, id)
		fn(arg)
	})
	return e.handle(key, id)
}

// Emit invokes every listener registered for key with arg.
func (e *Emitter[K, A]) Emit(key K, arg A) {
	ls := e.listeners[key]
	for _, l := range ls {
		if l.removed {
			continue
		}
		l.fn(arg)
	}
}

// Off removes the registration behind h. Equivalent to h.Remove.
func (e *Emitter[K, A]) Off(h Handle) bool {
	return h.Remove()
}

// OffAll removes every listener registered for key.
func (e *Emitter[K, A]) OffAll(key K) {
	for _, l := range e.listeners[key] {
		l.removed = true
	}
	delete(e.listeners, key)
}

// OffAllEvents removes every listener for every key.
func (e *Emitter[K, A]) OffAllEvents() {
	for key := range e.listeners {
		e.OffAll(key)
	}
}

// Count returns the number of listeners registered for key.
func (e *Emitter[K, A]) Count(key K) int {
	return len(e.listeners[key])
}

// Has reports whether any listener is registered for key.
func (e *Emitter[K, A]) Has(key K) bool {
	return len(e.listeners[key]) > 0
}

func (e *Emitter[K, A]) add(key K, fn func(A)) uint64 {
	if e.listeners == nil {
		e.listeners = make(map[K][]*listener[A])
	}
	e.nextID++
	e.listeners[key] = append(e.listeners[key], &listener[A]{id: e.nextID, fn: fn})
	return e.nextID
}

// remove unlinks id from key. The slice is rebuilt rather than edited in
// place so that an Emit already iterating the old slice is unaffected.
func (e *Emitter[K, A]) remove(key K, id uint64) bool {
	ls := e.listeners[key]
	for i, l := range ls {
		if l.id != id {
			continue
		}
		l.removed = true
		if len(ls) == 1 {
			delete(e.listeners, key)
			return true
		}
		next := make([]*listener[A], 0, len(ls)-1)
		next = append(next, ls[:i]...)
		next = append(next, ls[i+1:]...)
		e.listeners[key] = next
		return true
	}
	return false
}

func (e *Emitter[K, A]) handle(key K, id uint64) Handle {
	return Handle{id: id, remove: func(id uint64) bool { return e.remove(key, id) }}
}
