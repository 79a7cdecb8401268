package gizmo

import "sync"

// Binding holds the interaction callbacks of a marker.
//
// Hover and Click are isolated: they get no access to overlay state and run inline in the
// interaction phase. HoverSystem and ClickSystem are exclusive: they run one at a time with
// sole access to the overlay through *World, so keep them short.
type Binding struct {
	Hover       func()
	Click       func()
	HoverSystem func(*World)
	ClickSystem func(*World)
}

// IsZero reports whether no callback is set.
func (b Binding) IsZero() bool {
	return b.Hover == nil && b.Click == nil && b.HoverSystem == nil && b.ClickSystem == nil
}

// OnHover runs fn on every tick the marker is under the pointer.
func (m Marker) OnHover(fn func()) Marker {
	m.Binding.Hover = fn
	return m
}

// OnClick runs fn when the primary button is pressed while the marker is under the pointer.
func (m Marker) OnClick(fn func()) Marker {
	m.Binding.Click = fn
	return m
}

// OnHoverSystem is the exclusive form of OnHover. No other phase runs while fn does.
func (m Marker) OnHoverSystem(fn func(*World)) Marker {
	m.Binding.HoverSystem = fn
	return m
}

// OnClickSystem is the exclusive form of OnClick. No other phase runs while fn does.
func (m Marker) OnClickSystem(fn func(*World)) Marker {
	m.Binding.ClickSystem = fn
	return m
}

// HandlerID is an opaque reference into the overlay's handler table. Zero means unset.
type HandlerID uint64

// Handlers is the callback table. Registrations carry only HandlerIDs; the interaction
// phase resolves them here so callbacks can be ordered and substituted.
type Handlers struct {
	mu        sync.Mutex
	next      HandlerID
	isolated  map[HandlerID]func()
	exclusive map[HandlerID]func(*World)
}

func newHandlers() *Handlers {
	return &Handlers{
		isolated:  make(map[HandlerID]func()),
		exclusive: make(map[HandlerID]func(*World)),
	}
}

func (h *Handlers) addIsolated(fn func()) HandlerID {
	if fn == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.isolated[h.next] = fn
	return h.next
}

func (h *Handlers) addExclusive(fn func(*World)) HandlerID {
	if fn == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.exclusive[h.next] = fn
	return h.next
}

// Isolated returns the isolated handler for id.
func (h *Handlers) Isolated(id HandlerID) (func(), bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn, ok := h.isolated[id]
	return fn, ok
}

// Exclusive returns the exclusive handler for id.
func (h *Handlers) Exclusive(id HandlerID) (func(*World), bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn, ok := h.exclusive[id]
	return fn, ok
}

// Replace swaps the isolated handler stored under id. It reports false if id is unknown.
func (h *Handlers) Replace(id HandlerID, fn func()) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.isolated[id]; !ok || fn == nil {
		return false
	}
	h.isolated[id] = fn
	return true
}

// ReplaceExclusive swaps the exclusive handler stored under id.
func (h *Handlers) ReplaceExclusive(id HandlerID, fn func(*World)) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.exclusive[id]; !ok || fn == nil {
		return false
	}
	h.exclusive[id] = fn
	return true
}

// Len returns the number of stored handlers.
func (h *Handlers) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.isolated) + len(h.exclusive)
}

func (h *Handlers) remove(ids ...HandlerID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, id := range ids {
		delete(h.isolated, id)
		delete(h.exclusive, id)
	}
}
