package gizmo

// World is the exclusive context handed to OnHoverSystem and OnClickSystem callbacks.
// While a callback runs it has sole access to the overlay, so World methods work on
// overlay state directly instead of taking the overlay lock. A World must not be kept
// after the callback returns.
type World struct {
	o      *Overlay
	target Handle
}

// Target returns the handle of the marker whose interaction triggered the callback.
func (w *World) Target() Handle { return w.target }

// State returns the value given to WithState.
func (w *World) State() any { return w.o.state }

// Queue returns the submission queue, so callbacks can draw for the next tick.
func (w *World) Queue() *Queue { return w.o.queue }

// SpawnPersistent materializes m immediately; it stays until removed.
func (w *World) SpawnPersistent(m Marker) (Handle, error) {
	if w.o.closed {
		return Handle{}, ErrClosed
	}
	return w.o.spawnMarker(m, false)
}

// SpawnPersistentLine materializes l immediately; it stays until removed.
func (w *World) SpawnPersistentLine(l Line) (Handle, error) {
	if w.o.closed {
		return Handle{}, ErrClosed
	}
	return w.o.spawnLine(l, false)
}

// Remove despawns the object behind h, reporting false for stale handles.
func (w *World) Remove(h Handle) bool {
	return w.o.despawn(h)
}

// Lookup returns a copy of the live object behind h.
func (w *World) Lookup(h Handle) (Object, bool) {
	obj, ok := w.o.objects.get(h)
	if !ok {
		return Object{}, false
	}
	return *obj, true
}

// Stats returns the overlay counters.
func (w *World) Stats() Stats {
	return w.o.stats()
}
