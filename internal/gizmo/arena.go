package gizmo

import "image/color"

// Object is the retained, renderer-visible form of a marker or line.
type Object struct {
	Handle    Handle
	Host      ObjectHandle
	Transform Transform
	Color     color.RGBA
	// Line is set for objects spawned from a Line.
	Line bool
	// Ephemeral objects are despawned by the next cleanup phase.
	Ephemeral bool

	lineMesh MeshHandle
}

type slot struct {
	generation uint32
	live       bool
	obj        Object
}

// arena stores retained objects under generation-checked handles. Removing an object
// bumps its slot generation, so a stale handle misses instead of aliasing the next
// object placed in that slot.
type arena struct {
	slots []slot
	free  []uint32
	live  int
}

func (a *arena) insert(obj Object) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}
	s := &a.slots[idx]
	s.generation++
	if s.generation == 0 {
		// skip zero on wraparound, it marks the unset Handle
		s.generation = 1
	}
	h := Handle{Index: idx, Generation: s.generation}
	obj.Handle = h
	s.obj = obj
	s.live = true
	a.live++
	return h
}

func (a *arena) get(h Handle) (*Object, bool) {
	if int(h.Index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.Index]
	if !s.live || s.generation != h.Generation {
		return nil, false
	}
	return &s.obj, true
}

func (a *arena) remove(h Handle) (Object, bool) {
	obj, ok := a.get(h)
	if !ok {
		return Object{}, false
	}
	out := *obj
	s := &a.slots[h.Index]
	s.live = false
	s.obj = Object{}
	a.free = append(a.free, h.Index)
	a.live--
	return out, true
}

// each visits live objects in slot order. fn must not insert or remove.
func (a *arena) each(fn func(*Object)) {
	for i := range a.slots {
		if a.slots[i].live {
			fn(&a.slots[i].obj)
		}
	}
}

// handles returns the live handles in slot order, optionally only ephemeral ones.
func (a *arena) handles(ephemeralOnly bool) []Handle {
	out := make([]Handle, 0, a.live)
	a.each(func(o *Object) {
		if !ephemeralOnly || o.Ephemeral {
			out = append(out, o.Handle)
		}
	})
	return out
}

func (a *arena) len() int {
	return a.live
}
