package gizmo

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// BindingIDs are the handler table entries of one interactive object.
type BindingIDs struct {
	Hover       HandlerID
	Click       HandlerID
	HoverSystem HandlerID
	ClickSystem HandlerID
}

// registration is the interaction side-table entry for a retained object.
// age counts consecutive ticks its object has not been live.
type registration struct {
	BindingIDs
	age int
}

func (r *registration) ids() []HandlerID {
	return []HandlerID{r.Hover, r.Click, r.HoverSystem, r.ClickSystem}
}

// Hit is one marker under the pointer ray.
type Hit struct {
	Handle Handle
	// Distance is the closest approach of the ray to the marker center.
	Distance float32
	// Depth is how far along the ray the closest approach lies, negative behind the origin.
	Depth float32
}

// candidate is a live, interactive object captured for hit-testing.
type candidate struct {
	handle   Handle
	center   mgl32.Vec3
	radius   float32
	bindings BindingIDs
}

// HitDistance returns the closest approach of r to point p and the ray parameter at which
// it occurs. A zero direction yields +Inf.
func HitDistance(r Ray, p mgl32.Vec3) (distance, depth float32) {
	dir := r.Direction
	l := dir.Len()
	if l == 0 {
		return math32.Inf(1), 0
	}
	if l != 1 {
		dir = dir.Mul(1 / l)
	}
	closest := r.Origin.Sub(p)
	t := dir.Dot(closest)
	return closest.Sub(dir.Mul(t)).Len(), -t
}

// Interact ages interaction registrations, then hit-tests the pointer ray against live
// interactive objects and dispatches callbacks. It does nothing for the tick if there is
// no unique interaction camera, the cursor is outside the viewport or no ray is available.
func (o *Overlay) Interact() {
	candidates, ok := o.prepareInteraction()
	if !ok {
		return
	}
	ray, ok := o.pointerRay()
	if !ok {
		o.setLastHits(nil)
		return
	}
	hits := hitTest(ray, candidates)
	if o.nearestOnly && len(hits) > 1 {
		hits = hits[:1]
	}
	o.setLastHits(hits)
	if len(hits) == 0 {
		return
	}

	pressed := o.pointer.PrimaryJustPressed()
	byHandle := make(map[Handle]BindingIDs, len(candidates))
	for _, c := range candidates {
		byHandle[c.handle] = c.bindings
	}

	type pending struct {
		target Handle
		id     HandlerID
		kind   string
	}
	var exclusive []pending
	for _, h := range hits {
		b := byHandle[h.Handle]
		o.runIsolated(b.Hover, "hover", h.Handle)
		if pressed {
			o.runIsolated(b.Click, "click", h.Handle)
		}
		if b.HoverSystem != 0 {
			exclusive = append(exclusive, pending{h.Handle, b.HoverSystem, "hover_system"})
		}
		if pressed && b.ClickSystem != 0 {
			exclusive = append(exclusive, pending{h.Handle, b.ClickSystem, "click_system"})
		}
	}
	if len(exclusive) == 0 {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	for _, p := range exclusive {
		if o.closed {
			return
		}
		fn, ok := o.handlers.Exclusive(p.id)
		if !ok {
			continue
		}
		w := &World{o: o, target: p.target}
		o.guard(p.kind, p.target, func() { fn(w) })
	}
}

// prepareInteraction counts the tick, ages registrations and snapshots the live
// interactive objects. ok is false once the overlay is closed.
func (o *Overlay) prepareInteraction() ([]candidate, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return nil, false
	}
	o.ticks.Add(1)

	var out []candidate
	for h, r := range o.regs {
		obj, live := o.objects.get(h)
		if live {
			r.age = 0
			out = append(out, candidate{
				handle:   h,
				center:   obj.Transform.Translation,
				radius:   obj.Transform.Scale[0],
				bindings: r.BindingIDs,
			})
			continue
		}
		r.age++
		if r.age > o.maxAge {
			o.handlers.remove(r.ids()...)
			delete(o.regs, h)
		}
	}
	// map order is random; keep dispatch deterministic
	sort.Slice(out, func(i, j int) bool { return out[i].handle.Index < out[j].handle.Index })
	return out, true
}

// pointerRay builds the world-space pointer ray from the unique interaction camera.
func (o *Overlay) pointerRay() (Ray, bool) {
	if o.cameras == nil || o.pointer == nil {
		return Ray{}, false
	}
	var cam *CameraObject
	cams := o.cameras.Cameras()
	for i := range cams {
		if cams[i].Interaction == nil {
			continue
		}
		if cam != nil {
			o.log.Debug("gizmo: more than one interaction camera, skipping tick")
			return Ray{}, false
		}
		cam = &cams[i]
	}
	if cam == nil || cam.Projector == nil {
		return Ray{}, false
	}
	pos, ok := o.pointer.CursorPosition()
	if !ok {
		return Ray{}, false
	}
	return cam.Projector.ViewportToWorld(cam.Transform, pos)
}

// hitTest returns the candidates within their radius of the ray, nearest first. Hits
// behind the ray origin follow every hit in front of it.
func hitTest(r Ray, cs []candidate) []Hit {
	var hits []Hit
	for _, c := range cs {
		d, depth := HitDistance(r, c.center)
		if d <= c.radius {
			hits = append(hits, Hit{Handle: c.handle, Distance: d, Depth: depth})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i].Depth, hits[j].Depth
		if (a < 0) != (b < 0) {
			return b < 0
		}
		return math32.Abs(a) < math32.Abs(b)
	})
	return hits
}

func (o *Overlay) runIsolated(id HandlerID, kind string, target Handle) {
	if id == 0 {
		return
	}
	fn, ok := o.handlers.Isolated(id)
	if !ok {
		return
	}
	o.guard(kind, target, fn)
}

// guard runs fn, recovering and counting a panic so one bad callback cannot stop the tick.
func (o *Overlay) guard(kind string, target Handle, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			o.panics.Add(1)
			o.log.Warn("gizmo: recovered callback panic", "callback", kind, "target", target, "panic", r)
		}
	}()
	fn()
}

func (o *Overlay) setLastHits(hits []Hit) {
	o.mu.Lock()
	o.lastHits = hits
	o.mu.Unlock()
}

// BindingIDs returns the handler ids registered for h. It still answers for an
// orphaned registration until it is purged.
func (o *Overlay) BindingIDs(h Handle) (BindingIDs, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	r, ok := o.regs[h]
	if !ok {
		return BindingIDs{}, false
	}
	return r.BindingIDs, true
}

// LastHits returns the hits of the most recent interaction pass, nearest first.
func (o *Overlay) LastHits() []Hit {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]Hit(nil), o.lastHits...)
}
