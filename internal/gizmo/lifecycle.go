package gizmo

import "fmt"

// Cleanup despawns every ephemeral object spawned by the previous tick and releases
// their generated meshes. Persistent objects are left alone.
func (o *Overlay) Cleanup() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	for _, h := range o.objects.handles(true) {
		o.despawn(h)
	}
}

// Spawn drains the queue and materializes its markers and lines as ephemeral objects.
// Anything whose resources cannot be created is dropped for this tick.
func (o *Overlay) Spawn() {
	batch := o.queue.Drain()
	if batch.Len() == 0 {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	for _, m := range batch.Markers {
		if _, err := o.spawnMarker(m, true); err != nil {
			o.drop("marker", err)
		}
	}
	for _, l := range batch.Lines {
		if _, err := o.spawnLine(l, true); err != nil {
			o.drop("line", err)
		}
	}
}

func (o *Overlay) drop(what string, err error) {
	o.dropped.Add(1)
	o.log.Debug("gizmo: dropped submission", "kind", what, "err", err)
}

// spawnMarker requires o.mu held exclusively.
func (o *Overlay) spawnMarker(m Marker, ephemeral bool) (Handle, error) {
	if o.backend == nil {
		return Handle{}, ErrNoBackend
	}
	mesh, err := o.meshFor(m.Shape)
	if err != nil {
		return Handle{}, err
	}
	mat, err := o.materials.MaterialFor(m.Color)
	if err != nil {
		return Handle{}, fmt.Errorf("gizmo: material %v: %w", m.Color, err)
	}
	host, err := o.backend.CreateObject(m.Transform, mesh, mat)
	if err != nil {
		return Handle{}, fmt.Errorf("gizmo: object: %w", err)
	}
	h := o.objects.insert(Object{
		Host:      host,
		Transform: m.Transform,
		Color:     m.Color,
		Ephemeral: ephemeral,
	})
	if !m.Binding.IsZero() {
		o.regs[h] = &registration{BindingIDs: BindingIDs{
			Hover:       o.handlers.addIsolated(m.Binding.Hover),
			Click:       o.handlers.addIsolated(m.Binding.Click),
			HoverSystem: o.handlers.addExclusive(m.Binding.HoverSystem),
			ClickSystem: o.handlers.addExclusive(m.Binding.ClickSystem),
		}}
	}
	return h, nil
}

// spawnLine requires o.mu held exclusively.
func (o *Overlay) spawnLine(l Line, ephemeral bool) (Handle, error) {
	if o.backend == nil {
		return Handle{}, ErrNoBackend
	}
	pm, ok := buildPolyline(l)
	if !ok {
		return Handle{}, ErrMalformedLine
	}
	mesh, err := o.backend.CreateMesh(MeshDesc{Polyline: &pm})
	if err != nil {
		return Handle{}, fmt.Errorf("gizmo: line mesh: %w", err)
	}
	mat, err := o.materials.MaterialFor(l.Color)
	if err != nil {
		o.backend.ReleaseMesh(mesh)
		return Handle{}, fmt.Errorf("gizmo: material %v: %w", l.Color, err)
	}
	t := IdentityTransform()
	host, err := o.backend.CreateObject(t, mesh, mat)
	if err != nil {
		o.backend.ReleaseMesh(mesh)
		return Handle{}, fmt.Errorf("gizmo: object: %w", err)
	}
	return o.objects.insert(Object{
		Host:      host,
		Transform: t,
		Color:     l.Color,
		Line:      true,
		Ephemeral: ephemeral,
		lineMesh:  mesh,
	}), nil
}

// despawn requires o.mu held exclusively. A registration bound to h is left behind to
// age out in the interaction phase.
func (o *Overlay) despawn(h Handle) bool {
	obj, ok := o.objects.remove(h)
	if !ok {
		return false
	}
	o.backend.DespawnObject(obj.Host)
	if obj.Line {
		o.backend.ReleaseMesh(obj.lineMesh)
	}
	return true
}

func (o *Overlay) meshFor(s Shape) (MeshHandle, error) {
	switch s.Kind {
	case ShapeCustom:
		if s.Mesh == 0 {
			return 0, fmt.Errorf("%w: custom shape without a mesh", ErrUnknownShape)
		}
		return s.Mesh, nil
	case ShapeNamed:
		f, ok := o.shapes.lookup(s.Name)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownShape, s.Name)
		}
		return o.meshes.getOrCreate(shapeKey{kind: ShapeNamed, name: s.Name}, func() (MeshHandle, error) {
			return f(o.backend)
		})
	case ShapeSphere, ShapeCube, ShapeBox, ShapeCapsule, ShapeTorus:
		return o.meshes.getOrCreate(shapeKey{kind: s.Kind}, func() (MeshHandle, error) {
			return o.backend.CreateMesh(primitiveDesc(s.Kind))
		})
	}
	return 0, fmt.Errorf("%w: %v", ErrUnknownShape, s)
}
