package headless

import (
	"errors"
	"image/color"
	"sort"
	"sync"

	"gizmo-overlay/internal/gizmo"
)

// ErrUnavailable is returned by a Backend told to fail.
var ErrUnavailable = errors.New("headless: resource unavailable")

// Failure selects which Backend calls fail.
type Failure uint8

const (
	FailMesh Failure = 1 << iota
	FailMaterial
	FailObject
)

// Object is a drawable object held by the Backend.
type Object struct {
	Handle    gizmo.ObjectHandle
	Transform gizmo.Transform
	Mesh      gizmo.MeshHandle
	Material  gizmo.MaterialHandle
}

// Counts totals Backend calls since creation.
type Counts struct {
	MeshesCreated    int
	MeshesReleased   int
	MaterialsCreated int
	ObjectsCreated   int
	ObjectsDespawned int
}

// Backend is an in-memory gizmo.Backend. It draws nothing and records everything, so
// it serves headless runs and tests alike.
type Backend struct {
	mu        sync.Mutex
	next      uint64
	fail      Failure
	meshes    map[gizmo.MeshHandle]gizmo.MeshDesc
	materials map[gizmo.MaterialHandle]color.RGBA
	objects   map[gizmo.ObjectHandle]Object
	counts    Counts
}

// NewBackend returns an empty backend.
func NewBackend() *Backend {
	return &Backend{
		meshes:    make(map[gizmo.MeshHandle]gizmo.MeshDesc),
		materials: make(map[gizmo.MaterialHandle]color.RGBA),
		objects:   make(map[gizmo.ObjectHandle]Object),
	}
}

// SetFailing makes the selected calls return ErrUnavailable until cleared with 0.
func (b *Backend) SetFailing(f Failure) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail = f
}

// CreateMesh records desc under a new handle.
func (b *Backend) CreateMesh(desc gizmo.MeshDesc) (gizmo.MeshHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail&FailMesh != 0 {
		return 0, ErrUnavailable
	}
	b.next++
	h := gizmo.MeshHandle(b.next)
	b.meshes[h] = desc
	b.counts.MeshesCreated++
	return h, nil
}

// CreateMaterial records a material of color c.
func (b *Backend) CreateMaterial(c color.RGBA) (gizmo.MaterialHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail&FailMaterial != 0 {
		return 0, ErrUnavailable
	}
	b.next++
	h := gizmo.MaterialHandle(b.next)
	b.materials[h] = c
	b.counts.MaterialsCreated++
	return h, nil
}

// CreateObject records an object. The handles are not checked.
func (b *Backend) CreateObject(t gizmo.Transform, mesh gizmo.MeshHandle, mat gizmo.MaterialHandle) (gizmo.ObjectHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail&FailObject != 0 {
		return 0, ErrUnavailable
	}
	b.next++
	h := gizmo.ObjectHandle(b.next)
	b.objects[h] = Object{Handle: h, Transform: t, Mesh: mesh, Material: mat}
	b.counts.ObjectsCreated++
	return h, nil
}

// DespawnObject forgets h. Unknown handles are ignored.
func (b *Backend) DespawnObject(h gizmo.ObjectHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.objects[h]; !ok {
		return
	}
	delete(b.objects, h)
	b.counts.ObjectsDespawned++
}

// ReleaseMesh forgets the mesh h. Unknown handles are ignored.
func (b *Backend) ReleaseMesh(h gizmo.MeshHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.meshes[h]; !ok {
		return
	}
	delete(b.meshes, h)
	b.counts.MeshesReleased++
}

// Objects returns the live objects ordered by handle.
func (b *Backend) Objects() []Object {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Object, 0, len(b.objects))
	for _, o := range b.objects {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// Mesh returns the description a live mesh was created from.
func (b *Backend) Mesh(h gizmo.MeshHandle) (gizmo.MeshDesc, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.meshes[h]
	return d, ok
}

// Material returns the color of a material.
func (b *Backend) Material(h gizmo.MaterialHandle) (color.RGBA, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.materials[h]
	return c, ok
}

// LiveMeshes returns the number of meshes not yet released.
func (b *Backend) LiveMeshes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.meshes)
}

// Counts returns the call totals.
func (b *Backend) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts
}
