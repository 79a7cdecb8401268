// Package rlhost draws gizmo overlays with raylib. Every method touches GPU state and
// must run on the thread that owns the window, after InitWindow.
package rlhost

import (
	"fmt"
	"image/color"
	"sort"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"gizmo-overlay/internal/config"
	"gizmo-overlay/internal/gizmo"
)

// mesh is a GPU mesh or, for polylines, the points drawn with DrawLine3D.
type mesh struct {
	gpu rl.Mesh
	// offset moves the mesh center to the model origin before the object transform.
	offset mgl32.Mat4
	line   []rl.Vector3
}

type material struct {
	mtl   rl.Material
	color rl.Color
}

type object struct {
	model mgl32.Mat4
	mesh  gizmo.MeshHandle
	mat   gizmo.MaterialHandle
}

// Backend implements gizmo.Backend on raylib meshes and materials.
type Backend struct {
	mu        sync.Mutex
	next      uint64
	tess      config.Meshes
	meshes    map[gizmo.MeshHandle]*mesh
	materials map[gizmo.MaterialHandle]*material
	objects   map[gizmo.ObjectHandle]object

	shader      rl.Shader
	shaderTried bool
	viewPos     [3]float32
	lightDir    [3]float32
}

// NewBackend returns an empty backend that tessellates primitives as tess says.
func NewBackend(tess config.Meshes) *Backend {
	return &Backend{
		tess:      tess,
		meshes:    make(map[gizmo.MeshHandle]*mesh),
		materials: make(map[gizmo.MaterialHandle]*material),
		objects:   make(map[gizmo.ObjectHandle]object),
		lightDir:  [3]float32{0.5, 1, 0.5},
	}
}

// SetView sets the camera position and direction to the light for this frame.
func (b *Backend) SetView(viewPos, lightDir [3]float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.viewPos = viewPos
	b.lightDir = lightDir
}

// CreateMesh generates a unit-sized primitive centered on the origin, or records a polyline.
func (b *Backend) CreateMesh(desc gizmo.MeshDesc) (gizmo.MeshHandle, error) {
	if desc.Polyline != nil {
		pm := desc.Polyline
		pts := make([]rl.Vector3, 0, len(pm.Indices))
		for _, i := range pm.Indices {
			pts = append(pts, toVector3(pm.Positions[i]))
		}
		return b.add(&mesh{offset: mgl32.Ident4(), line: pts}), nil
	}

	m := &mesh{offset: mgl32.Ident4()}
	switch desc.Primitive {
	case gizmo.ShapeSphere:
		// radius 0.5 so a unit scale is a unit diameter, like the cube
		m.gpu = rl.GenMeshSphere(0.5, int(b.tess.SphereRings), int(b.tess.SphereSlices))
	case gizmo.ShapeCube, gizmo.ShapeBox:
		m.gpu = rl.GenMeshCube(1, 1, 1)
	case gizmo.ShapeCapsule:
		// raylib has no capsule mesh; a cylinder has the same footprint. Its base sits
		// at y=0, so shift it down by half its height.
		m.gpu = rl.GenMeshCylinder(0.5, 1, int(b.tess.CapsuleSlices))
		m.offset = mgl32.Translate3D(0, -0.5, 0)
	case gizmo.ShapeTorus:
		m.gpu = rl.GenMeshTorus(0.25, 1, int(b.tess.TorusRadSeg), int(b.tess.TorusSides))
	default:
		return 0, fmt.Errorf("rlhost: no mesh generator for %v", desc.Primitive)
	}
	return b.add(m), nil
}

// AddMesh takes ownership of a mesh built by the caller, e.g. for a named gizmo shape.
// center is the point of the mesh that should sit at the marker position.
func (b *Backend) AddMesh(m rl.Mesh, center mgl32.Vec3) gizmo.MeshHandle {
	return b.add(&mesh{gpu: m, offset: mgl32.Translate3D(-center[0], -center[1], -center[2])})
}

func (b *Backend) add(m *mesh) gizmo.MeshHandle {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	h := gizmo.MeshHandle(b.next)
	b.meshes[h] = m
	return h
}

// CreateMaterial returns a lit material tinted c.
func (b *Backend) CreateMaterial(c color.RGBA) (gizmo.MaterialHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureShader()
	mtl := rl.LoadMaterialDefault()
	albedo := mtl.GetMap(rl.MapAlbedo)
	if albedo == nil {
		return 0, fmt.Errorf("rlhost: default material has no albedo map")
	}
	albedo.Color = toColor(c)
	if rl.IsShaderValid(b.shader) {
		mtl.Shader = b.shader
	}
	b.next++
	h := gizmo.MaterialHandle(b.next)
	b.materials[h] = &material{mtl: mtl, color: toColor(c)}
	return h, nil
}

// CreateObject places mesh with mat at t. Both must come from this backend.
func (b *Backend) CreateObject(t gizmo.Transform, meshH gizmo.MeshHandle, matH gizmo.MaterialHandle) (gizmo.ObjectHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.meshes[meshH]; !ok {
		return 0, fmt.Errorf("rlhost: unknown mesh %d", meshH)
	}
	if _, ok := b.materials[matH]; !ok {
		return 0, fmt.Errorf("rlhost: unknown material %d", matH)
	}
	b.next++
	h := gizmo.ObjectHandle(b.next)
	b.objects[h] = object{model: t.Matrix(), mesh: meshH, mat: matH}
	return h, nil
}

// DespawnObject stops drawing h.
func (b *Backend) DespawnObject(h gizmo.ObjectHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, h)
}

// ReleaseMesh unloads the GPU buffers of h. Line meshes only hold points.
func (b *Backend) ReleaseMesh(h gizmo.MeshHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := b.meshes[h]
	if !ok {
		return
	}
	if m.line == nil {
		rl.UnloadMesh(&m.gpu)
	}
	delete(b.meshes, h)
}

// Len returns the number of placed objects.
func (b *Backend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

// Draw renders every object. Call between BeginMode3D and EndMode3D.
func (b *Backend) Draw() {
	b.mu.Lock()
	defer b.mu.Unlock()
	setLitUniforms(b.shader, b.viewPos, b.lightDir)

	handles := make([]gizmo.ObjectHandle, 0, len(b.objects))
	for h := range b.objects {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	for _, h := range handles {
		o := b.objects[h]
		m, mat := b.meshes[o.mesh], b.materials[o.mat]
		if m == nil || mat == nil {
			continue
		}
		model := toMatrix(o.model)
		if m.line != nil {
			for i := 1; i < len(m.line); i++ {
				rl.DrawLine3D(rl.Vector3Transform(m.line[i-1], model), rl.Vector3Transform(m.line[i], model), mat.color)
			}
			continue
		}
		rl.DrawMesh(m.gpu, mat.mtl, toMatrix(o.model.Mul4(m.offset)))
	}
}

// Close unloads every GPU mesh and the shared shader. Call before CloseWindow.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for h, m := range b.meshes {
		if m.line == nil {
			rl.UnloadMesh(&m.gpu)
		}
		delete(b.meshes, h)
	}
	// materials share the lit shader; it is unloaded once here and their maps go with the context
	if rl.IsShaderValid(b.shader) {
		rl.UnloadShader(b.shader)
	}
	b.shader = rl.Shader{}
	clear(b.materials)
	clear(b.objects)
}

func (b *Backend) ensureShader() {
	if b.shaderTried {
		return
	}
	b.shaderTried = true
	b.shader = rl.LoadShaderFromMemory(litVS, litFS)
}
