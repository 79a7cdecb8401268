package gizmo

import (
	"errors"
	"fmt"
	"sync"
)

// ShapeKind enumerates the built-in marker shapes.
type ShapeKind uint8

const (
	ShapeSphere ShapeKind = iota
	ShapeCube
	ShapeBox
	ShapeCapsule
	ShapeTorus
	// ShapeCustom uses a mesh the caller created on the Backend.
	ShapeCustom
	// ShapeNamed resolves through a factory registered with Overlay.RegisterShape.
	ShapeNamed
)

var shapeNames = [...]string{"sphere", "cube", "box", "capsule", "torus", "custom", "named"}

func (k ShapeKind) String() string {
	if int(k) < len(shapeNames) {
		return shapeNames[k]
	}
	return fmt.Sprintf("ShapeKind(%d)", k)
}

// Shape is a closed tagged reference to the mesh a marker is drawn with.
// Mesh is only meaningful for ShapeCustom and Name only for ShapeNamed.
type Shape struct {
	Kind ShapeKind
	Mesh MeshHandle
	Name string
}

// Built-in shapes.
var (
	SphereShape  = Shape{Kind: ShapeSphere}
	CubeShape    = Shape{Kind: ShapeCube}
	BoxShape     = Shape{Kind: ShapeBox}
	CapsuleShape = Shape{Kind: ShapeCapsule}
	TorusShape   = Shape{Kind: ShapeTorus}
)

// CustomShape references a mesh already created on the Backend.
func CustomShape(mesh MeshHandle) Shape {
	return Shape{Kind: ShapeCustom, Mesh: mesh}
}

// NamedShape references a shape registered with Overlay.RegisterShape.
func NamedShape(name string) Shape {
	return Shape{Kind: ShapeNamed, Name: name}
}

func (s Shape) String() string {
	switch s.Kind {
	case ShapeCustom:
		return fmt.Sprintf("custom(%d)", s.Mesh)
	case ShapeNamed:
		return "named(" + s.Name + ")"
	}
	return s.Kind.String()
}

// ErrUnknownShape is returned when a named shape has no registered factory.
var ErrUnknownShape = errors.New("gizmo: unknown shape")

// ShapeFactory creates the mesh for a registered shape. It runs at most once per
// overlay, the first time a marker with that shape is spawned.
type ShapeFactory func(b Backend) (MeshHandle, error)

// shapeKey is the mesh cache key. Custom shapes never reach the cache.
type shapeKey struct {
	kind ShapeKind
	name string
}

// shapeRegistry holds the named shape factories.
type shapeRegistry struct {
	mu        sync.RWMutex
	factories map[string]ShapeFactory
}

func (r *shapeRegistry) register(name string, f ShapeFactory) {
	if f == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.factories == nil {
		r.factories = make(map[string]ShapeFactory)
	}
	r.factories[name] = f
}

func (r *shapeRegistry) lookup(name string) (ShapeFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// primitiveDesc returns the mesh description for a built-in kind.
func primitiveDesc(k ShapeKind) MeshDesc {
	return MeshDesc{Primitive: k}
}
