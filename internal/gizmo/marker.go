package gizmo

import (
	"fmt"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Marker is a point-like annotation. Build one with NewMarker or a shape constructor and
// refine it with the With* and On* methods, which return modified copies:
//
//	m := gizmo.Sphere(mgl32.Vec3{8, 2, 5}, 0.4, gizmo.Green).
//		OnClick(func() { slog.Info("clicked") })
type Marker struct {
	Transform Transform
	Color     color.RGBA
	Shape     Shape
	Binding   Binding
}

// DefaultMarker is a pink sphere at the origin, one unit wide, tall and deep.
func DefaultMarker() Marker {
	return Marker{
		Transform: IdentityTransform(),
		Color:     Pink,
		Shape:     SphereShape,
	}
}

// NewMarker returns a marker with the given position, scale, color and shape.
func NewMarker(position, scale mgl32.Vec3, c color.RGBA, shape Shape) Marker {
	return DefaultMarker().
		WithPosition(position).
		WithScale(scale).
		WithColor(c).
		withShape(shape)
}

// Sphere returns a sphere marker. The diameter is also the hit radius.
func Sphere(position mgl32.Vec3, diameter float32, c color.RGBA) Marker {
	return NewMarker(position, splat(diameter), c, SphereShape)
}

// Cube returns a cube marker with equal sides.
func Cube(position mgl32.Vec3, size float32, c color.RGBA) Marker {
	return NewMarker(position, splat(size), c, CubeShape)
}

// Cuboid returns a box marker with per-axis size.
func Cuboid(position, scale mgl32.Vec3, c color.RGBA) Marker {
	return NewMarker(position, scale, c, BoxShape)
}

// Capsule returns a capsule marker; width applies to X and Z, height to Y.
func Capsule(position mgl32.Vec3, width, height float32, c color.RGBA) Marker {
	return NewMarker(position, mgl32.Vec3{width, height, width}, c, CapsuleShape)
}

// Torus returns a torus marker.
func Torus(position mgl32.Vec3, size float32, c color.RGBA) Marker {
	return NewMarker(position, splat(size), c, TorusShape)
}

// Custom returns a marker drawn with a mesh the caller created on the Backend.
func Custom(position, scale mgl32.Vec3, c color.RGBA, mesh MeshHandle) Marker {
	return NewMarker(position, scale, c, CustomShape(mesh))
}

// WithPosition sets the marker position.
func (m Marker) WithPosition(p mgl32.Vec3) Marker {
	m.Transform.Translation = p
	return m
}

// WithScale sets the marker scale. Negative components are clamped to zero.
func (m Marker) WithScale(s mgl32.Vec3) Marker {
	for i := range s {
		s[i] = math32.Max(s[i], 0)
	}
	m.Transform.Scale = s
	return m
}

// WithRotation sets the marker orientation.
func (m Marker) WithRotation(q mgl32.Quat) Marker {
	m.Transform.Rotation = q
	return m
}

// WithColor sets the marker color.
func (m Marker) WithColor(c color.RGBA) Marker {
	m.Color = c
	return m
}

func (m Marker) withShape(s Shape) Marker {
	m.Shape = s
	return m
}

// Position returns the marker translation.
func (m Marker) Position() mgl32.Vec3 {
	return m.Transform.Translation
}

func (m Marker) String() string {
	t := m.Transform
	return fmt.Sprintf("Position: %v \nScale: %v, \nRotation: [%v %v %v %v] \nColor: [%d, %d, %d, %d]",
		t.Translation, t.Scale,
		t.Rotation.V[0], t.Rotation.V[1], t.Rotation.V[2], t.Rotation.W,
		m.Color.R, m.Color.G, m.Color.B, m.Color.A)
}

func splat(v float32) mgl32.Vec3 {
	return mgl32.Vec3{v, v, v}
}
