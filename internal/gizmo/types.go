package gizmo

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform is the position, orientation and scale of a marker or retained object.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// IdentityTransform returns a transform at the origin with identity rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Matrix returns the model matrix (translate * rotate * scale).
func (t Transform) Matrix() mgl32.Mat4 {
	tr := mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2])
	sc := mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return tr.Mul4(t.Rotation.Normalize().Mat4()).Mul4(sc)
}

// LookAt returns a unit-scale transform at eye whose local -Z axis points at target.
// It is how hosts describe camera placement.
func LookAt(eye, target, up mgl32.Vec3) Transform {
	t := IdentityTransform()
	t.Translation = eye
	if target == eye {
		return t
	}
	view := mgl32.LookAtV(eye, target, up)
	t.Rotation = mgl32.Mat4ToQuat(view.Inv())
	return t
}

// Ray is a world-space half line. Direction is expected to be unit length; hit-testing
// normalizes it if it is not.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// MeshHandle identifies a mesh owned by the Backend.
type MeshHandle uint64

// MaterialHandle identifies a material owned by the Backend.
type MaterialHandle uint64

// ObjectHandle identifies a drawable object owned by the Backend.
type ObjectHandle uint64

// Handle identifies a retained object. It is issued at spawn and invalidated at despawn;
// a stale Handle never resolves, even after its slot is reused.
type Handle struct {
	Index      uint32
	Generation uint32
}

// IsZero reports whether h is the zero Handle, which is never issued.
func (h Handle) IsZero() bool {
	return h.Generation == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("%d@%d", h.Index, h.Generation)
}

// Common colors. They are material tints; the raylib host shades them with one directional light.
var (
	White  = color.RGBA{255, 255, 255, 255}
	Black  = color.RGBA{0, 0, 0, 255}
	Red    = color.RGBA{255, 0, 0, 255}
	Green  = color.RGBA{0, 255, 0, 255}
	Blue   = color.RGBA{0, 0, 255, 255}
	Yellow = color.RGBA{255, 255, 0, 255}
	Orange = color.RGBA{255, 165, 0, 255}
	Purple = color.RGBA{160, 32, 240, 255}
	Pink   = color.RGBA{255, 8, 255, 255}
)

// ColorKey packs c into the fixed-width key used for material dedup.
func ColorKey(c color.RGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// ColorFromFloats quantizes 0..1 channel values to 8 bits. Out-of-range values are clamped.
func ColorFromFloats(r, g, b, a float32) color.RGBA {
	q := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
	}
	return color.RGBA{q(r), q(g), q(b), q(a)}
}
