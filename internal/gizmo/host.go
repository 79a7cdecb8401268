package gizmo

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// MeshDesc describes a mesh for Backend.CreateMesh: either a built-in primitive
// (Polyline == nil) or a generated line strip.
type MeshDesc struct {
	Primitive ShapeKind
	Polyline  *PolylineMesh
}

// Backend is the host renderer. All calls come from the lifecycle phases or from
// exclusive callbacks, never concurrently with each other.
type Backend interface {
	CreateMesh(desc MeshDesc) (MeshHandle, error)
	CreateMaterial(c color.RGBA) (MaterialHandle, error)
	CreateObject(t Transform, mesh MeshHandle, mat MaterialHandle) (ObjectHandle, error)
	DespawnObject(h ObjectHandle)
	ReleaseMesh(h MeshHandle)
}

// InteractionCamera marks the camera used to build pointer rays. Exactly one camera
// must carry it, otherwise the interaction phase is skipped.
type InteractionCamera struct{}

// Projector turns a viewport point into a world-space ray for a camera transform.
type Projector interface {
	ViewportToWorld(camera Transform, point mgl32.Vec2) (Ray, bool)
}

// ProjectorFunc adapts a function to Projector.
type ProjectorFunc func(camera Transform, point mgl32.Vec2) (Ray, bool)

// ViewportToWorld calls f.
func (f ProjectorFunc) ViewportToWorld(camera Transform, point mgl32.Vec2) (Ray, bool) {
	return f(camera, point)
}

// CameraObject is one camera known to the host.
type CameraObject struct {
	Transform   Transform
	Interaction *InteractionCamera
	Projector   Projector
}

// CameraQuery lists the host cameras.
type CameraQuery interface {
	Cameras() []CameraObject
}

// Pointer is the host windowing/input layer.
type Pointer interface {
	// CursorPosition returns the cursor in viewport coordinates, ok false when it is
	// outside the window or unknown.
	CursorPosition() (pos mgl32.Vec2, ok bool)
	// PrimaryJustPressed reports whether the primary button went down this tick.
	PrimaryJustPressed() bool
}

// Stage orders phases within a tick.
type Stage int

const (
	StagePreUpdate Stage = iota
	StageUpdate
	StagePostUpdate
	StageDraw
)

var stageNames = [...]string{"pre-update", "update", "post-update", "draw"}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "stage?"
}

// Scheduler runs registered phases once per tick, stage by stage, in registration order
// within a stage.
type Scheduler interface {
	AddPhase(stage Stage, name string, fn func())
}
