package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"gizmo-overlay/internal/gizmo"
)

const (
	gridExtent     = 50
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// Scene holds the 3D camera and the editor grid. The camera is the overlay's interaction
// camera: Cameras and ViewportToWorld publish it to gizmo.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool
	// Interaction tags the camera with gizmo.InteractionCamera. On by default.
	Interaction bool
}

// New returns a scene with a perspective camera at (10,10,10) looking at the origin.
func New() *Scene {
	s := &Scene{GridVisible: true, Interaction: true}
	s.Camera.Position = rl.NewVector3(10, 10, 10)
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// Update moves the free camera while the right mouse button is held, leaving the left
// button and the cursor to the overlay.
func (s *Scene) Update() {
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		rl.UpdateCamera(&s.Camera, rl.CameraFree)
	}
}

// Draw renders the grid and then each fn inside one BeginMode3D/EndMode3D pair.
func (s *Scene) Draw(fns ...func()) {
	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawEditorGrid()
	}
	for _, fn := range fns {
		fn()
	}
	rl.EndMode3D()
}

// ViewPos returns the camera position for lighting.
func (s *Scene) ViewPos() [3]float32 {
	p := s.Camera.Position
	return [3]float32{p.X, p.Y, p.Z}
}

// Cameras implements gizmo.CameraQuery.
func (s *Scene) Cameras() []gizmo.CameraObject {
	c := s.Camera
	obj := gizmo.CameraObject{
		Transform: gizmo.LookAt(
			mgl32.Vec3{c.Position.X, c.Position.Y, c.Position.Z},
			mgl32.Vec3{c.Target.X, c.Target.Y, c.Target.Z},
			mgl32.Vec3{c.Up.X, c.Up.Y, c.Up.Z},
		),
		Projector: s,
	}
	if s.Interaction {
		obj.Interaction = &gizmo.InteractionCamera{}
	}
	return []gizmo.CameraObject{obj}
}

// ViewportToWorld implements gizmo.Projector with raylib's own unprojection of the live
// camera; the transform argument is not needed.
func (s *Scene) ViewportToWorld(_ gizmo.Transform, p mgl32.Vec2) (gizmo.Ray, bool) {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	if w <= 0 || h <= 0 {
		return gizmo.Ray{}, false
	}
	r := rl.GetScreenToWorldRay(rl.NewVector2(p[0], p[1]), s.Camera)
	return gizmo.Ray{
		Origin:    mgl32.Vec3{r.Position.X, r.Position.Y, r.Position.Z},
		Direction: mgl32.Vec3{r.Direction.X, r.Direction.Y, r.Direction.Z},
	}, true
}

// drawEditorGrid draws major/minor lines on the XZ plane and the three axes through the origin.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	const e = float32(gridExtent)
	for i := -gridExtent; i <= gridExtent; i++ {
		c := minor
		if i%gridMajorStep == 0 {
			c = major
		}
		f := float32(i)
		rl.DrawLine3D(rl.NewVector3(f, 0, -e), rl.NewVector3(f, 0, e), c)
		rl.DrawLine3D(rl.NewVector3(-e, 0, f), rl.NewVector3(e, 0, f), c)
	}
	rl.DrawLine3D(rl.NewVector3(-e, 0, 0), rl.NewVector3(e, 0, 0), rl.NewColor(220, 80, 80, axisLineAlpha))
	rl.DrawLine3D(rl.NewVector3(0, -e, 0), rl.NewVector3(0, e, 0), rl.NewColor(80, 220, 80, axisLineAlpha))
	rl.DrawLine3D(rl.NewVector3(0, 0, -e), rl.NewVector3(0, 0, e), rl.NewColor(80, 80, 220, axisLineAlpha))
}
