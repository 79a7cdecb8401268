package headless

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"gizmo-overlay/internal/gizmo"
)

// Camera is a pinhole camera looking down its local -Z axis. It is both the camera
// query and the projector for a single-camera host.
type Camera struct {
	Transform gizmo.Transform
	Width     float32
	Height    float32
	// FovY is the vertical field of view in radians.
	FovY float32
	// Interaction tags the camera with gizmo.InteractionCamera.
	Interaction bool
}

// NewCamera returns an interaction camera at eye looking at target.
func NewCamera(eye, target mgl32.Vec3, width, height float32) *Camera {
	return &Camera{
		Transform:   gizmo.LookAt(eye, target, mgl32.Vec3{0, 1, 0}),
		Width:       width,
		Height:      height,
		FovY:        mgl32.DegToRad(45),
		Interaction: true,
	}
}

// Center returns the viewport center, where the ray follows the view direction.
func (c *Camera) Center() mgl32.Vec2 {
	return mgl32.Vec2{c.Width / 2, c.Height / 2}
}

// Cameras implements gizmo.CameraQuery.
func (c *Camera) Cameras() []gizmo.CameraObject {
	obj := gizmo.CameraObject{Transform: c.Transform, Projector: c}
	if c.Interaction {
		obj.Interaction = &gizmo.InteractionCamera{}
	}
	return []gizmo.CameraObject{obj}
}

// ViewportToWorld implements gizmo.Projector. Viewport y grows downwards.
func (c *Camera) ViewportToWorld(t gizmo.Transform, p mgl32.Vec2) (gizmo.Ray, bool) {
	if c.Width <= 0 || c.Height <= 0 {
		return gizmo.Ray{}, false
	}
	half := math32.Tan(c.FovY / 2)
	aspect := c.Width / c.Height
	x := (2*p[0]/c.Width - 1) * aspect * half
	y := (1 - 2*p[1]/c.Height) * half
	dir := t.Rotation.Normalize().Rotate(mgl32.Vec3{x, y, -1}.Normalize())
	return gizmo.Ray{Origin: t.Translation, Direction: dir}, true
}

// WorldToViewport returns where p appears in the viewport. ok is false for points
// behind the camera.
func (c *Camera) WorldToViewport(p mgl32.Vec3) (mgl32.Vec2, bool) {
	t := c.Transform
	local := t.Rotation.Normalize().Inverse().Rotate(p.Sub(t.Translation))
	if local[2] >= 0 || c.Width <= 0 || c.Height <= 0 {
		return mgl32.Vec2{}, false
	}
	half := math32.Tan(c.FovY / 2)
	aspect := c.Width / c.Height
	x := local[0] / -local[2] / (aspect * half)
	y := local[1] / -local[2] / half
	return mgl32.Vec2{(x + 1) * c.Width / 2, (1 - y) * c.Height / 2}, true
}

// CameraSet is a multi-camera host.
type CameraSet []*Camera

// Cameras implements gizmo.CameraQuery.
func (s CameraSet) Cameras() []gizmo.CameraObject {
	var out []gizmo.CameraObject
	for _, c := range s {
		out = append(out, c.Cameras()...)
	}
	return out
}

// Pointer turns level-triggered button state into the edge-triggered state the overlay
// reads. Call Poll once per tick before the interaction phase.
type Pointer struct {
	mu          sync.Mutex
	pos         mgl32.Vec2
	inside      bool
	down        bool
	wasDown     bool
	justPressed bool
}

// MoveTo places the cursor inside the viewport.
func (p *Pointer) MoveTo(pos mgl32.Vec2) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos = pos
	p.inside = true
}

// Leave moves the cursor out of the viewport.
func (p *Pointer) Leave() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inside = false
}

// SetDown sets the primary button level.
func (p *Pointer) SetDown(down bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.down = down
}

// Poll latches the press edge for the coming tick.
func (p *Pointer) Poll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.justPressed = p.down && !p.wasDown
	p.wasDown = p.down
}

// CursorPosition implements gizmo.Pointer.
func (p *Pointer) CursorPosition() (mgl32.Vec2, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos, p.inside
}

// PrimaryJustPressed implements gizmo.Pointer.
func (p *Pointer) PrimaryJustPressed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.justPressed
}
