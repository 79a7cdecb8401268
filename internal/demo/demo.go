// Package demo is the showcase driven by cmd/gizmos: five shapes circling the origin,
// each clickable, joined by a line, over a square outline.
package demo

import (
	"image/color"
	"log/slog"
	"sync/atomic"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"gizmo-overlay/internal/gizmo"
)

// ConeShape is the named shape the host registers for the fifth entity.
const ConeShape = "cone"

const (
	orbitRadius = 4
	orbitSpeed  = 0.5
	bobSpeed    = 2
	bobHeight   = 0.5
	baseHeight  = 1
	entities    = 5
)

// Demo holds the animation clock and the marker toggled by clicking the sphere.
type Demo struct {
	log     *slog.Logger
	connect bool
	elapsed float32

	// badge is owned by exclusive callbacks, which never run concurrently.
	badge  gizmo.Handle
	clicks atomic.Int64
}

// New returns a demo at time zero. connect joins the entities with a line.
func New(log *slog.Logger, connect bool) *Demo {
	if log == nil {
		log = gizmo.Logger()
	}
	return &Demo{log: log, connect: connect}
}

// Advance moves the animation clock by dt seconds.
func (d *Demo) Advance(dt float32) {
	d.elapsed += dt
}

// Clicks returns how many entity clicks were seen.
func (d *Demo) Clicks() int64 {
	return d.clicks.Load()
}

// Position returns where entity i is at the current time.
func (d *Demo) Position(i int) mgl32.Vec3 {
	angle := float32(i)*2*math32.Pi/entities + d.elapsed*orbitSpeed
	return mgl32.Vec3{
		math32.Cos(angle) * orbitRadius,
		baseHeight + math32.Sin(d.elapsed*bobSpeed+float32(i))*bobHeight,
		math32.Sin(angle) * orbitRadius,
	}
}

// Markers returns the five entity markers for the current time.
func (d *Demo) Markers() []gizmo.Marker {
	spin := mgl32.QuatRotate(d.elapsed, mgl32.Vec3{0, 1, 0})
	ms := []gizmo.Marker{
		gizmo.Sphere(d.Position(0), 1, gizmo.Red).OnClickSystem(d.toggleBadge),
		gizmo.Cube(d.Position(1), 0.8, gizmo.Green).WithRotation(spin),
		gizmo.Capsule(d.Position(2), 0.6, 1.2, gizmo.Blue),
		gizmo.Torus(d.Position(3), 1, gizmo.Yellow).WithRotation(spin),
		gizmo.NewMarker(d.Position(4), mgl32.Vec3{0.8, 0.8, 0.8}, gizmo.Orange, gizmo.NamedShape(ConeShape)),
	}
	names := []string{"sphere", "cube", "capsule", "torus", "cone"}
	for i := range ms {
		name := names[i]
		ms[i] = ms[i].OnClick(func() {
			d.clicks.Add(1)
			d.log.Info("demo: clicked", "entity", name)
		})
	}
	return ms
}

// Submit queues this tick's drawing.
func (d *Demo) Submit(q *gizmo.Queue) {
	q.SubmitMarkers(d.Markers(), d.connect)
	q.SubmitClosedLine([]mgl32.Vec3{
		{-orbitRadius, 0, -orbitRadius},
		{orbitRadius, 0, -orbitRadius},
		{orbitRadius, 0, orbitRadius},
		{-orbitRadius, 0, orbitRadius},
	}, gizmo.White)
}

// SubmitRing queues a ring of n small spheres for producer p. Producers run on their own
// goroutines and share the queue.
func (d *Demo) SubmitRing(q *gizmo.Queue, p, n int) {
	if n <= 0 {
		return
	}
	c := ringColor(p)
	y := 3 + float32(p)*0.25
	ms := make([]gizmo.Marker, n)
	for i := range ms {
		a := float32(i)*2*math32.Pi/float32(n) + d.elapsed
		ms[i] = gizmo.Sphere(mgl32.Vec3{math32.Cos(a) * 2, y, math32.Sin(a) * 2}, 0.2, c)
	}
	q.SubmitMarkers(ms, false)
}

func ringColor(p int) color.RGBA {
	palette := []color.RGBA{gizmo.Pink, gizmo.Purple, gizmo.Orange, gizmo.Green, gizmo.Blue}
	return palette[p%len(palette)]
}

// toggleBadge shows a persistent marker above the sphere, or removes it if shown.
func (d *Demo) toggleBadge(w *gizmo.World) {
	if w.Remove(d.badge) {
		d.badge = gizmo.Handle{}
		d.log.Info("demo: badge removed")
		return
	}
	target, ok := w.Lookup(w.Target())
	if !ok {
		return
	}
	pos := target.Transform.Translation.Add(mgl32.Vec3{0, 1.5, 0})
	h, err := w.SpawnPersistent(gizmo.Cube(pos, 0.4, gizmo.Pink))
	if err != nil {
		d.log.Warn("demo: badge", "err", err)
		return
	}
	d.badge = h
	d.log.Info("demo: badge shown", "handle", h)
}

// Badge returns the persistent marker handle, zero when hidden.
func (d *Demo) Badge() gizmo.Handle {
	return d.badge
}
