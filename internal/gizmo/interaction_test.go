package gizmo_test

import (
	"sync/atomic"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gizmo-overlay/internal/gizmo"
	"gizmo-overlay/internal/headless"
)

type rig struct {
	o   *gizmo.Overlay
	b   *headless.Backend
	cam *headless.Camera
	p   *headless.Pointer
}

// newRig points the cursor at the viewport center of a camera at +Z looking at the origin.
func newRig(opts ...gizmo.Option) *rig {
	r := &rig{
		b:   headless.NewBackend(),
		cam: headless.NewCamera(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, 800, 600),
		p:   &headless.Pointer{},
	}
	r.p.MoveTo(r.cam.Center())
	opts = append([]gizmo.Option{gizmo.WithCameras(r.cam), gizmo.WithPointer(r.p)}, opts...)
	r.o = gizmo.New(r.b, opts...)
	return r
}

// tick latches the button level and runs one overlay tick.
func (r *rig) tick(down bool) {
	r.p.SetDown(down)
	r.p.Poll()
	r.o.Tick()
}

func TestHoverOnRay(t *testing.T) {
	r := newRig()
	var hovered atomic.Int32
	r.o.SubmitMarker(gizmo.Sphere(mgl32.Vec3{}, 1, gizmo.Red).OnHover(func() { hovered.Add(1) }))
	r.tick(false)
	assert.Equal(t, int32(1), hovered.Load())

	hits := r.o.LastHits()
	require.Len(t, hits, 1)
	assert.InDelta(t, 0, hits[0].Distance, 1e-4)
	assert.InDelta(t, 10, hits[0].Depth, 1e-4)
}

func TestMissBeyondScale(t *testing.T) {
	r := newRig()
	var hovered atomic.Int32
	r.o.SubmitMarker(gizmo.Sphere(mgl32.Vec3{1.5, 0, 0}, 1, gizmo.Red).OnHover(func() { hovered.Add(1) }))
	r.o.SubmitMarker(gizmo.Sphere(mgl32.Vec3{0, -3, 0}, 2.5, gizmo.Red).OnHover(func() { hovered.Add(1) }))
	r.tick(true)
	assert.Zero(t, hovered.Load())
	assert.Empty(t, r.o.LastHits())
}

func TestClickFiresOnPressEdgeOnly(t *testing.T) {
	r := newRig()
	var hovers, clicks int
	for i := 0; i < 5; i++ {
		r.o.SubmitMarker(gizmo.Sphere(mgl32.Vec3{}, 1, gizmo.Red).
			OnHover(func() { hovers++ }).
			OnClick(func() { clicks++ }))
		r.tick(true)
	}
	assert.Equal(t, 5, hovers)
	assert.Equal(t, 1, clicks, "holding the button is one click")

	// release and press again
	r.o.SubmitMarker(gizmo.Sphere(mgl32.Vec3{}, 1, gizmo.Red).OnClick(func() { clicks++ }))
	r.tick(false)
	r.o.SubmitMarker(gizmo.Sphere(mgl32.Vec3{}, 1, gizmo.Red).OnClick(func() { clicks++ }))
	r.tick(true)
	assert.Equal(t, 2, clicks)
}

func TestClickOnlyOnTheTickItIsSubmitted(t *testing.T) {
	r := newRig()
	clicked := 0
	r.o.SubmitMarker(gizmo.Sphere(mgl32.Vec3{}, 1, gizmo.Red).OnClick(func() { clicked++ }))
	r.tick(true)
	assert.Equal(t, 1, clicked)

	// not resubmitted: the marker is gone on the next tick
	r.tick(false)
	r.tick(true)
	assert.Equal(t, 1, clicked)
	assert.Zero(t, r.o.Stats().Objects)
}

func TestMissedClickDoesNothing(t *testing.T) {
	r := newRig()
	clicked := false
	r.p.MoveTo(mgl32.Vec2{10, 10})
	r.o.SubmitMarker(gizmo.Sphere(mgl32.Vec3{}, 1, gizmo.Red).OnClick(func() { clicked = true }))
	r.tick(true)
	assert.False(t, clicked)
}

func TestOffAxisCamera(t *testing.T) {
	r := newRig()
	r.cam = headless.NewCamera(mgl32.Vec3{10, 0, 0}, mgl32.Vec3{}, 640, 480)
	r.o = gizmo.New(r.b, gizmo.WithCameras(r.cam), gizmo.WithPointer(r.p))
	r.p.MoveTo(r.cam.Center())

	hovered := false
	r.o.SubmitMarker(gizmo.Cube(mgl32.Vec3{}, 0.5, gizmo.Red).OnHover(func() { hovered = true }))
	r.tick(false)
	assert.True(t, hovered)
}

func TestInteractionSkipped(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *rig)
	}{
		{"cursor outside", func(r *rig) { r.p.Leave() }},
		{"untagged camera", func(r *rig) { r.cam.Interaction = false }},
		{"two interaction cameras", func(r *rig) {
			other := headless.NewCamera(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, 800, 600)
			r.o = gizmo.New(r.b, gizmo.WithCameras(headless.CameraSet{r.cam, other}), gizmo.WithPointer(r.p))
		}},
		{"no viewport", func(r *rig) { r.cam.Width = 0 }},
		{"no cameras", func(r *rig) { r.o = gizmo.New(r.b, gizmo.WithPointer(r.p)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig()
			tt.setup(r)
			fired := false
			r.o.SubmitMarker(gizmo.Sphere(mgl32.Vec3{}, 1, gizmo.Red).
				OnHover(func() { fired = true }).
				OnClick(func() { fired = true }))
			assert.NotPanics(t, func() { r.tick(true) })
			assert.False(t, fired)
			assert.Equal(t, 1, r.o.Stats().Objects, "spawn still runs")
		})
	}
}

func TestCameraSetWithOneInteractionCamera(t *testing.T) {
	r := newRig()
	plain := headless.NewCamera(mgl32.Vec3{50, 0, 0}, mgl32.Vec3{}, 800, 600)
	plain.Interaction = false
	r.o = gizmo.New(r.b, gizmo.WithCameras(headless.CameraSet{plain, r.cam}), gizmo.WithPointer(r.p))

	hovered := false
	r.o.SubmitMarker(gizmo.Sphere(mgl32.Vec3{}, 1, gizmo.Red).OnHover(func() { hovered = true }))
	r.tick(false)
	assert.True(t, hovered)
}

func TestExclusiveCallbackGetsWorld(t *testing.T) {
	type counter struct{ clicks int }
	state := &counter{}
	r := newRig(gizmo.WithState(state))

	var target, spawned gizmo.Handle
	r.o.SubmitMarker(gizmo.Sphere(mgl32.Vec3{}, 1, gizmo.Red).OnClickSystem(func(w *gizmo.World) {
		target = w.Target()
		w.State().(*counter).clicks++
		h, err := w.SpawnPersistent(gizmo.Cube(mgl32.Vec3{0, 5, 0}, 1, gizmo.Green))
		if err == nil {
			spawned = h
		}
		w.Queue().SubmitMarker(gizmo.Torus(mgl32.Vec3{0, -5, 0}, 1, gizmo.Blue))
	}))
	r.tick(true)

	assert.Equal(t, 1, state.clicks)
	require.False(t, target.IsZero())
	obj, ok := r.o.Lookup(spawned)
	require.True(t, ok)
	assert.False(t, obj.Ephemeral)
	assert.Equal(t, 1, r.o.Stats().PendingMarkers)

	r.tick(false)
	st := r.o.Stats()
	assert.Equal(t, 1, st.Persistent)
	assert.Equal(t, 1, st.Ephemeral, "marker queued from the callback is drawn")
}

func TestExclusiveCallbackTogglesPersistent(t *testing.T) {
	r := newRig()
	var shown gizmo.Handle
	toggle := func(w *gizmo.World) {
		if w.Remove(shown) {
			shown = gizmo.Handle{}
			return
		}
		shown, _ = w.SpawnPersistent(gizmo.Cube(mgl32.Vec3{0, 3, 0}, 1, gizmo.Yellow))
	}
	for i, want := range []int{1, 0, 1} {
		r.o.SubmitMarker(gizmo.Sphere(mgl32.Vec3{}, 1, gizmo.Red).OnClickSystem(toggle))
		r.tick(false)
		r.o.SubmitMarker(gizmo.Sphere(mgl32.Vec3{}, 1, gizmo.Red).OnClickSystem(toggle))
		r.tick(true)
		assert.Equal(t, want, r.o.Stats().Persistent, "press %d", i)
	}
}

func TestIsolatedBeforeExclusive(t *testing.T) {
	r := newRig()
	var order []string
	r.o.SubmitMarker(gizmo.Sphere(mgl32.Vec3{}, 1, gizmo.Red).
		OnHoverSystem(func(w *gizmo.World) {
			order = append(order, "hover_system")
			assert.Equal(t, 1, w.Stats().Objects)
		}).
		OnHover(func() { order = append(order, "hover") }))
	r.tick(false)
	assert.Equal(t, []string{"hover", "hover_system"}, order)
}

func TestAllHitsNearestFirst(t *testing.T) {
	r := newRig()
	var order []string
	far, err := r.o.SpawnPersistent(gizmo.Sphere(mgl32.Vec3{0, 0, -5}, 1, gizmo.Red).
		OnHover(func() { order = append(order, "far") }))
	require.NoError(t, err)
	near, err := r.o.SpawnPersistent(gizmo.Sphere(mgl32.Vec3{0, 0, 5}, 1, gizmo.Red).
		OnHover(func() { order = append(order, "near") }))
	require.NoError(t, err)

	r.tick(false)
	assert.Equal(t, []string{"near", "far"}, order)
	hits := r.o.LastHits()
	require.Len(t, hits, 2)
	assert.Equal(t, near, hits[0].Handle)
	assert.Equal(t, far, hits[1].Handle)
}

func TestNearestOnly(t *testing.T) {
	r := newRig(gizmo.WithNearestOnly(true))
	var order []string
	_, err := r.o.SpawnPersistent(gizmo.Sphere(mgl32.Vec3{0, 0, -5}, 1, gizmo.Red).
		OnHover(func() { order = append(order, "far") }))
	require.NoError(t, err)
	_, err = r.o.SpawnPersistent(gizmo.Sphere(mgl32.Vec3{0, 0, 5}, 1, gizmo.Red).
		OnHover(func() { order = append(order, "near") }))
	require.NoError(t, err)

	r.tick(false)
	assert.Equal(t, []string{"near"}, order)
}

func TestHitsBehindCameraComeLast(t *testing.T) {
	tests := []struct {
		name    string
		nearest bool
		want    []string
	}{
		{"all hits", false, []string{"visible", "behind"}},
		{"nearest only", true, []string{"visible"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(gizmo.WithNearestOnly(tt.nearest))
			var order []string
			behind, err := r.o.SpawnPersistent(gizmo.Sphere(mgl32.Vec3{0, 0, 20}, 1, gizmo.Red).
				OnHover(func() { order = append(order, "behind") }))
			require.NoError(t, err)
			visible, err := r.o.SpawnPersistent(gizmo.Sphere(mgl32.Vec3{}, 1, gizmo.Red).
				OnHover(func() { order = append(order, "visible") }))
			require.NoError(t, err)

			r.tick(false)
			assert.Equal(t, tt.want, order)
			hits := r.o.LastHits()
			require.Len(t, hits, len(tt.want))
			assert.Equal(t, visible, hits[0].Handle)
			if len(hits) > 1 {
				assert.Equal(t, behind, hits[1].Handle)
				assert.Less(t, hits[1].Depth, float32(0))
			}
		})
	}
}

func TestRegistrationAging(t *testing.T) {
	r := newRig()
	r.o.SubmitMarker(gizmo.Sphere(mgl32.Vec3{}, 1, gizmo.Red).
		OnHover(func() {}).
		OnClickSystem(func(*gizmo.World) {}))
	r.tick(false)
	st := r.o.Stats()
	assert.Equal(t, 1, st.Registrations)
	assert.Zero(t, st.Orphaned)
	assert.Equal(t, 2, st.Handlers)

	// orphaned for DefaultMaxRegistrationAge ticks, purged on the next
	for i := 0; i < gizmo.DefaultMaxRegistrationAge; i++ {
		r.tick(false)
		st = r.o.Stats()
		assert.Equal(t, 1, st.Registrations, "tick %d", i)
		assert.Equal(t, 1, st.Orphaned)
	}
	r.tick(false)
	st = r.o.Stats()
	assert.Zero(t, st.Registrations)
	assert.Zero(t, st.Handlers)
}

func TestRegistrationAgingWithoutPointer(t *testing.T) {
	o := gizmo.New(headless.NewBackend(), gizmo.WithMaxRegistrationAge(0))
	o.SubmitMarker(gizmo.DefaultMarker().OnClick(func() {}))
	o.Tick()
	assert.Equal(t, 1, o.Stats().Registrations)
	o.Tick()
	assert.Zero(t, o.Stats().Registrations)
	assert.Zero(t, o.Stats().Handlers)
}

func TestPersistentRegistrationNeverAges(t *testing.T) {
	r := newRig()
	h, err := r.o.SpawnPersistent(gizmo.DefaultMarker().OnHover(func() {}))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		r.tick(false)
	}
	_, ok := r.o.BindingIDs(h)
	assert.True(t, ok)
	assert.Zero(t, r.o.Stats().Orphaned)

	require.True(t, r.o.Remove(h))
	for i := 0; i <= gizmo.DefaultMaxRegistrationAge; i++ {
		r.tick(false)
	}
	_, ok = r.o.BindingIDs(h)
	assert.False(t, ok)
}

func TestCallbackPanicRecovered(t *testing.T) {
	r := newRig()
	survivor := false
	_, err := r.o.SpawnPersistent(gizmo.Sphere(mgl32.Vec3{0, 0, 5}, 1, gizmo.Red).
		OnHover(func() { panic("boom") }))
	require.NoError(t, err)
	_, err = r.o.SpawnPersistent(gizmo.Sphere(mgl32.Vec3{}, 1, gizmo.Red).
		OnHoverSystem(func(*gizmo.World) { panic("bang") }).
		OnHover(func() { survivor = true }))
	require.NoError(t, err)

	assert.NotPanics(t, func() { r.tick(false) })
	assert.True(t, survivor)
	assert.Equal(t, uint64(2), r.o.Stats().Panics)

	// the overlay stays usable
	r.tick(false)
	assert.Equal(t, uint64(4), r.o.Stats().Panics)
	assert.Equal(t, 2, r.o.Stats().Persistent)
}

func TestReplaceHandler(t *testing.T) {
	r := newRig()
	h, err := r.o.SpawnPersistent(gizmo.DefaultMarker().
		OnClick(func() { t.Error("replaced handler ran") }).
		OnHoverSystem(func(*gizmo.World) { t.Error("replaced handler ran") }))
	require.NoError(t, err)

	ids, ok := r.o.BindingIDs(h)
	require.True(t, ok)
	assert.Zero(t, ids.Hover)
	assert.Zero(t, ids.ClickSystem)

	clicked, hovered := false, false
	require.True(t, r.o.Handlers().Replace(ids.Click, func() { clicked = true }))
	require.True(t, r.o.Handlers().ReplaceExclusive(ids.HoverSystem, func(*gizmo.World) { hovered = true }))
	assert.False(t, r.o.Handlers().Replace(ids.HoverSystem, func() {}), "kind must match")
	assert.False(t, r.o.Handlers().Replace(999, func() {}))

	r.tick(true)
	assert.True(t, clicked)
	assert.True(t, hovered)
}

func TestExclusiveCallbackRemovesTarget(t *testing.T) {
	r := newRig()
	ran := 0
	for _, z := range []float32{0, 3} {
		_, err := r.o.SpawnPersistent(gizmo.Sphere(mgl32.Vec3{0, 0, z}, 1, gizmo.Red).
			OnHoverSystem(func(w *gizmo.World) {
				ran++
				w.Remove(w.Target())
			}))
		require.NoError(t, err)
	}
	r.tick(false)
	assert.Equal(t, 2, ran)
	assert.Zero(t, r.o.Stats().Persistent)
}

func TestSphereAtOriginClickScenario(t *testing.T) {
	r := newRig()
	clicked := 0
	submit := func() {
		r.o.SubmitMarker(gizmo.Sphere(mgl32.Vec3{}, 1, gizmo.Red).OnClick(func() { clicked++ }))
	}

	submit()
	r.tick(true)
	assert.Equal(t, 1, clicked)

	// same ray, button still down: no new press edge
	submit()
	r.tick(true)
	assert.Equal(t, 1, clicked)
}
