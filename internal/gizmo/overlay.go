// Package gizmo is an immediate-mode debug overlay. Callers submit markers and lines every
// tick; the overlay reconciles them against retained backend objects and dispatches
// hover/click callbacks from a pointer ray.
//
// A tick runs three phases in order: Cleanup despawns last tick's ephemeral objects,
// Spawn materializes everything submitted since, Interact hit-tests the pointer ray.
package gizmo

import (
	"errors"
	"image/color"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultMaxRegistrationAge is how many ticks an orphaned interaction registration
// survives before it is purged.
const DefaultMaxRegistrationAge = 2

var (
	// ErrClosed is returned by operations on an overlay after Close.
	ErrClosed = errors.New("gizmo: overlay closed")
	// ErrMalformedLine is returned for lines that cannot be meshed.
	ErrMalformedLine = errors.New("gizmo: line needs between 2 and 65536 points")
	// ErrNoBackend is returned when the overlay was built without a Backend.
	ErrNoBackend = errors.New("gizmo: no backend")
)

// Overlay owns the submission queue, resource caches, retained objects and interaction
// registrations. Create one with New at startup and Close it at shutdown.
type Overlay struct {
	// mu guards everything below except queue and handlers, which lock themselves.
	// Lifecycle phases and exclusive callbacks hold it exclusively.
	mu sync.RWMutex

	backend   Backend
	queue     *Queue
	materials *MaterialCache
	meshes    *resourceCache[shapeKey, MeshHandle]
	shapes    shapeRegistry
	objects   arena
	regs      map[Handle]*registration
	handlers  *Handlers
	cameras   CameraQuery
	pointer   Pointer
	state     any
	log       *slog.Logger

	maxAge      int
	nearestOnly bool
	closed      bool
	lastHits    []Hit

	ticks   atomic.Uint64
	dropped atomic.Uint64
	panics  atomic.Uint64
}

// Option configures an Overlay.
type Option func(*Overlay)

// WithLogger sets the overlay logger. Defaults to the package Logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Overlay) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMaxRegistrationAge sets how many ticks orphaned registrations are kept.
func WithMaxRegistrationAge(ticks int) Option {
	return func(o *Overlay) {
		if ticks >= 0 {
			o.maxAge = ticks
		}
	}
}

// WithNearestOnly dispatches callbacks for the nearest hit only instead of every hit.
func WithNearestOnly(on bool) Option {
	return func(o *Overlay) { o.nearestOnly = on }
}

// WithState sets the shared state handed to exclusive callbacks through World.State.
func WithState(state any) Option {
	return func(o *Overlay) { o.state = state }
}

// WithCameras sets the camera query used by the interaction phase.
func WithCameras(q CameraQuery) Option {
	return func(o *Overlay) { o.cameras = q }
}

// WithPointer sets the input source used by the interaction phase.
func WithPointer(p Pointer) Option {
	return func(o *Overlay) { o.pointer = p }
}

// New returns an overlay drawing through b. Without cameras and a pointer the
// interaction phase is skipped every tick.
func New(b Backend, opts ...Option) *Overlay {
	o := &Overlay{
		backend:   b,
		queue:     NewQueue(),
		materials: NewMaterialCache(b),
		meshes:    newResourceCache[shapeKey, MeshHandle](),
		regs:      make(map[Handle]*registration),
		handlers:  newHandlers(),
		log:       Logger(),
		maxAge:    DefaultMaxRegistrationAge,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.log.Info("gizmo: overlay ready", "max_registration_age", o.maxAge, "nearest_only", o.nearestOnly)
	return o
}

// Queue returns the submission queue.
func (o *Overlay) Queue() *Queue { return o.queue }

// Handlers returns the callback table.
func (o *Overlay) Handlers() *Handlers { return o.handlers }

// Materials returns the material cache.
func (o *Overlay) Materials() *MaterialCache { return o.materials }

// SubmitMarker draws m for one tick.
func (o *Overlay) SubmitMarker(m Marker) { o.queue.SubmitMarker(m) }

// SubmitMarkers draws ms for one tick, optionally joined by a line.
func (o *Overlay) SubmitMarkers(ms []Marker, connectWithLine bool) {
	o.queue.SubmitMarkers(ms, connectWithLine)
}

// SubmitLine draws a polyline for one tick.
func (o *Overlay) SubmitLine(points []mgl32.Vec3, c color.RGBA) { o.queue.SubmitLine(points, c) }

// SubmitClosedLine draws a closed polyline for one tick.
func (o *Overlay) SubmitClosedLine(points []mgl32.Vec3, c color.RGBA) {
	o.queue.SubmitClosedLine(points, c)
}

// RegisterShape makes NamedShape(name) available. The factory runs once, on first use.
func (o *Overlay) RegisterShape(name string, f ShapeFactory) {
	o.shapes.register(name, f)
}

// SpawnPersistent materializes m immediately. The object survives cleanup until Remove.
// It must not be called from an exclusive callback; use World.SpawnPersistent there.
func (o *Overlay) SpawnPersistent(m Marker) (Handle, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return Handle{}, ErrClosed
	}
	return o.spawnMarker(m, false)
}

// SpawnPersistentLine materializes l immediately and keeps it until Remove.
func (o *Overlay) SpawnPersistentLine(l Line) (Handle, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return Handle{}, ErrClosed
	}
	return o.spawnLine(l, false)
}

// Remove despawns the object behind h. Stale or unknown handles report false.
func (o *Overlay) Remove(h Handle) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.despawn(h)
}

// Lookup returns a copy of the live object behind h.
func (o *Overlay) Lookup(h Handle) (Object, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	obj, ok := o.objects.get(h)
	if !ok {
		return Object{}, false
	}
	return *obj, true
}

// Tick runs Cleanup, Spawn and Interact in order.
func (o *Overlay) Tick() {
	o.Cleanup()
	o.Spawn()
	o.Interact()
}

// Install registers the phases on s: cleanup and spawn before the update stage,
// interaction after it.
func (o *Overlay) Install(s Scheduler) {
	s.AddPhase(StagePreUpdate, "gizmo.cleanup", o.Cleanup)
	s.AddPhase(StagePreUpdate, "gizmo.spawn", o.Spawn)
	s.AddPhase(StagePostUpdate, "gizmo.interact", o.Interact)
}

// Close despawns everything, releases generated and primitive meshes and makes every
// later operation a no-op. Calling Close twice is safe.
func (o *Overlay) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	o.queue.Close()
	for _, h := range o.objects.handles(false) {
		o.despawn(h)
	}
	if o.backend != nil {
		o.meshes.each(func(_ shapeKey, m MeshHandle) {
			o.backend.ReleaseMesh(m)
		})
	}
	o.meshes.reset()
	for h, r := range o.regs {
		o.handlers.remove(r.ids()...)
		delete(o.regs, h)
	}
	o.lastHits = nil
	o.log.Info("gizmo: overlay closed", "ticks", o.ticks.Load(), "dropped", o.dropped.Load())
}

// Stats is a snapshot of overlay counters.
type Stats struct {
	Objects       int
	Ephemeral     int
	Persistent    int
	Materials     int
	Meshes        int
	Registrations int
	Orphaned      int
	Handlers      int

	PendingMarkers int
	PendingLines   int

	Ticks   uint64
	Dropped uint64
	Panics  uint64
}

// Stats returns current counters.
func (o *Overlay) Stats() Stats {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.stats()
}

func (o *Overlay) stats() Stats {
	s := Stats{
		Objects:       o.objects.len(),
		Materials:     o.materials.Stats().Entries,
		Meshes:        o.meshes.len(),
		Registrations: len(o.regs),
		Handlers:      o.handlers.Len(),
		Ticks:         o.ticks.Load(),
		Dropped:       o.dropped.Load(),
		Panics:        o.panics.Load(),
	}
	o.objects.each(func(obj *Object) {
		if obj.Ephemeral {
			s.Ephemeral++
		}
	})
	s.Persistent = s.Objects - s.Ephemeral
	for h := range o.regs {
		if _, ok := o.objects.get(h); !ok {
			s.Orphaned++
		}
	}
	s.PendingMarkers, s.PendingLines = o.queue.Pending()
	return s
}
