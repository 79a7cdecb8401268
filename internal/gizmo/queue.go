package gizmo

import (
	"image/color"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Batch is everything submitted between two drains.
type Batch struct {
	Markers []Marker
	Lines   []Line
}

// Len returns the total number of items in the batch.
func (b Batch) Len() int {
	return len(b.Markers) + len(b.Lines)
}

// Queue buffers markers and lines until the spawn phase drains them.
// Submit methods are safe for any number of concurrent callers and only ever wait on
// the queue's own mutex.
type Queue struct {
	mu      sync.Mutex
	markers []Marker
	lines   []Line
	closed  bool
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// SubmitMarker queues one marker for the next spawn.
func (q *Queue) SubmitMarker(m Marker) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.markers = append(q.markers, m)
}

// SubmitMarkers queues several markers. With connectWithLine a line through their
// positions, in the first marker's color, is queued together with them.
func (q *Queue) SubmitMarkers(ms []Marker, connectWithLine bool) {
	if len(ms) == 0 {
		return
	}
	var line Line
	if connectWithLine {
		pts := make([]mgl32.Vec3, len(ms))
		for i, m := range ms {
			pts[i] = m.Position()
		}
		line = Line{Points: pts, Color: ms[0].Color}
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.markers = append(q.markers, ms...)
	if len(line.Points) >= 2 {
		q.lines = append(q.lines, line)
	}
}

// SubmitLine queues a polyline. Fewer than two points is a no-op.
func (q *Queue) SubmitLine(points []mgl32.Vec3, c color.RGBA) {
	if len(points) < 2 {
		return
	}
	q.pushLine(NewLine(points, c))
}

// SubmitClosedLine queues a polyline that returns to its first point.
// An empty list, or one with a single point, is a no-op.
func (q *Queue) SubmitClosedLine(points []mgl32.Vec3, c color.RGBA) {
	if len(points) < 2 {
		return
	}
	q.pushLine(ClosedLine(points, c))
}

func (q *Queue) pushLine(l Line) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.lines = append(q.lines, l)
}

// Drain takes everything pending and leaves the queue empty. Submissions racing with
// Drain land wholly in the returned batch or wholly in the next one.
func (q *Queue) Drain() Batch {
	q.mu.Lock()
	b := Batch{Markers: q.markers, Lines: q.lines}
	q.markers, q.lines = nil, nil
	q.mu.Unlock()
	return b
}

// Pending returns the number of buffered markers and lines.
func (q *Queue) Pending() (markers, lines int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.markers), len(q.lines)
}

// Close drops anything pending and makes later submissions no-ops.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.markers, q.lines = nil, nil
}
