package gizmo

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Line is an ordered polyline drawn one pixel wide.
type Line struct {
	Points []mgl32.Vec3
	Color  color.RGBA
}

// NewLine returns a line through points. The slice is copied.
func NewLine(points []mgl32.Vec3, c color.RGBA) Line {
	return Line{Points: append([]mgl32.Vec3(nil), points...), Color: c}
}

// ClosedLine returns a line through points that ends back at the first point.
// An empty input yields an empty line.
func ClosedLine(points []mgl32.Vec3, c color.RGBA) Line {
	if len(points) == 0 {
		return Line{Color: c}
	}
	l := NewLine(points, c)
	l.Points = append(l.Points, points[0])
	return l
}

// maxLinePoints is the most points a polyline can index with uint16.
const maxLinePoints = math.MaxUint16 + 1

// PolylineMesh is the procedural line-strip mesh generated for a Line.
type PolylineMesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint16
	Color     color.RGBA
}

// buildPolyline generates the strip mesh: one vertex per point, normals pointing up,
// zero uvs and sequential indices. ok is false if the line cannot be indexed.
func buildPolyline(l Line) (PolylineMesh, bool) {
	n := len(l.Points)
	if n < 2 || n > maxLinePoints {
		return PolylineMesh{}, false
	}
	m := PolylineMesh{
		Positions: append([]mgl32.Vec3(nil), l.Points...),
		Normals:   make([]mgl32.Vec3, n),
		UVs:       make([]mgl32.Vec2, n),
		Indices:   make([]uint16, n),
		Color:     l.Color,
	}
	for i := 0; i < n; i++ {
		m.Normals[i] = mgl32.Vec3{0, 1, 0}
		m.Indices[i] = uint16(i)
	}
	return m, true
}
