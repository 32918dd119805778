package bsptree

import "github.com/go-gl/mathgl/mgl64"

// vertexRing walks a closed vertex cycle, pairing each vertex with its side
// of a plane. After the last vertex it wraps back to the first.
type vertexRing struct {
	points []mgl64.Vec3
	sides  []PlaneSide
	cursor int
}

// newVertexRing classifies every vertex up front so the walk and the caller
// see exactly the same sides.
func newVertexRing(points []mgl64.Vec3, plane Plane, epsilon float64) *vertexRing {
	sides := make([]PlaneSide, len(points))
	for i, p := range points {
		sides[i] = plane.ClassifyPointEpsilon(p, epsilon)
	}
	return &vertexRing{points: points, sides: sides}
}

func (r *vertexRing) Len() int {
	return len(r.points)
}

// Next returns the vertex under the cursor and moves to the following one.
func (r *vertexRing) Next() (mgl64.Vec3, PlaneSide) {
	i := r.cursor
	r.cursor++
	if r.cursor >= len(r.points) {
		r.cursor = 0
	}
	return r.points[i], r.sides[i]
}

// Peek returns the vertex under the cursor without moving.
func (r *vertexRing) Peek() (mgl64.Vec3, PlaneSide) {
	return r.points[r.cursor], r.sides[r.cursor]
}
