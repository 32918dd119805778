package bsptree

import "github.com/go-gl/mathgl/mgl64"

// Cut splits shape by plane using PlaneEpsilon.
//
//   - Front or Coplanar: (copy of shape, nil)
//   - Back: (nil, copy of shape)
//   - Spanning: the part in front and the part behind. A part with fewer
//     than three vertices is dropped, so one side may still be nil.
func Cut(shape Shape, plane Plane) (front, back *Polygon) {
	return CutEpsilon(shape, plane, PlaneEpsilon)
}

// CutEpsilon is Cut with an explicit tolerance. The same tolerance decides the
// classification and the per-vertex sides of the split.
func CutEpsilon(shape Shape, plane Plane, epsilon float64) (front, back *Polygon) {
	return cutPolygon(shape.Polygon(), plane, epsilon)
}

func cutPolygon(p *Polygon, plane Plane, epsilon float64) (front, back *Polygon) {
	switch p.ClassifyEpsilon(plane, epsilon) {
	case ClassFront, ClassCoplanar:
		return p.Clone(), nil
	case ClassBack:
		return nil, p.Clone()
	default:
		return splitPolygon(p, plane, epsilon)
	}
}

// splitPolygon walks the edges once, Sutherland-Hodgman style. On-plane
// vertices go to both sides; only strict front/back edges get an
// intersection point.
func splitPolygon(p *Polygon, plane Plane, epsilon float64) (front, back *Polygon) {
	ring := newVertexRing(p.vertices, plane, epsilon)
	frontVerts := make([]mgl64.Vec3, 0, ring.Len()+1)
	backVerts := make([]mgl64.Vec3, 0, ring.Len()+1)

	for i := 0; i < ring.Len(); i++ {
		current, currentSide := ring.Next()
		next, nextSide := ring.Peek()

		switch currentSide {
		case Front:
			frontVerts = append(frontVerts, current)
		case Back:
			backVerts = append(backVerts, current)
		default:
			frontVerts = append(frontVerts, current)
			backVerts = append(backVerts, current)
		}

		crosses := (currentSide == Front && nextSide == Back) ||
			(currentSide == Back && nextSide == Front)
		if !crosses {
			continue
		}
		if _, point, ok := plane.IntersectSegment(current, next); ok {
			frontVerts = append(frontVerts, point)
			backVerts = append(backVerts, point)
		}
	}

	if len(frontVerts) >= 3 {
		front = newPolygon(frontVerts)
	}
	if len(backVerts) >= 3 {
		back = newPolygon(backVerts)
	}
	return front, back
}
