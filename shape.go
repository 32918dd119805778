package bsptree

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Shape is a convex planar shape that can be placed in a tree. Every shape
// lowers to a Polygon before it is stored or cut.
type Shape interface {
	// Vertices returns the ordered vertex cycle. The winding defines the
	// normal through the right-hand rule.
	Vertices() []mgl64.Vec3

	// Normal returns the unnormalized normal.
	Normal() mgl64.Vec3

	// UnitNormal returns false when the shape is degenerate.
	UnitNormal() (mgl64.Vec3, bool)

	Plane() (Plane, error)
	Centroid() mgl64.Vec3
	Classify(plane Plane) Classification
	Cut(plane Plane) (front, back *Polygon)
	Polygon() *Polygon
}

// classifyVertices counts per-vertex votes. An all-OnPlane shape is coplanar
// even though it has no Front and no Back votes, so that check comes first.
func classifyVertices(vertices []mgl64.Vec3, plane Plane, epsilon float64) Classification {
	var front, back, onPlane int
	for _, v := range vertices {
		switch plane.ClassifyPointEpsilon(v, epsilon) {
		case Front:
			front++
		case Back:
			back++
		default:
			onPlane++
		}
	}

	switch {
	case onPlane == len(vertices):
		return ClassCoplanar
	case back == 0:
		return ClassFront
	case front == 0:
		return ClassBack
	default:
		return ClassSpanning
	}
}

func unitNormal(n mgl64.Vec3) (mgl64.Vec3, bool) {
	length := n.Len()
	if length <= lengthEpsilon {
		return mgl64.Vec3{}, false
	}
	return n.Mul(1 / length), true
}

func centroid(vertices []mgl64.Vec3) mgl64.Vec3 {
	if len(vertices) == 0 {
		return mgl64.Vec3{}
	}

	var sum mgl64.Vec3
	for _, v := range vertices {
		sum = sum.Add(v)
	}
	return sum.Mul(1 / float64(len(vertices)))
}

// FacesSameDirection reports whether the shape's own normal points into the
// front half-space of plane. Degenerate shapes never face the same way.
func FacesSameDirection(s Shape, plane Plane) bool {
	n, ok := s.UnitNormal()
	if !ok {
		return false
	}
	return n.Dot(plane.Normal()) > 0
}
