package bsptree

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/go-gl/mathgl/mgl64"
)

// Rectangle is a parallelogram stored as a corner and two edge vectors. Its
// vertices are origin, origin+u, origin+u+v and origin+v.
type Rectangle struct {
	origin mgl64.Vec3
	u      mgl64.Vec3
	v      mgl64.Vec3
}

func NewRectangle(origin, u, v mgl64.Vec3) *Rectangle {
	return &Rectangle{origin: origin, u: u, v: v}
}

// NewRectangleFromCorners builds a rectangle from corners wound a, b, c, d.
// Only a, b and d define it (u = b-a, v = d-a); c must lie on their plane.
func NewRectangleFromCorners(a, b, c, d mgl64.Vec3) (*Rectangle, error) {
	plane, err := NewPlaneFromPoints(a, b, d)
	if err != nil {
		return nil, errors.New("rectangle corners are collinear").
			WithType(ErrTypeInvalidGeometry).
			Wrap(err)
	}
	if plane.ClassifyPoint(c) != OnPlane {
		return nil, errors.New("rectangle corners must be coplanar").
			WithType(ErrTypeInvalidGeometry).
			WithTag("distance", plane.SignedDistance(c))
	}
	return NewRectangle(a, b.Sub(a), d.Sub(a)), nil
}

func (r *Rectangle) Origin() mgl64.Vec3 {
	return r.origin
}

func (r *Rectangle) U() mgl64.Vec3 {
	return r.u
}

func (r *Rectangle) V() mgl64.Vec3 {
	return r.v
}

func (r *Rectangle) Vertices() []mgl64.Vec3 {
	return []mgl64.Vec3{
		r.origin,
		r.origin.Add(r.u),
		r.origin.Add(r.u).Add(r.v),
		r.origin.Add(r.v),
	}
}

// Normal is u x v, which matches the cross product of the first two edges.
func (r *Rectangle) Normal() mgl64.Vec3 {
	return r.u.Cross(r.v)
}

func (r *Rectangle) UnitNormal() (mgl64.Vec3, bool) {
	return unitNormal(r.Normal())
}

func (r *Rectangle) Plane() (Plane, error) {
	return NewPlaneFromPoint(r.origin, r.Normal())
}

func (r *Rectangle) Centroid() mgl64.Vec3 {
	return r.origin.Add(r.u.Add(r.v).Mul(0.5))
}

func (r *Rectangle) Area() float64 {
	return r.Normal().Len()
}

func (r *Rectangle) Classify(plane Plane) Classification {
	return classifyVertices(r.Vertices(), plane, PlaneEpsilon)
}

// Cut lowers the rectangle to a polygon first; the fragments are not
// rectangles in general.
func (r *Rectangle) Cut(plane Plane) (front, back *Polygon) {
	return cutPolygon(r.Polygon(), plane, PlaneEpsilon)
}

func (r *Rectangle) Polygon() *Polygon {
	return newPolygon(r.Vertices())
}
