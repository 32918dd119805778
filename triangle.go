package bsptree

import "github.com/go-gl/mathgl/mgl64"

// Triangle is a shape with three vertices. The normal is (b-a) x (c-a).
type Triangle struct {
	vertices [3]mgl64.Vec3
}

func NewTriangle(a, b, c mgl64.Vec3) *Triangle {
	return &Triangle{vertices: [3]mgl64.Vec3{a, b, c}}
}

func (t *Triangle) Vertices() []mgl64.Vec3 {
	return t.vertices[:]
}

func (t *Triangle) Normal() mgl64.Vec3 {
	a, b, c := t.vertices[0], t.vertices[1], t.vertices[2]
	return b.Sub(a).Cross(c.Sub(a))
}

func (t *Triangle) UnitNormal() (mgl64.Vec3, bool) {
	return unitNormal(t.Normal())
}

// Plane fails for a triangle with collinear vertices.
func (t *Triangle) Plane() (Plane, error) {
	return NewPlaneFromPoints(t.vertices[0], t.vertices[1], t.vertices[2])
}

func (t *Triangle) Centroid() mgl64.Vec3 {
	a, b, c := t.vertices[0], t.vertices[1], t.vertices[2]
	return a.Add(b).Add(c).Mul(1.0 / 3)
}

func (t *Triangle) Area() float64 {
	return t.Normal().Len() / 2
}

func (t *Triangle) Classify(plane Plane) Classification {
	return classifyVertices(t.vertices[:], plane, PlaneEpsilon)
}

func (t *Triangle) Cut(plane Plane) (front, back *Polygon) {
	return cutPolygon(t.Polygon(), plane, PlaneEpsilon)
}

func (t *Triangle) Polygon() *Polygon {
	return newPolygon([]mgl64.Vec3{t.vertices[0], t.vertices[1], t.vertices[2]})
}
