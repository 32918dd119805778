package bsptree

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/go-gl/mathgl/mgl64"
)

// Polygon is a convex polygon given by at least three coplanar vertices.
// Its plane, normal and centroid are derived from the vertices on every call.
type Polygon struct {
	vertices []mgl64.Vec3
}

// NewPolygon copies vertices into a new polygon. It fails when there are fewer
// than three vertices, when the first three are collinear or when any other
// vertex is off their plane.
func NewPolygon(vertices []mgl64.Vec3) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, errors.New("polygon must have at least 3 vertices").
			WithType(ErrTypeInvalidGeometry).
			WithTag("vertices", len(vertices))
	}

	plane, err := NewPlaneFromPoints(vertices[0], vertices[1], vertices[2])
	if err != nil {
		return nil, errors.New("polygon has collinear leading vertices").
			WithType(ErrTypeInvalidGeometry).
			Wrap(err)
	}

	for i, v := range vertices[3:] {
		if plane.ClassifyPoint(v) != OnPlane {
			return nil, errors.New("polygon vertices must be coplanar").
				WithType(ErrTypeInvalidGeometry).
				WithTag("vertex", i+3).
				WithTag("distance", plane.SignedDistance(v))
		}
	}

	return newPolygon(append([]mgl64.Vec3(nil), vertices...)), nil
}

// MustPolygon is like NewPolygon but panics on invalid input. It is meant for
// literal geometry in tests and generators.
func MustPolygon(vertices ...mgl64.Vec3) *Polygon {
	p, err := NewPolygon(vertices)
	if err != nil {
		panic(err)
	}
	return p
}

// newPolygon takes ownership of vertices without validating them. The
// splitter uses it for fragments, whose vertices are coplanar by construction.
func newPolygon(vertices []mgl64.Vec3) *Polygon {
	return &Polygon{vertices: vertices}
}

// Vertices returns the vertex cycle. The slice must not be modified.
func (p *Polygon) Vertices() []mgl64.Vec3 {
	return p.vertices
}

func (p *Polygon) Len() int {
	return len(p.vertices)
}

func (p *Polygon) Normal() mgl64.Vec3 {
	a, b, c := p.vertices[0], p.vertices[1], p.vertices[2]
	return b.Sub(a).Cross(c.Sub(a))
}

func (p *Polygon) UnitNormal() (mgl64.Vec3, bool) {
	return unitNormal(p.Normal())
}

// Plane returns the plane of the first three vertices.
func (p *Polygon) Plane() (Plane, error) {
	return NewPlaneFromPoints(p.vertices[0], p.vertices[1], p.vertices[2])
}

func (p *Polygon) Centroid() mgl64.Vec3 {
	return centroid(p.vertices)
}

// Area uses Newell's method, so it holds for any convex vertex count.
func (p *Polygon) Area() float64 {
	var n mgl64.Vec3
	for i, cur := range p.vertices {
		next := p.vertices[(i+1)%len(p.vertices)]
		n = n.Add(cur.Cross(next))
	}
	return n.Len() / 2
}

func (p *Polygon) Classify(plane Plane) Classification {
	return classifyVertices(p.vertices, plane, PlaneEpsilon)
}

func (p *Polygon) ClassifyEpsilon(plane Plane, epsilon float64) Classification {
	return classifyVertices(p.vertices, plane, epsilon)
}

func (p *Polygon) Cut(plane Plane) (front, back *Polygon) {
	return cutPolygon(p, plane, PlaneEpsilon)
}

func (p *Polygon) Polygon() *Polygon {
	return p
}

func (p *Polygon) Clone() *Polygon {
	return newPolygon(append([]mgl64.Vec3(nil), p.vertices...))
}

// Flipped returns the polygon with reversed winding, so its normal points the
// other way.
func (p *Polygon) Flipped() *Polygon {
	vertices := make([]mgl64.Vec3, len(p.vertices))
	for i, v := range p.vertices {
		vertices[len(p.vertices)-1-i] = v
	}
	return newPolygon(vertices)
}

// Equal compares vertices pairwise, in order, within epsilon.
func (p *Polygon) Equal(other *Polygon, epsilon float64) bool {
	if other == nil || len(p.vertices) != len(other.vertices) {
		return false
	}
	for i := range p.vertices {
		if !p.vertices[i].ApproxEqualThreshold(other.vertices[i], epsilon) {
			return false
		}
	}
	return true
}
