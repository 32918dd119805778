package bsptree

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/go-gl/mathgl/mgl64"
)

// PlaneEpsilon is the default tolerance for point classification. Points
// closer to a plane than this are considered to lie on it.
const PlaneEpsilon = 1e-5

// lengthEpsilon is the float64 machine epsilon. Normals and segment
// directions shorter than this are treated as zero.
const lengthEpsilon = 2.220446049250313e-16

// PlaneSide is the side of a plane a single point lies on.
type PlaneSide int

const (
	Front PlaneSide = iota
	Back
	OnPlane
)

func (s PlaneSide) String() string {
	switch s {
	case Front:
		return "front"
	case Back:
		return "back"
	case OnPlane:
		return "on-plane"
	default:
		return "unknown"
	}
}

// Classification is the position of a whole shape relative to a plane.
type Classification int

const (
	ClassFront Classification = iota
	ClassBack
	ClassCoplanar
	ClassSpanning
)

func (c Classification) String() string {
	switch c {
	case ClassFront:
		return "front"
	case ClassBack:
		return "back"
	case ClassCoplanar:
		return "coplanar"
	case ClassSpanning:
		return "spanning"
	default:
		return "unknown"
	}
}

// Plane is an oriented plane: a point p is on it when Normal·p == Offset.
// The normal always has unit length.
type Plane struct {
	normal mgl64.Vec3
	offset float64
}

// NewPlane returns the plane normal·p = offset. Both the normal and the
// offset are scaled so that the normal has unit length.
func NewPlane(normal mgl64.Vec3, offset float64) (Plane, error) {
	length := normal.Len()
	if length <= lengthEpsilon {
		return Plane{}, errors.New("plane normal cannot be zero").
			WithType(ErrTypeDegenerate).
			WithTag("normal", normal)
	}
	return Plane{
		normal: normal.Mul(1 / length),
		offset: offset / length,
	}, nil
}

// NewPlaneFromPoint returns the plane through point with the given normal.
func NewPlaneFromPoint(point, normal mgl64.Vec3) (Plane, error) {
	length := normal.Len()
	if length <= lengthEpsilon {
		return Plane{}, errors.New("plane normal cannot be zero").
			WithType(ErrTypeDegenerate).
			WithTag("point", point).
			WithTag("normal", normal)
	}
	unit := normal.Mul(1 / length)
	return Plane{
		normal: unit,
		offset: unit.Dot(point),
	}, nil
}

// NewPlaneFromPoints returns the plane through a, b and c. The normal follows
// the right-hand rule: (b-a) x (c-a). Collinear points have no plane.
func NewPlaneFromPoints(a, b, c mgl64.Vec3) (Plane, error) {
	return NewPlaneFromPoint(a, b.Sub(a).Cross(c.Sub(a)))
}

func (p Plane) Normal() mgl64.Vec3 {
	return p.normal
}

func (p Plane) Offset() float64 {
	return p.offset
}

// SignedDistance is positive in front of the plane, negative behind it.
func (p Plane) SignedDistance(point mgl64.Vec3) float64 {
	return p.normal.Dot(point) - p.offset
}

func (p Plane) ClassifyPoint(point mgl64.Vec3) PlaneSide {
	return p.ClassifyPointEpsilon(point, PlaneEpsilon)
}

func (p Plane) ClassifyPointEpsilon(point mgl64.Vec3, epsilon float64) PlaneSide {
	dist := p.SignedDistance(point)
	switch {
	case dist > epsilon:
		return Front
	case dist < -epsilon:
		return Back
	default:
		return OnPlane
	}
}

// Flipped returns the same plane facing the other way.
func (p Plane) Flipped() Plane {
	return Plane{
		normal: p.normal.Mul(-1),
		offset: -p.offset,
	}
}

// ProjectPoint returns the point on the plane closest to point.
func (p Plane) ProjectPoint(point mgl64.Vec3) mgl64.Vec3 {
	return point.Sub(p.normal.Mul(p.SignedDistance(point)))
}

// IntersectSegment returns where the segment start-end crosses the plane, with
// t the interpolation parameter (0 at start, 1 at end). ok is false when the
// segment is parallel to the plane or does not reach it.
func (p Plane) IntersectSegment(start, end mgl64.Vec3) (t float64, point mgl64.Vec3, ok bool) {
	direction := end.Sub(start)
	denom := p.normal.Dot(direction)
	if math.Abs(denom) < lengthEpsilon {
		return 0, mgl64.Vec3{}, false
	}

	t = (p.offset - p.normal.Dot(start)) / denom
	if t < 0 || t > 1 {
		return 0, mgl64.Vec3{}, false
	}
	return t, start.Add(direction.Mul(t)), true
}

// ApproxEqual reports whether both planes have the same orientation and
// offset within epsilon.
func (p Plane) ApproxEqual(other Plane, epsilon float64) bool {
	return p.normal.ApproxEqualThreshold(other.normal, epsilon) &&
		math.Abs(p.offset-other.offset) <= epsilon
}
