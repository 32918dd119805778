package view

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/bsptree"
)

const (
	DefaultNear  = 0.5
	DefaultFocal = 700
)

// Projector maps world polygons to screen points.
type Projector struct {
	View    mgl64.Mat4
	Near    float64
	Focal   float64
	CenterX float64
	CenterY float64
}

// ToCamera transforms p into camera space. It fails only for polygons the
// tree accepted but whose leading vertices are nearly collinear.
func (pr Projector) ToCamera(p *bsptree.Polygon) (*bsptree.Polygon, error) {
	vertices := make([]mgl64.Vec3, 0, p.Len())
	for _, v := range p.Vertices() {
		vertices = append(vertices, pr.View.Mul4x1(v.Vec4(1)).Vec3())
	}
	return bsptree.NewPolygon(vertices)
}

// Clip keeps the part of a camera space polygon at or beyond the near plane.
// It returns nil when nothing is left.
func (pr Projector) Clip(p *bsptree.Polygon) *bsptree.Polygon {
	near, err := bsptree.NewPlaneFromPoint(mgl64.Vec3{0, 0, pr.Near}, mgl64.Vec3{0, 0, 1})
	if err != nil {
		return nil
	}
	front, _ := bsptree.Cut(p, near)
	return front
}

// Project divides a clipped camera space polygon by depth.
func (pr Projector) Project(p *bsptree.Polygon) (xs, ys []float32) {
	xs = make([]float32, 0, p.Len())
	ys = make([]float32, 0, p.Len())
	for _, v := range p.Vertices() {
		xs = append(xs, float32(pr.Focal*v[0]/v[2]+pr.CenterX))
		ys = append(ys, float32(pr.Focal*v[1]/v[2]+pr.CenterY))
	}
	return xs, ys
}
