// Package view holds the viewer math that does not depend on a window:
// an orbiting camera, camera space clipping, perspective projection and flat
// shading of tree polygons.
package view

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/bsptree"
)

const maxPitch = math.Pi/2 - 0.01

// OrbitCamera circles Target at Distance. Yaw turns around the world Y axis
// and Pitch tilts towards it. At zero yaw and pitch the camera sits on the
// positive Z axis of Target.
type OrbitCamera struct {
	Target      mgl64.Vec3
	Distance    float64
	Yaw         float64
	Pitch       float64
	MinDistance float64
	MaxDistance float64
}

func NewOrbitCamera(target mgl64.Vec3, distance float64) *OrbitCamera {
	return &OrbitCamera{
		Target:      target,
		Distance:    distance,
		MinDistance: 1,
		MaxDistance: distance * 20,
	}
}

// FrameCamera aims a camera at the centre of the polygons' bounding box, far
// enough back for all of them to be in view.
func FrameCamera(polygons []*bsptree.Polygon) *OrbitCamera {
	if len(polygons) == 0 {
		return NewOrbitCamera(mgl64.Vec3{}, 10)
	}

	lo := polygons[0].Vertices()[0]
	hi := lo
	for _, p := range polygons {
		for _, v := range p.Vertices() {
			for i := range v {
				lo[i] = math.Min(lo[i], v[i])
				hi[i] = math.Max(hi[i], v[i])
			}
		}
	}

	center := lo.Add(hi).Mul(0.5)
	radius := hi.Sub(center).Len()
	return NewOrbitCamera(center, math.Max(radius*2.5, 1))
}

// Eye returns the camera position in world space.
func (c *OrbitCamera) Eye() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	offset := mgl64.Vec3{
		cp * math.Sin(c.Yaw),
		math.Sin(c.Pitch),
		cp * math.Cos(c.Yaw),
	}
	return c.Target.Add(offset.Mul(c.Distance))
}

// View returns the world to camera matrix. Camera space looks down +Z with
// +Y pointing down the screen.
func (c *OrbitCamera) View() mgl64.Mat4 {
	lookAt := mgl64.LookAtV(c.Eye(), c.Target, mgl64.Vec3{0, 1, 0})
	return mgl64.Scale3D(1, -1, -1).Mul4(lookAt)
}

// Orbit turns the camera. Pitch stops short of the poles.
func (c *OrbitCamera) Orbit(yaw, pitch float64) {
	c.Yaw = math.Mod(c.Yaw+yaw, 2*math.Pi)
	c.Pitch = mgl64.Clamp(c.Pitch+pitch, -maxPitch, maxPitch)
}

// Zoom scales the distance by factor, within the distance limits.
func (c *OrbitCamera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	d := c.Distance * factor
	if c.MinDistance > 0 {
		d = math.Max(d, c.MinDistance)
	}
	if c.MaxDistance > 0 {
		d = math.Min(d, c.MaxDistance)
	}
	c.Distance = d
}
