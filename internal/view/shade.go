package view

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	ambientLight       = 0.65
	spotlightConePower = 10.0
	spotlightAmount    = 1.0 - ambientLight

	darkest  = 240
	minShade = 7
)

// Shade darkens base by how much a camera space polygon faces the viewer and
// how close it is to the centre of view. A head-on polygon in the middle of
// the screen keeps base; everything keeps at least the ambient light.
func Shade(base color.RGBA, normal, centroid mgl64.Vec3) color.RGBA {
	diffuse := 0.0
	if n := normal.Len(); n > 0 {
		diffuse = math.Abs(normal[2]) / n
	}

	spotlight := 1.0
	if l := centroid.Len(); l > 0 {
		spotlight = math.Pow(math.Max(centroid[2]/l, 0), spotlightConePower)
	}

	brightness := ambientLight + diffuse*spotlight*spotlightAmount
	c := darkest - int(brightness*darkest)

	return color.RGBA{
		R: uint8(clamp(int(base.R)-c, minShade, 255)),
		G: uint8(clamp(int(base.G)-c, minShade, 255)),
		B: uint8(clamp(int(base.B)-c, minShade, 255)),
		A: base.A,
	}
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
