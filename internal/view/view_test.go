package view

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/bsptree"
	"github.com/stretchr/testify/require"
)

const float64EqualityThreshold = 1e-9

func requireVecAlmostEqual(t *testing.T, expected, actual mgl64.Vec3) {
	t.Helper()
	require.True(t, expected.ApproxEqualThreshold(actual, float64EqualityThreshold),
		"expected %v, got %v", expected, actual)
}

// requireSameCycle accepts any rotation of the expected vertex cycle.
func requireSameCycle(t *testing.T, expected []mgl64.Vec3, p *bsptree.Polygon) {
	t.Helper()
	actual := p.Vertices()
	require.Len(t, actual, len(expected))

	for shift := range actual {
		match := true
		for i := range expected {
			if !expected[i].ApproxEqualThreshold(actual[(i+shift)%len(actual)], float64EqualityThreshold) {
				match = false
				break
			}
		}
		if match {
			return
		}
	}
	require.Failf(t, "cycles differ", "expected %v, got %v", expected, actual)
}

func TestOrbitCameraEye(t *testing.T) {
	testCases := []struct {
		name     string
		yaw      float64
		pitch    float64
		expected mgl64.Vec3
	}{
		{name: "default", expected: mgl64.Vec3{1, 2, 13}},
		{name: "quarter turn", yaw: math.Pi / 2, expected: mgl64.Vec3{11, 2, 3}},
		{name: "half turn", yaw: math.Pi, expected: mgl64.Vec3{1, 2, -7}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewOrbitCamera(mgl64.Vec3{1, 2, 3}, 10)
			c.Orbit(tc.yaw, tc.pitch)
			requireVecAlmostEqual(t, tc.expected, c.Eye())
		})
	}
}

func TestOrbitCameraView(t *testing.T) {
	c := NewOrbitCamera(mgl64.Vec3{}, 10)
	view := c.View()

	testCases := []struct {
		name     string
		world    mgl64.Vec3
		expected mgl64.Vec3
	}{
		{name: "target is straight ahead", world: mgl64.Vec3{}, expected: mgl64.Vec3{0, 0, 10}},
		{name: "right stays right", world: mgl64.Vec3{1, 0, 0}, expected: mgl64.Vec3{1, 0, 10}},
		{name: "up points down the screen", world: mgl64.Vec3{0, 1, 0}, expected: mgl64.Vec3{0, -1, 10}},
		{name: "eye is the origin", world: mgl64.Vec3{0, 0, 10}, expected: mgl64.Vec3{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			requireVecAlmostEqual(t, tc.expected, view.Mul4x1(tc.world.Vec4(1)).Vec3())
		})
	}
}

func TestOrbitCameraLimits(t *testing.T) {
	c := NewOrbitCamera(mgl64.Vec3{}, 10)

	c.Orbit(0, 10)
	require.Equal(t, maxPitch, c.Pitch)
	c.Orbit(0, -20)
	require.Equal(t, -maxPitch, c.Pitch)

	c.Zoom(0.001)
	require.Equal(t, c.MinDistance, c.Distance)
	c.Zoom(1e6)
	require.Equal(t, c.MaxDistance, c.Distance)

	c.Zoom(-1)
	require.Equal(t, c.MaxDistance, c.Distance)
}

func TestClip(t *testing.T) {
	pr := Projector{Near: 10}

	testCases := []struct {
		name     string
		input    []mgl64.Vec3
		expected []mgl64.Vec3
	}{
		{
			name:     "polygon fully in front of near plane",
			input:    []mgl64.Vec3{{0, 0, 20}, {1, 0, 20}, {0, 1, 20}},
			expected: []mgl64.Vec3{{0, 0, 20}, {1, 0, 20}, {0, 1, 20}},
		},
		{
			name:  "polygon fully behind near plane",
			input: []mgl64.Vec3{{0, 0, 5}, {1, 0, 5}, {0, 1, 5}},
		},
		{
			name:     "polygon with one point in front",
			input:    []mgl64.Vec3{{0, 0, 15}, {0, 1, 5}, {1, 0, 5}},
			expected: []mgl64.Vec3{{0.5, 0, 10}, {0, 0, 15}, {0, 0.5, 10}},
		},
		{
			name:     "polygon with two points in front",
			input:    []mgl64.Vec3{{0, 0, 5}, {0, 1, 15}, {1, 0, 15}},
			expected: []mgl64.Vec3{{0.5, 0, 10}, {0, 0.5, 10}, {0, 1, 15}, {1, 0, 15}},
		},
		{
			name:     "polygon on the near plane",
			input:    []mgl64.Vec3{{0, 0, 10}, {1, 0, 10}, {0, 1, 10}},
			expected: []mgl64.Vec3{{0, 0, 10}, {1, 0, 10}, {0, 1, 10}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clipped := pr.Clip(bsptree.MustPolygon(tc.input...))
			if tc.expected == nil {
				require.Nil(t, clipped)
				return
			}
			require.NotNil(t, clipped)
			requireSameCycle(t, tc.expected, clipped)
		})
	}
}

func TestProject(t *testing.T) {
	pr := Projector{Near: 1, Focal: 700, CenterX: 320, CenterY: 240}
	p := bsptree.MustPolygon(
		mgl64.Vec3{0, 0, 20},
		mgl64.Vec3{10, 0, 20},
		mgl64.Vec3{10, -5, 20},
	)

	xs, ys := pr.Project(p)
	require.Equal(t, []float32{320, 670, 670}, xs)
	require.Equal(t, []float32{240, 240, 65}, ys)
}

func TestToCamera(t *testing.T) {
	pr := Projector{View: mgl64.Translate3D(0, 0, 10)}
	p := bsptree.MustPolygon(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})

	cam, err := pr.ToCamera(p)
	require.NoError(t, err)
	requireSameCycle(t, []mgl64.Vec3{{0, 0, 10}, {1, 0, 10}, {0, 1, 10}}, cam)

	// The source polygon is untouched.
	requireVecAlmostEqual(t, mgl64.Vec3{}, p.Vertices()[0])
}

func TestShade(t *testing.T) {
	base := color.RGBA{R: 200, G: 150, B: 50, A: 255}

	testCases := []struct {
		name     string
		normal   mgl64.Vec3
		centroid mgl64.Vec3
		expected color.RGBA
	}{
		{
			name:     "head on in the centre keeps the colour",
			normal:   mgl64.Vec3{0, 0, -1},
			centroid: mgl64.Vec3{0, 0, 10},
			expected: base,
		},
		{
			name:     "back facing is lit the same",
			normal:   mgl64.Vec3{0, 0, 3},
			centroid: mgl64.Vec3{0, 0, 10},
			expected: base,
		},
		{
			name:     "edge on gets ambient light only",
			normal:   mgl64.Vec3{1, 0, 0},
			centroid: mgl64.Vec3{0, 0, 10},
			expected: color.RGBA{R: 116, G: 66, B: minShade, A: 255},
		},
		{
			name:     "off to the side gets ambient light only",
			normal:   mgl64.Vec3{0, 0, -1},
			centroid: mgl64.Vec3{10, 0, 0},
			expected: color.RGBA{R: 116, G: 66, B: minShade, A: 255},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := Shade(base, tc.normal, tc.centroid)
			require.InDelta(t, tc.expected.R, c.R, 1)
			require.InDelta(t, tc.expected.G, c.G, 1)
			require.InDelta(t, tc.expected.B, c.B, 1)
			require.Equal(t, tc.expected.A, c.A)
		})
	}
}

func TestFrameCamera(t *testing.T) {
	c := FrameCamera([]*bsptree.Polygon{
		bsptree.MustPolygon(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{4, 0, 0}, mgl64.Vec3{4, 2, 0}),
		bsptree.MustPolygon(mgl64.Vec3{0, 0, 6}, mgl64.Vec3{1, 0, 6}, mgl64.Vec3{1, 1, 6}),
	})
	requireVecAlmostEqual(t, mgl64.Vec3{2, 1, 3}, c.Target)
	require.InDelta(t, math.Sqrt(14)*2.5, c.Distance, float64EqualityThreshold)

	empty := FrameCamera(nil)
	requireVecAlmostEqual(t, mgl64.Vec3{}, empty.Target)
	require.Equal(t, 10.0, empty.Distance)
}
