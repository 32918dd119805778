package scene

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/bsptree"
)

// cubeFaces lists the corner indices of each face, wound counter-clockwise
// when seen from outside: +z, -z, -x, +x, +y, -y.
var cubeFaces = [6][4]int{
	{4, 5, 6, 7},
	{1, 0, 3, 2},
	{0, 4, 7, 3},
	{5, 1, 2, 6},
	{7, 6, 2, 3},
	{0, 1, 5, 4},
}

func cubeCorners(half float64) [8]mgl64.Vec3 {
	return [8]mgl64.Vec3{
		{-half, -half, -half},
		{half, -half, -half},
		{half, half, -half},
		{-half, half, -half},
		{-half, -half, half},
		{half, -half, half},
		{half, half, half},
		{-half, half, half},
	}
}

// Cube returns the six outward-facing rectangles of an axis-aligned cube.
func Cube(center mgl64.Vec3, size float64) []bsptree.Shape {
	corners := cubeCorners(size / 2)

	shapes := make([]bsptree.Shape, 0, len(cubeFaces))
	for _, f := range cubeFaces {
		a, b, d := corners[f[0]].Add(center), corners[f[1]].Add(center), corners[f[3]].Add(center)
		shapes = append(shapes, bsptree.NewRectangle(a, b.Sub(a), d.Sub(a)))
	}
	return shapes
}

// RotatedCube returns the six faces of a cube rotated about its center. The
// fourth corner of each face is projected onto the plane of the other three
// so that rounding after the rotation cannot leave it off the plane.
func RotatedCube(center mgl64.Vec3, size float64, rotation mgl64.Mat3) ([]bsptree.Shape, error) {
	var corners [8]mgl64.Vec3
	for i, c := range cubeCorners(size / 2) {
		corners[i] = center.Add(rotation.Mul3x1(c))
	}

	shapes := make([]bsptree.Shape, 0, len(cubeFaces))
	for _, f := range cubeFaces {
		p0, p1, p2, p3 := corners[f[0]], corners[f[1]], corners[f[2]], corners[f[3]]

		plane, err := bsptree.NewPlaneFromPoints(p0, p1, p2)
		if err != nil {
			return nil, err
		}

		p, err := bsptree.NewPolygon([]mgl64.Vec3{p0, p1, p2, plane.ProjectPoint(p3)})
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, p)
	}
	return shapes, nil
}

// Rand is a 64-bit linear congruential generator. It is deterministic across
// platforms so that generated scenes can be compared by seed.
type Rand struct {
	state uint64
}

func NewRand(seed uint64) *Rand {
	return &Rand{state: seed}
}

// Float returns a value in [0, 1).
func (r *Rand) Float() float64 {
	r.state = r.state*6364136223846793005 + 1
	return float64(r.state>>33) / (math.MaxUint32 / 2.0)
}

// Range returns a value between min and max.
func (r *Rand) Range(min, max float64) float64 {
	return min + r.Float()*(max-min)
}

// RandomCubesOptions configures RandomCubes and RandomRotatedCubes. Zero
// fields take the defaults of DefaultRandomCubes.
type RandomCubesOptions struct {
	Seed      uint64
	Count     int
	WorldSize float64
	MinSize   float64
	MaxSize   float64
}

// DefaultRandomCubes is the cube field shown by the viewer.
var DefaultRandomCubes = RandomCubesOptions{
	Seed:      42,
	Count:     100,
	WorldSize: 50,
	MinSize:   1,
	MaxSize:   5,
}

func (o RandomCubesOptions) withDefaults() RandomCubesOptions {
	if o.Count <= 0 {
		o.Count = DefaultRandomCubes.Count
	}
	if o.WorldSize <= 0 {
		o.WorldSize = DefaultRandomCubes.WorldSize
	}
	if o.MinSize <= 0 {
		o.MinSize = DefaultRandomCubes.MinSize
	}
	if o.MaxSize < o.MinSize {
		o.MaxSize = max(o.MinSize, DefaultRandomCubes.MaxSize)
	}
	return o
}

// RandomCubes scatters axis-aligned cubes of random size over a cube of side
// WorldSize centred on the origin.
func RandomCubes(opts RandomCubesOptions) []bsptree.Shape {
	opts = opts.withDefaults()
	rng := NewRand(opts.Seed)

	shapes := make([]bsptree.Shape, 0, opts.Count*len(cubeFaces))
	for i := 0; i < opts.Count; i++ {
		center := mgl64.Vec3{
			(rng.Float() - 0.5) * opts.WorldSize,
			(rng.Float() - 0.5) * opts.WorldSize,
			(rng.Float() - 0.5) * opts.WorldSize,
		}
		size := rng.Range(opts.MinSize, opts.MaxSize)
		shapes = append(shapes, Cube(center, size)...)
	}
	return shapes
}

// RandomRotatedCubes is RandomCubes with every cube turned about a random
// axis.
func RandomRotatedCubes(opts RandomCubesOptions) ([]bsptree.Shape, error) {
	opts = opts.withDefaults()
	rng := NewRand(opts.Seed)

	shapes := make([]bsptree.Shape, 0, opts.Count*len(cubeFaces))
	for i := 0; i < opts.Count; i++ {
		center := mgl64.Vec3{
			(rng.Float() - 0.5) * opts.WorldSize,
			(rng.Float() - 0.5) * opts.WorldSize,
			(rng.Float() - 0.5) * opts.WorldSize,
		}
		size := rng.Range(opts.MinSize, opts.MaxSize)

		axis := mgl64.Vec3{rng.Float() - 0.5, rng.Float() - 0.5, rng.Float() - 0.5}
		if axis.Len() <= 0.01 {
			axis = mgl64.Vec3{1, 0, 0}
		}
		angle := rng.Float() * math.Pi

		cube, err := RotatedCube(center, size, mgl64.HomogRotate3D(angle, axis.Normalize()).Mat3())
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, cube...)
	}
	return shapes, nil
}

// TerrainOptions configures Terrain. Zero fields take the defaults of
// DefaultTerrain.
type TerrainOptions struct {
	Seed   int64
	Cols   int
	Rows   int
	Cell   float64
	Height float64
}

var DefaultTerrain = TerrainOptions{
	Seed:   1,
	Cols:   16,
	Rows:   16,
	Cell:   2,
	Height: 6,
}

// Terrain returns a Perlin noise heightfield in the xz plane, two upward
// facing triangles per cell, centred on the origin.
func Terrain(opts TerrainOptions) []bsptree.Shape {
	if opts.Cols <= 0 {
		opts.Cols = DefaultTerrain.Cols
	}
	if opts.Rows <= 0 {
		opts.Rows = DefaultTerrain.Rows
	}
	if opts.Cell <= 0 {
		opts.Cell = DefaultTerrain.Cell
	}
	if opts.Height == 0 {
		opts.Height = DefaultTerrain.Height
	}

	noise := perlin.NewPerlin(2, 2, 3, opts.Seed)
	originX := -float64(opts.Cols) * opts.Cell / 2
	originZ := -float64(opts.Rows) * opts.Cell / 2

	point := func(col, row int) mgl64.Vec3 {
		h := noise.Noise2D(float64(col)/float64(opts.Cols), float64(row)/float64(opts.Rows))
		return mgl64.Vec3{
			originX + float64(col)*opts.Cell,
			h * opts.Height,
			originZ + float64(row)*opts.Cell,
		}
	}

	shapes := make([]bsptree.Shape, 0, opts.Cols*opts.Rows*2)
	for row := 0; row < opts.Rows; row++ {
		for col := 0; col < opts.Cols; col++ {
			a, b := point(col, row), point(col+1, row)
			c, d := point(col, row+1), point(col+1, row+1)
			shapes = append(shapes,
				bsptree.NewTriangle(a, c, b),
				bsptree.NewTriangle(b, c, d),
			)
		}
	}
	return shapes
}
