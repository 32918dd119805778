package scene

import (
	"io"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/segmentio/encoding/json"
	"github.com/smasonuk/bsptree"
	"gopkg.in/yaml.v3"
)

// Document is the JSON and YAML scene layout: a list of shape entries, each
// either literal geometry or a generator.
type Document struct {
	Shapes []Entry `json:"shapes" yaml:"shapes"`
}

// Entry is one shape or generator in a Document. Type selects which fields
// are read:
//
//	polygon, triangle: vertices
//	rectangle:         origin, u, v
//	cube:              center, size
//	rotated_cube:      center, size, axis, angle (radians)
//	random_cubes:      seed, count, world_size, min_size, max_size
//	terrain:           seed, cols, rows, cell, height
type Entry struct {
	Type     string       `json:"type" yaml:"type"`
	Vertices [][3]float64 `json:"vertices" yaml:"vertices,flow"`
	Origin   [3]float64   `json:"origin" yaml:"origin,flow"`
	U        [3]float64   `json:"u" yaml:"u,flow"`
	V        [3]float64   `json:"v" yaml:"v,flow"`
	Center   [3]float64   `json:"center" yaml:"center,flow"`
	Size     float64      `json:"size,omitempty" yaml:"size,omitempty"`
	Axis     [3]float64   `json:"axis" yaml:"axis,flow"`
	Angle    float64      `json:"angle,omitempty" yaml:"angle,omitempty"`

	Seed      int64   `json:"seed,omitempty" yaml:"seed,omitempty"`
	Count     int     `json:"count,omitempty" yaml:"count,omitempty"`
	WorldSize float64 `json:"world_size,omitempty" yaml:"world_size,omitempty"`
	MinSize   float64 `json:"min_size,omitempty" yaml:"min_size,omitempty"`
	MaxSize   float64 `json:"max_size,omitempty" yaml:"max_size,omitempty"`
	Cols      int     `json:"cols,omitempty" yaml:"cols,omitempty"`
	Rows      int     `json:"rows,omitempty" yaml:"rows,omitempty"`
	Cell      float64 `json:"cell,omitempty" yaml:"cell,omitempty"`
	Height    float64 `json:"height,omitempty" yaml:"height,omitempty"`
}

func DecodeJSON(r io.Reader) ([]bsptree.Shape, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.New("decoding json scene failed").
			WithType(ErrTypeParse).
			Wrap(err)
	}
	return doc.Build()
}

func DecodeYAML(r io.Reader) ([]bsptree.Shape, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, errors.New("decoding yaml scene failed").
			WithType(ErrTypeParse).
			Wrap(err)
	}
	return doc.Build()
}

// EncodeJSON writes polygons as a Document of polygon entries.
func EncodeJSON(w io.Writer, polygons []*bsptree.Polygon) error {
	doc := NewDocument(polygons)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// EncodeYAML writes polygons as a Document of polygon entries.
func EncodeYAML(w io.Writer, polygons []*bsptree.Polygon) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(NewDocument(polygons))
}

// NewDocument describes polygons as literal polygon entries.
func NewDocument(polygons []*bsptree.Polygon) Document {
	doc := Document{Shapes: make([]Entry, len(polygons))}
	for i, p := range polygons {
		vertices := make([][3]float64, p.Len())
		for j, v := range p.Vertices() {
			vertices[j] = v
		}
		doc.Shapes[i] = Entry{Type: "polygon", Vertices: vertices}
	}
	return doc
}

// Build turns every entry into shapes, in document order.
func (d Document) Build() ([]bsptree.Shape, error) {
	var shapes []bsptree.Shape
	for i, e := range d.Shapes {
		s, err := e.build()
		if err != nil {
			return nil, errors.New("invalid scene entry").
				WithType(ErrTypeParse).
				WithTag("entry", i).
				WithTag("type", e.Type).
				Wrap(err)
		}
		shapes = append(shapes, s...)
	}
	return shapes, nil
}

func (e Entry) build() ([]bsptree.Shape, error) {
	switch e.Type {
	case "polygon":
		p, err := bsptree.NewPolygon(vecs(e.Vertices))
		if err != nil {
			return nil, err
		}
		return []bsptree.Shape{p}, nil

	case "triangle":
		if len(e.Vertices) != 3 {
			return nil, errors.Newf("triangle needs 3 vertices, got %d", len(e.Vertices))
		}
		v := vecs(e.Vertices)
		return nonDegenerate(bsptree.NewTriangle(v[0], v[1], v[2]))

	case "rectangle":
		return nonDegenerate(bsptree.NewRectangle(e.Origin, e.U, e.V))

	case "cube":
		return Cube(e.Center, e.Size), nil

	case "rotated_cube":
		axis := mgl64.Vec3(e.Axis)
		if axis.Len() < 0.01 {
			axis = mgl64.Vec3{1, 0, 0}
		}
		return RotatedCube(e.Center, e.Size, mgl64.HomogRotate3D(e.Angle, axis.Normalize()).Mat3())

	case "random_cubes":
		return RandomCubes(RandomCubesOptions{
			Seed:      uint64(e.Seed),
			Count:     e.Count,
			WorldSize: e.WorldSize,
			MinSize:   e.MinSize,
			MaxSize:   e.MaxSize,
		}), nil

	case "terrain":
		return Terrain(TerrainOptions{
			Seed:   e.Seed,
			Cols:   e.Cols,
			Rows:   e.Rows,
			Cell:   e.Cell,
			Height: e.Height,
		}), nil

	default:
		return nil, errors.New("unknown shape type").
			WithType(ErrTypeUnsupportedFormat).
			WithTag("type", e.Type)
	}
}

// nonDegenerate rejects shapes without a normal, which NewTriangle and
// NewRectangle accept.
func nonDegenerate(s bsptree.Shape) ([]bsptree.Shape, error) {
	if _, ok := s.UnitNormal(); !ok {
		return nil, errors.New("shape has no normal").
			WithType(bsptree.ErrTypeDegenerate).
			WithTag("vertices", s.Vertices())
	}
	return []bsptree.Shape{s}, nil
}

func vecs(values [][3]float64) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
