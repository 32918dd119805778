// Package scene loads and generates the shapes a bsptree is built from.
//
// Scenes are read from DXF 3DFACE entities, ASCII PLY meshes or JSON/YAML
// scene documents. The generators produce the cube fields and terrain used by
// the viewer and the benchmarks.
package scene

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/smasonuk/bsptree"
)

const (
	// ErrTypeParse marks malformed scene input.
	ErrTypeParse = "scene-parse"

	// ErrTypeUnsupportedFormat marks unknown file extensions or encodings.
	ErrTypeUnsupportedFormat = "scene-unsupported-format"
)

// Format is a scene file encoding.
type Format string

const (
	FormatDXF  Format = "dxf"
	FormatPLY  Format = "ply"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts a format name or a file extension, with or without the
// leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "dxf":
		return FormatDXF, nil
	case "ply":
		return FormatPLY, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.New("unsupported scene format").
			WithType(ErrTypeUnsupportedFormat).
			WithTag("format", s)
	}
}

// Load reads the scene at path, picking the decoder from the file extension.
func Load(path string) ([]bsptree.Shape, error) {
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return nil, errors.New("detecting scene format failed").
			WithType(ErrTypeUnsupportedFormat).
			WithTag("path", path).
			Wrap(err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("opening scene failed").
			WithTag("path", path).
			Wrap(err)
	}
	defer f.Close()

	shapes, err := Decode(f, format)
	if err != nil {
		return nil, errors.New("decoding scene failed").
			WithType(ErrTypeParse).
			WithTag("path", path).
			Wrap(err)
	}
	return shapes, nil
}

// Decode reads a scene in the given format.
func Decode(r io.Reader, format Format) ([]bsptree.Shape, error) {
	switch format {
	case FormatDXF:
		return DecodeDXF(r)
	case FormatPLY:
		return DecodePLY(r)
	case FormatJSON:
		return DecodeJSON(r)
	case FormatYAML:
		return DecodeYAML(r)
	default:
		return nil, errors.New("unsupported scene format").
			WithType(ErrTypeUnsupportedFormat).
			WithTag("format", format)
	}
}

// Polygons lowers shapes to polygons.
func Polygons(shapes []bsptree.Shape) []*bsptree.Polygon {
	polygons := make([]*bsptree.Polygon, len(shapes))
	for i, s := range shapes {
		polygons[i] = s.Polygon()
	}
	return polygons
}
