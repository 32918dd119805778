package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/bsptree"
	"github.com/stretchr/testify/require"
)

const sampleDXF = `0
SECTION
2
ENTITIES
0
3DFACE
8
0
10
0.0
20
0.0
30
0.0
11
1.0
21
0.0
31
0.0
12
1.0
22
1.0
32
0.0
13
0.0
23
1.0
33
0.0
0
3DFACE
8
0
10
0.0
20
0.0
30
1.0
11
1.0
21
0.0
31
1.0
12
0.0
22
1.0
32
1.0
13
0.0
23
1.0
33
1.0
0
ENDSEC
0
EOF
`

const samplePLY = `ply
format ascii 1.0
comment a unit square and a triangle
element vertex 5
property float x
property float y
property float z
property uchar red
element face 2
property list uchar int vertex_indices
end_header
0 0 0 255
1 0 0 255
1 1 0 255
0 1 0 255
0 0 1 255
4 0 1 2 3
3 0 1 4
`

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		in       string
		expected Format
		err      bool
	}{
		{in: ".dxf", expected: FormatDXF},
		{in: "PLY", expected: FormatPLY},
		{in: "json", expected: FormatJSON},
		{in: ".yml", expected: FormatYAML},
		{in: ".obj", err: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			f, err := ParseFormat(tc.in)
			if tc.err {
				require.True(t, errors.IsType(err, ErrTypeUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, f)
		})
	}
}

func TestDecodeDXF(t *testing.T) {
	shapes, err := DecodeDXF(strings.NewReader(sampleDXF))
	require.NoError(t, err)
	require.Len(t, shapes, 2)

	require.Len(t, shapes[0].Vertices(), 4)
	require.Equal(t, mgl64.Vec3{1, 1, 0}, shapes[0].Vertices()[2])

	// The second face repeats its last corner and becomes a triangle.
	require.Len(t, shapes[1].Vertices(), 3)
}

func TestDecodeDXFErrors(t *testing.T) {
	_, err := DecodeDXF(strings.NewReader("0\n3DFACE\n10\nabc\n"))
	require.True(t, errors.IsType(err, ErrTypeParse))

	_, err = DecodeDXF(strings.NewReader("zero\n3DFACE\n"))
	require.True(t, errors.IsType(err, ErrTypeParse))
}

func TestDecodePLY(t *testing.T) {
	shapes, err := DecodePLY(strings.NewReader(samplePLY))
	require.NoError(t, err)
	require.Len(t, shapes, 2)
	require.Len(t, shapes[0].Vertices(), 4)
	require.Len(t, shapes[1].Vertices(), 3)

	n, ok := shapes[0].UnitNormal()
	require.True(t, ok)
	require.True(t, n.ApproxEqual(mgl64.Vec3{0, 0, 1}))
}

func TestDecodePLYErrors(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		errType string
	}{
		{
			name:    "missing magic",
			input:   "format ascii 1.0\nend_header\n",
			errType: ErrTypeParse,
		},
		{
			name:    "binary",
			input:   "ply\nformat binary_little_endian 1.0\nend_header\n",
			errType: ErrTypeUnsupportedFormat,
		},
		{
			name: "index out of range",
			input: "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\n" +
				"element face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n3 0 1 7\n",
			errType: ErrTypeParse,
		},
		{
			name:    "truncated",
			input:   "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n",
			errType: ErrTypeParse,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodePLY(strings.NewReader(tc.input))
			require.Error(t, err)
			require.True(t, errors.IsType(err, tc.errType))
		})
	}
}

func TestDecodeDocument(t *testing.T) {
	const jsonScene = `{
  "shapes": [
    {"type": "triangle", "vertices": [[0, 0, 0], [1, 0, 0], [0, 1, 0]]},
    {"type": "rectangle", "origin": [0, 0, 1], "u": [1, 0, 0], "v": [0, 1, 0]},
    {"type": "cube", "center": [5, 5, 5], "size": 2},
    {"type": "polygon", "vertices": [[0, 0, 2], [1, 0, 2], [1, 1, 2], [0, 1, 2]]}
  ]
}`

	const yamlScene = `shapes:
  - type: triangle
    vertices: [[0, 0, 0], [1, 0, 0], [0, 1, 0]]
  - type: rectangle
    origin: [0, 0, 1]
    u: [1, 0, 0]
    v: [0, 1, 0]
  - type: cube
    center: [5, 5, 5]
    size: 2
  - type: polygon
    vertices: [[0, 0, 2], [1, 0, 2], [1, 1, 2], [0, 1, 2]]
`

	testCases := []struct {
		name   string
		format Format
		input  string
	}{
		{name: "json", format: FormatJSON, input: jsonScene},
		{name: "yaml", format: FormatYAML, input: yamlScene},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			shapes, err := Decode(strings.NewReader(tc.input), tc.format)
			require.NoError(t, err)
			require.Len(t, shapes, 1+1+6+1)

			require.IsType(t, &bsptree.Triangle{}, shapes[0])
			require.IsType(t, &bsptree.Rectangle{}, shapes[1])
			require.IsType(t, &bsptree.Polygon{}, shapes[8])
		})
	}
}

func TestDecodeDocumentErrors(t *testing.T) {
	testCases := []struct {
		name   string
		format Format
		input  string
	}{
		{name: "bad json", format: FormatJSON, input: `{"shapes": [`},
		{name: "unknown type", format: FormatJSON, input: `{"shapes": [{"type": "sphere"}]}`},
		{name: "short triangle", format: FormatYAML, input: "shapes:\n  - type: triangle\n    vertices: [[0, 0, 0]]\n"},
		{name: "collinear triangle", format: FormatJSON, input: `{"shapes": [{"type": "triangle", "vertices": [[0, 0, 0], [1, 1, 0], [2, 2, 0]]}]}`},
		{name: "flat rectangle", format: FormatYAML, input: "shapes:\n  - type: rectangle\n    origin: [0, 0, 0]\n    u: [1, 0, 0]\n    v: [2, 0, 0]\n"},
		{name: "non planar polygon", format: FormatYAML, input: "shapes:\n  - type: polygon\n    vertices: [[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 1]]\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.input), tc.format)
			require.Error(t, err)
			require.True(t, errors.IsType(err, ErrTypeParse))
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	polygons := Polygons(Cube(mgl64.Vec3{1, 2, 3}, 2))

	var sb strings.Builder
	require.NoError(t, EncodeJSON(&sb, polygons))
	shapes, err := DecodeJSON(strings.NewReader(sb.String()))
	require.NoError(t, err)
	require.Len(t, shapes, len(polygons))
	for i, s := range shapes {
		require.True(t, polygons[i].Equal(s.Polygon(), 1e-9))
	}

	sb.Reset()
	require.NoError(t, EncodeYAML(&sb, polygons))
	shapes, err = DecodeYAML(strings.NewReader(sb.String()))
	require.NoError(t, err)
	require.Len(t, shapes, len(polygons))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	dxfPath := filepath.Join(dir, "faces.dxf")
	require.NoError(t, os.WriteFile(dxfPath, []byte(sampleDXF), 0o600))
	shapes, err := Load(dxfPath)
	require.NoError(t, err)
	require.Len(t, shapes, 2)

	_, err = Load(filepath.Join(dir, "scene.obj"))
	require.True(t, errors.IsType(err, ErrTypeUnsupportedFormat))

	_, err = Load(filepath.Join(dir, "missing.ply"))
	require.Error(t, err)
}

func TestEncodeMeshFormats(t *testing.T) {
	pentagon := bsptree.MustPolygon(
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{2, 0, 0},
		mgl64.Vec3{3, 1, 0},
		mgl64.Vec3{1, 2, 0},
		mgl64.Vec3{-1, 1, 0},
	)
	polygons := append(Polygons(Cube(mgl64.Vec3{1, 2, 3}, 2)), pentagon)

	testCases := []struct {
		format   Format
		expected int
	}{
		// The pentagon becomes a fan of three triangles.
		{format: FormatDXF, expected: 6 + 3},
		{format: FormatPLY, expected: 6 + 1},
	}

	for _, tc := range testCases {
		t.Run(string(tc.format), func(t *testing.T) {
			var sb strings.Builder
			require.NoError(t, Encode(&sb, tc.format, polygons))

			shapes, err := Decode(strings.NewReader(sb.String()), tc.format)
			require.NoError(t, err)
			require.Len(t, shapes, tc.expected)
			for i := 0; i < 6; i++ {
				require.True(t, polygons[i].Equal(shapes[i].Polygon(), 1e-9))
			}
		})
	}
}

func TestEncodePLYSharesVertices(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, EncodePLY(&sb, Polygons(Cube(mgl64.Vec3{}, 1))))
	require.Contains(t, sb.String(), "element vertex 8\n")
	require.Contains(t, sb.String(), "element face 6\n")

	require.True(t, errors.IsType(Encode(&sb, Format("obj"), nil), ErrTypeUnsupportedFormat))
}
