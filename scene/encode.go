package scene

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/bsptree"
)

// Encode writes polygons in the given format, in order.
func Encode(w io.Writer, format Format, polygons []*bsptree.Polygon) error {
	switch format {
	case FormatDXF:
		return EncodeDXF(w, polygons)
	case FormatPLY:
		return EncodePLY(w, polygons)
	case FormatJSON:
		return EncodeJSON(w, polygons)
	case FormatYAML:
		return EncodeYAML(w, polygons)
	default:
		return errors.New("unsupported scene format").
			WithType(ErrTypeUnsupportedFormat).
			WithTag("format", format)
	}
}

// EncodeDXF writes one 3DFACE per polygon. A 3DFACE has four corners, so
// triangles repeat their third corner and larger polygons are written as a
// triangle fan.
func EncodeDXF(w io.Writer, polygons []*bsptree.Polygon) error {
	bw := bufio.NewWriter(w)
	writePair := func(code int, value string) {
		_, _ = fmt.Fprintf(bw, "%d\n%s\n", code, value)
	}
	writeCorner := func(corner int, v mgl64.Vec3) {
		for axis := range v {
			writePair(10*(axis+1)+corner, formatFloat(v[axis]))
		}
	}
	writeFace := func(corners ...mgl64.Vec3) {
		writePair(0, "3DFACE")
		writePair(8, "0")
		for i, c := range corners {
			writeCorner(i, c)
		}
	}

	writePair(0, "SECTION")
	writePair(2, "HEADER")
	writePair(0, "ENDSEC")
	writePair(0, "SECTION")
	writePair(2, "ENTITIES")

	for _, p := range polygons {
		v := p.Vertices()
		switch len(v) {
		case 3:
			writeFace(v[0], v[1], v[2], v[2])
		case 4:
			writeFace(v[0], v[1], v[2], v[3])
		default:
			for i := 2; i < len(v); i++ {
				writeFace(v[0], v[i-1], v[i], v[i])
			}
		}
	}

	writePair(0, "ENDSEC")
	writePair(0, "EOF")
	return bw.Flush()
}

// EncodePLY writes an ASCII PLY mesh with shared vertices and a colour per
// face.
func EncodePLY(w io.Writer, polygons []*bsptree.Polygon) error {
	var (
		vertices []mgl64.Vec3
		indexes  = make(map[mgl64.Vec3]int)
		faces    = make([][]int, 0, len(polygons))
	)
	for _, p := range polygons {
		face := make([]int, 0, p.Len())
		for _, v := range p.Vertices() {
			idx, ok := indexes[v]
			if !ok {
				idx = len(vertices)
				indexes[v] = idx
				vertices = append(vertices, v)
			}
			face = append(face, idx)
		}
		faces = append(faces, face)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "ply")
	fmt.Fprintln(bw, "format ascii 1.0")
	fmt.Fprintf(bw, "element vertex %d\n", len(vertices))
	fmt.Fprintln(bw, "property double x")
	fmt.Fprintln(bw, "property double y")
	fmt.Fprintln(bw, "property double z")
	fmt.Fprintf(bw, "element face %d\n", len(faces))
	fmt.Fprintln(bw, "property list uchar int vertex_indices")
	fmt.Fprintln(bw, "property uchar red")
	fmt.Fprintln(bw, "property uchar green")
	fmt.Fprintln(bw, "property uchar blue")
	fmt.Fprintln(bw, "end_header")

	for _, v := range vertices {
		fmt.Fprintf(bw, "%s %s %s\n", formatFloat(v[0]), formatFloat(v[1]), formatFloat(v[2]))
	}
	for i, face := range faces {
		fmt.Fprintf(bw, "%d", len(face))
		for _, idx := range face {
			fmt.Fprintf(bw, " %d", idx)
		}
		c := Color(polygons[i])
		fmt.Fprintf(bw, " %d %d %d\n", c.R, c.G, c.B)
	}
	return bw.Flush()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
