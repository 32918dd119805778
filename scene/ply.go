package scene

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/bsptree"
)

type plyElement struct {
	name       string
	count      int
	properties []string
}

// DecodePLY reads an ASCII PLY mesh. Only the x, y and z vertex properties
// and the face vertex index lists are used; other elements are skipped.
func DecodePLY(r io.Reader) ([]bsptree.Shape, error) {
	scanner := bufio.NewScanner(r)
	line := 0

	nextFields := func() ([]string, error) {
		for scanner.Scan() {
			line++
			if fields := strings.Fields(scanner.Text()); len(fields) > 0 {
				return fields, nil
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.ErrUnexpectedEOF
	}

	parseErr := func(msg string, cause error) error {
		err := errors.New(msg).
			WithType(ErrTypeParse).
			WithTag("format", FormatPLY).
			WithTag("line", line)
		if cause != nil {
			return err.Wrap(cause)
		}
		return err
	}

	fields, err := nextFields()
	if err != nil || fields[0] != "ply" {
		return nil, parseErr("missing ply magic", nil)
	}

	var elements []*plyElement
	for {
		fields, err := nextFields()
		if err != nil {
			return nil, parseErr("unterminated ply header", err)
		}

		switch fields[0] {
		case "format":
			if len(fields) < 2 || fields[1] != "ascii" {
				return nil, errors.New("only ascii ply is supported").
					WithType(ErrTypeUnsupportedFormat).
					WithTag("format", strings.Join(fields[1:], " "))
			}
		case "element":
			if len(fields) != 3 {
				return nil, parseErr("malformed element", nil)
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil || count < 0 {
				return nil, parseErr("invalid element count", nil)
			}
			elements = append(elements, &plyElement{name: fields[1], count: count})
		case "property":
			if len(elements) == 0 {
				return nil, parseErr("property before element", nil)
			}
			e := elements[len(elements)-1]
			e.properties = append(e.properties, fields[len(fields)-1])
		}

		if fields[0] == "end_header" {
			break
		}
	}

	var (
		vertices []mgl64.Vec3
		shapes   []bsptree.Shape
	)

	for _, e := range elements {
		switch e.name {
		case "vertex":
			xi, yi, zi := indexOf(e.properties, "x"), indexOf(e.properties, "y"), indexOf(e.properties, "z")
			if xi < 0 || yi < 0 || zi < 0 {
				return nil, parseErr("vertex element needs x, y and z", nil)
			}

			vertices = make([]mgl64.Vec3, 0, e.count)
			for i := 0; i < e.count; i++ {
				fields, err := nextFields()
				if err != nil {
					return nil, parseErr("missing vertex", err)
				}
				if len(fields) < len(e.properties) {
					return nil, parseErr("short vertex line", nil)
				}

				var v mgl64.Vec3
				for axis, idx := range [3]int{xi, yi, zi} {
					if v[axis], err = strconv.ParseFloat(fields[idx], 64); err != nil {
						return nil, parseErr("invalid vertex coordinate", err)
					}
				}
				vertices = append(vertices, v)
			}

		case "face":
			for i := 0; i < e.count; i++ {
				fields, err := nextFields()
				if err != nil {
					return nil, parseErr("missing face", err)
				}

				n, err := strconv.Atoi(fields[0])
				if err != nil || n < 0 || len(fields) < n+1 {
					return nil, parseErr("malformed face", nil)
				}

				points := make([]mgl64.Vec3, n)
				for j := range points {
					idx, err := strconv.Atoi(fields[j+1])
					if err != nil || idx < 0 || idx >= len(vertices) {
						return nil, parseErr("face vertex index out of range", nil)
					}
					points[j] = vertices[idx]
				}

				p, err := polygonFromPoints(points)
				if err != nil {
					logs.Warn(errors.New("skipping invalid ply face").
						WithTag("face", i).
						Wrap(err))
					continue
				}
				shapes = append(shapes, p)
			}

		default:
			for i := 0; i < e.count; i++ {
				if _, err := nextFields(); err != nil {
					return nil, parseErr("missing "+e.name+" data", err)
				}
			}
		}
	}

	return shapes, nil
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return -1
}
