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

// DecodeDXF reads the 3DFACE entities of an ASCII DXF file. Each face has
// four corners; a triangle repeats its third corner, which is dropped.
// Faces that do not form a valid polygon are skipped with a warning.
func DecodeDXF(r io.Reader) ([]bsptree.Shape, error) {
	scanner := bufio.NewScanner(r)
	line := 0

	// readPair reads one group code and its value.
	readPair := func() (int, string, bool, error) {
		if !scanner.Scan() {
			return 0, "", false, scanner.Err()
		}
		line++
		codeText := strings.TrimSpace(scanner.Text())

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, "", false, err
			}
			return 0, "", false, errors.New("group code without value").
				WithType(ErrTypeParse).
				WithTag("line", line)
		}
		line++

		code, err := strconv.Atoi(codeText)
		if err != nil {
			return 0, "", false, errors.New("invalid group code").
				WithType(ErrTypeParse).
				WithTag("line", line-1).
				WithTag("code", codeText).
				Wrap(err)
		}
		return code, strings.TrimSpace(scanner.Text()), true, nil
	}

	var (
		shapes  []bsptree.Shape
		corners [4]mgl64.Vec3
		inFace  bool
		faces   int
	)

	flush := func() {
		if !inFace {
			return
		}
		inFace = false
		faces++

		p, err := polygonFromPoints(corners[:])
		if err != nil {
			logs.Warn(errors.New("skipping invalid dxf face").
				WithTag("face", faces-1).
				Wrap(err))
			return
		}
		shapes = append(shapes, p)
	}

	for {
		code, value, ok, err := readPair()
		if err != nil {
			return nil, errors.New("reading dxf failed").
				WithType(ErrTypeParse).
				Wrap(err)
		}
		if !ok {
			break
		}

		if code == 0 {
			flush()
			if value == "3DFACE" {
				inFace = true
				corners = [4]mgl64.Vec3{}
			}
			continue
		}
		if !inFace {
			continue
		}

		// Codes 10-13, 20-23 and 30-33 hold x, y and z of corners 0-3.
		axis, corner := code/10-1, code%10
		if code < 10 || code > 33 || corner > 3 {
			continue
		}

		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, errors.New("invalid dxf coordinate").
				WithType(ErrTypeParse).
				WithTag("line", line).
				WithTag("value", value).
				Wrap(err)
		}
		corners[corner][axis] = v
	}
	flush()

	return shapes, nil
}

// polygonFromPoints drops repeated consecutive points, including a last point
// equal to the first, before building the polygon.
func polygonFromPoints(points []mgl64.Vec3) (*bsptree.Polygon, error) {
	unique := make([]mgl64.Vec3, 0, len(points))
	for _, p := range points {
		if len(unique) > 0 && unique[len(unique)-1].ApproxEqual(p) {
			continue
		}
		unique = append(unique, p)
	}
	if len(unique) > 1 && unique[len(unique)-1].ApproxEqual(unique[0]) {
		unique = unique[:len(unique)-1]
	}
	return bsptree.NewPolygon(unique)
}
