package view

import (
	"image/color"

	"github.com/smasonuk/bsptree"
	"github.com/smasonuk/bsptree/scene"
)

// Canvas receives projected convex polygons in paint order.
type Canvas interface {
	FillPolygon(xs, ys []float32, clr color.RGBA)
	StrokePolygon(xs, ys []float32, width float32, clr color.RGBA)
}

var outlineColor = color.RGBA{R: 100, G: 100, B: 100, A: 20}

// Painter draws the polygons it visits. Fed by a back to front traversal it
// is a painter's algorithm renderer.
type Painter struct {
	Projector Projector
	Canvas    Canvas
	Outline   bool

	drawn   int
	clipped int
	skipped int
}

func (p *Painter) Visit(polygons []*bsptree.Polygon) {
	for _, poly := range polygons {
		p.paint(poly)
	}
}

func (p *Painter) paint(poly *bsptree.Polygon) {
	base := scene.Color(poly)

	cam, err := p.Projector.ToCamera(poly)
	if err != nil {
		p.skipped++
		return
	}

	cam = p.Projector.Clip(cam)
	if cam == nil {
		p.clipped++
		return
	}

	clr := Shade(base, cam.Normal(), cam.Centroid())
	xs, ys := p.Projector.Project(cam)
	p.Canvas.FillPolygon(xs, ys, clr)
	if p.Outline {
		p.Canvas.StrokePolygon(xs, ys, 1, outlineColor)
	}
	p.drawn++
}

// Drawn returns how many polygons reached the canvas since the last Reset.
func (p *Painter) Drawn() int {
	return p.drawn
}

// Clipped returns how many polygons were entirely behind the near plane.
func (p *Painter) Clipped() int {
	return p.clipped
}

// Skipped returns how many polygons could not be moved to camera space.
func (p *Painter) Skipped() int {
	return p.skipped
}

func (p *Painter) Reset() {
	p.drawn = 0
	p.clipped = 0
	p.skipped = 0
}
