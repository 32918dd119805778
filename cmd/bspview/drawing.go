package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// screenCanvas draws projected polygons onto the frame being rendered.
type screenCanvas struct {
	screen *ebiten.Image
}

func (c screenCanvas) FillPolygon(xs, ys []float32, clr color.RGBA) {
	if len(xs) < 3 {
		return
	}

	indices := make([]uint16, 0, (len(xs)-2)*3)
	for i := 2; i < len(xs); i++ {
		indices = append(indices, 0, uint16(i-1), uint16(i))
	}

	vertices := make([]ebiten.Vertex, len(xs))
	for i := range xs {
		vertices[i] = ebiten.Vertex{DstX: xs[i], DstY: ys[i]}
	}
	colorVertices(vertices, clr)

	c.screen.DrawTriangles(vertices, indices, whiteSub, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (c screenCanvas) StrokePolygon(xs, ys []float32, width float32, clr color.RGBA) {
	if len(xs) < 2 {
		return
	}

	var path vector.Path
	path.MoveTo(xs[0], ys[0])
	for i := 1; i < len(xs); i++ {
		path.LineTo(xs[i], ys[i])
	}
	path.Close()

	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: width})
	colorVertices(vertices, clr)

	c.screen.DrawTriangles(vertices, indices, whiteSub, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// colorVertices points every vertex at the white source pixel tinted by clr.
func colorVertices(vertices []ebiten.Vertex, clr color.RGBA) {
	cr := float32(clr.R) / 255
	cg := float32(clr.G) / 255
	cb := float32(clr.B) / 255
	ca := float32(clr.A) / 255

	for i := range vertices {
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
	}
}
