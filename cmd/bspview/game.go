package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/smasonuk/bsptree"
	"github.com/smasonuk/bsptree/internal/view"
)

const (
	dragSpeed  = 1.0 / 200
	keySpeed   = 0.03
	zoomFactor = 1.1
)

// Game renders a tree with the painter's algorithm. The navigator picks the
// subtree being drawn, so single branches can be inspected.
type Game struct {
	tree    *bsptree.Tree
	nav     *bsptree.Navigator
	camera  *view.OrbitCamera
	painter *view.Painter

	width, height int
	dragging      bool
	lastX, lastY  int
	showHelp      bool
}

func NewGame(tree *bsptree.Tree, camera *view.OrbitCamera, width, height int, outline bool) *Game {
	return &Game{
		tree:     tree,
		nav:      bsptree.NewNavigator(tree),
		camera:   camera,
		painter:  &view.Painter{Outline: outline},
		width:    width,
		height:   height,
		showHelp: true,
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.updateNavigation()
	g.updateCamera()

	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.painter.Outline = !g.painter.Outline
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}
	return nil
}

func (g *Game) updateNavigation() {
	moved := false
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		moved = g.nav.GoFront()
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		moved = g.nav.GoBack()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		moved = g.nav.GoParent()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.nav.GoRoot()
		moved = true
	}

	if moved {
		logs.WithTag("path", pathString(g.nav.Path())).
			WithTag("polygons", g.nav.Subtree().PolygonCount()).
			Debug("subtree selected")
	}
}

func (g *Game) updateCamera() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragging = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.dragging {
		x, y := ebiten.CursorPosition()
		g.camera.Orbit(float64(x-g.lastX)*dragSpeed, float64(y-g.lastY)*dragSpeed)
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragging = false
	}

	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camera.Orbit(-keySpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camera.Orbit(keySpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camera.Orbit(0, keySpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camera.Orbit(0, -keySpeed)
	}

	_, wheel := ebiten.Wheel()
	switch {
	case wheel > 0 || inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		g.camera.Zoom(1 / zoomFactor)
	case wheel < 0 || inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		g.camera.Zoom(zoomFactor)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	g.painter.Projector = view.Projector{
		View:    g.camera.View(),
		Near:    view.DefaultNear,
		Focal:   view.DefaultFocal,
		CenterX: float64(g.width) / 2,
		CenterY: float64(g.height) / 2,
	}
	g.painter.Canvas = screenCanvas{screen: screen}
	g.painter.Reset()

	g.nav.Subtree().TraverseBackToFront(g.camera.Eye(), g.painter)

	ebitenutil.DebugPrint(screen, g.hud())
}

func (g *Game) hud() string {
	var b strings.Builder
	stats := g.tree.Stats()

	fmt.Fprintf(&b, "FPS: %0.2f\n", ebiten.ActualFPS())
	fmt.Fprintf(&b, "tree: %d polygons, %d nodes, depth %d, %d splits\n",
		stats.Polygons, stats.Nodes, stats.Depth, stats.Splits)
	fmt.Fprintf(&b, "drawn: %d, clipped: %d\n", g.painter.Drawn(), g.painter.Clipped())

	path := pathString(g.nav.Path())
	if path == "" {
		path = "root"
	}
	fmt.Fprintf(&b, "subtree: %s", path)
	if node := g.nav.Current(); node != nil {
		fmt.Fprintf(&b, " (%d coplanar)", node.CoplanarCount())
	}
	b.WriteString("\n")

	if g.showHelp {
		b.WriteString("F/B front/back child, P parent, R root\n")
		b.WriteString("drag or arrows orbit, wheel or +/- zoom, O outline, H help")
	}
	return b.String()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func pathString(path []bsptree.Step) string {
	parts := make([]string, len(path))
	for i, s := range path {
		parts[i] = s.String()
	}
	return strings.Join(parts, "/")
}
