package main

import (
	"fmt"
	"os"
	"reflect"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/segmentio/encoding/json"
	"github.com/smasonuk/bsptree"
	"github.com/smasonuk/bsptree/internal/view"
	"github.com/smasonuk/bsptree/scene"
)

// The bspview version number. Set at build.
var version = "v0.1.0"

var _ = reflect.TypeOf(config{})

type config struct {
	Scene       string `cli:"" env:"BSPVIEW_SCENE"        help:"Scene file to view (.dxf, .ply, .json, .yaml). Random cubes are generated when empty."`
	Terrain     bool   `cli:"" env:"BSPVIEW_TERRAIN"      help:"Generate a terrain instead of random cubes."`
	Seed        int    `cli:"" env:"BSPVIEW_SEED"         help:"Seed for generated scenes."`
	Count       int    `cli:"" env:"BSPVIEW_COUNT"        help:"Number of generated cubes."`
	Selector    string `cli:"" env:"BSPVIEW_SELECTOR"     help:"Splitting plane selector (first|least-splits|balanced)."`
	SplitWeight int    `cli:"" env:"BSPVIEW_SPLIT_WEIGHT" help:"Cost of a split for the balanced selector."`
	Width       int    `cli:"" env:"BSPVIEW_WIDTH"        help:"Window width."`
	Height      int    `cli:"" env:"BSPVIEW_HEIGHT"       help:"Window height."`
	Outline     bool   `cli:"" env:"BSPVIEW_OUTLINE"      help:"Outline polygons."`
	LogLevel    string `cli:"" env:"BSPVIEW_LOG_LEVEL"    help:"Log level (debug|info|warning|error)."`
	Version     bool   `cli:"" env:"-"                    help:"Show version."`
	Help        bool   `cli:"" env:"-"                    help:"Show help."`
}

func main() {
	conf := config{
		Seed:        42,
		Count:       scene.DefaultRandomCubes.Count,
		Selector:    "first",
		SplitWeight: bsptree.DefaultSplitWeight,
		Width:       640,
		Height:      480,
		LogLevel:    logs.InfoLevel.String(),
	}

	cli.Register().
		Help("Shows a BSP tree drawn back to front and lets its branches be inspected.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	errors.Encoder = json.Marshal

	shapes, err := loadShapes(conf)
	if err != nil {
		logs.Fatal(err)
	}

	selector, err := selectorByName(conf.Selector, conf.SplitWeight)
	if err != nil {
		logs.Fatal(err)
	}

	tree, err := bsptree.Build(shapes, selector)
	if err != nil {
		logs.Fatal(errors.New("building tree failed").Wrap(err))
	}

	stats := tree.Stats()
	logs.WithTag("input", stats.Input).
		WithTag("polygons", stats.Polygons).
		WithTag("nodes", stats.Nodes).
		WithTag("depth", stats.Depth).
		WithTag("splits", stats.Splits).
		WithTag("duration", stats.Duration).
		Info("tree built")

	camera := view.FrameCamera(tree.CollectPolygons())
	game := NewGame(tree, camera, conf.Width, conf.Height, conf.Outline)

	ebiten.SetWindowSize(conf.Width, conf.Height)
	ebiten.SetWindowTitle("bspview")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil {
		logs.Fatal(err)
	}
}

func loadShapes(conf config) ([]bsptree.Shape, error) {
	switch {
	case conf.Scene != "":
		return scene.Load(conf.Scene)
	case conf.Terrain:
		return scene.Terrain(scene.TerrainOptions{Seed: int64(conf.Seed)}), nil
	default:
		return scene.RandomCubes(scene.RandomCubesOptions{
			Seed:  uint64(conf.Seed),
			Count: conf.Count,
		}), nil
	}
}

func selectorByName(name string, splitWeight int) (bsptree.PlaneSelector, error) {
	switch name {
	case "first", "":
		return bsptree.FirstPolygon{}, nil
	case "least-splits":
		return bsptree.LeastSplits{}, nil
	case "balanced":
		return bsptree.Balanced{SplitWeight: splitWeight}, nil
	default:
		return nil, errors.New("unknown selector").WithTag("selector", name)
	}
}
