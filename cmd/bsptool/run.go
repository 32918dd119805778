package main

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/smasonuk/bsptree"
	"github.com/smasonuk/bsptree/internal/metrics"
	"github.com/smasonuk/bsptree/scene"
	"golang.org/x/sync/errgroup"
)

const (
	selectorFirst       = "first"
	selectorLeastSplits = "least-splits"
	selectorBalanced    = "balanced"

	orderBackToFront = "back-to-front"
	orderFrontToBack = "front-to-back"

	generateRandomCubes  = "random-cubes"
	generateRotatedCubes = "rotated-cubes"
	generateTerrain      = "terrain"
)

func selectorByName(name string, splitWeight int) (bsptree.PlaneSelector, error) {
	switch name {
	case selectorFirst, "":
		return bsptree.FirstPolygon{}, nil
	case selectorLeastSplits:
		return bsptree.LeastSplits{}, nil
	case selectorBalanced:
		return bsptree.Balanced{SplitWeight: splitWeight}, nil
	default:
		return nil, errors.New("unknown selector").WithTag("selector", name)
	}
}

// parseEyes reads "x,y,z;x,y,z". An empty string yields no eyes.
func parseEyes(s string) ([]mgl64.Vec3, error) {
	var eyes []mgl64.Vec3
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		coords := strings.Split(part, ",")
		if len(coords) != 3 {
			return nil, errors.New("eye must have 3 coordinates").WithTag("eye", part)
		}

		var eye mgl64.Vec3
		for i, c := range coords {
			v, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
			if err != nil {
				return nil, errors.New("invalid eye coordinate").
					WithTag("eye", part).
					Wrap(err)
			}
			eye[i] = v
		}
		eyes = append(eyes, eye)
	}
	return eyes, nil
}

type source struct {
	name string
	load func() ([]bsptree.Shape, error)
}

func sources(conf config) ([]source, error) {
	var srcs []source
	// Scenes are named by path so that equal file names in different
	// directories keep their own metrics.
	for _, path := range conf.Scenes {
		srcs = append(srcs, source{
			name: path,
			load: func() ([]bsptree.Shape, error) { return scene.Load(path) },
		})
	}

	cubes := scene.RandomCubesOptions{Seed: uint64(conf.Seed), Count: conf.Count}
	for _, name := range conf.Generate {
		var load func() ([]bsptree.Shape, error)
		switch name {
		case generateRandomCubes:
			load = func() ([]bsptree.Shape, error) { return scene.RandomCubes(cubes), nil }
		case generateRotatedCubes:
			load = func() ([]bsptree.Shape, error) { return scene.RandomRotatedCubes(cubes) }
		case generateTerrain:
			load = func() ([]bsptree.Shape, error) {
				return scene.Terrain(scene.TerrainOptions{Seed: int64(conf.Seed)}), nil
			}
		default:
			return nil, errors.New("unknown generated scene").WithTag("name", name)
		}
		srcs = append(srcs, source{name: name, load: load})
	}
	return srcs, nil
}

// run loads and builds every scene concurrently, then traverses each tree
// from every eye in scene order.
func run(ctx context.Context, conf config) error {
	buildID := uuid.NewString()

	selector, err := selectorByName(conf.Selector, conf.SplitWeight)
	if err != nil {
		return err
	}

	eyes, err := parseEyes(conf.Eyes)
	if err != nil {
		return err
	}

	srcs, err := sources(conf)
	if err != nil {
		return err
	}

	reg := metrics.New()
	trees := make([]*bsptree.Tree, len(srcs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(conf.Workers)
	for i, src := range srcs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			shapes, err := src.load()
			if err != nil {
				return errors.New("loading scene failed").
					WithTag("scene", src.name).
					Wrap(err)
			}

			tree, err := bsptree.Build(shapes, selector, bsptree.WithEpsilon(conf.Epsilon))
			if err != nil {
				reg.ObserveError(src.name, conf.Selector)
				return errors.New("building tree failed").
					WithTag("scene", src.name).
					Wrap(err)
			}
			reg.Observe(src.name, conf.Selector, tree.Stats())

			stats := tree.Stats()
			logs.WithTag("build_id", buildID).
				WithTag("scene", src.name).
				WithTag("selector", conf.Selector).
				WithTag("input", stats.Input).
				WithTag("polygons", stats.Polygons).
				WithTag("nodes", stats.Nodes).
				WithTag("leaves", stats.Leaves).
				WithTag("depth", stats.Depth).
				WithTag("splits", stats.Splits).
				WithTag("duration", stats.Duration).
				Info("tree built")

			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, tree := range trees {
		for _, eye := range eyes {
			order := traverse(tree, eye, conf.Order)

			var first, last mgl64.Vec3
			if len(order) > 0 {
				first, last = order[0].Centroid(), order[len(order)-1].Centroid()
			}

			logs.WithTag("build_id", buildID).
				WithTag("scene", srcs[i].name).
				WithTag("eye", eye).
				WithTag("order", conf.Order).
				WithTag("polygons", len(order)).
				WithTag("first", first).
				WithTag("last", last).
				Info("tree traversed")
		}
	}

	if conf.Dump != "" && len(trees) > 0 && len(eyes) > 0 {
		if err := dump(conf.Dump, traverse(trees[0], eyes[0], conf.Order)); err != nil {
			return err
		}
		logs.WithTag("build_id", buildID).
			WithTag("path", conf.Dump).
			Info("traversal written")
	}

	if conf.MetricsFile != "" {
		if err := reg.WriteTextfile(conf.MetricsFile); err != nil {
			return errors.New("writing metrics failed").
				WithTag("path", conf.MetricsFile).
				Wrap(err)
		}
	}
	return nil
}

func traverse(tree *bsptree.Tree, eye mgl64.Vec3, order string) []*bsptree.Polygon {
	var v bsptree.CollectingVisitor
	if order == orderFrontToBack {
		tree.TraverseFrontToBack(eye, &v)
	} else {
		tree.TraverseBackToFront(eye, &v)
	}
	return v.Polygons()
}

func dump(path string, polygons []*bsptree.Polygon) error {
	format, err := scene.ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.New("creating dump file failed").
			WithTag("path", path).
			Wrap(err)
	}
	defer f.Close()

	if err := scene.Encode(f, format, polygons); err != nil {
		return errors.New("writing dump failed").
			WithTag("path", path).
			Wrap(err)
	}
	return f.Close()
}
