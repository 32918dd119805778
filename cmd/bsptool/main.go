package main

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"syscall"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/segmentio/encoding/json"
	"github.com/smasonuk/bsptree"
)

// The bsptool version number. Set at build.
var version = "v0.1.0"

// Keeps config field names readable to the cli package under obfuscation.
var _ = reflect.TypeOf(config{})

type config struct {
	Scenes      []string `cli:"" env:"BSPTREE_SCENES"       help:"Comma separated scene files (.dxf, .ply, .json, .yaml)."`
	Generate    []string `cli:"" env:"BSPTREE_GENERATE"     help:"Comma separated generated scenes (random-cubes|rotated-cubes|terrain)."`
	Seed        int      `cli:"" env:"BSPTREE_SEED"         help:"Seed for generated scenes."`
	Count       int      `cli:"" env:"BSPTREE_COUNT"        help:"Number of cubes in generated cube scenes."`
	Selector    string   `cli:"" env:"BSPTREE_SELECTOR"     help:"Splitting plane selector (first|least-splits|balanced)."`
	SplitWeight int      `cli:"" env:"BSPTREE_SPLIT_WEIGHT" help:"Cost of a split for the balanced selector."`
	Epsilon     float64  `cli:"" env:"BSPTREE_EPSILON"      help:"Plane classification tolerance."`
	Eyes        string   `cli:"" env:"BSPTREE_EYES"         help:"Semicolon separated eye positions to traverse from, each x,y,z."`
	Order       string   `cli:"" env:"BSPTREE_ORDER"        help:"Traversal order (back-to-front|front-to-back)."`
	Dump        string   `cli:"" env:"BSPTREE_DUMP"         help:"Writes the traversal of the first scene from the first eye to this .dxf, .ply, .json or .yaml file."`
	Workers     int      `cli:"" env:"BSPTREE_WORKERS"      help:"Number of scenes loaded and built concurrently."`
	MetricsFile string   `cli:"" env:"BSPTREE_METRICS_FILE" help:"Writes build metrics to this Prometheus textfile."`
	LogLevel    string   `cli:"" env:"BSPTREE_LOG_LEVEL"    help:"Log level (debug|info|warning|error)."`
	LogIndent   bool     `cli:"" env:"BSPTREE_LOG_INDENT"   help:"Indent logs."`
	Version     bool     `cli:"" env:"-"                    help:"Show version."`
	Help        bool     `cli:"" env:"-"                    help:"Show help."`
}

func defaultConfig() config {
	return config{
		Seed:        42,
		Selector:    selectorFirst,
		SplitWeight: bsptree.DefaultSplitWeight,
		Epsilon:     bsptree.PlaneEpsilon,
		Order:       orderBackToFront,
		Workers:     4,
		LogLevel:    logs.InfoLevel.String(),
	}
}

func main() {
	conf := defaultConfig()

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Builds BSP trees from scenes and reports their shape and traversal order.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	if err := run(ctx, conf); err != nil {
		logs.Fatal(err)
	}
}

func validateConfig(conf config) error {
	if len(conf.Scenes) == 0 && len(conf.Generate) == 0 {
		return errors.New("have to specify at least one scene or generated scene")
	}

	if _, err := selectorByName(conf.Selector, conf.SplitWeight); err != nil {
		return err
	}

	if conf.Order != orderBackToFront && conf.Order != orderFrontToBack {
		return errors.New("invalid traversal order").WithTag("order", conf.Order)
	}

	if conf.Epsilon <= 0 {
		return errors.New("epsilon must be positive").WithTag("epsilon", conf.Epsilon)
	}

	if conf.Workers <= 0 {
		return errors.New("workers must be positive").WithTag("workers", conf.Workers)
	}

	if _, err := parseEyes(conf.Eyes); err != nil {
		return err
	}

	if conf.Dump != "" && conf.Eyes == "" {
		return errors.New("dump needs at least one eye")
	}
	return nil
}
