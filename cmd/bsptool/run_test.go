package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/bsptree"
	"github.com/smasonuk/bsptree/scene"
	"github.com/stretchr/testify/require"
)

func TestParseEyes(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected []mgl64.Vec3
		err      bool
	}{
		{name: "empty", in: ""},
		{name: "one", in: "1,2,3", expected: []mgl64.Vec3{{1, 2, 3}}},
		{name: "two with spaces", in: " 1, 2, 3 ; -4,5.5,0 ", expected: []mgl64.Vec3{{1, 2, 3}, {-4, 5.5, 0}}},
		{name: "too few", in: "1,2", err: true},
		{name: "not a number", in: "1,b,3", err: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			eyes, err := parseEyes(tc.in)
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, eyes)
		})
	}
}

func TestSelectorByName(t *testing.T) {
	s, err := selectorByName(selectorFirst, 0)
	require.NoError(t, err)
	require.Equal(t, bsptree.FirstPolygon{}, s)

	s, err = selectorByName(selectorLeastSplits, 0)
	require.NoError(t, err)
	require.Equal(t, bsptree.LeastSplits{}, s)

	s, err = selectorByName(selectorBalanced, 3)
	require.NoError(t, err)
	require.Equal(t, bsptree.Balanced{SplitWeight: 3}, s)

	_, err = selectorByName("random", 0)
	require.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid := defaultConfig()
	valid.Generate = []string{generateRandomCubes}

	testCases := []struct {
		name   string
		modify func(c *config)
		err    bool
	}{
		{name: "valid", modify: func(c *config) {}},
		{name: "no scenes", modify: func(c *config) { c.Generate = nil }, err: true},
		{name: "bad selector", modify: func(c *config) { c.Selector = "x" }, err: true},
		{name: "bad order", modify: func(c *config) { c.Order = "sideways" }, err: true},
		{name: "bad epsilon", modify: func(c *config) { c.Epsilon = 0 }, err: true},
		{name: "bad eyes", modify: func(c *config) { c.Eyes = "1,2" }, err: true},
		{name: "dump without eye", modify: func(c *config) { c.Dump = "out.json" }, err: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conf := valid
			tc.modify(&conf)
			err := validateConfig(conf)
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	scenePath := filepath.Join(dir, "stack.yaml")
	require.NoError(t, os.WriteFile(scenePath, []byte(`shapes:
  - type: polygon
    vertices: [[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 0]]
  - type: polygon
    vertices: [[0, 0, 5], [1, 0, 5], [1, 1, 5], [0, 1, 5]]
`), 0o600))

	conf := defaultConfig()
	conf.Scenes = []string{scenePath}
	conf.Generate = []string{generateRandomCubes, generateTerrain}
	conf.Count = 5
	conf.Eyes = "0.5,0.5,10;0.5,0.5,-10"
	conf.Dump = filepath.Join(dir, "order.json")
	conf.MetricsFile = filepath.Join(dir, "bsptree.prom")
	require.NoError(t, validateConfig(conf))

	require.NoError(t, run(context.Background(), conf))

	// Back to front from above: the lower square is painted first.
	f, err := os.Open(conf.Dump)
	require.NoError(t, err)
	defer f.Close()

	shapes, err := scene.DecodeJSON(f)
	require.NoError(t, err)
	require.Len(t, shapes, 2)
	require.Equal(t, 0.0, shapes[0].Vertices()[0][2])
	require.Equal(t, 5.0, shapes[1].Vertices()[0][2])

	data, err := os.ReadFile(conf.MetricsFile)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `scene="`+scenePath+`"`))
	require.True(t, strings.Contains(string(data), `scene="terrain"`))
}

func TestRunFailsOnMissingScene(t *testing.T) {
	conf := defaultConfig()
	conf.Scenes = []string{filepath.Join(t.TempDir(), "missing.dxf")}

	require.Error(t, run(context.Background(), conf))
}

func TestRunKeepsScenesWithSameFileName(t *testing.T) {
	dir := t.TempDir()
	squares := map[string]int{"a": 1, "b": 3}

	var paths []string
	for sub, count := range squares {
		require.NoError(t, os.Mkdir(filepath.Join(dir, sub), 0o700))

		var polygons []*bsptree.Polygon
		for i := 0; i < count; i++ {
			z := float64(i)
			polygons = append(polygons, bsptree.MustPolygon(
				mgl64.Vec3{0, 0, z},
				mgl64.Vec3{1, 0, z},
				mgl64.Vec3{1, 1, z},
				mgl64.Vec3{0, 1, z},
			))
		}

		path := filepath.Join(dir, sub, "scene.json")
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, scene.EncodeJSON(f, polygons))
		require.NoError(t, f.Close())
		paths = append(paths, path)
	}

	conf := defaultConfig()
	conf.Scenes = paths
	conf.MetricsFile = filepath.Join(dir, "bsptree.prom")
	require.NoError(t, run(context.Background(), conf))

	data, err := os.ReadFile(conf.MetricsFile)
	require.NoError(t, err)
	require.Contains(t, string(data), `bsptree_polygons{scene="`+filepath.Join(dir, "a", "scene.json")+`",selector="first"} 1`)
	require.Contains(t, string(data), `bsptree_polygons{scene="`+filepath.Join(dir, "b", "scene.json")+`",selector="first"} 3`)
}
