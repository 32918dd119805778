package bsptree

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// BuildOption customizes a Build call.
type BuildOption func(*buildConfig)

type buildConfig struct {
	epsilon float64
}

// WithEpsilon sets the classification tolerance for the whole build. Both
// the side tests and the splits use it. Non-positive values are ignored.
func WithEpsilon(epsilon float64) BuildOption {
	return func(c *buildConfig) {
		if epsilon > 0 {
			c.epsilon = epsilon
		}
	}
}

// Stats describes a built tree.
type Stats struct {
	// Input is the number of shapes given to Build.
	Input int

	// Polygons is the number of polygons stored in the tree. It exceeds
	// Input by one for every split that kept both halves.
	Polygons int

	Nodes  int
	Leaves int
	Depth  int

	// Splits is the number of spanning polygons cut during the build.
	Splits int

	Duration time.Duration
}

type buildTask struct {
	polygons []*Polygon
	slot     **Node
	depth    int
}

// Build partitions shapes into a tree. Every shape is lowered to a Polygon
// first. A nil selector means FirstPolygon. An EpsilonSelector is given the
// tolerance of the build.
//
// Build fails when a shape is nil or degenerate, or when the selector does
// not return a valid index. Build does not log; callers report Stats.
func Build(shapes []Shape, selector PlaneSelector, options ...BuildOption) (*Tree, error) {
	start := time.Now()

	conf := buildConfig{epsilon: PlaneEpsilon}
	for _, opt := range options {
		opt(&conf)
	}

	if selector == nil {
		selector = FirstPolygon{}
	}
	if es, ok := selector.(EpsilonSelector); ok {
		selector = es.WithEpsilon(conf.epsilon)
	}

	polygons := make([]*Polygon, len(shapes))
	for i, s := range shapes {
		if s == nil {
			return nil, errors.New("shape cannot be nil").
				WithType(ErrTypeInvalidGeometry).
				WithTag("index", i)
		}
		p := s.Polygon()
		if _, ok := p.UnitNormal(); !ok {
			return nil, errors.New("shape has no normal").
				WithType(ErrTypeDegenerate).
				WithTag("index", i).
				WithTag("centroid", p.Centroid())
		}
		polygons[i] = p
	}

	t := &Tree{epsilon: conf.epsilon}
	t.stats.Input = len(shapes)

	stack := []buildTask{{polygons: polygons, slot: &t.root, depth: 1}}
	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node, front, back, err := t.partition(task.polygons, selector, task.depth)
		if err != nil {
			return nil, err
		}
		if node == nil {
			continue
		}
		*task.slot = node

		if len(back) > 0 {
			stack = append(stack, buildTask{polygons: back, slot: &node.back, depth: task.depth + 1})
		}
		if len(front) > 0 {
			stack = append(stack, buildTask{polygons: front, slot: &node.front, depth: task.depth + 1})
		}
	}

	t.collectStats()
	t.stats.Duration = time.Since(start)
	return t, nil
}

// partition turns one polygon list into a node and the lists for its two
// children. polygons is reordered in place.
func (t *Tree) partition(polygons []*Polygon, selector PlaneSelector, depth int) (node *Node, front, back []*Polygon, err error) {
	if len(polygons) == 0 {
		return nil, nil, nil, nil
	}

	index, ok := selector.Select(polygons)
	if !ok {
		return nil, nil, nil, errors.New("selector returned no polygon").
			WithType(ErrTypeInvalidGeometry).
			WithTag("polygons", len(polygons)).
			WithTag("depth", depth)
	}
	if index < 0 || index >= len(polygons) {
		return nil, nil, nil, errors.Newf("selector returned out of range index %d", index).
			WithType(ErrTypeInvalidGeometry).
			WithTag("polygons", len(polygons)).
			WithTag("depth", depth)
	}

	splitter := polygons[index]
	last := len(polygons) - 1
	polygons[index] = polygons[last]
	rest := polygons[:last]

	plane, err := splitter.Plane()
	if err != nil {
		return nil, nil, nil, errors.New("splitting polygon has no plane").
			WithType(ErrTypeDegenerate).
			WithTag("index", index).
			WithTag("depth", depth).
			WithTag("centroid", splitter.Centroid()).
			Wrap(err)
	}

	node = &Node{plane: plane}
	node.addCoplanar(splitter)

	for _, p := range rest {
		switch p.ClassifyEpsilon(plane, t.epsilon) {
		case ClassFront:
			front = append(front, p)
		case ClassBack:
			back = append(back, p)
		case ClassCoplanar:
			node.addCoplanar(p)
		default:
			f, b := splitPolygon(p, plane, t.epsilon)
			if f != nil {
				front = append(front, f)
			}
			if b != nil {
				back = append(back, b)
			}
			t.stats.Splits++
		}
	}
	return node, front, back, nil
}

func (n *Node) addCoplanar(p *Polygon) {
	if FacesSameDirection(p, n.plane) {
		n.coplanarFront = append(n.coplanarFront, p)
	} else {
		n.coplanarBack = append(n.coplanarBack, p)
	}
}

func (t *Tree) collectStats() {
	t.stats.Depth = t.root.Depth()
	if t.root == nil {
		return
	}

	stack := []*Node{t.root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		t.stats.Nodes++
		t.stats.Polygons += node.CoplanarCount()
		if node.IsLeaf() {
			t.stats.Leaves++
		}
		stack = node.pushChildren(stack)
	}
}
