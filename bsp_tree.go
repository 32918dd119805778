package bsptree

// Tree is an immutable BSP tree. It is built once by Build or FromPolygons and
// is safe for concurrent reads afterwards.
type Tree struct {
	root    *Node
	epsilon float64
	stats   Stats
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{epsilon: PlaneEpsilon}
}

// FromPolygons builds a tree with the FirstPolygon selector.
func FromPolygons(polygons []*Polygon) (*Tree, error) {
	shapes := make([]Shape, len(polygons))
	for i, p := range polygons {
		if p != nil {
			shapes[i] = p
		}
	}
	return Build(shapes, FirstPolygon{})
}

func (t *Tree) IsEmpty() bool {
	return t.root == nil
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Epsilon returns the classification tolerance the tree was built with.
func (t *Tree) Epsilon() float64 {
	return t.epsilon
}

func (t *Tree) PolygonCount() int {
	return t.root.PolygonCount()
}

// Depth returns 0 for an empty tree and 1 for a single node.
func (t *Tree) Depth() int {
	return t.root.Depth()
}

// CollectPolygons flattens the tree in pre-order: each node's coplanar
// polygons, then its front subtree, then its back subtree. The order is not
// a visibility order.
func (t *Tree) CollectPolygons() []*Polygon {
	if t.root == nil {
		return nil
	}

	polygons := make([]*Polygon, 0, t.stats.Polygons)
	stack := []*Node{t.root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		polygons = append(polygons, node.coplanarFront...)
		polygons = append(polygons, node.coplanarBack...)
		stack = node.pushChildren(stack)
	}
	return polygons
}

// Stats returns the figures gathered while building the tree.
func (t *Tree) Stats() Stats {
	return t.stats
}
