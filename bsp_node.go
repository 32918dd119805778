package bsptree

// Node is one partition of a Tree. It holds the splitting plane, the polygons
// lying on that plane split by facing, and up to two children.
type Node struct {
	plane         Plane
	coplanarFront []*Polygon
	coplanarBack  []*Polygon
	front         *Node
	back          *Node
}

func (n *Node) Plane() Plane {
	return n.plane
}

// CoplanarFront returns the on-plane polygons whose normal agrees with the
// plane normal.
func (n *Node) CoplanarFront() []*Polygon {
	return n.coplanarFront
}

// CoplanarBack returns the on-plane polygons facing away from the plane
// normal.
func (n *Node) CoplanarBack() []*Polygon {
	return n.coplanarBack
}

// Coplanar returns the front-facing then the back-facing on-plane polygons in
// a new slice.
func (n *Node) Coplanar() []*Polygon {
	polygons := make([]*Polygon, 0, n.CoplanarCount())
	polygons = append(polygons, n.coplanarFront...)
	return append(polygons, n.coplanarBack...)
}

func (n *Node) CoplanarCount() int {
	return len(n.coplanarFront) + len(n.coplanarBack)
}

// Front returns the subtree in front of the plane, or nil.
func (n *Node) Front() *Node {
	return n.front
}

// Back returns the subtree behind the plane, or nil.
func (n *Node) Back() *Node {
	return n.back
}

func (n *Node) IsLeaf() bool {
	return n.front == nil && n.back == nil
}

// PolygonCount returns the number of polygons stored in the subtree.
func (n *Node) PolygonCount() int {
	if n == nil {
		return 0
	}

	count := 0
	stack := []*Node{n}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		count += node.CoplanarCount()
		stack = node.pushChildren(stack)
	}
	return count
}

// Depth returns the number of nodes on the longest root-to-leaf path of the
// subtree. A nil node has depth 0.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}

	type item struct {
		node  *Node
		depth int
	}

	maxDepth := 0
	stack := []item{{node: n, depth: 1}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		maxDepth = max(maxDepth, it.depth)
		if it.node.back != nil {
			stack = append(stack, item{node: it.node.back, depth: it.depth + 1})
		}
		if it.node.front != nil {
			stack = append(stack, item{node: it.node.front, depth: it.depth + 1})
		}
	}
	return maxDepth
}

// pushChildren pushes back then front so that front is popped first.
func (n *Node) pushChildren(stack []*Node) []*Node {
	if n.back != nil {
		stack = append(stack, n.back)
	}
	if n.front != nil {
		stack = append(stack, n.front)
	}
	return stack
}
