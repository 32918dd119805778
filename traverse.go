package bsptree

import (
	"iter"

	"github.com/go-gl/mathgl/mgl64"
)

// TraverseFrontToBack visits the coplanar groups nearest to eye first.
func (t *Tree) TraverseFrontToBack(eye mgl64.Vec3, v Visitor) {
	walk(t.root, eye, t.epsilon, true, func(polygons []*Polygon) bool {
		v.Visit(polygons)
		return true
	})
}

// TraverseBackToFront visits the coplanar groups farthest from eye first,
// which is the painter's algorithm order.
func (t *Tree) TraverseBackToFront(eye mgl64.Vec3, v Visitor) {
	walk(t.root, eye, t.epsilon, false, func(polygons []*Polygon) bool {
		v.Visit(polygons)
		return true
	})
}

// FrontToBack returns the front-to-back order as a single-use sequence.
func (t *Tree) FrontToBack(eye mgl64.Vec3) iter.Seq[[]*Polygon] {
	return func(yield func([]*Polygon) bool) {
		walk(t.root, eye, t.epsilon, true, yield)
	}
}

// BackToFront returns the back-to-front order as a single-use sequence.
func (t *Tree) BackToFront(eye mgl64.Vec3) iter.Seq[[]*Polygon] {
	return func(yield func([]*Polygon) bool) {
		walk(t.root, eye, t.epsilon, false, yield)
	}
}

// walkStep is either a node still to expand or a coplanar group to emit.
type walkStep struct {
	node  *Node
	group []*Polygon
}

// walk runs an in-order traversal on an explicit stack. For each node the
// child on the eye's side is near; an eye on the plane counts as in front.
// The walk stops as soon as yield returns false.
func walk(root *Node, eye mgl64.Vec3, epsilon float64, nearFirst bool, yield func([]*Polygon) bool) {
	if root == nil {
		return
	}

	stack := []walkStep{{node: root}}
	for len(stack) > 0 {
		step := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if step.node == nil {
			if !yield(step.group) {
				return
			}
			continue
		}

		node := step.node
		near, far := node.front, node.back
		if node.plane.ClassifyPointEpsilon(eye, epsilon) == Back {
			near, far = far, near
		}

		first, last := far, near
		if nearFirst {
			first, last = near, far
		}

		// Pushed in reverse: last child, the group, then first child.
		if last != nil {
			stack = append(stack, walkStep{node: last})
		}
		if node.CoplanarCount() > 0 {
			stack = append(stack, walkStep{group: node.Coplanar()})
		}
		if first != nil {
			stack = append(stack, walkStep{node: first})
		}
	}
}
