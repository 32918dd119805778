package bsptree

// Step is one move from a node to one of its children.
type Step int

const (
	StepFront Step = iota
	StepBack
)

func (s Step) String() string {
	if s == StepFront {
		return "front"
	}
	return "back"
}

// Navigator walks a tree one node at a time, keeping the path from the root.
// Moves that would leave the tree are ignored and report false.
type Navigator struct {
	tree  *Tree
	nodes []*Node
	path  []Step
}

func NewNavigator(t *Tree) *Navigator {
	n := &Navigator{tree: t}
	n.GoRoot()
	return n
}

// Current returns the node the navigator is on, or nil for an empty tree.
func (n *Navigator) Current() *Node {
	if len(n.nodes) == 0 {
		return nil
	}
	return n.nodes[len(n.nodes)-1]
}

func (n *Navigator) GoFront() bool {
	return n.goTo(StepFront)
}

func (n *Navigator) GoBack() bool {
	return n.goTo(StepBack)
}

func (n *Navigator) goTo(step Step) bool {
	current := n.Current()
	if current == nil {
		return false
	}

	child := current.front
	if step == StepBack {
		child = current.back
	}
	if child == nil {
		return false
	}

	n.nodes = append(n.nodes, child)
	n.path = append(n.path, step)
	return true
}

func (n *Navigator) GoParent() bool {
	if len(n.path) == 0 {
		return false
	}
	n.nodes = n.nodes[:len(n.nodes)-1]
	n.path = n.path[:len(n.path)-1]
	return true
}

func (n *Navigator) GoRoot() {
	n.nodes = n.nodes[:0]
	n.path = n.path[:0]
	if n.tree != nil && n.tree.root != nil {
		n.nodes = append(n.nodes, n.tree.root)
	}
}

// Depth is the number of steps taken from the root.
func (n *Navigator) Depth() int {
	return len(n.path)
}

// Path returns a copy of the steps taken from the root.
func (n *Navigator) Path() []Step {
	return append([]Step(nil), n.path...)
}

// Subtree returns a tree rooted at the current node. It shares nodes with the
// original tree.
func (n *Navigator) Subtree() *Tree {
	if n.tree == nil {
		return New()
	}
	return &Tree{root: n.Current(), epsilon: n.tree.epsilon}
}
