package bsptree

// Visitor receives the coplanar polygons of each visited node. The slice is
// only valid during the call.
type Visitor interface {
	Visit(polygons []*Polygon)
}

// VisitorFunc adapts a function to Visitor.
type VisitorFunc func(polygons []*Polygon)

func (f VisitorFunc) Visit(polygons []*Polygon) {
	f(polygons)
}

// CollectingVisitor appends every visited polygon in visit order.
type CollectingVisitor struct {
	polygons []*Polygon
	groups   int
}

func (v *CollectingVisitor) Visit(polygons []*Polygon) {
	v.polygons = append(v.polygons, polygons...)
	v.groups++
}

func (v *CollectingVisitor) Polygons() []*Polygon {
	return v.polygons
}

// Groups returns how many nodes were visited.
func (v *CollectingVisitor) Groups() int {
	return v.groups
}

func (v *CollectingVisitor) Reset() {
	v.polygons = v.polygons[:0]
	v.groups = 0
}
