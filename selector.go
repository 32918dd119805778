package bsptree

import "math"

// PlaneSelector picks which polygon's plane splits the next node. Select
// returns an index into polygons, or false when polygons is empty. Build
// fails when false comes back for a non-empty list.
type PlaneSelector interface {
	Select(polygons []*Polygon) (int, bool)
}

// SelectorFunc adapts a function to PlaneSelector.
type SelectorFunc func(polygons []*Polygon) (int, bool)

func (f SelectorFunc) Select(polygons []*Polygon) (int, bool) {
	return f(polygons)
}

// EpsilonSelector is a PlaneSelector that classifies polygons itself.
// WithEpsilon returns a copy using the given tolerance; Build calls it with
// its own so that the selector and the build agree on every side test.
type EpsilonSelector interface {
	PlaneSelector
	WithEpsilon(epsilon float64) PlaneSelector
}

func selectorEpsilon(epsilon float64) float64 {
	if epsilon <= 0 {
		return PlaneEpsilon
	}
	return epsilon
}

// FirstPolygon always picks the first polygon. It is the fastest selector but
// the tree shape then depends entirely on input order.
type FirstPolygon struct{}

func (FirstPolygon) Select(polygons []*Polygon) (int, bool) {
	if len(polygons) == 0 {
		return 0, false
	}
	return 0, true
}

// LeastSplits picks the polygon whose plane spans the fewest other polygons.
// It stops at the first candidate that splits nothing. Cost is quadratic in
// the number of polygons.
type LeastSplits struct {
	// Epsilon is the classification tolerance. Zero means PlaneEpsilon.
	Epsilon float64
}

func (s LeastSplits) WithEpsilon(epsilon float64) PlaneSelector {
	s.Epsilon = epsilon
	return s
}

func (s LeastSplits) Select(polygons []*Polygon) (int, bool) {
	if len(polygons) == 0 {
		return 0, false
	}

	epsilon := selectorEpsilon(s.Epsilon)

	leastIndex, leastTotal := 0, math.MaxInt
	for chosen, candidate := range polygons {
		plane, err := candidate.Plane()
		if err != nil {
			continue
		}

		total := 0
		for i, p := range polygons {
			if i == chosen {
				continue
			}
			if p.ClassifyEpsilon(plane, epsilon) == ClassSpanning {
				total++
			}
		}

		if total < leastTotal {
			leastIndex, leastTotal = chosen, total
			if total == 0 {
				break
			}
		}
	}
	return leastIndex, true
}

// Balanced scores every candidate plane as
// splits*SplitWeight + |front-back| and picks the lowest score. Split
// polygons count on both sides.
type Balanced struct {
	// SplitWeight is the cost of one split relative to one polygon of
	// imbalance. Zero means DefaultSplitWeight.
	SplitWeight int

	// Epsilon is the classification tolerance. Zero means PlaneEpsilon.
	Epsilon float64
}

func (b Balanced) WithEpsilon(epsilon float64) PlaneSelector {
	b.Epsilon = epsilon
	return b
}

// DefaultSplitWeight is the split cost used by the classic Doom node builders.
const DefaultSplitWeight = 8

func (b Balanced) Select(polygons []*Polygon) (int, bool) {
	if len(polygons) == 0 {
		return 0, false
	}

	weight := b.SplitWeight
	if weight <= 0 {
		weight = DefaultSplitWeight
	}
	epsilon := selectorEpsilon(b.Epsilon)

	bestIndex, bestCost := 0, math.MaxInt
	for chosen, candidate := range polygons {
		plane, err := candidate.Plane()
		if err != nil {
			continue
		}

		var front, back, splits int
		for i, p := range polygons {
			if i == chosen {
				continue
			}
			switch p.ClassifyEpsilon(plane, epsilon) {
			case ClassFront:
				front++
			case ClassBack:
				back++
			case ClassSpanning:
				splits++
				front++
				back++
			}
		}

		imbalance := front - back
		if imbalance < 0 {
			imbalance = -imbalance
		}
		if cost := splits*weight + imbalance; cost < bestCost {
			bestIndex, bestCost = chosen, cost
		}
	}
	return bestIndex, true
}
