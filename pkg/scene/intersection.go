package scene

import "sort"

// Intersection records one ray/surface crossing: the parametric distance and
// the identifier of the shape that owns the surface. U and V carry the
// barycentric coordinates for triangle variants.
type Intersection struct {
	T      float64
	Object ID
	U, V   float64
}

// Intersections is an ordered collection of intersections.
type Intersections []Intersection

// Sort orders the intersections by ascending t. The sort is stable, so equal
// roots keep their insertion order; which of two coincident surfaces wins a
// tie is deliberately left to that order.
func (xs Intersections) Sort() {
	sort.SliceStable(xs, func(i, j int) bool {
		return xs[i].T < xs[j].T
	})
}

// Hit returns the intersection with the smallest strictly positive t. Among
// equal roots the earliest entry wins.
func (xs Intersections) Hit() (Intersection, bool) {
	best := Intersection{}
	found := false
	for _, is := range xs {
		if is.T <= 0 {
			continue
		}
		if !found || is.T < best.T {
			best = is
			found = true
		}
	}
	return best, found
}
