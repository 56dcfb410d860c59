package scene

import (
	"fmt"

	"github.com/davfry/go-whitted-raytracer/pkg/core"
)

// Graph is the shape arena. Shapes are stored by value and addressed by ID;
// each non-root shape has exactly one recorded parent. The parent relation
// is a non-owning back-reference used only to compose transforms, so the
// tree needs no shared mutable ownership and can never form a cycle as long
// as AddChild rejects ancestor insertion.
type Graph struct {
	shapes  []Shape
	parents []ID
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{}
}

// Add copies the shape into the arena and returns its identifier
func (g *Graph) Add(s Shape) ID {
	id := ID(len(g.shapes))
	s.id = id
	g.shapes = append(g.shapes, s)
	g.parents = append(g.parents, NoParent)
	return id
}

// Len returns the number of shapes in the arena
func (g *Graph) Len() int {
	return len(g.shapes)
}

// Shape returns the shape stored under id
func (g *Graph) Shape(id ID) *Shape {
	return &g.shapes[id]
}

// Parent returns the recorded parent of id, if any
func (g *Graph) Parent(id ID) (ID, bool) {
	p := g.parents[id]
	return p, p != NoParent
}

// Roots returns every shape without a parent, in insertion order
func (g *Graph) Roots() []ID {
	var roots []ID
	for id := range g.shapes {
		if g.parents[id] == NoParent {
			roots = append(roots, ID(id))
		}
	}
	return roots
}

// AddChild links child under group. It fails if group is not a Group, if the
// child already has a parent, or if the link would make a shape its own
// ancestor; rejecting those up front preserves the forest invariant that
// every traversal toward the root terminates.
func (g *Graph) AddChild(group, child ID) error {
	if g.shapes[group].kind != KindGroup {
		return fmt.Errorf("scene: shape %d is not a group", group)
	}
	if g.parents[child] != NoParent {
		return fmt.Errorf("scene: shape %d already has a parent", child)
	}
	for id := group; id != NoParent; id = g.parents[id] {
		if id == child {
			return fmt.Errorf("scene: adding shape %d under %d would create a cycle", child, group)
		}
	}

	g.shapes[group].children = append(g.shapes[group].children, child)
	g.parents[child] = group
	g.refreshBounds(group)
	return nil
}

// RemoveChild unlinks child from its group
func (g *Graph) RemoveChild(group, child ID) error {
	parent := g.parents[child]
	if parent != group {
		return fmt.Errorf("scene: shape %d is not a child of %d", child, group)
	}

	children := g.shapes[group].children
	for i, c := range children {
		if c == child {
			g.shapes[group].children = append(children[:i], children[i+1:]...)
			break
		}
	}
	g.parents[child] = NoParent
	g.refreshBounds(group)
	return nil
}

// SetTransform replaces the shape's transform and recomputes the bounds of
// every enclosing group
func (g *Graph) SetTransform(id ID, m core.Matrix4) {
	g.shapes[id].SetTransform(m)
	if p := g.parents[id]; p != NoParent {
		g.refreshBounds(p)
	}
}

// refreshBounds recomputes a group's box from its children, then walks up.
// Recomputation is O(children) per level; no incremental update is kept.
func (g *Graph) refreshBounds(group ID) {
	for id := group; id != NoParent; id = g.parents[id] {
		box := core.EmptyAABB()
		for _, child := range g.shapes[id].children {
			box = box.Union(g.shapes[child].ParentSpaceBounds())
		}
		g.shapes[id].bounds = box
	}
}

// Divide recursively splits oversized groups into sub-groups so that group
// bounds prune more rays. A group with at least threshold children has its
// box halved along the longest axis; children whose bounds fit entirely
// inside one half move into a new sub-group for that half, the rest stay
// direct children. Intersection results are unchanged, only the tree shape.
func (g *Graph) Divide(id ID, threshold int) {
	if g.shapes[id].kind != KindGroup {
		return
	}
	if threshold > 0 && len(g.shapes[id].children) >= threshold {
		g.partitionChildren(id)
	}
	for _, child := range g.shapes[id].children {
		g.Divide(child, threshold)
	}
}

// partitionChildren buckets a group's children into the two halves of its
// bounding box and wraps each non-empty bucket in a sub-group
func (g *Graph) partitionChildren(id ID) {
	leftBox, rightBox := g.shapes[id].bounds.Split()

	var left, right, remain []ID
	for _, child := range g.shapes[id].children {
		box := g.shapes[child].ParentSpaceBounds()
		switch {
		case leftBox.ContainsBox(box):
			left = append(left, child)
		case rightBox.ContainsBox(box):
			right = append(right, child)
		default:
			remain = append(remain, child)
		}
	}
	if len(left) == 0 && len(right) == 0 {
		return
	}

	g.shapes[id].children = remain
	for _, bucket := range [][]ID{left, right} {
		if len(bucket) == 0 {
			continue
		}
		sub := g.Add(NewGroup())
		for _, child := range bucket {
			g.parents[child] = sub
		}
		g.shapes[sub].children = bucket
		g.parents[sub] = id
		g.shapes[id].children = append(g.shapes[id].children, sub)
		g.refreshBounds(sub)
	}
}

// WorldToObject converts a world-space point into id's object space by
// composing the inverse transforms from the root down to the shape
func (g *Graph) WorldToObject(id ID, point core.Tuple) core.Tuple {
	if p := g.parents[id]; p != NoParent {
		point = g.WorldToObject(p, point)
	}
	return g.shapes[id].inverse.MultiplyTuple(point)
}

// NormalToWorld converts an object-space normal into world space through the
// inverse-transpose chain from the shape up to the root, renormalizing at
// each level
func (g *Graph) NormalToWorld(id ID, normal core.Tuple) core.Tuple {
	n := g.shapes[id].inverseTranspose.MultiplyTuple(normal)
	n.W = 0
	n = n.Normalize()
	if p := g.parents[id]; p != NoParent {
		n = g.NormalToWorld(p, n)
	}
	return n
}

// NormalAt computes the world-space surface normal at a world-space point.
// hit supplies barycentric coordinates for triangle variants and may be nil
// otherwise.
func (g *Graph) NormalAt(id ID, worldPoint core.Tuple, hit *Intersection) core.Tuple {
	localPoint := g.WorldToObject(id, worldPoint)
	localNormal := g.shapes[id].localNormalAt(localPoint, hit)
	return g.NormalToWorld(id, localNormal)
}

// Intersect intersects a ray, given in the shape's parent space, against the
// shape and, for groups, its subtree. Group results are merged unsorted; the
// caller sorts once at the top level. A group's bounding box rejects rays
// before any child is visited.
func (g *Graph) Intersect(id ID, ray core.Ray) Intersections {
	s := &g.shapes[id]
	localRay := ray.Transform(s.inverse)

	if s.kind != KindGroup {
		return s.localIntersect(localRay)
	}

	if len(s.children) == 0 || !s.bounds.Hit(localRay) {
		return nil
	}
	var xs Intersections
	for _, child := range s.children {
		xs = append(xs, g.Intersect(child, localRay)...)
	}
	return xs
}
