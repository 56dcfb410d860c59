package scene

import (
	"math"
	"testing"

	"github.com/davfry/go-whitted-raytracer/pkg/core"
)

func TestGraph_Add(t *testing.T) {
	g := NewGraph()
	a := g.Add(NewSphere())
	b := g.Add(NewCube())

	if a != 0 || b != 1 {
		t.Errorf("expected sequential ids, got %v %v", a, b)
	}
	if g.Len() != 2 {
		t.Errorf("len: got %d", g.Len())
	}
	if g.Shape(a).Kind() != KindSphere || g.Shape(b).Kind() != KindCube {
		t.Error("shapes stored under the wrong ids")
	}
	if _, ok := g.Parent(a); ok {
		t.Error("fresh shape should have no parent")
	}
}

func TestGraph_Roots(t *testing.T) {
	g := NewGraph()
	group := g.Add(NewGroup())
	child := g.Add(NewSphere())
	loose := g.Add(NewPlane())

	if err := g.AddChild(group, child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	roots := g.Roots()
	if len(roots) != 2 || roots[0] != group || roots[1] != loose {
		t.Errorf("expected roots [%v %v], got %v", group, loose, roots)
	}
}

func TestGraph_AddChild(t *testing.T) {
	g := NewGraph()
	group := g.Add(NewGroup())
	child := g.Add(NewSphere())

	if err := g.AddChild(group, child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	p, ok := g.Parent(child)
	if !ok || p != group {
		t.Errorf("parent: expected %v, got %v", group, p)
	}
	children := g.Shape(group).Children()
	if len(children) != 1 || children[0] != child {
		t.Errorf("children: got %v", children)
	}
}

func TestGraph_AddChildErrors(t *testing.T) {
	g := NewGraph()
	sphere := g.Add(NewSphere())
	other := g.Add(NewSphere())

	// only groups take children
	if err := g.AddChild(sphere, other); err == nil {
		t.Error("expected an error when the parent is not a group")
	}

	g2 := NewGraph()
	groupA := g2.Add(NewGroup())
	groupB := g2.Add(NewGroup())
	child := g2.Add(NewSphere())

	if err := g2.AddChild(groupA, child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	// a shape has at most one parent
	if err := g2.AddChild(groupB, child); err == nil {
		t.Error("expected an error when the child already has a parent")
	}

	// self-links and ancestor links are cycles
	if err := g2.AddChild(groupA, groupA); err == nil {
		t.Error("expected an error for a self-link")
	}
	if err := g2.AddChild(groupA, groupB); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := g2.AddChild(groupB, groupA); err == nil {
		t.Error("expected an error for an ancestor link")
	}
}

func TestGraph_RemoveChild(t *testing.T) {
	g := NewGraph()
	group := g.Add(NewGroup())
	child := g.Add(NewSphere())

	if err := g.AddChild(group, child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := g.RemoveChild(group, child); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}

	if _, ok := g.Parent(child); ok {
		t.Error("child should be detached")
	}
	if len(g.Shape(group).Children()) != 0 {
		t.Error("group should be empty")
	}

	// the detached shape is a root again and can be re-parented
	if err := g.AddChild(group, child); err != nil {
		t.Errorf("re-adding detached child: %v", err)
	}
}

func TestGraph_IntersectEmptyGroup(t *testing.T) {
	g := NewGraph()
	group := g.Add(NewGroup())

	xs := g.Intersect(group, core.NewRay(core.NewPoint(0, 0, 0), core.NewVector(0, 0, 1)))
	if len(xs) != 0 {
		t.Errorf("expected no intersections, got %v", xs)
	}
}

func TestGraph_IntersectGroup(t *testing.T) {
	g := NewGraph()
	group := g.Add(NewGroup())
	s1 := g.Add(NewSphere())
	s2 := g.Add(NewSphere())
	s3 := g.Add(NewSphere())

	g.SetTransform(s2, core.Translation(0, 0, -3))
	g.SetTransform(s3, core.Translation(5, 0, 0))
	for _, id := range []ID{s1, s2, s3} {
		if err := g.AddChild(group, id); err != nil {
			t.Fatalf("AddChild: %v", err)
		}
	}

	xs := g.Intersect(group, core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1)))
	xs.Sort()

	if len(xs) != 4 {
		t.Fatalf("expected 4 intersections, got %d", len(xs))
	}
	wantObjects := []ID{s2, s2, s1, s1}
	for i, want := range wantObjects {
		if xs[i].Object != want {
			t.Errorf("intersection %d: expected object %v, got %v", i, want, xs[i].Object)
		}
	}
}

func TestGraph_IntersectTransformedGroup(t *testing.T) {
	g := NewGraph()
	group := g.Add(NewGroup())
	sphere := g.Add(NewSphere())

	g.SetTransform(sphere, core.Translation(5, 0, 0))
	if err := g.AddChild(group, sphere); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	g.SetTransform(group, core.Scaling(2, 2, 2))

	xs := g.Intersect(group, core.NewRay(core.NewPoint(10, 0, -10), core.NewVector(0, 0, 1)))
	if len(xs) != 2 {
		t.Fatalf("expected 2 intersections, got %d", len(xs))
	}
	if xs[0].Object != sphere {
		t.Errorf("hits should attribute to the leaf shape, got %v", xs[0].Object)
	}
}

func TestGraph_IntersectGroupAttributesLeaf(t *testing.T) {
	g := NewGraph()
	group := g.Add(NewGroup())
	left := g.Add(NewSphere())
	right := g.Add(NewSphere())

	g.SetTransform(left, core.Translation(-3, 0, 0))
	g.SetTransform(right, core.Translation(3, 0, 0))
	for _, id := range []ID{left, right} {
		if err := g.AddChild(group, id); err != nil {
			t.Fatalf("AddChild: %v", err)
		}
	}

	// aimed at the right sphere only
	xs := g.Intersect(group, core.NewRay(core.NewPoint(3, 0, -5), core.NewVector(0, 0, 1)))
	if len(xs) != 2 {
		t.Fatalf("expected 2 intersections, got %d", len(xs))
	}
	for _, is := range xs {
		if is.Object != right {
			t.Errorf("expected object %v, got %v", right, is.Object)
		}
	}
}

func nestedGroups(t *testing.T, g2Transform core.Matrix4) (*Graph, ID) {
	t.Helper()
	g := NewGraph()
	g1 := g.Add(NewGroup())
	g2 := g.Add(NewGroup())
	sphere := g.Add(NewSphere())

	g.SetTransform(g1, core.RotationY(math.Pi/2))
	g.SetTransform(g2, g2Transform)
	g.SetTransform(sphere, core.Translation(5, 0, 0))

	if err := g.AddChild(g1, g2); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := g.AddChild(g2, sphere); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	return g, sphere
}

func TestGraph_WorldToObject(t *testing.T) {
	g, sphere := nestedGroups(t, core.Scaling(2, 2, 2))

	p := g.WorldToObject(sphere, core.NewPoint(-2, 0, -10))
	if !p.Equals(core.NewPoint(0, 0, -1)) {
		t.Errorf("got %v", p)
	}
}

func TestGraph_NormalToWorld(t *testing.T) {
	g, sphere := nestedGroups(t, core.Scaling(1, 2, 3))

	sqrt3over3 := math.Sqrt(3) / 3
	n := g.NormalToWorld(sphere, core.NewVector(sqrt3over3, sqrt3over3, sqrt3over3))
	expected := core.NewVector(0.2857, 0.4286, -0.8571)
	if math.Abs(n.X-expected.X) > 1e-4 || math.Abs(n.Y-expected.Y) > 1e-4 || math.Abs(n.Z-expected.Z) > 1e-4 {
		t.Errorf("expected %v, got %v", expected, n)
	}
}

func TestGraph_NormalAtChildOfNestedGroups(t *testing.T) {
	g, sphere := nestedGroups(t, core.Scaling(1, 2, 3))

	n := g.NormalAt(sphere, core.NewPoint(1.7321, 1.1547, -5.5774), nil)
	expected := core.NewVector(0.2857, 0.42854, -0.85716)
	if math.Abs(n.X-expected.X) > 1e-4 || math.Abs(n.Y-expected.Y) > 1e-4 || math.Abs(n.Z-expected.Z) > 1e-4 {
		t.Errorf("expected %v, got %v", expected, n)
	}
}

func TestGraph_GroupBounds(t *testing.T) {
	g := NewGraph()
	group := g.Add(NewGroup())

	sphere := g.Add(NewSphere())
	g.SetTransform(sphere, core.Translation(2, 5, -3).Multiply(core.Scaling(2, 2, 2)))

	cyl := g.Add(NewCylinder(-2, 2, false))
	g.SetTransform(cyl, core.Translation(-4, -1, 4).Multiply(core.Scaling(0.5, 1, 0.5)))

	for _, id := range []ID{sphere, cyl} {
		if err := g.AddChild(group, id); err != nil {
			t.Fatalf("AddChild: %v", err)
		}
	}

	b := g.Shape(group).Bounds()
	if !b.Min.Equals(core.NewPoint(-4.5, -3, -5)) || !b.Max.Equals(core.NewPoint(4, 7, 4.5)) {
		t.Errorf("unexpected bounds %v", b)
	}
}

func TestGraph_SetTransformRefreshesGroupBounds(t *testing.T) {
	g := NewGraph()
	outer := g.Add(NewGroup())
	inner := g.Add(NewGroup())
	sphere := g.Add(NewSphere())

	if err := g.AddChild(outer, inner); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := g.AddChild(inner, sphere); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	// moving the leaf grows every enclosing box
	g.SetTransform(sphere, core.Translation(10, 0, 0))

	innerBox := g.Shape(inner).Bounds()
	if !innerBox.Min.Equals(core.NewPoint(9, -1, -1)) || !innerBox.Max.Equals(core.NewPoint(11, 1, 1)) {
		t.Errorf("inner bounds %v", innerBox)
	}
	outerBox := g.Shape(outer).Bounds()
	if !outerBox.Min.Equals(core.NewPoint(9, -1, -1)) || !outerBox.Max.Equals(core.NewPoint(11, 1, 1)) {
		t.Errorf("outer bounds %v", outerBox)
	}
}

func TestGraph_DividePartitionsChildren(t *testing.T) {
	g := NewGraph()
	group := g.Add(NewGroup())

	s1 := g.Add(NewSphere())
	g.SetTransform(s1, core.Translation(-2, -2, 0))
	s2 := g.Add(NewSphere())
	g.SetTransform(s2, core.Translation(-2, 2, 0))
	s3 := g.Add(NewSphere())
	g.SetTransform(s3, core.Scaling(4, 4, 4))

	for _, id := range []ID{s1, s2, s3} {
		if err := g.AddChild(group, id); err != nil {
			t.Fatalf("AddChild: %v", err)
		}
	}

	g.Divide(group, 1)

	// the big sphere fits neither half and stays a direct child
	children := g.Shape(group).Children()
	if len(children) != 2 || children[0] != s3 {
		t.Fatalf("group children: got %v", children)
	}

	// the two small spheres land in a sub-group, split again on y
	sub := g.Shape(children[1])
	if sub.Kind() != KindGroup || len(sub.Children()) != 2 {
		t.Fatalf("sub-group children: got %v", sub.Children())
	}
	lower := g.Shape(sub.Children()[0])
	upper := g.Shape(sub.Children()[1])
	if lower.Kind() != KindGroup || len(lower.Children()) != 1 || lower.Children()[0] != s1 {
		t.Errorf("lower bucket: got %v", lower.Children())
	}
	if upper.Kind() != KindGroup || len(upper.Children()) != 1 || upper.Children()[0] != s2 {
		t.Errorf("upper bucket: got %v", upper.Children())
	}

	// parent links follow the moved children
	if p, _ := g.Parent(s1); p != lower.ID() {
		t.Errorf("s1 parent: got %v", p)
	}
	if p, _ := g.Parent(sub.ID()); p != group {
		t.Errorf("sub-group parent: got %v", p)
	}
}

func TestGraph_DivideBelowThreshold(t *testing.T) {
	g := NewGraph()
	group := g.Add(NewGroup())
	s1 := g.Add(NewSphere())
	s2 := g.Add(NewSphere())
	g.SetTransform(s2, core.Translation(3, 0, 0))
	for _, id := range []ID{s1, s2} {
		if err := g.AddChild(group, id); err != nil {
			t.Fatalf("AddChild: %v", err)
		}
	}

	g.Divide(group, 3)

	children := g.Shape(group).Children()
	if len(children) != 2 || children[0] != s1 || children[1] != s2 {
		t.Errorf("group should be untouched, got %v", children)
	}
}

func TestGraph_DividePrimitiveIsNoop(t *testing.T) {
	g := NewGraph()
	id := g.Add(NewSphere())
	g.Divide(id, 1)

	if g.Len() != 1 {
		t.Errorf("dividing a primitive must not add shapes, got %d", g.Len())
	}
}

func TestGraph_DividePreservesIntersections(t *testing.T) {
	build := func() (*Graph, ID) {
		g := NewGraph()
		group := g.Add(NewGroup())
		for _, tx := range []core.Matrix4{
			core.Translation(-3, 0, 0),
			core.Translation(3, 0, 0),
			core.Translation(0, 0, 4),
			core.Scaling(0.5, 0.5, 0.5),
		} {
			s := g.Add(NewSphere())
			g.SetTransform(s, tx)
			if err := g.AddChild(group, s); err != nil {
				t.Fatalf("AddChild: %v", err)
			}
		}
		return g, group
	}

	flat, flatGroup := build()
	divided, dividedGroup := build()
	divided.Divide(dividedGroup, 2)

	rays := []core.Ray{
		core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1)),
		core.NewRay(core.NewPoint(-3, 0, -5), core.NewVector(0, 0, 1)),
		core.NewRay(core.NewPoint(-5, 0, 4), core.NewVector(1, 0, 0)),
		core.NewRay(core.NewPoint(0, 5, 0), core.NewVector(0, -1, 0)),
	}
	for _, ray := range rays {
		before := flat.Intersect(flatGroup, ray)
		before.Sort()
		after := divided.Intersect(dividedGroup, ray)
		after.Sort()

		if len(before) != len(after) {
			t.Fatalf("ray %v: %d hits before, %d after", ray, len(before), len(after))
		}
		for i := range before {
			if math.Abs(before[i].T-after[i].T) > core.Epsilon {
				t.Errorf("ray %v hit %d: t %v before, %v after", ray, i, before[i].T, after[i].T)
			}
		}
	}
}

func TestGraph_BoundsPruningKeepsHits(t *testing.T) {
	// a ray aimed at a far-off child must survive the group's box test
	g := NewGraph()
	group := g.Add(NewGroup())
	near := g.Add(NewSphere())
	far := g.Add(NewSphere())

	g.SetTransform(far, core.Translation(0, 0, 100))
	for _, id := range []ID{near, far} {
		if err := g.AddChild(group, id); err != nil {
			t.Fatalf("AddChild: %v", err)
		}
	}

	xs := g.Intersect(group, core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1)))
	xs.Sort()
	if len(xs) != 4 {
		t.Fatalf("expected 4 intersections, got %d", len(xs))
	}
	if xs[3].Object != far {
		t.Errorf("farthest hit should belong to the translated sphere, got %v", xs[3].Object)
	}

	// a ray that misses the whole box yields nothing
	miss := g.Intersect(group, core.NewRay(core.NewPoint(0, 50, -5), core.NewVector(0, 0, 1)))
	if len(miss) != 0 {
		t.Errorf("expected no intersections, got %v", miss)
	}
}
