// Package scene implements the scene graph: a tagged-union shape arena with
// index-based parent/child links, transform composition across the tree,
// bounds-pruned group intersection, and the recursive shading world.
package scene

import (
	"github.com/davfry/go-whitted-raytracer/pkg/core"
	"github.com/davfry/go-whitted-raytracer/pkg/geometry"
	"github.com/davfry/go-whitted-raytracer/pkg/material"
)

// ID is a stable identifier of a shape within a Graph.
type ID int

// NoParent marks a shape at the root of the forest.
const NoParent ID = -1

// Kind is the variant tag of a Shape.
type Kind int

const (
	KindSphere Kind = iota
	KindPlane
	KindCube
	KindCylinder
	KindCone
	KindTriangle
	KindSmoothTriangle
	KindGroup
)

// Shape is a closed tagged union over the primitive variants. Dispatch is a
// switch over the tag, so shapes are stored by value in the arena with no
// per-shape allocation. Only the payload matching the kind is meaningful.
type Shape struct {
	id               ID
	kind             Kind
	transform        core.Matrix4 // object space -> parent space
	inverse          core.Matrix4
	inverseTranspose core.Matrix4
	material         material.Material

	cylinder geometry.Cylinder
	cone     geometry.Cone
	triangle geometry.Triangle
	smooth   geometry.SmoothTriangle

	children []ID // group payload, ordered
	bounds   core.AABB
}

func newShape(kind Kind, bounds core.AABB) Shape {
	return Shape{
		id:               NoParent,
		kind:             kind,
		transform:        core.Identity(),
		inverse:          core.Identity(),
		inverseTranspose: core.Identity(),
		material:         material.NewMaterial(),
		bounds:           bounds,
	}
}

// NewSphere creates a unit sphere at the origin
func NewSphere() Shape {
	return newShape(KindSphere, geometry.SphereBounds())
}

// NewGlassSphere creates a fully transparent sphere with refractive index 1.5
func NewGlassSphere() Shape {
	s := NewSphere()
	s.material.Transparency = 1.0
	s.material.RefractiveIndex = 1.5
	return s
}

// NewPlane creates the xz plane at y=0
func NewPlane() Shape {
	return newShape(KindPlane, geometry.PlaneBounds())
}

// NewCube creates the unit cube spanning [-1,1] on each axis
func NewCube() Shape {
	return newShape(KindCube, geometry.CubeBounds())
}

// NewCylinder creates a y-axis cylinder truncated to (min, max), optionally
// capped
func NewCylinder(min, max float64, closed bool) Shape {
	cyl := geometry.NewCylinder()
	cyl.Minimum = min
	cyl.Maximum = max
	cyl.Closed = closed

	s := newShape(KindCylinder, cyl.Bounds())
	s.cylinder = cyl
	return s
}

// NewCone creates a y-axis double-napped cone truncated to (min, max),
// optionally capped
func NewCone(min, max float64, closed bool) Shape {
	cone := geometry.NewCone()
	cone.Minimum = min
	cone.Maximum = max
	cone.Closed = closed

	s := newShape(KindCone, cone.Bounds())
	s.cone = cone
	return s
}

// NewTriangle creates a flat triangle; degenerate vertices are rejected
func NewTriangle(p1, p2, p3 core.Tuple) (Shape, error) {
	tri, err := geometry.NewTriangle(p1, p2, p3)
	if err != nil {
		return Shape{}, err
	}

	s := newShape(KindTriangle, tri.Bounds())
	s.triangle = tri
	return s, nil
}

// NewSmoothTriangle creates a triangle with interpolated vertex normals
func NewSmoothTriangle(p1, p2, p3, n1, n2, n3 core.Tuple) (Shape, error) {
	tri, err := geometry.NewSmoothTriangle(p1, p2, p3, n1, n2, n3)
	if err != nil {
		return Shape{}, err
	}

	s := newShape(KindSmoothTriangle, tri.Bounds())
	s.smooth = tri
	return s, nil
}

// NewGroup creates an empty group
func NewGroup() Shape {
	return newShape(KindGroup, core.EmptyAABB())
}

// ID returns the shape's arena identifier, or NoParent before Graph.Add
func (s *Shape) ID() ID {
	return s.id
}

// Kind returns the shape's variant tag
func (s *Shape) Kind() Kind {
	return s.kind
}

// Transform returns the object-to-parent transform
func (s *Shape) Transform() core.Matrix4 {
	return s.transform
}

// SetTransform sets the object-to-parent transform. Once the shape is inside
// a Graph, mutate through Graph.SetTransform so enclosing group bounds stay
// current.
func (s *Shape) SetTransform(m core.Matrix4) {
	s.transform = m
	s.inverse = m.Inverse()
	s.inverseTranspose = s.inverse.Transpose()
}

// Material returns a pointer to the shape's material for in-place edits.
// Groups carry a material too but it is ignored during shading.
func (s *Shape) Material() *material.Material {
	return &s.material
}

// SetMaterial replaces the shape's material
func (s *Shape) SetMaterial(m material.Material) {
	s.material = m
}

// Children returns the ordered child identifiers of a group
func (s *Shape) Children() []ID {
	return s.children
}

// Bounds returns the shape's object-space bounding box
func (s *Shape) Bounds() core.AABB {
	return s.bounds
}

// ParentSpaceBounds returns the bounding box after applying the shape's own
// transform
func (s *Shape) ParentSpaceBounds() core.AABB {
	return s.bounds.Transform(s.transform)
}

// localIntersect intersects a ray already in this shape's object space.
// Groups are handled by the Graph, which owns child resolution.
func (s *Shape) localIntersect(ray core.Ray) []Intersection {
	switch s.kind {
	case KindSphere:
		return tsToIntersections(s.id, geometry.SphereIntersect(ray))
	case KindPlane:
		return tsToIntersections(s.id, geometry.PlaneIntersect(ray))
	case KindCube:
		return tsToIntersections(s.id, geometry.CubeIntersect(ray))
	case KindCylinder:
		return tsToIntersections(s.id, s.cylinder.Intersect(ray))
	case KindCone:
		return tsToIntersections(s.id, s.cone.Intersect(ray))
	case KindTriangle:
		if t, _, _, ok := s.triangle.Intersect(ray); ok {
			return []Intersection{{T: t, Object: s.id}}
		}
		return nil
	case KindSmoothTriangle:
		if t, u, v, ok := s.smooth.Intersect(ray); ok {
			return []Intersection{{T: t, Object: s.id, U: u, V: v}}
		}
		return nil
	default:
		return nil
	}
}

// localNormalAt returns the object-space normal at an object-space point.
// Triangle variants take the hit for its barycentric coordinates.
func (s *Shape) localNormalAt(point core.Tuple, hit *Intersection) core.Tuple {
	switch s.kind {
	case KindSphere:
		return geometry.SphereNormalAt(point)
	case KindPlane:
		return geometry.PlaneNormalAt(point)
	case KindCube:
		return geometry.CubeNormalAt(point)
	case KindCylinder:
		return s.cylinder.NormalAt(point)
	case KindCone:
		return s.cone.NormalAt(point)
	case KindTriangle:
		return s.triangle.NormalAt(point)
	case KindSmoothTriangle:
		if hit != nil {
			return s.smooth.NormalAtUV(hit.U, hit.V)
		}
		return s.smooth.Normal
	default:
		return core.NewVector(0, 0, 0)
	}
}

func tsToIntersections(id ID, ts []float64) []Intersection {
	if len(ts) == 0 {
		return nil
	}
	xs := make([]Intersection, len(ts))
	for i, t := range ts {
		xs[i] = Intersection{T: t, Object: id}
	}
	return xs
}
