package geometry

import (
	"fmt"
	"math"

	"github.com/davfry/go-whitted-raytracer/pkg/core"
)

// Triangle is a flat triangle with precomputed edge vectors and normal.
type Triangle struct {
	P1, P2, P3 core.Tuple // Vertices
	E1, E2     core.Tuple // Edge vectors P2-P1 and P3-P1
	Normal     core.Tuple // Unit face normal
}

// NewTriangle creates a triangle from three vertices. Degenerate (zero-area)
// triangles are a construction bug and are rejected.
func NewTriangle(p1, p2, p3 core.Tuple) (Triangle, error) {
	e1 := p2.Subtract(p1)
	e2 := p3.Subtract(p1)
	cross := e2.Cross(e1)
	if cross.Magnitude() < core.Epsilon {
		return Triangle{}, fmt.Errorf("geometry: degenerate triangle %v %v %v", p1, p2, p3)
	}

	return Triangle{
		P1: p1, P2: p2, P3: p3,
		E1:     e1,
		E2:     e2,
		Normal: cross.Normalize(),
	}, nil
}

// Intersect runs the Moller-Trumbore test. It reports the root plus the
// barycentric coordinates of the hit; ok is false for parallel rays and for
// barycentric coordinates outside the triangle.
func (t Triangle) Intersect(ray core.Ray) (tHit, u, v float64, ok bool) {
	dirCrossE2 := ray.Direction.Cross(t.E2)
	det := t.E1.Dot(dirCrossE2)
	if math.Abs(det) < core.Epsilon {
		return 0, 0, 0, false
	}

	f := 1.0 / det
	p1ToOrigin := ray.Origin.Subtract(t.P1)
	u = f * p1ToOrigin.Dot(dirCrossE2)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	originCrossE1 := p1ToOrigin.Cross(t.E1)
	v = f * ray.Direction.Dot(originCrossE1)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	tHit = f * t.E2.Dot(originCrossE1)
	return tHit, u, v, true
}

// NormalAt returns the constant face normal
func (t Triangle) NormalAt(core.Tuple) core.Tuple {
	return t.Normal
}

// Bounds returns the box spanning the three vertices
func (t Triangle) Bounds() core.AABB {
	return core.EmptyAABB().AddPoint(t.P1).AddPoint(t.P2).AddPoint(t.P3)
}

// SmoothTriangle is a triangle with per-vertex normals interpolated across
// the face using the hit's barycentric coordinates.
type SmoothTriangle struct {
	Triangle
	N1, N2, N3 core.Tuple
}

// NewSmoothTriangle creates a smooth triangle from three vertices and their
// normals
func NewSmoothTriangle(p1, p2, p3, n1, n2, n3 core.Tuple) (SmoothTriangle, error) {
	tri, err := NewTriangle(p1, p2, p3)
	if err != nil {
		return SmoothTriangle{}, err
	}
	return SmoothTriangle{Triangle: tri, N1: n1, N2: n2, N3: n3}, nil
}

// NormalAtUV interpolates the vertex normals at barycentric (u, v)
func (t SmoothTriangle) NormalAtUV(u, v float64) core.Tuple {
	return t.N2.Multiply(u).
		Add(t.N3.Multiply(v)).
		Add(t.N1.Multiply(1 - u - v))
}
