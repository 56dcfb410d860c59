package geometry

import (
	"math"

	"github.com/davfry/go-whitted-raytracer/pkg/core"
)

// Cone is a double-napped cone around the y axis with its apex at the
// origin, truncated to (Minimum, Maximum) and optionally capped. The cap
// radius at height y equals |y|.
type Cone struct {
	Minimum float64
	Maximum float64
	Closed  bool
}

// NewCone creates a cone extending infinitely along y
func NewCone() Cone {
	return Cone{Minimum: math.Inf(-1), Maximum: math.Inf(1)}
}

// Intersect returns the roots where the ray crosses the cone wall or, when
// closed, its end caps
func (c Cone) Intersect(ray core.Ray) []float64 {
	var xs []float64

	d := ray.Direction
	o := ray.Origin
	a := d.X*d.X - d.Y*d.Y + d.Z*d.Z
	b := 2*o.X*d.X - 2*o.Y*d.Y + 2*o.Z*d.Z
	cc := o.X*o.X - o.Y*o.Y + o.Z*o.Z

	if math.Abs(a) < core.Epsilon {
		// Ray is parallel to one nappe; a single wall hit remains possible.
		if math.Abs(b) >= core.Epsilon {
			xs = c.appendWallRoot(ray, xs, -cc/(2*b))
		}
		return c.intersectCaps(ray, xs)
	}

	discriminant := b*b - 4*a*cc
	if discriminant < 0 {
		return c.intersectCaps(ray, xs)
	}

	sqrtD := math.Sqrt(discriminant)
	t0 := (-b - sqrtD) / (2 * a)
	t1 := (-b + sqrtD) / (2 * a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	xs = c.appendWallRoot(ray, xs, t0)
	xs = c.appendWallRoot(ray, xs, t1)

	return c.intersectCaps(ray, xs)
}

func (c Cone) appendWallRoot(ray core.Ray, xs []float64, t float64) []float64 {
	y := ray.Origin.Y + t*ray.Direction.Y
	if c.Minimum < y && y < c.Maximum {
		xs = append(xs, t)
	}
	return xs
}

func (c Cone) intersectCaps(ray core.Ray, xs []float64) []float64 {
	if !c.Closed || math.Abs(ray.Direction.Y) < core.Epsilon {
		return xs
	}

	t := (c.Minimum - ray.Origin.Y) / ray.Direction.Y
	if checkCap(ray, t, math.Abs(c.Minimum)) {
		xs = append(xs, t)
	}
	t = (c.Maximum - ray.Origin.Y) / ray.Direction.Y
	if checkCap(ray, t, math.Abs(c.Maximum)) {
		xs = append(xs, t)
	}
	return xs
}

// NormalAt returns the object-space normal at the point. The wall normal is
// left unnormalized; the scene graph normalizes after transforming to world
// space.
func (c Cone) NormalAt(point core.Tuple) core.Tuple {
	dist := point.X*point.X + point.Z*point.Z

	if dist < point.Y*point.Y && point.Y >= c.Maximum-core.Epsilon {
		return core.NewVector(0, 1, 0)
	}
	if dist < point.Y*point.Y && point.Y <= c.Minimum+core.Epsilon {
		return core.NewVector(0, -1, 0)
	}

	y := math.Sqrt(dist)
	if point.Y > 0 {
		y = -y
	}
	return core.NewVector(point.X, y, point.Z)
}

// Bounds returns the object-space bounding box. The radius bound follows
// the larger nappe extent.
func (c Cone) Bounds() core.AABB {
	limit := math.Max(math.Abs(c.Minimum), math.Abs(c.Maximum))
	return core.NewAABB(
		core.NewPoint(-limit, c.Minimum, -limit),
		core.NewPoint(limit, c.Maximum, limit),
	)
}
