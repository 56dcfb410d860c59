package geometry

import (
	"math"

	"github.com/davfry/go-whitted-raytracer/pkg/core"
)

// Cylinder is a unit-radius cylinder around the y axis, truncated to the
// open interval (Minimum, Maximum) and optionally capped with end disks.
type Cylinder struct {
	Minimum float64
	Maximum float64
	Closed  bool
}

// NewCylinder creates a cylinder extending infinitely along y
func NewCylinder() Cylinder {
	return Cylinder{Minimum: math.Inf(-1), Maximum: math.Inf(1)}
}

// Intersect returns the roots where the ray crosses the cylinder wall or,
// when closed, its end caps
func (c Cylinder) Intersect(ray core.Ray) []float64 {
	var xs []float64

	a := ray.Direction.X*ray.Direction.X + ray.Direction.Z*ray.Direction.Z
	if a > core.Epsilon {
		b := 2*ray.Origin.X*ray.Direction.X + 2*ray.Origin.Z*ray.Direction.Z
		cc := ray.Origin.X*ray.Origin.X + ray.Origin.Z*ray.Origin.Z - 1

		discriminant := b*b - 4*a*cc
		if discriminant < 0 {
			return nil
		}

		sqrtD := math.Sqrt(discriminant)
		t0 := (-b - sqrtD) / (2 * a)
		t1 := (-b + sqrtD) / (2 * a)
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		for _, t := range []float64{t0, t1} {
			y := ray.Origin.Y + t*ray.Direction.Y
			if c.Minimum < y && y < c.Maximum {
				xs = append(xs, t)
			}
		}
	}

	return c.intersectCaps(ray, xs)
}

// intersectCaps adds roots for the end cap disks of a closed cylinder
func (c Cylinder) intersectCaps(ray core.Ray, xs []float64) []float64 {
	if !c.Closed || math.Abs(ray.Direction.Y) < core.Epsilon {
		return xs
	}

	t := (c.Minimum - ray.Origin.Y) / ray.Direction.Y
	if checkCap(ray, t, 1) {
		xs = append(xs, t)
	}
	t = (c.Maximum - ray.Origin.Y) / ray.Direction.Y
	if checkCap(ray, t, 1) {
		xs = append(xs, t)
	}
	return xs
}

// checkCap reports whether the ray at t lies within the cap disk of the
// given radius
func checkCap(ray core.Ray, t, radius float64) bool {
	x := ray.Origin.X + t*ray.Direction.X
	z := ray.Origin.Z + t*ray.Direction.Z
	return x*x+z*z <= radius*radius
}

// NormalAt returns the object-space normal at the point, picking the cap
// planes when the point lies on a closed end
func (c Cylinder) NormalAt(point core.Tuple) core.Tuple {
	dist := point.X*point.X + point.Z*point.Z

	if dist < 1 && point.Y >= c.Maximum-core.Epsilon {
		return core.NewVector(0, 1, 0)
	}
	if dist < 1 && point.Y <= c.Minimum+core.Epsilon {
		return core.NewVector(0, -1, 0)
	}
	return core.NewVector(point.X, 0, point.Z)
}

// Bounds returns the object-space bounding box
func (c Cylinder) Bounds() core.AABB {
	return core.NewAABB(
		core.NewPoint(-1, c.Minimum, -1),
		core.NewPoint(1, c.Maximum, 1),
	)
}
