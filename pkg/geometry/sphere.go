// Package geometry implements object-space intersection and normal math for
// each primitive. Rays arriving here have already been transformed into the
// primitive's object space; the scene graph owns transforms and materials.
package geometry

import (
	"math"

	"github.com/davfry/go-whitted-raytracer/pkg/core"
)

// SphereIntersect intersects a ray with the unit sphere at the origin. Both
// real roots are returned in ascending order, including negative ones; the
// caller decides which roots count as hits.
func SphereIntersect(ray core.Ray) []float64 {
	sphereToRay := ray.Origin.Subtract(core.NewPoint(0, 0, 0))

	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)
	return []float64{t1, t2}
}

// SphereNormalAt returns the outward normal of the unit sphere at an
// object-space point
func SphereNormalAt(point core.Tuple) core.Tuple {
	return point.Subtract(core.NewPoint(0, 0, 0))
}

// SphereBounds returns the object-space bounding box of the unit sphere
func SphereBounds() core.AABB {
	return core.NewAABB(core.NewPoint(-1, -1, -1), core.NewPoint(1, 1, 1))
}
