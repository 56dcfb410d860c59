package geometry

import (
	"math"

	"github.com/davfry/go-whitted-raytracer/pkg/core"
)

// PlaneIntersect intersects a ray with the xz plane at y=0. A ray parallel
// to the plane (including coplanar rays) yields no intersection.
func PlaneIntersect(ray core.Ray) []float64 {
	if math.Abs(ray.Direction.Y) < core.Epsilon {
		return nil
	}
	return []float64{-ray.Origin.Y / ray.Direction.Y}
}

// PlaneNormalAt returns the constant plane normal
func PlaneNormalAt(core.Tuple) core.Tuple {
	return core.NewVector(0, 1, 0)
}

// PlaneBounds returns a box infinite in x and z with zero thickness in y
func PlaneBounds() core.AABB {
	return core.NewAABB(
		core.NewPoint(math.Inf(-1), 0, math.Inf(-1)),
		core.NewPoint(math.Inf(1), 0, math.Inf(1)),
	)
}
