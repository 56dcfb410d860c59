package geometry

import (
	"math"

	"github.com/davfry/go-whitted-raytracer/pkg/core"
)

// CubeIntersect intersects a ray with the unit cube spanning [-1,1] on each
// axis, using the slab method shared with AABB testing.
func CubeIntersect(ray core.Ray) []float64 {
	xtMin, xtMax := core.CheckAxis(ray.Origin.X, ray.Direction.X, -1, 1)
	ytMin, ytMax := core.CheckAxis(ray.Origin.Y, ray.Direction.Y, -1, 1)
	ztMin, ztMax := core.CheckAxis(ray.Origin.Z, ray.Direction.Z, -1, 1)

	tMin := math.Max(xtMin, math.Max(ytMin, ztMin))
	tMax := math.Min(xtMax, math.Min(ytMax, ztMax))

	if tMin > tMax {
		return nil
	}
	return []float64{tMin, tMax}
}

// CubeNormalAt returns the outward normal of the face containing the point.
// Edge and corner points resolve to the x face first, then y.
func CubeNormalAt(point core.Tuple) core.Tuple {
	absX := math.Abs(point.X)
	absY := math.Abs(point.Y)
	absZ := math.Abs(point.Z)
	maxC := math.Max(absX, math.Max(absY, absZ))

	switch maxC {
	case absX:
		return core.NewVector(point.X, 0, 0)
	case absY:
		return core.NewVector(0, point.Y, 0)
	default:
		return core.NewVector(0, 0, point.Z)
	}
}

// CubeBounds returns the object-space bounding box of the unit cube
func CubeBounds() core.AABB {
	return core.NewAABB(core.NewPoint(-1, -1, -1), core.NewPoint(1, 1, 1))
}
