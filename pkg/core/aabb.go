package core

import "math"

// AABB represents an axis-aligned bounding box with point corners. Boxes are
// held in the owning shape's object space; a group box is the union of its
// children's boxes after applying each child's transform.
type AABB struct {
	Min Tuple // Minimum corner
	Max Tuple // Maximum corner
}

// NewAABB creates a new AABB from min and max corners
func NewAABB(min, max Tuple) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns an inverted box that grows to fit added points
func EmptyAABB() AABB {
	return AABB{
		Min: NewPoint(math.Inf(1), math.Inf(1), math.Inf(1)),
		Max: NewPoint(math.Inf(-1), math.Inf(-1), math.Inf(-1)),
	}
}

// AddPoint returns the box grown to contain the point
func (b AABB) AddPoint(p Tuple) AABB {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
	return b
}

// Union returns a box that bounds both this box and another. An empty box is
// the identity element.
func (b AABB) Union(other AABB) AABB {
	if !other.IsValid() {
		return b
	}
	if !b.IsValid() {
		return other
	}
	return b.AddPoint(other.Min).AddPoint(other.Max)
}

// Split cuts the box in half perpendicular to its longest axis and returns
// the two halves. Ties resolve x before y before z.
func (b AABB) Split() (AABB, AABB) {
	dx := b.Max.X - b.Min.X
	dy := b.Max.Y - b.Min.Y
	dz := b.Max.Z - b.Min.Z

	left, right := b, b
	switch greatest := math.Max(dx, math.Max(dy, dz)); greatest {
	case dx:
		mid := b.Min.X + dx/2
		left.Max.X, right.Min.X = mid, mid
	case dy:
		mid := b.Min.Y + dy/2
		left.Max.Y, right.Min.Y = mid, mid
	default:
		mid := b.Min.Z + dz/2
		left.Max.Z, right.Min.Z = mid, mid
	}
	return left, right
}

// ContainsPoint reports whether the point lies within the box
func (b AABB) ContainsPoint(p Tuple) bool {
	return b.Min.X <= p.X && p.X <= b.Max.X &&
		b.Min.Y <= p.Y && p.Y <= b.Max.Y &&
		b.Min.Z <= p.Z && p.Z <= b.Max.Z
}

// ContainsBox reports whether the other box lies entirely within this box
func (b AABB) ContainsBox(other AABB) bool {
	return b.ContainsPoint(other.Min) && b.ContainsPoint(other.Max)
}

// IsValid reports whether min <= max on all axes (an empty box is invalid)
func (b AABB) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Transform returns the box transformed by the matrix. All 8 corners are
// transformed and re-bounded, so the result stays axis-aligned. An empty box
// stays empty; mixing its inverted corners would span the whole space.
func (b AABB) Transform(m Matrix4) AABB {
	if !b.IsValid() {
		return b
	}
	corners := [8]Tuple{
		b.Min,
		NewPoint(b.Min.X, b.Min.Y, b.Max.Z),
		NewPoint(b.Min.X, b.Max.Y, b.Min.Z),
		NewPoint(b.Min.X, b.Max.Y, b.Max.Z),
		NewPoint(b.Max.X, b.Min.Y, b.Min.Z),
		NewPoint(b.Max.X, b.Min.Y, b.Max.Z),
		NewPoint(b.Max.X, b.Max.Y, b.Min.Z),
		b.Max,
	}

	result := EmptyAABB()
	for _, c := range corners {
		result = result.AddPoint(mulTupleInf(m, c))
	}
	return result
}

// mulTupleInf transforms a point whose components may be infinite (plane
// bounds). 0*Inf is NaN in IEEE arithmetic, so zero matrix entries must not
// touch infinite components.
func mulTupleInf(m Matrix4, t Tuple) Tuple {
	comp := [4]float64{t.X, t.Y, t.Z, t.W}
	var out [4]float64
	for row := 0; row < 4; row++ {
		sum := 0.0
		for col := 0; col < 4; col++ {
			if m[row][col] != 0 && comp[col] != 0 {
				sum += m[row][col] * comp[col]
			}
		}
		out[row] = sum
	}
	return Tuple{X: out[0], Y: out[1], Z: out[2], W: out[3]}
}

// CheckAxis computes the slab intersection interval for one axis. A
// near-zero direction component multiplies the numerators by +Inf instead of
// dividing, keeping the interval well-defined for parallel rays.
func CheckAxis(origin, direction, min, max float64) (float64, float64) {
	tMinNumerator := min - origin
	tMaxNumerator := max - origin

	var tMin, tMax float64
	if math.Abs(direction) >= Epsilon {
		tMin = tMinNumerator / direction
		tMax = tMaxNumerator / direction
	} else {
		tMin = tMinNumerator * math.Inf(1)
		tMax = tMaxNumerator * math.Inf(1)
	}

	if tMin > tMax {
		tMin, tMax = tMax, tMin
	}
	return tMin, tMax
}

// Hit tests whether a ray intersects the box using the slab method. It is a
// fast-reject filter only, never a substitute for exact primitive
// intersection.
func (b AABB) Hit(ray Ray) bool {
	xtMin, xtMax := CheckAxis(ray.Origin.X, ray.Direction.X, b.Min.X, b.Max.X)
	ytMin, ytMax := CheckAxis(ray.Origin.Y, ray.Direction.Y, b.Min.Y, b.Max.Y)
	ztMin, ztMax := CheckAxis(ray.Origin.Z, ray.Direction.Z, b.Min.Z, b.Max.Z)

	tMax := math.Min(xtMax, math.Min(ytMax, ztMax))
	if tMax < 0 {
		return false
	}
	tMin := math.Max(xtMin, math.Max(ytMin, ztMin))
	return tMin <= tMax
}
