package scene

import (
	"math"

	"github.com/davfry/go-whitted-raytracer/pkg/core"
)

// Computations carries the precomputed state of one hit that shading needs:
// world-space point and vectors, the over/under points nudged along the
// normal to keep secondary rays off the surface, and the refractive indices
// on both sides of the boundary.
type Computations struct {
	T          float64
	Object     ID
	Point      core.Tuple
	OverPoint  core.Tuple // shadow and reflection ray origin
	UnderPoint core.Tuple // refraction ray origin
	Eyev       core.Tuple
	Normalv    core.Tuple
	Reflectv   core.Tuple
	Inside     bool
	N1, N2     float64
}

// PrepareComputations resolves a hit into shading state. xs must be the full
// intersection list the hit came from, ordered by t, so the containers scan
// can reconstruct which transparent shapes enclose the hit.
func (w *World) PrepareComputations(hit Intersection, ray core.Ray, xs Intersections) Computations {
	point := ray.Position(hit.T)
	eyev := ray.Direction.Negate()
	normalv := w.Graph.NormalAt(hit.Object, point, &hit)

	inside := false
	if normalv.Dot(eyev) < 0 {
		inside = true
		normalv = normalv.Negate()
	}

	offset := normalv.Multiply(core.Epsilon)
	n1, n2 := w.refractiveIndices(hit, xs)

	return Computations{
		T:          hit.T,
		Object:     hit.Object,
		Point:      point,
		OverPoint:  point.Add(offset),
		UnderPoint: point.Subtract(offset),
		Eyev:       eyev,
		Normalv:    normalv,
		Reflectv:   ray.Direction.Reflect(normalv),
		Inside:     inside,
		N1:         n1,
		N2:         n2,
	}
}

// refractiveIndices walks the ordered intersection list maintaining a stack
// of the shapes the ray is currently inside: entering a shape pushes it,
// leaving pops it, matched by identity. n1 is the index being exited at the
// hit, n2 the index being entered.
func (w *World) refractiveIndices(hit Intersection, xs Intersections) (n1, n2 float64) {
	n1, n2 = 1, 1
	containers := make([]ID, 0, len(xs))

	for _, is := range xs {
		isHit := is.T == hit.T && is.Object == hit.Object

		if isHit && len(containers) > 0 {
			n1 = w.Graph.Shape(containers[len(containers)-1]).Material().RefractiveIndex
		}

		if idx := indexOfID(containers, is.Object); idx >= 0 {
			containers = append(containers[:idx], containers[idx+1:]...)
		} else {
			containers = append(containers, is.Object)
		}

		if isHit {
			if len(containers) > 0 {
				n2 = w.Graph.Shape(containers[len(containers)-1]).Material().RefractiveIndex
			}
			return n1, n2
		}
	}
	return n1, n2
}

func indexOfID(ids []ID, id ID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// Schlick approximates the Fresnel reflectance at the hit: the fraction of
// light that reflects rather than refracts, rising toward 1 at glancing
// angles and under total internal reflection.
func Schlick(comps Computations) float64 {
	cos := comps.Eyev.Dot(comps.Normalv)

	if comps.N1 > comps.N2 {
		n := comps.N1 / comps.N2
		sin2T := n * n * (1 - cos*cos)
		if sin2T > 1 {
			return 1
		}
		cos = math.Sqrt(1 - sin2T)
	}

	r0 := (comps.N1 - comps.N2) / (comps.N1 + comps.N2)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}
