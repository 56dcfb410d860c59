package scene

import (
	"math"

	"github.com/davfry/go-whitted-raytracer/pkg/core"
	"github.com/davfry/go-whitted-raytracer/pkg/material"
)

// MaxDepth is the default recursion bound for reflection and refraction.
const MaxDepth = 5

// World aggregates the shape arena and the lights, and resolves rays to
// colors. It is built once per render and treated as read-only while
// tracing, so parallel workers can share it without locks.
type World struct {
	Graph  *Graph
	Lights []material.PointLight
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{Graph: NewGraph()}
}

// DefaultWorld returns the canonical two-sphere world lit from the upper
// left, the baseline scene most shading behavior is specified against.
func DefaultWorld() *World {
	w := NewWorld()
	w.Lights = []material.PointLight{
		material.NewPointLight(core.NewPoint(-10, 10, -10), core.White()),
	}

	s1 := NewSphere()
	s1.Material().Color = core.NewColor(0.8, 1.0, 0.6)
	s1.Material().Diffuse = 0.7
	s1.Material().Specular = 0.2
	w.Graph.Add(s1)

	s2 := NewSphere()
	s2.SetTransform(core.Scaling(0.5, 0.5, 0.5))
	w.Graph.Add(s2)

	return w
}

// Intersect casts the ray against every root shape and returns the merged
// hit list sorted by ascending t
func (w *World) Intersect(ray core.Ray) Intersections {
	var xs Intersections
	for _, root := range w.Graph.Roots() {
		xs = append(xs, w.Graph.Intersect(root, ray)...)
	}
	xs.Sort()
	return xs
}

// ColorAt resolves a ray to a color, recursing through reflection and
// refraction until remaining reaches zero. A ray that misses everything
// yields the black background.
func (w *World) ColorAt(ray core.Ray, remaining int) core.Color {
	xs := w.Intersect(ray)
	hit, ok := xs.Hit()
	if !ok {
		return core.Black()
	}
	comps := w.PrepareComputations(hit, ray, xs)
	return w.ShadeHit(comps, remaining)
}

// ShadeHit combines the Phong contribution of every light with the
// reflected and refracted colors. When the surface is both reflective and
// transparent, the Schlick reflectance blends the two secondary terms.
func (w *World) ShadeHit(comps Computations, remaining int) core.Color {
	m := w.Graph.Shape(comps.Object).Material()

	surfaceColor := m.Color
	if m.Pattern != nil {
		objectPoint := w.Graph.WorldToObject(comps.Object, comps.OverPoint)
		surfaceColor = m.Pattern.At(objectPoint)
	}

	surface := core.Black()
	for _, light := range w.Lights {
		shadowed := w.IsShadowed(comps.OverPoint, light)
		surface = surface.Add(material.Lighting(
			*m, surfaceColor, light, comps.OverPoint, comps.Eyev, comps.Normalv, shadowed))
	}

	reflected := w.ReflectedColor(comps, remaining)
	refracted := w.RefractedColor(comps, remaining)

	if m.Reflective > 0 && m.Transparency > 0 {
		reflectance := Schlick(comps)
		return surface.
			Add(reflected.Multiply(reflectance)).
			Add(refracted.Multiply(1 - reflectance))
	}
	return surface.Add(reflected).Add(refracted)
}

// IsShadowed reports whether an opaque surface blocks the segment from the
// point to the light. Only hits strictly between the point and the light
// occlude; geometry behind either end does not.
func (w *World) IsShadowed(point core.Tuple, light material.PointLight) bool {
	toLight := light.Position.Subtract(point)
	distance := toLight.Magnitude()

	ray := core.NewRay(point, toLight.Normalize())
	hit, ok := w.Intersect(ray).Hit()
	return ok && hit.T < distance
}

// ReflectedColor spawns a reflection ray at the hit and returns its color
// scaled by the material's reflectivity. Depth exhaustion returns black.
func (w *World) ReflectedColor(comps Computations, remaining int) core.Color {
	if remaining <= 0 {
		return core.Black()
	}
	m := w.Graph.Shape(comps.Object).Material()
	if m.Reflective == 0 {
		return core.Black()
	}

	reflectRay := core.NewRay(comps.OverPoint, comps.Reflectv)
	return w.ColorAt(reflectRay, remaining-1).Multiply(m.Reflective)
}

// RefractedColor spawns a refraction ray through the hit via Snell's law and
// returns its color scaled by the material's transparency. Total internal
// reflection and depth exhaustion return black.
func (w *World) RefractedColor(comps Computations, remaining int) core.Color {
	if remaining <= 0 {
		return core.Black()
	}
	m := w.Graph.Shape(comps.Object).Material()
	if m.Transparency == 0 {
		return core.Black()
	}

	nRatio := comps.N1 / comps.N2
	cosI := comps.Eyev.Dot(comps.Normalv)
	sin2T := nRatio * nRatio * (1 - cosI*cosI)
	if sin2T > 1 {
		return core.Black()
	}

	cosT := math.Sqrt(1 - sin2T)
	direction := comps.Normalv.Multiply(nRatio*cosI - cosT).
		Subtract(comps.Eyev.Multiply(nRatio))
	refractRay := core.NewRay(comps.UnderPoint, direction)

	return w.ColorAt(refractRay, remaining-1).Multiply(m.Transparency)
}
