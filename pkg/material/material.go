// Package material implements surface reflectance parameters, point lights,
// the Phong lighting model, and procedural color patterns.
package material

import (
	"math"

	"github.com/davfry/go-whitted-raytracer/pkg/core"
)

// Material holds the reflectance parameters of a surface. Each shape owns
// its material by value; materials are never shared.
type Material struct {
	Color           core.Color
	Pattern         *Pattern // nil means flat color
	Ambient         float64
	Diffuse         float64
	Specular        float64
	Shininess       float64
	Reflective      float64 // [0,1]
	Transparency    float64 // [0,1]
	RefractiveIndex float64 // > 0
}

// NewMaterial returns the default material
func NewMaterial() Material {
	return Material{
		Color:           core.White(),
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		Reflective:      0,
		Transparency:    0,
		RefractiveIndex: 1,
	}
}

// Lighting computes the Phong contribution of one light. surface is the
// already-resolved surface color at the point (the material's flat color, or
// its pattern evaluated in pattern space by the caller). A shadowed point
// receives the ambient term only.
func Lighting(m Material, surface core.Color, light PointLight, point, eyev, normalv core.Tuple, inShadow bool) core.Color {
	effectiveColor := surface.MultiplyColor(light.Intensity)
	ambient := effectiveColor.Multiply(m.Ambient)

	// Cosine between the light vector and the normal; negative means the
	// light is on the other side of the surface.
	lightv := light.Position.Subtract(point).Normalize()
	lightDotNormal := lightv.Dot(normalv)
	if inShadow || lightDotNormal < 0 {
		return ambient
	}

	diffuse := effectiveColor.Multiply(m.Diffuse * lightDotNormal)

	specular := core.Black()
	reflectv := lightv.Negate().Reflect(normalv)
	reflectDotEye := reflectv.Dot(eyev)
	if reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = light.Intensity.Multiply(m.Specular * factor)
	}

	return ambient.Add(diffuse).Add(specular)
}
