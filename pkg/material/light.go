package material

import "github.com/davfry/go-whitted-raytracer/pkg/core"

// PointLight is a light source at a single point with no attenuation. Shadow
// testing is the only occlusion model.
type PointLight struct {
	Position  core.Tuple
	Intensity core.Color
}

// NewPointLight creates a new point light
func NewPointLight(position core.Tuple, intensity core.Color) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}
