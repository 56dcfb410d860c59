package material

import (
	"math"

	"github.com/davfry/go-whitted-raytracer/pkg/core"
)

// PatternKind selects the color function of a Pattern.
type PatternKind int

const (
	SolidKind PatternKind = iota
	StripeKind
	GradientKind
	RingKind
	CheckerKind
	BlendKind
	UVCheckerKind
	pointKind // colors encode the pattern-space point, used by refraction tests
)

// UVMapping selects how a pattern-space point is flattened to (u, v) in
// [0,1] before a UV pattern samples it.
type UVMapping int

const (
	// SphericalMap wraps the texture around the unit sphere, u along
	// longitude and v along latitude.
	SphericalMap UVMapping = iota
	// PlanarMap tiles the xz plane, discarding y.
	PlanarMap
)

func (m UVMapping) uv(p core.Tuple) (u, v float64) {
	switch m {
	case PlanarMap:
		u = math.Mod(p.X, 1)
		if u < 0 {
			u++
		}
		v = math.Mod(p.Z, 1)
		if v < 0 {
			v++
		}
		return u, v
	default:
		theta := math.Atan2(p.X, p.Z)
		radius := core.NewVector(p.X, p.Y, p.Z).Magnitude()
		phi := math.Acos(p.Y / radius)
		u = 1 - (theta/(2*math.Pi) + 0.5)
		return u, 1 - phi/math.Pi
	}
}

// Pattern maps object-space points to colors. It carries its own transform
// between pattern space and object space; callers pass points already in the
// shape's object space.
type Pattern struct {
	kind       PatternKind
	a, b       core.Color
	subA, subB *Pattern // blend operands
	uvWidth    int
	uvHeight   int
	mapping    UVMapping
	transform  core.Matrix4
	inverse    core.Matrix4
}

func newPattern(kind PatternKind, a, b core.Color) *Pattern {
	return &Pattern{
		kind:      kind,
		a:         a,
		b:         b,
		transform: core.Identity(),
		inverse:   core.Identity(),
	}
}

// NewSolidPattern returns the single color everywhere
func NewSolidPattern(c core.Color) *Pattern {
	return newPattern(SolidKind, c, c)
}

// NewStripePattern alternates a and b along x in unit stripes
func NewStripePattern(a, b core.Color) *Pattern {
	return newPattern(StripeKind, a, b)
}

// NewGradientPattern blends linearly from a to b along x
func NewGradientPattern(a, b core.Color) *Pattern {
	return newPattern(GradientKind, a, b)
}

// NewRingPattern alternates a and b in concentric rings in the xz plane
func NewRingPattern(a, b core.Color) *Pattern {
	return newPattern(RingKind, a, b)
}

// NewCheckerPattern alternates a and b in a 3D checkerboard
func NewCheckerPattern(a, b core.Color) *Pattern {
	return newPattern(CheckerKind, a, b)
}

// NewBlendPattern averages two sub-patterns, each evaluated through its own
// transform
func NewBlendPattern(a, b *Pattern) *Pattern {
	p := newPattern(BlendKind, core.Black(), core.Black())
	p.subA = a
	p.subB = b
	return p
}

// NewUVCheckerPattern alternates a and b in a width x height checker grid on
// the (u, v) coordinates produced by the mapping
func NewUVCheckerPattern(width, height int, a, b core.Color, mapping UVMapping) *Pattern {
	p := newPattern(UVCheckerKind, a, b)
	p.uvWidth = width
	p.uvHeight = height
	p.mapping = mapping
	return p
}

// NewTestPattern returns a pattern whose color is the pattern-space point
// itself, which makes transform composition directly observable.
func NewTestPattern() *Pattern {
	return newPattern(pointKind, core.Black(), core.Black())
}

// Kind returns the pattern's variant tag
func (p *Pattern) Kind() PatternKind {
	return p.kind
}

// Transform returns the pattern-space transform
func (p *Pattern) Transform() core.Matrix4 {
	return p.transform
}

// SetTransform sets the pattern-space transform
func (p *Pattern) SetTransform(m core.Matrix4) {
	p.transform = m
	p.inverse = m.Inverse()
}

// At evaluates the pattern at an object-space point
func (p *Pattern) At(objectPoint core.Tuple) core.Color {
	patternPoint := p.inverse.MultiplyTuple(objectPoint)
	return p.colorAt(patternPoint)
}

func (p *Pattern) colorAt(point core.Tuple) core.Color {
	switch p.kind {
	case StripeKind:
		if int(math.Floor(point.X))%2 == 0 {
			return p.a
		}
		return p.b
	case GradientKind:
		distance := p.b.Subtract(p.a)
		fraction := point.X - math.Floor(point.X)
		return p.a.Add(distance.Multiply(fraction))
	case RingKind:
		if int(math.Floor(math.Sqrt(point.X*point.X+point.Z*point.Z)))%2 == 0 {
			return p.a
		}
		return p.b
	case CheckerKind:
		sum := math.Floor(point.X) + math.Floor(point.Y) + math.Floor(point.Z)
		if int(sum)%2 == 0 {
			return p.a
		}
		return p.b
	case UVCheckerKind:
		u, v := p.mapping.uv(point)
		cell := int(math.Floor(u*float64(p.uvWidth))) + int(math.Floor(v*float64(p.uvHeight)))
		if cell%2 == 0 {
			return p.a
		}
		return p.b
	case BlendKind:
		ca := p.subA.At(point)
		cb := p.subB.At(point)
		return ca.Add(cb).Multiply(0.5)
	case pointKind:
		return core.NewColor(point.X, point.Y, point.Z)
	default:
		return p.a
	}
}
