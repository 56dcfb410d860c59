package core

// Color represents an RGB color in linear space. Components are unclamped
// during tracing; clamping happens only at image-write time.
type Color struct {
	R, G, B float64
}

// NewColor creates a new color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Black returns the background color
func Black() Color {
	return Color{}
}

// White returns full-intensity white
func White() Color {
	return Color{R: 1, G: 1, B: 1}
}

// Add returns the sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Subtract returns the difference of two colors
func (c Color) Subtract(other Color) Color {
	return Color{c.R - other.R, c.G - other.G, c.B - other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the Hadamard product of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Equals compares two colors component-wise within Epsilon
func (c Color) Equals(other Color) bool {
	return floatEquals(c.R, other.R) &&
		floatEquals(c.G, other.G) &&
		floatEquals(c.B, other.B)
}
