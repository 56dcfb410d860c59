package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/davfry/go-whitted-raytracer/pkg/core"
)

// Canvas is the in-memory pixel grid a render writes into. Colors stay in
// linear, unclamped space; clamping and gamma happen only when converting to
// an image.
type Canvas struct {
	Width  int
	Height int
	pixels []core.Color
}

// NewCanvas creates a black canvas
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		pixels: make([]core.Color, width*height),
	}
}

// WritePixel sets the color at (x, y). Out-of-range coordinates are ignored.
func (c *Canvas) WritePixel(x, y int, col core.Color) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	c.pixels[y*c.Width+x] = col
}

// PixelAt returns the color at (x, y)
func (c *Canvas) PixelAt(x, y int) core.Color {
	return c.pixels[y*c.Width+x]
}

// ToImage converts the canvas to an 8-bit image, clamping to [0,1] and
// applying the given gamma. Gamma 1.0 leaves the linear values as-is.
func (c *Canvas) ToImage(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	invGamma := 1.0
	if gamma > 0 {
		invGamma = 1.0 / gamma
	}

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			p := c.PixelAt(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: channelToByte(p.R, invGamma),
				G: channelToByte(p.G, invGamma),
				B: channelToByte(p.B, invGamma),
				A: 255,
			})
		}
	}
	return img
}

func channelToByte(v, invGamma float64) uint8 {
	v = math.Min(1, math.Max(0, v))
	if invGamma != 1 {
		v = math.Pow(v, invGamma)
	}
	return uint8(math.Round(v * 255))
}
