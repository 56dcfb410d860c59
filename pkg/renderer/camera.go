// Package renderer turns a world and a camera into a raster image: one ray
// per pixel, traced across a pool of parallel workers sharing the read-only
// world.
package renderer

import (
	"math"

	"github.com/davfry/go-whitted-raytracer/pkg/core"
)

// Camera generates one ray per pixel of an hsize x vsize image through a
// canvas one unit in front of the eye.
type Camera struct {
	hsize      int
	vsize      int
	fov        float64
	halfWidth  float64
	halfHeight float64
	pixelSize  float64
	transform  core.Matrix4 // world-to-camera
	inverse    core.Matrix4
}

// NewCamera creates a camera with the given image size and field of view in
// radians
func NewCamera(hsize, vsize int, fov float64) *Camera {
	halfView := math.Tan(fov / 2)
	aspect := float64(hsize) / float64(vsize)

	var halfWidth, halfHeight float64
	if aspect >= 1 {
		halfWidth = halfView
		halfHeight = halfView / aspect
	} else {
		halfWidth = halfView * aspect
		halfHeight = halfView
	}

	return &Camera{
		hsize:      hsize,
		vsize:      vsize,
		fov:        fov,
		halfWidth:  halfWidth,
		halfHeight: halfHeight,
		pixelSize:  halfWidth * 2 / float64(hsize),
		transform:  core.Identity(),
		inverse:    core.Identity(),
	}
}

// HSize returns the image width in pixels
func (c *Camera) HSize() int { return c.hsize }

// VSize returns the image height in pixels
func (c *Camera) VSize() int { return c.vsize }

// PixelSize returns the world-space size of one pixel on the canvas
func (c *Camera) PixelSize() float64 { return c.pixelSize }

// Transform returns the world-to-camera transform
func (c *Camera) Transform() core.Matrix4 { return c.transform }

// SetTransform sets the world-to-camera transform, usually built with
// core.ViewTransform
func (c *Camera) SetTransform(m core.Matrix4) {
	c.transform = m
	c.inverse = m.Inverse()
}

// RayForPixel returns the world-space ray through the center of pixel (x, y)
func (c *Camera) RayForPixel(x, y int) core.Ray {
	xOffset := (float64(x) + 0.5) * c.pixelSize
	yOffset := (float64(y) + 0.5) * c.pixelSize

	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	pixel := c.inverse.MultiplyTuple(core.NewPoint(worldX, worldY, -1))
	origin := c.inverse.MultiplyTuple(core.NewPoint(0, 0, 0))
	direction := pixel.Subtract(origin).Normalize()

	return core.NewRay(origin, direction)
}
