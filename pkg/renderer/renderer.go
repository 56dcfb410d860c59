package renderer

import (
	"runtime"
	"sync"

	"github.com/davfry/go-whitted-raytracer/pkg/core"
	"github.com/davfry/go-whitted-raytracer/pkg/scene"
)

// Renderer drives the per-pixel trace. Rays are pure functions of (world,
// ray, depth), so rows are distributed across workers that share the world
// read-only; each worker writes disjoint rows of the canvas.
type Renderer struct {
	world  *scene.World
	camera *Camera
	config Config
	logger core.Logger
}

// NewRenderer creates a renderer for the given world and camera
func NewRenderer(world *scene.World, camera *Camera, config Config, logger core.Logger) *Renderer {
	return &Renderer{
		world:  world,
		camera: camera,
		config: config,
		logger: logger,
	}
}

// Render traces every pixel and returns the finished canvas
func (r *Renderer) Render() *Canvas {
	canvas := NewCanvas(r.camera.HSize(), r.camera.VSize())

	numWorkers := r.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	rows := make(chan int, r.camera.VSize())
	for y := 0; y < r.camera.VSize(); y++ {
		rows <- y
	}
	close(rows)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				r.renderRow(canvas, y)
			}
		}()
	}
	wg.Wait()

	if r.logger != nil {
		r.logger.Printf("rendered %dx%d with %d workers, depth %d",
			canvas.Width, canvas.Height, numWorkers, r.config.MaxDepth)
	}
	return canvas
}

func (r *Renderer) renderRow(canvas *Canvas, y int) {
	for x := 0; x < r.camera.HSize(); x++ {
		ray := r.camera.RayForPixel(x, y)
		canvas.WritePixel(x, y, r.world.ColorAt(ray, r.config.MaxDepth))
	}
}
