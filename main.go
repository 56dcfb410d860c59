package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"math"
	"os"
	"time"

	"github.com/davfry/go-whitted-raytracer/pkg/core"
	"github.com/davfry/go-whitted-raytracer/pkg/material"
	"github.com/davfry/go-whitted-raytracer/pkg/renderer"
	"github.com/davfry/go-whitted-raytracer/pkg/scene"
)

func main() {
	sceneType := flag.String("scene", "default", "Scene type: 'default' or 'hexagon'")
	configPath := flag.String("config", "", "Optional YAML render config")
	output := flag.String("out", "render.png", "Output PNG path")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Whitted Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  default - checkered floor, glass and mirror spheres")
		fmt.Println("  hexagon - ring of spheres and cylinders in nested groups")
		return
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg := renderer.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = renderer.LoadConfig(*configPath)
		if err != nil {
			logger.Printf("error: %v", err)
			os.Exit(1)
		}
	}

	var world *scene.World
	var camera *renderer.Camera
	switch *sceneType {
	case "hexagon":
		world, camera = buildHexagonScene(cfg)
	case "default":
		world, camera = buildDefaultScene(cfg)
	default:
		logger.Printf("unknown scene type %q, using default", *sceneType)
		world, camera = buildDefaultScene(cfg)
	}

	start := time.Now()
	canvas := renderer.NewRenderer(world, camera, cfg, logger).Render()
	logger.Printf("render completed in %v", time.Since(start))

	file, err := os.Create(*output)
	if err != nil {
		logger.Printf("error creating %s: %v", *output, err)
		os.Exit(1)
	}
	defer file.Close()

	if err := png.Encode(file, canvas.ToImage(cfg.Gamma)); err != nil {
		logger.Printf("error encoding %s: %v", *output, err)
		os.Exit(1)
	}
	logger.Printf("wrote %s", *output)
}

// buildDefaultScene assembles a checkered floor with one glass, one mirror
// and one matte sphere.
func buildDefaultScene(cfg renderer.Config) (*scene.World, *renderer.Camera) {
	w := scene.NewWorld()
	w.Lights = []material.PointLight{
		material.NewPointLight(core.NewPoint(-10, 10, -10), core.White()),
	}

	floor := scene.NewPlane()
	floor.Material().Pattern = material.NewCheckerPattern(
		core.NewColor(0.9, 0.9, 0.9), core.NewColor(0.2, 0.2, 0.2))
	floor.Material().Reflective = 0.1
	floor.Material().Specular = 0.2
	w.Graph.Add(floor)

	glass := scene.NewGlassSphere()
	glass.SetTransform(core.Translation(-0.6, 1, 0.4))
	glass.Material().Color = core.NewColor(0.05, 0.05, 0.05)
	glass.Material().Diffuse = 0.05
	glass.Material().Specular = 1
	glass.Material().Shininess = 300
	glass.Material().Reflective = 0.9
	w.Graph.Add(glass)

	mirror := scene.NewSphere()
	mirror.SetTransform(core.Translation(1.8, 0.75, 2.5).Multiply(core.Scaling(0.75, 0.75, 0.75)))
	mirror.Material().Color = core.NewColor(0.1, 0.1, 0.1)
	mirror.Material().Diffuse = 0.3
	mirror.Material().Reflective = 0.9
	w.Graph.Add(mirror)

	matte := scene.NewSphere()
	matte.SetTransform(core.Translation(-2.2, 0.5, 2).Multiply(core.Scaling(0.5, 0.5, 0.5)))
	matte.Material().Color = core.NewColor(0.8, 0.3, 0.3)
	matte.Material().Pattern = material.NewStripePattern(
		core.NewColor(0.8, 0.3, 0.3), core.NewColor(0.95, 0.7, 0.3))
	matte.Material().Pattern.SetTransform(core.Scaling(0.25, 0.25, 0.25))
	w.Graph.Add(matte)

	camera := renderer.NewCamera(cfg.Width, cfg.Height, cfg.FieldOfView*math.Pi/180)
	camera.SetTransform(core.ViewTransform(
		core.NewPoint(0, 1.7, -4.5),
		core.NewPoint(0, 0.7, 0),
		core.NewVector(0, 1, 0),
	))
	return w, camera
}

// buildHexagonScene assembles a hexagonal ring out of nested groups: each
// side is a group of a corner sphere and an edge cylinder, rotated into
// place inside the outer group.
func buildHexagonScene(cfg renderer.Config) (*scene.World, *renderer.Camera) {
	w := scene.NewWorld()
	w.Lights = []material.PointLight{
		material.NewPointLight(core.NewPoint(-6, 8, -8), core.White()),
	}

	floor := scene.NewPlane()
	floor.Material().Pattern = material.NewRingPattern(
		core.NewColor(0.7, 0.7, 0.8), core.NewColor(0.3, 0.3, 0.45))
	w.Graph.Add(floor)

	hex := w.Graph.Add(scene.NewGroup())
	for i := 0; i < 6; i++ {
		side := w.Graph.Add(scene.NewGroup())

		corner := scene.NewSphere()
		corner.SetTransform(core.Translation(0, 0, -1).Multiply(core.Scaling(0.25, 0.25, 0.25)))
		cornerID := w.Graph.Add(corner)

		edge := scene.NewCylinder(0, 1, false)
		edge.SetTransform(core.Translation(0, 0, -1).
			Multiply(core.RotationY(-math.Pi / 6)).
			Multiply(core.RotationZ(-math.Pi / 2)).
			Multiply(core.Scaling(0.25, 1, 0.25)))
		edgeID := w.Graph.Add(edge)

		mustAddChild(w.Graph, side, cornerID)
		mustAddChild(w.Graph, side, edgeID)
		w.Graph.SetTransform(side, core.RotationY(float64(i)*math.Pi/3))
		mustAddChild(w.Graph, hex, side)
	}
	w.Graph.SetTransform(hex, core.Translation(0, 1, 0))

	camera := renderer.NewCamera(cfg.Width, cfg.Height, cfg.FieldOfView*math.Pi/180)
	camera.SetTransform(core.ViewTransform(
		core.NewPoint(0, 3.5, -5),
		core.NewPoint(0, 1, 0),
		core.NewVector(0, 1, 0),
	))
	return w, camera
}

func mustAddChild(g *scene.Graph, group, child scene.ID) {
	if err := g.AddChild(group, child); err != nil {
		panic(err)
	}
}
