package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Width      int // Image width in pixels
	Height     int // Image height in pixels
	TileSize   int // Edge length of a work tile
	NumWorkers int // Number of parallel workers (0 = use CPU count)
	Shading    ShadingConfig
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:      1200,
		Height:     800,
		TileSize:   DefaultTileSize,
		NumWorkers: 0,
		Shading:    DefaultShadingConfig(),
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *geometry.RenderCam
	GetShapes() []geometry.Shape
	GetLights() []lights.Light
	GetBackground() core.Vec3
}

// Raytracer renders a scene snapshot one pixel-center ray at a time.
// The scene must not be modified while Render runs.
type Raytracer struct {
	scene  Scene
	config RenderConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		scene:  scene,
		config: config,
		logger: logger,
	}
}

// Config returns the render configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// NewShader creates the shader for the current scene snapshot
func (rt *Raytracer) NewShader() *Shader {
	return NewShader(rt.scene.GetShapes(), rt.scene.GetLights(), rt.scene.GetCamera().Position, rt.config.Shading)
}

// Render traces every pixel and returns the finished image.
// Pixel (i, j) in view coordinates, with j growing upward, is stored at image row height-1-j.
func (rt *Raytracer) Render() (*image.RGBA, RenderStats, error) {
	width, height := rt.config.Width, rt.config.Height
	if width <= 0 || height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if rt.scene.GetCamera() == nil {
		return nil, RenderStats{}, fmt.Errorf("scene has no camera")
	}

	startTime := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	shader := rt.NewShader()
	tiles := NewTileGrid(width, height, rt.config.TileSize)

	workerPool := NewWorkerPool(rt, shader, img, len(tiles), rt.config.NumWorkers)

	rt.logger.Printf("Rendering %dx%d: %d shapes, %d lights, %d tiles on %d workers...\n",
		width, height, len(rt.scene.GetShapes()), len(rt.scene.GetLights()), len(tiles), workerPool.GetNumWorkers())

	workerPool.Start()
	for i, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	stats := RenderStats{
		TotalPixels: width * height,
		Tiles:       len(tiles),
		Workers:     workerPool.GetNumWorkers(),
	}

	// Wait for every tile before handing the image out
	var renderErr error
	for range tiles {
		result, ok := workerPool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil && renderErr == nil {
			renderErr = result.Error
		}
		stats.merge(result.Stats)
	}
	workerPool.Stop()

	if renderErr != nil {
		return nil, RenderStats{}, renderErr
	}

	stats.Duration = time.Since(startTime)
	rt.logger.Printf("Render completed in %v (%d hit, %d background pixels)\n",
		stats.Duration, stats.HitPixels, stats.BackgroundPixels)

	return img, stats, nil
}

// renderBounds renders the pixels inside bounds (image coordinates) into img
func (rt *Raytracer) renderBounds(bounds image.Rectangle, img *image.RGBA, shader *Shader) TileStats {
	width, height := rt.config.Width, rt.config.Height
	camera := rt.scene.GetCamera()
	background := vec3ToColor(rt.scene.GetBackground())

	var stats TileStats
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		// Image row 0 is the top of the view
		j := height - 1 - y
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			u := (float64(i) + 0.5) / float64(width)
			v := (float64(j) + 0.5) / float64(height)

			colorVec, hit := rt.RayColor(camera.GetRay(u, v), shader)
			if !hit {
				img.SetRGBA(i, y, background)
				stats.BackgroundPixels++
				continue
			}
			img.SetRGBA(i, y, vec3ToColor(colorVec))
			stats.HitPixels++
		}
	}
	return stats
}

// RayColor returns the shaded color seen along the ray and whether any shape was hit.
// On a miss the background color is returned.
func (rt *Raytracer) RayColor(ray core.Ray, shader *Shader) (core.Vec3, bool) {
	shape, hit := NearestHit(rt.scene.GetShapes(), ray)
	if shape == nil {
		return rt.scene.GetBackground(), false
	}
	return shader.Shade(*hit, shape.ColorAt(hit.Point), shape.SpecularColor()), true
}

// NearestHit scans every shape and returns the one whose hit point is closest to the
// ray origin. Ties keep the earlier shape. Returns (nil, nil) when nothing is hit.
func NearestHit(shapes []geometry.Shape, ray core.Ray) (geometry.Shape, *core.HitRecord) {
	var closestShape geometry.Shape
	var closestHit *core.HitRecord
	shortestDistance := math.Inf(1)

	for _, shape := range shapes {
		hit, isHit := shape.Hit(ray)
		if !isHit {
			continue
		}
		if distance := ray.Origin.Distance(hit.Point); distance < shortestDistance {
			shortestDistance = distance
			closestShape = shape
			closestHit = hit
		}
	}

	return closestShape, closestHit
}

// vec3ToColor converts a linear color to 8-bit RGBA, clamping each channel to [0, 1]
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
