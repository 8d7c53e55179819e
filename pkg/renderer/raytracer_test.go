package renderer

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// testScene is a minimal Scene implementation
type testScene struct {
	camera     *geometry.RenderCam
	shapes     []geometry.Shape
	lights     []lights.Light
	background core.Vec3
}

func (s *testScene) GetCamera() *geometry.RenderCam { return s.camera }
func (s *testScene) GetShapes() []geometry.Shape    { return s.shapes }
func (s *testScene) GetLights() []lights.Light      { return s.lights }
func (s *testScene) GetBackground() core.Vec3       { return s.background }

// newSingleSphereScene builds one red sphere of radius 2 at the origin lit from above
func newSingleSphereScene() *testScene {
	return &testScene{
		camera: geometry.NewRenderCam(),
		shapes: []geometry.Shape{
			geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewSurface(material.Red)),
		},
		lights: []lights.Light{
			lights.NewPointLight(core.NewVec3(0, 5, 0), 100, 0.1),
		},
		background: material.Black,
	}
}

func renderConfig(width, height int) RenderConfig {
	config := DefaultRenderConfig()
	config.Width = width
	config.Height = height
	return config
}

func TestRender_SingleSphereScenario(t *testing.T) {
	tests := []struct {
		name      string
		viewMin   core.Vec2
		viewMax   core.Vec2
		expectHit int
	}{
		{"default view plane", core.NewVec2(-3, -2), core.NewVec2(3, 2), -1},
		{"narrow view plane", core.NewVec2(-1, -1), core.NewVec2(1, 1), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := newSingleSphereScene()
			scene.camera.View.SetSize(tt.viewMin, tt.viewMax)

			img, stats, err := NewRaytracer(scene, renderConfig(2, 2), nil).Render()
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}

			background := color.RGBA{A: 255}
			hits := 0
			for j := 0; j < 2; j++ {
				for i := 0; i < 2; i++ {
					ray := scene.camera.GetRay((float64(i)+0.5)/2, (float64(j)+0.5)/2)
					_, rayHits := scene.shapes[0].Hit(ray)
					pixel := img.RGBAAt(i, 1-j)

					if !rayHits {
						if pixel != background {
							t.Errorf("Pixel (%d,%d) missed the sphere but is %v, expected background", i, j, pixel)
						}
						continue
					}

					hits++
					if pixel == background {
						t.Errorf("Pixel (%d,%d) hit the sphere but is background", i, j)
					}
					if pixel.R < pixel.G || pixel.R < pixel.B || pixel.R == 0 {
						t.Errorf("Pixel (%d,%d) = %v is not red dominant", i, j, pixel)
					}
				}
			}

			if tt.expectHit >= 0 && hits != tt.expectHit {
				t.Errorf("Expected %d hit pixels, got %d", tt.expectHit, hits)
			}
			if stats.HitPixels != hits || stats.BackgroundPixels != 4-hits {
				t.Errorf("Stats %+v disagree with %d hit pixels", stats, hits)
			}
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	scene := newSingleSphereScene()
	scene.shapes = append(scene.shapes,
		geometry.NewGroundPlane(core.NewVec3(0, -2, 0), material.NewSurface(material.Grey)))

	area := lights.NewAreaLight(core.NewVec3(0, 6, 2), 20)
	area.SetMesh(lights.NewQuadMesh(2, 2, 2))
	scene.lights = append(scene.lights, area)

	render := func(workers, tileSize int) *image.RGBA {
		config := renderConfig(37, 23)
		config.NumWorkers = workers
		config.TileSize = tileSize
		img, _, err := NewRaytracer(scene, config, nil).Render()
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		return img
	}

	first := render(1, 64)
	second := render(1, 64)
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("Rendering the same scene twice produced different images")
	}

	parallel := render(4, 8)
	if !bytes.Equal(first.Pix, parallel.Pix) {
		t.Error("Parallel tiled render differs from single worker render")
	}
}

func TestRender_VerticalFlip(t *testing.T) {
	scene := &testScene{
		camera: geometry.NewRenderCam(),
		// Only the upper half of the view sees this sphere
		shapes:     []geometry.Shape{geometry.NewSphere(core.NewVec3(0, 2, 0), 0.5, material.NewSurface(material.White))},
		background: core.NewVec3(0, 0, 1),
	}

	img, _, err := NewRaytracer(scene, renderConfig(1, 2), nil).Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	blue := color.RGBA{B: 255, A: 255}
	if top := img.RGBAAt(0, 0); top == blue {
		t.Errorf("Expected sphere in image row 0, got background %v", top)
	}
	if bottom := img.RGBAAt(0, 1); bottom != blue {
		t.Errorf("Expected background in image row 1, got %v", bottom)
	}
}

func TestRender_InvalidSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, _, err := NewRaytracer(newSingleSphereScene(), renderConfig(tt.width, tt.height), nil).Render()
			if err == nil {
				t.Error("Expected error for invalid size")
			}
			if img != nil {
				t.Error("Expected no image on error")
			}
		})
	}
}

func TestRender_ClampsOverexposedPixels(t *testing.T) {
	scene := newSingleSphereScene()
	scene.lights = []lights.Light{lights.NewPointLight(core.NewVec3(0, 0, 5), 1e6, 0.1)}
	scene.camera.View.SetSize(core.NewVec2(-0.1, -0.1), core.NewVec2(0.1, 0.1))

	img, _, err := NewRaytracer(scene, renderConfig(1, 1), nil).Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if pixel := img.RGBAAt(0, 0); pixel.R != 255 || pixel.G != 255 || pixel.B != 255 {
		t.Errorf("Expected saturated white, got %v", pixel)
	}
}

func TestNearestHit(t *testing.T) {
	near := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewSurface(material.Red))
	far := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewSurface(material.Blue))
	twin := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewSurface(material.Green))
	ray := core.NewRay(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1))

	tests := []struct {
		name     string
		shapes   []geometry.Shape
		expected geometry.Shape
	}{
		{"near first", []geometry.Shape{near, far}, near},
		{"near last", []geometry.Shape{far, near}, near},
		{"tie keeps first", []geometry.Shape{twin, near}, twin},
		{"nothing hit", []geometry.Shape{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, hit := NearestHit(tt.shapes, ray)
			if shape != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, shape)
			}
			if (shape == nil) != (hit == nil) {
				t.Errorf("Shape %v and hit %v disagree", shape, hit)
			}
		})
	}
}

func TestNewTileGrid(t *testing.T) {
	width, height := 130, 70
	tiles := NewTileGrid(width, height, 64)

	if len(tiles) != 6 {
		t.Fatalf("Expected 3x2 tiles, got %d", len(tiles))
	}

	covered := make([]int, width*height)
	for _, tile := range tiles {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				covered[y*width+x]++
			}
		}
	}
	for i, count := range covered {
		if count != 1 {
			t.Fatalf("Pixel %d covered %d times", i, count)
		}
	}
}
