package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera     *geometry.RenderCam
	Shapes     []geometry.Shape // Objects in the scene, in hit-test order
	Lights     []lights.Light   // Lights in the scene
	Background core.Vec3        // Color of pixels whose ray hits nothing
	Shading    renderer.ShadingConfig

	Floor     *geometry.Plane   // Textured ground plane, nil if the scene has none
	AreaLight *lights.AreaLight // Mesh-backed light, nil if the scene has none
}

// Config holds the user-adjustable parameters applied to a built scene
type Config struct {
	PhongPower          float64 // Specular exponent
	PointLightIntensity float64 // Intensity of every point light
	AreaLightIntensity  float64 // Intensity of the area light
	TilesX, TilesY      int     // Floor texture repetitions
}

// DefaultConfig returns the interactive defaults
func DefaultConfig() Config {
	return Config{
		PhongPower:          20,
		PointLightIntensity: 10,
		AreaLightIntensity:  10,
		TilesX:              geometry.DefaultTiles,
		TilesY:              geometry.DefaultTiles,
	}
}

// New creates an empty scene with the default camera and a black background
func New() *Scene {
	return &Scene{
		Camera:     geometry.NewRenderCam(),
		Shapes:     make([]geometry.Shape, 0),
		Lights:     make([]lights.Light, 0),
		Background: material.Black,
		Shading:    renderer.DefaultShadingConfig(),
	}
}

func (s *Scene) GetCamera() *geometry.RenderCam { return s.Camera }
func (s *Scene) GetShapes() []geometry.Shape    { return s.Shapes }
func (s *Scene) GetLights() []lights.Light      { return s.Lights }
func (s *Scene) GetBackground() core.Vec3       { return s.Background }

// AddShape appends a shape to the scene
func (s *Scene) AddShape(shape geometry.Shape) {
	s.Shapes = append(s.Shapes, shape)
}

// AddPointLight adds a point light and returns it
func (s *Scene) AddPointLight(position core.Vec3, intensity float64) *lights.PointLight {
	light := lights.NewPointLight(position, intensity, 0.5)
	s.Lights = append(s.Lights, light)
	return light
}

// AddAreaLight adds the scene's area light. A scene holds at most one.
func (s *Scene) AddAreaLight(position core.Vec3, intensity float64) (*lights.AreaLight, error) {
	if s.AreaLight != nil {
		return nil, fmt.Errorf("scene already has an area light")
	}
	s.AreaLight = lights.NewAreaLight(position, intensity)
	s.Lights = append(s.Lights, s.AreaLight)
	return s.AreaLight, nil
}

// SetPointLightIntensity sets the intensity of every point light
func (s *Scene) SetPointLightIntensity(intensity float64) {
	for _, light := range s.Lights {
		if light.Type() == lights.LightTypePoint {
			light.SetIntensity(intensity)
		}
	}
}

// SetAreaLightIntensity sets the area light intensity. No-op without an area light.
func (s *Scene) SetAreaLightIntensity(intensity float64) {
	if s.AreaLight != nil {
		s.AreaLight.SetIntensity(intensity)
	}
}

// SetAreaLightMesh replaces the area light mesh
func (s *Scene) SetAreaLightMesh(mesh *lights.Mesh) error {
	if s.AreaLight == nil {
		return fmt.Errorf("scene has no area light")
	}
	s.AreaLight.SetMesh(mesh)
	return nil
}

// ApplyFloorTexture attaches a texture to the floor plane
func (s *Scene) ApplyFloorTexture(texture material.Texture) error {
	if s.Floor == nil {
		return fmt.Errorf("scene has no floor")
	}
	s.Floor.ApplyTexture(texture)
	return nil
}

// ApplyConfig pushes user parameters into the lights, floor and shading settings
func (s *Scene) ApplyConfig(config Config) {
	s.Shading.PhongPower = 0
	if !math.IsNaN(config.PhongPower) && !math.IsInf(config.PhongPower, 0) {
		s.Shading.PhongPower = max(0, config.PhongPower)
	}
	s.SetPointLightIntensity(config.PointLightIntensity)
	s.SetAreaLightIntensity(config.AreaLightIntensity)
	if s.Floor != nil {
		s.Floor.SetTiles(config.TilesX, config.TilesY)
	}
}

// GetPrimitiveCount returns the number of shapes plus area light triangles
func (s *Scene) GetPrimitiveCount() int {
	count := len(s.Shapes)
	if s.AreaLight != nil {
		count += s.AreaLight.Mesh().TriangleCount()
	}
	return count
}
