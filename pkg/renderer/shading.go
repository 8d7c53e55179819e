package renderer

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// ShadingConfig contains the local illumination parameters
type ShadingConfig struct {
	PhongPower    float64 // Specular exponent
	AmbientFactor float64 // Fraction of the surface color added regardless of lighting
	ShadowBias    float64 // Offset along the normal for shadow probe origins
}

// DefaultShadingConfig returns sensible default values
func DefaultShadingConfig() ShadingConfig {
	return ShadingConfig{
		PhongPower:    20,
		AmbientFactor: 0.15,
		ShadowBias:    1e-4,
	}
}

// Shader computes ambient, Lambert and Phong lighting at surface points.
// Its inputs are read-only for the lifetime of a render.
type Shader struct {
	shapes []geometry.Shape
	lights []lights.Light
	eye    core.Vec3
	config ShadingConfig
}

// NewShader creates a shader for the given scene contents viewed from eye
func NewShader(shapes []geometry.Shape, sceneLights []lights.Light, eye core.Vec3, config ShadingConfig) *Shader {
	return &Shader{
		shapes: shapes,
		lights: sceneLights,
		eye:    eye,
		config: config,
	}
}

// Shade returns the unclamped color at a hit point: ambient plus every light's contribution
func (s *Shader) Shade(hit core.HitRecord, diffuse, specular core.Vec3) core.Vec3 {
	result := s.Ambient(diffuse)
	for _, light := range s.lights {
		result = result.Add(s.LightContribution(light, hit, diffuse, specular))
	}
	return result
}

// Ambient returns the light-independent floor for a surface color
func (s *Shader) Ambient(diffuse core.Vec3) core.Vec3 {
	return diffuse.Multiply(s.config.AmbientFactor)
}

// LightContribution sums the diffuse and specular terms over every sample position of
// the light. Each unoccluded sample contributes with the full light intensity.
func (s *Shader) LightContribution(light lights.Light, hit core.HitRecord, diffuse, specular core.Vec3) core.Vec3 {
	result := core.Vec3{}
	normal := hit.Normal.Normalize()
	toEye := s.eye.Subtract(hit.Point).Normalize()
	probeOrigin := hit.Point.Add(normal.Multiply(s.config.ShadowBias))
	intensity := light.Intensity()

	for _, samplePos := range light.SamplePositions() {
		distanceSq := samplePos.Subtract(hit.Point).LengthSquared()
		if distanceSq == 0 {
			continue
		}
		toLight := samplePos.Subtract(hit.Point).Normalize()

		if ShadowCheck(s.shapes, core.NewRay(probeOrigin, toLight), samplePos) {
			continue
		}

		// Inverse-square falloff
		illumination := intensity / distanceSq

		lambert := max(0, normal.Dot(toLight))
		result = result.Add(diffuse.Multiply(illumination * lambert))

		bisector := toEye.Add(toLight).Normalize()
		phong := math.Pow(max(0, normal.Dot(bisector)), s.config.PhongPower)
		result = result.Add(specular.Multiply(illumination * phong))
	}

	return result
}
