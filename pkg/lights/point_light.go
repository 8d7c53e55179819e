package lights

import "github.com/df07/go-phong-raytracer/pkg/core"

// PointLight emits from a single position
type PointLight struct {
	Position  core.Vec3
	Radius    float64 // Display size only, does not affect shading
	intensity float64
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, intensity, radius float64) *PointLight {
	return &PointLight{
		Position:  position,
		Radius:    radius,
		intensity: clampIntensity(intensity),
	}
}

func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

func (pl *PointLight) Intensity() float64 {
	return pl.intensity
}

func (pl *PointLight) SetIntensity(intensity float64) {
	pl.intensity = clampIntensity(intensity)
}

// SamplePositions returns the light position
func (pl *PointLight) SamplePositions() []core.Vec3 {
	return []core.Vec3{pl.Position}
}
