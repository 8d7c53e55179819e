package lights

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

type LightType string

const (
	LightTypeArea  LightType = "area"
	LightTypePoint LightType = "point"
)

// Light interface for sources consulted by the shading pipeline.
// Each sample position is treated as an independent point emitter
// carrying the full light intensity.
type Light interface {
	Type() LightType

	// Intensity returns the scalar emission strength
	Intensity() float64

	// SetIntensity updates the emission strength. Negative values clamp to zero.
	SetIntensity(intensity float64)

	// SamplePositions returns the world-space points that emit light and
	// receive shadow probes. The returned slice must not be modified.
	SamplePositions() []core.Vec3
}

// clampIntensity floors an intensity at zero. NaN and infinities become zero.
func clampIntensity(intensity float64) float64 {
	if math.IsNaN(intensity) || math.IsInf(intensity, 0) {
		return 0
	}
	return max(0, intensity)
}
