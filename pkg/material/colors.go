package material

import "github.com/df07/go-phong-raytracer/pkg/core"

// rgb8 converts 8-bit channel values to a linear color
func rgb8(r, g, b uint8) core.Vec3 {
	return core.NewVec3(float64(r)/255.0, float64(g)/255.0, float64(b)/255.0)
}

// Palette used by the built-in scenes
var (
	White          = rgb8(255, 255, 255)
	Black          = rgb8(0, 0, 0)
	Grey           = rgb8(128, 128, 128)
	LightGray      = rgb8(211, 211, 211)
	DarkOliveGreen = rgb8(85, 107, 47)
	Red            = rgb8(255, 0, 0)
	Green          = rgb8(0, 128, 0)
	Blue           = rgb8(0, 0, 255)
)
