package material

import "github.com/df07/go-phong-raytracer/pkg/core"

// Texture is a read-only 2D grid of colors addressed by integer pixel coordinates
type Texture interface {
	Width() int
	Height() int
	ColorAt(x, y int) core.Vec3
}

// Surface holds the shading colors of a scene object.
// Colors are linear RGB with 1.0 as full intensity.
type Surface struct {
	Diffuse  core.Vec3 // Base color used for ambient and Lambert terms
	Specular core.Vec3 // Highlight color used for the Phong term
}

// NewSurface creates a surface with the given diffuse color and a white highlight
func NewSurface(diffuse core.Vec3) Surface {
	return Surface{
		Diffuse:  diffuse,
		Specular: White,
	}
}

// WithSpecular returns a copy of the surface using a different highlight color
func (s Surface) WithSpecular(specular core.Vec3) Surface {
	s.Specular = specular
	return s
}
