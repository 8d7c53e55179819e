package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

const (
	DefaultPlaneSize = 20.0
	DefaultTiles     = 10
)

// UpAxis is the only plane orientation that receives texture mapping
var UpAxis = core.NewVec3(0, 1, 0)

// Plane represents a finite rectangle centered at Position. Its footprint spans
// Width along the world X axis and Height along the world Z axis.
type Plane struct {
	Position core.Vec3
	Normal   core.Vec3 // Normalized on construction
	Width    float64
	Height   float64
	Surface  material.Surface

	texture material.Texture
	TilesX  int // Texture repetitions across Width
	TilesY  int // Texture repetitions across Height
}

// NewPlane creates a new finite plane
func NewPlane(position, normal core.Vec3, width, height float64, surface material.Surface) *Plane {
	return &Plane{
		Position: position,
		Normal:   normal.Normalize(),
		Width:    width,
		Height:   height,
		Surface:  surface,
		TilesX:   DefaultTiles,
		TilesY:   DefaultTiles,
	}
}

// NewGroundPlane creates an upward facing plane of the default size
func NewGroundPlane(position core.Vec3, surface material.Surface) *Plane {
	return NewPlane(position, UpAxis, DefaultPlaneSize, DefaultPlaneSize, surface)
}

// ApplyTexture attaches a texture to the plane. A nil texture removes it.
func (p *Plane) ApplyTexture(texture material.Texture) {
	p.texture = texture
}

// Texture returns the attached texture, or nil
func (p *Plane) Texture() material.Texture {
	return p.texture
}

// SetTiles sets how many times the texture repeats along each axis
func (p *Plane) SetTiles(x, y int) {
	p.TilesX = max(1, x)
	p.TilesY = max(1, y)
}

// Hit tests if a ray intersects with the plane inside its footprint
func (p *Plane) Hit(ray core.Ray) (*core.HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Position.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t <= 0 {
		return nil, false
	}

	point := ray.At(t)
	if !p.Contains(point) {
		return nil, false
	}

	return &core.HitRecord{
		Point:  point,
		Normal: p.Normal,
		T:      t,
	}, true
}

// Contains reports whether the point's X and Z coordinates fall strictly inside the footprint
func (p *Plane) Contains(point core.Vec3) bool {
	halfW := p.Width / 2
	halfH := p.Height / 2
	return point.X > p.Position.X-halfW && point.X < p.Position.X+halfW &&
		point.Z > p.Position.Z-halfH && point.Z < p.Position.Z+halfH
}

// ColorAt returns the texture color at the point for textured ground planes,
// otherwise the flat diffuse color. Tilted planes are never texture mapped.
func (p *Plane) ColorAt(point core.Vec3) core.Vec3 {
	if p.texture == nil || p.Normal != UpAxis {
		return p.Surface.Diffuse
	}

	texW := float64(p.texture.Width())
	texH := float64(p.texture.Height())
	if texW == 0 || texH == 0 {
		return p.Surface.Diffuse
	}

	minX := p.Position.X - p.Width/2
	minZ := p.Position.Z - p.Height/2

	// Position in tile units: [0, TilesX] x [0, TilesY] across the footprint
	nX := (point.X - minX) / p.Width * float64(p.TilesX)
	nY := (point.Z - minZ) / p.Height * float64(p.TilesY)

	// Texel coordinates, sampled at pixel centers and wrapped for repetition
	i := nX*texW - 0.5
	j := nY*texH - 0.5
	x := int(math.Mod(i, texW))
	y := int(math.Mod(j, texH))

	return p.texture.ColorAt(x, y)
}

// SpecularColor returns the highlight color of the plane
func (p *Plane) SpecularColor() core.Vec3 {
	return p.Surface.Specular
}
