package geometry

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Shape interface for objects that can be hit by rays and shaded.
// The set of implementations is closed: Sphere and Plane.
type Shape interface {
	// Hit returns the nearest forward intersection with the ray, or (nil, false) on a miss
	Hit(ray core.Ray) (*core.HitRecord, bool)
	// ColorAt returns the diffuse surface color at a point on the shape
	ColorAt(point core.Vec3) core.Vec3
	// SpecularColor returns the highlight color of the shape
	SpecularColor() core.Vec3
}
