package renderer

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
)

// ShadowCheck reports whether any shape blocks the ray before it reaches target.
// A shape blocks when its hit point is strictly closer to the ray origin than target.
func ShadowCheck(shapes []geometry.Shape, ray core.Ray, target core.Vec3) bool {
	targetDistance := ray.Origin.Distance(target)
	for _, shape := range shapes {
		if hit, isHit := shape.Hit(ray); isHit && hit.Point.Distance(ray.Origin) < targetDistance {
			return true
		}
	}
	return false
}
