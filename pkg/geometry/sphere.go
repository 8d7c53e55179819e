package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center  core.Vec3
	Radius  float64
	Surface material.Surface
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, surface material.Surface) *Sphere {
	return &Sphere{
		Center:  center,
		Radius:  radius,
		Surface: surface,
	}
}

// Hit tests if a ray intersects with the sphere in front of its origin
func (s *Sphere) Hit(ray core.Ray) (*core.HitRecord, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return nil, false
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer root first, fall back to the farther one when the origin is inside
	root := (-halfB - sqrtD) / a
	if root < 0 {
		root = (-halfB + sqrtD) / a
		if root < 0 {
			return nil, false
		}
	}

	point := ray.At(root)
	return &core.HitRecord{
		Point:  point,
		Normal: point.Subtract(s.Center).Normalize(),
		T:      root,
	}, true
}

// ColorAt returns the flat diffuse color of the sphere
func (s *Sphere) ColorAt(point core.Vec3) core.Vec3 {
	return s.Surface.Diffuse
}

// SpecularColor returns the highlight color of the sphere
func (s *Sphere) SpecularColor() core.Vec3 {
	return s.Surface.Specular
}
