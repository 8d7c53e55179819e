package scene

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Light placement of the default scene
var (
	defaultPointLights = []core.Vec3{
		core.NewVec3(-4, 1, 4),
		core.NewVec3(-5, 5, 2),
		core.NewVec3(3, 5, -2),
	}
	defaultAreaLightPosition = core.NewVec3(0, 9, 2)
)

const defaultLightIntensity = 100.0

// NewDefaultScene creates the floor, three spheres, three point lights and an
// area light that stays dark until a mesh is loaded
func NewDefaultScene() *Scene {
	s := New()
	addDefaultGeometry(s)

	for _, position := range defaultPointLights {
		s.AddPointLight(position, defaultLightIntensity)
	}
	// Cannot fail on a fresh scene
	_, _ = s.AddAreaLight(defaultAreaLightPosition, defaultLightIntensity)

	return s
}

// NewSoftShadowScene lights the default geometry only with an area light
// carrying a flat 4x4-cell panel
func NewSoftShadowScene() *Scene {
	s := New()
	addDefaultGeometry(s)

	areaLight, _ := s.AddAreaLight(defaultAreaLightPosition, defaultLightIntensity)
	areaLight.SetMesh(lights.NewQuadMesh(2, 2, 4))

	return s
}

// NewSingleSphereScene creates one red sphere at the origin lit from above
func NewSingleSphereScene() *Scene {
	s := New()
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewSurface(material.Red)))
	s.AddPointLight(core.NewVec3(0, 5, 0), defaultLightIntensity)
	return s
}

// addDefaultGeometry adds the floor first, then the spheres back to front
func addDefaultGeometry(s *Scene) {
	s.Floor = geometry.NewGroundPlane(core.NewVec3(0, -2, 0), material.NewSurface(material.Grey))
	s.AddShape(s.Floor)

	s.AddShape(geometry.NewSphere(core.NewVec3(3, 1, -5), 2, material.NewSurface(material.Green)))
	s.AddShape(geometry.NewSphere(core.NewVec3(-3, -1, 2), 1, material.NewSurface(material.Red)))
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 1, 0), 2, material.NewSurface(material.Blue)))
}
