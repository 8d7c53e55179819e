package lights

import (
	"sync/atomic"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

var emptyMesh = &Mesh{}

// AreaLight is a triangulated light surface approximated by its vertices.
// The mesh is replaced as a whole so readers never observe a partial load.
type AreaLight struct {
	position  core.Vec3
	intensity float64
	mesh      atomic.Pointer[Mesh]
}

// NewAreaLight creates an area light with no mesh. Meshes set later are offset by position.
func NewAreaLight(position core.Vec3, intensity float64) *AreaLight {
	al := &AreaLight{
		position:  position,
		intensity: clampIntensity(intensity),
	}
	al.mesh.Store(emptyMesh)
	return al
}

func (al *AreaLight) Type() LightType {
	return LightTypeArea
}

// Position returns the offset applied to loaded meshes
func (al *AreaLight) Position() core.Vec3 {
	return al.position
}

func (al *AreaLight) Intensity() float64 {
	return al.intensity
}

func (al *AreaLight) SetIntensity(intensity float64) {
	al.intensity = clampIntensity(intensity)
}

// SetMesh translates the mesh by the light position and swaps it in.
// The offset is applied once here; the stored vertices are world-space.
// A nil mesh clears the light.
func (al *AreaLight) SetMesh(mesh *Mesh) {
	if mesh == nil {
		al.mesh.Store(emptyMesh)
		return
	}
	al.mesh.Store(mesh.Translate(al.position))
}

// Mesh returns the current world-space mesh
func (al *AreaLight) Mesh() *Mesh {
	return al.mesh.Load()
}

// SamplePositions returns the world-space mesh vertices
func (al *AreaLight) SamplePositions() []core.Vec3 {
	return al.mesh.Load().vertices
}
