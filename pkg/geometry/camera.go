package geometry

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
)

// ViewPlane is the rectangular image plane that camera rays pass through.
// It always faces along the world Z axis at Position.Z.
type ViewPlane struct {
	Min      core.Vec2 // Bottom-left corner
	Max      core.Vec2 // Top-right corner
	Position core.Vec3
}

// NewViewPlane creates a view plane spanning min to max at depth z
func NewViewPlane(min, max core.Vec2, z float64) ViewPlane {
	return ViewPlane{
		Min:      min,
		Max:      max,
		Position: core.NewVec3(0, 0, z),
	}
}

// DefaultViewPlane returns a 6x4 view plane at z = 5
func DefaultViewPlane() ViewPlane {
	return NewViewPlane(core.NewVec2(-3, -2), core.NewVec2(3, 2), 5)
}

// SetSize replaces the corners of the view plane
func (vp *ViewPlane) SetSize(min, max core.Vec2) {
	vp.Min = min
	vp.Max = max
}

func (vp ViewPlane) Width() float64  { return vp.Max.X - vp.Min.X }
func (vp ViewPlane) Height() float64 { return vp.Max.Y - vp.Min.Y }

// Aspect returns width / height
func (vp ViewPlane) Aspect() float64 {
	return vp.Width() / vp.Height()
}

func (vp ViewPlane) TopLeft() core.Vec2     { return core.NewVec2(vp.Min.X, vp.Max.Y) }
func (vp ViewPlane) TopRight() core.Vec2    { return vp.Max }
func (vp ViewPlane) BottomLeft() core.Vec2  { return vp.Min }
func (vp ViewPlane) BottomRight() core.Vec2 { return core.NewVec2(vp.Max.X, vp.Min.Y) }

// ToWorld maps (u, v) in [0,1]² onto the view plane in world space
func (vp ViewPlane) ToWorld(u, v float64) core.Vec3 {
	return core.NewVec3(
		u*vp.Width()+vp.Min.X,
		v*vp.Height()+vp.Min.Y,
		vp.Position.Z,
	)
}

// RenderCam casts rays from its position through a view plane.
// It is restricted to looking down the Z axis.
type RenderCam struct {
	Position core.Vec3
	Aim      core.Vec3
	View     ViewPlane
}

// NewRenderCam creates a camera at (0, 0, 10) aimed down -Z through the default view plane
func NewRenderCam() *RenderCam {
	return &RenderCam{
		Position: core.NewVec3(0, 0, 10),
		Aim:      core.NewVec3(0, 0, -1),
		View:     DefaultViewPlane(),
	}
}

// GetRay returns the ray from the camera through view plane coordinates (u, v)
func (c *RenderCam) GetRay(u, v float64) core.Ray {
	pointOnPlane := c.View.ToWorld(u, v)
	return core.NewRay(c.Position, pointOnPlane.Subtract(c.Position).Normalize())
}
