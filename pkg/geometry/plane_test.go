package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

func newTestPlane() *Plane {
	// 20x20 ground plane at y=0 centered on the origin
	return NewGroundPlane(core.NewVec3(0, 0, 0), material.NewSurface(material.Grey))
}

func TestPlane_Hit_BasicIntersection(t *testing.T) {
	plane := newTestPlane()

	// Ray shooting down from above
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	hit, isHit := plane.Hit(ray)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}
	if hit.Point.Length() > 1e-9 {
		t.Errorf("Expected hit point at origin, got %v", hit.Point)
	}
	if hit.Normal != UpAxis {
		t.Errorf("Expected normal %v, got %v", UpAxis, hit.Normal)
	}
}

func TestPlane_Hit_ParallelRay(t *testing.T) {
	plane := newTestPlane()
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0))

	hit, isHit := plane.Hit(ray)
	if isHit {
		t.Errorf("Expected miss for parallel ray, but got hit at t=%f", hit.T)
	}
}

func TestPlane_Hit_BehindRay(t *testing.T) {
	plane := newTestPlane()
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))

	hit, isHit := plane.Hit(ray)
	if isHit {
		t.Errorf("Expected miss for intersection behind ray, but got hit at t=%f", hit.T)
	}
}

func TestPlane_Hit_FiniteExtent(t *testing.T) {
	plane := newTestPlane()
	down := core.NewVec3(0, -1, 0)

	tests := []struct {
		name   string
		x, z   float64
		expect bool
	}{
		{"center", 0, 0, true},
		{"just inside +x", 9.999, 0, true},
		{"just inside -z", 0, -9.999, true},
		{"on +x edge", 10, 0, false},
		{"on -x edge", -10, 0, false},
		{"on +z edge", 0, 10, false},
		{"on -z edge", 0, -10, false},
		{"outside corner", 11, 11, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(tt.x, 5, tt.z), down)
			_, isHit := plane.Hit(ray)
			if isHit != tt.expect {
				t.Errorf("Expected hit=%t at (%f, %f), got %t", tt.expect, tt.x, tt.z, isHit)
			}
		})
	}
}

// Every reported hit lies on the plane and strictly inside its footprint
func TestPlane_Hit_PointOnPlane(t *testing.T) {
	random := rand.New(rand.NewSource(11))
	plane := NewPlane(core.NewVec3(1, -2, 3), core.NewVec3(0, 2, 0), 8, 6, material.NewSurface(material.Grey))

	hits := 0
	for i := 0; i < 2000; i++ {
		origin := core.NewVec3(random.Float64()*20-10, random.Float64()*10, random.Float64()*20-10)
		direction := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1)
		hit, isHit := plane.Hit(core.NewRay(origin, direction))
		if !isHit {
			continue
		}
		hits++

		if d := hit.Point.Subtract(plane.Position).Dot(plane.Normal); math.Abs(d) > 1e-9 {
			t.Fatalf("Hit point %v is %f off the plane", hit.Point, d)
		}
		if !(hit.Point.X > -3 && hit.Point.X < 5 && hit.Point.Z > 0 && hit.Point.Z < 6) {
			t.Fatalf("Hit point %v outside the 8x6 footprint", hit.Point)
		}
	}

	if hits == 0 {
		t.Fatal("Expected at least one random ray to hit the plane")
	}
}

func TestPlane_NormalIsNormalized(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 5, 0), 1, 1, material.NewSurface(material.Grey))
	if plane.Normal != UpAxis {
		t.Errorf("Expected normalized up normal, got %v", plane.Normal)
	}
}

// newCornerTexture builds a 4x4 texture whose pixels encode their own coordinates
func newCornerTexture() *material.ImageTexture {
	pixels := make([]core.Vec3, 16)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			pixels[y*4+x] = core.NewVec3(float64(x), float64(y), 0)
		}
	}
	return material.NewImageTexture(4, 4, pixels)
}

func TestPlane_ColorAt_TextureCorners(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), UpAxis, 10, 10, material.NewSurface(material.Grey))
	plane.ApplyTexture(newCornerTexture())
	plane.SetTiles(1, 1)

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		{"min x, min z", core.NewVec3(-5, 0, -5), core.NewVec3(0, 0, 0)},
		{"max x, min z", core.NewVec3(5, 0, -5), core.NewVec3(3, 0, 0)},
		{"min x, max z", core.NewVec3(-5, 0, 5), core.NewVec3(0, 3, 0)},
		{"max x, max z", core.NewVec3(5, 0, 5), core.NewVec3(3, 3, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plane.ColorAt(tt.point); got != tt.expected {
				t.Errorf("Expected texel %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPlane_ColorAt_TextureRepeats(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), UpAxis, 10, 10, material.NewSurface(material.Grey))
	plane.ApplyTexture(newCornerTexture())
	plane.SetTiles(2, 2)

	// Center is the far edge of the first tile: nX = 1 -> texel 3
	if got := plane.ColorAt(core.NewVec3(0, 0, 0)); got != core.NewVec3(3, 3, 0) {
		t.Errorf("Expected texel (3,3) at center, got %v", got)
	}

	// Three quarters across: nX = 1.5 -> 5.5 mod 4 -> texel 1
	if got := plane.ColorAt(core.NewVec3(2.5, 0, 2.5)); got != core.NewVec3(1, 1, 0) {
		t.Errorf("Expected wrapped texel (1,1), got %v", got)
	}
}

func TestPlane_ColorAt_Fallbacks(t *testing.T) {
	// No texture attached
	plane := newTestPlane()
	if got := plane.ColorAt(core.NewVec3(1, 0, 1)); got != material.Grey {
		t.Errorf("Expected flat diffuse without texture, got %v", got)
	}

	// Textured but not facing up: texture is ignored
	wall := NewPlane(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), 10, 10, material.NewSurface(material.DarkOliveGreen))
	wall.ApplyTexture(newCornerTexture())
	if got := wall.ColorAt(core.NewVec3(1, 1, -5)); got != material.DarkOliveGreen {
		t.Errorf("Expected flat diffuse for tilted plane, got %v", got)
	}

	// Removing the texture restores the flat color
	plane.ApplyTexture(newCornerTexture())
	plane.ApplyTexture(nil)
	if got := plane.ColorAt(core.NewVec3(1, 0, 1)); got != material.Grey {
		t.Errorf("Expected flat diffuse after removing texture, got %v", got)
	}
}

func TestPlane_SetTilesClamps(t *testing.T) {
	plane := newTestPlane()
	plane.SetTiles(0, -4)
	if plane.TilesX != 1 || plane.TilesY != 1 {
		t.Errorf("Expected tiles clamped to 1x1, got %dx%d", plane.TilesX, plane.TilesY)
	}
}
