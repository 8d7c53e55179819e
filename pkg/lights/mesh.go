package lights

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Triangle holds three indices into a mesh's vertex list
type Triangle [3]int

// Mesh is an immutable triangulated vertex set
type Mesh struct {
	vertices  []core.Vec3
	triangles []Triangle
}

// NewMesh validates the triangle indices and returns a mesh that owns copies of the inputs
func NewMesh(vertices []core.Vec3, triangles []Triangle) (*Mesh, error) {
	for i, tri := range triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("triangle %d references vertex %d, mesh has %d vertices", i, idx, len(vertices))
			}
		}
	}

	return &Mesh{
		vertices:  append([]core.Vec3(nil), vertices...),
		triangles: append([]Triangle(nil), triangles...),
	}, nil
}

// NewQuadMesh builds a flat grid in the XZ plane centered on the origin, split
// into divisions x divisions cells of two triangles each
func NewQuadMesh(width, depth float64, divisions int) *Mesh {
	divisions = max(1, divisions)
	n := divisions + 1

	vertices := make([]core.Vec3, 0, n*n)
	for row := 0; row < n; row++ {
		z := -depth/2 + depth*float64(row)/float64(divisions)
		for col := 0; col < n; col++ {
			x := -width/2 + width*float64(col)/float64(divisions)
			vertices = append(vertices, core.NewVec3(x, 0, z))
		}
	}

	triangles := make([]Triangle, 0, 2*divisions*divisions)
	for row := 0; row < divisions; row++ {
		for col := 0; col < divisions; col++ {
			i0 := row*n + col
			i1 := i0 + 1
			i2 := i0 + n
			i3 := i2 + 1
			triangles = append(triangles, Triangle{i0, i2, i1}, Triangle{i1, i2, i3})
		}
	}

	return &Mesh{vertices: vertices, triangles: triangles}
}

// Vertices returns a copy of the vertex list
func (m *Mesh) Vertices() []core.Vec3 {
	return append([]core.Vec3(nil), m.vertices...)
}

// Triangles returns a copy of the triangle list
func (m *Mesh) Triangles() []Triangle {
	return append([]Triangle(nil), m.triangles...)
}

func (m *Mesh) VertexCount() int   { return len(m.vertices) }
func (m *Mesh) TriangleCount() int { return len(m.triangles) }

// Translate returns a new mesh with every vertex moved by offset
func (m *Mesh) Translate(offset core.Vec3) *Mesh {
	vertices := make([]core.Vec3, len(m.vertices))
	for i, v := range m.vertices {
		vertices[i] = v.Add(offset)
	}
	return &Mesh{
		vertices:  vertices,
		triangles: m.triangles,
	}
}
