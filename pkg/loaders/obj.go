package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// LoadOBJ reads a Wavefront OBJ file into a mesh
func LoadOBJ(filename string) (*lights.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	mesh, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return mesh, nil
}

// ParseOBJ reads vertex (v) and face (f) records. Other records are ignored.
// Face tokens may be "i", "i/t", "i//n" or "i/t/n"; only the vertex index is used.
// Indices are 1-based, negative indices count back from the last vertex read,
// and polygons are fan-triangulated. A malformed record fails the whole load.
func ParseOBJ(r io.Reader) (*lights.Mesh, error) {
	var vertices []core.Vec3
	var triangles []lights.Triangle

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			vertex, err := parseOBJVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			vertices = append(vertices, vertex)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices, got %d", lineNum, len(fields)-1)
			}
			indices := make([]int, 0, len(fields)-1)
			for _, token := range fields[1:] {
				idx, err := parseOBJIndex(token, len(vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				indices = append(indices, idx)
			}
			// Fan around the first vertex
			for i := 1; i+1 < len(indices); i++ {
				triangles = append(triangles, lights.Triangle{indices[0], indices[i], indices[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ data: %w", err)
	}

	return lights.NewMesh(vertices, triangles)
}

// parseOBJVertex parses "x y z [w]"
func parseOBJVertex(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("vertex needs 3 coordinates, got %d", len(fields))
	}

	var coords [3]float64
	for i := range coords {
		value, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid vertex coordinate %q", fields[i])
		}
		coords[i] = value
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

// parseOBJIndex converts a face token to a 0-based vertex index.
// Positive indices past the current vertex count are checked when the mesh is built.
func parseOBJIndex(token string, vertexCount int) (int, error) {
	vertexPart, _, _ := strings.Cut(token, "/")
	idx, err := strconv.Atoi(vertexPart)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q", token)
	}

	switch {
	case idx > 0:
		return idx - 1, nil
	case idx < 0 && -idx <= vertexCount:
		return vertexCount + idx, nil
	default:
		return 0, fmt.Errorf("face index %d out of range", idx)
	}
}
