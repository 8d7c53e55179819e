package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        [3]float64             `json:"color"` // Shaded linear color before clamping
	Properties   map[string]interface{} `json:"properties"`
}

func vec3Array(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// inspectPixel casts the camera ray through the center of image pixel (pixelX, pixelY)
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResponse {
	// Image row 0 is the top of the view
	u := (float64(pixelX) + 0.5) / float64(width)
	v := (float64(height-1-pixelY) + 0.5) / float64(height)
	ray := sceneObj.Camera.GetRay(u, v)

	shape, hit := renderer.NearestHit(sceneObj.Shapes, ray)
	if shape == nil {
		return InspectResponse{Hit: false, Color: vec3Array(sceneObj.Background)}
	}

	shader := renderer.NewShader(sceneObj.Shapes, sceneObj.Lights, sceneObj.Camera.Position, sceneObj.Shading)
	shaded := shader.Shade(*hit, shape.ColorAt(hit.Point), shape.SpecularColor())
	geometryType, properties := extractGeometryInfo(shape)

	return InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        vec3Array(hit.Point),
		Normal:       vec3Array(hit.Normal),
		Distance:     ray.Origin.Distance(hit.Point),
		Color:        vec3Array(shaded),
		Properties:   properties,
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vec3Array(geom.Center)
		properties["radius"] = geom.Radius
		properties["diffuse"] = vec3Array(geom.Surface.Diffuse)
		return "sphere", properties

	case *geometry.Plane:
		properties["position"] = vec3Array(geom.Position)
		properties["normal"] = vec3Array(geom.Normal)
		properties["width"] = geom.Width
		properties["height"] = geom.Height
		properties["diffuse"] = vec3Array(geom.Surface.Diffuse)
		properties["textured"] = geom.Texture() != nil
		properties["tiles"] = [2]int{geom.TilesX, geom.TilesY}
		return "plane", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	query := r.URL.Query()
	pixelX, err := parseIntParam(query, "x", -1, 0, req.Width-1)
	if err != nil || pixelX < 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid x coordinate: %q", query.Get("x")))
		return
	}
	pixelY, err := parseIntParam(query, "y", -1, 0, req.Height-1)
	if err != nil || pixelY < 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid y coordinate: %q", query.Get("y")))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY))
}
