package server

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Parameter defaults and limits shared by the render and inspect endpoints
const (
	minImageSize    = 1
	defaultWidth    = 600
	defaultHeight   = 400
	maxImageSize    = 2000
	maxPhongPower   = 500
	maxIntensity    = 1000
	maxTextureTiles = 100
)

// Server handles web requests for the Phong raytracer
type Server struct {
	port     int
	texture  material.Texture // Floor texture, nil for a flat floor
	areaMesh *lights.Mesh     // Area light mesh, nil for none
	logger   *slog.Logger
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{
		port:   port,
		logger: slog.Default(),
	}
}

// SetFloorTexture sets the texture applied to every scene with a floor
func (s *Server) SetFloorTexture(texture material.Texture) {
	s.texture = texture
}

// SetAreaLightMesh sets the mesh loaded into every scene with an area light
func (s *Server) SetAreaLightMesh(mesh *lights.Mesh) {
	s.areaMesh = mesh
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListScenes())
}

// handleSceneConfig returns the default render parameters with validation limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	defaults := scene.DefaultConfig()
	response := map[string]interface{}{
		"defaults": map[string]interface{}{
			"width":         defaultWidth,
			"height":        defaultHeight,
			"power":         defaults.PhongPower,
			"intensity":     defaults.PointLightIntensity,
			"areaIntensity": defaults.AreaLightIntensity,
			"tilesX":        defaults.TilesX,
			"tilesY":        defaults.TilesY,
		},
		"limits": map[string]interface{}{
			"width":         map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":        map[string]int{"min": minImageSize, "max": maxImageSize},
			"power":         map[string]float64{"min": 0, "max": maxPhongPower},
			"intensity":     map[string]float64{"min": 0, "max": maxIntensity},
			"areaIntensity": map[string]float64{"min": 0, "max": maxIntensity},
			"tilesX":        map[string]int{"min": 1, "max": maxTextureTiles},
			"tilesY":        map[string]int{"min": 1, "max": maxTextureTiles},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// createScene builds the requested scene with the server's texture and mesh applied
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.NewScene(req.Scene)
	if err != nil {
		return nil, err
	}

	if s.texture != nil && sceneObj.Floor != nil {
		sceneObj.Floor.ApplyTexture(s.texture)
	}
	if s.areaMesh != nil && sceneObj.AreaLight != nil {
		sceneObj.AreaLight.SetMesh(s.areaMesh)
	}

	sceneObj.ApplyConfig(scene.Config{
		PhongPower:          req.PhongPower,
		PointLightIntensity: req.PointLightIntensity,
		AreaLightIntensity:  req.AreaLightIntensity,
		TilesX:              req.TilesX,
		TilesY:              req.TilesY,
	})
	return sceneObj, nil
}

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError writes a JSON error body
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
