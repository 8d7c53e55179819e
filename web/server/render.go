package server

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene               string  `json:"scene"`         // Scene name (e.g., "default")
	Width               int     `json:"width"`         // Image width
	Height              int     `json:"height"`        // Image height
	PhongPower          float64 `json:"power"`         // Specular exponent
	PointLightIntensity float64 `json:"intensity"`     // Point light intensity
	AreaLightIntensity  float64 `json:"areaIntensity"` // Area light intensity
	TilesX              int     `json:"tilesX"`        // Floor texture repetitions along X
	TilesY              int     `json:"tilesY"`        // Floor texture repetitions along Z
}

// handleRender renders the requested scene and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := renderer.DefaultRenderConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.Shading = sceneObj.Shading

	raytracer := renderer.NewRaytracer(sceneObj, config, core.NewSlogLogger(s.logger))
	img, stats, err := raytracer.Render()
	if err != nil {
		log.Printf("Render failed: %v", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	header := w.Header()
	header.Set("Content-Type", "image/png")
	header.Set("Content-Length", strconv.Itoa(buf.Len()))
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	header.Set("X-Render-Hit-Pixels", strconv.Itoa(stats.HitPixels))
	header.Set("X-Render-Background-Pixels", strconv.Itoa(stats.BackgroundPixels))
	header.Set("X-Render-Tiles", strconv.Itoa(stats.Tiles))
	header.Set("X-Render-Workers", strconv.Itoa(stats.Workers))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	defaults := scene.DefaultConfig()
	req := &RenderRequest{Scene: "default"}

	if sceneName := query.Get("scene"); sceneName != "" {
		req.Scene = sceneName
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", defaultWidth, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", defaultHeight, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.PhongPower, err = parseFloatParam(query, "power", defaults.PhongPower, 0, maxPhongPower); err != nil {
		return nil, err
	}
	if req.PointLightIntensity, err = parseFloatParam(query, "intensity", defaults.PointLightIntensity, 0, maxIntensity); err != nil {
		return nil, err
	}
	if req.AreaLightIntensity, err = parseFloatParam(query, "areaIntensity", defaults.AreaLightIntensity, 0, maxIntensity); err != nil {
		return nil, err
	}
	if req.TilesX, err = parseIntParam(query, "tilesX", defaults.TilesX, 1, maxTextureTiles); err != nil {
		return nil, err
	}
	if req.TilesY, err = parseIntParam(query, "tilesY", defaults.TilesY, 1, maxTextureTiles); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 1600*1200 {
		log.Printf("Render warning: %dx%d image may render slowly", req.Width, req.Height)
	}

	return req, nil
}
