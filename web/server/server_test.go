package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

func doRequest(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(t, NewServer(0), "/api/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestHandleScenes(t *testing.T) {
	rec := doRequest(t, NewServer(0), "/api/scenes")

	var scenes []scene.SceneInfo
	if err := json.NewDecoder(rec.Body).Decode(&scenes); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(scenes) != len(scene.ListScenes()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.ListScenes()), len(scenes))
	}
}

func TestHandleSceneConfig(t *testing.T) {
	rec := doRequest(t, NewServer(0), "/api/scene-config")

	var body struct {
		Defaults map[string]float64 `json:"defaults"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body.Defaults["power"] != 20 || body.Defaults["intensity"] != 10 {
		t.Errorf("Unexpected defaults %v", body.Defaults)
	}
}

func TestHandleRender(t *testing.T) {
	rec := doRequest(t, NewServer(0), "/api/render?scene=single-sphere&width=16&height=12&power=30")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("Body is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 12 {
		t.Errorf("Expected 16x12 image, got %v", img.Bounds())
	}

	if rec.Header().Get("X-Render-Hit-Pixels") == "" || rec.Header().Get("X-Render-Tiles") != "1" {
		t.Errorf("Missing render stat headers: %v", rec.Header())
	}
}

func TestHandleRenderBadParameters(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"non-numeric width", "width=abc"},
		{"zero height", "height=0"},
		{"oversized width", "width=5000"},
		{"negative power", "power=-1"},
		{"NaN power", "power=NaN"},
		{"NaN intensity", "intensity=NaN"},
		{"infinite area intensity", "areaIntensity=Inf"},
		{"bad intensity", "intensity=bright"},
		{"zero tiles", "tilesX=0"},
		{"unknown scene", "scene=cornell-box"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, NewServer(0), "/api/render?"+tt.query)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected JSON error, got %s", ct)
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil || body["error"] == "" {
				t.Errorf("Expected error message, got %v (%v)", body, err)
			}
		})
	}
}

func TestHandleRenderMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	NewServer(0).Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}

func TestSceneConfigMatchesRenderDefaults(t *testing.T) {
	s := NewServer(0)
	rec := doRequest(t, s, "/api/scene-config")

	var body struct {
		Defaults map[string]float64 `json:"defaults"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	req, err := s.parseRenderRequest(httptest.NewRequest(http.MethodGet, "/api/render", nil))
	if err != nil {
		t.Fatalf("parseRenderRequest failed: %v", err)
	}
	if body.Defaults["width"] != float64(req.Width) || body.Defaults["height"] != float64(req.Height) {
		t.Errorf("Advertised size %vx%v differs from render default %dx%d",
			body.Defaults["width"], body.Defaults["height"], req.Width, req.Height)
	}
}

func TestParseRenderRequestDefaults(t *testing.T) {
	req, err := NewServer(0).parseRenderRequest(httptest.NewRequest(http.MethodGet, "/api/render", nil))
	if err != nil {
		t.Fatalf("parseRenderRequest failed: %v", err)
	}

	if req.Scene != "default" || req.PhongPower != 20 || req.PointLightIntensity != 10 || req.TilesX != 10 {
		t.Errorf("Unexpected defaults %+v", req)
	}
}

func TestParseParams(t *testing.T) {
	values := url.Values{"n": {"7"}, "f": {"2.5"}, "bad": {"x"}}

	if got, err := parseIntParam(values, "n", 1, 0, 10); err != nil || got != 7 {
		t.Errorf("parseIntParam = %d, %v", got, err)
	}
	if got, err := parseIntParam(values, "missing", 3, 0, 10); err != nil || got != 3 {
		t.Errorf("Expected default 3, got %d, %v", got, err)
	}
	if _, err := parseIntParam(values, "n", 1, 0, 5); err == nil {
		t.Error("Expected range error")
	}
	if _, err := parseIntParam(values, "bad", 1, 0, 5); err == nil {
		t.Error("Expected parse error")
	}
	if got, err := parseFloatParam(values, "f", 1, 0, 10); err != nil || got != 2.5 {
		t.Errorf("parseFloatParam = %v, %v", got, err)
	}
	if _, err := parseFloatParam(values, "bad", 1, 0, 10); err == nil {
		t.Error("Expected parse error")
	}
	for _, value := range []string{"NaN", "nan", "Inf", "-Inf", "+Inf"} {
		if _, err := parseFloatParam(url.Values{"f": {value}}, "f", 1, -1e9, 1e9); err == nil {
			t.Errorf("Expected %s to be rejected", value)
		}
	}
}

func TestCreateSceneAppliesAssets(t *testing.T) {
	s := NewServer(0)
	s.SetFloorTexture(material.NewImageTexture(1, 1, []core.Vec3{material.White}))
	mesh, err := lights.NewMesh([]core.Vec3{core.NewVec3(0, 0, 0)}, nil)
	if err != nil {
		t.Fatalf("NewMesh failed: %v", err)
	}
	s.SetAreaLightMesh(mesh)

	sceneObj, err := s.createScene(&RenderRequest{Scene: "default", PhongPower: 12, TilesX: 2, TilesY: 3})
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}
	if sceneObj.Floor.Texture() == nil {
		t.Error("Expected floor texture")
	}
	if samples := sceneObj.AreaLight.SamplePositions(); len(samples) != 1 || samples[0] != core.NewVec3(0, 9, 2) {
		t.Errorf("Expected one offset area light sample, got %v", samples)
	}
	if sceneObj.Shading.PhongPower != 12 || sceneObj.Floor.TilesX != 2 || sceneObj.Floor.TilesY != 3 {
		t.Error("Expected request parameters applied")
	}

	// Scenes without a floor or area light ignore the assets
	if _, err := s.createScene(&RenderRequest{Scene: "single-sphere", TilesX: 1, TilesY: 1}); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestHandleInspect(t *testing.T) {
	s := NewServer(0)

	tests := []struct {
		name         string
		query        string
		expectedCode int
		expectHit    bool
		geometryType string
	}{
		// Center of the view looks straight at the sphere
		{"sphere hit", "scene=single-sphere&width=3&height=3&x=1&y=1", http.StatusOK, true, "sphere"},
		{"corner miss", "scene=single-sphere&width=3&height=3&x=0&y=0", http.StatusOK, false, ""},
		{"missing x", "scene=single-sphere&width=3&height=3&y=1", http.StatusBadRequest, false, ""},
		{"out of bounds", "scene=single-sphere&width=3&height=3&x=3&y=1", http.StatusBadRequest, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, "/api/inspect?"+tt.query)
			if rec.Code != tt.expectedCode {
				t.Fatalf("Expected %d, got %d: %s", tt.expectedCode, rec.Code, rec.Body.String())
			}
			if tt.expectedCode != http.StatusOK {
				return
			}

			var response InspectResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("Invalid JSON: %v", err)
			}
			if response.Hit != tt.expectHit || response.GeometryType != tt.geometryType {
				t.Errorf("Expected hit=%v type=%q, got %+v", tt.expectHit, tt.geometryType, response)
			}
		})
	}
}
