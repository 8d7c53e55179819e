package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

type sceneEntry struct {
	description string
	build       func() *Scene
}

var builtInScenes = map[string]sceneEntry{
	"default": {
		description: "Textured floor, three spheres, three point lights and an optional mesh area light",
		build:       NewDefaultScene,
	},
	"soft-shadows": {
		description: "Default geometry lit by a quad area light",
		build:       NewSoftShadowScene,
	},
	"single-sphere": {
		description: "One red sphere under a point light",
		build:       NewSingleSphereScene,
	},
}

// NewScene builds the named built-in scene
func NewScene(name string) (*Scene, error) {
	entry, ok := builtInScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(SceneNames(), ", "))
	}
	return entry.build(), nil
}

// SceneNames returns the built-in scene identifiers in sorted order
func SceneNames() []string {
	names := make([]string, 0, len(builtInScenes))
	for name := range builtInScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListScenes returns every built-in scene sorted by identifier
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtInScenes))
	for _, name := range SceneNames() {
		scenes = append(scenes, SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Description: builtInScenes[name].description,
		})
	}
	return scenes
}

// titleCase converts an identifier to title case
// e.g., "soft-shadows" -> "Soft Shadows"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
