package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/df07/go-phong-raytracer/pkg/output"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "RAYTRACER_"

// Config holds every user-adjustable setting of a render
type Config struct {
	Scene  string
	Width  int
	Height int

	PhongPower          float64
	PointLightIntensity float64
	AreaLightIntensity  float64
	TilesX              int
	TilesY              int

	TexturePath   string // Floor texture, empty for a flat floor
	AreaLightMesh string // OBJ file for the area light, empty for none

	OutputDir    string
	OutputName   string // Empty for render_<timestamp>.png
	PreviewWidth int    // Thumbnail width, 0 disables the preview

	Workers  int // 0 uses every CPU
	TileSize int

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Prefix    string
}

// Default returns the built-in configuration
func Default() Config {
	sceneDefaults := scene.DefaultConfig()
	return Config{
		Scene:               "default",
		Width:               1200,
		Height:              800,
		PhongPower:          sceneDefaults.PhongPower,
		PointLightIntensity: sceneDefaults.PointLightIntensity,
		AreaLightIntensity:  sceneDefaults.AreaLightIntensity,
		TilesX:              sceneDefaults.TilesX,
		TilesY:              sceneDefaults.TilesY,
		OutputDir:           "output",
		TileSize:            renderer.DefaultTileSize,
		S3Region:            "us-east-1",
	}
}

// Load starts from the defaults, loads envFile if it exists, then applies
// RAYTRACER_* environment variables. Variables already set in the process
// environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envBinding ties an environment variable suffix to a config field
type envBinding struct {
	name  string
	apply func(value string) error
}

func (c *Config) envBindings() []envBinding {
	return []envBinding{
		{"SCENE", stringSetter(&c.Scene)},
		{"WIDTH", intSetter(&c.Width)},
		{"HEIGHT", intSetter(&c.Height)},
		{"PHONG_POWER", floatSetter(&c.PhongPower)},
		{"POINT_LIGHT_INTENSITY", floatSetter(&c.PointLightIntensity)},
		{"AREA_LIGHT_INTENSITY", floatSetter(&c.AreaLightIntensity)},
		{"TILES_X", intSetter(&c.TilesX)},
		{"TILES_Y", intSetter(&c.TilesY)},
		{"TEXTURE", stringSetter(&c.TexturePath)},
		{"AREA_LIGHT_MESH", stringSetter(&c.AreaLightMesh)},
		{"OUTPUT_DIR", stringSetter(&c.OutputDir)},
		{"OUTPUT_NAME", stringSetter(&c.OutputName)},
		{"PREVIEW_WIDTH", intSetter(&c.PreviewWidth)},
		{"WORKERS", intSetter(&c.Workers)},
		{"TILE_SIZE", intSetter(&c.TileSize)},
		{"S3_BUCKET", stringSetter(&c.S3Bucket)},
		{"S3_REGION", stringSetter(&c.S3Region)},
		{"S3_ENDPOINT", stringSetter(&c.S3Endpoint)},
		{"S3_ACCESS_KEY", stringSetter(&c.S3AccessKey)},
		{"S3_SECRET_KEY", stringSetter(&c.S3SecretKey)},
		{"S3_PREFIX", stringSetter(&c.S3Prefix)},
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	for _, binding := range c.envBindings() {
		value, ok := lookup(EnvPrefix + binding.name)
		if !ok {
			continue
		}
		if err := binding.apply(value); err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, binding.name, err)
		}
	}
	return nil
}

func stringSetter(target *string) func(string) error {
	return func(value string) error {
		*target = value
		return nil
	}
}

func intSetter(target *int) func(string) error {
	return func(value string) error {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		*target = parsed
		return nil
	}
}

func floatSetter(target *float64) func(string) error {
	return func(value string) error {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		if !isFinite(parsed) {
			return fmt.Errorf("%q is not a finite number", value)
		}
		*target = parsed
		return nil
	}
}

// RegisterFlags binds command line flags to the config. The current values
// become the flag defaults, so flags override the environment.
func (c *Config) RegisterFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.Scene, "scene", c.Scene, "Scene name (see -help)")
	flags.IntVar(&c.Width, "width", c.Width, "Image width in pixels")
	flags.IntVar(&c.Height, "height", c.Height, "Image height in pixels")
	flags.Float64Var(&c.PhongPower, "power", c.PhongPower, "Phong specular exponent")
	flags.Float64Var(&c.PointLightIntensity, "intensity", c.PointLightIntensity, "Point light intensity")
	flags.Float64Var(&c.AreaLightIntensity, "area-intensity", c.AreaLightIntensity, "Area light intensity")
	flags.IntVar(&c.TilesX, "tiles-x", c.TilesX, "Floor texture repetitions along X")
	flags.IntVar(&c.TilesY, "tiles-y", c.TilesY, "Floor texture repetitions along Z")
	flags.StringVar(&c.TexturePath, "texture", c.TexturePath, "Floor texture image")
	flags.StringVar(&c.AreaLightMesh, "mesh", c.AreaLightMesh, "OBJ mesh for the area light")
	flags.StringVar(&c.OutputDir, "out", c.OutputDir, "Output directory")
	flags.StringVar(&c.OutputName, "name", c.OutputName, "Output file name (default render_<timestamp>.png)")
	flags.IntVar(&c.PreviewWidth, "preview", c.PreviewWidth, "Also save a preview this many pixels wide (0 = off)")
	flags.IntVar(&c.Workers, "workers", c.Workers, "Number of parallel workers (0 = auto-detect CPU count)")
	flags.IntVar(&c.TileSize, "tile-size", c.TileSize, "Edge length of a render tile in pixels")
	flags.StringVar(&c.S3Bucket, "s3-bucket", c.S3Bucket, "Also upload renders to this S3 bucket")
	flags.StringVar(&c.S3Prefix, "s3-prefix", c.S3Prefix, "Key prefix for S3 uploads")
}

// Validate rejects unusable sizes and clamps the remaining values into range
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	for _, field := range []struct {
		name  string
		value float64
	}{
		{"phong power", c.PhongPower},
		{"point light intensity", c.PointLightIntensity},
		{"area light intensity", c.AreaLightIntensity},
	} {
		if !isFinite(field.value) {
			return fmt.Errorf("%s must be a finite number, got %v", field.name, field.value)
		}
	}
	c.PhongPower = max(0, c.PhongPower)
	c.PointLightIntensity = max(0, c.PointLightIntensity)
	c.AreaLightIntensity = max(0, c.AreaLightIntensity)
	c.TilesX = max(1, c.TilesX)
	c.TilesY = max(1, c.TilesY)
	c.PreviewWidth = max(0, c.PreviewWidth)
	c.Workers = max(0, c.Workers)
	if c.TileSize <= 0 {
		c.TileSize = renderer.DefaultTileSize
	}
	return nil
}

// SceneConfig returns the parameters applied to a built scene
func (c Config) SceneConfig() scene.Config {
	return scene.Config{
		PhongPower:          c.PhongPower,
		PointLightIntensity: c.PointLightIntensity,
		AreaLightIntensity:  c.AreaLightIntensity,
		TilesX:              c.TilesX,
		TilesY:              c.TilesY,
	}
}

// RenderConfig returns the renderer settings using the given shading
func (c Config) RenderConfig(shading renderer.ShadingConfig) renderer.RenderConfig {
	return renderer.RenderConfig{
		Width:      c.Width,
		Height:     c.Height,
		TileSize:   c.TileSize,
		NumWorkers: c.Workers,
		Shading:    shading,
	}
}

// S3Enabled reports whether uploads are configured
func (c Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

// S3Config returns the upload settings
func (c Config) S3Config() output.S3Config {
	return output.S3Config{
		Bucket:    c.S3Bucket,
		Region:    c.S3Region,
		Endpoint:  c.S3Endpoint,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
		Prefix:    c.S3Prefix,
	}
}

// ResolveOutputName returns OutputName, or a timestamped name when it is empty
func (c Config) ResolveOutputName(now time.Time) string {
	if c.OutputName != "" {
		return c.OutputName
	}
	return fmt.Sprintf("render_%s.png", now.Format("20060102_150405"))
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
