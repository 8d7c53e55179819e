package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/config"
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/loaders"
	"github.com/df07/go-phong-raytracer/pkg/output"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// errHelp signals that usage was printed and nothing should be rendered
var errHelp = errors.New("help requested")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run renders one image from the .env file, environment and command line
func run(args []string, stdout io.Writer) error {
	cfg, err := parseConfig(args, stdout)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Starting Phong Raytracer...")
	logger := renderer.NewDefaultLogger()

	selectedScene, err := createScene(cfg, logger)
	if err != nil {
		return err
	}

	sink, err := createSink(cfg)
	if err != nil {
		return err
	}

	raytracer := renderer.NewRaytracer(selectedScene, cfg.RenderConfig(selectedScene.Shading), logger)
	img, stats, err := raytracer.Render()
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	fmt.Fprintf(stdout, "Render completed in %v\n", stats.Duration)
	fmt.Fprintf(stdout, "Pixels: %d hit, %d background (%d tiles on %d workers)\n",
		stats.HitPixels, stats.BackgroundPixels, stats.Tiles, stats.Workers)

	ctx := context.Background()
	name := cfg.ResolveOutputName(time.Now())
	location, err := sink.Save(ctx, name, img)
	if err != nil {
		return fmt.Errorf("failed to save render: %w", err)
	}
	fmt.Fprintf(stdout, "Render saved as %s\n", location)

	if cfg.PreviewWidth > 0 {
		preview := output.Thumbnail(img, uint(cfg.PreviewWidth))
		location, err := sink.Save(ctx, output.PreviewName(name), preview)
		if err != nil {
			return fmt.Errorf("failed to save preview: %w", err)
		}
		fmt.Fprintf(stdout, "Preview saved as %s\n", location)
	}

	return nil
}

// parseConfig layers defaults, .env, environment and flags, then validates
func parseConfig(args []string, stdout io.Writer) (config.Config, error) {
	cfg, err := config.Load(".env")
	if err != nil {
		return config.Config{}, err
	}

	flags := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	flags.SetOutput(stdout)
	cfg.RegisterFlags(flags)
	help := flags.Bool("help", false, "Show help information")
	if err := flags.Parse(args); err != nil {
		return config.Config{}, err
	}

	if *help {
		printHelp(flags, stdout)
		return config.Config{}, errHelp
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func printHelp(flags *flag.FlagSet, stdout io.Writer) {
	fmt.Fprintln(stdout, "Phong Raytracer")
	fmt.Fprintln(stdout, "Usage: raytracer [options]")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Options:")
	flags.PrintDefaults()
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(stdout, "  %s - %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "Settings may also come from %s* environment variables or a .env file.\n", config.EnvPrefix)
}

// createScene builds the named scene and attaches the optional texture and light mesh.
// A texture that fails to load leaves the floor flat; a mesh that fails to load is an error.
func createScene(cfg config.Config, logger core.Logger) (*scene.Scene, error) {
	s, err := scene.NewScene(cfg.Scene)
	if err != nil {
		return nil, err
	}

	if cfg.TexturePath != "" {
		texture, err := loaders.LoadTexture(cfg.TexturePath)
		if err != nil {
			logger.Printf("Warning: %v, rendering flat floor\n", err)
		} else if err := s.ApplyFloorTexture(texture); err != nil {
			logger.Printf("Warning: %v, ignoring texture\n", err)
		} else {
			logger.Printf("Loaded texture %s (%dx%d)\n", cfg.TexturePath, texture.Width(), texture.Height())
		}
	}

	if cfg.AreaLightMesh != "" {
		mesh, err := loaders.LoadOBJ(cfg.AreaLightMesh)
		if err != nil {
			return nil, fmt.Errorf("failed to load area light mesh: %w", err)
		}
		if err := s.SetAreaLightMesh(mesh); err != nil {
			return nil, err
		}
		logger.Printf("Loaded area light mesh %s: %d vertices, %d triangles\n",
			cfg.AreaLightMesh, mesh.VertexCount(), mesh.TriangleCount())
	}

	s.ApplyConfig(cfg.SceneConfig())
	return s, nil
}

// createSink writes to the output directory and, when configured, to S3
func createSink(cfg config.Config) (output.Sink, error) {
	sinks := output.MultiSink{output.NewFileSink(cfg.OutputDir)}
	if cfg.S3Enabled() {
		s3Sink, err := output.NewS3Sink(cfg.S3Config())
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s3Sink)
	}
	return sinks, nil
}
