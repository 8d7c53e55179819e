package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-phong-raytracer/pkg/config"
	"github.com/df07/go-phong-raytracer/pkg/loaders"
	"github.com/df07/go-phong-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	// Texture and mesh paths come from .env or RAYTRACER_* variables
	cfg, err := config.Load(".env")
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}

	// Create and start web server
	webServer := server.NewServer(*port)

	if cfg.TexturePath != "" {
		texture, err := loaders.LoadTexture(cfg.TexturePath)
		if err != nil {
			log.Printf("Warning: %v, rendering flat floors", err)
		} else {
			webServer.SetFloorTexture(texture)
		}
	}
	if cfg.AreaLightMesh != "" {
		mesh, err := loaders.LoadOBJ(cfg.AreaLightMesh)
		if err != nil {
			log.Printf("Error loading area light mesh: %v", err)
			os.Exit(1)
		}
		webServer.SetAreaLightMesh(mesh)
	}

	log.Printf("Phong Raytracer Web Server")
	log.Printf("Visit http://localhost:%d/api/render to render the default scene", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
