package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	HitPixels        int           // Pixels whose camera ray hit a shape
	BackgroundPixels int           // Pixels filled with the background color
	Tiles            int           // Number of tiles dispatched
	Workers          int           // Number of parallel workers used
	Duration         time.Duration // Wall time of the render
}

// TileStats tracks the pixel counts of a single tile
type TileStats struct {
	HitPixels        int
	BackgroundPixels int
}

// merge folds a tile's counts into the render statistics
func (rs *RenderStats) merge(ts TileStats) {
	rs.HitPixels += ts.HitPixels
	rs.BackgroundPixels += ts.BackgroundPixels
}
