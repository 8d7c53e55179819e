package material

import (
	"image"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// ImageTexture provides color from a decoded 2D image
type ImageTexture struct {
	width  int
	height int
	pixels []core.Vec3 // Row-major: pixels[y*width + x]
}

// NewImageTexture creates a new image texture from row-major pixels
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		width:  width,
		height: height,
		pixels: pixels,
	}
}

// NewImageTextureFromImage converts a decoded image into a texture
func NewImageTextureFromImage(img image.Image) *ImageTexture {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return NewImageTexture(width, height, pixels)
}

// Width returns the texture width in pixels
func (t *ImageTexture) Width() int { return t.width }

// Height returns the texture height in pixels
func (t *ImageTexture) Height() int { return t.height }

// ColorAt returns the pixel at (x, y). Coordinates outside the image are clamped to the edge.
func (t *ImageTexture) ColorAt(x, y int) core.Vec3 {
	if len(t.pixels) == 0 {
		return core.Vec3{}
	}
	x = max(0, min(t.width-1, x))
	y = max(0, min(t.height-1, y))
	return t.pixels[y*t.width+x]
}
