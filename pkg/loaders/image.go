package loaders

import (
	"fmt"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/df07/go-phong-raytracer/pkg/material"
)

// LoadTexture decodes an image file into a texture.
// EXIF orientation is applied so photos tile the way they display.
func LoadTexture(filename string) (*material.ImageTexture, error) {
	img, err := imaging.Open(filename, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load texture %s: %w", filename, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("texture %s is empty", filename)
	}

	return material.NewImageTextureFromImage(img), nil
}
