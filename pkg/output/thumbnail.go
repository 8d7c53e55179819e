package output

import (
	"image"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

// Thumbnail scales img down to maxWidth, keeping the aspect ratio.
// Images already narrower than maxWidth, or a maxWidth of 0, return img unchanged.
func Thumbnail(img image.Image, maxWidth uint) image.Image {
	if maxWidth == 0 || uint(img.Bounds().Dx()) <= maxWidth {
		return img
	}
	return resize.Resize(maxWidth, 0, img, resize.Lanczos3)
}

// PreviewName derives the thumbnail name, e.g. "render.png" -> "render_preview.png"
func PreviewName(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		ext = ".png"
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + "_preview" + ext
}
