package output

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Sink persists a finished image and reports where it went
type Sink interface {
	Save(ctx context.Context, name string, img image.Image) (string, error)
}

// imageFormat picks the encoding from the name's extension.
// Names without a known extension are written as PNG with ".png" appended.
func imageFormat(name string) (string, imaging.Format) {
	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return name + ".png", imaging.PNG
	}
	return name, format
}

// contentType returns the MIME type for an encoding
func contentType(format imaging.Format) string {
	return "image/" + strings.ToLower(format.String())
}

// FileSink writes images into a local directory
type FileSink struct {
	Dir string
}

// NewFileSink creates a sink writing into dir
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Save writes the image to Dir/name, creating Dir if needed
func (fs *FileSink) Save(ctx context.Context, name string, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(fs.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name, _ = imageFormat(name)
	filename := filepath.Join(fs.Dir, name)
	if err := imaging.Save(img, filename); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", filename, err)
	}
	return filename, nil
}

// MultiSink saves to every sink in order. All sinks are attempted even when one fails.
type MultiSink []Sink

// Save returns the comma separated locations of the successful saves and the joined errors
func (ms MultiSink) Save(ctx context.Context, name string, img image.Image) (string, error) {
	var locations []string
	var errs []error
	for _, sink := range ms {
		location, err := sink.Save(ctx, name, img)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		locations = append(locations, location)
	}
	return strings.Join(locations, ", "), errors.Join(errs...)
}
