// Package catalog ingests uploaded furniture photos and keeps them
// available to the editor and the HTTP surface.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/anthonynsimon/bild/transform"
	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"roomstudio/internal/scene"
)

// ErrUnsupportedFormat is returned for uploads that are not JPEG, PNG or
// WebP images.
var ErrUnsupportedFormat = errors.New("catalog: unsupported image format")

// ThumbnailHeight is the fixed height of listing thumbnails.
const ThumbnailHeight = 96

// Item is one ingested furniture photo.
type Item struct {
	ID     uuid.UUID
	Name   string
	MIME   string
	Raster *scene.Raster
}

// Decode sniffs and decodes an uploaded image into an Item. Decode
// failures are reported here, before the image ever reaches the scene.
func Decode(name string, data []byte) (*Item, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: sniff %q: %w", name, err)
	}
	switch kind.MIME.Value {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return nil, ErrUnsupportedFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("catalog: decode %q: %w", name, err)
	}
	return &Item{
		ID:     uuid.New(),
		Name:   name,
		MIME:   kind.MIME.Value,
		Raster: scene.NewRaster(img),
	}, nil
}

// Thumbnail scales the item down to the listing height, preserving the
// aspect ratio.
func (it *Item) Thumbnail() *image.RGBA {
	w, h := it.Raster.Size()
	if h == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	tw := w * ThumbnailHeight / h
	if tw < 1 {
		tw = 1
	}
	return transform.Resize(it.Raster.Image(), tw, ThumbnailHeight, transform.Linear)
}
