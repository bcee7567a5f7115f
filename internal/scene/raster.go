package scene

import (
	"image"
	"image/draw"
)

// Raster holds a decoded pixel buffer together with its intrinsic size.
// A Raster may be created before its pixels have been decoded; the
// compositor skips rasters that are not yet Ready rather than blocking.
type Raster struct {
	img    *image.RGBA
	width  int
	height int
}

// NewRaster converts any decoded image into an owned RGBA raster.
func NewRaster(img image.Image) *Raster {
	r := &Raster{}
	r.Complete(img)
	return r
}

// NewPendingRaster creates a placeholder for an image whose decode has
// been requested but has not finished yet.
func NewPendingRaster() *Raster {
	return &Raster{}
}

// Complete installs the decoded pixels. Called once, from the event loop,
// when an asynchronous decode delivers its result.
func (r *Raster) Complete(img image.Image) {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	r.img = rgba
	r.width = b.Dx()
	r.height = b.Dy()
}

// Ready reports whether the pixels are available for drawing.
func (r *Raster) Ready() bool {
	return r != nil && r.img != nil
}

// Image returns the decoded pixel buffer, or nil while pending.
func (r *Raster) Image() *image.RGBA {
	if r == nil {
		return nil
	}
	return r.img
}

// Size returns the intrinsic pixel dimensions (zero while pending).
func (r *Raster) Size() (int, int) {
	if r == nil {
		return 0, 0
	}
	return r.width, r.height
}
