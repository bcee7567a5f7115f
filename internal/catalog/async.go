package catalog

import (
	"bytes"
	"fmt"
	"image"

	"roomstudio/internal/scene"
)

// DecodeResult is the completion message of an asynchronous decode. It is
// delivered on a channel the UI loop drains, and Apply must be called from
// that loop so scene state is only ever touched single-threaded.
type DecodeResult struct {
	Name   string
	Err    error
	raster *scene.Raster
	img    image.Image
}

// Apply installs the decoded pixels into the pending raster. No-op on a
// failed decode; the raster simply never becomes renderable.
func (r DecodeResult) Apply() {
	if r.Err == nil && r.img != nil {
		r.raster.Complete(r.img)
	}
}

// LoadAsync starts decoding image bytes on a background goroutine and
// returns a pending raster immediately. The raster can be placed on the
// canvas right away; the compositor skips it until the completion arrives.
// Fire-and-forget: there is no cancellation, a late decode just shows up.
func LoadAsync(name string, data []byte, done chan<- DecodeResult) *scene.Raster {
	r := scene.NewPendingRaster()
	go func() {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			done <- DecodeResult{Name: name, Err: fmt.Errorf("catalog: decode %q: %w", name, err)}
			return
		}
		done <- DecodeResult{Name: name, raster: r, img: img}
	}()
	return r
}
