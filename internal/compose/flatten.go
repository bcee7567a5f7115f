package compose

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"roomstudio/internal/scene"
)

// MIMEJPEG is the content type of flattened exports.
const MIMEJPEG = "image/jpeg"

const jpegQuality = 90

// Flatten composites the committed scene only — background, committed
// elements, placed images — and encodes it as JPEG. Selection handles, the
// brush preview, and any uncommitted draw never appear in the export. An
// empty scene flattens to a background-only frame, not an error.
func (r *Renderer) Flatten(s *scene.Scene) ([]byte, string, error) {
	frame := r.Frame(s, Overlay{})
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("compose: encode flattened frame: %w", err)
	}
	return buf.Bytes(), MIMEJPEG, nil
}
