package editor

import (
	"math"

	"roomstudio/internal/scene"
)

// Handle identifies one of the four corner grips of a selected image.
type Handle int

const (
	HandleNone Handle = iota
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
)

// HandleSize is the side of the square hit box (and the rendered grip)
// centered on each corner.
const HandleSize = 10

// HandleAt returns the corner handle of img under p, or HandleNone. Both
// the hover-cursor logic and pointer-down dispatch go through this, so the
// cursor shown and the resize that starts can never disagree.
func HandleAt(p scene.Point, img *scene.PlacedImage) Handle {
	if img == nil {
		return HandleNone
	}
	handles := []Handle{HandleTopLeft, HandleTopRight, HandleBottomLeft, HandleBottomRight}
	for i, h := range handles {
		c := img.Corner(i)
		if math.Abs(p.X-c.X) <= HandleSize/2 && math.Abs(p.Y-c.Y) <= HandleSize/2 {
			return h
		}
	}
	return HandleNone
}

// Cursor is the pointer shape the frontend should show while idle.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorMove
	CursorResizeNWSE
	CursorResizeNESW
)
