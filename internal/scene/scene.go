// Package scene holds the canvas scene model: placed furniture images,
// committed annotations and the background. All mutation goes through
// methods so geometry invariants hold at every point in time.
package scene

import "github.com/google/uuid"

const (
	// MinImageSize is the exclusive floor for a placed image's display
	// width and height. Resizes that would cross it are rejected.
	MinImageSize = 10

	// DefaultPlacementWidth caps the display width of a freshly added
	// image; height follows the intrinsic aspect ratio.
	DefaultPlacementWidth = 150

	// DefaultPlacementX and DefaultPlacementY position new images.
	DefaultPlacementX = 50
	DefaultPlacementY = 50

	// DefaultBackground is the fill used until the user picks another.
	DefaultBackground = "#FFFFFF"
)

// PlacedImage is a furniture photo positioned and sized on the canvas.
// Display size is independent of the raster's intrinsic size.
type PlacedImage struct {
	ID     uuid.UUID `json:"id"`
	Raster *Raster   `json:"-"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
}

// Contains reports whether p falls inside the image's bounding box.
func (pi *PlacedImage) Contains(p Point) bool {
	return p.X >= pi.X && p.X <= pi.X+pi.Width &&
		p.Y >= pi.Y && p.Y <= pi.Y+pi.Height
}

// Corner returns one of the four bounding-box corners:
// 0 top-left, 1 top-right, 2 bottom-left, 3 bottom-right.
func (pi *PlacedImage) Corner(i int) Point {
	switch i {
	case 0:
		return Pt(pi.X, pi.Y)
	case 1:
		return Pt(pi.X+pi.Width, pi.Y)
	case 2:
		return Pt(pi.X, pi.Y+pi.Height)
	default:
		return Pt(pi.X+pi.Width, pi.Y+pi.Height)
	}
}

// SetRect replaces the image geometry. Returns false and keeps the prior
// rectangle when the new size would reach the minimum floor.
func (pi *PlacedImage) SetRect(x, y, w, h float64) bool {
	if w <= MinImageSize || h <= MinImageSize {
		return false
	}
	pi.X, pi.Y, pi.Width, pi.Height = x, y, w, h
	return true
}

// Background is either a solid fill or a full-canvas backdrop image.
// The two are mutually exclusive.
type Background struct {
	Color string  `json:"color"`
	Image *Raster `json:"-"`
}

// Scene owns every placed image, committed element and the background.
type Scene struct {
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Images     []*PlacedImage  `json:"images"`
	Elements   []*DrawnElement `json:"elements"`
	Background Background      `json:"background"`
}

// New creates an empty scene with a white background.
func New(width, height int) *Scene {
	return &Scene{
		Width:      width,
		Height:     height,
		Background: Background{Color: DefaultBackground},
	}
}

// AddImage places a raster at the default position, capped to the default
// width with the intrinsic aspect ratio preserved. A raster that has not
// decoded yet gets a square placeholder box; its pixels appear once ready.
func (s *Scene) AddImage(r *Raster) *PlacedImage {
	w := float64(DefaultPlacementWidth)
	h := w
	if iw, ih := r.Size(); iw > 0 && ih > 0 {
		if float64(iw) < w {
			w = float64(iw)
		}
		h = w * float64(ih) / float64(iw)
	}
	pi := &PlacedImage{
		ID:     uuid.New(),
		Raster: r,
		X:      DefaultPlacementX,
		Y:      DefaultPlacementY,
		Width:  w,
		Height: h,
	}
	s.Images = append(s.Images, pi)
	return pi
}

// ImageAt hit-tests the placed images and returns the index of the topmost
// one containing p, or -1. Later images draw on top, so the scan runs from
// the end of the slice.
func (s *Scene) ImageAt(p Point) int {
	for i := len(s.Images) - 1; i >= 0; i-- {
		if s.Images[i].Contains(p) {
			return i
		}
	}
	return -1
}

// MoveImage translates an image by a pointer delta.
func (s *Scene) MoveImage(i int, dx, dy float64) {
	if i < 0 || i >= len(s.Images) {
		return
	}
	s.Images[i].X += dx
	s.Images[i].Y += dy
}

// ResizeImage replaces an image's rectangle, subject to the size floor.
func (s *Scene) ResizeImage(i int, x, y, w, h float64) bool {
	if i < 0 || i >= len(s.Images) {
		return false
	}
	return s.Images[i].SetRect(x, y, w, h)
}

// AppendElement commits a finished annotation. Elements are never mutated
// after this point.
func (s *Scene) AppendElement(e *DrawnElement) {
	if e == nil {
		return
	}
	s.Elements = append(s.Elements, e)
}

// SetBackgroundColor installs a solid fill and drops any backdrop image.
func (s *Scene) SetBackgroundColor(hex string) {
	s.Background.Color = hex
	s.Background.Image = nil
}

// SetBackgroundImage installs a backdrop raster and clears the fill color.
func (s *Scene) SetBackgroundImage(r *Raster) {
	s.Background.Image = r
	s.Background.Color = ""
}

// EraseColor is the paint color for eraser strokes: the background fill,
// or white when a backdrop image is set. Erasing overpaints, it never
// removes committed elements.
func (s *Scene) EraseColor() string {
	if s.Background.Image != nil || s.Background.Color == "" {
		return DefaultBackground
	}
	return s.Background.Color
}
