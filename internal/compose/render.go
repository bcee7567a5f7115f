// Package compose paints scene state onto a raster frame. Frame is a pure
// function of the scene plus the overlay, so repeated repaints are safe;
// Flatten produces the clean export without any editor chrome.
package compose

import (
	"image"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"roomstudio/internal/editor"
	"roomstudio/internal/scene"
)

const selectionColor = "#1E90FF"

// Overlay carries the ephemeral editor state painted on top of the scene:
// the in-progress draw, the selection affordance, and the brush-size cue.
// The zero value paints none of them.
type Overlay struct {
	Current    *scene.DrawnElement
	Selected   *scene.PlacedImage
	BrushAt    *scene.Point
	BrushWidth float64
}

// Renderer paints scenes at fixed canvas dimensions.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer creates a renderer for the given canvas size.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{Width: width, Height: height}
}

// Frame paints the full frame back to front: background, committed
// elements in insertion order, the in-progress element, placed images in
// insertion order, then the overlay affordances.
func (r *Renderer) Frame(s *scene.Scene, ov Overlay) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	dc := gg.NewContextForRGBA(dst)

	r.paintBackground(dc, dst, s)

	for _, e := range s.Elements {
		drawElement(dc, s, e)
	}
	if ov.Current != nil {
		drawElement(dc, s, ov.Current)
	}

	for _, pi := range s.Images {
		drawPlaced(dst, pi)
	}

	if ov.Selected != nil {
		drawSelection(dc, ov.Selected)
	}
	if ov.BrushAt != nil && ov.BrushWidth > 0 {
		dc.SetHexColor(selectionColor)
		dc.SetLineWidth(1)
		dc.DrawCircle(ov.BrushAt.X, ov.BrushAt.Y, ov.BrushWidth/2)
		dc.Stroke()
	}
	return dst
}

// paintBackground cover-fits the backdrop image into the frame, or fills
// with the background color. A backdrop whose decode has not finished yet
// falls back to the default fill.
func (r *Renderer) paintBackground(dc *gg.Context, dst *image.RGBA, s *scene.Scene) {
	if bg := s.Background.Image; bg.Ready() {
		src := bg.Image()
		crop := coverRect(src.Bounds().Dx(), src.Bounds().Dy(), r.Width, r.Height)
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, xdraw.Src, nil)
		return
	}
	color := s.Background.Color
	if color == "" {
		color = scene.DefaultBackground
	}
	dc.SetHexColor(color)
	dc.Clear()
}

// coverRect centrally crops a srcW x srcH source to the destination aspect
// ratio so scaling fills the whole frame.
func coverRect(srcW, srcH, dstW, dstH int) image.Rectangle {
	sa := float64(srcW) / float64(srcH)
	da := float64(dstW) / float64(dstH)
	w, h := srcW, srcH
	if sa > da {
		w = int(float64(srcH) * da)
	} else {
		h = int(float64(srcW) / da)
	}
	x := (srcW - w) / 2
	y := (srcH - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

// drawElement rasterizes one annotation. Committed and in-progress
// elements render identically.
func drawElement(dc *gg.Context, s *scene.Scene, e *scene.DrawnElement) {
	if len(e.Points) == 0 {
		return
	}
	color := e.Color
	if e.Kind == scene.KindEraser {
		// Erasing is same-color overpainting, not pixel removal.
		color = s.EraseColor()
	}
	dc.SetHexColor(color)
	dc.SetLineWidth(e.StrokeWidth)

	switch e.Kind {
	case scene.KindFreehand, scene.KindEraser:
		dc.SetLineCapRound()
		dc.SetLineJoinRound()
		if len(e.Points) == 1 {
			p := e.Points[0]
			dc.DrawCircle(p.X, p.Y, e.StrokeWidth/2)
			dc.Fill()
			return
		}
		dc.NewSubPath()
		dc.MoveTo(e.Points[0].X, e.Points[0].Y)
		for _, p := range e.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.Stroke()
	case scene.KindLine:
		dc.SetLineCapRound()
		dc.DrawLine(e.Points[0].X, e.Points[0].Y, e.Points[1].X, e.Points[1].Y)
		dc.Stroke()
	case scene.KindRect:
		x, y, w, h := normalizeRect(e.Points[0], e.Points[1])
		dc.DrawRectangle(x, y, w, h)
		dc.Stroke()
	case scene.KindCircle:
		// Center plus radius, anchored at the first point. Not a
		// bounding-box ellipse.
		radius := e.Points[0].Distance(e.Points[1])
		dc.DrawCircle(e.Points[0].X, e.Points[0].Y, radius)
		dc.Stroke()
	}
}

// normalizeRect turns two opposite corners in any order into an
// axis-aligned box with non-negative size.
func normalizeRect(a, b scene.Point) (x, y, w, h float64) {
	x, y = a.X, a.Y
	if b.X < x {
		x = b.X
	}
	if b.Y < y {
		y = b.Y
	}
	w = a.X - b.X
	if w < 0 {
		w = -w
	}
	h = a.Y - b.Y
	if h < 0 {
		h = -h
	}
	return x, y, w, h
}

// drawPlaced scales a furniture raster into its display rectangle. Rasters
// still waiting on their decode are skipped, never blocked on.
func drawPlaced(dst *image.RGBA, pi *scene.PlacedImage) {
	if !pi.Raster.Ready() {
		return
	}
	src := pi.Raster.Image()
	rect := image.Rect(
		int(pi.X+0.5), int(pi.Y+0.5),
		int(pi.X+pi.Width+0.5), int(pi.Y+pi.Height+0.5),
	)
	xdraw.CatmullRom.Scale(dst, rect, src, src.Bounds(), xdraw.Over, nil)
}

// drawSelection paints the bounding outline and the four corner grips of
// the selected image.
func drawSelection(dc *gg.Context, pi *scene.PlacedImage) {
	dc.SetHexColor(selectionColor)
	dc.SetLineWidth(2)
	dc.DrawRectangle(pi.X, pi.Y, pi.Width, pi.Height)
	dc.Stroke()
	for i := 0; i < 4; i++ {
		c := pi.Corner(i)
		dc.DrawRectangle(c.X-editor.HandleSize/2, c.Y-editor.HandleSize/2, editor.HandleSize, editor.HandleSize)
		dc.Fill()
	}
}
