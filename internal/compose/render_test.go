package compose

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomstudio/internal/scene"
)

func uniformRaster(w, h int, c color.RGBA) *scene.Raster {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return scene.NewRaster(img)
}

func element(kind scene.Kind, color string, width float64, pts ...scene.Point) *scene.DrawnElement {
	e := scene.NewElement(kind, pts[0], color, width)
	for _, p := range pts[1:] {
		e.Extend(p)
	}
	return e
}

func TestLaterElementWins(t *testing.T) {
	r := NewRenderer(200, 200)
	s := scene.New(200, 200)

	s.AppendElement(element(scene.KindLine, "#FF0000", 12, scene.Pt(20, 100), scene.Pt(180, 100)))
	s.AppendElement(element(scene.KindLine, "#0000FF", 12, scene.Pt(20, 100), scene.Pt(180, 100)))

	frame := r.Frame(s, Overlay{})
	assert.Equal(t, color.RGBA{B: 255, A: 255}, frame.RGBAAt(100, 100),
		"the later-committed element overpaints the earlier one")
}

func TestEraserOverpaintsWithoutDeleting(t *testing.T) {
	r := NewRenderer(200, 200)
	s := scene.New(200, 200)

	s.AppendElement(element(scene.KindFreehand, "#000000", 10, scene.Pt(50, 100), scene.Pt(150, 100)))
	before := len(s.Elements)

	s.AppendElement(element(scene.KindEraser, "#123456", 24, scene.Pt(50, 100), scene.Pt(150, 100)))

	assert.Equal(t, before+1, len(s.Elements), "erasing adds an element, it removes nothing")

	frame := r.Frame(s, Overlay{})
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, frame.RGBAAt(100, 100),
		"the erased region shows the background color")
}

func TestRectangleNormalization(t *testing.T) {
	r := NewRenderer(200, 200)

	a := scene.New(200, 200)
	a.AppendElement(element(scene.KindRect, "#000000", 5, scene.Pt(10, 10), scene.Pt(110, 60)))

	b := scene.New(200, 200)
	b.AppendElement(element(scene.KindRect, "#000000", 5, scene.Pt(110, 60), scene.Pt(10, 10)))

	fa := r.Frame(a, Overlay{})
	fb := r.Frame(b, Overlay{})
	assert.True(t, bytes.Equal(fa.Pix, fb.Pix), "corner order must not change the rendered box")
}

func TestRedRectangleOutline(t *testing.T) {
	r := NewRenderer(200, 200)
	s := scene.New(200, 200)
	s.AppendElement(element(scene.KindRect, "#FF0000", 5, scene.Pt(10, 10), scene.Pt(110, 60)))

	frame := r.Frame(s, Overlay{})
	assert.Equal(t, color.RGBA{R: 255, A: 255}, frame.RGBAAt(10, 35), "left edge is stroked")
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, frame.RGBAAt(60, 35),
		"the box interior stays background")
}

func TestCircleIsCenterPlusRadius(t *testing.T) {
	r := NewRenderer(200, 200)
	s := scene.New(200, 200)
	// Anchor is the center; the second point sets the radius.
	s.AppendElement(element(scene.KindCircle, "#000000", 4, scene.Pt(100, 100), scene.Pt(130, 100)))

	frame := r.Frame(s, Overlay{})
	assert.Equal(t, color.RGBA{A: 255}, frame.RGBAAt(130, 100), "point on the circle is stroked")
	assert.Equal(t, color.RGBA{A: 255}, frame.RGBAAt(100, 130), "radius holds in every direction")
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, frame.RGBAAt(100, 100),
		"the center is not filled")
}

func TestPlacedImageDrawnAtStoredRect(t *testing.T) {
	r := NewRenderer(200, 200)
	s := scene.New(200, 200)
	green := color.RGBA{G: 255, A: 255}
	s.AddImage(uniformRaster(40, 40, green))

	frame := r.Frame(s, Overlay{})
	assert.Equal(t, green, frame.RGBAAt(70, 70), "inside the placed rect")
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, frame.RGBAAt(150, 150),
		"outside the placed rect")
}

func TestUnreadyRasterSkipped(t *testing.T) {
	r := NewRenderer(200, 200)
	s := scene.New(200, 200)
	s.AddImage(scene.NewPendingRaster())

	frame := r.Frame(s, Overlay{})
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, frame.RGBAAt(100, 100),
		"a pending raster paints nothing")
}

func TestBackdropCoverFitsFrame(t *testing.T) {
	r := NewRenderer(200, 200)
	s := scene.New(200, 200)
	red := color.RGBA{R: 255, A: 255}
	s.SetBackgroundImage(uniformRaster(100, 50, red))

	frame := r.Frame(s, Overlay{})
	for _, p := range []image.Point{{0, 0}, {199, 0}, {0, 199}, {199, 199}, {100, 100}} {
		assert.Equal(t, red, frame.RGBAAt(p.X, p.Y), "backdrop covers pixel %v", p)
	}
}

func TestFlattenExcludesEditorChrome(t *testing.T) {
	r := NewRenderer(200, 200)
	s := scene.New(200, 200)
	s.AddImage(uniformRaster(40, 40, color.RGBA{G: 255, A: 255}))
	s.AppendElement(element(scene.KindLine, "#000000", 4, scene.Pt(10, 180), scene.Pt(190, 180)))

	at := scene.Pt(160, 40)
	busy := Overlay{
		Current:    element(scene.KindFreehand, "#FF0000", 6, scene.Pt(120, 120), scene.Pt(140, 140)),
		Selected:   s.Images[0],
		BrushAt:    &at,
		BrushWidth: 12,
	}
	clean := r.Frame(s, Overlay{})
	require.False(t, bytes.Equal(r.Frame(s, busy).Pix, clean.Pix),
		"the overlay must visibly change the on-screen frame")

	flat, mime, err := r.Flatten(s)
	require.NoError(t, err)
	assert.Equal(t, MIMEJPEG, mime)

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, clean, &jpeg.Options{Quality: jpegQuality}))
	assert.True(t, bytes.Equal(flat, buf.Bytes()),
		"flatten output matches the clean frame regardless of editor state")
}

func TestFlattenEmptySceneSucceeds(t *testing.T) {
	r := NewRenderer(200, 150)
	s := scene.New(200, 150)

	data, mime, err := r.Flatten(s)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, MIMEJPEG, mime)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestInProgressElementRendered(t *testing.T) {
	r := NewRenderer(200, 200)
	s := scene.New(200, 200)

	current := element(scene.KindLine, "#0000FF", 10, scene.Pt(20, 100), scene.Pt(180, 100))
	frame := r.Frame(s, Overlay{Current: current})
	assert.Equal(t, color.RGBA{B: 255, A: 255}, frame.RGBAAt(100, 100),
		"live feedback renders like a committed element")
}
