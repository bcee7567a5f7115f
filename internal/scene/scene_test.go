package scene

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rasterOf(w, h int) *Raster {
	return NewRaster(image.NewRGBA(image.Rect(0, 0, w, h)))
}

func TestSetRectEnforcesMinimumSize(t *testing.T) {
	pi := &PlacedImage{X: 50, Y: 50, Width: 150, Height: 100}

	assert.False(t, pi.SetRect(0, 0, 10, 50), "width at the floor must be rejected")
	assert.False(t, pi.SetRect(0, 0, 50, 10), "height at the floor must be rejected")
	assert.False(t, pi.SetRect(0, 0, -20, 50))

	// Prior geometry is retained on rejection.
	assert.Equal(t, 50.0, pi.X)
	assert.Equal(t, 150.0, pi.Width)
	assert.Equal(t, 100.0, pi.Height)

	assert.True(t, pi.SetRect(10, 20, 11, 12))
	assert.Equal(t, 11.0, pi.Width)
	assert.Equal(t, 12.0, pi.Height)
}

func TestAddImageDefaultPlacement(t *testing.T) {
	s := New(900, 600)

	pi := s.AddImage(rasterOf(300, 200))
	assert.Equal(t, float64(DefaultPlacementX), pi.X)
	assert.Equal(t, float64(DefaultPlacementY), pi.Y)
	assert.Equal(t, 150.0, pi.Width)
	assert.Equal(t, 100.0, pi.Height, "height follows the intrinsic aspect ratio")

	// Sources narrower than the cap keep their intrinsic size.
	small := s.AddImage(rasterOf(40, 30))
	assert.Equal(t, 40.0, small.Width)
	assert.Equal(t, 30.0, small.Height)

	// A pending raster gets a placeholder box.
	pending := s.AddImage(NewPendingRaster())
	assert.Equal(t, 150.0, pending.Width)
	assert.Equal(t, 150.0, pending.Height)
}

func TestBackgroundMutuallyExclusive(t *testing.T) {
	s := New(900, 600)
	require.Equal(t, DefaultBackground, s.Background.Color)

	backdrop := rasterOf(10, 10)
	s.SetBackgroundImage(backdrop)
	assert.Empty(t, s.Background.Color)
	assert.Same(t, backdrop, s.Background.Image)

	s.SetBackgroundColor("#ABCDEF")
	assert.Nil(t, s.Background.Image)
	assert.Equal(t, "#ABCDEF", s.Background.Color)
}

func TestEraseColor(t *testing.T) {
	s := New(900, 600)
	assert.Equal(t, DefaultBackground, s.EraseColor())

	s.SetBackgroundColor("#112233")
	assert.Equal(t, "#112233", s.EraseColor())

	// Over a backdrop image the eraser falls back to white.
	s.SetBackgroundImage(rasterOf(10, 10))
	assert.Equal(t, DefaultBackground, s.EraseColor())
}

func TestImageAtPicksTopmost(t *testing.T) {
	s := New(900, 600)
	s.AddImage(rasterOf(300, 200)) // both land at the default position
	s.AddImage(rasterOf(300, 200))

	assert.Equal(t, 1, s.ImageAt(Pt(100, 100)), "later-added image draws on top")
	assert.Equal(t, -1, s.ImageAt(Pt(500, 500)))
}

func TestElementExtend(t *testing.T) {
	free := NewElement(KindFreehand, Pt(1, 1), "#000000", 4)
	free.Extend(Pt(2, 2))
	free.Extend(Pt(3, 3))
	require.Len(t, free.Points, 3, "freehand points are append-only")

	line := NewElement(KindLine, Pt(1, 1), "#000000", 4)
	require.Len(t, line.Points, 2)
	line.Extend(Pt(5, 5))
	line.Extend(Pt(9, 9))
	require.Len(t, line.Points, 2, "two-point kinds replace the current point")
	assert.Equal(t, Pt(1, 1), line.Points[0])
	assert.Equal(t, Pt(9, 9), line.Points[1])
}

func TestValidKind(t *testing.T) {
	for _, k := range []Kind{KindFreehand, KindEraser, KindLine, KindRect, KindCircle} {
		assert.True(t, ValidKind(k))
	}
	assert.False(t, ValidKind(Kind("triangle")))
}
