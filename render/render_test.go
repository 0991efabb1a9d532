package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/mgmeyers/pdfannotator/annots"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseZoom(t *testing.T) {
	z, err := ParseZoom("Page Width")
	require.NoError(t, err)
	assert.True(t, z.FitWidth)

	z, err = ParseZoom("150%")
	require.NoError(t, err)
	assert.Equal(t, Zoom{Percent: 150}, z)
	assert.Equal(t, "150%", z.String())

	_, err = ParseZoom("huge")
	assert.Error(t, err)

	_, err = ParseZoom("0%")
	assert.Error(t, err)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, []string{
		"Page Width", "50%", "75%", "100%", "125%", "150%", "200%", "250%", "300%", "400%",
	}, Labels())
}

func TestZoomFactor(t *testing.T) {
	assert.Equal(t, 1.5, Zoom{Percent: 150}.Factor(1000, 600))
	assert.Equal(t, 2.0, FitWidth.Factor(1200, 600))
	assert.Equal(t, 1.0, FitWidth.Factor(1200, 0))
}

func TestScrollFractionSurvivesZoomChange(t *testing.T) {
	// Viewport 500px tall, page 2000px at the old zoom, 3000px at the new.
	frac := ScrollFraction(800, 2000)
	assert.InDelta(t, 0.4, frac, 1e-9)

	offset := ScrollOffset(frac, 3000, 500)
	assert.InDelta(t, 1200, offset, 1e-9)
	assert.InDelta(t, frac, ScrollFraction(offset, 3000), 1e-9)
}

func TestScrollOffsetClamps(t *testing.T) {
	assert.Equal(t, 500.0, ScrollOffset(0.9, 1000, 500))
	assert.Equal(t, 0.0, ScrollOffset(0.5, 300, 500))
	assert.Equal(t, 0.0, ScrollFraction(10, 0))
}

func whitePage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func TestComposeHighlight(t *testing.T) {
	c, err := NewComposer()
	require.NoError(t, err)

	base := whitePage(200, 200)
	hl := annots.NewHighlight([]annots.Quad{
		annots.QuadFromRect(r2.RectFromPoints(r2.Point{X: 10, Y: 10}, r2.Point{X: 30, Y: 20})),
	}, annots.Color{R: 0, G: 0, B: 1})

	out := c.Compose(base, []annots.Annotation{hl}, 2)

	// Inside the quad at zoom 2: blue blended over white.
	in := out.RGBAAt(40, 30)
	assert.Less(t, in.R, uint8(200))
	assert.Greater(t, in.R, uint8(50))
	assert.Equal(t, uint8(255), in.B)

	// Outside stays white, and the base is not modified.
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(100, 100))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, base.RGBAAt(40, 30))
}

func TestComposeFreeTextOnTop(t *testing.T) {
	c, err := NewComposer()
	require.NoError(t, err)

	base := whitePage(300, 120)
	text := annots.NewFreeText(r2.Point{X: 5, Y: 5}, "Hello\nWorld", annots.Black)

	out := c.Compose(base, []annots.Annotation{text}, 1)

	dark := 0
	for y := 5; y < 40; y++ {
		for x := 5; x < 100; x++ {
			if out.RGBAAt(x, y).R < 128 {
				dark++
			}
		}
	}
	assert.Greater(t, dark, 0, "glyphs are drawn inside the text box")

	// Nothing is drawn far outside the box.
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(290, 110))
}

func TestComposerMemoizesFaces(t *testing.T) {
	c, err := NewComposer()
	require.NoError(t, err)

	assert.Same(t, c.face(11), c.face(11))
	assert.Len(t, c.faces, 1)
}
