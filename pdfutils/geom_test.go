package pdfutils

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/mgmeyers/pdfannotator/annots"
	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDisplayUpright(t *testing.T) {
	info := PageInfo{Width: 600, Height: 800}

	assert.Equal(t, r2.Point{X: 10, Y: 780}, info.ToDisplay(r2.Point{X: 10, Y: 20}))
	assert.Equal(t, 600.0, info.EffectiveWidth())
}

func TestToDisplayRotated(t *testing.T) {
	// The PDF origin (lower-left) lands at a different display corner
	// for each rotation.
	cases := []struct {
		rotation int
		origin   r2.Point
		width    float64
	}{
		{0, r2.Point{X: 0, Y: 800}, 600},
		{90, r2.Point{X: 0, Y: 0}, 800},
		{180, r2.Point{X: 600, Y: 0}, 600},
		{270, r2.Point{X: 800, Y: 600}, 800},
	}

	for _, c := range cases {
		info := PageInfo{Width: 600, Height: 800, Rotation: c.rotation}
		assert.Equal(t, c.origin, info.ToDisplay(r2.Point{}), "rotation %d", c.rotation)
		assert.Equal(t, c.width, info.EffectiveWidth(), "rotation %d", c.rotation)
	}
}

func TestDisplayRoundTrip(t *testing.T) {
	pt := r2.Point{X: 123.5, Y: 456.25}

	for _, rot := range []int{0, 90, 180, 270} {
		info := PageInfo{Llx: 5, Lly: 7, Width: 600, Height: 800, Rotation: rot}
		back := info.FromDisplay(info.ToDisplay(pt))
		assert.InDelta(t, pt.X, back.X, 1e-9, "rotation %d", rot)
		assert.InDelta(t, pt.Y, back.Y, 1e-9, "rotation %d", rot)
	}
}

func TestNormalizeRotation(t *testing.T) {
	assert.Equal(t, 90, NormalizeRotation(450))
	assert.Equal(t, 270, NormalizeRotation(-90))
	assert.Equal(t, 0, NormalizeRotation(45))
}

func TestQuadPointsRoundTrip(t *testing.T) {
	info := PageInfo{Width: 600, Height: 800, Rotation: 90}
	quads := []annots.Quad{
		annots.QuadFromRect(r2.RectFromPoints(r2.Point{X: 10, Y: 20}, r2.Point{X: 50, Y: 30})),
		annots.QuadFromRect(r2.RectFromPoints(r2.Point{X: 60, Y: 20}, r2.Point{X: 90, Y: 30})),
	}

	coords := QuadPointsFromDisplay(info, quads)
	require.Len(t, coords, 16)

	back := QuadPointsToDisplay(info, core.MakeArrayFromFloats(coords))
	assert.Equal(t, quads, back)
}

func TestQuadPointsIgnoresPartialQuad(t *testing.T) {
	info := PageInfo{Width: 600, Height: 800}

	quads := QuadPointsToDisplay(info, core.MakeArrayFromFloats([]float64{0, 10, 10, 10, 0, 0}))
	assert.Empty(t, quads)
	assert.Nil(t, QuadPointsToDisplay(info, nil))
}

func TestRectFromPDFObject(t *testing.T) {
	r, ok := RectFromPDFObject(core.MakeArrayFromFloats([]float64{50, 60, 10, 20}))
	require.True(t, ok)
	assert.Equal(t, r2.RectFromPoints(r2.Point{X: 10, Y: 20}, r2.Point{X: 50, Y: 60}), r)

	_, ok = RectFromPDFObject(core.MakeInteger(3))
	assert.False(t, ok)
}

func TestGetPageInfoCropBox(t *testing.T) {
	page := model.NewPdfPage()
	page.MediaBox = &model.PdfRectangle{Llx: 0, Lly: 0, Urx: 612, Ury: 792}
	page.CropBox = &model.PdfRectangle{Llx: 100, Lly: 100, Urx: 412, Ury: 592}

	info, err := GetPageInfo(page)
	require.NoError(t, err)
	assert.Equal(t, PageInfo{Llx: 100, Lly: 100, Width: 312, Height: 492}, info)

	// The top-left of the visible area is the display origin.
	assert.Equal(t, r2.Point{X: 0, Y: 0}, info.ToDisplay(r2.Point{X: 100, Y: 592}))
}

func TestGetPageInfoCropBoxClippedToMediaBox(t *testing.T) {
	page := model.NewPdfPage()
	page.MediaBox = &model.PdfRectangle{Llx: 0, Lly: 0, Urx: 612, Ury: 792}
	page.CropBox = &model.PdfRectangle{Llx: -50, Lly: 400, Urx: 300, Ury: 900}

	info, err := GetPageInfo(page)
	require.NoError(t, err)
	assert.Equal(t, PageInfo{Llx: 0, Lly: 400, Width: 300, Height: 392}, info)
}

func TestGetPageInfoInheritedCropBox(t *testing.T) {
	parent := core.MakeDict()
	parent.Set("CropBox", core.MakeArrayFromFloats([]float64{10, 20, 210, 320}))

	page := model.NewPdfPage()
	page.MediaBox = &model.PdfRectangle{Llx: 0, Lly: 0, Urx: 612, Ury: 792}
	page.Parent = parent

	info, err := GetPageInfo(page)
	require.NoError(t, err)
	assert.Equal(t, PageInfo{Llx: 10, Lly: 20, Width: 200, Height: 300}, info)
}

func TestGetPageInfoFallsBackToMediaBox(t *testing.T) {
	page := model.NewPdfPage()
	page.MediaBox = &model.PdfRectangle{Llx: 0, Lly: 0, Urx: 612, Ury: 792}

	// A CropBox outside the MediaBox leaves nothing visible and is ignored.
	page.CropBox = &model.PdfRectangle{Llx: 700, Lly: 800, Urx: 900, Ury: 1000}
	rotate := int64(-90)
	page.Rotate = &rotate

	info, err := GetPageInfo(page)
	require.NoError(t, err)
	assert.Equal(t, PageInfo{Width: 612, Height: 792, Rotation: 270}, info)
}
