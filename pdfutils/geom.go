package pdfutils

import (
	"github.com/golang/geo/r2"
	"github.com/mgmeyers/pdfannotator/annots"
	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/extractor"
	"github.com/mgmeyers/unipdf/v3/model"
)

// PageInfo is the geometry of a page. Llx/Lly/Width/Height describe the
// unrotated visible region, the CropBox clipped to the MediaBox, which is
// what the rasterizer draws; Rotation is the /Rotate value normalized to
// 0, 90, 180 or 270.
type PageInfo struct {
	Llx      float64
	Lly      float64
	Width    float64
	Height   float64
	Rotation int
}

func GetPageInfo(page *model.PdfPage) (PageInfo, error) {
	mbox, err := page.GetMediaBox()
	if err != nil {
		return PageInfo{}, err
	}

	visible := boxRect(mbox)

	if cbox := cropBox(page); cbox != nil {
		if clipped := visible.Intersection(boxRect(cbox)); clipped.X.Length() > 0 && clipped.Y.Length() > 0 {
			visible = clipped
		}
	}

	info := PageInfo{
		Llx:    visible.X.Lo,
		Lly:    visible.Y.Lo,
		Width:  visible.X.Length(),
		Height: visible.Y.Length(),
	}

	if page.Rotate != nil {
		info.Rotation = NormalizeRotation(*page.Rotate)
	}

	return info, nil
}

// cropBox returns the page's CropBox, inherited from the page tree when the
// page has none of its own, or nil.
func cropBox(page *model.PdfPage) *model.PdfRectangle {
	if page.CropBox != nil {
		return page.CropBox
	}

	node := page.Parent
	for node != nil {
		dict, ok := core.GetDict(node)
		if !ok {
			return nil
		}

		if arr, ok := core.GetArray(dict.Get("CropBox")); ok {
			rect, err := model.NewPdfRectangle(*arr)
			if err != nil {
				return nil
			}
			return rect
		}

		node = dict.Get("Parent")
	}

	return nil
}

func boxRect(b *model.PdfRectangle) r2.Rect {
	return r2.RectFromPoints(r2.Point{X: b.Llx, Y: b.Lly}, r2.Point{X: b.Urx, Y: b.Ury})
}

func NormalizeRotation(angle int64) int {
	r := int(angle % 360)
	if r < 0 {
		r += 360
	}

	// Only multiples of 90 are legal; anything else is treated as upright.
	if r%90 != 0 {
		return 0
	}

	return r
}

// EffectiveWidth is the width of the page as displayed.
func (p PageInfo) EffectiveWidth() float64 {
	if p.Rotation == 90 || p.Rotation == 270 {
		return p.Height
	}
	return p.Width
}

func (p PageInfo) EffectiveHeight() float64 {
	if p.Rotation == 90 || p.Rotation == 270 {
		return p.Width
	}
	return p.Height
}

// ToDisplay maps a point in PDF user space (y up, unrotated) to page
// display space (y down, origin at the top-left of the rotated page).
func (p PageInfo) ToDisplay(pt r2.Point) r2.Point {
	u := pt.X - p.Llx
	v := pt.Y - p.Lly

	switch p.Rotation {
	case 90:
		return r2.Point{X: v, Y: u}
	case 180:
		return r2.Point{X: p.Width - u, Y: v}
	case 270:
		return r2.Point{X: p.Height - v, Y: p.Width - u}
	}

	return r2.Point{X: u, Y: p.Height - v}
}

// FromDisplay is the inverse of ToDisplay.
func (p PageInfo) FromDisplay(pt r2.Point) r2.Point {
	var u, v float64

	switch p.Rotation {
	case 90:
		u, v = pt.Y, pt.X
	case 180:
		u, v = p.Width-pt.X, pt.Y
	case 270:
		u, v = p.Width-pt.Y, p.Height-pt.X
	default:
		u, v = pt.X, p.Height-pt.Y
	}

	return r2.Point{X: u + p.Llx, Y: v + p.Lly}
}

func (p PageInfo) RectToDisplay(r r2.Rect) r2.Rect {
	return r2.RectFromPoints(p.ToDisplay(r.Lo()), p.ToDisplay(r.Hi()))
}

func (p PageInfo) RectFromDisplay(r r2.Rect) r2.Rect {
	return r2.RectFromPoints(p.FromDisplay(r.Lo()), p.FromDisplay(r.Hi()))
}

func GetMarkRect(mark extractor.TextMark) r2.Rect {
	return r2.RectFromPoints(
		r2.Point{
			X: mark.BBox.Llx,
			Y: mark.BBox.Lly,
		},
		r2.Point{
			X: mark.BBox.Urx,
			Y: mark.BBox.Ury,
		},
	)
}

// QuadPointsToDisplay reads a QuadPoints array. PDF orders each quad as
// upper-left, upper-right, lower-left, lower-right.
func QuadPointsToDisplay(info PageInfo, qp *core.PdfObjectArray) []annots.Quad {
	if qp == nil {
		return nil
	}

	coords, err := qp.GetAsFloat64Slice()
	if err != nil {
		return nil
	}

	coordHolder := []float64{}
	ptHolder := []r2.Point{}
	quads := []annots.Quad{}

	for _, coord := range coords {
		coordHolder = append(coordHolder, coord)

		if len(coordHolder) == 2 {
			pt := r2.Point{X: coordHolder[0], Y: coordHolder[1]}
			ptHolder = append(ptHolder, info.ToDisplay(pt))

			coordHolder = []float64{}

			if len(ptHolder) == 4 {
				quads = append(quads, annots.Quad{
					UL: ptHolder[0],
					UR: ptHolder[1],
					LL: ptHolder[2],
					LR: ptHolder[3],
				})
				ptHolder = []r2.Point{}
			}
		}
	}

	return quads
}

func QuadPointsFromDisplay(info PageInfo, quads []annots.Quad) []float64 {
	coords := make([]float64, 0, len(quads)*8)

	for _, q := range quads {
		for _, pt := range []r2.Point{q.UL, q.UR, q.LL, q.LR} {
			p := info.FromDisplay(pt)
			coords = append(coords, p.X, p.Y)
		}
	}

	return coords
}

func RectToPDFArray(r r2.Rect) *core.PdfObjectArray {
	return core.MakeArrayFromFloats([]float64{r.X.Lo, r.Y.Lo, r.X.Hi, r.Y.Hi})
}

func RectFromPDFObject(obj core.PdfObject) (r2.Rect, bool) {
	arr, ok := core.GetArray(obj)
	if !ok {
		return r2.EmptyRect(), false
	}

	coords, err := arr.ToFloat64Array()
	if err != nil || len(coords) < 4 {
		return r2.EmptyRect(), false
	}

	return r2.RectFromPoints(
		r2.Point{X: coords[0], Y: coords[1]},
		r2.Point{X: coords[2], Y: coords[3]},
	), true
}
