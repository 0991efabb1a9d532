package pdfutils

import (
	"strings"

	"github.com/golang/geo/r2"
	"github.com/mgmeyers/pdfannotator/annots"
	"github.com/mgmeyers/unipdf/v3/contentstream"
	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/model"
	"github.com/pkg/errors"
)

const (
	multiplyState = "GSMultiply"

	// Line spacing and inset of free text inside its box, in points.
	freeTextLeading = freeTextFontSize * 1.2
	freeTextPadding = 2.0
)

// The form BBox is the annotation Rect, so the appearance maps onto the
// page without a transform and is drawn in page user space.
func appearanceDict(bbox r2.Rect, content []byte, resources *model.PdfPageResources) (*core.PdfObjectDictionary, error) {
	form := model.NewXObjectForm()
	form.Resources = resources
	form.BBox = RectToPDFArray(bbox)

	if err := form.SetContentStream(content, nil); err != nil {
		return nil, errors.Wrap(err, "set appearance stream")
	}

	ap := core.MakeDict()
	ap.Set("N", form.ToPdfObject())

	return ap, nil
}

// highlightAppearance fills every quad with the color, multiplied onto the
// page so the text underneath stays readable.
func highlightAppearance(info PageInfo, a annots.Annotation, bbox r2.Rect) (*core.PdfObjectDictionary, error) {
	resources := model.NewPdfPageResources()

	gs := core.MakeDict()
	gs.Set("BM", core.MakeName("Multiply"))
	if err := resources.AddExtGState(multiplyState, gs); err != nil {
		return nil, err
	}

	rgb := a.Color.Floats()

	cc := contentstream.NewContentCreator()
	cc.Add_q().
		Add_gs(multiplyState).
		Add_rg(rgb[0], rgb[1], rgb[2])

	for _, q := range a.Quads {
		pts := q.Points()

		start := info.FromDisplay(pts[0])
		cc.Add_m(start.X, start.Y)

		for _, pt := range pts[1:] {
			p := info.FromDisplay(pt)
			cc.Add_l(p.X, p.Y)
		}

		cc.Add_h()
	}

	cc.Add_f().Add_Q()

	return appearanceDict(bbox, cc.Bytes(), resources)
}

// freeTextAppearance writes the text top-down inside the box, upright on
// the displayed page whatever the page rotation is.
func freeTextAppearance(info PageInfo, a annots.Annotation, bbox r2.Rect) (*core.PdfObjectDictionary, error) {
	font, err := model.NewStandard14Font(model.HelveticaName)
	if err != nil {
		return nil, err
	}

	resources := model.NewPdfPageResources()
	if err := resources.SetFontByName(freeTextFont, font.ToPdfObject()); err != nil {
		return nil, err
	}

	width := a.Rect.X.Length()
	height := a.Rect.Y.Length()

	// Local frame: origin at the box's bottom-left as displayed, x to the
	// right and y up on screen.
	origin := info.FromDisplay(r2.Point{X: a.Rect.X.Lo, Y: a.Rect.Y.Hi})
	ex := info.FromDisplay(r2.Point{X: a.Rect.X.Lo + 1, Y: a.Rect.Y.Hi}).Sub(origin)
	ey := info.FromDisplay(r2.Point{X: a.Rect.X.Lo, Y: a.Rect.Y.Hi - 1}).Sub(origin)

	rgb := a.Color.Floats()
	enc := font.Encoder()

	cc := contentstream.NewContentCreator()
	cc.Add_q().
		Add_cm(ex.X, ex.Y, ey.X, ey.Y, origin.X, origin.Y).
		Add_re(0, 0, width, height).
		Add_W().
		Add_n().
		Add_BT().
		Add_Tf(freeTextFont, freeTextFontSize).
		Add_rg(rgb[0], rgb[1], rgb[2]).
		Add_TL(freeTextLeading).
		Add_Td(freeTextPadding, height-freeTextPadding-freeTextFontSize)

	for i, line := range strings.Split(a.Text, "\n") {
		if i > 0 {
			cc.Add_Tstar()
		}

		var raw []byte
		if enc != nil {
			raw = enc.Encode(line)
		} else {
			raw = []byte(line)
		}

		cc.Add_Tj(*core.MakeStringFromBytes(raw))
	}

	cc.Add_ET().Add_Q()

	return appearanceDict(bbox, cc.Bytes(), resources)
}
