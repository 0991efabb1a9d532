package pdfutils

import (
	"bytes"
	"time"
	"unicode"

	"github.com/golang/geo/r2"
	"github.com/mgmeyers/pdfannotator/annots"
	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/model"
	"github.com/pkg/errors"
)

const (
	freeTextFont     = "Helv"
	freeTextFontSize = 11.0

	// Annotation flag bit 3: print the annotation.
	printFlag = 4
)

var ErrEncrypted = errors.New("pdf is encrypted and cannot be opened without a password")

// NewReader parses a PDF held in memory, decrypting it with the empty user
// password when needed.
func NewReader(data []byte) (*model.PdfReader, error) {
	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	encrypted, err := reader.IsEncrypted()
	if err != nil {
		return nil, err
	}

	if encrypted {
		ok, err := reader.Decrypt([]byte(""))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrEncrypted
		}
	}

	return reader, nil
}

// ReadAnnotations converts the stored highlight and free text annotations
// of every page into pending annotations. Every page gets an entry, even
// an empty one.
func ReadAnnotations(reader *model.PdfReader) (annots.Pages, error) {
	numPages, err := reader.GetNumPages()
	if err != nil {
		return nil, err
	}

	pages := make(annots.Pages, numPages)

	for i := 0; i < numPages; i++ {
		page, err := reader.GetPage(i + 1)
		if err != nil {
			return nil, errors.Wrapf(err, "page %d", i+1)
		}

		info, err := GetPageInfo(page)
		if err != nil {
			return nil, errors.Wrapf(err, "page %d", i+1)
		}

		list, err := PageAnnotations(page, info)
		if err != nil {
			return nil, errors.Wrapf(err, "page %d", i+1)
		}

		pages[i] = list
	}

	return pages, nil
}

func PageAnnotations(page *model.PdfPage, info PageInfo) ([]annots.Annotation, error) {
	annotations, err := page.GetAnnotations()
	if err != nil {
		return nil, err
	}

	list := []annots.Annotation{}

	for _, annotation := range annotations {
		ctx := annotation.GetContext()

		switch GetAnnotationType(ctx) {
		case annots.Highlight:
			qp, ok := core.GetArray(ctx.(*model.PdfAnnotationHighlight).QuadPoints)
			if !ok {
				continue
			}

			quads := QuadPointsToDisplay(info, qp)
			if len(quads) == 0 {
				continue
			}

			hl := annots.NewHighlight(quads, GetAnnotationColor(annotation, annots.Yellow))
			hl.Modified = modifiedAt(annotation)
			list = append(list, hl)
		case annots.FreeText:
			rect, ok := RectFromPDFObject(annotation.Rect)
			if !ok {
				continue
			}

			list = append(list, annots.Annotation{
				Kind:     annots.FreeText,
				Rect:     info.RectToDisplay(rect),
				Text:     annotationText(annotation),
				Color:    GetAnnotationColor(annotation, annots.Black),
				Modified: modifiedAt(annotation),
			})
		}
	}

	return list, nil
}

// BuildAnnotation turns a pending annotation into a PDF annotation
// dictionary in the page's user space, with an appearance stream so other
// readers draw it the way the editor does. Annotations read from the file
// keep their modification date; new ones are stamped with modified.
func BuildAnnotation(info PageInfo, a annots.Annotation, modified time.Time) (*model.PdfAnnotation, error) {
	if !a.Modified.IsZero() {
		modified = a.Modified
	}
	date := core.MakeString(FormatDate(modified))

	switch a.Kind {
	case annots.Highlight:
		if len(a.Quads) == 0 {
			return nil, errors.New("highlight without quads")
		}

		bound := r2.EmptyRect()
		for _, q := range a.Quads {
			bound = bound.Union(q.Rect())
		}
		rect := info.RectFromDisplay(bound)

		ap, err := highlightAppearance(info, a, rect)
		if err != nil {
			return nil, err
		}

		hl := model.NewPdfAnnotationHighlight()
		hl.Rect = RectToPDFArray(rect)
		hl.QuadPoints = core.MakeArrayFromFloats(QuadPointsFromDisplay(info, a.Quads))
		hl.C = ColorToPDFObj(a.Color)
		hl.F = core.MakeInteger(printFlag)
		hl.M = date
		hl.AP = ap

		return hl.PdfAnnotation, nil
	case annots.FreeText:
		rect := info.RectFromDisplay(a.Rect)

		ap, err := freeTextAppearance(info, a, rect)
		if err != nil {
			return nil, err
		}

		ft := model.NewPdfAnnotationFreeText()
		ft.Rect = RectToPDFArray(rect)
		ft.Contents = makeText(a.Text)
		ft.DA = core.MakeString(FormatDA(freeTextFont, freeTextFontSize, a.Color))
		ft.F = core.MakeInteger(printFlag)
		ft.M = date
		ft.AP = ap

		return ft.PdfAnnotation, nil
	}

	return nil, errors.Errorf("unsupported annotation kind %q", a.Kind)
}

func modifiedAt(annotation *model.PdfAnnotation) time.Time {
	if date := GetAnnotationDate(annotation); date != nil {
		return *date
	}
	return time.Time{}
}

func annotationText(annotation *model.PdfAnnotation) string {
	str, ok := core.GetString(annotation.Contents)
	if !ok {
		return ""
	}

	return RemoveNul(str.Decoded())
}

func makeText(text string) *core.PdfObjectString {
	for _, r := range text {
		if r > unicode.MaxASCII {
			return core.MakeEncodedString(text, true)
		}
	}

	return core.MakeString(text)
}
