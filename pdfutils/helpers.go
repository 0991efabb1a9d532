package pdfutils

import (
	"strings"
	"time"
	"unicode"

	"github.com/mgmeyers/pdfannotator/annots"
	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/model"
)

// Unsupported marks stored annotations the editor does not model. They are
// dropped from the pending list and therefore deleted on save.
const Unsupported annots.Kind = "unsupported"

const dateFormat = "D:20060102150405+07'00'"
const dateFormatZ = "D:20060102150405Z07'00'"
const dateFormatNoZ = "D:20060102150405"

func GetAnnotationDate(annot *model.PdfAnnotation) *time.Time {
	dateStr, ok := core.GetStringVal(annot.M)
	if !ok {
		return nil
	}

	date, err := time.Parse(dateFormat, dateStr)

	if err != nil {
		date, err = time.Parse(dateFormatZ, dateStr)
	}

	if err != nil {
		split := strings.Split(dateStr, "Z")
		date, err = time.Parse(dateFormatNoZ, split[0])
	}

	if err != nil {
		return nil
	}

	return &date
}

// FormatDate renders t as a PDF date string in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format("D:20060102150405Z")
}

func GetAnnotationType(t interface{}) annots.Kind {
	switch t.(type) {
	case *model.PdfAnnotationHighlight:
		return annots.Highlight
	case *model.PdfAnnotationFreeText:
		return annots.FreeText
	default:
		return Unsupported
	}
}

func RemoveNul(str string) string {
	return strings.Map(func(r rune) rune {
		if r == unicode.ReplacementChar {
			return -1
		}
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, str)
}
