package pdfutils

import (
	"strconv"
	"strings"

	"github.com/mgmeyers/pdfannotator/annots"
	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/model"
)

func PDFObjToColor(c core.PdfObject) (annots.Color, bool) {
	if c == nil {
		return annots.Color{}, false
	}

	objArr, ok := core.GetArray(c)
	if !ok {
		return annots.Color{}, false
	}

	clr, err := objArr.ToFloat64Array()
	if err != nil {
		return annots.Color{}, false
	}

	return annots.ColorFromFloats(clr)
}

func ColorToPDFObj(c annots.Color) *core.PdfObjectArray {
	return core.MakeArrayFromFloats(c.Floats())
}

// GetAnnotationColor returns the stroke color of a highlight or the text
// color of a free text annotation. fallback is used when none is set.
func GetAnnotationColor(annotation *model.PdfAnnotation, fallback annots.Color) annots.Color {
	if annotation == nil {
		return fallback
	}

	ctx := annotation.GetContext()

	switch t := ctx.(type) {
	case *model.PdfAnnotationHighlight:
		if clr, ok := PDFObjToColor(t.C); ok {
			return clr
		}
	case *model.PdfAnnotationFreeText:
		if da, ok := core.GetStringVal(t.DA); ok {
			if clr, ok := ParseDAColor(da); ok {
				return clr
			}
		}
		if clr, ok := PDFObjToColor(t.C); ok {
			return clr
		}
	}

	return fallback
}

// ParseDAColor extracts the last RGB fill color ("r g b rg") or gray fill
// ("g g") from a default appearance string.
func ParseDAColor(da string) (annots.Color, bool) {
	fields := strings.Fields(da)

	for i := len(fields) - 1; i >= 0; i-- {
		switch fields[i] {
		case "rg":
			if i < 3 {
				return annots.Color{}, false
			}
			vals, ok := parseFloats(fields[i-3 : i])
			if !ok {
				return annots.Color{}, false
			}
			return annots.ColorFromFloats(vals)
		case "g":
			if i < 1 {
				return annots.Color{}, false
			}
			vals, ok := parseFloats(fields[i-1 : i])
			if !ok {
				return annots.Color{}, false
			}
			return annots.ColorFromFloats([]float64{vals[0], vals[0], vals[0]})
		}
	}

	return annots.Color{}, false
}

func FormatDA(font string, size float64, c annots.Color) string {
	return "/" + font + " " + formatFloat(size) + " Tf " +
		formatFloat(c.R) + " " + formatFloat(c.G) + " " + formatFloat(c.B) + " rg"
}

func parseFloats(fields []string) ([]float64, bool) {
	vals := make([]float64, len(fields))

	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		vals[i] = v
	}

	return vals, true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
