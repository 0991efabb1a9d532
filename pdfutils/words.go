package pdfutils

import (
	"strings"

	"github.com/golang/geo/r2"
	"github.com/mgmeyers/pdfannotator/annots"
	"github.com/mgmeyers/unipdf/v3/extractor"
	"github.com/mgmeyers/unipdf/v3/model"
)

// PageWords extracts the words of page with their boxes in display space.
func PageWords(page *model.PdfPage, info PageInfo) ([]annots.Word, error) {
	ext, err := extractor.New(page)
	if err != nil {
		return nil, err
	}

	txt, _, _, err := ext.ExtractPageText()
	if err != nil {
		return nil, err
	}

	return WordsFromMarks(txt.Text(), txt.Marks().Elements(), info), nil
}

// WordsFromMarks groups character marks into words. A word ends at a
// whitespace or inserted mark, or when the page text has whitespace right
// before the next mark.
func WordsFromMarks(text string, marks []extractor.TextMark, info PageInfo) []annots.Word {
	words := []annots.Word{}

	var (
		str   strings.Builder
		bound = r2.EmptyRect()
	)

	flush := func() {
		if str.Len() > 0 && !bound.IsEmpty() {
			words = append(words, annots.Word{
				Rect: info.RectToDisplay(bound),
				Text: str.String(),
			})
		}
		str.Reset()
		bound = r2.EmptyRect()
	}

	for _, mark := range marks {
		if mark.Meta || strings.TrimSpace(mark.Text) == "" {
			flush()
			continue
		}

		if str.Len() > 0 && mark.Offset > 0 && mark.Offset <= len(text) {
			prevChar := text[mark.Offset-1]

			if prevChar == ' ' || prevChar == '\n' {
				flush()
			}
		}

		rect := GetMarkRect(mark)
		if !hasArea(rect) {
			continue
		}

		str.WriteString(RemoveNul(mark.Text))
		bound = bound.Union(rect)
	}

	flush()

	return words
}

func hasArea(r r2.Rect) bool {
	if !r.IsValid() || r.IsEmpty() {
		return false
	}

	s := r.Size()
	return s.X > 0 && s.Y > 0
}
