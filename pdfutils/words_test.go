package pdfutils

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/mgmeyers/unipdf/v3/extractor"
	"github.com/mgmeyers/unipdf/v3/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mark(text string, offset int, llx, lly, urx, ury float64) extractor.TextMark {
	return extractor.TextMark{
		Text:   text,
		Offset: offset,
		BBox:   model.PdfRectangle{Llx: llx, Lly: lly, Urx: urx, Ury: ury},
	}
}

func TestWordsFromMarks(t *testing.T) {
	info := PageInfo{Width: 600, Height: 800}
	text := "ab cd\nef"

	marks := []extractor.TextMark{
		mark("a", 0, 10, 700, 15, 710),
		mark("b", 1, 15, 700, 20, 710),
		{Text: " ", Offset: 2, Meta: true},
		mark("c", 3, 25, 700, 30, 710),
		mark("d", 4, 30, 700, 35, 710),
		// No separator mark, but the page text has a newline before "e".
		mark("e", 6, 10, 680, 15, 690),
		mark("f", 7, 15, 680, 20, 690),
	}

	words := WordsFromMarks(text, marks, info)
	require.Len(t, words, 3)

	assert.Equal(t, "ab", words[0].Text)
	assert.Equal(t, "cd", words[1].Text)
	assert.Equal(t, "ef", words[2].Text)

	// Display space has y growing downward from the top of the page.
	assert.Equal(t, r2.RectFromPoints(r2.Point{X: 10, Y: 90}, r2.Point{X: 20, Y: 100}), words[0].Rect)
	assert.Equal(t, r2.RectFromPoints(r2.Point{X: 10, Y: 110}, r2.Point{X: 20, Y: 120}), words[2].Rect)
}

func TestWordsFromMarksSkipsWhitespaceAndEmptyBoxes(t *testing.T) {
	info := PageInfo{Width: 600, Height: 800}

	marks := []extractor.TextMark{
		mark("  ", 0, 0, 0, 5, 5),
		mark("x", 2, 10, 10, 10, 10),
	}

	words := WordsFromMarks("  x", marks, info)
	require.Len(t, words, 0)
}
