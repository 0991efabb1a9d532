package pdfutils

import (
	"testing"
	"time"

	"github.com/golang/geo/r2"
	"github.com/mgmeyers/pdfannotator/annots"
	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 3, 9, 14, 5, 30, 0, time.UTC)

func TestAnnotationDateRoundTrip(t *testing.T) {
	assert.Equal(t, "D:20240309140530Z", FormatDate(fixedTime))

	annot, err := BuildAnnotation(PageInfo{Width: 612, Height: 792}, annots.NewFreeText(r2.Point{}, "x", annots.Black), fixedTime)
	require.NoError(t, err)

	got := GetAnnotationDate(annot)
	require.NotNil(t, got)
	assert.True(t, fixedTime.Equal(*got))
}

func TestGetAnnotationDateFormats(t *testing.T) {
	cases := map[string]time.Time{
		"D:20240309140530Z":       fixedTime,
		"D:20240309140530Z00'00'": fixedTime,
		"D:20240309140530":        fixedTime,
	}

	for in, want := range cases {
		annot := model.NewPdfAnnotationHighlight()
		annot.M = core.MakeString(in)

		got := GetAnnotationDate(annot.PdfAnnotation)
		require.NotNil(t, got, in)
		assert.True(t, want.Equal(*got), in)
	}

	annot := model.NewPdfAnnotationHighlight()
	assert.Nil(t, GetAnnotationDate(annot.PdfAnnotation))
}

func TestRemoveNul(t *testing.T) {
	assert.Equal(t, "ab\ncd", RemoveNul("a\x00b\ncd�"))
}

func TestGetAnnotationType(t *testing.T) {
	assert.Equal(t, annots.Highlight, GetAnnotationType(model.NewPdfAnnotationHighlight()))
	assert.Equal(t, annots.FreeText, GetAnnotationType(model.NewPdfAnnotationFreeText()))
	assert.Equal(t, Unsupported, GetAnnotationType(model.NewPdfAnnotationSquare()))
}
