package annots

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(x0, y0, x1, y1 float64) r2.Rect {
	return r2.RectFromPoints(r2.Point{X: x0, Y: y0}, r2.Point{X: x1, Y: y1})
}

func testWords() []Word {
	return []Word{
		{Rect: rect(10, 10, 40, 20), Text: "hello"},
		{Rect: rect(45, 10, 80, 20), Text: "world"},
		{Rect: rect(10, 30, 50, 40), Text: "second"},
		{Rect: rect(55, 30, 90, 40), Text: "line"},
	}
}

func TestAddHighlightNoWordsIsNoop(t *testing.T) {
	e := NewEditor(nil)

	ok := e.AddHighlight(0, testWords(), rect(200, 200, 300, 300), Yellow)

	assert.False(t, ok)
	assert.Equal(t, 0, e.Pages().Count())
	assert.False(t, e.History().CanUndo())
	assert.False(t, e.Dirty())
}

func TestAddHighlightZeroAreaSelection(t *testing.T) {
	e := NewEditor(nil)

	ok := e.AddHighlight(0, testWords(), rect(20, 15, 20, 15), Yellow)

	assert.False(t, ok)
	assert.Equal(t, 0, e.Pages().Count())
}

func TestAddHighlightSelectsIntersectingWords(t *testing.T) {
	e := NewEditor(nil)

	ok := e.AddHighlight(2, testWords(), rect(30, 5, 52, 35), Yellow)
	require.True(t, ok)

	page := e.Page(2)
	require.Len(t, page, 1)

	h := page[0]
	assert.Equal(t, Highlight, h.Kind)
	assert.Equal(t, Yellow, h.Color)
	require.Len(t, h.Quads, 3)
	assert.Equal(t, QuadFromRect(rect(10, 10, 40, 20)), h.Quads[0])
	assert.Equal(t, QuadFromRect(rect(45, 10, 80, 20)), h.Quads[1])
	assert.Equal(t, QuadFromRect(rect(10, 30, 50, 40)), h.Quads[2])

	for _, q := range h.Quads {
		assert.True(t, h.Rect.Contains(q.Rect()))
	}
	assert.Equal(t, rect(10, 10, 80, 40), h.Rect)
	assert.True(t, e.Dirty())
}

func TestAddFreeText(t *testing.T) {
	e := NewEditor(nil)

	assert.False(t, e.AddFreeText(0, r2.Point{X: 5, Y: 5}, "", Black))
	assert.False(t, e.History().CanUndo())

	require.True(t, e.AddFreeText(0, r2.Point{X: 5, Y: 7}, "note\nmore", Black))

	page := e.Page(0)
	require.Len(t, page, 1)
	assert.Equal(t, FreeText, page[0].Kind)
	assert.Equal(t, "note\nmore", page[0].Text)
	assert.Equal(t, rect(5, 7, 205, 57), page[0].Rect)
}

func TestEraseRemovesMostRecentContaining(t *testing.T) {
	e := NewEditor(nil)

	require.True(t, e.AddFreeText(0, r2.Point{X: 0, Y: 0}, "first", Black))
	require.True(t, e.AddFreeText(0, r2.Point{X: 10, Y: 10}, "second", Black))
	require.True(t, e.AddFreeText(0, r2.Point{X: 500, Y: 500}, "third", Black))

	require.True(t, e.Erase(0, r2.Point{X: 20, Y: 20}))

	page := e.Page(0)
	require.Len(t, page, 2)
	assert.Equal(t, "first", page[0].Text)
	assert.Equal(t, "third", page[1].Text)
}

func TestEraseMissIsNoop(t *testing.T) {
	e := NewEditor(nil)
	require.True(t, e.AddFreeText(0, r2.Point{X: 0, Y: 0}, "first", Black))
	e.MarkSaved()

	assert.False(t, e.Erase(0, r2.Point{X: 900, Y: 900}))
	assert.False(t, e.Erase(3, r2.Point{X: 1, Y: 1}))
	assert.Len(t, e.Page(0), 1)
	assert.False(t, e.History().CanUndo())
}

func TestUndoRedoRestoresByValue(t *testing.T) {
	e := NewEditor(Pages{
		0: {NewFreeText(r2.Point{X: 1, Y: 1}, "loaded", Black)},
	})

	before := e.Pages().Clone()

	require.True(t, e.AddHighlight(0, testWords(), rect(0, 0, 100, 25), Yellow))
	after := e.Pages().Clone()
	require.False(t, before.Equal(after))

	require.True(t, e.Undo())
	assert.True(t, before.Equal(e.Pages()))
	assert.True(t, e.History().CanRedo())
	assert.False(t, e.Dirty())

	require.True(t, e.Redo())
	assert.True(t, after.Equal(e.Pages()))
	assert.False(t, e.History().CanRedo())
	assert.True(t, e.Dirty())
}

func TestUndoAfterEraseRestoresErased(t *testing.T) {
	e := NewEditor(nil)
	require.True(t, e.AddFreeText(1, r2.Point{X: 0, Y: 0}, "keep me", Black))
	before := e.Pages().Clone()

	require.True(t, e.Erase(1, r2.Point{X: 10, Y: 10}))
	assert.Empty(t, e.Page(1))

	require.True(t, e.Undo())
	assert.True(t, before.Equal(e.Pages()))
}

func TestNewEditClearsRedo(t *testing.T) {
	e := NewEditor(nil)
	require.True(t, e.AddFreeText(0, r2.Point{}, "a", Black))
	require.True(t, e.Undo())
	require.True(t, e.History().CanRedo())

	require.True(t, e.AddFreeText(0, r2.Point{}, "b", Black))
	assert.False(t, e.History().CanRedo())
	assert.False(t, e.Redo())
}

func TestUndoRedoEmpty(t *testing.T) {
	e := NewEditor(nil)
	assert.False(t, e.Undo())
	assert.False(t, e.Redo())
}

func TestSnapshotsAreIndependent(t *testing.T) {
	e := NewEditor(nil)
	require.True(t, e.AddHighlight(0, testWords(), rect(0, 0, 100, 25), Yellow))
	require.True(t, e.AddHighlight(0, testWords(), rect(0, 25, 100, 45), Yellow))

	// Mutating the live state must not leak into stored snapshots.
	e.Pages()[0][0].Quads[0] = Quad{}

	require.True(t, e.Undo())
	assert.Equal(t, QuadFromRect(rect(10, 10, 40, 20)), e.Page(0)[0].Quads[0])
}

func TestMarkSavedClearsHistory(t *testing.T) {
	e := NewEditor(nil)
	require.True(t, e.AddFreeText(0, r2.Point{}, "a", Black))
	require.True(t, e.AddFreeText(0, r2.Point{}, "b", Black))
	require.True(t, e.Undo())

	e.MarkSaved()

	assert.False(t, e.History().CanUndo())
	assert.False(t, e.History().CanRedo())
	assert.Len(t, e.Page(0), 1)
}

func TestSelectText(t *testing.T) {
	e := NewEditor(nil)

	text, ok := e.SelectText(testWords(), rect(0, 0, 100, 25))
	require.True(t, ok)
	assert.Equal(t, "hello world", text)

	_, ok = e.SelectText(testWords(), rect(500, 500, 600, 600))
	assert.False(t, ok)
	assert.False(t, e.Dirty())
}
