package annots

import (
	"github.com/golang/geo/r2"
)

// Editor owns the pending annotations of the open document and the
// undo/redo history of edits made to them.
type Editor struct {
	pages   Pages
	history *History
}

func NewEditor(pages Pages) *Editor {
	if pages == nil {
		pages = Pages{}
	}

	return &Editor{
		pages:   pages,
		history: NewHistory(),
	}
}

// Reset installs a freshly loaded set of annotations and forgets history.
func (e *Editor) Reset(pages Pages) {
	if pages == nil {
		pages = Pages{}
	}

	e.pages = pages
	e.history.Clear()
}

func (e *Editor) Pages() Pages {
	return e.pages
}

func (e *Editor) Page(page int) []Annotation {
	return e.pages[page]
}

func (e *Editor) History() *History {
	return e.history
}

func (e *Editor) Dirty() bool {
	return e.history.Dirty()
}

// AddHighlight highlights every word whose box intersects sel. sel is in
// page display space, already divided by the zoom. Returns false when no
// word is hit, leaving state and history untouched.
func (e *Editor) AddHighlight(page int, words []Word, sel r2.Rect, color Color) bool {
	hit := Intersecting(words, sel)
	if len(hit) == 0 {
		return false
	}

	quads := make([]Quad, len(hit))
	for i, w := range hit {
		quads[i] = QuadFromRect(w.Rect)
	}

	e.mutate()
	e.pages[page] = append(e.pages[page], NewHighlight(quads, color))

	return true
}

// AddFreeText places a fixed-size text box with its top-left corner at.
// Empty text is ignored.
func (e *Editor) AddFreeText(page int, at r2.Point, text string, color Color) bool {
	if text == "" {
		return false
	}

	e.mutate()
	e.pages[page] = append(e.pages[page], NewFreeText(at, text, color))

	return true
}

// Erase removes the most recently added annotation on page whose rectangle
// contains pt.
func (e *Editor) Erase(page int, pt r2.Point) bool {
	list := e.pages[page]

	for i := len(list) - 1; i >= 0; i-- {
		if !list[i].Contains(pt) {
			continue
		}

		e.mutate()

		list = e.pages[page]
		e.pages[page] = append(list[:i:i], list[i+1:]...)

		return true
	}

	return false
}

// SelectText joins the text of the words intersecting sel with spaces.
func (e *Editor) SelectText(words []Word, sel r2.Rect) (string, bool) {
	hit := Intersecting(words, sel)
	if len(hit) == 0 {
		return "", false
	}

	return JoinWords(hit), true
}

func (e *Editor) Undo() bool {
	prev, ok := e.history.Undo(e.pages)
	if !ok {
		return false
	}

	e.pages = prev
	return true
}

func (e *Editor) Redo() bool {
	next, ok := e.history.Redo(e.pages)
	if !ok {
		return false
	}

	e.pages = next
	return true
}

// MarkSaved makes the current state the new baseline. Nothing before it
// can be undone.
func (e *Editor) MarkSaved() {
	e.history.Clear()
}

func (e *Editor) mutate() {
	e.history.Push(e.pages.Clone())
}
