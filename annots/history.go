package annots

// History keeps full snapshots of the pending annotations taken before each
// edit. There is no diffing: every entry is a deep copy of all pages.
type History struct {
	undoStack []Pages
	redoStack []Pages
}

func NewHistory() *History {
	return &History{}
}

// Push records a snapshot taken before an edit and drops the redo stack,
// since a new edit makes it unreachable.
func (h *History) Push(snapshot Pages) {
	h.undoStack = append(h.undoStack, snapshot)
	h.redoStack = h.redoStack[:0]
}

// Undo returns the state to install in place of current.
func (h *History) Undo(current Pages) (Pages, bool) {
	if len(h.undoStack) == 0 {
		return nil, false
	}

	h.redoStack = append(h.redoStack, current.Clone())

	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	return last, true
}

// Redo returns the state to install in place of current.
func (h *History) Redo(current Pages) (Pages, bool) {
	if len(h.redoStack) == 0 {
		return nil, false
	}

	h.undoStack = append(h.undoStack, current.Clone())

	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]

	return last, true
}

func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Dirty reports unsaved changes: anything left to undo.
func (h *History) Dirty() bool {
	return h.CanUndo()
}

func (h *History) Clear() {
	h.undoStack = h.undoStack[:0]
	h.redoStack = h.redoStack[:0]
}
