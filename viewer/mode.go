package viewer

type Mode int

const (
	ModeNone Mode = iota
	ModeSelect
	ModeHighlight
	ModeText
	ModeEraser
)

func (m Mode) String() string {
	switch m {
	case ModeSelect:
		return "select"
	case ModeHighlight:
		return "highlight"
	case ModeText:
		return "text"
	case ModeEraser:
		return "eraser"
	}
	return "none"
}

// dragging reports whether the mode selects a region by dragging.
func (m Mode) dragging() bool {
	return m == ModeSelect || m == ModeHighlight
}
