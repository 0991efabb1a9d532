package annots

import (
	"strings"

	"github.com/golang/geo/r2"
)

// Word is a run of text on a page together with its box in page display
// space.
type Word struct {
	Rect r2.Rect
	Text string
}

// Intersecting returns the words whose box intersects sel, in page order.
// A selection without area selects nothing.
func Intersecting(words []Word, sel r2.Rect) []Word {
	if size := sel.Size(); sel.IsEmpty() || size.X <= 0 || size.Y <= 0 {
		return nil
	}

	var hit []Word

	for _, w := range words {
		if !w.Rect.IsValid() || w.Rect.IsEmpty() {
			continue
		}

		if w.Rect.Intersects(sel) {
			hit = append(hit, w)
		}
	}

	return hit
}

func JoinWords(words []Word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}
