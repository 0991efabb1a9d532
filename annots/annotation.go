package annots

import (
	"time"

	"github.com/golang/geo/r2"
)

type Kind string

const (
	Highlight Kind = "highlight"
	FreeText  Kind = "freetext"
)

// Free text boxes are placed with a fixed size, in points.
const (
	FreeTextWidth  = 200.0
	FreeTextHeight = 50.0
)

// Quad is a quadrilateral in page display space (points, y down).
type Quad struct {
	UL r2.Point
	UR r2.Point
	LR r2.Point
	LL r2.Point
}

func QuadFromRect(r r2.Rect) Quad {
	return Quad{
		UL: r2.Point{X: r.X.Lo, Y: r.Y.Lo},
		UR: r2.Point{X: r.X.Hi, Y: r.Y.Lo},
		LR: r2.Point{X: r.X.Hi, Y: r.Y.Hi},
		LL: r2.Point{X: r.X.Lo, Y: r.Y.Hi},
	}
}

func (q Quad) Points() []r2.Point {
	return []r2.Point{q.UL, q.UR, q.LR, q.LL}
}

func (q Quad) Rect() r2.Rect {
	return r2.RectFromPoints(q.Points()...)
}

// Annotation is a pending, not yet saved, annotation on a page.
// Highlights use Quads; free text uses Text. Both carry Rect, which is
// what the eraser hit-tests against.
type Annotation struct {
	Kind  Kind
	Quads []Quad
	Rect  r2.Rect
	Text  string
	Color Color

	// Modified is the date stored with an annotation read from a file. It
	// is zero for annotations created in the editor.
	Modified time.Time
}

func NewHighlight(quads []Quad, color Color) Annotation {
	bound := r2.EmptyRect()

	for _, q := range quads {
		bound = bound.Union(q.Rect())
	}

	return Annotation{
		Kind:  Highlight,
		Quads: quads,
		Rect:  bound,
		Color: color,
	}
}

func NewFreeText(at r2.Point, text string, color Color) Annotation {
	return Annotation{
		Kind:  FreeText,
		Rect:  r2.RectFromPoints(at, r2.Point{X: at.X + FreeTextWidth, Y: at.Y + FreeTextHeight}),
		Text:  text,
		Color: color,
	}
}

func (a Annotation) Clone() Annotation {
	c := a

	if a.Quads != nil {
		c.Quads = make([]Quad, len(a.Quads))
		copy(c.Quads, a.Quads)
	}

	return c
}

// Equal compares what is drawn; Modified is ignored.
func (a Annotation) Equal(b Annotation) bool {
	if a.Kind != b.Kind || a.Text != b.Text || a.Color != b.Color {
		return false
	}

	if a.Rect != b.Rect {
		return false
	}

	if len(a.Quads) != len(b.Quads) {
		return false
	}

	for i := range a.Quads {
		if a.Quads[i] != b.Quads[i] {
			return false
		}
	}

	return true
}

// Contains reports whether pt falls inside the annotation's rectangle.
func (a Annotation) Contains(pt r2.Point) bool {
	return a.Rect.ContainsPoint(pt)
}

// Pages maps a zero-based page index to its pending annotations, in
// insertion order.
type Pages map[int][]Annotation

// Clone returns a full deep copy of every page.
func (p Pages) Clone() Pages {
	c := make(Pages, len(p))

	for page, list := range p {
		cl := make([]Annotation, len(list))
		for i, a := range list {
			cl[i] = a.Clone()
		}
		c[page] = cl
	}

	return c
}

// Equal compares by value. A missing page and an empty page are equal.
func (p Pages) Equal(o Pages) bool {
	for page, list := range p {
		if !equalList(list, o[page]) {
			return false
		}
	}

	for page, list := range o {
		if _, ok := p[page]; !ok && len(list) > 0 {
			return false
		}
	}

	return true
}

func (p Pages) Count() int {
	n := 0
	for _, list := range p {
		n += len(list)
	}
	return n
}

func equalList(a, b []Annotation) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}

	return true
}
