package viewer

import (
	"context"
	"image"

	"github.com/golang/geo/r2"
	"github.com/mgmeyers/pdfannotator/annots"
	"github.com/mgmeyers/pdfannotator/pdfutils"
	"github.com/mgmeyers/pdfannotator/render"
)

// Document is an open PDF as the viewer needs it. *pdfutils.Document
// implements it.
type Document interface {
	Path() string
	NumPages() int
	PageInfo(index int) (pdfutils.PageInfo, error)
	Words(index int) ([]annots.Word, error)
	PreparePage(ctx context.Context, index int, zoom float64) (*image.RGBA, []annots.Word, error)
	Annotations() annots.Pages
	Close() error
}

type OpenFunc func(path string) (Document, error)

type SaveFunc func(path string, pages annots.Pages) error

// OpenPDF opens path with pdfutils.
func OpenPDF(path string) (Document, error) {
	doc, err := pdfutils.Open(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// View is the window the viewer draws into. Positions are in canvas
// pixels; scroll positions are fractions of the content height.
type View interface {
	SetTitle(title string)
	SetFiles(labels []string, selected int)
	ShowPage(img image.Image)
	ClearPage()
	SetSelection(r r2.Rect, visible bool)
	SetState(s State)
	CanvasWidth() float64
	ScrollFraction() float64
	ScrollTo(fraction float64)
}

// Dialogs are blocking from the user's point of view. Prompt answers
// through done so toolkits with asynchronous dialogs can implement it.
type Dialogs interface {
	ShowError(title string, err error)
	ShowInfo(title, message string)
	Prompt(title, initial string, multiline bool, done func(text string, ok bool))
}

type Clipboard interface {
	SetText(text string)
}

// State is what the toolbar needs to enable and label its controls.
type State struct {
	Page     int
	NumPages int
	CanSave  bool
	CanUndo  bool
	CanRedo  bool
	CanPrev  bool
	CanNext  bool
	Mode     Mode
	Color    annots.Color
	Zoom     render.Zoom
}
