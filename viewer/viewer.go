// Package viewer holds the state of the annotator window: the folder being
// browsed, the open document, the page, zoom, tool mode and color, and the
// pending annotations with their history. The widget toolkit talks to it
// through View, Dialogs and Clipboard.
package viewer

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"github.com/golang/geo/r2"
	"github.com/mgmeyers/pdfannotator/annots"
	"github.com/mgmeyers/pdfannotator/browser"
	"github.com/mgmeyers/pdfannotator/config"
	"github.com/mgmeyers/pdfannotator/pdfutils"
	"github.com/mgmeyers/pdfannotator/render"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const Title = "PDF Viewer Application"

var ErrNoDocument = errors.New("no document open")

type Options struct {
	View      View
	Dialogs   Dialogs
	Clipboard Clipboard

	Open OpenFunc
	Save SaveFunc

	LastFolder config.LastFolder
	Settings   config.Settings

	// Dispatch runs a function on the UI goroutine. Debounced redraws go
	// through it.
	Dispatch func(func())

	Log *logrus.Entry
}

type Viewer struct {
	view      View
	dialogs   Dialogs
	clipboard Clipboard
	open      OpenFunc
	save      SaveFunc
	last      config.LastFolder
	log       *logrus.Entry

	composer *render.Composer
	resize   *Debouncer
	editor   *annots.Editor

	folder browser.Folder
	path   string
	doc    Document
	page   int

	zoom  render.Zoom
	mode  Mode
	color annots.Color

	dragStart *r2.Point
}

func New(opts Options) (*Viewer, error) {
	composer, err := render.NewComposer()
	if err != nil {
		return nil, err
	}

	if opts.Open == nil {
		opts.Open = OpenPDF
	}
	if opts.Save == nil {
		opts.Save = pdfutils.SaveAnnotations
	}
	if opts.Log == nil {
		opts.Log = logrus.NewEntry(logrus.StandardLogger())
	}
	if opts.Settings == (config.Settings{}) {
		opts.Settings = config.DefaultSettings()
	}

	return &Viewer{
		view:      opts.View,
		dialogs:   opts.Dialogs,
		clipboard: opts.Clipboard,
		open:      opts.Open,
		save:      opts.Save,
		last:      opts.LastFolder,
		log:       opts.Log,
		composer:  composer,
		resize:    NewDebouncer(opts.Settings.ResizeDebounce, opts.Dispatch),
		editor:    annots.NewEditor(nil),
		zoom:      opts.Settings.Zoom(),
		color:     opts.Settings.Color(),
	}, nil
}

func (v *Viewer) Folder() browser.Folder {
	return v.folder
}

func (v *Viewer) Path() string {
	return v.path
}

func (v *Viewer) Page() int {
	return v.page
}

func (v *Viewer) Mode() Mode {
	return v.mode
}

func (v *Viewer) Zoom() render.Zoom {
	return v.zoom
}

func (v *Viewer) Color() annots.Color {
	return v.color
}

func (v *Viewer) Annotations() annots.Pages {
	return v.editor.Pages()
}

func (v *Viewer) Dirty() bool {
	return v.editor.Dirty()
}

// WindowTitle is the application title, with a trailing star while there
// are unsaved changes.
func (v *Viewer) WindowTitle() string {
	if v.editor.Dirty() {
		return Title + "*"
	}
	return Title
}

// LoadLastFolder reopens the folder stored by a previous session, if any.
func (v *Viewer) LoadLastFolder() {
	folder, err := v.last.Load()
	if err != nil {
		v.log.WithError(err).Warn("could not read last folder")
		return
	}

	if folder == "" {
		return
	}

	v.SelectFolder(folder, "")
}

// SelectFolder lists the PDFs in dir and opens selectName, or the first
// file when selectName is empty or missing.
func (v *Viewer) SelectFolder(dir, selectName string) {
	if err := v.last.Save(dir); err != nil {
		v.log.WithError(err).Warn("could not store last folder")
	}

	folder, err := browser.Load(dir)
	if err != nil {
		v.log.WithError(err).WithField("dir", dir).Error("could not list folder")
		v.dialogs.ShowError("Error", errors.Wrapf(err, "could not read folder %s", dir))
		return
	}

	v.folder = folder

	if len(folder.Files) == 0 {
		v.view.SetFiles(nil, -1)
		v.view.ClearPage()
		v.refresh()
		return
	}

	selected := 0
	if selectName != "" {
		if i := folder.Index(selectName); i >= 0 {
			selected = i
		}
	}

	v.view.SetFiles(folder.DisplayNames(), selected)
	v.OpenIndex(selected)
}

// OpenIndex opens the i-th file of the current folder. Opening the file
// that is already open does nothing.
func (v *Viewer) OpenIndex(i int) {
	if i < 0 || i >= len(v.folder.Files) {
		return
	}

	path := v.folder.Path(i)
	if path == v.path && v.doc != nil {
		return
	}

	v.closeDocument()
	v.resize.Cancel()

	log := v.log.WithField("file", path)

	doc, err := v.open(path)
	if err != nil {
		log.WithError(err).Error("could not open pdf")
		v.editor.Reset(nil)
		v.view.ClearPage()
		v.dialogs.ShowError("Error", errors.Wrapf(err, "could not open %s", filepath.Base(path)))
		v.refresh()
		return
	}

	log.WithField("pages", doc.NumPages()).Debug("opened pdf")

	v.doc = doc
	v.path = path
	v.page = 0
	v.dragStart = nil
	v.editor.Reset(doc.Annotations())

	v.Render(true)
	v.refresh()
}

// Close releases the open document.
func (v *Viewer) Close() {
	v.resize.Cancel()
	v.closeDocument()
}

func (v *Viewer) closeDocument() {
	if v.doc != nil {
		if err := v.doc.Close(); err != nil {
			v.log.WithError(err).Warn("could not close pdf")
		}
	}

	v.doc = nil
	v.path = ""
}

func (v *Viewer) zoomFactor() (float64, error) {
	if v.doc == nil {
		return 0, ErrNoDocument
	}

	info, err := v.doc.PageInfo(v.page)
	if err != nil {
		return 0, err
	}

	return v.zoom.Factor(v.view.CanvasWidth(), info.EffectiveWidth()), nil
}

// Render redraws the current page. Unless resetScroll is set, the vertical
// scroll position is kept as a fraction of the page height.
func (v *Viewer) Render(resetScroll bool) {
	if v.doc == nil {
		return
	}

	if v.zoom.FitWidth && v.view.CanvasWidth() <= 1 {
		return
	}

	fraction := v.view.ScrollFraction()

	img, err := v.composePage()
	if err != nil {
		v.log.WithError(err).WithField("page", v.page).Error("could not render page")
		v.dialogs.ShowError("Error", err)
		return
	}

	v.view.ShowPage(img)

	if resetScroll {
		v.view.ScrollTo(0)
	} else {
		v.view.ScrollTo(fraction)
	}
}

func (v *Viewer) composePage() (*image.RGBA, error) {
	zoom, err := v.zoomFactor()
	if err != nil {
		return nil, err
	}

	base, _, err := v.doc.PreparePage(context.Background(), v.page, zoom)
	if err != nil {
		return nil, err
	}

	return v.composer.Compose(base, v.editor.Page(v.page), zoom), nil
}

// Resized is called on every size change of the canvas. Only fit-width
// depends on it, and only the last of a burst redraws.
func (v *Viewer) Resized() {
	v.resize.Cancel()

	if v.doc == nil || !v.zoom.FitWidth {
		return
	}

	v.resize.Trigger(func() {
		v.Render(false)
	})
}

func (v *Viewer) SetZoom(z render.Zoom) {
	v.zoom = z
	v.Render(false)
	v.refresh()
}

func (v *Viewer) NextPage() {
	if v.doc == nil || v.page >= v.doc.NumPages()-1 {
		return
	}

	v.page++
	v.dragStart = nil
	v.Render(true)
	v.refresh()
}

func (v *Viewer) PrevPage() {
	if v.doc == nil || v.page <= 0 {
		return
	}

	v.page--
	v.dragStart = nil
	v.Render(true)
	v.refresh()
}

func (v *Viewer) ScrollToTop() {
	if v.doc != nil {
		v.view.ScrollTo(0)
	}
}

func (v *Viewer) ScrollToBottom() {
	if v.doc != nil {
		v.view.ScrollTo(1)
	}
}

// ToggleMode activates m, or returns to no tool when m is already active.
func (v *Viewer) ToggleMode(m Mode) {
	if v.mode == m {
		v.mode = ModeNone
	} else {
		v.mode = m
	}

	v.dragStart = nil
	v.view.SetSelection(r2.EmptyRect(), false)
	v.refresh()
}

func (v *Viewer) SetColor(c annots.Color) {
	v.color = c
	v.log.WithFields(logrus.Fields{
		"color": c.Category(),
		"hex":   c.Hex(),
	}).Info("annotation color changed")
	v.refresh()
}

// Press handles a button press on the canvas at pt.
func (v *Viewer) Press(pt r2.Point) {
	if v.doc == nil {
		return
	}

	switch v.mode {
	case ModeSelect, ModeHighlight:
		start := pt
		v.dragStart = &start
	case ModeText:
		v.dialogs.Prompt("Add Text", "", true, func(text string, ok bool) {
			if ok {
				v.AddText(pt, text)
			}
		})
	case ModeEraser:
		v.EraseAt(pt)
	}
}

// Drag updates the selection preview while a region is being dragged.
func (v *Viewer) Drag(pt r2.Point) {
	if v.dragStart == nil || !v.mode.dragging() {
		return
	}

	v.view.SetSelection(r2.RectFromPoints(*v.dragStart, pt), true)
}

// Release finishes a drag: highlight mode highlights the words under the
// region, select mode copies their text.
func (v *Viewer) Release(pt r2.Point) {
	if v.dragStart == nil {
		return
	}

	start := *v.dragStart
	v.dragStart = nil
	v.view.SetSelection(r2.EmptyRect(), false)

	if v.doc == nil || !v.mode.dragging() {
		return
	}

	zoom, err := v.zoomFactor()
	if err != nil {
		v.log.WithError(err).Error("could not compute zoom")
		return
	}

	sel := scaleRect(r2.RectFromPoints(start, pt), 1/zoom)

	words, err := v.doc.Words(v.page)
	if err != nil {
		v.log.WithError(err).WithField("page", v.page).Error("could not extract words")
		return
	}

	switch v.mode {
	case ModeHighlight:
		if v.editor.AddHighlight(v.page, words, sel, v.color) {
			v.edited()
		}
	case ModeSelect:
		text, ok := v.editor.SelectText(words, sel)
		if !ok {
			return
		}

		v.clipboard.SetText(text)
		v.ToggleMode(ModeSelect)
		v.dialogs.ShowInfo("Text Copied", "Selected text has been copied to the clipboard.")
	}
}

// AddText places a free text note with its top-left corner at the canvas
// point pt.
func (v *Viewer) AddText(pt r2.Point, text string) {
	zoom, err := v.zoomFactor()
	if err != nil {
		return
	}

	at := r2.Point{X: pt.X / zoom, Y: pt.Y / zoom}
	if v.editor.AddFreeText(v.page, at, text, v.color) {
		v.edited()
	}
}

// EraseAt removes the most recently added annotation under the canvas
// point pt.
func (v *Viewer) EraseAt(pt r2.Point) {
	zoom, err := v.zoomFactor()
	if err != nil {
		return
	}

	at := r2.Point{X: pt.X / zoom, Y: pt.Y / zoom}
	if v.editor.Erase(v.page, at) {
		v.edited()
	}
}

func (v *Viewer) Undo() {
	if v.editor.Undo() {
		v.edited()
	}
}

func (v *Viewer) Redo() {
	if v.editor.Redo() {
		v.edited()
	}
}

func (v *Viewer) edited() {
	v.Render(false)
	v.refresh()
}

// Save writes the pending annotations into the open file. On success the
// history is cleared, so saved edits cannot be undone.
func (v *Viewer) Save(showSuccess bool) bool {
	if v.doc == nil || v.path == "" {
		return false
	}

	log := v.log.WithField("file", v.path)

	if err := v.save(v.path, v.editor.Pages()); err != nil {
		log.WithError(err).Error("could not save annotations")
		v.dialogs.ShowError("Save Error", errors.Wrap(err, "could not save file"))
		return false
	}

	log.WithField("annotations", v.editor.Pages().Count()).Info("saved annotations")

	v.editor.MarkSaved()
	v.refresh()

	if showSuccess {
		v.dialogs.ShowInfo("Save Successful", fmt.Sprintf("Annotations saved to %s", filepath.Base(v.path)))
	}

	return true
}

// Rename asks for a new name for the i-th file. Unsaved changes are saved
// first; a failed save aborts the rename.
func (v *Viewer) Rename(i int) {
	if i < 0 || i >= len(v.folder.Files) {
		return
	}

	if v.editor.Dirty() && !v.Save(false) {
		return
	}

	dir := v.folder.Dir
	oldName := v.folder.Files[i]

	v.dialogs.Prompt("Rename File", oldName, false, func(newName string, ok bool) {
		if !ok {
			return
		}
		v.renameFile(dir, oldName, newName)
	})
}

func (v *Viewer) renameFile(dir, oldName, newName string) {
	if newName == "" || newName == oldName {
		return
	}

	if _, err := browser.NormalizeName(newName); err != nil {
		v.dialogs.ShowError("Rename Error", err)
		return
	}

	if v.path == filepath.Join(dir, oldName) {
		v.closeDocument()
		v.editor.Reset(nil)
		v.view.ClearPage()
	}

	name, err := browser.Rename(dir, oldName, newName)
	if err != nil {
		v.log.WithError(err).WithField("file", oldName).Error("could not rename")
		v.dialogs.ShowError("Rename Error", errors.Wrap(err, "could not rename file"))
		v.SelectFolder(dir, oldName)
		return
	}

	v.log.WithFields(logrus.Fields{"from": oldName, "to": name}).Info("renamed file")
	v.SelectFolder(dir, name)
}

// ExportPage writes the current page as shown, annotations included, to
// path. The format follows the extension.
func (v *Viewer) ExportPage(path string) error {
	if v.doc == nil {
		return ErrNoDocument
	}

	img, err := v.composePage()
	if err != nil {
		return err
	}

	if err := pdfutils.WriteImage(img, path, 90); err != nil {
		return errors.Wrapf(err, "export page %d", v.page+1)
	}

	return nil
}

func (v *Viewer) State() State {
	s := State{
		Page:  v.page,
		Mode:  v.mode,
		Color: v.color,
		Zoom:  v.zoom,
	}

	if v.doc != nil {
		s.NumPages = v.doc.NumPages()
		s.CanSave = true
		s.CanPrev = v.page > 0
		s.CanNext = v.page < s.NumPages-1
	}

	s.CanUndo = v.editor.History().CanUndo()
	s.CanRedo = v.editor.History().CanRedo()

	return s
}

func (v *Viewer) refresh() {
	v.view.SetState(v.State())
	v.view.SetTitle(v.WindowTitle())
}

func scaleRect(r r2.Rect, f float64) r2.Rect {
	return r2.RectFromPoints(
		r2.Point{X: r.X.Lo * f, Y: r.Y.Lo * f},
		r2.Point{X: r.X.Hi * f, Y: r.Y.Hi * f},
	)
}
