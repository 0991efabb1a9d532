// Package ui is the Fyne front end of the annotator: the file list, the
// toolbar and the page canvas, all driving a viewer.Viewer.
package ui

import (
	"fmt"
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/golang/geo/r2"
	"github.com/mgmeyers/pdfannotator/annots"
	"github.com/mgmeyers/pdfannotator/config"
	"github.com/mgmeyers/pdfannotator/render"
	"github.com/mgmeyers/pdfannotator/viewer"
	"github.com/sirupsen/logrus"
)

const appID = "com.github.mgmeyers.pdfannotator"

type Options struct {
	// Folder is opened at startup instead of the last used one.
	Folder string

	LastFolder config.LastFolder
	Settings   config.Settings
	Log        *logrus.Entry
}

// window implements viewer.View on top of Fyne widgets.
type window struct {
	win  fyne.Window
	v    *viewer.Viewer
	log  *logrus.Entry
	page *pageView

	files    *widget.List
	labels   []string
	syncing  bool
	pageInfo *widget.Label
	swatch   *canvas.Rectangle
	color    *widget.Label
	zoom     *widget.Select

	save, undo, redo, prev, next, export *widget.Button
	modes                                map[viewer.Mode]*widget.Button
}

// Run opens the main window and blocks until it is closed.
func Run(opts Options) error {
	a := app.NewWithID(appID)
	w := a.NewWindow(viewer.Title)
	w.Resize(fyne.NewSize(opts.Settings.WindowWidth, opts.Settings.WindowHeight))

	ui := &window{
		win:  w,
		log:  opts.Log,
		page: newPageView(),
	}

	v, err := viewer.New(viewer.Options{
		View:       ui,
		Dialogs:    dialogs{win: w},
		Clipboard:  clipboard{win: w},
		LastFolder: opts.LastFolder,
		Settings:   opts.Settings,
		Dispatch:   fyne.Do,
		Log:        opts.Log.WithField("component", "viewer"),
	})
	if err != nil {
		return err
	}
	ui.v = v

	w.SetContent(ui.layout())
	ui.bindKeys()
	ui.SetState(v.State())

	w.SetOnClosed(v.Close)

	if opts.Folder != "" {
		v.SelectFolder(opts.Folder, "")
	} else {
		v.LoadLastFolder()
	}

	opts.Log.Info("starting ui")
	w.ShowAndRun()

	return nil
}

func (ui *window) layout() fyne.CanvasObject {
	ui.files = widget.NewList(
		func() int { return len(ui.labels) },
		func() fyne.CanvasObject { return newFileItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			item := obj.(*fileItem)
			item.SetText(ui.labels[id])
			item.onRename = func() { ui.v.Rename(id) }
		},
	)
	ui.files.OnSelected = func(id widget.ListItemID) {
		if !ui.syncing {
			ui.v.OpenIndex(id)
		}
	}

	selectFolder := widget.NewButton("Select Folder", ui.chooseFolder)
	left := container.NewBorder(nil, selectFolder, nil, nil, ui.files)

	ui.page.content.onPress = ui.v.Press
	ui.page.content.onDrag = ui.v.Drag
	ui.page.content.onRelease = ui.v.Release
	ui.page.onResize = ui.v.Resized

	split := container.NewHSplit(left, ui.page)
	split.Offset = 0.2

	return container.NewBorder(ui.toolbar(), nil, nil, nil, split)
}

func (ui *window) toolbar() fyne.CanvasObject {
	ui.modes = map[viewer.Mode]*widget.Button{
		viewer.ModeSelect:    widget.NewButton("Select Text", func() { ui.v.ToggleMode(viewer.ModeSelect) }),
		viewer.ModeHighlight: widget.NewButton("Highlight", func() { ui.v.ToggleMode(viewer.ModeHighlight) }),
		viewer.ModeText:      widget.NewButton("Add Text", func() { ui.v.ToggleMode(viewer.ModeText) }),
		viewer.ModeEraser:    widget.NewButton("Eraser", func() { ui.v.ToggleMode(viewer.ModeEraser) }),
	}

	ui.swatch = canvas.NewRectangle(ui.v.Color().RGBA(255))
	ui.swatch.SetMinSize(fyne.NewSize(24, 24))
	ui.swatch.StrokeColor = color.Black
	ui.swatch.StrokeWidth = 1
	ui.color = widget.NewLabel(ui.v.Color().Category())

	chooseColor := widget.NewButton("Color", ui.chooseColor)

	ui.save = widget.NewButton("Save", func() { ui.v.Save(true) })
	ui.undo = widget.NewButton("Undo", ui.v.Undo)
	ui.redo = widget.NewButton("Redo", ui.v.Redo)

	ui.zoom = widget.NewSelect(render.Labels(), func(label string) {
		z, err := render.ParseZoom(label)
		if err != nil {
			ui.log.WithError(err).Warn("ignoring zoom")
			return
		}
		if z != ui.v.Zoom() {
			ui.v.SetZoom(z)
		}
	})
	ui.zoom.SetSelected(ui.v.Zoom().String())

	ui.prev = widget.NewButton("<", ui.v.PrevPage)
	ui.next = widget.NewButton(">", ui.v.NextPage)
	ui.pageInfo = widget.NewLabel("")

	ui.export = widget.NewButton("Export Page", ui.exportPage)

	return container.NewHBox(
		ui.modes[viewer.ModeSelect],
		ui.modes[viewer.ModeHighlight],
		ui.modes[viewer.ModeText],
		ui.modes[viewer.ModeEraser],
		widget.NewSeparator(),
		ui.swatch,
		ui.color,
		chooseColor,
		widget.NewSeparator(),
		ui.save,
		ui.undo,
		ui.redo,
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		ui.zoom,
		widget.NewSeparator(),
		ui.prev,
		ui.pageInfo,
		ui.next,
		widget.NewSeparator(),
		ui.export,
	)
}

func (ui *window) bindKeys() {
	c := ui.win.Canvas()

	shortcut := func(key fyne.KeyName, fn func()) {
		c.AddShortcut(&desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
			fn()
		})
	}

	shortcut(fyne.KeyS, func() { ui.v.Save(true) })
	shortcut(fyne.KeyZ, ui.v.Undo)
	shortcut(fyne.KeyY, ui.v.Redo)

	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyLeft:
			ui.v.PrevPage()
		case fyne.KeyRight:
			ui.v.NextPage()
		case fyne.KeyUp:
			ui.page.scrollBy(-keyScrollStep)
		case fyne.KeyDown:
			ui.page.scrollBy(keyScrollStep)
		case fyne.KeyHome:
			ui.v.ScrollToTop()
		case fyne.KeyEnd:
			ui.v.ScrollToBottom()
		}
	})
}

func (ui *window) chooseFolder() {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			ui.log.WithError(err).Error("folder dialog")
			dialog.ShowError(err, ui.win)
			return
		}
		if uri == nil {
			return
		}
		ui.v.SelectFolder(uri.Path(), "")
	}, ui.win)
	d.Show()
}

func (ui *window) chooseColor() {
	picker := dialog.NewColorPicker("Choose Color", "Annotation color", func(c color.Color) {
		ui.v.SetColor(annots.ColorFromRGBA(c))
	}, ui.win)
	picker.Advanced = true
	picker.SetColor(ui.v.Color().RGBA(255))
	picker.Show()
}

func (ui *window) exportPage() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.win)
			return
		}
		if w == nil {
			return
		}

		path := w.URI().Path()
		w.Close()

		if err := ui.v.ExportPage(path); err != nil {
			ui.log.WithError(err).Error("could not export page")
			dialog.ShowError(err, ui.win)
		}
	}, ui.win)
	d.SetFileName(fmt.Sprintf("page-%d.png", ui.v.Page()+1))
	d.Show()
}

func (ui *window) SetTitle(title string) {
	ui.win.SetTitle(title)
}

func (ui *window) SetFiles(labels []string, selected int) {
	ui.labels = labels

	ui.syncing = true
	defer func() { ui.syncing = false }()

	ui.files.Refresh()
	if selected < 0 {
		ui.files.UnselectAll()
		return
	}

	ui.files.Select(selected)
	ui.files.ScrollTo(selected)
}

func (ui *window) ShowPage(img image.Image) {
	ui.page.content.setImage(img)
	ui.page.scroll.Refresh()
}

func (ui *window) ClearPage() {
	ui.page.content.setImage(nil)
	ui.page.content.setSelection(r2.EmptyRect(), false)
	ui.page.scroll.Refresh()
	ui.pageInfo.SetText("")
}

func (ui *window) SetSelection(r r2.Rect, visible bool) {
	ui.page.content.setSelection(r, visible)
}

func (ui *window) SetState(s viewer.State) {
	setEnabled(ui.save, s.CanSave)
	setEnabled(ui.undo, s.CanUndo)
	setEnabled(ui.redo, s.CanRedo)
	setEnabled(ui.prev, s.CanPrev)
	setEnabled(ui.next, s.CanNext)
	setEnabled(ui.export, s.CanSave)

	for mode, btn := range ui.modes {
		if mode == s.Mode {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}

	ui.swatch.FillColor = s.Color.RGBA(255)
	ui.swatch.Refresh()
	ui.color.SetText(s.Color.Category())

	if s.NumPages > 0 {
		ui.pageInfo.SetText(fmt.Sprintf("Page %d / %d", s.Page+1, s.NumPages))
	} else {
		ui.pageInfo.SetText("")
	}
}

func (ui *window) CanvasWidth() float64 {
	return ui.page.width()
}

func (ui *window) ScrollFraction() float64 {
	return ui.page.scrollFraction()
}

func (ui *window) ScrollTo(fraction float64) {
	ui.page.scrollTo(fraction)
}

func setEnabled(w fyne.Disableable, enabled bool) {
	if enabled {
		w.Enable()
	} else {
		w.Disable()
	}
}

// fileItem is a file list row that offers renaming on right click.
type fileItem struct {
	widget.Label

	onRename func()
}

func newFileItem() *fileItem {
	item := &fileItem{}
	item.Truncation = fyne.TextTruncateEllipsis
	item.ExtendBaseWidget(item)
	return item
}

func (f *fileItem) TappedSecondary(*fyne.PointEvent) {
	if f.onRename != nil {
		f.onRename()
	}
}
