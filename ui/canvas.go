package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/golang/geo/r2"
	"github.com/mgmeyers/pdfannotator/render"
)

const keyScrollStep = 40

var selectionStroke = color.NRGBA{R: 0, G: 0, B: 255, A: 255}

// pageContent shows the rendered page and the drag preview and turns mouse
// input into canvas points. Event positions are relative to the page, so
// they already include the scroll offset.
type pageContent struct {
	widget.BaseWidget

	image     *canvas.Image
	selection *canvas.Rectangle
	objects   *fyne.Container

	onPress   func(r2.Point)
	onDrag    func(r2.Point)
	onRelease func(r2.Point)

	pressed bool
	dragged bool
	last    fyne.Position
}

func newPageContent() *pageContent {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillStretch
	img.ScaleMode = canvas.ImageScaleSmooth

	sel := canvas.NewRectangle(color.Transparent)
	sel.StrokeColor = selectionStroke
	sel.StrokeWidth = 1
	sel.Hide()

	pc := &pageContent{
		image:     img,
		selection: sel,
		objects:   container.NewWithoutLayout(img, sel),
	}
	pc.ExtendBaseWidget(pc)

	return pc
}

func (pc *pageContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(pc.objects)
}

func (pc *pageContent) MinSize() fyne.Size {
	return pc.image.MinSize()
}

func (pc *pageContent) setImage(img image.Image) {
	size := fyne.NewSize(0, 0)
	if img != nil {
		b := img.Bounds()
		size = fyne.NewSize(float32(b.Dx()), float32(b.Dy()))
	}

	pc.image.Image = img
	pc.image.SetMinSize(size)
	pc.image.Resize(size)
	pc.image.Move(fyne.NewPos(0, 0))
	pc.objects.Resize(size)
	pc.image.Refresh()
	pc.Refresh()
}

func (pc *pageContent) setSelection(r r2.Rect, visible bool) {
	if !visible || r.IsEmpty() {
		pc.selection.Hide()
		return
	}

	pc.selection.Move(fyne.NewPos(float32(r.X.Lo), float32(r.Y.Lo)))
	pc.selection.Resize(fyne.NewSize(float32(r.X.Length()), float32(r.Y.Length())))
	pc.selection.Show()
	pc.selection.Refresh()
}

func (pc *pageContent) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}

	pc.pressed = true
	pc.dragged = false
	pc.last = ev.Position

	if pc.onPress != nil {
		pc.onPress(toPoint(ev.Position))
	}
}

// MouseUp releases presses that never turned into a drag; DragEnd
// releases the others.
func (pc *pageContent) MouseUp(ev *desktop.MouseEvent) {
	if !pc.pressed || pc.dragged {
		return
	}

	pc.pressed = false

	if pc.onRelease != nil {
		pc.onRelease(toPoint(ev.Position))
	}
}

func (pc *pageContent) Dragged(ev *fyne.DragEvent) {
	if !pc.pressed {
		return
	}

	pc.dragged = true
	pc.last = ev.Position

	if pc.onDrag != nil {
		pc.onDrag(toPoint(ev.Position))
	}
}

func (pc *pageContent) DragEnd() {
	if !pc.pressed {
		return
	}

	pc.pressed = false
	pc.dragged = false

	if pc.onRelease != nil {
		pc.onRelease(toPoint(pc.last))
	}
}

func toPoint(p fyne.Position) r2.Point {
	return r2.Point{X: float64(p.X), Y: float64(p.Y)}
}

// pageView is the scrollable area holding the page. It reports every
// change of its width so fit-width zoom can follow the window.
type pageView struct {
	widget.BaseWidget

	content *pageContent
	scroll  *container.Scroll

	onResize  func()
	lastWidth float32
}

func newPageView() *pageView {
	content := newPageContent()

	pv := &pageView{
		content: content,
		scroll:  container.NewScroll(content),
	}
	pv.scroll.Direction = container.ScrollBoth
	pv.ExtendBaseWidget(pv)

	return pv
}

func (pv *pageView) CreateRenderer() fyne.WidgetRenderer {
	return &pageViewRenderer{view: pv}
}

func (pv *pageView) width() float64 {
	return float64(pv.scroll.Size().Width)
}

func (pv *pageView) scrollFraction() float64 {
	return render.ScrollFraction(float64(pv.scroll.Offset.Y), float64(pv.content.MinSize().Height))
}

func (pv *pageView) scrollTo(fraction float64) {
	y := render.ScrollOffset(fraction, float64(pv.content.MinSize().Height), float64(pv.scroll.Size().Height))
	pv.scroll.Offset = fyne.NewPos(pv.scroll.Offset.X, float32(y))
	pv.scroll.Refresh()
}

func (pv *pageView) scrollBy(dy float32) {
	contentHeight := pv.content.MinSize().Height
	viewport := pv.scroll.Size().Height

	y := pv.scroll.Offset.Y + dy
	if limit := contentHeight - viewport; y > limit {
		y = limit
	}
	if y < 0 {
		y = 0
	}

	pv.scroll.Offset = fyne.NewPos(pv.scroll.Offset.X, y)
	pv.scroll.Refresh()
}

type pageViewRenderer struct {
	view *pageView
}

func (r *pageViewRenderer) Layout(size fyne.Size) {
	r.view.scroll.Resize(size)

	if size.Width != r.view.lastWidth {
		r.view.lastWidth = size.Width
		if r.view.onResize != nil {
			r.view.onResize()
		}
	}
}

func (r *pageViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *pageViewRenderer) Refresh() {
	r.view.scroll.Refresh()
}

func (r *pageViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.scroll}
}

func (r *pageViewRenderer) Destroy() {}
