package ui

import (
	"image/color"

	"LocalPaint/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// BoardWidget shows the controller's raster and feeds it pointer input.
type BoardWidget struct {
	widget.BaseWidget
	controller *Controller
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

func NewBoardWidget(c *Controller) *BoardWidget {
	b := &BoardWidget{controller: c}
	b.ExtendBaseWidget(b)
	return b
}

func toPoint(pos fyne.Position) state.Point {
	return state.Point{X: float64(pos.X), Y: float64(pos.Y)}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.controller.PointerDown(toPoint(e.Position))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.controller.PointerUp()
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.controller.PointerMove(toPoint(e.Position))
}

func (b *BoardWidget) DragEnd() {
	b.controller.PointerUp()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	r.image = canvas.NewImageFromImage(nil)
	r.image.FillMode = canvas.ImageFillStretch
	r.image.ScaleMode = canvas.ImageScalePixels
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	image      *canvas.Image
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.image}
}

// Layout resizes the drawing surface, which replays the log.
func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.image.Resize(size)
	r.board.controller.Resize(int(size.Width), int(size.Height))
	r.Refresh()
}

func (r *boardWidgetRenderer) Refresh() {
	if bg, err := state.ParseColor(r.board.controller.Tools().Background()); err == nil {
		r.background.FillColor = bg
	}
	r.background.Refresh()
	r.image.Image = r.board.controller.Image()
	r.image.Refresh()
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Destroy() {}
