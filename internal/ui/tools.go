package ui

import (
	"fmt"
	"image/color"

	"LocalPaint/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
)

// colorSwatch is a tappable square of one palette color.
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

var palette = []color.Color{
	color.Black,
	color.NRGBA{R: 255, A: 255},
	color.NRGBA{G: 255, A: 255},
	color.NRGBA{B: 255, A: 255},
	color.NRGBA{R: 255, G: 255, A: 255},
}

// Toolbar is the control strip above the board. Sync copies the
// controller's tool state back into the widgets.
type Toolbar struct {
	controller *Controller
	window     fyne.Window
	imageName  string

	tools       *widget.Toolbar
	slider      *widget.Slider
	sizeLabel   *widget.Label
	status      *widget.Label
	brushColor  *widget.Button
	bucketColor *widget.Button
	brushHex    *widget.Entry
	bucketHex   *widget.Entry
	reset       *widget.Button
	save        *widget.Button
	load        *widget.Button
	clearStore  *widget.Button
	download    *widget.Button
	exportPDF   *widget.Button
	copyURI     *widget.Button

	syncing bool
}

func NewToolbar(c *Controller, w fyne.Window, imageName string) *Toolbar {
	t := &Toolbar{controller: c, window: w, imageName: imageName}

	t.tools = widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), c.SelectBrush),
		widget.NewToolbarAction(theme.ContentClearIcon(), c.SelectEraser),
	)

	t.brushColor = widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), t.pickBrushColor)
	t.bucketColor = widget.NewButtonWithIcon("Bucket", theme.ColorChromaticIcon(), t.pickBackground)
	t.brushHex = newHexEntry(state.DefaultBrushColor, t.setBrushColor)
	t.bucketHex = newHexEntry(state.DefaultBackgroundColor, t.setBackground)

	t.slider = widget.NewSlider(state.MinBrushSize, state.MaxBrushSize)
	t.slider.Step = 1
	t.slider.OnChanged = func(v float64) {
		if t.syncing {
			return
		}
		c.SetBrushSize(v)
	}
	t.sizeLabel = widget.NewLabel("")

	t.reset = widget.NewButtonWithIcon("Clear", theme.ViewRefreshIcon(), c.Reset)
	t.save = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() {
		if err := c.Save(); err != nil {
			dialog.ShowError(err, w)
		}
	})
	t.load = widget.NewButtonWithIcon("Load", theme.FolderOpenIcon(), func() {
		if err := c.Load(); err != nil {
			logrus.WithError(err).Warn("ui: load failed")
		}
	})
	t.clearStore = widget.NewButtonWithIcon("Clear Storage", theme.DeleteIcon(), c.ClearStorage)
	t.download = widget.NewButtonWithIcon("Download", theme.DownloadIcon(), func() {
		showJPEGExport(c, w, t.imageName)
	})
	t.exportPDF = widget.NewButtonWithIcon("PDF", theme.DocumentPrintIcon(), func() {
		showPDFExport(c, w)
	})
	t.copyURI = widget.NewButtonWithIcon("", theme.ContentCopyIcon(), t.copyDataURI)

	t.status = widget.NewLabel("")
	t.status.TextStyle = fyne.TextStyle{Bold: true}

	t.Sync()
	return t
}

// Container lays the toolbar out in one row.
func (t *Toolbar) Container() fyne.CanvasObject {
	sizeBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), t.slider)
	return container.NewHBox(
		t.tools,
		t.status,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		container.NewHBox(t.brushColorSwatches()...),
		t.brushColor,
		hexBox(t.brushHex),
		t.bucketColor,
		hexBox(t.bucketHex),
		widget.NewSeparator(),
		sizeBox,
		t.sizeLabel,
		layout.NewSpacer(),
		t.reset,
		t.save,
		t.load,
		t.clearStore,
		t.download,
		t.exportPDF,
		t.copyURI,
	)
}

func (t *Toolbar) brushColorSwatches() []fyne.CanvasObject {
	onTapped := func(col color.Color) {
		t.setBrushColor(state.HexColor(col))
	}
	objs := make([]fyne.CanvasObject, 0, len(palette))
	for _, col := range palette {
		objs = append(objs, newColorSwatch(col, onTapped))
	}
	return objs
}

// Sync refreshes the readouts from the controller.
func (t *Toolbar) Sync() {
	tools := t.controller.Tools()
	t.status.SetText(t.controller.Label())
	t.sizeLabel.SetText(fmt.Sprintf("Size: %.0f", tools.Size()))

	if t.slider.Value != tools.Size() {
		t.syncing = true
		t.slider.SetValue(tools.Size())
		t.syncing = false
	}
}

// newHexEntry takes "#rgb", "#rrggbb" or a color name and applies it on submit.
func newHexEntry(placeholder string, apply func(string)) *widget.Entry {
	e := widget.NewEntry()
	e.SetPlaceHolder(placeholder)
	e.OnSubmitted = apply
	return e
}

func hexBox(e *widget.Entry) fyne.CanvasObject {
	return container.New(layout.NewGridWrapLayout(fyne.NewSize(90, 35)), e)
}

func (t *Toolbar) setBrushColor(hex string) {
	if err := t.controller.SetBrushColor(hex); err != nil {
		dialog.ShowError(err, t.window)
	}
}

func (t *Toolbar) setBackground(hex string) {
	if err := t.controller.SetBackground(hex); err != nil {
		dialog.ShowError(err, t.window)
	}
}

func (t *Toolbar) pickBrushColor() {
	picker := dialog.NewColorPicker("Brush color", "", func(c color.Color) {
		t.setBrushColor(state.HexColor(c))
	}, t.window)
	picker.Advanced = true
	picker.Show()
}

func (t *Toolbar) pickBackground() {
	picker := dialog.NewColorPicker("Background color", "", func(c color.Color) {
		t.setBackground(state.HexColor(c))
	}, t.window)
	picker.Advanced = true
	picker.Show()
}

func (t *Toolbar) copyDataURI() {
	uri, err := t.controller.DataURI()
	if err != nil {
		dialog.ShowError(err, t.window)
		return
	}
	t.window.Clipboard().SetContent(uri)
}
