package ui

import (
	"LocalPaint/internal/config"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
)

// NewMainWindow builds the paint window on a, backed by a's preferences.
func NewMainWindow(a fyne.App, cfg *config.Config) (fyne.Window, *Controller) {
	w := a.NewWindow("LocalPaint")
	w.Resize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)))

	controller := NewController(ControllerOptions{
		Store:       a.Preferences(),
		StorageKey:  cfg.StorageKey,
		RevertDelay: cfg.RevertDelay,
		JPEGQuality: cfg.JPEGQuality,
		Dispatch:    fyne.Do,
	})

	board := NewBoardWidget(controller)
	toolbar := NewToolbar(controller, w, cfg.ExportName)
	controller.OnChange = func() {
		board.Refresh()
		toolbar.Sync()
	}

	w.SetContent(container.NewBorder(toolbar.Container(), nil, nil, nil, board))
	w.SetOnClosed(controller.Close)
	return w, controller
}

func RunApp(cfg *config.Config) {
	myApp := app.NewWithID(cfg.AppID)
	myWindow, _ := NewMainWindow(myApp, cfg)
	myWindow.ShowAndRun()
}
