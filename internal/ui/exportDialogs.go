package ui

import (
	"io"

	"LocalPaint/internal/export"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"github.com/sirupsen/logrus"
)

func showJPEGExport(c *Controller, w fyne.Window, name string) {
	if name == "" {
		name = export.DefaultImageName
	}
	showSaveDialog(w, name, c.WriteJPEG)
}

func showPDFExport(c *Controller, w fyne.Window) {
	showSaveDialog(w, export.DefaultPDFName, c.WritePDF)
}

// showSaveDialog asks for a destination and hands the writer to write.
func showSaveDialog(w fyne.Window, name string, write func(io.Writer) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if writer == nil {
			return
		}
		defer func() {
			if err := writer.Close(); err != nil {
				logrus.WithError(err).Warn("ui: closing export file")
			}
		}()

		if err := write(writer); err != nil {
			logrus.WithError(err).WithField("uri", writer.URI().String()).Warn("ui: export failed")
			dialog.ShowError(err, w)
			return
		}
		logrus.WithField("uri", writer.URI().String()).Info("ui: export written")
	}, w)
	d.SetFileName(name)
	d.Show()
}
