// Top toolbar: load, export and reset
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"simple-image-editor/internal/io"
)

type Toolbar struct {
	window fyne.Window
	logger logrus.FieldLogger

	container *fyne.Container

	openBtn  *widget.Button
	saveBtn  *widget.Button
	resetBtn *widget.Button

	onOpen    func(string)
	onExport  func(fyne.URIWriteCloser)
	onReset   func()
	canExport func() bool
}

func NewToolbar(window fyne.Window, logger logrus.FieldLogger) *Toolbar {
	tb := &Toolbar{
		window: window,
		logger: logger,
	}

	tb.initializeUI()
	return tb
}

func (tb *Toolbar) initializeUI() {
	tb.openBtn = widget.NewButtonWithIcon("Load Image", theme.FolderOpenIcon(), tb.OpenImage)
	tb.openBtn.Importance = widget.HighImportance

	tb.saveBtn = widget.NewButtonWithIcon("Export Result", theme.DocumentSaveIcon(), tb.SaveImage)

	tb.resetBtn = widget.NewButtonWithIcon("Reset", theme.ViewRefreshIcon(), func() {
		if tb.onReset != nil {
			tb.onReset()
		}
	})

	tb.container = container.NewHBox(tb.openBtn, tb.saveBtn, tb.resetBtn)
}

// OpenImage shows the open dialog. A cancelled dialog does nothing.
func (tb *Toolbar) OpenImage() {
	tb.logger.Debug("Opening file dialog for image selection")

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			tb.logger.WithError(err).Error("File dialog error")
			dialog.ShowError(err, tb.window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if tb.onOpen != nil {
			tb.onOpen(path)
		}
	}, tb.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(io.SupportedExtensions()))
	fileDialog.Show()
}

// SaveImage shows the save dialog once there is something to export.
func (tb *Toolbar) SaveImage() {
	if tb.canExport != nil && !tb.canExport() {
		dialog.ShowInformation("Nothing to save", "No processed image to export.", tb.window)
		return
	}

	tb.logger.Debug("Opening file dialog for image saving")

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			tb.logger.WithError(err).Error("File dialog error")
			dialog.ShowError(err, tb.window)
			return
		}
		if writer == nil {
			return
		}
		if tb.onExport == nil {
			writer.Close()
			return
		}
		tb.onExport(writer)
	}, tb.window)

	fileDialog.SetFileName("result" + io.DefaultExtension)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(io.SupportedExtensions()))
	fileDialog.Show()
}

func (tb *Toolbar) GetContainer() *fyne.Container {
	return tb.container
}

func (tb *Toolbar) SetCallbacks(onOpen func(string), onExport func(fyne.URIWriteCloser), onReset func(), canExport func() bool) {
	tb.onOpen = onOpen
	tb.onExport = onExport
	tb.onReset = onReset
	tb.canExport = canExport
}
