// Menu handler for application actions
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// MenuHandler mirrors the toolbar actions in the main menu.
type MenuHandler struct {
	window  fyne.Window
	toolbar *Toolbar
}

func NewMenuHandler(window fyne.Window, toolbar *Toolbar) *MenuHandler {
	return &MenuHandler{
		window:  window,
		toolbar: toolbar,
	}
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Load Image...", mh.toolbar.OpenImage),
		fyne.NewMenuItem("Export Result...", mh.toolbar.SaveImage),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Reset to Original", func() {
			if mh.toolbar.onReset != nil {
				mh.toolbar.onReset()
			}
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)

	return fyne.NewMainMenu(fileMenu, editMenu, helpMenu)
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel(windowTitle),
		widget.NewSeparator(),
		widget.NewLabel("Grayscale, blur, edge detection, brightness/contrast,"),
		widget.NewLabel("rotation and mirroring for PNG, JPEG, BMP and WEBP images."),
		widget.NewSeparator(),
		widget.NewLabel("Built with Go, Fyne and OpenCV"),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Show()
}
