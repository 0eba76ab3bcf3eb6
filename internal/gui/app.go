// Main editor window
package gui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"simple-image-editor/internal/algorithms"
	"simple-image-editor/internal/config"
	"simple-image-editor/internal/core"
	"simple-image-editor/internal/editor"
)

const windowTitle = "Simple Image Editor"

// Application represents the main editor window
type Application struct {
	app    fyne.App
	window fyne.Window
	logger logrus.FieldLogger

	editor  *editor.Editor
	session *core.Session

	toolbar     *Toolbar
	transforms  *TransformPanel
	levels      *LevelsPanel
	centerPanel *CenterPanel
	menuHandler *MenuHandler

	statusLabel  *widget.Label
	metricsLabel *widget.Label
}

func NewApplication(app fyne.App, ed *editor.Editor, session *core.Session, cfg *config.Config, logger logrus.FieldLogger) *Application {
	window := app.NewWindow(windowTitle)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()

	a := &Application{
		app:     app,
		window:  window,
		logger:  logger,
		editor:  ed,
		session: session,
	}

	a.initializeGUI(cfg)
	a.setupLayout()
	a.setupCallbacks()

	return a
}

func (a *Application) initializeGUI(cfg *config.Config) {
	a.toolbar = NewToolbar(a.window, a.logger)
	a.transforms = NewTransformPanel(algorithms.Catalog(cfg.Params()))
	a.levels = NewLevelsPanel()
	a.centerPanel = NewCenterPanel(float32(cfg.Preview.MaxWidth), float32(cfg.Preview.MaxHeight))
	a.menuHandler = NewMenuHandler(a.window, a.toolbar)

	a.statusLabel = widget.NewLabel("Ready.")
	a.metricsLabel = widget.NewLabel("")
}

func (a *Application) setupLayout() {
	top := container.NewVBox(
		a.toolbar.GetContainer(),
		widget.NewCard("Transformations", "", a.transforms.GetContainer()),
		widget.NewCard("Brightness / Contrast", "", a.levels.GetContainer()),
	)

	status := container.NewBorder(nil, nil, nil, a.metricsLabel, a.statusLabel)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(container.NewBorder(top, status, nil, nil, a.centerPanel.GetContainer()))
}

func (a *Application) setupCallbacks() {
	a.editor.SetRefreshCallback(a.refresh)

	a.toolbar.SetCallbacks(
		// onOpen
		func(path string) {
			if err := a.editor.Open(path); err != nil {
				a.showError("Failed to Load Image", err)
			}
		},
		// onExport
		func(writer fyne.URIWriteCloser) {
			written, err := exportThroughWriter(a.editor, writer)
			if err != nil {
				a.showError("Failed to Save Image", err)
				return
			}
			if written != "" {
				a.logger.WithField("filepath", written).Debug("Export confirmed")
			}
		},
		// onReset
		func() {
			if err := a.editor.Reset(); err != nil {
				a.showError("Reset", err)
			}
		},
		// canExport
		a.editor.Loaded,
	)

	a.transforms.SetCallback(func(entry algorithms.Entry) {
		if err := a.editor.Apply(entry.Transform); err != nil {
			a.showError(entry.Label, err)
		}
	})

	a.levels.SetCallback(func(brightness, contrast int) {
		if err := a.editor.SetBrightnessContrast(brightness, contrast); err != nil {
			a.showError("Brightness / Contrast", err)
		}
	})
}

// refresh receives the editor's view after every successful command.
func (a *Application) refresh(v editor.View) {
	a.centerPanel.Update(v)
	a.levels.SetLevels(v.Levels)
	a.statusLabel.SetText(v.Status)
	a.metricsLabel.SetText(formatMetrics(v.Metrics))
}

// OpenPath loads path as if it had been picked in the file dialog.
func (a *Application) OpenPath(path string) {
	if err := a.editor.Open(path); err != nil {
		a.showError("Failed to Load Image", err)
	}
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})

	a.window.ShowAndRun()
}

func (a *Application) cleanup() {
	a.logger.Info("Cleaning up application resources")
	a.session.Close()
}

func (a *Application) showError(title string, err error) {
	notice := userNotice(err)
	if notice.Info {
		a.logger.WithError(err).Debug(title)
		dialog.ShowInformation(notice.Title, notice.Message, a.window)
		return
	}

	a.logger.WithError(err).Error(title)
	dialog.ShowError(err, a.window)
	a.statusLabel.SetText(fmt.Sprintf("Error: %s", err.Error()))
}

// notice is how an error is presented to the user.
type notice struct {
	Title   string
	Message string
	Info    bool
}

func userNotice(err error) notice {
	switch {
	case errors.Is(err, core.ErrNotLoaded):
		return notice{Title: "No image", Message: "Please load an image first.", Info: true}
	case errors.Is(err, core.ErrNothingToExport):
		return notice{Title: "Nothing to save", Message: "No processed image to export.", Info: true}
	case errors.Is(err, core.ErrLoad):
		return notice{Title: "Error", Message: "Could not read the selected file."}
	case errors.Is(err, core.ErrExport):
		return notice{Title: "Error", Message: "Failed to save the image."}
	default:
		return notice{Title: "Error", Message: err.Error()}
	}
}

func formatMetrics(m map[string]float64) string {
	if len(m) == 0 {
		return ""
	}

	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%.2f", strings.ToUpper(name), m[name]))
	}
	return strings.Join(parts, "  ")
}
