// Package editor maps each user action to one session call followed by one
// preview refresh.
package editor

import (
	"errors"
	"fmt"
	"image"
	stdio "io"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"simple-image-editor/internal/algorithms"
	"simple-image-editor/internal/core"
	"simple-image-editor/internal/io"
	"simple-image-editor/internal/metrics"
	"simple-image-editor/internal/preview"
)

// Loader reads and writes image files.
type Loader interface {
	LoadImage(path string) (gocv.Mat, error)
	SaveImage(mat gocv.Mat, path string) error
	WriteImage(mat gocv.Mat, w stdio.Writer, name string) error
}

// View is what the GUI needs to redraw after a command.
type View struct {
	Before        image.Image
	After         image.Image
	OriginalSize  image.Point
	ProcessedSize image.Point
	Levels        core.Levels
	Metrics       map[string]float64
	Status        string
}

// Editor runs commands against a session.
type Editor struct {
	session   *core.Session
	loader    Loader
	evaluator *metrics.Evaluator
	logger    logrus.FieldLogger

	maxWidth  int
	maxHeight int

	// The original never changes between loads, so its preview is rendered
	// once per Open and on bounds changes.
	before       image.Image
	originalSize image.Point

	onRefresh func(View)
}

func New(session *core.Session, loader Loader, logger logrus.FieldLogger) *Editor {
	return &Editor{
		session:   session,
		loader:    loader,
		evaluator: metrics.NewEvaluator(),
		logger:    logger,
		maxWidth:  preview.DefaultMaxWidth,
		maxHeight: preview.DefaultMaxHeight,
	}
}

// SetPreviewBounds sets the maximum preview size.
func (e *Editor) SetPreviewBounds(maxWidth, maxHeight int) {
	e.maxWidth = maxWidth
	e.maxHeight = maxHeight
	e.before = nil
}

// SetRefreshCallback registers fn to receive a View after every successful
// command.
func (e *Editor) SetRefreshCallback(fn func(View)) {
	e.onRefresh = fn
}

func (e *Editor) Loaded() bool {
	return e.session.Loaded()
}

// Open loads path into the session. An empty path is a cancelled selection
// and does nothing.
func (e *Editor) Open(path string) error {
	if path == "" {
		return nil
	}

	mat, err := e.loader.LoadImage(path)
	if err != nil {
		if !errors.Is(err, core.ErrLoad) {
			err = fmt.Errorf("%w: %w", core.ErrLoad, err)
		}
		return err
	}
	defer mat.Close()

	if err := e.session.Load(mat, path); err != nil {
		return err
	}
	e.cacheOriginal(mat)

	e.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
	}).Info("Image opened")
	e.refresh("Loaded: " + path)
	return nil
}

// Export writes the processed image to path, adding the default extension
// when path has none. It returns the path written; an empty path is a
// cancelled selection and does nothing.
func (e *Editor) Export(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	mat, err := e.session.Export()
	if err != nil {
		return "", err
	}
	defer mat.Close()

	path = io.EnsureExtension(path)
	if err := e.loader.SaveImage(mat, path); err != nil {
		if !errors.Is(err, core.ErrExport) {
			err = fmt.Errorf("%w: %w", core.ErrExport, err)
		}
		return "", err
	}

	e.logger.WithField("filepath", path).Info("Image exported")
	e.refresh("Exported: " + path)
	return path, nil
}

// ExportTo encodes the processed image in the format named by the extension
// of name and writes it to w. Nothing is written when encoding fails.
func (e *Editor) ExportTo(w stdio.Writer, name string) error {
	mat, err := e.session.Export()
	if err != nil {
		return err
	}
	defer mat.Close()

	if err := e.loader.WriteImage(mat, w, name); err != nil {
		if !errors.Is(err, core.ErrExport) {
			err = fmt.Errorf("%w: %w", core.ErrExport, err)
		}
		return err
	}

	e.logger.WithField("filepath", name).Info("Image exported")
	e.refresh("Exported: " + name)
	return nil
}

func (e *Editor) Reset() error {
	if err := e.session.Reset(); err != nil {
		return err
	}

	e.logger.Info("Reset to original")
	e.refresh("Reset to original.")
	return nil
}

// Apply runs t on top of the current processed image.
func (e *Editor) Apply(t algorithms.Transform) error {
	if err := e.session.ApplyTransform(t); err != nil {
		return err
	}

	e.logger.WithField("transform", t.Name()).Info("Transform applied")
	e.refresh("Applied: " + t.Name())
	return nil
}

// SetBrightnessContrast recomputes the processed image from the original.
func (e *Editor) SetBrightnessContrast(brightness, contrast int) error {
	if err := e.session.ApplyBrightnessContrast(brightness, contrast); err != nil {
		return err
	}

	lv := e.session.Levels()
	e.logger.WithFields(logrus.Fields{
		"brightness": lv.Brightness,
		"contrast":   lv.Contrast,
	}).Debug("Levels applied")
	e.refresh(fmt.Sprintf("Applied: Brightness=%d, Contrast=%d", lv.Brightness, lv.Contrast))
	return nil
}

func (e *Editor) refresh(status string) {
	if e.onRefresh == nil {
		return
	}
	e.onRefresh(e.view(status))
}

func (e *Editor) cacheOriginal(original gocv.Mat) {
	e.originalSize = image.Pt(original.Cols(), original.Rows())

	var err error
	if e.before, err = preview.Render(original, e.maxWidth, e.maxHeight); err != nil {
		e.logger.WithError(err).Warn("Could not render original preview")
	}
}

func (e *Editor) view(status string) View {
	original := e.session.Original()
	defer original.Close()
	processed := e.session.Processed()
	defer processed.Close()

	if e.before == nil {
		e.cacheOriginal(original)
	}

	v := View{
		Before:        e.before,
		OriginalSize:  e.originalSize,
		ProcessedSize: image.Pt(processed.Cols(), processed.Rows()),
		Levels:        e.session.Levels(),
		Status:        status,
	}

	var err error
	if v.After, err = preview.Render(processed, e.maxWidth, e.maxHeight); err != nil {
		e.logger.WithError(err).Warn("Could not render processed preview")
	}
	if !original.Empty() && !processed.Empty() {
		v.Metrics = e.evaluator.CalculateAll(original, processed)
	}

	return v
}
