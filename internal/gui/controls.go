// Transformation buttons and brightness/contrast sliders
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"simple-image-editor/internal/algorithms"
	"simple-image-editor/internal/core"
)

// TransformPanel has one button per catalog entry.
type TransformPanel struct {
	container *fyne.Container
	buttons   map[string]*widget.Button

	onApply func(algorithms.Entry)
}

func NewTransformPanel(entries []algorithms.Entry) *TransformPanel {
	tp := &TransformPanel{buttons: make(map[string]*widget.Button, len(entries))}

	objects := make([]fyne.CanvasObject, 0, len(entries))
	for _, entry := range entries {
		btn := widget.NewButton(entry.Label, func() {
			if tp.onApply != nil {
				tp.onApply(entry)
			}
		})
		tp.buttons[entry.ID] = btn
		objects = append(objects, btn)
	}

	tp.container = container.NewHBox(objects...)
	return tp
}

func (tp *TransformPanel) SetCallback(onApply func(algorithms.Entry)) {
	tp.onApply = onApply
}

func (tp *TransformPanel) GetContainer() *fyne.Container {
	return tp.container
}

// LevelsPanel drives brightness/contrast. Every move reports both values so
// the result is always recomputed from the original image.
type LevelsPanel struct {
	container *fyne.Container

	brightness      *widget.Slider
	contrast        *widget.Slider
	brightnessValue *widget.Label
	contrastValue   *widget.Label

	// set while the sliders are moved programmatically
	syncing bool

	onChanged func(brightness, contrast int)
}

func NewLevelsPanel() *LevelsPanel {
	lp := &LevelsPanel{}

	lp.brightness = newLevelSlider()
	lp.contrast = newLevelSlider()
	lp.brightnessValue = widget.NewLabel("0")
	lp.contrastValue = widget.NewLabel("0")

	lp.brightness.OnChanged = func(float64) { lp.changed() }
	lp.contrast.OnChanged = func(float64) { lp.changed() }

	lp.container = container.NewGridWithColumns(2,
		container.NewBorder(nil, nil, widget.NewLabel("Brightness"), lp.brightnessValue, lp.brightness),
		container.NewBorder(nil, nil, widget.NewLabel("Contrast"), lp.contrastValue, lp.contrast),
	)
	return lp
}

func newLevelSlider() *widget.Slider {
	s := widget.NewSlider(algorithms.MinLevel, algorithms.MaxLevel)
	s.Step = 1
	return s
}

func (lp *LevelsPanel) changed() {
	b, c := lp.Values()
	lp.brightnessValue.SetText(fmt.Sprint(b))
	lp.contrastValue.SetText(fmt.Sprint(c))

	if lp.syncing || lp.onChanged == nil {
		return
	}
	lp.onChanged(b, c)
}

// Values returns the current slider positions.
func (lp *LevelsPanel) Values() (int, int) {
	return int(lp.brightness.Value), int(lp.contrast.Value)
}

// SetLevels moves the sliders without reporting a change.
func (lp *LevelsPanel) SetLevels(l core.Levels) {
	lp.syncing = true
	defer func() { lp.syncing = false }()

	lp.brightness.SetValue(float64(l.Brightness))
	lp.contrast.SetValue(float64(l.Contrast))
	lp.brightnessValue.SetText(fmt.Sprint(l.Brightness))
	lp.contrastValue.SetText(fmt.Sprint(l.Contrast))
}

func (lp *LevelsPanel) SetCallback(onChanged func(brightness, contrast int)) {
	lp.onChanged = onChanged
}

func (lp *LevelsPanel) GetContainer() *fyne.Container {
	return lp.container
}
