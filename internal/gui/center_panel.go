// Before/after image display area
package gui

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"simple-image-editor/internal/editor"
)

type CenterPanel struct {
	container *fyne.Container

	beforeImage *canvas.Image
	afterImage  *canvas.Image
	beforeCard  *widget.Card
	afterCard   *widget.Card
}

func NewCenterPanel(maxWidth, maxHeight float32) *CenterPanel {
	panel := &CenterPanel{}
	panel.initializeUI(fyne.NewSize(maxWidth, maxHeight))
	return panel
}

func (cp *CenterPanel) initializeUI(size fyne.Size) {
	placeholder := createPlaceholderImage()

	cp.beforeImage = canvas.NewImageFromImage(placeholder)
	cp.beforeImage.FillMode = canvas.ImageFillContain
	cp.beforeImage.SetMinSize(size)

	cp.afterImage = canvas.NewImageFromImage(placeholder)
	cp.afterImage.FillMode = canvas.ImageFillContain
	cp.afterImage.SetMinSize(size)

	cp.beforeCard = widget.NewCard("Before", "Load an image to start.", cp.beforeImage)
	cp.afterCard = widget.NewCard("After", "Apply transformations to see result.", cp.afterImage)

	cp.container = container.NewGridWithColumns(2, cp.beforeCard, cp.afterCard)
}

// Update shows the previews carried by v. Missing previews keep the
// previous image.
func (cp *CenterPanel) Update(v editor.View) {
	if v.Before != nil {
		cp.beforeImage.Image = v.Before
		cp.beforeImage.Refresh()
		cp.beforeCard.SetSubTitle(sizeLabel(v.OriginalSize))
	}
	if v.After != nil {
		cp.afterImage.Image = v.After
		cp.afterImage.Refresh()
		cp.afterCard.SetSubTitle(sizeLabel(v.ProcessedSize))
	}
}

func (cp *CenterPanel) GetContainer() *fyne.Container {
	return cp.container
}

func sizeLabel(p image.Point) string {
	return fmt.Sprintf("%d × %d", p.X, p.Y)
}

func createPlaceholderImage() image.Image {
	placeholder := image.NewRGBA(image.Rect(0, 0, 400, 300))
	draw.Draw(placeholder, placeholder.Bounds(), image.NewUniform(color.RGBA{245, 245, 245, 255}), image.Point{}, draw.Src)
	return placeholder
}
