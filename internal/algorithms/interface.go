// Named transforms bound to the editor's buttons
package algorithms

import (
	"gocv.io/x/gocv"
)

// Transform maps a BGR buffer to a new BGR buffer. Implementations never
// modify input; the caller owns and closes the returned Mat.
type Transform interface {
	Name() string
	Apply(input gocv.Mat) (gocv.Mat, error)
}

// Params carries the tunable defaults of the button-bound transforms.
type Params struct {
	BlurKernelSize int
	EdgeLow        float64
	EdgeHigh       float64
}

// DefaultParams returns the values the editor buttons use out of the box.
func DefaultParams() Params {
	return Params{
		BlurKernelSize: DefaultKernelSize,
		EdgeLow:        60,
		EdgeHigh:       160,
	}
}

// Entry is a catalog item: a button label and the transform it runs.
type Entry struct {
	ID        string
	Label     string
	Transform Transform
}

// Catalog returns the button-bound transforms in display order.
// Brightness/contrast is slider driven and not part of it.
func Catalog(p Params) []Entry {
	return []Entry{
		{ID: "grayscale", Label: "Grayscale", Transform: GrayscaleFilter{}},
		{ID: "blur", Label: "Blur", Transform: NewGaussianFilter(p.BlurKernelSize)},
		{ID: "edges", Label: "Edge (Canny)", Transform: NewEdgeDetector(p.EdgeLow, p.EdgeHigh)},
		{ID: "rotate90", Label: "Rotate 90°", Transform: Rotation{}},
		{ID: "flip_horizontal", Label: "Flip Horizontal", Transform: HorizontalFlip{}},
	}
}

// Lookup finds a catalog entry by ID.
func Lookup(entries []Entry, id string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
