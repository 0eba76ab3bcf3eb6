// Package preview renders session buffers for display at bounded size.
// Previews are derived copies and never feed back into the session.
package preview

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"gocv.io/x/gocv"
)

const (
	DefaultMaxWidth  = 520
	DefaultMaxHeight = 520
)

// Scale returns the factor that fits w x h inside maxW x maxH, capped at 1
// so previews are never upscaled.
func Scale(w, h, maxW, maxH int) float64 {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return 1
	}
	return min(float64(maxW)/float64(w), float64(maxH)/float64(h), 1.0)
}

// FitSize returns the preview dimensions for a w x h buffer, never smaller
// than 1x1.
func FitSize(w, h, maxW, maxH int) (int, int) {
	s := Scale(w, h, maxW, maxH)
	return max(int(float64(w)*s), 1), max(int(float64(h)*s), 1)
}

// Render converts mat to an image no larger than maxW x maxH, preserving
// its aspect ratio.
func Render(mat gocv.Mat, maxW, maxH int) (image.Image, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("cannot render empty image")
	}

	src, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert to image: %w", err)
	}

	w, h := mat.Cols(), mat.Rows()
	if Scale(w, h, maxW, maxH) >= 1 {
		return src, nil
	}

	dw, dh := FitSize(w, h, maxW, maxH)
	dest := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dest, dest.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dest, nil
}
