// Filter algorithms: luma reduction, smoothing and edge detection
package algorithms

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

const (
	// DefaultKernelSize is the Gaussian kernel used when none is given.
	DefaultKernelSize = 9

	// DefaultEdgeLow and DefaultEdgeHigh are the Canny hysteresis thresholds.
	DefaultEdgeLow  = 50
	DefaultEdgeHigh = 150
)

// Grayscale reduces input to its luma and expands it back to three equal
// channels so downstream code keeps one buffer shape.
func Grayscale(input gocv.Mat) (gocv.Mat, error) {
	if err := ValidateImage(input); err != nil {
		return gocv.NewMat(), err
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if err := gocv.CvtColor(input, &gray, gocv.ColorBGRToGray); err != nil {
		return gocv.NewMat(), fmt.Errorf("grayscale: %w", err)
	}

	return expandGray(gray)
}

// expandGray copies a single-channel buffer into three equal BGR channels.
func expandGray(gray gocv.Mat) (gocv.Mat, error) {
	output := gocv.NewMat()
	if err := gocv.CvtColor(gray, &output, gocv.ColorGrayToBGR); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("expand to BGR: %w", err)
	}
	return output, nil
}

// NormalizeKernelSize coerces k to an odd integer >= 1.
func NormalizeKernelSize(k int) int {
	if k < 1 {
		k = 1
	}
	if k%2 == 0 {
		k++
	}
	return k
}

// GaussianBlur smooths input with a square Gaussian kernel. Sigma is derived
// from the kernel size and borders use OpenCV's default policy.
func GaussianBlur(input gocv.Mat, kernelSize int) (gocv.Mat, error) {
	if err := ValidateImage(input); err != nil {
		return gocv.NewMat(), err
	}

	k := NormalizeKernelSize(kernelSize)

	output := gocv.NewMat()
	if err := gocv.GaussianBlur(input, &output, image.Pt(k, k), 0, 0, gocv.BorderDefault); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("gaussian blur %dx%d: %w", k, k, err)
	}
	return output, nil
}

// DetectEdges runs Canny on the luma of input. The result has edges at 255
// on a 0 background, in all three channels.
func DetectEdges(input gocv.Mat, low, high float64) (gocv.Mat, error) {
	if err := ValidateImage(input); err != nil {
		return gocv.NewMat(), err
	}

	low, high = normalizeThresholds(low, high)

	gray := gocv.NewMat()
	defer gray.Close()
	if err := gocv.CvtColor(input, &gray, gocv.ColorBGRToGray); err != nil {
		return gocv.NewMat(), fmt.Errorf("edges: %w", err)
	}

	edges := gocv.NewMat()
	defer edges.Close()
	if err := gocv.Canny(gray, &edges, float32(low), float32(high)); err != nil {
		return gocv.NewMat(), fmt.Errorf("canny %g/%g: %w", low, high, err)
	}

	return expandGray(edges)
}

func normalizeThresholds(low, high float64) (float64, float64) {
	if low < 0 {
		low = 0
	}
	if high < 0 {
		high = 0
	}
	if low > high {
		low, high = high, low
	}
	return low, high
}

// GrayscaleFilter is the catalog form of Grayscale.
type GrayscaleFilter struct{}

func (GrayscaleFilter) Name() string { return "Grayscale" }

func (GrayscaleFilter) Apply(input gocv.Mat) (gocv.Mat, error) {
	return Grayscale(input)
}

// GaussianFilter is the catalog form of GaussianBlur.
type GaussianFilter struct {
	KernelSize int
}

// NewGaussianFilter creates a blur with the kernel coerced up front.
func NewGaussianFilter(kernelSize int) *GaussianFilter {
	return &GaussianFilter{KernelSize: NormalizeKernelSize(kernelSize)}
}

func (g *GaussianFilter) Name() string {
	return fmt.Sprintf("Gaussian Blur (%dx%d)", g.KernelSize, g.KernelSize)
}

func (g *GaussianFilter) Apply(input gocv.Mat) (gocv.Mat, error) {
	return GaussianBlur(input, g.KernelSize)
}

// EdgeDetector is the catalog form of DetectEdges.
type EdgeDetector struct {
	Low  float64
	High float64
}

func NewEdgeDetector(low, high float64) *EdgeDetector {
	low, high = normalizeThresholds(low, high)
	return &EdgeDetector{Low: low, High: high}
}

func (e *EdgeDetector) Name() string {
	return fmt.Sprintf("Canny Edge Detection (%g/%g)", e.Low, e.High)
}

func (e *EdgeDetector) Apply(input gocv.Mat) (gocv.Mat, error) {
	return DetectEdges(input, e.Low, e.High)
}
