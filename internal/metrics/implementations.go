// Concrete implementations of quality metrics
package metrics

import (
	"fmt"
	"math"

	"gocv.io/x/gocv"
)

// MSE is the mean squared error of the luma planes.
type MSE struct{}

func NewMSE() *MSE {
	return &MSE{}
}

func (m *MSE) Calculate(original, processed gocv.Mat) (float64, error) {
	if err := checkPair(original, processed); err != nil {
		return 0, err
	}
	return meanSquaredError(original, processed)
}

func (m *MSE) GetName() string { return "MSE" }

func (m *MSE) IsComparative() bool { return true }

// PSNR implements Peak Signal-to-Noise Ratio metric
type PSNR struct{}

func NewPSNR() *PSNR {
	return &PSNR{}
}

// Calculate returns +Inf for identical images.
func (p *PSNR) Calculate(original, processed gocv.Mat) (float64, error) {
	if err := checkPair(original, processed); err != nil {
		return 0, err
	}

	mse, err := meanSquaredError(original, processed)
	if err != nil {
		return 0, err
	}
	return PSNRFromMSE(mse), nil
}

// FromResults reuses an MSE already in results.
func (p *PSNR) FromResults(results map[string]float64) (float64, bool) {
	mse, ok := results["mse"]
	if !ok {
		return 0, false
	}
	return PSNRFromMSE(mse), true
}

func (p *PSNR) GetName() string { return "PSNR" }

func (p *PSNR) IsComparative() bool { return true }

// PSNRFromMSE converts a mean squared error of 8-bit data to decibels.
func PSNRFromMSE(mse float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	maxVal := 255.0
	return 20 * math.Log10(maxVal/math.Sqrt(mse))
}

// MeanIntensity is the average luma of the processed image.
type MeanIntensity struct{}

func NewMeanIntensity() *MeanIntensity {
	return &MeanIntensity{}
}

func (m *MeanIntensity) Calculate(_, processed gocv.Mat) (float64, error) {
	if processed.Empty() {
		return 0, fmt.Errorf("empty image")
	}

	gray, owned, err := ensureGrayscale(processed)
	if err != nil {
		return 0, err
	}
	if owned {
		defer gray.Close()
	}
	return gray.Mean().Val1, nil
}

func (m *MeanIntensity) GetName() string { return "Mean Intensity" }

func (m *MeanIntensity) IsComparative() bool { return false }

func checkPair(original, processed gocv.Mat) error {
	if original.Empty() || processed.Empty() {
		return fmt.Errorf("empty images")
	}
	if original.Rows() != processed.Rows() || original.Cols() != processed.Cols() {
		return fmt.Errorf("image dimensions mismatch: %dx%d vs %dx%d",
			original.Cols(), original.Rows(), processed.Cols(), processed.Rows())
	}
	return nil
}

// meanSquaredError uses a single L2 norm of the luma difference, so the
// per-pixel work stays inside OpenCV.
func meanSquaredError(original, processed gocv.Mat) (float64, error) {
	gray1, owned1, err := ensureGrayscale(original)
	if err != nil {
		return 0, err
	}
	if owned1 {
		defer gray1.Close()
	}
	gray2, owned2, err := ensureGrayscale(processed)
	if err != nil {
		return 0, err
	}
	if owned2 {
		defer gray2.Close()
	}

	norm := gocv.NormWithMats(gray1, gray2, gocv.NormL2)
	return norm * norm / float64(gray1.Rows()*gray1.Cols()), nil
}

// ensureGrayscale returns the luma plane of input and whether the caller owns
// (and must Close) it.
func ensureGrayscale(input gocv.Mat) (gocv.Mat, bool, error) {
	if input.Channels() == 1 {
		return input, false, nil
	}

	gray := gocv.NewMat()
	if err := gocv.CvtColor(input, &gray, gocv.ColorBGRToGray); err != nil {
		gray.Close()
		return gocv.NewMat(), false, fmt.Errorf("luma: %w", err)
	}
	return gray, true, nil
}
