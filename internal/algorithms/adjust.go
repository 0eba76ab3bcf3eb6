package algorithms

import (
	"fmt"

	"gocv.io/x/gocv"
)

const (
	// MinLevel and MaxLevel bound both brightness and contrast.
	MinLevel = -100
	MaxLevel = 100
)

// ClampLevel limits v to [MinLevel, MaxLevel].
func ClampLevel(v int) int {
	if v < MinLevel {
		return MinLevel
	}
	if v > MaxLevel {
		return MaxLevel
	}
	return v
}

// ContrastFactor maps a contrast level to a gain: [1, 3] for positive
// levels, [0, 1) for negative ones.
func ContrastFactor(contrast int) float64 {
	c := float64(ClampLevel(contrast))
	if c >= 0 {
		return 1 + (c/100.0)*2.0
	}
	return 1 + c/100.0
}

// BrightnessOffset maps a brightness level to an additive offset of
// roughly [-255, 255].
func BrightnessOffset(brightness int) float64 {
	return float64(ClampLevel(brightness)) * 2.55
}

// AdjustBrightnessContrast computes saturate(factor*pixel + offset) per
// channel. Levels outside [-100, 100] are clamped.
func AdjustBrightnessContrast(input gocv.Mat, brightness, contrast int) (gocv.Mat, error) {
	if err := ValidateImage(input); err != nil {
		return gocv.NewMat(), err
	}

	alpha := ContrastFactor(contrast)
	beta := BrightnessOffset(brightness)

	output := gocv.NewMat()
	if err := input.ConvertToWithParams(&output, gocv.MatTypeCV8UC3, float32(alpha), float32(beta)); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("brightness/contrast: %w", err)
	}
	return output, nil
}

// BrightnessContrast is the transform form of AdjustBrightnessContrast.
type BrightnessContrast struct {
	Brightness int
	Contrast   int
}

func NewBrightnessContrast(brightness, contrast int) *BrightnessContrast {
	return &BrightnessContrast{
		Brightness: ClampLevel(brightness),
		Contrast:   ClampLevel(contrast),
	}
}

func (bc *BrightnessContrast) Name() string {
	return fmt.Sprintf("Brightness=%d, Contrast=%d", bc.Brightness, bc.Contrast)
}

func (bc *BrightnessContrast) Apply(input gocv.Mat) (gocv.Mat, error) {
	return AdjustBrightnessContrast(input, bc.Brightness, bc.Contrast)
}
