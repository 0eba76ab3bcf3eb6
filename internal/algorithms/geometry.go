package algorithms

import (
	"fmt"

	"gocv.io/x/gocv"
)

// flipAroundYAxis is OpenCV's flip code for mirroring columns.
const flipAroundYAxis = 1

// Rotate90 rotates input clockwise; the output has width and height swapped.
func Rotate90(input gocv.Mat) (gocv.Mat, error) {
	if err := ValidateImage(input); err != nil {
		return gocv.NewMat(), err
	}

	output := gocv.NewMat()
	if err := gocv.Rotate(input, &output, gocv.Rotate90Clockwise); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("rotate: %w", err)
	}
	return output, nil
}

// FlipHorizontal mirrors input across its vertical axis.
func FlipHorizontal(input gocv.Mat) (gocv.Mat, error) {
	if err := ValidateImage(input); err != nil {
		return gocv.NewMat(), err
	}

	output := gocv.NewMat()
	if err := gocv.Flip(input, &output, flipAroundYAxis); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("flip: %w", err)
	}
	return output, nil
}

type Rotation struct{}

func (Rotation) Name() string { return "Rotate 90°" }

func (Rotation) Apply(input gocv.Mat) (gocv.Mat, error) {
	return Rotate90(input)
}

type HorizontalFlip struct{}

func (HorizontalFlip) Name() string { return "Flip Horizontal" }

func (HorizontalFlip) Apply(input gocv.Mat) (gocv.Mat, error) {
	return FlipHorizontal(input)
}
