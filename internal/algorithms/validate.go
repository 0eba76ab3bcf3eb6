package algorithms

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// ErrInvalidInput is returned when a buffer cannot enter a transform.
var ErrInvalidInput = errors.New("invalid input image")

// Channels is the channel count every buffer in the pipeline carries (BGR).
const Channels = 3

// ValidateImage checks that mat is a non-empty 8-bit BGR buffer.
func ValidateImage(mat gocv.Mat) error {
	if mat.Empty() {
		return fmt.Errorf("%w: image is empty", ErrInvalidInput)
	}

	if mat.Cols() <= 0 || mat.Rows() <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrInvalidInput, mat.Cols(), mat.Rows())
	}

	if mat.Type() != gocv.MatTypeCV8UC3 {
		return fmt.Errorf("%w: expected 8-bit %d-channel image, got %d channels", ErrInvalidInput, Channels, mat.Channels())
	}

	return nil
}
