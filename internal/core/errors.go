package core

import (
	"errors"

	"simple-image-editor/internal/algorithms"
)

// Errors surfaced to the user. Each one is terminal for the single command
// that produced it and leaves the session usable.
var (
	ErrInvalidInput    = algorithms.ErrInvalidInput
	ErrLoad            = errors.New("could not load image")
	ErrNotLoaded       = errors.New("no image loaded")
	ErrNothingToExport = errors.New("no processed image to export")
	ErrExport          = errors.New("failed to save the image")
)
