// Editing session: original and processed buffers for one open image
package core

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"gocv.io/x/gocv"

	"simple-image-editor/internal/algorithms"
)

// State is the session lifecycle state.
type State int

const (
	Empty State = iota
	Loaded
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Loaded:
		return "loaded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Levels are the brightness/contrast values last applied from the sliders.
type Levels struct {
	Brightness int
	Contrast   int
}

// ImageMetadata describes the loaded image.
type ImageMetadata struct {
	Width    int
	Height   int
	Channels int
	Format   string
}

// Session owns the original and processed buffers. Every Mat passed in is
// cloned and every Mat handed out is a clone the caller must Close.
type Session struct {
	mu        sync.RWMutex
	original  gocv.Mat
	processed gocv.Mat
	state     State
	levels    Levels
	source    string
	metadata  ImageMetadata
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		original:  gocv.NewMat(),
		processed: gocv.NewMat(),
		state:     Empty,
	}
}

// Load replaces both slots with copies of mat. On failure the session is
// left exactly as it was.
func (s *Session) Load(mat gocv.Mat, source string) error {
	if err := algorithms.ValidateImage(mat); err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.original.Close()
	s.processed.Close()

	s.original = mat.Clone()
	s.processed = mat.Clone()
	s.state = Loaded
	s.levels = Levels{}
	s.source = source
	s.metadata = ImageMetadata{
		Width:    mat.Cols(),
		Height:   mat.Rows(),
		Channels: mat.Channels(),
		Format:   formatFromPath(source),
	}
	return nil
}

// ApplyTransform replaces processed with t(processed). A transform that
// fails, or returns a buffer that is not a valid BGR image, leaves
// processed unchanged.
func (s *Session) ApplyTransform(t algorithms.Transform) error {
	if t == nil {
		return fmt.Errorf("%w: no transform given", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Loaded {
		return ErrNotLoaded
	}

	out, err := t.Apply(s.processed)
	if err == nil {
		err = algorithms.ValidateImage(out)
	}
	if err != nil {
		out.Close()
		return fmt.Errorf("%s: %w", t.Name(), err)
	}

	s.processed.Close()
	s.processed = out
	return nil
}

// ApplyBrightnessContrast recomputes processed from original with the given
// levels, discarding whatever transforms were applied since the last load or
// reset.
func (s *Session) ApplyBrightnessContrast(brightness, contrast int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Loaded {
		return ErrNotLoaded
	}

	out, err := algorithms.AdjustBrightnessContrast(s.original, brightness, contrast)
	if err == nil {
		err = algorithms.ValidateImage(out)
	}
	if err != nil {
		out.Close()
		return err
	}

	s.processed.Close()
	s.processed = out
	s.levels = Levels{
		Brightness: algorithms.ClampLevel(brightness),
		Contrast:   algorithms.ClampLevel(contrast),
	}
	return nil
}

// Reset restores processed to a copy of original and zeroes the levels.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Loaded {
		return ErrNotLoaded
	}

	s.processed.Close()
	s.processed = s.original.Clone()
	s.levels = Levels{}
	return nil
}

// Export returns a copy of the processed buffer for persistence.
func (s *Session) Export() (gocv.Mat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.processed.Empty() {
		return gocv.NewMat(), ErrNothingToExport
	}
	return s.processed.Clone(), nil
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loaded reports whether an image has been loaded.
func (s *Session) Loaded() bool {
	return s.State() == Loaded
}

func (s *Session) Levels() Levels {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.levels
}

// Source returns the path the current image was loaded from.
func (s *Session) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

func (s *Session) Metadata() ImageMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metadata
}

// Original returns a copy of the original buffer, empty before a load.
func (s *Session) Original() gocv.Mat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.original.Empty() {
		return gocv.NewMat()
	}
	return s.original.Clone()
}

// Processed returns a copy of the processed buffer, empty before a load.
func (s *Session) Processed() gocv.Mat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.processed.Empty() {
		return gocv.NewMat()
	}
	return s.processed.Clone()
}

// Close releases both buffers and returns the session to Empty.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.original.Close()
	s.processed.Close()
	s.original = gocv.NewMat()
	s.processed = gocv.NewMat()
	s.state = Empty
	s.levels = Levels{}
	s.source = ""
	s.metadata = ImageMetadata{}
}

func formatFromPath(path string) string {
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return "unknown"
}
