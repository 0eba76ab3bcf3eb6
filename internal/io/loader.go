// Image loading and saving
package io

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	stdio "io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"gocv.io/x/gocv"

	"simple-image-editor/internal/core"
)

// DefaultExtension is appended to export paths chosen without one.
const DefaultExtension = ".png"

var supportedExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".webp"}

// SupportedExtensions lists the file extensions accepted for load and export.
func SupportedExtensions() []string {
	out := make([]string, len(supportedExtensions))
	copy(out, supportedExtensions)
	return out
}

// IsSupported reports whether path has a supported extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range supportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// EnsureExtension appends DefaultExtension when path has none.
func EnsureExtension(path string) string {
	if filepath.Ext(path) == "" {
		return path + DefaultExtension
	}
	return path
}

// ImageLoader handles image file operations
type ImageLoader struct {
	logger logrus.FieldLogger
}

func NewImageLoader(logger logrus.FieldLogger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// LoadImage reads path as a BGR buffer. OpenCV is tried first; when it
// cannot read the file the Go decoders are used instead.
func (il *ImageLoader) LoadImage(path string) (gocv.Mat, error) {
	il.logger.WithField("filepath", path).Debug("Loading image")

	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		mat.Close()

		var err error
		mat, err = decodeFile(path)
		if err != nil {
			il.logger.WithError(err).WithField("filepath", path).Warn("Image could not be decoded")
			return gocv.NewMat(), fmt.Errorf("%w: could not read %s", core.ErrLoad, filepath.Base(path))
		}
		il.logger.WithField("filepath", path).Debug("Decoded image with Go fallback")
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Image loaded successfully")

	return mat, nil
}

// Encode compresses mat in the format selected by the extension of name.
// Nothing is written anywhere.
func (il *ImageLoader) Encode(mat gocv.Mat, name string) ([]byte, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("%w: cannot save empty image", core.ErrExport)
	}

	if !IsSupported(name) {
		return nil, fmt.Errorf("%w: unsupported image format %q", core.ErrExport, filepath.Ext(name))
	}

	buf, err := gocv.IMEncode(gocv.FileExt(strings.ToLower(filepath.Ext(name))), mat)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %v", core.ErrExport, filepath.Base(name), err)
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return data, nil
}

// WriteImage encodes mat for name and writes it to w. w is untouched when
// encoding fails.
func (il *ImageLoader) WriteImage(mat gocv.Mat, w stdio.Writer, name string) error {
	data, err := il.Encode(mat, name)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: write %s: %v", core.ErrExport, filepath.Base(name), err)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": name,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"bytes":    len(data),
	}).Info("Image saved successfully")

	return nil
}

// SaveImage writes mat to path. The extension selects the encoder, and the
// file is only created once encoding has succeeded.
func (il *ImageLoader) SaveImage(mat gocv.Mat, path string) error {
	il.logger.WithField("filepath", path).Debug("Saving image")

	data, err := il.Encode(mat, path)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", core.ErrExport, err)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"bytes":    len(data),
	}).Info("Image saved successfully")

	return nil
}

func decodeFile(path string) (gocv.Mat, error) {
	f, err := os.Open(path)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("decode: %w", err)
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("convert %s: %w", format, err)
	}
	return mat, nil
}
