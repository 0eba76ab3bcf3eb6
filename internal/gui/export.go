package gui

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"

	"simple-image-editor/internal/core"
	"simple-image-editor/internal/editor"
	"simple-image-editor/internal/io"
)

// exportThroughWriter saves the processed image into the file the save dialog
// created and returns the path that holds the image. The dialog has already
// created (or truncated) the file, so it is removed again whenever it does
// not end up holding the export.
func exportThroughWriter(ed *editor.Editor, writer fyne.URIWriteCloser) (string, error) {
	uri := writer.URI()
	path := uri.Path()

	switch {
	case filepath.Ext(path) == "":
		// Saved under path + DefaultExtension instead.
		discard(writer)
		return ed.Export(path)
	case !io.IsSupported(path):
		discard(writer)
		return "", fmt.Errorf("%w: unsupported image format %q", core.ErrExport, filepath.Ext(path))
	}

	err := ed.ExportTo(writer, path)
	if cerr := writer.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: %w", core.ErrExport, cerr)
	}
	if err != nil {
		_ = storage.Delete(uri)
		return "", err
	}
	return path, nil
}

func discard(writer fyne.URIWriteCloser) {
	writer.Close()
	_ = storage.Delete(writer.URI())
}
