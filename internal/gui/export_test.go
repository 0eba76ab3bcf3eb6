package gui

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"simple-image-editor/internal/core"
	"simple-image-editor/internal/editor"
	"simple-image-editor/internal/io"
)

// loadedEditor returns an editor holding a small image read from disk, and
// the directory to export into.
func loadedEditor(t *testing.T) (*editor.Editor, string) {
	t.Helper()
	test.NewTempApp(t)

	logger, _ := logtest.NewNullLogger()
	loader := io.NewImageLoader(logger)
	session := core.NewSession()
	t.Cleanup(session.Close)

	dir := t.TempDir()
	src := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(40, 80, 120, 0), 3, 5, gocv.MatTypeCV8UC3)
	defer src.Close()
	input := filepath.Join(dir, "input.png")
	require.NoError(t, loader.SaveImage(src, input))

	ed := editor.New(session, loader, logger)
	require.NoError(t, ed.Open(input))
	return ed, dir
}

func TestExportThroughWriterSupportedFormat(t *testing.T) {
	ed, dir := loadedEditor(t)
	path := filepath.Join(dir, "ok.png")

	w, err := storage.Writer(storage.NewFileURI(path))
	require.NoError(t, err)

	written, err := exportThroughWriter(ed, w)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestExportThroughWriterUnsupportedFormatRemovesFile(t *testing.T) {
	ed, dir := loadedEditor(t)
	path := filepath.Join(dir, "out.gif")

	w, err := storage.Writer(storage.NewFileURI(path))
	require.NoError(t, err)

	written, err := exportThroughWriter(ed, w)
	assert.ErrorIs(t, err, core.ErrExport)
	assert.Empty(t, written)

	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExportThroughWriterAddsDefaultExtension(t *testing.T) {
	ed, dir := loadedEditor(t)
	path := filepath.Join(dir, "result")

	w, err := storage.Writer(storage.NewFileURI(path))
	require.NoError(t, err)

	written, err := exportThroughWriter(ed, w)
	require.NoError(t, err)
	assert.Equal(t, path+io.DefaultExtension, written)

	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	info, err := os.Stat(written)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}
