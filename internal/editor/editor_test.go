package editor

import (
	"bytes"
	"errors"
	stdio "io"
	"math"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"simple-image-editor/internal/algorithms"
	"simple-image-editor/internal/core"
)

// memLoader serves images from memory and records saves.
type memLoader struct {
	images  map[string]gocv.Mat
	saved   map[string][]byte
	saveErr error
}

func newMemLoader() *memLoader {
	return &memLoader{images: map[string]gocv.Mat{}, saved: map[string][]byte{}}
}

func (m *memLoader) LoadImage(path string) (gocv.Mat, error) {
	img, ok := m.images[path]
	if !ok {
		return gocv.NewMat(), errors.New("no such file")
	}
	return img.Clone(), nil
}

func (m *memLoader) SaveImage(mat gocv.Mat, path string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved[path] = mat.ToBytes()
	return nil
}

func (m *memLoader) WriteImage(mat gocv.Mat, w stdio.Writer, name string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	_, err := w.Write(mat.ToBytes())
	return err
}

type fixture struct {
	editor  *Editor
	session *core.Session
	loader  *memLoader
	views   []View
	hook    *test.Hook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger, hook := test.NewNullLogger()
	f := &fixture{session: core.NewSession(), loader: newMemLoader(), hook: hook}
	t.Cleanup(f.session.Close)

	f.editor = New(f.session, f.loader, logger)
	f.editor.SetRefreshCallback(func(v View) { f.views = append(f.views, v) })

	gray := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(128, 128, 128, 0), 4, 4, gocv.MatTypeCV8UC3)
	black := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 4, 4, gocv.MatTypeCV8UC3)
	wide := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(10, 20, 30, 0), 2, 6, gocv.MatTypeCV8UC3)
	f.loader.images["gray.png"] = gray
	f.loader.images["black.png"] = black
	f.loader.images["wide.png"] = wide
	t.Cleanup(func() {
		gray.Close()
		black.Close()
		wide.Close()
	})
	return f
}

func (f *fixture) last() View {
	return f.views[len(f.views)-1]
}

func TestCommandsBeforeLoad(t *testing.T) {
	f := newFixture(t)

	assert.False(t, f.editor.Loaded())
	assert.ErrorIs(t, f.editor.Reset(), core.ErrNotLoaded)
	assert.ErrorIs(t, f.editor.Apply(algorithms.GrayscaleFilter{}), core.ErrNotLoaded)
	assert.ErrorIs(t, f.editor.SetBrightnessContrast(1, 1), core.ErrNotLoaded)

	_, err := f.editor.Export("out.png")
	assert.ErrorIs(t, err, core.ErrNothingToExport)
	assert.Empty(t, f.views)
}

func TestEmptySelectionIsNoOp(t *testing.T) {
	f := newFixture(t)

	assert.NoError(t, f.editor.Open(""))
	path, err := f.editor.Export("")
	assert.NoError(t, err)
	assert.Empty(t, path)
	assert.Empty(t, f.views)
	assert.Equal(t, core.Empty, f.session.State())
}

func TestFailedOpenKeepsEmptyState(t *testing.T) {
	f := newFixture(t)

	err := f.editor.Open("missing.png")
	assert.ErrorIs(t, err, core.ErrLoad)
	assert.Equal(t, core.Empty, f.session.State())
	assert.ErrorIs(t, f.editor.Reset(), core.ErrNotLoaded)
	assert.Empty(t, f.views)
}

func TestOpenRefreshesOnce(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.editor.Open("gray.png"))
	require.Len(t, f.views, 1)

	v := f.last()
	assert.Equal(t, "Loaded: gray.png", v.Status)
	assert.Equal(t, 4, v.OriginalSize.X)
	assert.Equal(t, 4, v.ProcessedSize.Y)
	require.NotNil(t, v.Before)
	require.NotNil(t, v.After)
	assert.Equal(t, 4, v.After.Bounds().Dx())
	assert.True(t, math.IsInf(v.Metrics["psnr"], 1))
	assert.Equal(t, "Image opened", f.hook.LastEntry().Message)
}

func TestGrayscaleOnMidGrayIsUnchanged(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.editor.Open("gray.png"))

	require.NoError(t, f.editor.Apply(algorithms.GrayscaleFilter{}))
	assert.Equal(t, "Applied: Grayscale", f.last().Status)
	assert.Equal(t, 0.0, f.last().Metrics["mse"])

	out, err := f.session.Export()
	require.NoError(t, err)
	defer out.Close()
	want := f.loader.images["gray.png"]
	assert.Equal(t, want.ToBytes(), out.ToBytes())
}

func TestFullBrightnessTurnsBlackWhite(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.editor.Open("black.png"))

	require.NoError(t, f.editor.SetBrightnessContrast(100, 0))
	v := f.last()
	assert.Equal(t, "Applied: Brightness=100, Contrast=0", v.Status)
	assert.Equal(t, core.Levels{Brightness: 100}, v.Levels)
	assert.InDelta(t, 255.0, v.Metrics["mean_intensity"], 1e-9)
}

func TestRotationDropsComparativeMetrics(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.editor.Open("wide.png"))

	require.NoError(t, f.editor.Apply(algorithms.Rotation{}))
	v := f.last()
	assert.Equal(t, 6, v.OriginalSize.X)
	assert.Equal(t, 2, v.ProcessedSize.X)
	assert.Equal(t, 6, v.ProcessedSize.Y)
	assert.NotContains(t, v.Metrics, "mse")
	assert.Contains(t, v.Metrics, "mean_intensity")
}

func TestResetAndExport(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.editor.Open("wide.png"))
	require.NoError(t, f.editor.Apply(algorithms.HorizontalFlip{}))
	require.NoError(t, f.editor.Apply(algorithms.Rotation{}))
	require.NoError(t, f.editor.Reset())
	assert.Equal(t, "Reset to original.", f.last().Status)

	path, err := f.editor.Export("result")
	require.NoError(t, err)
	assert.Equal(t, "result.png", path)
	want := f.loader.images["wide.png"]
	assert.Equal(t, want.ToBytes(), f.loader.saved["result.png"])
	assert.Equal(t, "Exported: result.png", f.last().Status)
	assert.Len(t, f.views, 5)
}

func TestExportFailureIsWrapped(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.editor.Open("gray.png"))
	f.loader.saveErr = errors.New("disk full")

	_, err := f.editor.Export("out.jpg")
	assert.ErrorIs(t, err, core.ErrExport)
	assert.Len(t, f.views, 1)
	assert.True(t, f.editor.Loaded())
}

func TestPreviewBounds(t *testing.T) {
	f := newFixture(t)
	f.editor.SetPreviewBounds(3, 3)
	require.NoError(t, f.editor.Open("wide.png"))

	v := f.last()
	assert.Equal(t, 3, v.Before.Bounds().Dx())
	assert.Equal(t, 1, v.Before.Bounds().Dy())
}

func TestExportToWriter(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer
	assert.ErrorIs(t, f.editor.ExportTo(&buf, "out.png"), core.ErrNothingToExport)

	require.NoError(t, f.editor.Open("gray.png"))
	require.NoError(t, f.editor.ExportTo(&buf, "out.png"))
	want := f.loader.images["gray.png"]
	assert.Equal(t, want.ToBytes(), buf.Bytes())
	assert.Equal(t, "Exported: out.png", f.last().Status)

	f.loader.saveErr = errors.New("unsupported")
	buf.Reset()
	assert.ErrorIs(t, f.editor.ExportTo(&buf, "out.gif"), core.ErrExport)
	assert.Zero(t, buf.Len())
	assert.Len(t, f.views, 2)
}

func TestBeforePreviewRenderedOncePerOpen(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.editor.Open("wide.png"))
	before := f.last().Before

	require.NoError(t, f.editor.Apply(algorithms.Rotation{}))
	require.NoError(t, f.editor.SetBrightnessContrast(10, 10))
	for _, v := range f.views {
		assert.Same(t, before, v.Before)
		assert.Equal(t, 6, v.OriginalSize.X)
	}

	require.NoError(t, f.editor.Open("gray.png"))
	assert.NotSame(t, before, f.last().Before)
	assert.Equal(t, 4, f.last().OriginalSize.X)
}

func TestPreviewBoundsChangeRerendersBefore(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.editor.Open("wide.png"))
	assert.Equal(t, 6, f.last().Before.Bounds().Dx())

	f.editor.SetPreviewBounds(3, 3)
	require.NoError(t, f.editor.Reset())
	assert.Equal(t, 3, f.last().Before.Bounds().Dx())
}
