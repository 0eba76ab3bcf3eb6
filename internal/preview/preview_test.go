package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

var TestFitSizes = []struct {
	W, H, MaxW, MaxH int
	ExpectW, ExpectH int
}{
	{100, 50, 520, 520, 100, 50},
	{1040, 520, 520, 520, 520, 260},
	{520, 1040, 520, 520, 260, 520},
	{2080, 2080, 520, 520, 520, 520},
	{4160, 10, 520, 520, 520, 1},
	{1000, 800, 250, 400, 250, 200},
}

func TestFitSize(t *testing.T) {
	for _, v := range TestFitSizes {
		w, h := FitSize(v.W, v.H, v.MaxW, v.MaxH)
		assert.Equal(t, v.ExpectW, w, "%dx%d", v.W, v.H)
		assert.Equal(t, v.ExpectH, h, "%dx%d", v.W, v.H)
	}
}

func TestScaleNeverUpscales(t *testing.T) {
	assert.Equal(t, 1.0, Scale(10, 10, 520, 520))
	assert.Equal(t, 0.5, Scale(1040, 100, 520, 520))
	assert.Equal(t, 1.0, Scale(0, 10, 520, 520))
}

func TestRenderSmallImageKeepsSize(t *testing.T) {
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(10, 20, 30, 0), 40, 60, gocv.MatTypeCV8UC3)
	defer mat.Close()

	img, err := Render(mat, DefaultMaxWidth, DefaultMaxHeight)
	require.NoError(t, err)
	assert.Equal(t, 60, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())

	r, g, b, _ := img.At(5, 5).RGBA()
	assert.Equal(t, uint32(30), r>>8)
	assert.Equal(t, uint32(20), g>>8)
	assert.Equal(t, uint32(10), b>>8)
}

func TestRenderLargeImageIsBounded(t *testing.T) {
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 300, 1200, gocv.MatTypeCV8UC3)
	defer mat.Close()
	before := mat.ToBytes()

	img, err := Render(mat, 600, 600)
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())

	assert.Equal(t, 1200, mat.Cols())
	assert.Equal(t, before, mat.ToBytes())
}

func TestRenderEmpty(t *testing.T) {
	mat := gocv.NewMat()
	defer mat.Close()

	_, err := Render(mat, 10, 10)
	assert.Error(t, err)
}
