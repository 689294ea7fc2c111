package effects

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func at(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestApplyUnknownReturnsSource(t *testing.T) {
	src := solid(2, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	assert.Same(t, src, Apply("", src).(*image.NRGBA))
	assert.Same(t, src, Apply(None, src).(*image.NRGBA))
	assert.Same(t, src, Apply("hue-rotate", src).(*image.NRGBA))
	assert.Nil(t, Apply("sepia", nil))
}

func TestKnownAndNames(t *testing.T) {
	assert.True(t, Known(""))
	assert.True(t, Known("grayscale"))
	assert.False(t, Known("hue-rotate"))
	assert.Equal(t, []string{"blur", "brightness", "contrast", "grayscale", "invert", "sepia"}, Names())
}

func TestColorFilters(t *testing.T) {
	src := solid(2, 2, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	gray := at(Apply("grayscale", src), 1, 1)
	assert.Equal(t, gray.R, gray.G)
	assert.Equal(t, gray.G, gray.B)
	assert.Equal(t, uint8(255), gray.A)

	inv := at(Apply("invert", src), 0, 0)
	assert.InDelta(t, 55, int(inv.R), 1)
	assert.InDelta(t, 155, int(inv.G), 1)
	assert.InDelta(t, 205, int(inv.B), 1)

	bright := at(Apply("brightness", src), 0, 0)
	assert.Greater(t, bright.R, uint8(200))
	assert.Greater(t, bright.G, uint8(100))
	assert.Greater(t, bright.B, uint8(50))

	sep := at(Apply("sepia", src), 0, 0)
	assert.True(t, sep.R >= sep.G && sep.G >= sep.B)

	dark := at(Apply("contrast", solid(1, 1, color.NRGBA{R: 60, G: 60, B: 60, A: 255})), 0, 0)
	assert.Less(t, dark.R, uint8(60), "contrast pushes dark tones darker")

	// The source is never modified.
	assert.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 255}, at(src, 0, 0))
}

func TestBlurKeepsSizeAndSoftensEdges(t *testing.T) {
	src := solid(64, 32, color.NRGBA{A: 255})
	for y := 0; y < 32; y++ {
		for x := 32; x < 64; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	out := Apply("blur", src)
	require.NotNil(t, out)
	assert.Equal(t, src.Bounds(), out.Bounds())

	edge := at(out, 31, 16)
	assert.Greater(t, edge.R, uint8(0))
	assert.Less(t, edge.R, uint8(255))
}
