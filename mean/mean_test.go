package mean_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelquant/quant/mean"
)

func stripes(w, h int, colors []color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, colors[x%len(colors)])
		}
	}
	return img
}

func TestImageBoundsPaletteSize(t *testing.T) {
	colors := []color.RGBA{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 128, G: 128, B: 128, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
	img := stripes(9, 9, colors)

	q := mean.Quantizer{}
	pi := q.Image(img, 3)

	require.NotNil(t, pi)
	assert.LessOrEqual(t, len(pi.Palette), 3)
	assert.Equal(t, img.Bounds(), pi.Bounds())
}

func TestPaletteReturnsNearLookup(t *testing.T) {
	colors := []color.RGBA{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
	img := stripes(4, 4, colors)

	q := mean.Quantizer{}
	pal := q.Palette(img, 2)
	require.NotNil(t, pal)

	cp := pal.ColorPalette()
	assert.LessOrEqual(t, len(cp), 2)
}

func TestImageClampsRequestAboveMaxPaletteSize(t *testing.T) {
	colors := []color.RGBA{{R: 1, G: 2, B: 3, A: 255}}
	img := stripes(2, 2, colors)

	q := mean.Quantizer{}
	pi := q.Image(img, 1000)
	assert.LessOrEqual(t, len(pi.Palette), 256)
}
