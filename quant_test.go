package quant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelquant/quant"
)

func solidBlock(r, g, b uint8, n int) []quant.Pixel {
	out := make([]quant.Pixel, n)
	for i := range out {
		out[i] = quant.Pixel{R: r, G: g, B: b}
	}
	return out
}

func TestQuantizeSingleColorYieldsOneColorPalette(t *testing.T) {
	pixels := solidBlock(200, 100, 50, 64)

	for _, mode := range []quant.Mode{quant.MedianCut, quant.MaxCoverage} {
		res, err := quant.Quantize(pixels, 16, mode, 0)
		require.NoError(t, err)
		require.Len(t, res.Palette, 1)
		assert.Equal(t, quant.Pixel{R: 200, G: 100, B: 50}, res.Palette[0])

		require.Len(t, res.Indices, len(pixels))
		for _, idx := range res.Indices {
			assert.Equal(t, uint32(0), idx)
		}
	}
}

func TestQuantizeTwoDistinctColorsSplitCleanly(t *testing.T) {
	pixels := append(solidBlock(0, 0, 0, 30), solidBlock(255, 255, 255, 30)...)

	for _, mode := range []quant.Mode{quant.MedianCut, quant.MaxCoverage} {
		res, err := quant.Quantize(pixels, 2, mode, 0)
		require.NoError(t, err)
		require.Len(t, res.Palette, 2)

		blackIdx := res.Indices[0]
		whiteIdx := res.Indices[len(pixels)-1]
		assert.NotEqual(t, blackIdx, whiteIdx)
		for i := 0; i < 30; i++ {
			assert.Equal(t, blackIdx, res.Indices[i])
		}
		for i := 30; i < 60; i++ {
			assert.Equal(t, whiteIdx, res.Indices[i])
		}
	}
}

func TestQuantizePaletteNeverExceedsRequestedColors(t *testing.T) {
	pixels := make([]quant.Pixel, 0, 256)
	for r := 0; r < 16; r++ {
		for g := 0; g < 16; g++ {
			pixels = append(pixels, quant.Pixel{R: uint8(r * 16), G: uint8(g * 16), B: 128})
		}
	}

	res, err := quant.Quantize(pixels, 16, quant.MedianCut, 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(res.Palette), 16)
	assert.Equal(t, len(pixels), len(res.Indices))
	for _, idx := range res.Indices {
		assert.Less(t, int(idx), len(res.Palette))
	}
}

func TestQuantizeFewerDistinctColorsThanRequestedStopsEarly(t *testing.T) {
	pixels := append(solidBlock(10, 10, 10, 5), solidBlock(250, 250, 250, 5)...)

	res, err := quant.Quantize(pixels, 256, quant.MedianCut, 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(res.Palette), 2)
}

func TestQuantizeKMeansRefinementConverges(t *testing.T) {
	pixels := append(solidBlock(0, 0, 0, 50), solidBlock(255, 255, 255, 50)...)

	res, err := quant.Quantize(pixels, 2, quant.MedianCut, 5)
	require.NoError(t, err)
	require.Len(t, res.Palette, 2)
	require.Len(t, res.Indices, len(pixels))
}

func TestQuantizeRejectsInvalidArguments(t *testing.T) {
	_, err := quant.Quantize(nil, 4, quant.MedianCut, 0)
	assert.ErrorIs(t, err, quant.ErrInvalidArgument)

	_, err = quant.Quantize(solidBlock(1, 2, 3, 1), 0, quant.MedianCut, 0)
	assert.ErrorIs(t, err, quant.ErrInvalidArgument)

	_, err = quant.Quantize(solidBlock(1, 2, 3, 1), 4, quant.Mode(99), 0)
	assert.ErrorIs(t, err, quant.ErrInvalidArgument)
}

func TestQuantizeEveryPixelGetsAnIndex(t *testing.T) {
	pixels := make([]quant.Pixel, 0, 100)
	for i := 0; i < 100; i++ {
		pixels = append(pixels, quant.Pixel{R: uint8(i * 2), G: uint8(i), B: uint8(255 - i)})
	}

	res, err := quant.Quantize(pixels, 8, quant.MaxCoverage, 0)
	require.NoError(t, err)
	assert.Len(t, res.Indices, len(pixels))
}
