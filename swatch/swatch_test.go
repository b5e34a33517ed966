package swatch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelquant/quant"
	"github.com/pixelquant/quant/swatch"
)

func TestColorsProducesOneEntryPerPaletteColor(t *testing.T) {
	res := quant.Result{
		Palette: []quant.Pixel{
			{R: 0, G: 0, B: 0},
			{R: 255, G: 255, B: 255},
			{R: 255, G: 0, B: 0},
		},
	}

	entries := swatch.Colors(res)
	require.Len(t, entries, 3)
	assert.Equal(t, "#000000", entries[0].Hex)
	assert.Equal(t, "#ffffff", entries[1].Hex)
	assert.Equal(t, "#ff0000", entries[2].Hex)
}

func TestMostDistinctPairPicksBlackAndRedOverWhite(t *testing.T) {
	res := quant.Result{
		Palette: []quant.Pixel{
			{R: 0, G: 0, B: 0},
			{R: 255, G: 0, B: 0},
			{R: 255, G: 255, B: 255},
		},
	}

	entries := swatch.Colors(res)
	i, j := swatch.MostDistinctPair(entries)

	// In CIE Lab, black-red (~117) is farther apart than black-white (100).
	pair := map[int]bool{i: true, j: true}
	assert.True(t, pair[0])
	assert.True(t, pair[1])
}

func TestMostDistinctPairSingleEntry(t *testing.T) {
	entries := swatch.Colors(quant.Result{Palette: []quant.Pixel{{R: 10, G: 20, B: 30}}})
	i, j := swatch.MostDistinctPair(entries)
	assert.Equal(t, 0, i)
	assert.Equal(t, 0, j)
}
