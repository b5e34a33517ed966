// Package swatch renders a computed palette for diagnostic display. It sits
// outside the quantization core the way Pillow's Python Image.quantize
// wrapper sits outside Quant.c: nothing in internal/* imports this package,
// and nothing here influences distance computations, which stay in integer
// sRGB space per spec §6.2.
package swatch

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pixelquant/quant"
)

// Entry pairs a palette color with its hex string and its go-colorful
// value (from which CIE Lab distances are computed), for printing or UI
// display.
type Entry struct {
	Pixel    quant.Pixel
	Hex      string
	Colorful colorful.Color
}

// Colors converts every entry of a Quantize Result's palette into a
// display-friendly Entry. Conversion never fails for the RGBA8 colors this
// module produces; the bool go-colorful returns is intentionally ignored
// only because the subset it can fail on (non-alpha-premultiplied exotic
// color models) never reaches this function from quant.Pixel.
func Colors(res quant.Result) []Entry {
	out := make([]Entry, len(res.Palette))
	for i, p := range res.Palette {
		c, _ := colorful.MakeColor(color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff})
		out[i] = Entry{Pixel: p, Hex: c.Hex(), Colorful: c}
	}
	return out
}

// MostDistinctPair returns the indices of the two palette entries with the
// largest perceptual (CIE Lab) distance between them, useful for picking a
// representative light/dark pair for a UI preview swatch.
func MostDistinctPair(entries []Entry) (i, j int) {
	var best float64 = -1
	for a := 0; a < len(entries); a++ {
		for b := a + 1; b < len(entries); b++ {
			d := entries[a].Colorful.DistanceLab(entries[b].Colorful)
			if d > best {
				best = d
				i, j = a, b
			}
		}
	}
	return i, j
}
