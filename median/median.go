// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

// Package median adapts quant.Quantize's median-cut mode to the
// image.Image-facing quant.Quantizer contract, the way
// ImagingQuantize dispatches its mode-0 path to quantize() before
// packaging the result back into an image.
package median

import (
	"image"
	"image/color"

	"github.com/pixelquant/quant"
)

// Quantizer implements quant.Quantizer using median-cut color quantization.
type Quantizer int

// Quantize extracts every pixel from img, runs median-cut quantization for
// at most n colors, and packages the result as a paletted image.
func (Quantizer) Quantize(img image.Image, n int) *image.Paletted {
	return quantizeImage(img, n, quant.MedianCut)
}

// quantizeImage extracts pixels from img, quantizes them with the given
// quant.Mode and packages the result. mean.Quantizer does not call it; the
// mean package has its own copy of this logic.
func quantizeImage(img image.Image, n int, mode quant.Mode) *image.Paletted {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	pixels := make([]quant.Pixel, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, b8, _ := img.At(x, y).RGBA()
			pixels = append(pixels, quant.Pixel{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b8 >> 8)})
		}
	}

	pal := image.NewPaletted(b, nil)
	if len(pixels) == 0 {
		return pal
	}

	res, err := quant.Quantize(pixels, n, mode, 0)
	if err != nil {
		// Quantize only fails on programmer error (bad n, empty buffer,
		// unknown mode). The empty buffer is excluded above and the mode
		// is fixed by the caller, but n is passed through unchecked, so a
		// non-positive n lands here. Quantizer has no way to report the
		// error; fall back to a single-color palette rather than
		// panicking.
		res.Palette = []quant.Pixel{pixels[0]}
		res.Indices = make([]uint32, len(pixels))
	}

	cp := make(color.Palette, len(res.Palette))
	for i, p := range res.Palette {
		cp[i] = color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff}
	}
	pal.Palette = cp

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pal.SetColorIndex(x, y, uint8(res.Indices[i]))
			i++
		}
	}
	return pal
}
