// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

// Package mean adapts quant.Quantize's maximum-coverage (farthest-point)
// mode to an image.Image-facing API, mirroring ImagingQuantize's mode-1
// dispatch path.
package mean

import (
	"image"
	"image/color"

	"github.com/pixelquant/quant"
)

// Quantizer implements a maximum-coverage color quantizer over images.
type Quantizer struct{}

// Image performs color quantization and returns a paletted image with no
// more than n colors.
func (Quantizer) Image(img image.Image, n int) *image.Paletted {
	if n > 256 {
		n = 256
	}
	return quantizeToImage(img, n)
}

// Palette performs color quantization and returns just the palette, for
// callers that want nearest-color lookup without a full paletted image.
func (Quantizer) Palette(img image.Image, n int) quant.Palette {
	if n > 256 {
		n = 256
	}
	pixels, _, _ := extractPixels(img)
	if len(pixels) == 0 || n < 1 {
		return quant.LinearPalette{Palette: nil}
	}

	res, err := quant.Quantize(pixels, n, quant.MaxCoverage, 0)
	if err != nil {
		res = quant.Result{Palette: []quant.Pixel{pixels[0]}}
	}

	cp := make(color.Palette, len(res.Palette))
	for i, p := range res.Palette {
		cp[i] = color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff}
	}
	return quant.LinearPalette{Palette: cp}
}

func extractPixels(img image.Image) ([]quant.Pixel, int, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]quant.Pixel, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, b8, _ := img.At(x, y).RGBA()
			pixels = append(pixels, quant.Pixel{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b8 >> 8)})
		}
	}
	return pixels, w, h
}

func quantizeToImage(img image.Image, n int) *image.Paletted {
	b := img.Bounds()
	pixels, _, _ := extractPixels(img)
	pal := image.NewPaletted(b, nil)
	if len(pixels) == 0 || n < 1 {
		return pal
	}

	res, err := quant.Quantize(pixels, n, quant.MaxCoverage, 0)
	if err != nil {
		res = quant.Result{
			Palette: []quant.Pixel{pixels[0]},
			Indices: make([]uint32, len(pixels)),
		}
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
