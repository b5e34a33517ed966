package quant

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/willibrandon/mtlog/core"

	"github.com/pixelquant/quant/internal/boxtree"
	"github.com/pixelquant/quant/internal/mapper"
	"github.com/pixelquant/quant/internal/palette"
	"github.com/pixelquant/quant/internal/pixellist"
	"github.com/pixelquant/quant/internal/pixelmap"
	"github.com/pixelquant/quant/internal/refine"
)

// Quantize reduces pixels to a palette of at most nColors entries and
// assigns each pixel the index of its nearest palette entry. mode selects
// the seeding strategy (MedianCut or MaxCoverage); kmeans, when nonzero,
// runs Lloyd's-algorithm refinement to convergence, treating kmeans-1 as
// the per-round reassignment threshold at or below which refinement stops
// (kmeans 0 disables refinement entirely). See spec §6 for the full external
// contract.
func Quantize(pixels []Pixel, nColors int, mode Mode, kmeans uint, opts ...Option) (Result, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	requestID := uuid.New().String()
	log := o.Logger

	if nColors <= 0 {
		return Result{}, errors.Wrapf(ErrInvalidArgument, "quantize[%s]: nColors must be positive, got %d", requestID, nColors)
	}
	if len(pixels) == 0 {
		return Result{}, errors.Wrapf(ErrInvalidArgument, "quantize[%s]: pixels must not be empty", requestID)
	}
	if mode != MedianCut && mode != MaxCoverage {
		return Result{}, errors.Wrapf(ErrInvalidArgument, "quantize[%s]: unknown mode %v", requestID, mode)
	}

	logEvent(log, requestID, "quantize start")

	pm := pixelmap.New()
	for _, p := range pixels {
		key := pixelmap.Key{R: p.R, G: p.G, B: p.B}
		pm.InsertOrUpdate(key,
			func() uint32 { return 1 },
			func(existing uint32) uint32 { return existing + 1 },
		)
	}
	logEvent(log, requestID, "pixel hash built")

	entries := make([]pixellist.Entry, 0, pm.Count())
	pm.ForEach(func(k pixelmap.Key, count uint32) {
		entries = append(entries, pixellist.Entry{R: k.R, G: k.G, B: k.B, Count: count})
	})
	list := pixellist.Build(entries)
	logEvent(log, requestID, "pixel list sorted")

	palettePixels := make([]palette.Color, len(pixels))
	for i, p := range pixels {
		palettePixels[i] = palette.Color{R: p.R, G: p.G, B: p.B}
	}

	var pal []palette.Color
	var guesses []uint32

	switch mode {
	case MedianCut:
		tree, err := boxtree.Build(list, uint64(len(pixels)), nColors)
		if err != nil {
			return Result{}, errors.Wrapf(err, "quantize[%s]: building box tree", requestID)
		}

		boxOf := pixelmap.New()
		nBoxes := boxtree.Annotate(list, tree.Root, boxOf)
		logEvent(log, requestID, "box tree cut")

		pal = palette.FromMedianCut(palettePixels, boxOf, nBoxes)

		guesses = make([]uint32, len(pixels))
		for i, p := range pixels {
			if idx, ok := boxOf.Lookup(pixelmap.Key{R: p.R, G: p.G, B: p.B}); ok {
				guesses[i] = idx
			}
		}

	case MaxCoverage:
		distinct := make([]palette.Color, len(entries))
		counts := make([]uint32, len(entries))
		for i, e := range entries {
			distinct[i] = palette.Color{R: e.R, G: e.G, B: e.B}
			counts[i] = e.Count
		}
		pal = palette.FarthestPoint(distinct, counts, nColors)
	}
	logEvent(log, requestID, "palette computed")

	m := mapper.New(pal)
	indices := m.MapAll(palettePixels, guesses)
	logEvent(log, requestID, "mapping done")

	if kmeans > 0 {
		pal, indices = refine.Run(palettePixels, pal, indices, int(kmeans)-1)
		logEvent(log, requestID, "refinement complete")
	}

	outPalette := make([]Pixel, len(pal))
	for i, c := range pal {
		outPalette[i] = Pixel{R: c.R, G: c.G, B: c.B}
	}

	return Result{Palette: outPalette, Indices: indices}, nil
}

func logEvent(l core.Logger, requestID, event string) {
	if l == nil {
		return
	}
	l.Debug("quant[{RequestId}]: {Event}", requestID, event)
}
