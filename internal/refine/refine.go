// Package refine implements the Lloyd's-algorithm (k-means) refinement
// pass of spec §4.7: iteratively recompute each palette entry as the mean
// of the pixels currently assigned to it, remap pixels against the
// updated palette, and stop once the number of reassignments in a round
// falls to or below a threshold. There is no iteration cap, matching
// k_means's own unbounded loop.
//
// Grounded on original_source/libImaging/Quant.c's k_means
// (recompute_palette_from_averages + resort_distance_tables +
// map_image_pixels_from_quantized_pixels, looping `while (1)` until
// changes <= threshold).
package refine

import (
	"github.com/pixelquant/quant/internal/mapper"
	"github.com/pixelquant/quant/internal/palette"
)

func round(sum, count uint64) uint8 {
	if count == 0 {
		return 0
	}
	return uint8((sum*2 + count) / (2 * count))
}

// Run performs rounds of k-means refinement starting from pal/indices,
// looping to convergence and stopping once a round reassigns threshold
// pixels or fewer. It returns the final palette and index assignment.
func Run(pixels []palette.Color, pal []palette.Color, indices []uint32, threshold int) ([]palette.Color, []uint32) {
	if len(pal) == 0 {
		return pal, indices
	}

	m := mapper.New(pal)

	for {
		sumR := make([]uint64, len(pal))
		sumG := make([]uint64, len(pal))
		sumB := make([]uint64, len(pal))
		count := make([]uint64, len(pal))

		for i, idx := range indices {
			p := pixels[i]
			sumR[idx] += uint64(p.R)
			sumG[idx] += uint64(p.G)
			sumB[idx] += uint64(p.B)
			count[idx]++
		}

		newPal := make([]palette.Color, len(pal))
		for i := range pal {
			if count[i] == 0 {
				// No pixels claim this entry this round; leave it where
				// it was rather than collapsing it to black.
				newPal[i] = pal[i]
				continue
			}
			newPal[i] = palette.Color{
				R: round(sumR[i], count[i]),
				G: round(sumG[i], count[i]),
				B: round(sumB[i], count[i]),
			}
		}

		m.Rebuild(newPal)
		newIndices := m.MapAll(pixels, indices)

		changes := 0
		for i := range indices {
			if indices[i] != newIndices[i] {
				changes++
			}
		}

		pal = newPal
		indices = newIndices

		if changes <= threshold {
			break
		}
	}

	return pal, indices
}
