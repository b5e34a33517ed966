// Package palette computes a final color palette from either a median-cut
// box tree or a farthest-point (maximum-coverage) seeding pass, per spec
// §4.5.
//
// Grounded on original_source/libImaging/Quant.c's
// compute_palette_from_median_cut (box-averaging with rounded means) and
// quantize2's compute_distances / DistanceData (farthest-point selection,
// including the secondPixel special case). The farthest-point sentinel
// distances use a native Go map keyed by Color rather than
// internal/pixelmap.Map: that table is an exact-key lookup that never needs
// scale adaptation, and construction/claims in Quant.c itself uses a
// separate, non-scale-adaptive hashtable instance for this purpose (see
// DESIGN.md).
package palette

import "github.com/pixelquant/quant/internal/pixelmap"

// Color is a final palette entry: 8-bit R, G, B.
type Color struct {
	R, G, B uint8
}

// round implements Quant.c's `(int)(.5 + (double)sum/count)`: round half up
// to the nearest integer, via pure integer arithmetic.
func round(sum, count uint64) uint8 {
	if count == 0 {
		return 0
	}
	return uint8((sum*2 + count) / (2 * count))
}

// FromMedianCut computes one averaged color per box index by scanning the
// full original pixel buffer, looking each pixel's box index up in boxOf
// (populated by boxtree.Annotate), and averaging the R/G/B sums per box.
// Mirrors compute_palette_from_median_cut.
func FromMedianCut(pixels []Color, boxOf *pixelmap.Map, nBoxes int) []Color {
	sumR := make([]uint64, nBoxes)
	sumG := make([]uint64, nBoxes)
	sumB := make([]uint64, nBoxes)
	count := make([]uint64, nBoxes)

	for _, p := range pixels {
		idx, ok := boxOf.Lookup(pixelmap.Key{R: p.R, G: p.G, B: p.B})
		if !ok {
			continue
		}
		sumR[idx] += uint64(p.R)
		sumG[idx] += uint64(p.G)
		sumB[idx] += uint64(p.B)
		count[idx]++
	}

	out := make([]Color, 0, nBoxes)
	for i := 0; i < nBoxes; i++ {
		if count[i] == 0 {
			continue
		}
		out = append(out, Color{
			R: round(sumR[i], count[i]),
			G: round(sumG[i], count[i]),
			B: round(sumB[i], count[i]),
		})
	}
	return out
}

// squaredDistance is the squared Euclidean distance between two colors in
// integer sRGB space (spec §6.2: no perceptual color space conversion).
func squaredDistance(a, b Color) uint64 {
	dr := int64(a.R) - int64(b.R)
	dg := int64(a.G) - int64(b.G)
	db := int64(a.B) - int64(b.B)
	return uint64(dr*dr + dg*dg + db*db)
}

// FarthestPoint seeds a palette of up to nColors entries from distinct
// colors (weighted by counts) using maximum-coverage / farthest-point
// selection: the first entry is the population-weighted mean color; each
// subsequent entry is the distinct color with the largest distance to its
// nearest already-chosen entry. Mirrors quantize2's DistanceData loop,
// including the secondPixel special case where the second entry's distance
// unconditionally overwrites the sentinel rather than taking a min with it.
func FarthestPoint(distinct []Color, counts []uint32, nColors int) []Color {
	n := len(distinct)
	if n == 0 || nColors <= 0 {
		return nil
	}
	if nColors > n {
		nColors = n
	}

	var sumR, sumG, sumB, total uint64
	for i, c := range distinct {
		w := uint64(counts[i])
		sumR += uint64(c.R) * w
		sumG += uint64(c.G) * w
		sumB += uint64(c.B) * w
		total += w
	}
	out := make([]Color, 0, nColors)
	out = append(out, Color{R: round(sumR, total), G: round(sumG, total), B: round(sumB, total)})

	dist := make(map[Color]uint64, n)
	for _, c := range distinct {
		dist[c] = 0
	}

	for i := 1; i < nColors; i++ {
		newest := out[i-1]
		var farthest Color
		var farthestDist uint64
		first := true
		for _, c := range distinct {
			d := squaredDistance(c, newest)
			switch {
			case i == 1:
				dist[c] = d // secondPixel: forced overwrite, not a min.
			case d < dist[c]:
				dist[c] = d
			}
			cur := dist[c]
			if first || cur > farthestDist {
				farthestDist = cur
				farthest = c
				first = false
			}
		}
		out = append(out, farthest)
	}
	return out
}
