// Package mapper implements nearest-neighbor pixel-to-palette-index
// assignment with distance-table pruning, per spec §4.6.
//
// Grounded on original_source/libImaging/Quant.c's build_distance_tables /
// resort_distance_tables (the symmetric n×n squared-distance matrix plus
// per-row ascending sort-key arrays) and map_image_pixels_from_median_box /
// map_image_pixels_from_quantized_pixels (the admissible `4*d0` pruning
// bound and per-call exact-key memoization cache). The memoization cache
// uses a native Go map rather than internal/pixelmap.Map: Quant.c itself
// builds a fresh, non-scale-adaptive hashtable instance for this exact
// purpose in both of those functions (see DESIGN.md).
package mapper

import (
	"sort"

	"github.com/pixelquant/quant/internal/palette"
)

// Tables holds the symmetric squared-distance matrix between every pair of
// palette entries, plus each row sorted ascending by distance, enabling
// early-exit nearest-neighbor search.
type Tables struct {
	n   int
	pal []palette.Color
	d   [][]uint64
	s   [][]int
}

func squaredDistance(a, b palette.Color) uint64 {
	dr := int64(a.R) - int64(b.R)
	dg := int64(a.G) - int64(b.G)
	db := int64(a.B) - int64(b.B)
	return uint64(dr*dr + dg*dg + db*db)
}

// BuildTables computes the full distance matrix for pal and sorts each row.
// Mirrors build_distance_tables + resort_distance_tables.
func BuildTables(pal []palette.Color) *Tables {
	n := len(pal)
	t := &Tables{n: n, pal: pal, d: make([][]uint64, n), s: make([][]int, n)}
	for i := 0; i < n; i++ {
		t.d[i] = make([]uint64, n)
		t.s[i] = make([]int, n)
		for j := 0; j < n; j++ {
			t.d[i][j] = squaredDistance(pal[i], pal[j])
			t.s[i][j] = j
		}
		row := t.s[i]
		sort.Slice(row, func(a, b int) bool { return t.d[i][row[a]] < t.d[i][row[b]] })
	}
	return t
}

// nearest finds the palette index closest to pixel, starting the search
// from guess and using the admissible bound 4*d0 (d0 being pixel's
// distance to guess) to prune the rest of guess's sorted row: any entry
// farther from guess than 4*d0 cannot be closer to pixel than guess
// already is, by the triangle inequality.
func (t *Tables) nearest(pixel palette.Color, guess int) int {
	d0 := squaredDistance(pixel, t.pal[guess])
	best := guess
	bestDist := d0
	bound := 4 * d0
	for _, j := range t.s[guess] {
		if t.d[guess][j] >= bound {
			break
		}
		d := squaredDistance(pixel, t.pal[j])
		if d < bestDist {
			bestDist = d
			best = j
		}
	}
	return best
}

// Mapper assigns palette indices to pixels, memoizing by exact pixel color
// so repeated colors in an image are only searched once per Mapper
// lifetime (reset via Rebuild).
type Mapper struct {
	tables *Tables
	pal    []palette.Color
	cache  map[palette.Color]uint32
}

// New builds a Mapper against palette pal.
func New(pal []palette.Color) *Mapper {
	return &Mapper{tables: BuildTables(pal), pal: pal, cache: make(map[palette.Color]uint32, len(pal))}
}

// Rebuild replaces the palette (used between k-means iterations, after
// palette entries move) and clears the memoization cache, since distances
// against the old palette are no longer valid.
func (m *Mapper) Rebuild(pal []palette.Color) {
	m.pal = pal
	m.tables = BuildTables(pal)
	m.cache = make(map[palette.Color]uint32, len(pal))
}

// Index returns the palette index nearest pixel, searching outward from
// guess (typically the pixel's previous assignment) and memoizing the
// result.
func (m *Mapper) Index(pixel palette.Color, guess uint32) uint32 {
	if v, ok := m.cache[pixel]; ok {
		return v
	}
	g := int(guess)
	if g < 0 || g >= len(m.pal) {
		g = 0
	}
	best := uint32(m.tables.nearest(pixel, g))
	m.cache[pixel] = best
	return best
}

// MapAll assigns every pixel in pixels to a palette index. guesses, if
// non-nil, seeds each pixel's search starting point (e.g. its assignment
// from the previous k-means iteration); nil guesses all start from index 0.
func (m *Mapper) MapAll(pixels []palette.Color, guesses []uint32) []uint32 {
	out := make([]uint32, len(pixels))
	for i, p := range pixels {
		var guess uint32
		if guesses != nil {
			guess = guesses[i]
		}
		out[i] = m.Index(p, guess)
	}
	return out
}

// Palette returns the palette this Mapper currently maps against.
func (m *Mapper) Palette() []palette.Color { return m.pal }
