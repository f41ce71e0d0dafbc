// Package offgrid partitions a plane into irregular rectangles by jittering
// the lines of a regular grid with a seeded hash.
//
// Every grid line offset is derived from the hash of the line's own
// coordinate, never from the cell being computed, so two cells that share a
// boundary always agree on where it is and the rectangles tile the plane
// without gaps or overlaps.
package offgrid

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"codeberg.org/anaseto/gruid"
)

const (
	hashMultiplier uint64 = 6364136223846793005
	hashIncrement  uint64 = 1442695040888963407

	// unitBits is the number of low hash bits used to build a unit float.
	unitBits = 30
	unitMask = 1<<unitBits - 1
)

// DefaultEdge is the jitter margin used when callers have no preference.
const DefaultEdge = 0.1

// Rect is a cell's rectangle in grid units. Right and Bottom are exclusive.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Hash64 mixes a 64-bit integer. The result depends only on x.
func Hash64(x int64) int64 {
	t := uint64(x)*hashMultiplier + hashIncrement
	return int64((t >> 20) ^ (t << 23) ^ t)
}

// HashXY combines a grid coordinate and a seed into one hash.
func HashXY(x, y, seed int64) int64 {
	return Hash64(Hash64(x) ^ (y ^ seed))
}

// HashToUnit maps the low 30 bits of h onto [0, 1).
func HashToUnit(h int64) float64 {
	return float64(uint64(h)&unitMask) / (1 << unitBits)
}

// BoxRandom returns the jitter fraction of the grid vertex (x, y), in
// [edge, 1-edge).
func BoxRandom(x, y, seed int64, edge float64) float64 {
	return edge + (1-2*edge)*HashToUnit(HashXY(x, y, seed))
}

// boundary places a jittered grid line. The integer part is added last so
// both cells that share the line compute the same float.
func boundary(line int64, frac float64) float64 {
	return float64(line) + frac
}

// CellToRect computes the rectangle of grid cell (ix, iy).
//
// Even and odd cells (by (ix^iy)&1) read their four edges from the grid
// vertices in a pinwheel order, which is what makes neighbouring cells
// interlock. It panics if the result is degenerate, which can only happen
// for an edge outside [0, 0.5).
func CellToRect(ix, iy, seed int64, edge float64) Rect {
	br := func(x, y int64) float64 { return BoxRandom(x, y, seed, edge) }

	var r Rect
	if (ix^iy)&1 == 0 {
		r = Rect{
			Left:   boundary(ix, br(ix, iy)),
			Top:    boundary(iy, br(ix+1, iy)),
			Right:  boundary(ix+1, br(ix+1, iy+1)),
			Bottom: boundary(iy+1, br(ix, iy+1)),
		}
	} else {
		r = Rect{
			Left:   boundary(ix, br(ix, iy+1)),
			Top:    boundary(iy, br(ix, iy)),
			Right:  boundary(ix+1, br(ix+1, iy)),
			Bottom: boundary(iy+1, br(ix+1, iy+1)),
		}
	}
	if !(r.Left < r.Right) || !(r.Top < r.Bottom) {
		panic(fmt.Sprintf("offgrid: cell (%d,%d) edge %v: degenerate rect %+v", ix, iy, edge, r))
	}
	return r
}

// Rects yields the integer rectangles of an offset grid covering a
// width x height area, centred on (width/2, height/2).
//
// The window is two cells wider than the area on every side so cells whose
// jitter reaches into the area are included. Rectangles may extend past the
// area or be empty; callers clip or discard them.
func Rects(width, height, boxSize int, seed int64, edge float64) iter.Seq[gruid.Range] {
	if boxSize < 1 {
		panic(fmt.Sprintf("offgrid: box size %d, want >= 1", boxSize))
	}
	if edge < 0 || edge >= 0.5 {
		panic(fmt.Sprintf("offgrid: edge %v outside [0, 0.5)", edge))
	}
	wide := width / boxSize
	high := height / boxSize
	scale := func(v float64, centre int) int {
		return int(math.Floor(float64(boxSize)*v)) + centre
	}
	return func(yield func(gruid.Range) bool) {
		for y := -2; y <= high+1; y++ {
			for x := -2; x <= wide+1; x++ {
				r := CellToRect(int64(x-wide/2), int64(y-high/2), seed, edge)
				rg := gruid.Range{
					Min: gruid.Point{X: scale(r.Left, width/2), Y: scale(r.Top, height/2)},
					Max: gruid.Point{X: scale(r.Right, width/2), Y: scale(r.Bottom, height/2)},
				}
				if !yield(rg) {
					return
				}
			}
		}
	}
}

// Generate collects Rects into a slice.
func Generate(width, height, boxSize int, seed int64, edge float64) []gruid.Range {
	return slices.Collect(Rects(width, height, boxSize, seed, edge))
}
