package tower

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
)

// Footprint is the set of raster cells occupied by the floors generated so
// far. It only grows.
type Footprint struct {
	cells rl.Grid
}

// NewFootprint returns an empty footprint for maps of the given shape. Its
// cells match the room-id raster, one larger than the map in each
// dimension.
func NewFootprint(shape gruid.Point) *Footprint {
	return &Footprint{cells: rl.NewGrid(shape.X+1, shape.Y+1)}
}

// AddRange marks every cell of r.
func (f *Footprint) AddRange(r gruid.Range) {
	if r, ok := clip(r, f.cells.Range()); ok {
		f.cells.Slice(r).Fill(1)
	}
}

// AddRaster marks every cell a room occupies in raster.
func (f *Footprint) AddRaster(raster rl.Grid) {
	for p, c := range raster.All() {
		if c != 0 {
			f.cells.Set(p, 1)
		}
	}
}

// Has reports whether cell p is marked.
func (f *Footprint) Has(p gruid.Point) bool {
	return p.In(f.cells.Range()) && f.cells.At(p) != 0
}

// Overlaps reports whether any cell of r is marked.
func (f *Footprint) Overlaps(r gruid.Range) bool {
	r, ok := clip(r, f.cells.Range())
	if !ok {
		return false
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if f.cells.At(gruid.Point{X: x, Y: y}) != 0 {
				return true
			}
		}
	}
	return false
}

// Count returns the number of marked cells.
func (f *Footprint) Count() int {
	n := 0
	for _, c := range f.cells.All() {
		if c != 0 {
			n++
		}
	}
	return n
}

// FilterRects keeps the rects that overlap the footprint, preserving order.
// Since the rects of one layout tile the plane, the kept rects cover every
// marked cell.
func FilterRects(rects []gruid.Range, f *Footprint) []gruid.Range {
	var kept []gruid.Range
	for _, r := range rects {
		if f.Overlaps(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

// UsableArea is the raster area rooms may occupy on a map of the given
// shape. It leaves a void border and keeps every bound even, so rects
// scaled up from half resolution stay at least two cells wide after
// clipping.
func UsableArea(shape gruid.Point) gruid.Range {
	return gruid.NewRange(2, 2, even(shape.X-1), even(shape.Y-1))
}

// centredRange returns a side x side range around the even point nearest
// the centre of the map. Rect bounds are even, so a range centred there can
// straddle the corner where rooms meet.
func centredRange(shape gruid.Point, side int) gruid.Range {
	centre := gruid.Point{X: even(shape.X / 2), Y: even(shape.Y / 2)}
	lo := centre.Sub(gruid.Point{X: side / 2, Y: side / 2})
	return gruid.Range{Min: lo, Max: lo.Add(gruid.Point{X: side, Y: side})}
}

func even(v int) int { return v &^ 1 }

// clip returns the part of r inside area, reporting false when it is empty.
func clip(r, area gruid.Range) (gruid.Range, bool) {
	c := gruid.Range{
		Min: gruid.Point{X: max(r.Min.X, area.Min.X), Y: max(r.Min.Y, area.Min.Y)},
		Max: gruid.Point{X: min(r.Max.X, area.Max.X), Y: min(r.Max.Y, area.Max.Y)},
	}
	if c.Min.X >= c.Max.X || c.Min.Y >= c.Max.Y {
		return gruid.Range{}, false
	}
	return c, true
}
