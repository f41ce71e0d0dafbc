package maze

import (
	"fmt"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
)

// Rasterize paints rects into a room-id raster for a map of the given size.
//
// The raster has one more row and column than the map: tile (x, y) is
// decided by the four raster cells at its corners. Cell value 0 means no
// room. Rects that touch row or column 0, reach past the map, or are
// narrower than two cells are skipped; the rest are numbered from 1 in
// order.
func Rasterize(size gruid.Point, rects []gruid.Range) rl.Grid {
	raster := rl.NewGrid(size.X+1, size.Y+1)
	next := rl.Cell(1)
	for _, r := range rects {
		if r.Min.X <= 0 || r.Min.Y <= 0 || r.Max.X > size.X || r.Max.Y > size.Y {
			continue
		}
		if dim := r.Size(); dim.X < 2 || dim.Y < 2 {
			continue
		}
		raster.Slice(r).Fill(next)
		next++
	}
	return raster
}

// SideAt converts a raster cell to the side it denotes.
func SideAt(raster rl.Grid, p gruid.Point) Side {
	if c := raster.At(p); c > 0 {
		return In(RoomID(c))
	}
	return Outside
}

// ApplyRaster writes every tile of b from a raster made by Rasterize.
//
// For each tile, if its four corner cells agree it becomes that room's
// floor; if the top pair and the bottom pair each agree it is a horizontal
// wall between them; if the left pair and the right pair each agree it is a
// vertical wall; otherwise it is a pillar.
func ApplyRaster(raster rl.Grid, b *Builder) {
	size := b.Size()
	if raster.Size() != size.Add(gruid.Point{X: 1, Y: 1}) {
		panic(fmt.Sprintf("maze: raster size %v for map size %v, want one larger", raster.Size(), size))
	}
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			p := gruid.Point{X: x, Y: y}
			tl := SideAt(raster, p)
			tr := SideAt(raster, p.Shift(1, 0))
			bl := SideAt(raster, p.Shift(0, 1))
			br := SideAt(raster, p.Shift(1, 1))
			switch {
			case tl == tr && tl == bl && tl == br:
				b.PlaceFloor(p, tl)
			case tl == tr && bl == br:
				b.PlaceHorizontalWall(p, tl, bl)
			case tl == bl && tr == br:
				b.PlaceVerticalWall(p, tl, tr)
			default:
				b.PlacePillar(p)
			}
		}
	}
}
